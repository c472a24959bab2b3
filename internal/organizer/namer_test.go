package organizer_test

import (
	"testing"

	"github.com/nikbrunner/bmorg/internal/model"
	"github.com/nikbrunner/bmorg/internal/organizer"
)

func TestNameCluster(t *testing.T) {
	tests := []struct {
		name      string
		bookmarks []model.Bookmark
		want      string
	}{
		{
			name: "folder segment above threshold wins over titles",
			bookmarks: []model.Bookmark{
				bm("Github github github", "https://github.com/1", "Recipes"),
				bm("Github github", "https://github.com/2", "RECIPES", "Dinner"),
				bm("Github", "https://github.com/3"),
				bm("Github", "https://github.com/4"),
				bm("Github", "https://github.com/5"),
			},
			want: "Recipes",
		},
		{
			name: "folder segment below threshold",
			bookmarks: []model.Bookmark{
				bm("Gopher news", "https://a.com", "Misc"),
				bm("Gopher tips", "https://b.com"),
				bm("Gopher", "https://c.com"),
			},
			want: "Gopher",
		},
		{
			name: "primary with secondary",
			bookmarks: []model.Bookmark{
				bm("Easy recipes", "https://a.com"),
				bm("Recipes for bread baking", "https://b.com"),
				bm("Baking tips recipes", "https://c.com"),
			},
			want: "Recipes & Baking",
		},
		{
			name: "two secondaries in frequency order",
			bookmarks: []model.Bookmark{
				bm("kubernetes helm docker", "https://a.com"),
				bm("kubernetes helm docker", "https://b.com"),
				bm("kubernetes", "https://c.com"),
			},
			want: "Kubernetes & Helm & Docker",
		},
		{
			name: "secondary contained in primary is skipped",
			bookmarks: []model.Bookmark{
				bm("Pythons pyt", "https://a.com"),
				bm("Pythons pyt", "https://b.com"),
			},
			want: "Pythons",
		},
		{
			name: "stop words and short words are ignored",
			bookmarks: []model.Bookmark{
				bm("The official website of Go", "https://go.dev"),
			},
			want: "Go.dev",
		},
		{
			name: "most frequent domain",
			bookmarks: []model.Bookmark{
				bm("", "https://www.github.com/a"),
				bm("", "https://gitlab.com/b"),
				bm("", "https://github.com/c"),
			},
			want: "Github",
		},
		{
			name:      "no words and no domains",
			bookmarks: []model.Bookmark{bm("", ""), bm("to be", "not a url")},
			want:      "Other",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := organizer.NameCluster(tt.bookmarks, organizer.DefaultNamerConfig())
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestNameCluster_Thresholds(t *testing.T) {
	bookmarks := []model.Bookmark{
		bm("alpha beta", "https://a.com", "Work"),
		bm("alpha", "https://b.com"),
		bm("alpha", "https://c.com"),
	}

	strict := organizer.NamerConfig{FolderPathThreshold: 0.5, SecondaryWordThreshold: 0.5}
	if got := organizer.NameCluster(bookmarks, strict); got != "Alpha" {
		t.Errorf("expected Alpha, got %q", got)
	}

	loose := organizer.NamerConfig{FolderPathThreshold: 0.3, SecondaryWordThreshold: 0.3}
	if got := organizer.NameCluster(bookmarks, loose); got != "Work" {
		t.Errorf("expected Work, got %q", got)
	}

	secondary := organizer.NamerConfig{FolderPathThreshold: 1, SecondaryWordThreshold: 0.3}
	if got := organizer.NameCluster(bookmarks, secondary); got != "Alpha & Beta" {
		t.Errorf("expected Alpha & Beta, got %q", got)
	}
}

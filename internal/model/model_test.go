package model_test

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/nikbrunner/bmorg/internal/model"
)

func TestBookmark_JSONSerialization(t *testing.T) {
	tests := []struct {
		name     string
		bookmark model.Bookmark
	}{
		{
			name: "bookmark with all fields",
			bookmark: model.Bookmark{
				Title:        "TanStack Router",
				URL:          "https://tanstack.com/router",
				AddDate:      "1700000000",
				LastModified: "1700000100",
				Icon:         "data:image/png;base64,AAAA",
				FolderPath:   []string{"Dev", "React"},
			},
		},
		{
			name: "root level bookmark (no folder)",
			bookmark: model.NewBookmark(model.NewBookmarkParams{
				Title: "Example",
				URL:   "https://example.com",
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.bookmark)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if !strings.Contains(string(data), `"folder_path":[`) {
				t.Errorf("expected folder_path array in %s", data)
			}

			var got model.Bookmark
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if !reflect.DeepEqual(got, tt.bookmark) {
				t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, tt.bookmark)
			}
		})
	}
}

func TestBookmark_CloneAndRetag(t *testing.T) {
	orig := model.NewBookmark(model.NewBookmarkParams{
		Title:      "Docs",
		URL:        "https://docs.python.org",
		FolderPath: []string{"Bookmarks bar", "Python"},
	})

	clone := orig.Clone()
	clone.FolderPath[0] = "changed"
	if orig.FolderPath[0] != "Bookmarks bar" {
		t.Errorf("clone shares folder path with original: %v", orig.FolderPath)
	}

	retagged := orig.Retag(model.BookmarksBarName)
	if !reflect.DeepEqual(retagged.FolderPath, []string{model.BookmarksBarName}) {
		t.Errorf("expected retagged path, got %v", retagged.FolderPath)
	}
	if len(orig.FolderPath) != 2 {
		t.Errorf("retag modified original: %v", orig.FolderPath)
	}
	if retagged.URL != orig.URL || retagged.Title != orig.Title {
		t.Errorf("retag changed identity: %+v", retagged)
	}
}

func TestBookmark_InFolder(t *testing.T) {
	b := model.Bookmark{FolderPath: []string{"Work", "Bookmarks bar"}}

	if !b.InFolder("Bookmarks bar") {
		t.Error("expected segment match")
	}
	if b.InFolder("bookmarks bar") {
		t.Error("segment match must be case sensitive")
	}
	if b.InFolder("Bookmarks") {
		t.Error("partial segment must not match")
	}
}

func TestFolder_GetSubfolder(t *testing.T) {
	root := model.NewFolder(model.NewFolderParams{Name: model.RootFolderName, AddDate: "42", LastModified: "42"})

	bar := root.GetSubfolder(model.BookmarksBarName)
	dev := root.GetSubfolder("Dev")
	again := root.GetSubfolder(model.BookmarksBarName)

	if bar != again {
		t.Error("expected existing subfolder to be returned")
	}
	if dev.AddDate != "42" || dev.LastModified != "42" {
		t.Errorf("expected inherited timestamps, got %q/%q", dev.AddDate, dev.LastModified)
	}

	var names []string
	for _, child := range root.Subfolders() {
		names = append(names, child.Name)
	}
	if !reflect.DeepEqual(names, []string{model.BookmarksBarName, "Dev"}) {
		t.Errorf("expected insertion order, got %v", names)
	}

	if _, ok := root.Subfolder("Missing"); ok {
		t.Error("Subfolder must not create children")
	}
	if len(root.Subfolders()) != 2 {
		t.Errorf("expected 2 subfolders, got %d", len(root.Subfolders()))
	}
}

func TestFolder_AddBookmarkCopies(t *testing.T) {
	folder := model.NewFolder(model.NewFolderParams{Name: "Dev"})
	b := model.Bookmark{Title: "Repo", URL: "https://github.com/a", FolderPath: []string{"Dev"}}

	folder.AddBookmark(b)
	b.FolderPath[0] = "changed"

	if folder.Bookmarks[0].FolderPath[0] != "Dev" {
		t.Errorf("stored bookmark shares memory with caller: %v", folder.Bookmarks[0].FolderPath)
	}
}

func newTree() *model.FolderNode {
	root := model.NewFolder(model.NewFolderParams{Name: model.RootFolderName})
	root.GetSubfolder(model.BookmarksBarName).AddBookmark(model.Bookmark{Title: "Mail", URL: "https://mail.example.com"})
	dev := root.GetSubfolder("Dev")
	dev.AddBookmark(model.Bookmark{Title: "Repo", URL: "https://github.com/a"})
	dev.AddBookmark(model.Bookmark{Title: "Mail", URL: "https://mail.example.com"})
	dev.GetSubfolder("Go").AddBookmark(model.Bookmark{Title: "Go", URL: "https://go.dev"})
	return root
}

func TestFolder_Counts(t *testing.T) {
	root := newTree()

	if got := root.CountBookmarks(); got != 4 {
		t.Errorf("expected 4 placements, got %d", got)
	}
	if got := root.CountFolders(); got != 4 {
		t.Errorf("expected 4 folders including root, got %d", got)
	}

	empty := model.NewFolder(model.NewFolderParams{Name: model.RootFolderName})
	if empty.CountBookmarks() != 0 || empty.CountFolders() != 1 {
		t.Errorf("unexpected counts for empty tree: %d/%d", empty.CountBookmarks(), empty.CountFolders())
	}
}

func TestFolder_Walk(t *testing.T) {
	var paths []string
	newTree().Walk(func(path []string, node *model.FolderNode) {
		paths = append(paths, strings.Join(path, "/"))
	})

	want := []string{"", model.BookmarksBarName, "Dev", "Dev/Go"}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("expected %v, got %v", want, paths)
	}
}

func TestFolder_JSONSerialization(t *testing.T) {
	tests := []struct {
		name string
		root *model.FolderNode
	}{
		{
			name: "root level folder",
			root: model.NewFolder(model.NewFolderParams{Name: model.RootFolderName, AddDate: "1", LastModified: "2"}),
		},
		{
			name: "nested folder",
			root: newTree(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.root)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if !json.Valid(data) {
				t.Fatalf("invalid JSON: %s", data)
			}

			var got model.FolderNode
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}

			again, err := json.Marshal(&got)
			if err != nil {
				t.Fatalf("marshal decoded tree: %v", err)
			}
			if string(again) != string(data) {
				t.Errorf("round trip changed encoding:\n got %s\nwant %s", again, data)
			}
		})
	}
}

func TestFolder_JSONKeepsSubfolderOrder(t *testing.T) {
	root := model.NewFolder(model.NewFolderParams{Name: model.RootFolderName})
	for _, name := range []string{"Zeta", "Alpha", "Mid"} {
		root.GetSubfolder(name)
	}

	data, err := json.Marshal(root)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	zeta := strings.Index(string(data), `"Zeta"`)
	alpha := strings.Index(string(data), `"Alpha"`)
	mid := strings.Index(string(data), `"Mid"`)
	if !(zeta < alpha && alpha < mid) {
		t.Errorf("expected insertion order in %s", data)
	}
}

func TestGenerateUUID(t *testing.T) {
	a, b := model.GenerateUUID(), model.GenerateUUID()
	if len(a) != 36 {
		t.Errorf("expected 36 characters, got %q", a)
	}
	if a == b {
		t.Error("expected distinct identifiers")
	}
}

package search

import (
	"github.com/nikbrunner/bmorg/internal/model"
	"github.com/sahilm/fuzzy"
)

// SearchResult represents a fuzzy search match.
type SearchResult struct {
	Bookmark       *model.Bookmark
	Folder         []string // path from below the root down to the containing folder
	MatchedIndexes []int
	Score          int
}

type placement struct {
	bookmark *model.Bookmark
	folder   []string
}

// placements implements fuzzy.Source over every bookmark in a tree.
type placements []placement

func (p placements) String(i int) string {
	return p[i].bookmark.Title
}

func (p placements) Len() int {
	return len(p)
}

// FuzzySearchBookmarks searches all bookmarks of the tree by title using fuzzy
// matching. A bookmark placed in several folders yields one result per folder.
// Returns results sorted by match score (best first).
func FuzzySearchBookmarks(root *model.FolderNode, query string) []SearchResult {
	if query == "" || root == nil {
		return nil
	}

	var all placements
	root.Walk(func(path []string, node *model.FolderNode) {
		for i := range node.Bookmarks {
			all = append(all, placement{bookmark: &node.Bookmarks[i], folder: path})
		}
	})

	matches := fuzzy.FindFrom(query, all)

	results := make([]SearchResult, len(matches))
	for i, m := range matches {
		results[i] = SearchResult{
			Bookmark:       all[m.Index].bookmark,
			Folder:         all[m.Index].folder,
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}

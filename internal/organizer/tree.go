package organizer

import (
	"slices"

	"github.com/nikbrunner/bmorg/internal/model"
)

// TreeBuilder assembles the output folder tree.
type TreeBuilder struct {
	root *model.FolderNode
	bar  *model.FolderNode
	urls map[string]struct{} // already in the Bookmarks Bar
}

// NewTreeBuilder creates a root holding an empty Bookmarks Bar.
// Every folder created by the builder carries timestamp as its dates.
func NewTreeBuilder(timestamp string) *TreeBuilder {
	root := model.NewFolder(model.NewFolderParams{
		Name:         model.RootFolderName,
		AddDate:      timestamp,
		LastModified: timestamp,
	})
	return &TreeBuilder{
		root: root,
		bar:  root.GetSubfolder(model.BookmarksBarName),
		urls: make(map[string]struct{}),
	}
}

// AddCluster copies bookmarks into the folder name directly under the root.
// Clusters sharing a name share the folder.
func (t *TreeBuilder) AddCluster(name string, bookmarks []model.Bookmark) *model.FolderNode {
	folder := t.root.GetSubfolder(name)
	for _, b := range bookmarks {
		folder.AddBookmark(b.Retag(name))
	}
	return folder
}

// AddToBar copies b into the Bookmarks Bar unless its URL is already there.
func (t *TreeBuilder) AddToBar(b model.Bookmark) bool {
	if _, ok := t.urls[b.URL]; ok {
		return false
	}
	t.urls[b.URL] = struct{}{}
	t.bar.AddBookmark(b.Retag(model.BookmarksBarName))
	return true
}

// Root returns the tree. The builder must not be used afterwards.
func (t *TreeBuilder) Root() *model.FolderNode {
	return t.root
}

// groupByLabel returns, for each distinct label in ascending order, the
// bookmarks carrying it in input order.
func groupByLabel(bookmarks []model.Bookmark, labels []int) (order []int, groups map[int][]model.Bookmark) {
	groups = make(map[int][]model.Bookmark)
	for i, label := range labels {
		if _, ok := groups[label]; !ok {
			order = append(order, label)
		}
		groups[label] = append(groups[label], bookmarks[i])
	}
	slices.Sort(order)
	return order, groups
}

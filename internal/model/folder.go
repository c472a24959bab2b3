package model

import (
	"bytes"
	"encoding/json"
)

const (
	// RootFolderName is the name of the synthetic root; serializers never render it.
	RootFolderName = "root"
	// BookmarksBarName is the toolbar folder every organized tree contains.
	BookmarksBarName = "Bookmarks Bar"
)

// FolderNode is one folder of the organized output tree.
// Each node owns its children; child names are unique and keep insertion order.
type FolderNode struct {
	Name         string
	AddDate      string
	LastModified string
	Bookmarks    []Bookmark

	subfolders map[string]*FolderNode
	order      []string
}

// NewFolderParams holds parameters for creating a new FolderNode.
type NewFolderParams struct {
	Name         string
	AddDate      string
	LastModified string
}

// NewFolder creates an empty FolderNode.
func NewFolder(params NewFolderParams) *FolderNode {
	return &FolderNode{
		Name:         params.Name,
		AddDate:      params.AddDate,
		LastModified: params.LastModified,
		Bookmarks:    []Bookmark{},
		subfolders:   make(map[string]*FolderNode),
	}
}

// GetSubfolder returns the child named name, creating it if absent.
// A created child inherits the parent's timestamps.
func (f *FolderNode) GetSubfolder(name string) *FolderNode {
	if child, ok := f.subfolders[name]; ok {
		return child
	}
	if f.subfolders == nil {
		f.subfolders = make(map[string]*FolderNode)
	}

	child := NewFolder(NewFolderParams{
		Name:         name,
		AddDate:      f.AddDate,
		LastModified: f.LastModified,
	})
	f.subfolders[name] = child
	f.order = append(f.order, name)
	return child
}

// Subfolder returns the child named name without creating it.
func (f *FolderNode) Subfolder(name string) (*FolderNode, bool) {
	child, ok := f.subfolders[name]
	return child, ok
}

// Subfolders returns the children in insertion order.
func (f *FolderNode) Subfolders() []*FolderNode {
	result := make([]*FolderNode, 0, len(f.order))
	for _, name := range f.order {
		result = append(result, f.subfolders[name])
	}
	return result
}

// AddBookmark appends a copy of b.
func (f *FolderNode) AddBookmark(b Bookmark) {
	f.Bookmarks = append(f.Bookmarks, b.Clone())
}

// CountBookmarks returns the number of bookmarks in f and all descendants.
// The same URL in two folders counts twice.
func (f *FolderNode) CountBookmarks() int {
	n := len(f.Bookmarks)
	for _, child := range f.Subfolders() {
		n += child.CountBookmarks()
	}
	return n
}

// CountFolders returns the number of nodes in the subtree, f included.
func (f *FolderNode) CountFolders() int {
	n := 1
	for _, child := range f.Subfolders() {
		n += child.CountFolders()
	}
	return n
}

// Walk calls fn for f and every descendant, depth first, parents before children.
// path holds the names from the first level below f down to the visited node.
func (f *FolderNode) Walk(fn func(path []string, node *FolderNode)) {
	var walk func(path []string, node *FolderNode)
	walk = func(path []string, node *FolderNode) {
		fn(path, node)
		for _, child := range node.Subfolders() {
			walk(append(append([]string{}, path...), child.Name), child)
		}
	}
	walk(nil, f)
}

// MarshalJSON encodes the node with subfolders as an object in insertion order.
func (f *FolderNode) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	header, err := json.Marshal(struct {
		Name         string     `json:"name"`
		AddDate      string     `json:"add_date"`
		LastModified string     `json:"last_modified"`
		Bookmarks    []Bookmark `json:"bookmarks"`
	}{f.Name, f.AddDate, f.LastModified, nonNil(f.Bookmarks)})
	if err != nil {
		return nil, err
	}

	// Drop the closing brace and append subfolders by hand to keep their order.
	buf.Write(header[:len(header)-1])
	buf.WriteString(`,"subfolders":{`)
	for i, name := range f.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		child, err := f.subfolders[name].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(child)
	}
	buf.WriteString("}}")

	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a node written by MarshalJSON, preserving subfolder order.
func (f *FolderNode) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name         string          `json:"name"`
		AddDate      string          `json:"add_date"`
		LastModified string          `json:"last_modified"`
		Bookmarks    []Bookmark      `json:"bookmarks"`
		Subfolders   json.RawMessage `json:"subfolders"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*f = *NewFolder(NewFolderParams{Name: raw.Name, AddDate: raw.AddDate, LastModified: raw.LastModified})
	f.Bookmarks = nonNil(raw.Bookmarks)

	if len(raw.Subfolders) == 0 || string(raw.Subfolders) == "null" {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw.Subfolders))
	if _, err := dec.Token(); err != nil { // {
		return err
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := tok.(string)

		var child FolderNode
		if err := dec.Decode(&child); err != nil {
			return err
		}
		child.Name = name
		if _, dup := f.subfolders[name]; !dup {
			f.order = append(f.order, name)
		}
		f.subfolders[name] = &child
	}
	return nil
}

func nonNil(bookmarks []Bookmark) []Bookmark {
	if bookmarks == nil {
		return []Bookmark{}
	}
	return bookmarks
}

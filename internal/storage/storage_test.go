package storage_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nikbrunner/bmorg/internal/model"
	"github.com/nikbrunner/bmorg/internal/storage"
	"gotest.tools/v3/assert"
)

func TestJSONStorage_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "organized.json")
	s := storage.NewJSONStorage(path)

	root := sampleTree()
	assert.NilError(t, s.Save(root))

	loaded, err := s.Load()
	assert.NilError(t, err)
	assert.Equal(t, marshal(t, loaded), marshal(t, root))

	var names []string
	for _, f := range loaded.Subfolders() {
		names = append(names, f.Name)
	}
	assert.DeepEqual(t, names, []string{model.BookmarksBarName, "Code", "Alpha"})
}

func TestJSONStorage_FieldNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "organized.json")
	assert.NilError(t, storage.NewJSONStorage(path).Save(sampleTree()))

	data, err := os.ReadFile(path)
	assert.NilError(t, err)
	for _, field := range []string{`"name"`, `"add_date"`, `"last_modified"`, `"bookmarks"`, `"subfolders"`, `"folder_path"`, `"icon"`} {
		assert.Assert(t, strings.Contains(string(data), field), field)
	}
}

func TestJSONStorage_MissingFile(t *testing.T) {
	s := storage.NewJSONStorage(filepath.Join(t.TempDir(), "missing.json"))

	root, err := s.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root.CountFolders() != 1 {
		t.Errorf("expected empty root, got %d folders", root.CountFolders())
	}
}

func TestOpenStorage(t *testing.T) {
	dir := t.TempDir()

	s, err := storage.OpenStorage(filepath.Join(dir, "tree.json"))
	assert.NilError(t, err)
	_, isJSON := s.(*storage.JSONStorage)
	assert.Assert(t, isJSON)

	s, err = storage.OpenStorage(filepath.Join(dir, "tree.sqlite"))
	assert.NilError(t, err)
	sqlite, isSQLite := s.(*storage.SQLiteStorage)
	assert.Assert(t, isSQLite)
	sqlite.Close()

	_, err = storage.OpenStorage(filepath.Join(dir, "tree.xml"))
	assert.Assert(t, errors.Is(err, storage.ErrUnknownFormat))
}

func TestBookmarks_RoundTrip(t *testing.T) {
	bookmarks := []model.Bookmark{
		model.NewBookmark(model.NewBookmarkParams{Title: "A", URL: "https://a.com", AddDate: "1", FolderPath: []string{"X", "Y"}}),
		{Title: "B", URL: ""},
	}

	for _, ext := range []string{".json", ".jsonl"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bookmarks"+ext)
			assert.NilError(t, storage.SaveBookmarks(path, bookmarks))

			loaded, err := storage.LoadBookmarks(path)
			assert.NilError(t, err)
			assert.Equal(t, len(loaded), 2)
			assert.DeepEqual(t, loaded[0], bookmarks[0])
			assert.DeepEqual(t, loaded[1].FolderPath, []string{})
		})
	}
}

func TestLoadBookmarks_MissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.jsonl")
	content := `{"title": "Only title", "url": "https://a.com"}

{"url": "https://b.com", "folder_path": ["Bookmarks bar"]}
`
	assert.NilError(t, os.WriteFile(path, []byte(content), 0644))

	loaded, err := storage.LoadBookmarks(path)
	assert.NilError(t, err)
	assert.Equal(t, len(loaded), 2)
	assert.Equal(t, loaded[0].Icon, "")
	assert.Equal(t, loaded[0].AddDate, "")
	assert.DeepEqual(t, loaded[0].FolderPath, []string{})
	assert.DeepEqual(t, loaded[1].FolderPath, []string{"Bookmarks bar"})
}

func TestLoadBookmarks_Errors(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.jsonl")
	assert.NilError(t, os.WriteFile(bad, []byte("{\"title\": 1}\n"), 0644))
	_, err := storage.LoadBookmarks(bad)
	assert.ErrorContains(t, err, "line 1")

	_, err = storage.LoadBookmarks(filepath.Join(dir, "bookmarks.csv"))
	assert.Assert(t, err != nil)

	err = storage.SaveBookmarks(filepath.Join(dir, "bookmarks.csv"), nil)
	assert.Assert(t, errors.Is(err, storage.ErrUnknownFormat))
}

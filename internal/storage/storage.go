package storage

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nikbrunner/bmorg/internal/model"
)

// ErrUnknownFormat is returned for a path whose extension no backend handles.
var ErrUnknownFormat = errors.New("unknown file format")

// Storage defines the interface for persisting an organized tree.
type Storage interface {
	Load() (*model.FolderNode, error)
	Save(root *model.FolderNode) error
}

// JSONStorage implements Storage using a JSON file.
type JSONStorage struct {
	path string
}

// NewJSONStorage creates a new JSONStorage with the given file path.
func NewJSONStorage(path string) *JSONStorage {
	return &JSONStorage{path: path}
}

// Path returns the storage file path.
func (s *JSONStorage) Path() string {
	return s.path
}

// Load reads the tree from the JSON file.
// Returns an empty root if the file doesn't exist.
func (s *JSONStorage) Load() (*model.FolderNode, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.NewFolder(model.NewFolderParams{Name: model.RootFolderName}), nil
		}
		return nil, err
	}

	var root model.FolderNode
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return &root, nil
}

// Save writes the tree to the JSON file.
// Creates the directory if it doesn't exist.
func (s *JSONStorage) Save(root *model.FolderNode) error {
	data, err := json.MarshalIndent(root, "", "    ")
	if err != nil {
		return err
	}
	return WriteFile(s.path, data)
}

// OpenStorage opens the tree backend matching the extension of path:
// .json for JSON, .db, .sqlite or .sqlite3 for SQLite.
func OpenStorage(path string) (Storage, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return NewJSONStorage(path), nil
	case ".db", ".sqlite", ".sqlite3":
		return NewSQLiteStorage(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// LoadBookmarks reads a flat bookmark list, either a JSON array (.json) or
// one JSON object per line (.jsonl). Missing fields decode as empty.
func LoadBookmarks(path string) ([]model.Bookmark, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var bookmarks []model.Bookmark
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &bookmarks); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	case ".jsonl":
		scanner := bufio.NewScanner(bytes.NewReader(data))
		scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
		line := 0
		for scanner.Scan() {
			line++
			text := bytes.TrimSpace(scanner.Bytes())
			if len(text) == 0 {
				continue
			}
			var b model.Bookmark
			if err := json.Unmarshal(text, &b); err != nil {
				return nil, fmt.Errorf("decode %s line %d: %w", path, line, err)
			}
			bookmarks = append(bookmarks, b)
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}

	for i := range bookmarks {
		if bookmarks[i].FolderPath == nil {
			bookmarks[i].FolderPath = []string{}
		}
	}
	return bookmarks, nil
}

// SaveBookmarks writes a flat bookmark list as a JSON array (.json) or JSON lines (.jsonl).
func SaveBookmarks(path string, bookmarks []model.Bookmark) error {
	normalized := make([]model.Bookmark, len(bookmarks))
	for i, b := range bookmarks {
		normalized[i] = model.NewBookmark(model.NewBookmarkParams(b))
	}

	var buf bytes.Buffer
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err := json.MarshalIndent(normalized, "", "    ")
		if err != nil {
			return err
		}
		buf.Write(data)
	case ".jsonl":
		enc := json.NewEncoder(&buf)
		for _, b := range normalized {
			if err := enc.Encode(b); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	return WriteFile(path, buf.Bytes())
}

// WriteFile creates the parent directory and writes data.
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

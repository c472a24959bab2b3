package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/nikbrunner/bmorg/internal/model"
)

const currentSchemaVersion = 1

// SQLiteStorage implements Storage using a SQLite database.
// Each Save replaces the previous tree.
type SQLiteStorage struct {
	db   *sql.DB
	path string
}

// NewSQLiteStorage creates a new SQLiteStorage with the given database path.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	s := &SQLiteStorage{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// migrate runs database migrations.
func (s *SQLiteStorage) migrate() error {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	if version > currentSchemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", version, currentSchemaVersion)
	}
	return nil
}

// migrateV1 creates the initial schema.
func (s *SQLiteStorage) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS folders (
			id TEXT PRIMARY KEY NOT NULL,
			name TEXT NOT NULL,
			parent_id TEXT,
			position INTEGER NOT NULL,
			add_date TEXT NOT NULL DEFAULT '',
			last_modified TEXT NOT NULL DEFAULT '',
			FOREIGN KEY (parent_id) REFERENCES folders(id) ON DELETE CASCADE,
			UNIQUE (parent_id, name)
		);

		CREATE INDEX IF NOT EXISTS idx_folders_parent_id ON folders(parent_id);

		CREATE TABLE IF NOT EXISTS bookmarks (
			id TEXT PRIMARY KEY NOT NULL,
			folder_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			title TEXT NOT NULL,
			url TEXT NOT NULL,
			add_date TEXT NOT NULL DEFAULT '',
			last_modified TEXT NOT NULL DEFAULT '',
			icon TEXT NOT NULL DEFAULT '',
			folder_path TEXT NOT NULL DEFAULT '[]',
			FOREIGN KEY (folder_id) REFERENCES folders(id) ON DELETE CASCADE
		);

		CREATE INDEX IF NOT EXISTS idx_bookmarks_folder_id ON bookmarks(folder_id);
		CREATE INDEX IF NOT EXISTS idx_bookmarks_url ON bookmarks(url);

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save replaces the stored tree with root.
// Uses a transaction for atomicity - all or nothing.
func (s *SQLiteStorage) Save(root *model.FolderNode) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Clear existing data
	if _, err := tx.Exec("DELETE FROM bookmarks"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM folders"); err != nil {
		return err
	}

	folderStmt, err := tx.Prepare(`
		INSERT INTO folders (id, name, parent_id, position, add_date, last_modified)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer folderStmt.Close()

	bookmarkStmt, err := tx.Prepare(`
		INSERT INTO bookmarks (id, folder_id, position, title, url, add_date, last_modified, icon, folder_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer bookmarkStmt.Close()

	// Parents are inserted before their children.
	var insert func(node *model.FolderNode, parentID *string, position int) error
	insert = func(node *model.FolderNode, parentID *string, position int) error {
		id := model.GenerateUUID()
		if _, err := folderStmt.Exec(id, node.Name, parentID, position, node.AddDate, node.LastModified); err != nil {
			return fmt.Errorf("insert folder %q: %w", node.Name, err)
		}

		for i, b := range node.Bookmarks {
			pathJSON, err := json.Marshal(b.FolderPath)
			if err != nil {
				return err
			}
			if b.FolderPath == nil {
				pathJSON = []byte("[]")
			}
			if _, err := bookmarkStmt.Exec(
				model.GenerateUUID(), id, i, b.Title, b.URL,
				b.AddDate, b.LastModified, b.Icon, string(pathJSON),
			); err != nil {
				return fmt.Errorf("insert bookmark %q: %w", b.URL, err)
			}
		}

		for i, child := range node.Subfolders() {
			if err := insert(child, &id, i); err != nil {
				return err
			}
		}
		return nil
	}

	if err := insert(root, nil, 0); err != nil {
		return err
	}

	return tx.Commit()
}

type folderRow struct {
	id           string
	name         string
	parentID     sql.NullString
	addDate      string
	lastModified string
}

// Load rebuilds the stored tree. An empty database yields an empty root.
func (s *SQLiteStorage) Load() (*model.FolderNode, error) {
	rows, err := s.db.Query(`
		SELECT id, name, parent_id, add_date, last_modified
		FROM folders
		ORDER BY position, rowid
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var folders []folderRow
	for rows.Next() {
		var f folderRow
		if err := rows.Scan(&f.id, &f.name, &f.parentID, &f.addDate, &f.lastModified); err != nil {
			return nil, err
		}
		folders = append(folders, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	children := make(map[string][]folderRow)
	var root *folderRow
	for i := range folders {
		f := folders[i]
		if !f.parentID.Valid {
			if root != nil {
				return nil, fmt.Errorf("database holds more than one root folder")
			}
			root = &folders[i]
			continue
		}
		children[f.parentID.String] = append(children[f.parentID.String], f)
	}
	if root == nil {
		return model.NewFolder(model.NewFolderParams{Name: model.RootFolderName}), nil
	}

	nodes := make(map[string]*model.FolderNode, len(folders))
	rootNode := model.NewFolder(model.NewFolderParams{Name: root.name, AddDate: root.addDate, LastModified: root.lastModified})
	nodes[root.id] = rootNode

	var build func(parentID string, parent *model.FolderNode)
	build = func(parentID string, parent *model.FolderNode) {
		for _, f := range children[parentID] {
			node := parent.GetSubfolder(f.name)
			node.AddDate = f.addDate
			node.LastModified = f.lastModified
			nodes[f.id] = node
			build(f.id, node)
		}
	}
	build(root.id, rootNode)

	bookmarkRows, err := s.db.Query(`
		SELECT folder_id, title, url, add_date, last_modified, icon, folder_path
		FROM bookmarks
		ORDER BY folder_id, position
	`)
	if err != nil {
		return nil, err
	}
	defer bookmarkRows.Close()

	for bookmarkRows.Next() {
		var folderID, pathJSON string
		var b model.Bookmark
		if err := bookmarkRows.Scan(&folderID, &b.Title, &b.URL, &b.AddDate, &b.LastModified, &b.Icon, &pathJSON); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(pathJSON), &b.FolderPath); err != nil || b.FolderPath == nil {
			b.FolderPath = []string{}
		}
		node, ok := nodes[folderID]
		if !ok {
			return nil, fmt.Errorf("bookmark %q references unknown folder %s", b.URL, folderID)
		}
		node.Bookmarks = append(node.Bookmarks, b)
	}
	if err := bookmarkRows.Err(); err != nil {
		return nil, err
	}

	return rootNode, nil
}

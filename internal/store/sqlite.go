package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const dbFileName = "studydesk.db"

// SQLiteStore persists collections as rows in a single blobs table.
// It satisfies the same get/set contract as FileStore; the backend is
// selected by the storage setting in config.yml.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if necessary) the database at dir/studydesk.db.
func OpenSQLite(dir string) (*SQLiteStore, error) {
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFileName)
	dsn := dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS blobs (
		key   TEXT PRIMARY KEY,
		value BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	// Restrict permissions after the file exists (best-effort).
	_ = os.Chmod(dbPath, fileMode)

	return &SQLiteStore{db: db}, nil
}

// Get implements Store. Missing rows and undecodable blobs leave v untouched.
func (s *SQLiteStore) Get(key string, v any) error {
	var data []byte
	err := s.db.QueryRow(`SELECT value FROM blobs WHERE key = ?`, key).Scan(&data)
	if err != nil {
		return nil // missing blob: fall back to the empty collection
	}
	decodeBlob(data, v) // corrupt blob: same fallback
	return nil
}

// Set implements Store.
func (s *SQLiteStore) Set(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	_, err = s.db.Exec(`INSERT INTO blobs (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, data)
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

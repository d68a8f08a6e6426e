package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/studydesk/studydesk/internal/filelock"
)

const (
	fileMode = 0o600
	dirMode  = 0o750
)

// FileStore persists each collection as <key>.json inside the data directory.
// Writes are serialized through an advisory lock so concurrent commands do
// not interleave partial blobs.
type FileStore struct {
	dir string
}

// OpenFile creates a FileStore rooted at dir, creating the directory if needed.
func OpenFile(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Get implements Store. Missing files and undecodable blobs leave v untouched.
func (s *FileStore) Get(key string, v any) error {
	data, err := os.ReadFile(s.path(key)) //nolint:gosec // path derived from fixed collection keys
	if err != nil {
		return nil // missing blob: fall back to the empty collection
	}
	decodeBlob(data, v) // corrupt blob: same fallback, no repair step
	return nil
}

// Set implements Store.
func (s *FileStore) Set(key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}

	unlock, err := filelock.Lock(filepath.Join(s.dir, ".lock"))
	if err != nil {
		return fmt.Errorf("acquiring lock: %w", err)
	}
	defer unlock() //nolint:errcheck // best-effort unlock on exit

	if err := os.WriteFile(s.path(key), data, fileMode); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// Close implements Store. FileStore holds no open resources.
func (s *FileStore) Close() error { return nil }

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

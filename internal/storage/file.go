package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

const itemExt = ".json"

//nolint:gochecknoglobals // Compiled once, read-only
var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)

// FileStore keeps one file per key inside a directory.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates the directory if needed and returns a store rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	//nolint:gosec // G301: 0755 is appropriate for a user data directory
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory backing the store.
func (s *FileStore) Dir() string {
	return s.dir
}

// SanitizeKey converts a storage key into a safe file name.
func SanitizeKey(key string) string {
	name := unsafeKeyChars.ReplaceAllString(key, "-")
	name = strings.Trim(name, "-.")
	if name == "" {
		return "item"
	}
	return name
}

func (s *FileStore) itemPath(key string) string {
	return filepath.Join(s.dir, SanitizeKey(key)+itemExt)
}

// GetItem reads the value stored under key.
func (s *FileStore) GetItem(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.itemPath(key))
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(data), true, nil
}

// SetItem writes value under key, replacing the file atomically.
func (s *FileStore) SetItem(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err = tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Rename(tmpName, s.itemPath(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace item: %w", err)
	}
	return nil
}

// RemoveItem deletes the value stored under key.
func (s *FileStore) RemoveItem(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.itemPath(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close is a no-op for file storage.
func (s *FileStore) Close() error {
	return nil
}

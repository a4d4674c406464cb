// Package storage provides the key/value store the board persists into.
package storage

import (
	"context"
	"path/filepath"

	boarderrors "github.com/abatilo/taskboard/internal/errors"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"

	sqliteFile = "taskboard.db"
)

// Storage is a string key/value store with local-storage semantics:
// a missing key is not an error, and removing a missing key is a no-op.
type Storage interface {
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
	Close() error
}

// IsValidBackend checks if a backend name is supported.
func IsValidBackend(name string) bool {
	switch name {
	case BackendFile, BackendSQLite, BackendMemory:
		return true
	default:
		return false
	}
}

// Open returns the backend named by backend, rooted at dir.
func Open(ctx context.Context, backend, dir string) (Storage, error) {
	switch backend {
	case BackendFile:
		return NewFileStore(dir)
	case BackendSQLite:
		return OpenSQLite(ctx, filepath.Join(dir, sqliteFile))
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, boarderrors.UnknownBackendError{Name: backend}
	}
}

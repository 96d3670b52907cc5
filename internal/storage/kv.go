// Package storage provides the durable key-value mirror behind the
// session store. Three backends share one contract: an in-memory map for
// tests, a flat directory of files, and a single-table SQLite database.
package storage

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when a key has no stored value.
var ErrNotFound = errors.New("key not found")

// KV is the durable key-value store contract. Values are opaque bytes;
// callers own serialization. A missing key is not an error condition for
// Delete (idempotent), only for Get.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Open constructs a KV store for the named backend rooted at path.
func Open(backend, path string) (KV, error) {
	switch backend {
	case BackendMemory:
		return NewMemory(), nil
	case BackendFile:
		return NewFile(path)
	case BackendSQLite:
		return NewSQLite(path)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", backend)
	}
}

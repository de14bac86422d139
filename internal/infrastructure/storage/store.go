// Package storage provides the key-value stores desktops persist into.
//
// Two backends implement Store: an in-memory map and a SQLite table. Both
// enforce a byte quota so a desktop behaves like a browser's local storage,
// where large inline content can fill the store. Namespace scopes a store to
// one profile.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// DefaultQuota matches the usual local storage limit of a browser origin
const DefaultQuota = 5 * 1024 * 1024

var (
	// ErrNotFound is returned by Get for missing keys
	ErrNotFound = errors.New("storage: key not found")
	// ErrQuotaExceeded is returned by Set when the value does not fit
	ErrQuotaExceeded = errors.New("storage: quota exceeded")
	// ErrClosed is returned after Close
	ErrClosed = errors.New("storage: closed")
)

// Store is a byte-valued key-value store
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
	Close() error
}

// Config selects and configures a backend
type Config struct {
	Driver string // "memory" or "sqlite"
	Path   string
	Quota  int64 // bytes; 0 disables the limit
}

// Open creates the store named by cfg.Driver
func Open(cfg Config) (Store, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", "memory":
		return NewMemory(cfg.Quota), nil
	case "sqlite", "sqlite3":
		return OpenSQLite(cfg.Path, cfg.Quota)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// entrySize is the quota cost of one entry
func entrySize(key string, value []byte) int64 {
	return int64(len(key) + len(value))
}

func validKey(key string) error {
	if key == "" {
		return errors.New("storage: empty key")
	}
	return nil
}

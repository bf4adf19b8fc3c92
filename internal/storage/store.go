// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("key not found")

// Store is a flat key-value store of opaque blobs.
// The application keeps one JSON document per key; the store never looks inside.
// This abstraction allows swapping storage backends without changing the service layer.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// PutAll stores several keys atomically, replacing previous values:
	// either all values are written or none.
	PutAll(ctx context.Context, values map[string][]byte) error

	// Keys lists the stored keys in lexical order.
	Keys(ctx context.Context) ([]string, error)

	// Clear removes every key.
	Clear(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}

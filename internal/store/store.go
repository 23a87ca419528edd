package store

import (
	"context"
)

// Store defines a local key-value store holding string values.
type Store interface {
	// Get returns the value stored under key. ok is false when the key has
	// never been set.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set overwrites the value stored under key.
	Set(ctx context.Context, key, value string) error

	// Lifecycle
	Close() error
}

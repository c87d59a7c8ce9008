// Package storage provides the persistence adapter: a string-keyed
// blob store with get/set/delete/enumerate operations. The store is a
// passive collaborator with no business logic; callers treat it as
// unreliable and degrade gracefully when it fails.
package storage

import "context"

// Store is the key-value persistence adapter.
type Store interface {
	// Get returns the value for key. The second return is false when the
	// key is absent.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set writes the value for key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys enumerates every key currently present.
	Keys(ctx context.Context) ([]string, error)

	Close() error
}

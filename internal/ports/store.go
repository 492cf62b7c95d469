package ports

import (
	"context"
	"errors"
)

// ErrNotFound is returned by KVStore implementations when a key is absent.
var ErrNotFound = errors.New("key not found")

// KVStore defines the opaque persistent key/value store backing user
// profiles and organization ledgers. It offers no transactions and no
// ordering guarantees across keys; concurrent read-modify-write cycles
// on the same key can lose an update.
type KVStore interface {
	// Get retrieves the value for a key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value under a key, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

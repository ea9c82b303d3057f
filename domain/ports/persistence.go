package ports

import "context"

// Persistence is the contract's key/value state.
type Persistence interface {
	// Store writes value under key, replacing any previous value.
	Store(ctx context.Context, key, value []byte) error

	// Get returns the value stored under key or errors.ErrMissingKey.
	Get(ctx context.Context, key []byte) ([]byte, error)

	// Delete removes key. Deleting an absent key returns errors.ErrMissingKey.
	Delete(ctx context.Context, key []byte) error

	// KeyExists reports whether a value is stored under key.
	KeyExists(ctx context.Context, key []byte) (bool, error)
}

package ports

import "context"

// Accounts answers questions about ledger accounts.
type Accounts interface {
	// IsOwner reports whether key owns the running contract.
	IsOwner(ctx context.Context, key []byte) (bool, error)

	// AccountName returns the display name registered for key.
	AccountName(ctx context.Context, key []byte) (string, error)

	// AccountBalance returns the balance held by key.
	AccountBalance(ctx context.Context, key []byte) (uint64, error)
}

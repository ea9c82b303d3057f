package ports

// Services groups the host collaborators that outlive a single call.
type Services interface {
	Persistence
	Accounts
	Crypto
	Logger
	QueryExecutor
}

// Runtime is everything a contract can reach while it executes.
type Runtime interface {
	Transaction
	Services
}

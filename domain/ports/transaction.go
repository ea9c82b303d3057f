package ports

import "context"

// Transaction exposes the inputs and output channel of the current call.
type Transaction interface {
	// Arguments returns the encoded call envelope supplied by the host.
	Arguments(ctx context.Context) ([]byte, error)

	// Return hands the encoded results of the call back to the host.
	Return(ctx context.Context, results []byte) error

	// Sender returns the public key of the caller.
	Sender(ctx context.Context) ([]byte, error)
}

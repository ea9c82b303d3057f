package ports

import "context"

// Logger writes messages to the host log.
type Logger interface {
	Log(ctx context.Context, msg string) error
	LogError(ctx context.Context, msg string) error
}

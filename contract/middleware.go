package contract

import (
	"context"
	"log/slog"
	"time"

	"github.com/reglet-dev/contract-sdk/wireformat"
)

// Middleware wraps an Invocation to add cross-cutting behavior.
// Middleware executes in FIFO order (first registered wraps first, onion model).
type Middleware func(next Invocation) Invocation

// PanicRecoveryMiddleware converts a handler panic into a *PanicError.
// Routers always install it outermost.
func PanicRecoveryMiddleware() Middleware {
	return func(next Invocation) Invocation {
		return func(ctx context.Context) (results []wireformat.Marshaler, err error) {
			defer func() {
				if r := recover(); r != nil {
					results = nil
					err = newPanicError(r)
				}
			}()
			return next(ctx)
		}
	}
}

// LoggingMiddleware logs every invocation with its duration and outcome.
func LoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next Invocation) Invocation {
		return func(ctx context.Context) ([]wireformat.Marshaler, error) {
			attrs := []any{}
			if cc, ok := CallContextFrom(ctx); ok {
				attrs = append(attrs, slog.String("function", cc.FunctionName()), slog.String("kind", string(cc.Kind())))
			}
			start := time.Now()
			results, err := next(ctx)
			attrs = append(attrs, slog.Duration("duration", time.Since(start)))
			if err != nil {
				logger.ErrorContext(ctx, "contract function failed", append(attrs, slog.Any("error", err))...)
			} else {
				logger.DebugContext(ctx, "contract function completed", append(attrs, slog.Int("results", len(results)))...)
			}
			return results, err
		}
	}
}

func chain(inv Invocation, mw []Middleware) Invocation {
	for i := len(mw) - 1; i >= 0; i-- {
		inv = mw[i](inv)
	}
	return inv
}

package hostfuncs

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Middleware is a function that wraps a ByteHandler to add cross-cutting behavior.
// Middleware executes in FIFO order (first registered wraps first, onion model).
//
// Example usage:
//
//	tracing := func(next ByteHandler) ByteHandler {
//	    return func(ctx context.Context, payload []byte) ([]byte, error) {
//	        span := start(ctx)
//	        defer span.End()
//	        return next(ctx, payload)
//	    }
//	}
type Middleware func(next ByteHandler) ByteHandler

// RegistryOption is a functional option for configuring a HandlerRegistry.
type RegistryOption func(*registryBuilder)

// PanicRecoveryMiddleware returns a middleware that catches panics and converts
// them to an ERR result instead of crashing the host.
func PanicRecoveryMiddleware() Middleware {
	return func(next ByteHandler) ByteHandler {
		return func(ctx context.Context, payload []byte) (resp []byte, err error) {
			defer func() {
				if r := recover(); r != nil {
					resp = NewPanicError(r).Encode()
					err = nil
				}
			}()
			return next(ctx, payload)
		}
	}
}

// RequestLimitMiddleware rejects requests larger than limit bytes before they
// reach the handler. A non-positive limit disables the check.
func RequestLimitMiddleware(limit int) Middleware {
	return func(next ByteHandler) ByteHandler {
		return func(ctx context.Context, payload []byte) ([]byte, error) {
			if limit > 0 && len(payload) > limit {
				msg := fmt.Sprintf("request of %d bytes exceeds limit of %d", len(payload), limit)
				return NewValidationError(msg).Encode(), nil
			}
			return next(ctx, payload)
		}
	}
}

// LoggingMiddleware returns a middleware that logs host function invocations.
// ERR results are logged at warn level with their code.
func LoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next ByteHandler) ByteHandler {
		return func(ctx context.Context, payload []byte) ([]byte, error) {
			funcName := "unknown"
			if hc, ok := ctx.(HostContext); ok {
				funcName = hc.FunctionName()
			}
			start := time.Now()
			resp, err := next(ctx, payload)
			attrs := []any{
				slog.String("function", funcName),
				slog.Int("request_bytes", len(payload)),
				slog.Duration("duration", time.Since(start)),
			}
			if err != nil {
				logger.ErrorContext(ctx, "host function failed", append(attrs, slog.Any("error", err))...)
				return resp, err
			}
			if res, derr := DecodeResult(resp); derr == nil && res.Err != nil {
				logger.WarnContext(ctx, "host function returned error",
					append(attrs, slog.Uint64("code", uint64(res.Err.Code)), slog.String("message", res.Err.Message))...)
				return resp, nil
			}
			logger.DebugContext(ctx, "host function completed", attrs...)
			return resp, nil
		}
	}
}

package hostfuncs

import (
	"context"

	sdkerrors "github.com/reglet-dev/contract-sdk/domain/errors"
)

// mutating lists the host functions that change persisted state.
var mutating = map[string]bool{
	FnStore:       true,
	FnDelete:      true,
	FnQueryInsert: true,
}

// IsMutating reports whether the host function name changes persisted state.
func IsMutating(name string) bool {
	return mutating[name]
}

// ReadOnlyGuardMiddleware rejects state-mutating host functions with a
// CodeReadOnly result while the call frame is read-only. The guest SDK
// enforces the same rule; the guard covers guests that bypass it.
func ReadOnlyGuardMiddleware() Middleware {
	return func(next ByteHandler) ByteHandler {
		return func(ctx context.Context, payload []byte) ([]byte, error) {
			hc, ok := ctx.(HostContext)
			if !ok || !IsMutating(hc.FunctionName()) {
				return next(ctx, payload)
			}
			if f, ok := FrameFrom(ctx); ok && f.ReadOnly() {
				return NewErrorResponse(sdkerrors.ErrReadOnlyViolation).Encode(), nil
			}
			return next(ctx, payload)
		}
	}
}

package contract

import (
	"context"
	"fmt"

	"github.com/reglet-dev/contract-sdk/domain/errors"
	"github.com/reglet-dev/contract-sdk/domain/ports"
)

// readOnlyRuntime rejects every state mutation and forwards everything else.
type readOnlyRuntime struct {
	ports.Runtime
}

// ReadOnly wraps rt so that Store, Delete and Insert fail with
// errors.ErrReadOnlyViolation.
func ReadOnly(rt ports.Runtime) ports.Runtime {
	if _, ok := rt.(readOnlyRuntime); ok {
		return rt
	}
	return readOnlyRuntime{Runtime: rt}
}

func (readOnlyRuntime) Store(context.Context, []byte, []byte) error {
	return fmt.Errorf("store: %w", errors.ErrReadOnlyViolation)
}

func (readOnlyRuntime) Delete(context.Context, []byte) error {
	return fmt.Errorf("delete: %w", errors.ErrReadOnlyViolation)
}

func (readOnlyRuntime) Insert(context.Context, []byte) error {
	return fmt.Errorf("insert: %w", errors.ErrReadOnlyViolation)
}

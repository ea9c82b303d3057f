package contract

import (
	"context"
	"fmt"

	sdkerrors "github.com/reglet-dev/contract-sdk/domain/errors"
)

// ConstructedKey is the state key the Router writes once the constructor has
// completed. Contracts must not store or delete it.
const ConstructedKey = "\x00contract:constructed"

// checkDeployed fails with AlreadyConstructed when the host state already
// carries the constructed marker, so a fresh Router over deployed state
// cannot run the constructor again.
func (r *Router) checkDeployed(ctx context.Context, name string) error {
	rt, ok := RuntimeFrom(ctx)
	if !ok {
		return nil
	}
	done, err := rt.KeyExists(ctx, []byte(ConstructedKey))
	if err != nil {
		return &CallError{Kind: HandlerFailed, Function: name, Err: fmt.Errorf("read constructed marker: %w", err)}
	}
	if done {
		r.markConstructed()
		return &CallError{Kind: AlreadyConstructed, Function: name, Err: sdkerrors.ErrAlreadyConstructed}
	}
	return nil
}

// markDeployed persists the constructed marker.
func markDeployed(ctx context.Context) error {
	rt, ok := RuntimeFrom(ctx)
	if !ok {
		return nil
	}
	if err := rt.Store(ctx, []byte(ConstructedKey), []byte{1}); err != nil {
		return fmt.Errorf("store constructed marker: %w", err)
	}
	return nil
}

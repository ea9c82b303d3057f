package contract

import (
	"context"
	"fmt"

	"github.com/reglet-dev/contract-sdk/domain/entities"
	"github.com/reglet-dev/contract-sdk/domain/ports"
)

// Serve runs one host call end to end: it reads the call input from rt,
// dispatches it to the table for kind and returns the output through rt.
// Failures are logged through rt.LogError and returned.
func Serve(ctx context.Context, rt ports.Runtime, r *Router, kind entities.FunctionKind) error {
	err := serve(ctx, rt, r, kind)
	if err != nil {
		if logErr := rt.LogError(ctx, err.Error()); logErr != nil {
			return fmt.Errorf("%w (log_error failed: %v)", err, logErr)
		}
	}
	return err
}

func serve(ctx context.Context, rt ports.Runtime, r *Router, kind entities.FunctionKind) error {
	payload, err := rt.Arguments(ctx)
	if err != nil {
		return fmt.Errorf("fetch call input: %w", err)
	}

	ctx = WithRuntime(ctx, rt)
	var out []byte
	switch kind {
	case entities.KindMutating:
		out, err = r.Execute(ctx, payload)
	case entities.KindReadOnly:
		out, err = r.ExecuteReadOnly(ctx, payload)
	case entities.KindConstructor:
		out, err = r.Construct(ctx, payload)
	default:
		return fmt.Errorf("unknown function kind %q", kind)
	}
	if err != nil {
		return err
	}
	if err := rt.Return(ctx, out); err != nil {
		return fmt.Errorf("return results: %w", err)
	}
	return nil
}

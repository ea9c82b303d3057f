package contract

import (
	"context"
	"fmt"

	"github.com/reglet-dev/contract-sdk/abi"
	"github.com/reglet-dev/contract-sdk/domain/entities"
	"github.com/reglet-dev/contract-sdk/domain/errors"
	"github.com/reglet-dev/contract-sdk/wireformat"
)

// Invocation runs a handler whose arguments are already decoded and returns
// its results in order.
type Invocation func(ctx context.Context) ([]wireformat.Marshaler, error)

// Binder decodes every argument of a call from its slots and returns the
// ready-to-run invocation.
type Binder func(args *abi.Stream) (Invocation, error)

// Function is one registered contract entry point: its parameter decoders,
// handler and result encoders behind a Binder, plus the signature reported
// by Describe.
type Function struct {
	bind    Binder
	inputs  []entities.Parameter
	outputs []entities.Parameter
}

// NewFunction builds a Function from a raw Binder. inputs fixes the number of
// argument slots a call must carry.
func NewFunction(inputs, outputs []entities.Parameter, bind Binder) *Function {
	return &Function{bind: bind, inputs: inputs, outputs: outputs}
}

// Named sets the argument names reported by Describe, in order.
func (f *Function) Named(names ...string) *Function {
	for i, name := range names {
		if i < len(f.inputs) {
			f.inputs[i].Name = name
		}
	}
	return f
}

// Arity returns the number of argument slots the function takes.
func (f *Function) Arity() int {
	return len(f.inputs)
}

func (f *Function) signature(name string, kind entities.FunctionKind) entities.FunctionSignature {
	inputs := make([]entities.Parameter, len(f.inputs))
	copy(inputs, f.inputs)
	outputs := make([]entities.Parameter, len(f.outputs))
	copy(outputs, f.outputs)
	return entities.FunctionSignature{Name: name, Kind: kind, Inputs: inputs, Outputs: outputs}
}

func param[T any](i int) entities.Parameter {
	var zero T
	return entities.Parameter{Name: fmt.Sprintf("arg%d", i), Type: wireformat.TypeName(zero)}
}

func result[R any]() []entities.Parameter {
	var zero R
	return []entities.Parameter{{Name: "returnValue0", Type: wireformat.TypeName(zero)}}
}

func argError(i int, err error) error {
	return fmt.Errorf("%w: argument %d: %w", errors.ErrArgumentDecode, i, err)
}

func one[R wireformat.Marshaler](r R, err error) ([]wireformat.Marshaler, error) {
	if err != nil {
		return nil, err
	}
	return []wireformat.Marshaler{r}, nil
}

// Method0 binds a handler with no arguments and one result.
func Method0[R wireformat.Marshaler](fn func(context.Context) (R, error)) *Function {
	return NewFunction(nil, result[R](), func(*abi.Stream) (Invocation, error) {
		return func(ctx context.Context) ([]wireformat.Marshaler, error) {
			r, err := fn(ctx)
			return one(r, err)
		}, nil
	})
}

// Method1 binds a handler with one argument and one result.
func Method1[A any, PA wireformat.Decodable[A], R wireformat.Marshaler](fn func(context.Context, A) (R, error)) *Function {
	inputs := []entities.Parameter{param[A](0)}
	return NewFunction(inputs, result[R](), func(s *abi.Stream) (Invocation, error) {
		a, err := abi.Pop[A, PA](s)
		if err != nil {
			return nil, argError(0, err)
		}
		return func(ctx context.Context) ([]wireformat.Marshaler, error) {
			r, err := fn(ctx, a)
			return one(r, err)
		}, nil
	})
}

// Method2 binds a handler with two arguments and one result.
func Method2[A, B any, PA wireformat.Decodable[A], PB wireformat.Decodable[B], R wireformat.Marshaler](
	fn func(context.Context, A, B) (R, error),
) *Function {
	inputs := []entities.Parameter{param[A](0), param[B](1)}
	return NewFunction(inputs, result[R](), func(s *abi.Stream) (Invocation, error) {
		a, err := abi.Pop[A, PA](s)
		if err != nil {
			return nil, argError(0, err)
		}
		b, err := abi.Pop[B, PB](s)
		if err != nil {
			return nil, argError(1, err)
		}
		return func(ctx context.Context) ([]wireformat.Marshaler, error) {
			r, err := fn(ctx, a, b)
			return one(r, err)
		}, nil
	})
}

// Method3 binds a handler with three arguments and one result.
func Method3[A, B, C any, PA wireformat.Decodable[A], PB wireformat.Decodable[B], PC wireformat.Decodable[C], R wireformat.Marshaler](
	fn func(context.Context, A, B, C) (R, error),
) *Function {
	inputs := []entities.Parameter{param[A](0), param[B](1), param[C](2)}
	return NewFunction(inputs, result[R](), func(s *abi.Stream) (Invocation, error) {
		a, err := abi.Pop[A, PA](s)
		if err != nil {
			return nil, argError(0, err)
		}
		b, err := abi.Pop[B, PB](s)
		if err != nil {
			return nil, argError(1, err)
		}
		c, err := abi.Pop[C, PC](s)
		if err != nil {
			return nil, argError(2, err)
		}
		return func(ctx context.Context) ([]wireformat.Marshaler, error) {
			r, err := fn(ctx, a, b, c)
			return one(r, err)
		}, nil
	})
}

// Action0 binds a handler with no arguments and no result.
func Action0(fn func(context.Context) error) *Function {
	return NewFunction(nil, nil, func(*abi.Stream) (Invocation, error) {
		return func(ctx context.Context) ([]wireformat.Marshaler, error) {
			return nil, fn(ctx)
		}, nil
	})
}

// Action1 binds a handler with one argument and no result.
func Action1[A any, PA wireformat.Decodable[A]](fn func(context.Context, A) error) *Function {
	inputs := []entities.Parameter{param[A](0)}
	return NewFunction(inputs, nil, func(s *abi.Stream) (Invocation, error) {
		a, err := abi.Pop[A, PA](s)
		if err != nil {
			return nil, argError(0, err)
		}
		return func(ctx context.Context) ([]wireformat.Marshaler, error) {
			return nil, fn(ctx, a)
		}, nil
	})
}

// Action2 binds a handler with two arguments and no result.
func Action2[A, B any, PA wireformat.Decodable[A], PB wireformat.Decodable[B]](fn func(context.Context, A, B) error) *Function {
	inputs := []entities.Parameter{param[A](0), param[B](1)}
	return NewFunction(inputs, nil, func(s *abi.Stream) (Invocation, error) {
		a, err := abi.Pop[A, PA](s)
		if err != nil {
			return nil, argError(0, err)
		}
		b, err := abi.Pop[B, PB](s)
		if err != nil {
			return nil, argError(1, err)
		}
		return func(ctx context.Context) ([]wireformat.Marshaler, error) {
			return nil, fn(ctx, a, b)
		}, nil
	})
}

// Action3 binds a handler with three arguments and no result.
func Action3[A, B, C any, PA wireformat.Decodable[A], PB wireformat.Decodable[B], PC wireformat.Decodable[C]](
	fn func(context.Context, A, B, C) error,
) *Function {
	inputs := []entities.Parameter{param[A](0), param[B](1), param[C](2)}
	return NewFunction(inputs, nil, func(s *abi.Stream) (Invocation, error) {
		a, err := abi.Pop[A, PA](s)
		if err != nil {
			return nil, argError(0, err)
		}
		b, err := abi.Pop[B, PB](s)
		if err != nil {
			return nil, argError(1, err)
		}
		c, err := abi.Pop[C, PC](s)
		if err != nil {
			return nil, argError(2, err)
		}
		return func(ctx context.Context) ([]wireformat.Marshaler, error) {
			return nil, fn(ctx, a, b, c)
		}, nil
	})
}

package contract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/reglet-dev/contract-sdk/abi"
	"github.com/reglet-dev/contract-sdk/domain/entities"
	sdkerrors "github.com/reglet-dev/contract-sdk/domain/errors"
	"github.com/reglet-dev/contract-sdk/wireformat"
)

// Router dispatches encoded calls to registered functions. Its tables are
// immutable once New returns. A Router serves one call at a time; a call
// that arrives while another is in progress fails with Busy.
type Router struct {
	functions   map[string]*Function
	readOnly    map[string]*Function
	constructor *Function
	ctorName    string
	middleware  []Middleware
	logger      *slog.Logger
	observer    StateObserver
	name        string

	mu          sync.Mutex
	state       State
	constructed bool
}

// New creates a Router with the given options. Returns an error if any name
// is empty or registered twice.
func New(opts ...Option) (*Router, error) {
	b := &routerBuilder{
		functions: make(map[string]*Function),
		readOnly:  make(map[string]*Function),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if len(b.errors) > 0 {
		return nil, b.errors[0]
	}

	mw := make([]Middleware, 0, len(b.middleware)+1)
	mw = append(mw, PanicRecoveryMiddleware())
	mw = append(mw, b.middleware...)

	return &Router{
		functions:   b.functions,
		readOnly:    b.readOnly,
		constructor: b.constructor,
		ctorName:    b.ctorName,
		middleware:  mw,
		logger:      b.logger,
		observer:    b.observer,
		name:        b.name,
	}, nil
}

// State returns the phase of the call in progress, or StateIdle.
func (r *Router) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Constructed reports whether the constructor has completed.
func (r *Router) Constructed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.constructed
}

// Execute dispatches payload, an encoded abi.CallEnvelope, to a mutating function.
func (r *Router) Execute(ctx context.Context, payload []byte) ([]byte, error) {
	return r.call(ctx, entities.KindMutating, payload)
}

// ExecuteReadOnly dispatches payload to a read-only function.
func (r *Router) ExecuteReadOnly(ctx context.Context, payload []byte) ([]byte, error) {
	return r.call(ctx, entities.KindReadOnly, payload)
}

// Construct runs the constructor. An empty payload calls it with no
// arguments. Without a registered constructor an empty payload is a no-op.
func (r *Router) Construct(ctx context.Context, payload []byte) ([]byte, error) {
	return r.call(ctx, entities.KindConstructor, payload)
}

func (r *Router) call(ctx context.Context, kind entities.FunctionKind, payload []byte) ([]byte, error) {
	if !r.begin() {
		return nil, &CallError{Kind: Busy, Err: fmt.Errorf("router is serving another call")}
	}

	out, err := r.dispatch(ctx, kind, payload)
	if err != nil {
		r.transition(StateFailed)
		r.logger.DebugContext(ctx, "contract call failed", slog.String("kind", string(kind)), slog.Any("error", err))
	} else {
		r.transition(StateSucceeded)
	}
	r.transition(StateIdle)
	return out, err
}

func (r *Router) dispatch(ctx context.Context, kind entities.FunctionKind, payload []byte) ([]byte, error) {
	var env abi.CallEnvelope
	if kind == entities.KindConstructor && len(payload) == 0 {
		if r.constructor == nil {
			return []byte{}, nil
		}
		env.Function = r.ctorName
	} else {
		decoded, err := wireformat.Decode[abi.CallEnvelope](payload)
		if err != nil {
			return nil, &CallError{Kind: DeserializeError, Err: err}
		}
		env = decoded
	}

	fn, err := r.lookup(kind, env.Function)
	if err != nil {
		return nil, err
	}
	if kind == entities.KindConstructor {
		if err := r.checkDeployed(ctx, env.Function); err != nil {
			return nil, err
		}
	}

	r.transition(StateDispatching)
	if len(env.Parameters) != fn.Arity() {
		return nil, &CallError{
			Kind:     InvalidArguments,
			Function: env.Function,
			Err:      fmt.Errorf("%w: expected %d arguments, got %d", sdkerrors.ErrArgumentDecode, fn.Arity(), len(env.Parameters)),
		}
	}
	inv, err := fn.bind(env.Stream())
	if err != nil {
		return nil, &CallError{Kind: InvalidArguments, Function: env.Function, Err: err}
	}

	cctx := NewCallContext(ctx, env.Function, kind)
	var runCtx context.Context = cctx
	if rt, ok := RuntimeFrom(ctx); ok && kind == entities.KindReadOnly {
		runCtx = WithRuntime(cctx, ReadOnly(rt))
	}

	results, err := chain(inv, r.middleware)(runCtx)
	if err != nil {
		var pe *PanicError
		if errors.As(err, &pe) {
			return nil, &CallError{Kind: HandlerPanic, Function: env.Function, Err: pe}
		}
		return nil, &CallError{Kind: HandlerFailed, Function: env.Function, Err: err}
	}
	if kind == entities.KindConstructor {
		if err := markDeployed(ctx); err != nil {
			return nil, &CallError{Kind: HandlerFailed, Function: env.Function, Err: err}
		}
		r.markConstructed()
	}

	out, err := encodeResults(results)
	if err != nil {
		return nil, &CallError{Kind: ResultEncoding, Function: env.Function, Err: err}
	}
	return out, nil
}

func (r *Router) lookup(kind entities.FunctionKind, name string) (*Function, error) {
	var fn *Function
	switch kind {
	case entities.KindMutating:
		fn = r.functions[name]
	case entities.KindReadOnly:
		fn = r.readOnly[name]
	case entities.KindConstructor:
		if r.constructor != nil && name == r.ctorName {
			if r.Constructed() {
				return nil, &CallError{Kind: AlreadyConstructed, Function: name, Err: sdkerrors.ErrAlreadyConstructed}
			}
			fn = r.constructor
		}
	}
	if fn == nil {
		return nil, &CallError{
			Kind:     InvalidFunctionName,
			Function: name,
			Err:      fmt.Errorf("%w: %s %q", sdkerrors.ErrUnknownFunction, kind, name),
		}
	}
	return fn, nil
}

func encodeResults(results []wireformat.Marshaler) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("encode results: %v", r)
		}
	}()
	sink := abi.NewSink()
	for i, res := range results {
		if res == nil {
			return nil, fmt.Errorf("result %d is nil", i)
		}
		sink.Push(res)
	}
	return sink.Bytes()
}

func (r *Router) begin() bool {
	r.mu.Lock()
	if r.state != StateIdle {
		r.mu.Unlock()
		return false
	}
	r.state = StateDecodingEnvelope
	observer := r.observer
	r.mu.Unlock()
	if observer != nil {
		observer(StateIdle, StateDecodingEnvelope)
	}
	return true
}

func (r *Router) transition(to State) {
	r.mu.Lock()
	from := r.state
	r.state = to
	observer := r.observer
	r.mu.Unlock()
	if observer != nil && from != to {
		observer(from, to)
	}
}

func (r *Router) markConstructed() {
	r.mu.Lock()
	r.constructed = true
	r.mu.Unlock()
}

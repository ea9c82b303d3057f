package contract

import (
	"context"

	"github.com/reglet-dev/contract-sdk/domain/entities"
	"github.com/reglet-dev/contract-sdk/domain/ports"
)

// contextKey is a private type for context keys.
type contextKey struct {
	name string
}

var (
	runtimeKey     = &contextKey{name: "runtime"}
	callContextKey = &contextKey{name: "call_context"}
)

// WithRuntime attaches the host runtime handlers will see.
func WithRuntime(ctx context.Context, rt ports.Runtime) context.Context {
	return context.WithValue(ctx, runtimeKey, rt)
}

// RuntimeFrom returns the host runtime of the current call. Read-only calls
// see a runtime that rejects state mutation.
func RuntimeFrom(ctx context.Context) (ports.Runtime, bool) {
	rt, ok := ctx.Value(runtimeKey).(ports.Runtime)
	return rt, ok
}

// CallContext wraps a context.Context with the metadata of the call being
// served. Middleware can store call-scoped values on it.
type CallContext interface {
	context.Context

	// FunctionName returns the name of the function being invoked.
	FunctionName() string

	// Kind returns which table the function was dispatched from.
	Kind() entities.FunctionKind

	// SetValue stores a call-scoped value. Unlike context.WithValue,
	// this mutates the existing CallContext.
	SetValue(key, value any)

	// GetValue retrieves a call-scoped value set by SetValue.
	GetValue(key any) (value any, ok bool)
}

type callContext struct {
	context.Context
	values   map[any]any
	funcName string
	kind     entities.FunctionKind
}

// NewCallContext creates a CallContext wrapping ctx.
func NewCallContext(ctx context.Context, funcName string, kind entities.FunctionKind) CallContext {
	return &callContext{
		Context:  ctx,
		funcName: funcName,
		kind:     kind,
		values:   make(map[any]any),
	}
}

func (c *callContext) FunctionName() string {
	return c.funcName
}

func (c *callContext) Kind() entities.FunctionKind {
	return c.kind
}

func (c *callContext) SetValue(key, value any) {
	c.values[key] = value
}

func (c *callContext) GetValue(key any) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Value makes the CallContext reachable through contexts derived from it.
func (c *callContext) Value(key any) any {
	if key == callContextKey {
		return c
	}
	return c.Context.Value(key)
}

// CallContextFrom returns the CallContext of the call being served, even
// when ctx was derived from it.
func CallContextFrom(ctx context.Context) (CallContext, bool) {
	cc, ok := ctx.Value(callContextKey).(CallContext)
	return cc, ok
}

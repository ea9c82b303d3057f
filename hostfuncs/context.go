package hostfuncs

import (
	"context"
)

// HostContext wraps a standard context.Context with host function-specific helpers.
// It provides access to the invoked function name and allows middleware to store
// request-scoped values without polluting the standard context.
type HostContext interface {
	context.Context

	// FunctionName returns the name of the host function being invoked.
	FunctionName() string

	// SetValue stores a request-scoped value. Unlike context.WithValue,
	// this mutates the existing HostContext for performance.
	SetValue(key, value any)

	// GetValue retrieves a request-scoped value set by SetValue.
	GetValue(key any) (value any, ok bool)
}

// hostContext is the concrete implementation of HostContext.
type hostContext struct {
	context.Context
	values   map[any]any
	funcName string
}

// NewHostContext creates a new HostContext wrapping the given context.
func NewHostContext(ctx context.Context, funcName string) HostContext {
	return &hostContext{
		Context:  ctx,
		funcName: funcName,
		values:   make(map[any]any),
	}
}

// FunctionName returns the name of the host function being invoked.
func (c *hostContext) FunctionName() string {
	return c.funcName
}

// SetValue stores a request-scoped value.
func (c *hostContext) SetValue(key, value any) {
	c.values[key] = value
}

// GetValue retrieves a request-scoped value.
func (c *hostContext) GetValue(key any) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Frame holds the transaction data of one guest call: the encoded envelope,
// the caller key and the results handed back through return_bytes.
type Frame struct {
	input    []byte
	sender   []byte
	output   []byte
	returned bool
	readOnly bool
}

// NewFrame creates a Frame for a call with the given envelope and sender.
func NewFrame(input, sender []byte) *Frame {
	return &Frame{input: input, sender: sender}
}

// MarkReadOnly flags the call as read-only and returns f. Host functions that
// mutate state refuse to run inside a read-only frame.
func (f *Frame) MarkReadOnly() *Frame {
	f.readOnly = true
	return f
}

// ReadOnly reports whether the call may not mutate state.
func (f *Frame) ReadOnly() bool { return f.readOnly }

// Input returns the encoded call envelope.
func (f *Frame) Input() []byte { return f.input }

// Sender returns the caller key.
func (f *Frame) Sender() []byte { return f.sender }

// SetOutput records the results returned by the guest. A later return
// replaces an earlier one.
func (f *Frame) SetOutput(b []byte) {
	f.output = append([]byte(nil), b...)
	f.returned = true
}

// Output returns the returned results and whether the guest returned at all.
func (f *Frame) Output() ([]byte, bool) {
	return f.output, f.returned
}

type frameKey struct{}

// WithFrame attaches f to ctx for the transaction host functions.
func WithFrame(ctx context.Context, f *Frame) context.Context {
	return context.WithValue(ctx, frameKey{}, f)
}

// FrameFrom returns the Frame attached to ctx.
func FrameFrom(ctx context.Context) (*Frame, bool) {
	f, ok := ctx.Value(frameKey{}).(*Frame)
	return f, ok && f != nil
}

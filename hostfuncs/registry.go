package hostfuncs

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
)

// HandlerRegistry maps contract_host function names to handlers. It is
// fixed once NewRegistry returns, so lookups need no locking.
//
// A registry is itself a Transport: handing it to NewClient runs a contract
// against the host functions in process, with no wasm boundary between them.
type HandlerRegistry struct {
	handlers map[string]ByteHandler
}

type registryBuilder struct {
	handlers   map[string]ByteHandler
	middleware []Middleware
	errs       []error
}

func (b *registryBuilder) addHandler(name string, handler ByteHandler) {
	switch {
	case name == "":
		b.errs = append(b.errs, errors.New("handler name cannot be empty"))
	case b.handlers[name] != nil:
		b.errs = append(b.errs, fmt.Errorf("duplicate handler name: %q", name))
	default:
		b.handlers[name] = handler
	}
}

// NewRegistry builds a registry from opts. Every handler is wrapped by the
// middleware chain, the first middleware outermost. All registration errors
// are reported together.
//
//	registry, err := NewRegistry(
//	    WithMiddleware(PanicRecoveryMiddleware()),
//	    WithBundle(ServicesBundle(services)),
//	)
func NewRegistry(opts ...RegistryOption) (*HandlerRegistry, error) {
	b := &registryBuilder{handlers: make(map[string]ByteHandler)}
	for _, opt := range opts {
		opt(b)
	}
	if err := errors.Join(b.errs...); err != nil {
		return nil, err
	}

	for name, h := range b.handlers {
		for i := len(b.middleware) - 1; i >= 0; i-- {
			h = b.middleware[i](h)
		}
		b.handlers[name] = h
	}
	return &HandlerRegistry{handlers: b.handlers}, nil
}

// Call runs the host function name with an encoded request. The handler sees
// a fresh HostContext naming the function, so nested calls never inherit the
// caller's name or request-scoped values. An unregistered name yields an ERR
// result with CodeUnknownFunction rather than a Go error, the same as a guest
// would see it.
func (r *HandlerRegistry) Call(ctx context.Context, name string, request []byte) ([]byte, error) {
	h, ok := r.handlers[name]
	if !ok {
		return NewNotFoundError(name).Encode(), nil
	}
	return h(NewHostContext(ctx, name), request)
}

// Has reports whether name is registered.
func (r *HandlerRegistry) Has(name string) bool {
	_, ok := r.handlers[name]
	return ok
}

// Names returns the registered names in sorted order.
func (r *HandlerRegistry) Names() []string {
	return slices.Sorted(maps.Keys(r.handlers))
}

// Missing returns the contract_host functions, in import order, that have no
// handler. A contract importing one of them fails to link.
func (r *HandlerRegistry) Missing() []string {
	var missing []string
	for _, name := range ABI {
		if !r.Has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// WithByteHandler registers a raw handler. WithHandler decodes the request for you.
func WithByteHandler(name string, handler ByteHandler) RegistryOption {
	return func(b *registryBuilder) { b.addHandler(name, handler) }
}

// WithMiddleware appends to the middleware chain.
func WithMiddleware(mw ...Middleware) RegistryOption {
	return func(b *registryBuilder) {
		b.middleware = append(b.middleware, mw...)
	}
}

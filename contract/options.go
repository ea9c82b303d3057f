package contract

import (
	"fmt"
	"log/slog"
)

// Option is a functional option for configuring a Router.
type Option func(*routerBuilder)

// routerBuilder accumulates configuration during router construction.
type routerBuilder struct {
	functions   map[string]*Function
	readOnly    map[string]*Function
	constructor *Function
	ctorName    string
	middleware  []Middleware
	logger      *slog.Logger
	observer    StateObserver
	name        string
	errors      []error
}

func (b *routerBuilder) add(table map[string]*Function, kind, name string, fn *Function) {
	switch {
	case name == "":
		b.errors = append(b.errors, fmt.Errorf("%s name cannot be empty", kind))
	case fn == nil:
		b.errors = append(b.errors, fmt.Errorf("%s %q has no handler", kind, name))
	default:
		if _, exists := table[name]; exists {
			b.errors = append(b.errors, fmt.Errorf("duplicate %s name: %q", kind, name))
			return
		}
		table[name] = fn
	}
}

// WithFunction registers a state-mutating function.
func WithFunction(name string, fn *Function) Option {
	return func(b *routerBuilder) {
		b.add(b.functions, "function", name, fn)
	}
}

// WithReadOnly registers a read-only function. Read-only handlers see a
// runtime that rejects state mutation.
func WithReadOnly(name string, fn *Function) Option {
	return func(b *routerBuilder) {
		b.add(b.readOnly, "readonly function", name, fn)
	}
}

// WithConstructor registers the deployment-time constructor. It lives in
// neither function table and runs at most once.
func WithConstructor(name string, fn *Function) Option {
	return func(b *routerBuilder) {
		switch {
		case b.constructor != nil:
			b.errors = append(b.errors, fmt.Errorf("constructor already registered as %q", b.ctorName))
		case name == "":
			b.errors = append(b.errors, fmt.Errorf("constructor name cannot be empty"))
		case fn == nil:
			b.errors = append(b.errors, fmt.Errorf("constructor %q has no handler", name))
		default:
			b.constructor, b.ctorName = fn, name
		}
	}
}

// WithMiddleware adds middleware around every handler invocation.
// Middleware executes in FIFO order (first added wraps first).
func WithMiddleware(mw ...Middleware) Option {
	return func(b *routerBuilder) {
		b.middleware = append(b.middleware, mw...)
	}
}

// WithLogger sets the router's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *routerBuilder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithStateObserver registers a hook called on every state transition.
func WithStateObserver(observer StateObserver) Option {
	return func(b *routerBuilder) {
		b.observer = observer
	}
}

// WithName sets the contract name reported by Describe.
func WithName(name string) Option {
	return func(b *routerBuilder) {
		b.name = name
	}
}

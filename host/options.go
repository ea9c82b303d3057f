package host

import (
	"log/slog"

	"github.com/reglet-dev/contract-sdk/domain/ports"
	"github.com/reglet-dev/contract-sdk/host/registry"
	"github.com/reglet-dev/contract-sdk/hostfuncs"
	"github.com/reglet-dev/contract-sdk/infrastructure/wazero"
)

// Option defines a functional option for configuring the Executor.
type Option func(*executorConfig)

type executorConfig struct {
	registry       *hostfuncs.HandlerRegistry
	contracts      *registry.Registry
	validator      ports.AbiValidator
	middleware     []hostfuncs.Middleware
	logger         *slog.Logger
	moduleName     string
	maxRequestSize uint32
}

func defaultExecutorConfig() executorConfig {
	return executorConfig{
		logger:         slog.Default(),
		moduleName:     wazero.DefaultModuleName,
		maxRequestSize: wazero.DefaultMaxRequestSize,
	}
}

// WithHostFunctions replaces the default host function registry. The
// services passed to NewExecutor are then ignored.
func WithHostFunctions(registry *hostfuncs.HandlerRegistry) Option {
	return func(c *executorConfig) {
		c.registry = registry
	}
}

// WithContractRegistry sets where loaded contracts are registered.
func WithContractRegistry(r *registry.Registry) Option {
	return func(c *executorConfig) {
		c.contracts = r
	}
}

// WithMiddleware adds host function middleware to the default registry.
// It runs inside the built-in panic recovery, size limit and logging layers.
func WithMiddleware(mw ...hostfuncs.Middleware) Option {
	return func(c *executorConfig) {
		c.middleware = append(c.middleware, mw...)
	}
}

// WithLogger sets the logger for host function calls and adapter failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *executorConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithModuleName sets the import module name contracts link against.
func WithModuleName(name string) Option {
	return func(c *executorConfig) {
		c.moduleName = name
	}
}

// WithMaxRequestSize caps the bytes a contract may pass to one host function.
func WithMaxRequestSize(size uint32) Option {
	return func(c *executorConfig) {
		c.maxRequestSize = size
	}
}

// WithAbiValidator checks every interface description a contract reports
// before it is registered.
func WithAbiValidator(v ports.AbiValidator) Option {
	return func(c *executorConfig) {
		c.validator = v
	}
}

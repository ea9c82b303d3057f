package host

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/reglet-dev/contract-sdk/domain/entities"
	"github.com/reglet-dev/contract-sdk/domain/ports"
	"github.com/reglet-dev/contract-sdk/host/registry"
	"github.com/reglet-dev/contract-sdk/hostfuncs"
	wazeroadapter "github.com/reglet-dev/contract-sdk/infrastructure/wazero"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
)

// Guest exports every contract module provides.
const (
	ExportExecute         = "execute"
	ExportExecuteReadOnly = "execute_readonly"
	ExportConstruct       = "construct"
	ExportDescribe        = "describe"
	ExportDeallocate      = "deallocate"
)

// ErrNoResults is returned when a contract call succeeded without handing
// results back through return_bytes.
var ErrNoResults = errors.New("contract returned no results")

// Executor manages the lifecycle of contract modules.
type Executor struct {
	runtime   wazero.Runtime
	registry  *hostfuncs.HandlerRegistry
	contracts *registry.Registry
	validator ports.AbiValidator
	state     ports.Persistence
}

// NewExecutor creates an executor whose contracts reach services through the
// host functions.
func NewExecutor(ctx context.Context, services ports.Services, opts ...Option) (*Executor, error) {
	cfg := defaultExecutorConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.registry == nil {
		if services == nil {
			return nil, errors.New("no services and no host function registry")
		}
		reg, err := defaultRegistry(services, &cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create default registry: %w", err)
		}
		cfg.registry = reg
	}
	if missing := cfg.registry.Missing(); len(missing) > 0 {
		cfg.logger.Warn("host functions not registered", "missing", missing)
	}
	if cfg.contracts == nil {
		cfg.contracts = registry.NewRegistry()
	}

	rt := wazero.NewRuntime(ctx)
	if _, err := wasi_snapshot_preview1.Instantiate(ctx, rt); err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("failed to instantiate wasi: %w", err)
	}

	err := wazeroadapter.RegisterWithRuntime(ctx, rt, cfg.registry,
		wazeroadapter.WithModuleName(cfg.moduleName),
		wazeroadapter.WithMaxRequestSize(cfg.maxRequestSize),
		wazeroadapter.WithLogger(cfg.logger),
	)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("failed to register host functions: %w", err)
	}

	return &Executor{runtime: rt, registry: cfg.registry, contracts: cfg.contracts, validator: cfg.validator, state: services}, nil
}

func defaultRegistry(services ports.Services, cfg *executorConfig) (*hostfuncs.HandlerRegistry, error) {
	mw := []hostfuncs.Middleware{
		hostfuncs.PanicRecoveryMiddleware(),
		hostfuncs.RequestLimitMiddleware(int(cfg.maxRequestSize)),
		hostfuncs.LoggingMiddleware(cfg.logger),
		hostfuncs.ReadOnlyGuardMiddleware(),
	}
	mw = append(mw, cfg.middleware...)
	return hostfuncs.NewRegistry(
		hostfuncs.WithMiddleware(mw...),
		hostfuncs.WithBundle(hostfuncs.ServicesBundle(services)),
	)
}

// Close releases resources held by the executor and all its contracts.
func (e *Executor) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}

// Registry returns the host function registry contracts are linked against.
func (e *Executor) Registry() *hostfuncs.HandlerRegistry {
	return e.registry
}

// Contracts returns the registry of loaded contracts.
func (e *Executor) Contracts() *registry.Registry {
	return e.contracts
}

// LoadContract instantiates a contract module, reads its interface
// description and registers it under its contract name.
func (e *Executor) LoadContract(ctx context.Context, wasmBytes []byte) (*Instance, error) {
	compiled, err := e.runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to compile module: %w", err)
	}
	for _, name := range []string{ExportExecute, ExportExecuteReadOnly, ExportConstruct, ExportDescribe, wazeroadapter.AllocateExport} {
		if _, ok := compiled.ExportedFunctions()[name]; !ok {
			_ = compiled.Close(ctx)
			return nil, fmt.Errorf("module does not export %q", name)
		}
	}

	// Reactor modules run their initializer instead of _start; an empty name
	// lets one executor hold several instances of the same binary.
	config := wazero.NewModuleConfig().WithName("").WithStartFunctions("_initialize")
	mod, err := e.runtime.InstantiateModule(ctx, compiled, config)
	if err != nil {
		return nil, fmt.Errorf("failed to instantiate module: %w", err)
	}

	inst := &Instance{module: mod, compiled: compiled, contracts: e.contracts, validator: e.validator, state: e.state}
	desc, err := inst.Describe(ctx)
	if err != nil {
		_ = inst.close(ctx)
		return nil, err
	}
	if err := e.contracts.Register(desc); err != nil {
		_ = inst.close(ctx)
		return nil, err
	}
	inst.abi = desc
	return inst, nil
}

// decodeAbi parses an interface description read from guest memory.
func decodeAbi(data []byte) (*entities.Abi, error) {
	var desc entities.Abi
	if err := json.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("failed to decode interface description: %w", err)
	}
	return &desc, nil
}

package host

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/reglet-dev/contract-sdk/contract"
	"github.com/reglet-dev/contract-sdk/domain/entities"
	sdkerrors "github.com/reglet-dev/contract-sdk/domain/errors"
	"github.com/reglet-dev/contract-sdk/domain/ports"
	"github.com/reglet-dev/contract-sdk/host/registry"
	"github.com/reglet-dev/contract-sdk/hostfuncs"
	wazeroadapter "github.com/reglet-dev/contract-sdk/infrastructure/wazero"
	"github.com/reglet-dev/contract-sdk/internal/abi"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
)

// Instance is one instantiated contract. Calls are serialized: a module
// serves one call at a time.
type Instance struct {
	mu        sync.Mutex
	module    api.Module
	compiled  wazero.CompiledModule
	contracts *registry.Registry
	validator ports.AbiValidator
	state     ports.Persistence
	abi       *entities.Abi
}

// Name returns the contract name from the interface description.
func (i *Instance) Name() string {
	if i.abi == nil {
		return ""
	}
	return i.abi.Contract
}

// Abi returns the interface description read at load time.
func (i *Instance) Abi() *entities.Abi {
	return i.abi
}

// Execute runs a mutating function. envelope is the encoded call envelope
// and sender the caller key.
func (i *Instance) Execute(ctx context.Context, envelope, sender []byte) ([]byte, error) {
	return i.call(ctx, ExportExecute, hostfuncs.NewFrame(envelope, sender))
}

// ExecuteReadOnly runs a read-only function. Host functions that mutate state
// fail inside the call.
func (i *Instance) ExecuteReadOnly(ctx context.Context, envelope, sender []byte) ([]byte, error) {
	return i.call(ctx, ExportExecuteReadOnly, hostfuncs.NewFrame(envelope, sender).MarkReadOnly())
}

// Construct runs the constructor. It fails with AlreadyConstructed without
// entering the module when the host state carries the constructed marker.
func (i *Instance) Construct(ctx context.Context, envelope, sender []byte) ([]byte, error) {
	if i.state != nil {
		done, err := i.state.KeyExists(ctx, []byte(contract.ConstructedKey))
		if err != nil {
			return nil, fmt.Errorf("read constructed marker: %w", err)
		}
		if done {
			return nil, &contract.CallError{Kind: contract.AlreadyConstructed, Err: sdkerrors.ErrAlreadyConstructed}
		}
	}
	return i.call(ctx, ExportConstruct, hostfuncs.NewFrame(envelope, sender))
}

func (i *Instance) call(ctx context.Context, export string, frame *hostfuncs.Frame) ([]byte, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	fn := i.module.ExportedFunction(export)
	if fn == nil {
		return nil, fmt.Errorf("export %q not found", export)
	}

	ctx = hostfuncs.WithFrame(ctx, frame)
	ctx = wazeroadapter.WithContractName(ctx, i.Name())
	results, err := fn.Call(ctx)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", export, err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("call %s: no exit status", export)
	}
	if err := contract.ErrorFromStatus(uint32(results[0])); err != nil { //nolint:gosec // G115: i32 result
		return nil, err
	}

	out, returned := frame.Output()
	if !returned {
		return nil, fmt.Errorf("call %s: %w", export, ErrNoResults)
	}
	return out, nil
}

// Describe calls the describe export and decodes the interface description.
func (i *Instance) Describe(ctx context.Context) (*entities.Abi, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	fn := i.module.ExportedFunction(ExportDescribe)
	if fn == nil {
		return nil, fmt.Errorf("export %q not found", ExportDescribe)
	}
	results, err := fn.Call(ctx)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", ExportDescribe, err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("call %s: no result", ExportDescribe)
	}

	data, err := readPacked(i.module.Memory(), results[0])
	if err != nil {
		return nil, fmt.Errorf("read interface description: %w", err)
	}
	if dealloc := i.module.ExportedFunction(ExportDeallocate); dealloc != nil {
		ptr, length := abi.Split(results[0])
		if _, err := dealloc.Call(ctx, uint64(ptr), uint64(length)); err != nil {
			return nil, fmt.Errorf("release interface description: %w", err)
		}
	}
	if i.validator != nil {
		res, err := i.validator.Validate(data)
		if err != nil {
			return nil, fmt.Errorf("validate interface description: %w", err)
		}
		if !res.Valid {
			return nil, fmt.Errorf("invalid interface description: %s", res)
		}
	}
	return decodeAbi(data)
}

// Close unregisters the contract and releases its module.
func (i *Instance) Close(ctx context.Context) error {
	if name := i.Name(); name != "" {
		i.contracts.Remove(name)
	}
	return i.close(ctx)
}

func (i *Instance) close(ctx context.Context) error {
	err := i.module.Close(ctx)
	if cerr := i.compiled.Close(ctx); err == nil {
		err = cerr
	}
	return err
}

// readPacked copies the buffer described by packed out of guest memory.
func readPacked(mem api.Memory, packed uint64) ([]byte, error) {
	ptr, length := abi.Split(packed)
	if ptr == 0 || length == 0 {
		return nil, errors.New("null response from contract")
	}
	data, ok := mem.Read(ptr, length)
	if !ok {
		return nil, fmt.Errorf("response [%d, %d) out of guest memory", ptr, uint64(ptr)+uint64(length))
	}
	return append([]byte(nil), data...), nil
}

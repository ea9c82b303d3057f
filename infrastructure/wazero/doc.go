// Package wazero provides adapters for registering the contract host functions
// with the wazero runtime.
//
// This package bridges the pure Go host function registry with the wazero
// WebAssembly runtime. It handles:
//
//   - Converting between packed i64 pointer+length format and byte slices
//   - Reading request data from guest memory
//   - Allocating and writing result data to guest memory
//   - Registering handlers with the wazero host module builder
//
// # Basic Usage
//
//	registry, err := hostfuncs.NewRegistry(
//	    hostfuncs.WithMiddleware(hostfuncs.PanicRecoveryMiddleware()),
//	    hostfuncs.WithBundle(hostfuncs.ServicesBundle(services)),
//	)
//	if err != nil {
//	    return err
//	}
//
//	runtime := wazero.NewRuntime(ctx)
//	err = wazero.RegisterWithRuntime(ctx, runtime, registry)
//
// Every host function takes and returns one i64. Failures that can be
// reported to the contract travel in the encoded result; a zero return
// means the result could not be written into guest memory at all.
package wazero

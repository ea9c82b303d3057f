//go:build wasip1

package guest

import (
	"context"
	"fmt"

	"github.com/reglet-dev/contract-sdk/hostfuncs"
	"github.com/reglet-dev/contract-sdk/internal/abi"
)

// wasmTransport passes requests through the contract_host imports.
type wasmTransport struct{}

func (wasmTransport) Call(_ context.Context, name string, request []byte) ([]byte, error) {
	req := abi.PtrFromBytes(request)
	packed, ok := invoke(name, req)
	abi.DeallocatePacked(req)
	if !ok {
		return nil, fmt.Errorf("no import for host function %q", name)
	}
	if packed == 0 {
		return nil, fmt.Errorf("host function %q returned no result", name)
	}
	resp := abi.BytesFromPtr(packed)
	abi.DeallocatePacked(packed)
	return resp, nil
}

func newTransport() hostfuncs.Transport {
	return wasmTransport{}
}

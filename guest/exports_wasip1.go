//go:build wasip1

package guest

import (
	"context"

	"github.com/reglet-dev/contract-sdk/domain/entities"
	"github.com/reglet-dev/contract-sdk/internal/abi"
	"github.com/reglet-dev/contract-sdk/log"
)

func init() {
	log.Install(client)
}

func serveExport(kind entities.FunctionKind) uint32 {
	defer abi.FreeAllTracked()
	return Dispatch(context.Background(), client, kind)
}

//go:wasmexport execute
func execute() uint32 {
	return serveExport(entities.KindMutating)
}

//go:wasmexport execute_readonly
func executeReadOnly() uint32 {
	return serveExport(entities.KindReadOnly)
}

//go:wasmexport construct
func construct() uint32 {
	return serveExport(entities.KindConstructor)
}

// describe returns the packed location of the JSON interface description.
// The host releases it with deallocate.
//
//go:wasmexport describe
func describe() uint64 {
	data, err := Describe()
	if err != nil {
		_ = client.LogError(context.Background(), err.Error())
		return 0
	}
	return abi.PtrFromBytes(data)
}

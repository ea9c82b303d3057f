package guest

import (
	"github.com/reglet-dev/contract-sdk/domain/ports"
	"github.com/reglet-dev/contract-sdk/hostfuncs"
)

var client = hostfuncs.NewClient(newTransport())

// Runtime returns the host runtime the module exports serve calls with.
// Handlers normally use contract.RuntimeFrom instead.
func Runtime() ports.Runtime {
	return client
}

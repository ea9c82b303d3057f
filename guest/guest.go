// Package guest wires a contract.Router into a WebAssembly module.
//
// A contract's main package registers its router from init and leaves main
// empty:
//
//	func init() {
//	    router, err := contract.New(contract.WithName("token"), ...)
//	    if err != nil {
//	        panic(err)
//	    }
//	    guest.Register(router)
//	}
//
//	func main() {}
//
// Built with GOOS=wasip1 GOARCH=wasm -buildmode=c-shared, the module exports
// execute, execute_readonly, construct and describe, and reaches the host
// through the contract_host imports. The default slog logger writes through
// the host log functions.
package guest

import (
	"context"
	"errors"
	"sync"

	"github.com/reglet-dev/contract-sdk/contract"
	"github.com/reglet-dev/contract-sdk/domain/entities"
	"github.com/reglet-dev/contract-sdk/domain/ports"
)

// ErrNoRouter is reported when a call arrives before Register.
var ErrNoRouter = errors.New("no contract router registered")

var served struct {
	sync.RWMutex
	router *contract.Router
}

// Register sets the router the module exports dispatch to. A later call
// replaces the router.
func Register(r *contract.Router) {
	served.Lock()
	served.router = r
	served.Unlock()
}

func registered() *contract.Router {
	served.RLock()
	defer served.RUnlock()
	return served.router
}

// Dispatch serves one call of kind against rt and returns the exit status
// the export reports to the host.
func Dispatch(ctx context.Context, rt ports.Runtime, kind entities.FunctionKind) uint32 {
	r := registered()
	if r == nil {
		_ = rt.LogError(ctx, ErrNoRouter.Error())
		return contract.StatusHostFailure
	}
	return contract.ExitStatus(contract.Serve(ctx, rt, r, kind))
}

// Describe returns the JSON interface description of the registered router.
func Describe() ([]byte, error) {
	r := registered()
	if r == nil {
		return nil, ErrNoRouter
	}
	return r.Describe().JSON()
}

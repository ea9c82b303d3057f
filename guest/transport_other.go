//go:build !wasip1

package guest

import (
	"context"
	"errors"

	"github.com/reglet-dev/contract-sdk/hostfuncs"
)

// ErrNotWasm is returned by host calls made outside a wasip1 module.
var ErrNotWasm = errors.New("host functions are only available in a wasip1 module")

func newTransport() hostfuncs.Transport {
	return hostfuncs.TransportFunc(func(context.Context, string, []byte) ([]byte, error) {
		return nil, ErrNotWasm
	})
}

package hostfuncs

import (
	"context"
	"fmt"

	"github.com/reglet-dev/contract-sdk/wireformat"
)

// HostFunc is a generic function signature for host functions.
// It accepts a context and a typed request, and returns a typed response.
type HostFunc[Req any, Resp any] func(context.Context, Req) (Resp, error)

// ByteHandler accepts an encoded request and returns an encoded Result.
// A non-nil error means the response could not be produced at all; failures
// of the host function itself travel inside the Result.
type ByteHandler func(context.Context, []byte) ([]byte, error)

// NewHandler wraps a typed HostFunc into a ByteHandler.
// The request must decode exactly; a decode failure or an error from fn is
// returned as the ERR arm of the Result.
//
// Usage:
//
//	keyExists := hostfuncs.NewHandler(func(ctx context.Context, key wireformat.Bytes) (wireformat.Bool, error) {
//	    ok, err := store.KeyExists(ctx, key)
//	    return wireformat.Bool(ok), err
//	})
func NewHandler[Req any, PReq wireformat.Decodable[Req], Resp wireformat.Marshaler](fn HostFunc[Req, Resp]) ByteHandler {
	return func(ctx context.Context, payload []byte) ([]byte, error) {
		req, err := wireformat.Decode[Req, PReq](payload)
		if err != nil {
			return NewValidationError(fmt.Sprintf("failed to decode request: %v", err)).Encode(), nil
		}

		resp, err := fn(ctx, req)
		if err != nil {
			return NewErrorResponse(err).Encode(), nil
		}

		respBytes, err := wireformat.Marshal(resp)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response: %w", err)
		}

		return OK(respBytes), nil
	}
}

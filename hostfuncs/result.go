package hostfuncs

import (
	"github.com/reglet-dev/contract-sdk/wireformat"
)

// Discriminants of the host result union.
const (
	ResultOK  uint32 = 0
	ResultErr uint32 = 1
)

// Result is the response of every host function: either an encoded payload
// or an ErrorResponse.
type Result struct {
	Err     *ErrorResponse
	Payload []byte
}

// MarshalWire implements wireformat.Marshaler.
func (r Result) MarshalWire(e *wireformat.Encoder) {
	if r.Err != nil {
		wireformat.PutUnion(e, ResultErr, *r.Err)
		return
	}
	wireformat.PutUnion(e, ResultOK, wireformat.Bytes(r.Payload))
}

// UnmarshalWire implements wireformat.Unmarshaler.
func (r *Result) UnmarshalWire(d *wireformat.Decoder) error {
	disc, offset, err := d.Discriminant()
	if err != nil {
		return err
	}
	switch disc {
	case ResultOK:
		payload, err := d.Opaque()
		if err != nil {
			return wireformat.Field("payload", err)
		}
		r.Payload, r.Err = payload, nil
	case ResultErr:
		var resp ErrorResponse
		if err := resp.UnmarshalWire(d); err != nil {
			return wireformat.Field("error", err)
		}
		r.Payload, r.Err = nil, &resp
	default:
		return wireformat.UnknownVariant("host result", disc, offset)
	}
	return nil
}

// OK wraps an encoded payload in the OK arm of a host result.
func OK(payload []byte) []byte {
	return wireformat.MustMarshal(Result{Payload: payload})
}

// DecodeResult decodes a host result, rejecting trailing bytes.
func DecodeResult(data []byte) (Result, error) {
	return wireformat.Decode[Result](data)
}

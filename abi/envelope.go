package abi

import (
	"github.com/reglet-dev/contract-sdk/wireformat"
)

// MaxParameters bounds the number of argument slots in one call.
const MaxParameters uint32 = 255

// CallEnvelope is the decoded {function, parameters} pair a router acts on.
type CallEnvelope struct {
	Function   string
	Parameters [][]byte
}

// NewCall builds an envelope whose slots hold the encodings of args.
func NewCall(function string, args ...wireformat.Marshaler) (CallEnvelope, error) {
	slots := make([][]byte, 0, len(args))
	for _, arg := range args {
		b, err := wireformat.Marshal(arg)
		if err != nil {
			return CallEnvelope{}, err
		}
		slots = append(slots, b)
	}
	return CallEnvelope{Function: function, Parameters: slots}, nil
}

// MarshalWire implements wireformat.Marshaler.
func (c CallEnvelope) MarshalWire(e *wireformat.Encoder) {
	e.PutString(c.Function)
	wireformat.PutVarArray(e, c.Parameters, MaxParameters, wireformat.PutOpaqueElem)
}

// UnmarshalWire implements wireformat.Unmarshaler.
func (c *CallEnvelope) UnmarshalWire(d *wireformat.Decoder) error {
	fn, err := d.String()
	if err != nil {
		return wireformat.Field("function", err)
	}
	params, err := wireformat.ReadVarArray(d, MaxParameters, wireformat.ReadOpaqueElem)
	if err != nil {
		return wireformat.Field("parameters", err)
	}
	c.Function, c.Parameters = fn, params
	return nil
}

// Stream returns an argument stream over the envelope's slots.
func (c CallEnvelope) Stream() *Stream {
	return NewStream(c.Parameters)
}

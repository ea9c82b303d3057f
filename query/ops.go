package query

import (
	"fmt"

	"github.com/reglet-dev/contract-sdk/wireformat"
)

// OpKind is the discriminant of an Op.
type OpKind uint32

// Op ordinals are fixed by the wire format.
const (
	OpSelect OpKind = iota
	OpFilter
)

func (k OpKind) String() string {
	switch k {
	case OpSelect:
		return "SELECT"
	case OpFilter:
		return "FILTER"
	default:
		return fmt.Sprintf("OpKind(%d)", uint32(k))
	}
}

// Op is one step of a query pipeline. It is implemented by Select and Filter.
type Op interface {
	wireformat.Marshaler
	Kind() OpKind
}

// Select projects the listed columns, in order.
type Select struct {
	Props []string
}

// Kind implements Op.
func (Select) Kind() OpKind { return OpSelect }

// MarshalWire implements wireformat.Marshaler.
func (s Select) MarshalWire(e *wireformat.Encoder) {
	wireformat.PutVarArray(e, s.Props, wireformat.MaxVarLen, wireformat.PutStringElem)
}

// UnmarshalWire implements wireformat.Unmarshaler.
func (s *Select) UnmarshalWire(d *wireformat.Decoder) error {
	props, err := wireformat.ReadVarArray(d, wireformat.MaxVarLen, wireformat.ReadStringElem)
	if err != nil {
		return wireformat.Field("props", err)
	}
	s.Props = props
	return nil
}

// Filter keeps the rows for which Expression evaluates to true.
type Filter struct {
	Expression BooleanExpr
}

// Kind implements Op.
func (Filter) Kind() OpKind { return OpFilter }

// MarshalWire implements wireformat.Marshaler.
func (f Filter) MarshalWire(e *wireformat.Encoder) {
	f.Expression.MarshalWire(e)
}

// UnmarshalWire implements wireformat.Unmarshaler.
func (f *Filter) UnmarshalWire(d *wireformat.Decoder) error {
	if err := f.Expression.UnmarshalWire(d); err != nil {
		return wireformat.Field("expression", err)
	}
	return nil
}

func putOp(e *wireformat.Encoder, op Op) {
	if op == nil {
		e.Fail(schemaError("op", fmt.Errorf("nil operation")))
		return
	}
	wireformat.PutUnion(e, uint32(op.Kind()), op)
}

func readOp(d *wireformat.Decoder) (Op, error) {
	disc, offset, err := d.Discriminant()
	if err != nil {
		return nil, err
	}
	switch OpKind(disc) {
	case OpSelect:
		sel, err := wireformat.ReadElem[Select](d)
		if err != nil {
			return nil, err
		}
		return sel, nil
	case OpFilter:
		filter, err := wireformat.ReadElem[Filter](d)
		if err != nil {
			return nil, err
		}
		return filter, nil
	default:
		return nil, wireformat.UnknownVariant("op", disc, offset)
	}
}

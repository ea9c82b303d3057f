package query

import (
	"github.com/reglet-dev/contract-sdk/wireformat"
)

// MaxSourceLen bounds the length of a query source table name.
const MaxSourceLen uint32 = 64

// Query runs Operations, in order, over the Source table. No operations means
// every row of every column.
type Query struct {
	Source     string
	Operations []Op
}

// MarshalWire implements wireformat.Marshaler.
func (q Query) MarshalWire(e *wireformat.Encoder) {
	e.PutStringMax(q.Source, MaxSourceLen)
	wireformat.PutVarArray(e, q.Operations, wireformat.MaxVarLen, putOp)
}

// UnmarshalWire implements wireformat.Unmarshaler.
func (q *Query) UnmarshalWire(d *wireformat.Decoder) error {
	source, err := d.StringMax(MaxSourceLen)
	if err != nil {
		return wireformat.Field("source", err)
	}
	ops, err := wireformat.ReadVarArray(d, wireformat.MaxVarLen, readOp)
	if err != nil {
		return wireformat.Field("operations", err)
	}
	q.Source, q.Operations = source, ops
	return nil
}

// IsIdentity reports whether q neither filters nor projects.
func (q Query) IsIdentity() bool {
	return len(q.Operations) == 0
}

// Insert adds one pre-encoded row to Table. Data is opaque at this layer.
type Insert struct {
	Table string
	Data  []byte
}

// MarshalWire implements wireformat.Marshaler.
func (i Insert) MarshalWire(e *wireformat.Encoder) {
	e.PutString(i.Table)
	e.PutOpaque(i.Data)
}

// UnmarshalWire implements wireformat.Unmarshaler.
func (i *Insert) UnmarshalWire(d *wireformat.Decoder) error {
	table, err := d.String()
	if err != nil {
		return wireformat.Field("table", err)
	}
	data, err := d.Opaque()
	if err != nil {
		return wireformat.Field("data", err)
	}
	i.Table, i.Data = table, data
	return nil
}

// DecodeQuery decodes an encoded Query with the default nesting limit.
// Later options override the default.
func DecodeQuery(data []byte, opts ...wireformat.DecoderOption) (Query, error) {
	opts = append([]wireformat.DecoderOption{wireformat.WithMaxDepth(DefaultMaxDepth)}, opts...)
	return wireformat.Decode[Query](data, opts...)
}

// DecodeInsert decodes an encoded Insert.
func DecodeInsert(data []byte) (Insert, error) {
	return wireformat.Decode[Insert](data)
}

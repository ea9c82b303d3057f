package query

import (
	"github.com/reglet-dev/contract-sdk/wireformat"
)

// Column is one named, encoded cell of a Row.
type Column struct {
	Name  string
	Value []byte
}

// Col builds a Column holding the encoding of v.
func Col(name string, v wireformat.Marshaler) Column {
	return Column{Name: name, Value: wireformat.MustMarshal(v)}
}

// Row is the row layout understood by the reference query engine.
type Row struct {
	Columns []Column
}

// NewRow builds a Row from cols.
func NewRow(cols ...Column) Row {
	return Row{Columns: cols}
}

// Get returns the value of the named column.
func (r Row) Get(name string) ([]byte, bool) {
	for _, c := range r.Columns {
		if c.Name == name {
			return c.Value, true
		}
	}
	return nil, false
}

// MarshalWire implements wireformat.Marshaler.
func (r Row) MarshalWire(e *wireformat.Encoder) {
	wireformat.PutVarArray(e, r.Columns, wireformat.MaxVarLen, func(e *wireformat.Encoder, c Column) {
		e.PutString(c.Name)
		e.PutOpaque(c.Value)
	})
}

// UnmarshalWire implements wireformat.Unmarshaler.
func (r *Row) UnmarshalWire(d *wireformat.Decoder) error {
	cols, err := wireformat.ReadVarArray(d, wireformat.MaxVarLen, func(d *wireformat.Decoder) (Column, error) {
		name, err := d.String()
		if err != nil {
			return Column{}, wireformat.Field("name", err)
		}
		value, err := d.Opaque()
		if err != nil {
			return Column{}, wireformat.Field("value", err)
		}
		return Column{Name: name, Value: value}, nil
	})
	if err != nil {
		return wireformat.Field("columns", err)
	}
	r.Columns = cols
	return nil
}

// Rows is a query result: a variable array of Row.
type Rows []Row

// MarshalWire implements wireformat.Marshaler.
func (rs Rows) MarshalWire(e *wireformat.Encoder) {
	wireformat.PutVarArray(e, rs, wireformat.MaxVarLen, wireformat.Elem[Row])
}

// UnmarshalWire implements wireformat.Unmarshaler.
func (rs *Rows) UnmarshalWire(d *wireformat.Decoder) error {
	rows, err := wireformat.ReadVarArray(d, wireformat.MaxVarLen, wireformat.ReadElem[Row])
	if err != nil {
		return err
	}
	*rs = rows
	return nil
}

// DecodeRows decodes the result of a query run by the reference engine.
func DecodeRows(data []byte) (Rows, error) {
	return wireformat.Decode[Rows](data)
}

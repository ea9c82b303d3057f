package wireformat

// MaxVarLen is the declared maximum for variable-length fields that carry no
// tighter bound of their own.
const MaxVarLen uint32 = 1<<31 - 1

// Typed reports the wire type name of a value for interface descriptions.
type Typed interface {
	WireType() string
}

// Uint32 is a fixed-width 4-byte unsigned integer.
type Uint32 uint32

func (v Uint32) MarshalWire(e *Encoder) { e.PutUint32(uint32(v)) }

func (v *Uint32) UnmarshalWire(d *Decoder) error {
	x, err := d.Uint32()
	if err != nil {
		return err
	}
	*v = Uint32(x)
	return nil
}

func (Uint32) WireType() string { return "uint32" }

// Uint64 is a fixed-width 8-byte unsigned integer.
type Uint64 uint64

func (v Uint64) MarshalWire(e *Encoder) { e.PutUint64(uint64(v)) }

func (v *Uint64) UnmarshalWire(d *Decoder) error {
	x, err := d.Uint64()
	if err != nil {
		return err
	}
	*v = Uint64(x)
	return nil
}

func (Uint64) WireType() string { return "uint64" }

// Bool is encoded as a uint32 0 or 1.
type Bool bool

func (v Bool) MarshalWire(e *Encoder) { e.PutBool(bool(v)) }

func (v *Bool) UnmarshalWire(d *Decoder) error {
	x, err := d.Bool()
	if err != nil {
		return err
	}
	*v = Bool(x)
	return nil
}

func (Bool) WireType() string { return "bool" }

// Bytes is a length-prefixed opaque blob.
type Bytes []byte

func (v Bytes) MarshalWire(e *Encoder) { e.PutOpaque(v) }

func (v *Bytes) UnmarshalWire(d *Decoder) error {
	x, err := d.Opaque()
	if err != nil {
		return err
	}
	*v = x
	return nil
}

func (Bytes) WireType() string { return "bytes" }

// String is a length-prefixed UTF-8 string.
type String string

func (v String) MarshalWire(e *Encoder) { e.PutString(string(v)) }

func (v *String) UnmarshalWire(d *Decoder) error {
	x, err := d.String()
	if err != nil {
		return err
	}
	*v = String(x)
	return nil
}

func (String) WireType() string { return "string" }

// Raw is a pre-encoded value appended verbatim. It never decodes; use it for
// results whose encoding was produced elsewhere.
type Raw []byte

func (v Raw) MarshalWire(e *Encoder) { e.PutFixedOpaque(v) }

func (Raw) WireType() string { return "raw" }

// TypeName returns the wire type name of v, falling back to its Go type name.
func TypeName(v any) string {
	if t, ok := v.(Typed); ok {
		return t.WireType()
	}
	return goTypeName(v)
}

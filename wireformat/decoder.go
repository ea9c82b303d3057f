package wireformat

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"github.com/reglet-dev/contract-sdk/domain/errors"
)

// DefaultMaxDepth bounds how deeply recursive values may nest during a decode.
const DefaultMaxDepth = 64

// Unmarshaler is implemented by values that can decode themselves from a Decoder.
type Unmarshaler interface {
	UnmarshalWire(d *Decoder) error
}

// Decodable constrains a pointer type whose element decodes itself.
type Decodable[T any] interface {
	*T
	Unmarshaler
}

// Decoder is a read cursor over a borrowed buffer. Its position only moves forward.
type Decoder struct {
	buf      []byte
	pos      int
	depth    int
	maxDepth int
}

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// WithMaxDepth sets the nesting limit enforced by Enter.
func WithMaxDepth(depth int) DecoderOption {
	return func(d *Decoder) {
		if depth > 0 {
			d.maxDepth = depth
		}
	}
}

// NewDecoder returns a Decoder positioned at the start of buf.
func NewDecoder(buf []byte, opts ...DecoderOption) *Decoder {
	d := &Decoder{buf: buf, maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Position returns the number of bytes consumed so far.
func (d *Decoder) Position() int {
	return d.pos
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int {
	return len(d.buf) - d.pos
}

// take advances past n bytes and returns them without copying.
func (d *Decoder) take(n int, op string) ([]byte, error) {
	if n < 0 || n > d.Remaining() {
		return nil, &errors.DecodeError{Err: errors.ErrUnexpectedEndOfInput, Op: op, Offset: d.pos}
	}
	b := d.buf[d.pos : d.pos+n]
	d.pos += n
	return b, nil
}

// Uint32 reads a little-endian uint32.
func (d *Decoder) Uint32() (uint32, error) {
	b, err := d.take(4, "uint32")
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Uint64 reads a little-endian uint64.
func (d *Decoder) Uint64() (uint64, error) {
	b, err := d.take(8, "uint64")
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// Bool reads a uint32 that must be 0 or 1.
func (d *Decoder) Bool() (bool, error) {
	offset := d.pos
	b, err := d.take(4, "bool")
	if err != nil {
		return false, err
	}
	switch binary.LittleEndian.Uint32(b) {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, &errors.DecodeError{Err: errors.ErrInvalidEncoding, Op: "bool", Offset: offset}
	}
}

// Discriminant reads a union discriminant and reports where it started.
func (d *Decoder) Discriminant() (disc uint32, offset int, err error) {
	offset = d.pos
	b, err := d.take(4, "discriminant")
	if err != nil {
		return 0, offset, err
	}
	return binary.LittleEndian.Uint32(b), offset, nil
}

// Length reads a uint32 length prefix and checks it against limit.
func (d *Decoder) Length(op string, limit uint32) (int, error) {
	offset := d.pos
	b, err := d.take(4, op)
	if err != nil {
		return 0, err
	}
	n := binary.LittleEndian.Uint32(b)
	if n > limit {
		return 0, &errors.DecodeError{
			Err:    fmt.Errorf("%w: length %d exceeds maximum %d", errors.ErrInvalidEncoding, n, limit),
			Op:     op,
			Offset: offset,
		}
	}
	return int(n), nil
}

// Opaque reads a length-prefixed byte blob into a new slice.
func (d *Decoder) Opaque() ([]byte, error) {
	return d.OpaqueMax(MaxVarLen)
}

// OpaqueMax reads a length-prefixed byte blob of at most limit bytes.
func (d *Decoder) OpaqueMax(limit uint32) ([]byte, error) {
	n, err := d.Length("opaque", limit)
	if err != nil {
		return nil, err
	}
	b, err := d.take(n, "opaque")
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// String reads a length-prefixed UTF-8 string.
func (d *Decoder) String() (string, error) {
	return d.StringMax(MaxVarLen)
}

// StringMax reads a length-prefixed UTF-8 string of at most limit bytes.
func (d *Decoder) StringMax(limit uint32) (string, error) {
	n, err := d.Length("string", limit)
	if err != nil {
		return "", err
	}
	offset := d.pos
	b, err := d.take(n, "string")
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", &errors.DecodeError{Err: errors.ErrInvalidEncoding, Op: "string", Offset: offset}
	}
	return string(b), nil
}

// FixedOpaque reads exactly n bytes into a new slice.
func (d *Decoder) FixedOpaque(n int) ([]byte, error) {
	b, err := d.take(n, "fixed opaque")
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// Enter marks descent into a nested value and fails once the depth limit is
// passed. Every successful Enter must be paired with Leave.
func (d *Decoder) Enter(op string) error {
	if d.depth >= d.maxDepth {
		return &errors.DecodeError{Err: errors.ErrDepthExceeded, Op: op, Offset: d.pos}
	}
	d.depth++
	return nil
}

// Leave undoes one Enter.
func (d *Decoder) Leave() {
	if d.depth > 0 {
		d.depth--
	}
}

// Decode reads the next value into v.
func (d *Decoder) Decode(v Unmarshaler) error {
	return v.UnmarshalWire(d)
}

// Finish reports trailing bytes as an encoding error.
func (d *Decoder) Finish() error {
	if d.Remaining() != 0 {
		return &errors.DecodeError{
			Err:    fmt.Errorf("%w: %d trailing bytes", errors.ErrInvalidEncoding, d.Remaining()),
			Op:     "finish",
			Offset: d.pos,
		}
	}
	return nil
}

// Unmarshal decodes data into v and requires data to be consumed exactly.
// On error v may hold a partial value; use Decode to obtain all-or-nothing results.
func Unmarshal(data []byte, v Unmarshaler, opts ...DecoderOption) error {
	d := NewDecoder(data, opts...)
	if err := v.UnmarshalWire(d); err != nil {
		return err
	}
	return d.Finish()
}

// Decode decodes data into a fresh T. On error the zero T is returned, so a
// partially constructed value is never observable.
func Decode[T any, PT Decodable[T]](data []byte, opts ...DecoderOption) (T, error) {
	var v T
	if err := Unmarshal(data, PT(&v), opts...); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// UnknownVariant builds the error for a discriminant that matches no arm of union.
func UnknownVariant(union string, disc uint32, offset int) error {
	return &errors.DecodeError{
		Err:    fmt.Errorf("%w: discriminant %d", errors.ErrUnknownVariant, disc),
		Op:     union,
		Offset: offset,
	}
}

// Field annotates err with the struct field being decoded.
func Field(name string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("field %s: %w", name, err)
}

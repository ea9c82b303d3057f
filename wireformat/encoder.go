package wireformat

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/reglet-dev/contract-sdk/domain/errors"
)

// Marshaler is implemented by values that can append their wire encoding.
// Encoding never fails at runtime; schema violations (an array longer than its
// declared maximum) are recorded on the Encoder and surface from Err.
type Marshaler interface {
	MarshalWire(e *Encoder)
}

// Encoder is an append-only encode buffer. It is owned by a single encode pass
// and handed off with Bytes once the pass completes.
type Encoder struct {
	buf []byte
	err error
}

// NewEncoder returns an empty Encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// NewEncoderSize returns an empty Encoder with room for size bytes.
func NewEncoderSize(size int) *Encoder {
	return &Encoder{buf: make([]byte, 0, size)}
}

// PutUint32 appends v as 4 little-endian bytes.
func (e *Encoder) PutUint32(v uint32) {
	e.buf = binary.LittleEndian.AppendUint32(e.buf, v)
}

// PutUint64 appends v as 8 little-endian bytes.
func (e *Encoder) PutUint64(v uint64) {
	e.buf = binary.LittleEndian.AppendUint64(e.buf, v)
}

// PutBool appends v as a uint32 0 or 1.
func (e *Encoder) PutBool(v bool) {
	if v {
		e.PutUint32(1)
		return
	}
	e.PutUint32(0)
}

// PutDiscriminant appends a union discriminant.
func (e *Encoder) PutDiscriminant(d uint32) {
	e.PutUint32(d)
}

// PutOpaque appends a length-prefixed byte blob.
func (e *Encoder) PutOpaque(b []byte) {
	e.PutOpaqueMax(b, MaxVarLen)
}

// PutOpaqueMax appends a length-prefixed byte blob declared to hold at most limit bytes.
func (e *Encoder) PutOpaqueMax(b []byte, limit uint32) {
	if !e.checkLen("opaque", len(b), limit) {
		return
	}
	e.PutUint32(uint32(len(b))) //nolint:gosec // G115: bounded by checkLen
	e.buf = append(e.buf, b...)
}

// PutString appends a length-prefixed UTF-8 string.
func (e *Encoder) PutString(s string) {
	e.PutStringMax(s, MaxVarLen)
}

// PutStringMax appends a length-prefixed string declared to hold at most limit bytes.
func (e *Encoder) PutStringMax(s string, limit uint32) {
	if !e.checkLen("string", len(s), limit) {
		return
	}
	e.PutUint32(uint32(len(s))) //nolint:gosec // G115: bounded by checkLen
	e.buf = append(e.buf, s...)
}

// PutFixedOpaque appends b verbatim, without a length prefix.
func (e *Encoder) PutFixedOpaque(b []byte) {
	e.buf = append(e.buf, b...)
}

// Put appends the encoding of v.
func (e *Encoder) Put(v Marshaler) {
	v.MarshalWire(e)
}

// Fail records a schema violation. Only the first failure is kept.
func (e *Encoder) Fail(err error) {
	if e.err == nil && err != nil {
		e.err = err
	}
}

// Err returns the first schema violation recorded during the pass.
func (e *Encoder) Err() error {
	return e.err
}

// Len returns the number of bytes encoded so far.
func (e *Encoder) Len() int {
	return len(e.buf)
}

// Bytes hands off the encoded buffer. The Encoder must not be used afterwards.
func (e *Encoder) Bytes() []byte {
	b := e.buf
	e.buf = nil
	return b
}

func (e *Encoder) checkLen(kind string, n int, limit uint32) bool {
	if uint64(n) > uint64(limit) || uint64(n) > math.MaxUint32 {
		e.Fail(&errors.WireFormatError{
			Operation: "encode",
			Type:      kind,
			Err:       fmt.Errorf("length %d exceeds declared maximum %d", n, limit),
		})
		return false
	}
	return true
}

// Marshal encodes v into a fresh buffer.
func Marshal(v Marshaler) ([]byte, error) {
	e := NewEncoder()
	v.MarshalWire(e)
	if err := e.Err(); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}

// MustMarshal is Marshal for values whose shape is known to be valid.
// It panics on a schema violation.
func MustMarshal(v Marshaler) []byte {
	b, err := Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("wireformat: %v", err))
	}
	return b
}

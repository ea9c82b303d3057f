package wireformat

import (
	"fmt"
	"strings"

	"github.com/reglet-dev/contract-sdk/domain/errors"
)

// PutVarArray appends a uint32 element count followed by each element.
// More than limit elements is a schema violation recorded on the Encoder.
func PutVarArray[T any](e *Encoder, items []T, limit uint32, put func(*Encoder, T)) {
	if uint64(len(items)) > uint64(limit) {
		e.Fail(&errors.WireFormatError{
			Operation: "encode",
			Type:      "var array",
			Err:       fmt.Errorf("%d elements exceed declared maximum %d", len(items), limit),
		})
		return
	}
	e.PutUint32(uint32(len(items))) //nolint:gosec // G115: bounded by limit
	for _, item := range items {
		put(e, item)
	}
}

// ReadVarArray reads a uint32 element count, at most limit, then that many elements.
func ReadVarArray[T any](d *Decoder, limit uint32, read func(*Decoder) (T, error)) ([]T, error) {
	n, err := d.Length("var array", limit)
	if err != nil {
		return nil, err
	}
	// Every element occupies at least one byte, so the remaining buffer bounds
	// the allocation regardless of what the prefix claims.
	out := make([]T, 0, min(n, d.Remaining()))
	for i := 0; i < n; i++ {
		item, err := read(d)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, item)
	}
	return out, nil
}

// PutFixedArray appends exactly n elements with no prefix.
func PutFixedArray[T any](e *Encoder, items []T, n int, put func(*Encoder, T)) {
	if len(items) != n {
		e.Fail(&errors.WireFormatError{
			Operation: "encode",
			Type:      "fixed array",
			Err:       fmt.Errorf("got %d elements, declared size is %d", len(items), n),
		})
		return
	}
	for _, item := range items {
		put(e, item)
	}
}

// ReadFixedArray reads exactly n elements.
func ReadFixedArray[T any](d *Decoder, n int, read func(*Decoder) (T, error)) ([]T, error) {
	out := make([]T, 0, min(n, d.Remaining()))
	for i := 0; i < n; i++ {
		item, err := read(d)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, item)
	}
	return out, nil
}

// Elem is an element writer for arrays of Marshalers.
func Elem[T Marshaler](e *Encoder, v T) {
	v.MarshalWire(e)
}

// ReadElem is an element reader for arrays of self-decoding values.
func ReadElem[T any, PT Decodable[T]](d *Decoder) (T, error) {
	var v T
	if err := PT(&v).UnmarshalWire(d); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// PutStringElem is an element writer for arrays of strings.
func PutStringElem(e *Encoder, s string) {
	e.PutString(s)
}

// ReadStringElem is an element reader for arrays of strings.
func ReadStringElem(d *Decoder) (string, error) {
	return d.String()
}

// PutOpaqueElem is an element writer for arrays of byte blobs.
func PutOpaqueElem(e *Encoder, b []byte) {
	e.PutOpaque(b)
}

// ReadOpaqueElem is an element reader for arrays of byte blobs.
func ReadOpaqueElem(d *Decoder) ([]byte, error) {
	return d.Opaque()
}

func goTypeName(v any) string {
	return strings.TrimLeft(fmt.Sprintf("%T", v), "*")
}

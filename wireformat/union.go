package wireformat

import (
	"encoding/binary"
	"fmt"

	"github.com/reglet-dev/contract-sdk/domain/errors"
)

// Enum reads an enumeration ordinal of the named type. Ordinals at or above
// count are rejected as invalid encodings.
func (d *Decoder) Enum(name string, count uint32) (uint32, error) {
	offset := d.pos
	b, err := d.take(4, name)
	if err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(b)
	if v >= count {
		return 0, &errors.DecodeError{
			Err:    fmt.Errorf("%w: %s ordinal %d out of range", errors.ErrInvalidEncoding, name, v),
			Op:     name,
			Offset: offset,
		}
	}
	return v, nil
}

// PutUnion appends the discriminant of the selected arm followed by its payload.
// A nil payload encodes a void arm.
func PutUnion(e *Encoder, disc uint32, payload Marshaler) {
	e.PutDiscriminant(disc)
	if payload != nil {
		payload.MarshalWire(e)
	}
}

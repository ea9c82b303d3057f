package abi

import (
	"fmt"

	"github.com/reglet-dev/contract-sdk/domain/errors"
	"github.com/reglet-dev/contract-sdk/wireformat"
)

// Stream is a cursor over pre-segmented argument slots.
type Stream struct {
	slots [][]byte
	next  int
	opts  []wireformat.DecoderOption
}

// NewStream returns a Stream positioned at slot 0.
func NewStream(slots [][]byte, opts ...wireformat.DecoderOption) *Stream {
	return &Stream{slots: slots, opts: opts}
}

// Len returns the total number of slots.
func (s *Stream) Len() int {
	return len(s.slots)
}

// Remaining returns the number of slots not yet consumed.
func (s *Stream) Remaining() int {
	return len(s.slots) - s.next
}

// Slot returns the next raw slot and advances past it.
func (s *Stream) Slot() ([]byte, error) {
	if s.next >= len(s.slots) {
		return nil, &errors.DecodeError{
			Err:    fmt.Errorf("%w: no argument slot %d", errors.ErrUnexpectedEndOfInput, s.next),
			Op:     "argument",
			Offset: s.next,
		}
	}
	b := s.slots[s.next]
	s.next++
	return b, nil
}

// Next decodes the next slot into v. The slot must be consumed exactly.
func (s *Stream) Next(v wireformat.Unmarshaler) error {
	b, err := s.Slot()
	if err != nil {
		return err
	}
	return wireformat.Unmarshal(b, v, s.opts...)
}

// Pop decodes a fresh T from the next slot of s. Decode errors are returned
// unchanged; on error the zero T is returned.
func Pop[T any, PT wireformat.Decodable[T]](s *Stream) (T, error) {
	b, err := s.Slot()
	if err != nil {
		var zero T
		return zero, err
	}
	return wireformat.Decode[T, PT](b, s.opts...)
}

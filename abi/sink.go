package abi

import "github.com/reglet-dev/contract-sdk/wireformat"

// Sink accumulates successive result encodings into one buffer.
type Sink struct {
	enc *wireformat.Encoder
}

// NewSink returns an empty Sink.
func NewSink() *Sink {
	return &Sink{enc: wireformat.NewEncoder()}
}

// Push appends the encoding of v.
func (s *Sink) Push(v wireformat.Marshaler) {
	s.enc.Put(v)
}

// Err returns the first schema violation hit by a Push.
func (s *Sink) Err() error {
	return s.enc.Err()
}

// Bytes hands off the accumulated buffer. An empty Sink yields an empty,
// non-nil slice.
func (s *Sink) Bytes() ([]byte, error) {
	if err := s.enc.Err(); err != nil {
		return nil, err
	}
	b := s.enc.Bytes()
	if b == nil {
		b = []byte{}
	}
	return b, nil
}

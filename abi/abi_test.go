package abi

import (
	"testing"

	"github.com/reglet-dev/contract-sdk/domain/errors"
	"github.com/reglet-dev/contract-sdk/wireformat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallEnvelope_Layout(t *testing.T) {
	call, err := NewCall("hi", wireformat.Uint32(7))
	require.NoError(t, err)

	got := wireformat.MustMarshal(call)
	want := []byte{
		2, 0, 0, 0, 'h', 'i', // function
		1, 0, 0, 0, // one slot
		4, 0, 0, 0, 7, 0, 0, 0, // slot holding uint32 7
	}
	assert.Equal(t, want, got)

	decoded, err := wireformat.Decode[CallEnvelope](got)
	require.NoError(t, err)
	assert.Equal(t, call, decoded)
}

func TestCallEnvelope_Truncated(t *testing.T) {
	call, err := NewCall("transfer", wireformat.String("bob"), wireformat.Uint64(10))
	require.NoError(t, err)
	full := wireformat.MustMarshal(call)

	for i := 0; i < len(full); i++ {
		_, err := wireformat.Decode[CallEnvelope](full[:i])
		require.ErrorIs(t, err, errors.ErrUnexpectedEndOfInput, "prefix of %d bytes", i)
	}
}

func TestStream_Pop(t *testing.T) {
	call, err := NewCall("f", wireformat.String("alice"), wireformat.Uint64(42))
	require.NoError(t, err)
	s := call.Stream()
	assert.Equal(t, 2, s.Len())

	name, err := Pop[wireformat.String](s)
	require.NoError(t, err)
	assert.Equal(t, wireformat.String("alice"), name)
	assert.Equal(t, 1, s.Remaining())

	amount, err := Pop[wireformat.Uint64](s)
	require.NoError(t, err)
	assert.Equal(t, wireformat.Uint64(42), amount)

	_, err = Pop[wireformat.Uint32](s)
	assert.ErrorIs(t, err, errors.ErrUnexpectedEndOfInput)
}

func TestStream_SlotErrorsPropagate(t *testing.T) {
	s := NewStream([][]byte{{1, 0}, {2, 0, 0, 0, 0}})

	_, err := Pop[wireformat.Uint32](s)
	assert.ErrorIs(t, err, errors.ErrUnexpectedEndOfInput)

	// The bad slot is still consumed; the next one has a trailing byte.
	_, err = Pop[wireformat.Uint32](s)
	assert.ErrorIs(t, err, errors.ErrInvalidEncoding)
}

func TestStream_Next(t *testing.T) {
	s := NewStream([][]byte{wireformat.MustMarshal(wireformat.Bool(true))})
	var b wireformat.Bool
	require.NoError(t, s.Next(&b))
	assert.True(t, bool(b))
}

func TestSink(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		b, err := NewSink().Bytes()
		require.NoError(t, err)
		assert.Equal(t, []byte{}, b)
	})

	t.Run("single result equals its encoding", func(t *testing.T) {
		s := NewSink()
		s.Push(wireformat.Uint32(14))
		b, err := s.Bytes()
		require.NoError(t, err)
		assert.Equal(t, wireformat.MustMarshal(wireformat.Uint32(14)), b)
	})

	t.Run("results are concatenated", func(t *testing.T) {
		s := NewSink()
		s.Push(wireformat.Uint32(1))
		s.Push(wireformat.String("a"))
		b, err := s.Bytes()
		require.NoError(t, err)

		d := wireformat.NewDecoder(b)
		n, err := d.Uint32()
		require.NoError(t, err)
		assert.Equal(t, uint32(1), n)
		str, err := d.String()
		require.NoError(t, err)
		assert.Equal(t, "a", str)
		assert.NoError(t, d.Finish())
	})
}

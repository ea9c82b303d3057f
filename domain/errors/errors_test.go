package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeError(t *testing.T) {
	err := &DecodeError{Err: ErrUnexpectedEndOfInput, Op: "uint32", Offset: 12}

	assert.Equal(t, "decode uint32 at offset 12: unexpected end of input", err.Error())
	assert.True(t, errors.Is(err, ErrUnexpectedEndOfInput))

	var de *DecodeError
	require.True(t, errors.As(fmt.Errorf("field count: %w", err), &de))
	assert.Equal(t, 12, de.Offset)
}

func TestDecodeError_WithField(t *testing.T) {
	err := &DecodeError{Err: ErrInvalidEncoding, Op: "string", Field: "name", Offset: 4}
	assert.Equal(t, "decode string (field name) at offset 4: invalid encoding", err.Error())
}

func TestDepthExceededIsInvalidEncoding(t *testing.T) {
	assert.ErrorIs(t, ErrDepthExceeded, ErrInvalidEncoding)
	assert.Equal(t, "depth_exceeded", Code(ErrDepthExceeded))
	assert.Equal(t, "invalid_encoding", Code(ErrInvalidEncoding))
}

func TestCode(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: nil, want: ""},
		{err: fmt.Errorf("wrapped: %w", ErrUnexpectedEndOfInput), want: "unexpected_eof"},
		{err: ErrUnknownVariant, want: "unknown_variant"},
		{err: ErrUnknownFunction, want: "unknown_function"},
		{err: ErrArgumentDecode, want: "invalid_arguments"},
		{err: ErrMissingKey, want: "missing_key"},
		{err: ErrKeyLength, want: "key_length"},
		{err: ErrKeyPairGenerate, want: "key_pair_generate"},
		{err: ErrSignMessage, want: "sign_message"},
		{err: ErrReadOnlyViolation, want: "read_only"},
		{err: ErrAlreadyConstructed, want: "already_constructed"},
		{err: errors.New("boom"), want: ""},
	}

	for _, tt := range tests {
		name := tt.want
		if name == "" {
			name = "none"
		}
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, Code(tt.err))
		})
	}
}

func TestHostError(t *testing.T) {
	err := &HostError{Err: ErrMissingKey, Function: "get", Message: "no such key", Code: 6}

	assert.Equal(t, "host function get failed (code 6): no such key", err.Error())
	assert.ErrorIs(t, err, ErrMissingKey)

	detail := err.ToErrorDetail()
	assert.Equal(t, "host", detail.Type)
	assert.Equal(t, "host_6", detail.Code)
	assert.True(t, detail.IsNotFound)
}

func TestWireFormatError(t *testing.T) {
	base := errors.New("3 elements exceed declared maximum 2")
	err := &WireFormatError{Err: base, Operation: "encode", Type: "var array"}

	assert.Equal(t, "wire format encode failed for var array: 3 elements exceed declared maximum 2", err.Error())
	assert.ErrorIs(t, err, base)
}

func TestConfigError(t *testing.T) {
	err := &ConfigError{Field: "max_request_bytes", Err: errors.New("must be positive")}
	assert.Equal(t, "config validation failed for field 'max_request_bytes': must be positive", err.Error())

	noField := &ConfigError{Err: errors.New("empty")}
	assert.Equal(t, "config validation failed: empty", noField.Error())
}

func TestToErrorDetail(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, ToErrorDetail(nil))
	})

	t.Run("decode error", func(t *testing.T) {
		detail := ToErrorDetail(&DecodeError{Err: ErrUnknownVariant, Op: "op", Offset: 0})
		assert.Equal(t, "validation", detail.Type)
		assert.Equal(t, "unknown_variant", detail.Code)
		assert.Equal(t, "op", detail.Details["op"])
	})

	t.Run("sentinel", func(t *testing.T) {
		detail := ToErrorDetail(fmt.Errorf("get: %w", ErrMissingKey))
		assert.Equal(t, "validation", detail.Type)
		assert.Equal(t, "missing_key", detail.Code)
		assert.True(t, detail.IsNotFound)
	})

	t.Run("memory", func(t *testing.T) {
		detail := ToErrorDetail(&MemoryError{Requested: 10, Current: 5, Limit: 12})
		assert.Equal(t, "memory_limit", detail.Code)
	})

	t.Run("generic", func(t *testing.T) {
		detail := ToErrorDetail(errors.New("boom"))
		assert.Equal(t, "internal", detail.Type)
		assert.Equal(t, "boom", detail.Message)
	})
}

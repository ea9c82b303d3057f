package hostfuncs

import (
	"errors"
	"fmt"
	"testing"

	sdkerrors "github.com/reglet-dev/contract-sdk/domain/errors"
	"github.com/reglet-dev/contract-sdk/wireformat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorResponse_Encode(t *testing.T) {
	resp := ErrorResponse{Code: CodeMissingKey, Message: "ab"}

	want := []byte{
		1, 0, 0, 0, // ERR
		4, 0, 0, 0, // code
		2, 0, 0, 0, 'a', 'b',
	}
	assert.Equal(t, want, resp.Encode())

	res, err := DecodeResult(want)
	require.NoError(t, err)
	require.NotNil(t, res.Err)
	assert.Equal(t, resp, *res.Err)
	assert.Nil(t, res.Payload)
}

func TestCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want uint32
	}{
		{name: "missing key", err: fmt.Errorf("get: %w", sdkerrors.ErrMissingKey), want: CodeMissingKey},
		{name: "key length", err: sdkerrors.ErrKeyLength, want: CodeKeyLength},
		{name: "key pair", err: sdkerrors.ErrKeyPairGenerate, want: CodeKeyPairGenerate},
		{name: "sign", err: sdkerrors.ErrSignMessage, want: CodeSignMessage},
		{name: "read only", err: sdkerrors.ErrReadOnlyViolation, want: CodeReadOnly},
		{name: "unknown function", err: sdkerrors.ErrUnknownFunction, want: CodeUnknownFunction},
		{name: "eof", err: sdkerrors.ErrUnexpectedEndOfInput, want: CodeInvalidRequest},
		{name: "depth", err: sdkerrors.ErrDepthExceeded, want: CodeInvalidRequest},
		{name: "variant", err: sdkerrors.ErrUnknownVariant, want: CodeInvalidRequest},
		{name: "anything else", err: errors.New("disk full"), want: CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeFor(tt.err))
		})
	}
}

func TestErrorResponse_Sentinel(t *testing.T) {
	for _, sentinel := range []error{
		sdkerrors.ErrMissingKey,
		sdkerrors.ErrKeyLength,
		sdkerrors.ErrKeyPairGenerate,
		sdkerrors.ErrSignMessage,
		sdkerrors.ErrReadOnlyViolation,
		sdkerrors.ErrUnknownFunction,
		sdkerrors.ErrInvalidEncoding,
	} {
		t.Run(sentinel.Error(), func(t *testing.T) {
			resp := NewErrorResponse(fmt.Errorf("wrapped: %w", sentinel))
			assert.ErrorIs(t, resp.Sentinel(), sentinel)
			assert.Contains(t, resp.Message, "wrapped")
		})
	}

	assert.Nil(t, NewInternalError("boom").Sentinel())
	assert.Nil(t, NewPanicError("boom").Sentinel())
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("failed to decode request")
	assert.Equal(t, CodeInvalidRequest, err.Code)
	assert.Equal(t, "failed to decode request", err.Message)
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("unknown_func")
	assert.Equal(t, CodeUnknownFunction, err.Code)
	assert.Equal(t, "unknown host function: unknown_func", err.Message)
}

func TestNewInternalError(t *testing.T) {
	err := NewInternalError("database connection failed")
	assert.Equal(t, CodeInternal, err.Code)
	assert.Equal(t, "database connection failed", err.Message)
}

func TestNewPanicError(t *testing.T) {
	tests := []struct {
		name       string
		panicValue any
		wantMsg    string
	}{
		{
			name:       "string panic",
			panicValue: "oops",
			wantMsg:    "panic: oops",
		},
		{
			name:       "error panic",
			panicValue: errors.New("nil map"),
			wantMsg:    "panic: nil map",
		},
		{
			name:       "other panic",
			panicValue: 42,
			wantMsg:    "panic: panic recovered: 42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewPanicError(tt.panicValue)
			assert.Equal(t, CodePanic, err.Code)
			assert.Equal(t, tt.wantMsg, err.Message)
		})
	}
}

func TestResult(t *testing.T) {
	t.Run("ok layout", func(t *testing.T) {
		want := []byte{
			0, 0, 0, 0, // OK
			3, 0, 0, 0, 1, 2, 3,
		}
		assert.Equal(t, want, OK([]byte{1, 2, 3}))

		res, err := DecodeResult(want)
		require.NoError(t, err)
		assert.Nil(t, res.Err)
		assert.Equal(t, []byte{1, 2, 3}, res.Payload)
	})

	t.Run("empty payload", func(t *testing.T) {
		assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 0}, OK(nil))
	})

	t.Run("unknown arm", func(t *testing.T) {
		_, err := DecodeResult([]byte{2, 0, 0, 0})
		assert.ErrorIs(t, err, sdkerrors.ErrUnknownVariant)
	})

	t.Run("truncated", func(t *testing.T) {
		full := OK([]byte{1, 2, 3})
		for i := range full {
			_, err := DecodeResult(full[:i])
			assert.ErrorIs(t, err, sdkerrors.ErrUnexpectedEndOfInput, "prefix %d", i)
		}
	})

	t.Run("trailing bytes", func(t *testing.T) {
		_, err := DecodeResult(append(OK(nil), 0))
		assert.ErrorIs(t, err, sdkerrors.ErrInvalidEncoding)
	})

	t.Run("generic decode", func(t *testing.T) {
		res, err := wireformat.Decode[Result](OK([]byte("x")))
		require.NoError(t, err)
		assert.Equal(t, []byte("x"), res.Payload)
	})
}

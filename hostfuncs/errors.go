package hostfuncs

import (
	"errors"
	"fmt"

	sdkerrors "github.com/reglet-dev/contract-sdk/domain/errors"
	"github.com/reglet-dev/contract-sdk/wireformat"
)

// Error codes carried by the ERR arm of a host result.
const (
	CodeInternal uint32 = iota + 1
	CodeInvalidRequest
	CodeUnknownFunction
	CodeMissingKey
	CodeKeyLength
	CodeKeyPairGenerate
	CodeSignMessage
	CodeReadOnly
	CodePanic
)

// ErrorResponse is the failure reported to the guest instead of trapping it.
type ErrorResponse struct {
	// Message is a human-readable error description.
	Message string

	// Code is one of the Code* constants.
	Code uint32
}

// MarshalWire implements wireformat.Marshaler.
func (e ErrorResponse) MarshalWire(enc *wireformat.Encoder) {
	enc.PutUint32(e.Code)
	enc.PutString(e.Message)
}

// UnmarshalWire implements wireformat.Unmarshaler.
func (e *ErrorResponse) UnmarshalWire(d *wireformat.Decoder) error {
	code, err := d.Uint32()
	if err != nil {
		return wireformat.Field("code", err)
	}
	msg, err := d.String()
	if err != nil {
		return wireformat.Field("message", err)
	}
	e.Code, e.Message = code, msg
	return nil
}

// Encode returns the ErrorResponse wrapped in the ERR arm of a host result.
func (e ErrorResponse) Encode() []byte {
	return wireformat.MustMarshal(Result{Err: &e})
}

// Sentinel returns the taxonomy error matching the code, or nil for codes
// without one.
func (e ErrorResponse) Sentinel() error {
	switch e.Code {
	case CodeInvalidRequest:
		return sdkerrors.ErrInvalidEncoding
	case CodeUnknownFunction:
		return sdkerrors.ErrUnknownFunction
	case CodeMissingKey:
		return sdkerrors.ErrMissingKey
	case CodeKeyLength:
		return sdkerrors.ErrKeyLength
	case CodeKeyPairGenerate:
		return sdkerrors.ErrKeyPairGenerate
	case CodeSignMessage:
		return sdkerrors.ErrSignMessage
	case CodeReadOnly:
		return sdkerrors.ErrReadOnlyViolation
	}
	return nil
}

// CodeFor maps err onto the code of the taxonomy sentinel it wraps.
func CodeFor(err error) uint32 {
	switch {
	case errors.Is(err, sdkerrors.ErrMissingKey):
		return CodeMissingKey
	case errors.Is(err, sdkerrors.ErrKeyLength):
		return CodeKeyLength
	case errors.Is(err, sdkerrors.ErrKeyPairGenerate):
		return CodeKeyPairGenerate
	case errors.Is(err, sdkerrors.ErrSignMessage):
		return CodeSignMessage
	case errors.Is(err, sdkerrors.ErrReadOnlyViolation):
		return CodeReadOnly
	case errors.Is(err, sdkerrors.ErrUnknownFunction):
		return CodeUnknownFunction
	case errors.Is(err, sdkerrors.ErrUnexpectedEndOfInput),
		errors.Is(err, sdkerrors.ErrInvalidEncoding),
		errors.Is(err, sdkerrors.ErrUnknownVariant):
		return CodeInvalidRequest
	}
	return CodeInternal
}

// NewErrorResponse converts a collaborator error into an ErrorResponse.
func NewErrorResponse(err error) ErrorResponse {
	return ErrorResponse{Code: CodeFor(err), Message: err.Error()}
}

// NewValidationError creates an error response for a request that failed to decode.
func NewValidationError(message string) ErrorResponse {
	return ErrorResponse{Code: CodeInvalidRequest, Message: message}
}

// NewNotFoundError creates an error response for unknown handler names.
func NewNotFoundError(name string) ErrorResponse {
	return ErrorResponse{Code: CodeUnknownFunction, Message: "unknown host function: " + name}
}

// NewInternalError creates an error response for unexpected failures.
func NewInternalError(message string) ErrorResponse {
	return ErrorResponse{Code: CodeInternal, Message: message}
}

// NewPanicError creates an error response for recovered panics.
func NewPanicError(panicValue any) ErrorResponse {
	var msg string
	if err, ok := panicValue.(error); ok {
		msg = err.Error()
	} else if s, ok := panicValue.(string); ok {
		msg = s
	} else {
		msg = fmt.Sprintf("panic recovered: %v", panicValue)
	}
	return ErrorResponse{Code: CodePanic, Message: "panic: " + msg}
}

// Package errors provides domain-specific error types for the SDK.
// All error types support error unwrapping via errors.As() and errors.Is().
package errors

import (
	stdErrors "errors"
	"fmt"

	"github.com/reglet-dev/contract-sdk/domain/entities"
)

// ErrorDetail is an alias to entities.ErrorDetail for convenience.
type ErrorDetail = entities.ErrorDetail

// Sentinel errors of the codec and call taxonomy. Match them with errors.Is.
var (
	// ErrUnexpectedEndOfInput is returned when a decode needs more bytes than remain.
	ErrUnexpectedEndOfInput = stdErrors.New("unexpected end of input")

	// ErrInvalidEncoding covers bad UTF-8, bad bool values, out-of-range enum
	// ordinals, oversized variable arrays, trailing bytes and broken tree arity.
	ErrInvalidEncoding = stdErrors.New("invalid encoding")

	// ErrUnknownVariant is returned for a union discriminant with no matching variant.
	ErrUnknownVariant = stdErrors.New("unknown variant")

	// ErrUnknownFunction is returned when a call names a function that is not registered.
	ErrUnknownFunction = stdErrors.New("unknown function")

	// ErrArgumentDecode is returned when a call argument cannot be decoded from its slot.
	ErrArgumentDecode = stdErrors.New("argument decode failure")

	// ErrMissingKey is returned by host collaborators for absent keys and handles.
	ErrMissingKey = stdErrors.New("missing key")

	// ErrDepthExceeded is returned when nested values exceed the decoder depth limit.
	ErrDepthExceeded = fmt.Errorf("%w: nesting depth exceeded", ErrInvalidEncoding)

	// ErrKeyLength is returned when a key handed to a crypto primitive has the wrong size.
	ErrKeyLength = stdErrors.New("incorrect key length")

	// ErrKeyPairGenerate is returned when the host fails to produce a key pair.
	ErrKeyPairGenerate = stdErrors.New("problem generating key pair")

	// ErrSignMessage is returned when the host fails to sign a message.
	ErrSignMessage = stdErrors.New("problem signing message")

	// ErrReadOnlyViolation is returned when a read-only call attempts to mutate state.
	ErrReadOnlyViolation = stdErrors.New("state mutation in read-only call")

	// ErrAlreadyConstructed is returned when the constructor is invoked a second time.
	ErrAlreadyConstructed = stdErrors.New("contract already constructed")
)

// DetailedError is an interface for custom error types that can convert themselves
// to a structured ErrorDetail.
type DetailedError interface {
	error
	ToErrorDetail() *entities.ErrorDetail
}

// ToErrorDetail converts a Go error to our structured ErrorDetail.
// This function recognizes custom error types and categorizes them appropriately.
func ToErrorDetail(err error) *entities.ErrorDetail {
	if err == nil {
		return nil
	}

	var e *entities.ErrorDetail
	if stdErrors.As(err, &e) {
		return e
	}

	var de DetailedError
	if stdErrors.As(err, &de) {
		return de.ToErrorDetail()
	}

	if code := Code(err); code != "" {
		return &entities.ErrorDetail{
			Message:    err.Error(),
			Type:       "validation",
			Code:       code,
			IsNotFound: stdErrors.Is(err, ErrMissingKey),
		}
	}

	// Generic error - categorize as internal
	return &entities.ErrorDetail{
		Message: err.Error(),
		Type:    "internal",
	}
}

// Code returns the machine-readable code of the taxonomy sentinel wrapped by err,
// or an empty string when err carries none.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case stdErrors.Is(err, ErrDepthExceeded):
		return "depth_exceeded"
	case stdErrors.Is(err, ErrUnexpectedEndOfInput):
		return "unexpected_eof"
	case stdErrors.Is(err, ErrInvalidEncoding):
		return "invalid_encoding"
	case stdErrors.Is(err, ErrUnknownVariant):
		return "unknown_variant"
	case stdErrors.Is(err, ErrUnknownFunction):
		return "unknown_function"
	case stdErrors.Is(err, ErrArgumentDecode):
		return "invalid_arguments"
	case stdErrors.Is(err, ErrMissingKey):
		return "missing_key"
	case stdErrors.Is(err, ErrKeyLength):
		return "key_length"
	case stdErrors.Is(err, ErrKeyPairGenerate):
		return "key_pair_generate"
	case stdErrors.Is(err, ErrSignMessage):
		return "sign_message"
	case stdErrors.Is(err, ErrReadOnlyViolation):
		return "read_only"
	case stdErrors.Is(err, ErrAlreadyConstructed):
		return "already_constructed"
	}
	return ""
}

// DecodeError locates a decode failure inside the buffer being read.
type DecodeError struct {
	Err    error
	Op     string // primitive or composite being decoded, e.g. "uint32", "string"
	Field  string // optional: struct field or union arm name
	Offset int    // cursor position where the failing read started
}

func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("decode %s (field %s) at offset %d: %v", e.Op, e.Field, e.Offset, e.Err)
	}
	return fmt.Sprintf("decode %s at offset %d: %v", e.Op, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *DecodeError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{
		Message: e.Error(),
		Type:    "validation",
		Code:    Code(e.Err),
		Details: map[string]any{"op": e.Op, "offset": e.Offset},
	}
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Err   error
	Field string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config validation failed for field '%s': %v", e.Field, e.Err)
	}
	return fmt.Sprintf("config validation failed: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *ConfigError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "config", Code: e.Field}
}

// MemoryError represents a memory allocation failure.
type MemoryError struct {
	Requested int // Requested allocation size
	Current   int // Current total allocated
	Limit     int // Maximum allowed
}

func (e *MemoryError) Error() string {
	return fmt.Sprintf("memory allocation failed: requested %d bytes, current %d bytes, limit %d bytes",
		e.Requested, e.Current, e.Limit)
}

// ToErrorDetail implements DetailedError.
func (e *MemoryError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "internal", Code: "memory_limit"}
}

// WireFormatError represents a wire format encoding error, such as a variable
// array longer than its declared maximum.
type WireFormatError struct {
	Err       error
	Operation string
	Type      string
}

func (e *WireFormatError) Error() string {
	return fmt.Sprintf("wire format %s failed for %s: %v", e.Operation, e.Type, e.Err)
}

func (e *WireFormatError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *WireFormatError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "internal", Code: "wire_format"}
}

// HostError is a failure reported by a host function across the call boundary.
type HostError struct {
	Err      error // taxonomy sentinel reconstructed from Code, may be nil
	Function string
	Message  string
	Code     uint32
}

func (e *HostError) Error() string {
	return fmt.Sprintf("host function %s failed (code %d): %s", e.Function, e.Code, e.Message)
}

func (e *HostError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *HostError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{
		Message:    e.Error(),
		Type:       "host",
		Code:       fmt.Sprintf("host_%d", e.Code),
		IsNotFound: stdErrors.Is(e.Err, ErrMissingKey),
	}
}

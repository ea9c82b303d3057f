package contract

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/reglet-dev/contract-sdk/domain/entities"
	sdkerrors "github.com/reglet-dev/contract-sdk/domain/errors"
)

// ErrorKind classifies a failed call.
type ErrorKind int

// Call failure kinds.
const (
	// DeserializeError means the call envelope itself was malformed.
	DeserializeError ErrorKind = iota + 1
	// InvalidFunctionName means no function of the requested kind has that name.
	InvalidFunctionName
	// InvalidArguments means the slot count or an argument slot was wrong.
	InvalidArguments
	// HandlerFailed means the handler returned an error.
	HandlerFailed
	// HandlerPanic means the handler panicked.
	HandlerPanic
	// ResultEncoding means the handler's results could not be encoded.
	ResultEncoding
	// Busy means a call arrived while another was in progress.
	Busy
	// AlreadyConstructed means the constructor already ran to completion.
	AlreadyConstructed
)

func (k ErrorKind) String() string {
	switch k {
	case DeserializeError:
		return "deserialize_error"
	case InvalidFunctionName:
		return "invalid_function_name"
	case InvalidArguments:
		return "invalid_arguments"
	case HandlerFailed:
		return "handler_failed"
	case HandlerPanic:
		return "handler_panic"
	case ResultEncoding:
		return "result_encoding"
	case Busy:
		return "busy"
	case AlreadyConstructed:
		return "already_constructed"
	default:
		return fmt.Sprintf("error_kind_%d", int(k))
	}
}

// CallError is the failure value of Execute, ExecuteReadOnly and Construct.
type CallError struct {
	Err      error
	Function string
	Kind     ErrorKind
}

func (e *CallError) Error() string {
	if e.Function == "" {
		return fmt.Sprintf("call failed (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("call %q failed (%s): %v", e.Function, e.Kind, e.Err)
}

func (e *CallError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements errors.DetailedError.
func (e *CallError) ToErrorDetail() *entities.ErrorDetail {
	detail := &entities.ErrorDetail{
		Message: e.Error(),
		Type:    "validation",
		Code:    e.Kind.String(),
		Details: map[string]any{"function": e.Function},
	}
	switch e.Kind {
	case HandlerPanic:
		detail.Type = "panic"
		var pe *PanicError
		if errors.As(e.Err, &pe) {
			detail.Stack = string(pe.Stack)
		}
	case HandlerFailed, ResultEncoding, Busy:
		detail.Type = "internal"
	}
	if e.Err != nil && e.Kind != HandlerPanic {
		detail.Wrapped = sdkerrors.ToErrorDetail(e.Err)
	}
	return detail
}

// IsKind reports whether err is a *CallError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ce *CallError
	return errors.As(err, &ce) && ce.Kind == kind
}

// PanicError carries a panic recovered from a handler.
type PanicError struct {
	Value any
	Stack []byte
}

func newPanicError(v any) *PanicError {
	return &PanicError{Value: v, Stack: debug.Stack()}
}

func (e *PanicError) Error() string {
	switch v := e.Value.(type) {
	case error:
		return "panic: " + v.Error()
	case string:
		return "panic: " + v
	default:
		return fmt.Sprintf("panic: %v", v)
	}
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

package contract

import (
	"errors"
	"fmt"
)

// Exit statuses of the guest execute exports. A failed call reports the
// ordinal of its ErrorKind; failures outside the Router report StatusHostFailure.
const (
	StatusOK          uint32 = 0
	StatusHostFailure uint32 = 255
)

// ExitStatus maps the result of Serve onto an export status.
func ExitStatus(err error) uint32 {
	if err == nil {
		return StatusOK
	}
	var ce *CallError
	if errors.As(err, &ce) && ce.Kind > 0 && ce.Kind <= AlreadyConstructed {
		return uint32(ce.Kind)
	}
	return StatusHostFailure
}

// ErrorFromStatus rebuilds the failure a guest reported through status.
// StatusOK yields nil.
func ErrorFromStatus(status uint32) error {
	switch {
	case status == StatusOK:
		return nil
	case status <= uint32(AlreadyConstructed):
		kind := ErrorKind(status)
		return &CallError{Kind: kind, Err: fmt.Errorf("guest call failed: %s", kind)}
	default:
		return fmt.Errorf("guest call failed with status %d", status)
	}
}

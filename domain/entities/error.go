package entities

import (
	"encoding/json"
	"fmt"
)

// ErrorDetail is the structured form of a failed contract call or host
// operation. contract-host prints it as JSON when a command fails.
// Types: "validation", "config", "host", "panic", "internal".
type ErrorDetail struct {
	// Wrapped is the detail of the error this one wraps.
	Wrapped *ErrorDetail `json:"wrapped,omitempty"`

	// Details carries call context such as the function name or decode offset.
	Details map[string]any `json:"details,omitempty"`

	Message string `json:"message"`
	Type    string `json:"type"`

	// Code is the taxonomy code, e.g. "missing_key" or "already_constructed".
	Code string `json:"code,omitempty"`

	// Stack is the guest stack captured when a handler panicked.
	Stack string `json:"stack,omitempty"`

	IsNotFound bool `json:"is_not_found,omitempty"`
}

// Error implements the error interface.
func (e *ErrorDetail) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if e.Type != "" && e.Type != "internal" {
		msg = fmt.Sprintf("%s: %s", e.Type, msg)
	}
	if e.Code != "" {
		msg = fmt.Sprintf("%s [%s]", msg, e.Code)
	}
	if e.Wrapped != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Wrapped.Error())
	}
	return msg
}

// Root returns the innermost detail of the chain.
func (e *ErrorDetail) Root() *ErrorDetail {
	for e != nil && e.Wrapped != nil {
		e = e.Wrapped
	}
	return e
}

// JSON renders the detail chain as indented JSON.
func (e *ErrorDetail) JSON() ([]byte, error) {
	return json.MarshalIndent(e, "", "  ")
}

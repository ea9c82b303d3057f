package contract

import "fmt"

// State is the phase of the router's current call.
type State int32

// Router states. A call moves Idle → DecodingEnvelope → Dispatching →
// Succeeded or Failed, then back to Idle.
const (
	StateIdle State = iota
	StateDecodingEnvelope
	StateDispatching
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDecodingEnvelope:
		return "decoding_envelope"
	case StateDispatching:
		return "dispatching"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state_%d", int32(s))
	}
}

// StateObserver is told about every state transition.
type StateObserver func(from, to State)

// Package abi implements the argument stream and call envelope exchanged
// between a host and a contract.
//
// A call arrives as a CallEnvelope: the function name plus one opaque slot per
// argument. Each slot holds exactly one complete wireformat encoding, so a
// Stream reads argument i from slot i without knowing the width of the
// arguments before it. Results flow the other way through a Sink, which
// appends successive encodings to one buffer.
package abi

// Package testutil provides fixtures shared by the SDK's tests.
package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/contract-sdk/abi"
	"github.com/reglet-dev/contract-sdk/wireformat"
)

// Envelope returns the encoded call envelope of name applied to args.
func Envelope(t testing.TB, name string, args ...wireformat.Marshaler) []byte {
	t.Helper()
	call, err := abi.NewCall(name, args...)
	require.NoError(t, err)
	return wireformat.MustMarshal(call)
}

// AssertJSONEqual compares two JSON documents for equality, ignoring formatting.
func AssertJSONEqual(t testing.TB, expected, actual string, msgAndArgs ...any) {
	t.Helper()

	var expectedJSON, actualJSON any
	require.NoError(t, json.Unmarshal([]byte(expected), &expectedJSON), "expected JSON is invalid")
	require.NoError(t, json.Unmarshal([]byte(actual), &actualJSON), "actual JSON is invalid")

	assert.Equal(t, expectedJSON, actualJSON, msgAndArgs...)
}

// EchoDescription is the interface description EchoContract reports.
const EchoDescription = `{"contract":"echo","sdk_version":"0.1.0","functions":[{"name":"echo","type":"function","inputs":[],"outputs":[]}]}`

// EchoContract is a hand-assembled contract module importing only
// fetch_input and return_bytes:
//   - execute fetches its input and returns it unchanged with status 0
//   - execute_readonly fails with status 2 (invalid function name)
//   - construct succeeds without returning results
//   - describe points at EchoDescription
//
// allocate always hands out offset 1024 and deallocate does nothing.
var EchoContract = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
	// type: (i64)->i64, (i32)->i32, ()->i32, ()->i64, (i32, i32)->()
	0x01, 0x18, 0x05, 0x60, 0x01, 0x7e, 0x01, 0x7e, 0x60, 0x01, 0x7f, 0x01, 0x7f, 0x60, 0x00, 0x01,
	0x7f, 0x60, 0x00, 0x01, 0x7e, 0x60, 0x02, 0x7f, 0x7f, 0x00,
	// import contract_host.fetch_input (func 0) and return_bytes (func 1)
	0x02, 0x3a, 0x02, 0x0d, 0x63, 0x6f, 0x6e, 0x74, 0x72, 0x61, 0x63, 0x74, 0x5f, 0x68, 0x6f, 0x73,
	0x74, 0x0b, 0x66, 0x65, 0x74, 0x63, 0x68, 0x5f, 0x69, 0x6e, 0x70, 0x75, 0x74, 0x00, 0x00, 0x0d,
	0x63, 0x6f, 0x6e, 0x74, 0x72, 0x61, 0x63, 0x74, 0x5f, 0x68, 0x6f, 0x73, 0x74, 0x0c, 0x72, 0x65,
	0x74, 0x75, 0x72, 0x6e, 0x5f, 0x62, 0x79, 0x74, 0x65, 0x73, 0x00, 0x00,
	// functions: allocate, deallocate, execute, execute_readonly, construct, describe
	0x03, 0x07, 0x06, 0x01, 0x04, 0x02, 0x02, 0x02, 0x03,
	// memory: one page
	0x05, 0x03, 0x01, 0x00, 0x01,
	// exports
	0x07, 0x56, 0x07, 0x06, 0x6d, 0x65, 0x6d, 0x6f, 0x72, 0x79, 0x02, 0x00, 0x08, 0x61, 0x6c, 0x6c,
	0x6f, 0x63, 0x61, 0x74, 0x65, 0x00, 0x02, 0x0a, 0x64, 0x65, 0x61, 0x6c, 0x6c, 0x6f, 0x63, 0x61,
	0x74, 0x65, 0x00, 0x03, 0x07, 0x65, 0x78, 0x65, 0x63, 0x75, 0x74, 0x65, 0x00, 0x04, 0x10, 0x65,
	0x78, 0x65, 0x63, 0x75, 0x74, 0x65, 0x5f, 0x72, 0x65, 0x61, 0x64, 0x6f, 0x6e, 0x6c, 0x79, 0x00,
	0x05, 0x09, 0x63, 0x6f, 0x6e, 0x73, 0x74, 0x72, 0x75, 0x63, 0x74, 0x00, 0x06, 0x08, 0x64, 0x65,
	0x73, 0x63, 0x72, 0x69, 0x62, 0x65, 0x00, 0x07,
	// code
	0x0a, 0x33, 0x06, 0x05, 0x00, 0x41, 0x80, 0x08, 0x0b, 0x02, 0x00, 0x0b, 0x13, 0x00, 0x42, 0x00,
	0x10, 0x00, 0x42, 0xf8, 0xff, 0xff, 0xff, 0xff, 0x00, 0x7c, 0x10, 0x01, 0x1a, 0x41, 0x00, 0x0b,
	0x04, 0x00, 0x41, 0x02, 0x0b, 0x04, 0x00, 0x41, 0x00, 0x0b, 0x0a, 0x00, 0x42, 0xf2, 0x80, 0x80,
	0x80, 0x80, 0x80, 0x02, 0x0b,
	// data: interface description at offset 2048
	0x0b, 0x79, 0x01, 0x00, 0x41, 0x80, 0x10, 0x0b, 0x72, 0x7b, 0x22, 0x63, 0x6f, 0x6e, 0x74, 0x72,
	0x61, 0x63, 0x74, 0x22, 0x3a, 0x22, 0x65, 0x63, 0x68, 0x6f, 0x22, 0x2c, 0x22, 0x73, 0x64, 0x6b,
	0x5f, 0x76, 0x65, 0x72, 0x73, 0x69, 0x6f, 0x6e, 0x22, 0x3a, 0x22, 0x30, 0x2e, 0x31, 0x2e, 0x30,
	0x22, 0x2c, 0x22, 0x66, 0x75, 0x6e, 0x63, 0x74, 0x69, 0x6f, 0x6e, 0x73, 0x22, 0x3a, 0x5b, 0x7b,
	0x22, 0x6e, 0x61, 0x6d, 0x65, 0x22, 0x3a, 0x22, 0x65, 0x63, 0x68, 0x6f, 0x22, 0x2c, 0x22, 0x74,
	0x79, 0x70, 0x65, 0x22, 0x3a, 0x22, 0x66, 0x75, 0x6e, 0x63, 0x74, 0x69, 0x6f, 0x6e, 0x22, 0x2c,
	0x22, 0x69, 0x6e, 0x70, 0x75, 0x74, 0x73, 0x22, 0x3a, 0x5b, 0x5d, 0x2c, 0x22, 0x6f, 0x75, 0x74,
	0x70, 0x75, 0x74, 0x73, 0x22, 0x3a, 0x5b, 0x5d, 0x7d, 0x5d, 0x7d,
}

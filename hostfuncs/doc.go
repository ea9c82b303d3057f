// Package hostfuncs implements the host function boundary of a contract.
//
// Each host function is a named ByteHandler taking a wireformat request and
// returning a Result: the OK arm carries the encoded response, the ERR arm a
// code and message. Handlers have NO WASM runtime dependencies (no wazero);
// the same registry serves a wazero module or, through Client, an in-process
// guest.
package hostfuncs

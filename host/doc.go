// Package host runs contract modules.
//
// It abstracts the underlying WASM engine (wazero), manages contract lifecycle
// and performs the low-level ABI interactions: each call gets a frame holding
// the call envelope and sender, the contract pulls them in through the
// transaction host functions and hands its results back through return_bytes.
// The exit status of the export is mapped back to a contract.CallError.
package host

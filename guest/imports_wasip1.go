//go:build wasip1

package guest

import (
	"github.com/reglet-dev/contract-sdk/hostfuncs"
)

//go:wasmimport contract_host input_length
func hostInputLength(packed uint64) uint64

//go:wasmimport contract_host fetch_input
func hostFetchInput(packed uint64) uint64

//go:wasmimport contract_host fetch_sender
func hostFetchSender(packed uint64) uint64

//go:wasmimport contract_host return_bytes
func hostReturnBytes(packed uint64) uint64

//go:wasmimport contract_host store
func hostStore(packed uint64) uint64

//go:wasmimport contract_host get
func hostGet(packed uint64) uint64

//go:wasmimport contract_host get_length
func hostGetLength(packed uint64) uint64

//go:wasmimport contract_host delete
func hostDelete(packed uint64) uint64

//go:wasmimport contract_host key_exists
func hostKeyExists(packed uint64) uint64

//go:wasmimport contract_host is_owner
func hostIsOwner(packed uint64) uint64

//go:wasmimport contract_host account_name
func hostAccountName(packed uint64) uint64

//go:wasmimport contract_host account_balance
func hostAccountBalance(packed uint64) uint64

//go:wasmimport contract_host hash
func hostHash(packed uint64) uint64

//go:wasmimport contract_host generate_key_pair
func hostGenerateKeyPair(packed uint64) uint64

//go:wasmimport contract_host sign_message
func hostSignMessage(packed uint64) uint64

//go:wasmimport contract_host verify_signature
func hostVerifySignature(packed uint64) uint64

//go:wasmimport contract_host log
func hostLog(packed uint64) uint64

//go:wasmimport contract_host log_error
func hostLogError(packed uint64) uint64

//go:wasmimport contract_host kq_insert
func hostQueryInsert(packed uint64) uint64

//go:wasmimport contract_host kq_query_run
func hostQueryRun(packed uint64) uint64

//go:wasmimport contract_host kq_query_fetch
func hostQueryFetch(packed uint64) uint64

// invoke calls the import for the host function name.
func invoke(name string, packed uint64) (uint64, bool) {
	switch name {
	case hostfuncs.FnInputLength:
		return hostInputLength(packed), true
	case hostfuncs.FnFetchInput:
		return hostFetchInput(packed), true
	case hostfuncs.FnFetchSender:
		return hostFetchSender(packed), true
	case hostfuncs.FnReturnBytes:
		return hostReturnBytes(packed), true
	case hostfuncs.FnStore:
		return hostStore(packed), true
	case hostfuncs.FnGet:
		return hostGet(packed), true
	case hostfuncs.FnGetLength:
		return hostGetLength(packed), true
	case hostfuncs.FnDelete:
		return hostDelete(packed), true
	case hostfuncs.FnKeyExists:
		return hostKeyExists(packed), true
	case hostfuncs.FnIsOwner:
		return hostIsOwner(packed), true
	case hostfuncs.FnAccountName:
		return hostAccountName(packed), true
	case hostfuncs.FnAccountBalance:
		return hostAccountBalance(packed), true
	case hostfuncs.FnHash:
		return hostHash(packed), true
	case hostfuncs.FnGenerateKeyPair:
		return hostGenerateKeyPair(packed), true
	case hostfuncs.FnSignMessage:
		return hostSignMessage(packed), true
	case hostfuncs.FnVerifySignature:
		return hostVerifySignature(packed), true
	case hostfuncs.FnLog:
		return hostLog(packed), true
	case hostfuncs.FnLogError:
		return hostLogError(packed), true
	case hostfuncs.FnQueryInsert:
		return hostQueryInsert(packed), true
	case hostfuncs.FnQueryRun:
		return hostQueryRun(packed), true
	case hostfuncs.FnQueryFetch:
		return hostQueryFetch(packed), true
	default:
		return 0, false
	}
}

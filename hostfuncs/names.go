package hostfuncs

import (
	"errors"

	sdkerrors "github.com/reglet-dev/contract-sdk/domain/errors"
)

// Host function names imported by guests.
const (
	FnInputLength     = "input_length"
	FnFetchInput      = "fetch_input"
	FnFetchSender     = "fetch_sender"
	FnReturnBytes     = "return_bytes"
	FnStore           = "store"
	FnGet             = "get"
	FnGetLength       = "get_length"
	FnDelete          = "delete"
	FnKeyExists       = "key_exists"
	FnIsOwner         = "is_owner"
	FnAccountName     = "account_name"
	FnAccountBalance  = "account_balance"
	FnHash            = "hash"
	FnGenerateKeyPair = "generate_key_pair"
	FnSignMessage     = "sign_message"
	FnVerifySignature = "verify_signature"
	FnLog             = "log"
	FnLogError        = "log_error"
	FnQueryInsert     = "kq_insert"
	FnQueryRun        = "kq_query_run"
	FnQueryFetch      = "kq_query_fetch"
)

// ABI lists every function of the contract_host module in import order.
var ABI = []string{
	FnInputLength, FnFetchInput, FnFetchSender, FnReturnBytes,
	FnStore, FnGet, FnGetLength, FnDelete, FnKeyExists,
	FnIsOwner, FnAccountName, FnAccountBalance,
	FnHash, FnGenerateKeyPair, FnSignMessage, FnVerifySignature,
	FnLog, FnLogError,
	FnQueryInsert, FnQueryRun, FnQueryFetch,
}

// ErrNoFrame is returned by transaction host functions invoked outside a guest call.
var ErrNoFrame = errors.New("no call frame in context")

var errKeyPairShape = &sdkerrors.WireFormatError{
	Err:       sdkerrors.ErrKeyLength,
	Operation: "encode",
	Type:      "key pair",
}

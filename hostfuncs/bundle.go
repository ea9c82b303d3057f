package hostfuncs

import (
	"context"

	"github.com/reglet-dev/contract-sdk/domain/ports"
	"github.com/reglet-dev/contract-sdk/wireformat"
)

// HostFuncBundle is a pre-configured set of related host functions.
// Bundles allow registering multiple handlers at once for common use cases.
type HostFuncBundle interface {
	// Handlers returns a map of handler names to ByteHandler functions.
	Handlers() map[string]ByteHandler
}

// staticBundle implements HostFuncBundle with a fixed set of handlers.
type staticBundle struct {
	handlers map[string]ByteHandler
}

func (b *staticBundle) Handlers() map[string]ByteHandler {
	return b.handlers
}

func frame(ctx context.Context) (*Frame, error) {
	f, ok := FrameFrom(ctx)
	if !ok {
		return nil, ErrNoFrame
	}
	return f, nil
}

// TransactionBundle returns the host functions backed by the call Frame:
// input_length, fetch_input, fetch_sender, return_bytes.
func TransactionBundle() HostFuncBundle {
	return &staticBundle{
		handlers: map[string]ByteHandler{
			FnInputLength: NewHandler(func(ctx context.Context, _ Empty) (wireformat.Uint32, error) {
				f, err := frame(ctx)
				if err != nil {
					return 0, err
				}
				return wireformat.Uint32(len(f.Input())), nil
			}),
			FnFetchInput: NewHandler(func(ctx context.Context, _ Empty) (wireformat.Bytes, error) {
				f, err := frame(ctx)
				if err != nil {
					return nil, err
				}
				return f.Input(), nil
			}),
			FnFetchSender: NewHandler(func(ctx context.Context, _ Empty) (wireformat.Bytes, error) {
				f, err := frame(ctx)
				if err != nil {
					return nil, err
				}
				return f.Sender(), nil
			}),
			FnReturnBytes: NewHandler(func(ctx context.Context, results wireformat.Bytes) (Empty, error) {
				f, err := frame(ctx)
				if err != nil {
					return Empty{}, err
				}
				f.SetOutput(results)
				return Empty{}, nil
			}),
		},
	}
}

// PersistenceBundle returns the key-value host functions:
// store, get, get_length, delete, key_exists.
func PersistenceBundle(p ports.Persistence) HostFuncBundle {
	return &staticBundle{
		handlers: map[string]ByteHandler{
			FnStore: NewHandler(func(ctx context.Context, req StoreRequest) (Empty, error) {
				return Empty{}, p.Store(ctx, req.Key, req.Value)
			}),
			FnGet: NewHandler(func(ctx context.Context, key wireformat.Bytes) (wireformat.Bytes, error) {
				return p.Get(ctx, key)
			}),
			FnGetLength: NewHandler(func(ctx context.Context, key wireformat.Bytes) (wireformat.Uint32, error) {
				v, err := p.Get(ctx, key)
				return wireformat.Uint32(len(v)), err
			}),
			FnDelete: NewHandler(func(ctx context.Context, key wireformat.Bytes) (Empty, error) {
				return Empty{}, p.Delete(ctx, key)
			}),
			FnKeyExists: NewHandler(func(ctx context.Context, key wireformat.Bytes) (wireformat.Bool, error) {
				ok, err := p.KeyExists(ctx, key)
				return wireformat.Bool(ok), err
			}),
		},
	}
}

// AccountsBundle returns the account host functions:
// is_owner, account_name, account_balance.
func AccountsBundle(a ports.Accounts) HostFuncBundle {
	return &staticBundle{
		handlers: map[string]ByteHandler{
			FnIsOwner: NewHandler(func(ctx context.Context, key wireformat.Bytes) (wireformat.Bool, error) {
				ok, err := a.IsOwner(ctx, key)
				return wireformat.Bool(ok), err
			}),
			FnAccountName: NewHandler(func(ctx context.Context, key wireformat.Bytes) (wireformat.String, error) {
				name, err := a.AccountName(ctx, key)
				return wireformat.String(name), err
			}),
			FnAccountBalance: NewHandler(func(ctx context.Context, key wireformat.Bytes) (wireformat.Uint64, error) {
				bal, err := a.AccountBalance(ctx, key)
				return wireformat.Uint64(bal), err
			}),
		},
	}
}

// CryptoBundle returns the hashing and signing host functions:
// hash, generate_key_pair, sign_message, verify_signature.
func CryptoBundle(c ports.Crypto) HostFuncBundle {
	return &staticBundle{
		handlers: map[string]ByteHandler{
			FnHash: NewHandler(func(ctx context.Context, req HashRequest) (wireformat.Bytes, error) {
				return c.Hash(ctx, req.Algorithm, req.Data)
			}),
			FnGenerateKeyPair: NewHandler(func(ctx context.Context, _ Empty) (KeyPairResponse, error) {
				priv, pub, err := c.GenerateKeyPair(ctx)
				return KeyPairResponse{PrivateKey: priv, PublicKey: pub}, err
			}),
			FnSignMessage: NewHandler(func(ctx context.Context, req SignRequest) (wireformat.Bytes, error) {
				return c.Sign(ctx, req.PrivateKey, req.Message)
			}),
			FnVerifySignature: NewHandler(func(ctx context.Context, req VerifyRequest) (wireformat.Bool, error) {
				ok, err := c.Verify(ctx, req.PublicKey, req.Message, req.Signature)
				return wireformat.Bool(ok), err
			}),
		},
	}
}

// LoggerBundle returns the log host functions: log, log_error.
func LoggerBundle(l ports.Logger) HostFuncBundle {
	return &staticBundle{
		handlers: map[string]ByteHandler{
			FnLog: NewHandler(func(ctx context.Context, msg wireformat.String) (Empty, error) {
				return Empty{}, l.Log(ctx, string(msg))
			}),
			FnLogError: NewHandler(func(ctx context.Context, msg wireformat.String) (Empty, error) {
				return Empty{}, l.LogError(ctx, string(msg))
			}),
		},
	}
}

// QueryBundle returns the table query host functions:
// kq_insert, kq_query_run, kq_query_fetch.
func QueryBundle(q ports.QueryExecutor) HostFuncBundle {
	return &staticBundle{
		handlers: map[string]ByteHandler{
			FnQueryInsert: NewHandler(func(ctx context.Context, insert wireformat.Bytes) (Empty, error) {
				return Empty{}, q.Insert(ctx, insert)
			}),
			FnQueryRun: NewHandler(func(ctx context.Context, query wireformat.Bytes) (QueryRunResponse, error) {
				length, handle, err := q.RunQuery(ctx, query)
				return QueryRunResponse{Length: length, Handle: handle}, err
			}),
			FnQueryFetch: NewHandler(func(ctx context.Context, handle QueryHandle) (wireformat.Bytes, error) {
				return q.FetchQueryResult(ctx, ports.QueryHandle(handle))
			}),
		},
	}
}

// compositeBundle combines multiple bundles into one.
type compositeBundle struct {
	bundles []HostFuncBundle
}

func (b *compositeBundle) Handlers() map[string]ByteHandler {
	result := make(map[string]ByteHandler)
	for _, bundle := range b.bundles {
		for name, handler := range bundle.Handlers() {
			result[name] = handler
		}
	}
	return result
}

// ServicesBundle returns a bundle containing every host function a contract
// imports, with the non-transaction functions backed by s.
func ServicesBundle(s ports.Services) HostFuncBundle {
	return &compositeBundle{
		bundles: []HostFuncBundle{
			TransactionBundle(),
			PersistenceBundle(s),
			AccountsBundle(s),
			CryptoBundle(s),
			LoggerBundle(s),
			QueryBundle(s),
		},
	}
}

// WithBundle registers all handlers from a bundle.
func WithBundle(bundle HostFuncBundle) RegistryOption {
	return func(b *registryBuilder) {
		for name, handler := range bundle.Handlers() {
			b.addHandler(name, handler)
		}
	}
}

// WithHandler registers a typed host function with automatic request decoding.
// The handler will be wrapped with NewHandler.
//
// Example usage:
//
//	WithHandler("custom_func", func(ctx context.Context, req wireformat.String) (wireformat.Uint32, error) {
//	    return wireformat.Uint32(len(req)), nil
//	})
func WithHandler[Req any, PReq wireformat.Decodable[Req], Resp wireformat.Marshaler](name string, fn HostFunc[Req, Resp]) RegistryOption {
	return func(b *registryBuilder) {
		b.addHandler(name, NewHandler[Req, PReq](fn))
	}
}

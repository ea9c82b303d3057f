package hostfuncs

import (
	"context"
	"fmt"

	sdkerrors "github.com/reglet-dev/contract-sdk/domain/errors"
	"github.com/reglet-dev/contract-sdk/domain/ports"
	"github.com/reglet-dev/contract-sdk/wireformat"
)

// Transport carries one host function call across the boundary and returns
// the encoded Result.
type Transport interface {
	Call(ctx context.Context, name string, request []byte) ([]byte, error)
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, name string, request []byte) ([]byte, error)

// Call implements Transport.
func (f TransportFunc) Call(ctx context.Context, name string, request []byte) ([]byte, error) {
	return f(ctx, name, request)
}

// Client is the guest side of the host boundary. It implements ports.Runtime
// by encoding each operation as a host function request.
type Client struct {
	transport Transport
}

var _ ports.Runtime = (*Client)(nil)

// NewClient creates a Client calling through t.
func NewClient(t Transport) *Client {
	return &Client{transport: t}
}

// call sends req to the host function name and returns the OK payload.
// An ERR result becomes a *errors.HostError.
func (c *Client) call(ctx context.Context, name string, req wireformat.Marshaler) ([]byte, error) {
	payload, err := wireformat.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", name, err)
	}
	raw, err := c.transport.Call(ctx, name, payload)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", name, err)
	}
	res, err := DecodeResult(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s result: %w", name, err)
	}
	if res.Err != nil {
		return nil, &sdkerrors.HostError{
			Err:      res.Err.Sentinel(),
			Function: name,
			Message:  res.Err.Message,
			Code:     res.Err.Code,
		}
	}
	return res.Payload, nil
}

func callAs[T any, PT wireformat.Decodable[T]](ctx context.Context, c *Client, name string, req wireformat.Marshaler) (T, error) {
	payload, err := c.call(ctx, name, req)
	if err != nil {
		var zero T
		return zero, err
	}
	v, err := wireformat.Decode[T, PT](payload)
	if err != nil {
		return v, fmt.Errorf("decode %s response: %w", name, err)
	}
	return v, nil
}

// InputLength returns the size of the call envelope without fetching it.
func (c *Client) InputLength(ctx context.Context) (uint32, error) {
	n, err := callAs[wireformat.Uint32](ctx, c, FnInputLength, Empty{})
	return uint32(n), err
}

// Arguments implements ports.Transaction.
func (c *Client) Arguments(ctx context.Context) ([]byte, error) {
	b, err := callAs[wireformat.Bytes](ctx, c, FnFetchInput, Empty{})
	return b, err
}

// Return implements ports.Transaction.
func (c *Client) Return(ctx context.Context, results []byte) error {
	_, err := c.call(ctx, FnReturnBytes, wireformat.Bytes(results))
	return err
}

// Sender implements ports.Transaction.
func (c *Client) Sender(ctx context.Context) ([]byte, error) {
	b, err := callAs[wireformat.Bytes](ctx, c, FnFetchSender, Empty{})
	return b, err
}

// Store implements ports.Persistence.
func (c *Client) Store(ctx context.Context, key, value []byte) error {
	_, err := c.call(ctx, FnStore, StoreRequest{Key: key, Value: value})
	return err
}

// Get implements ports.Persistence.
func (c *Client) Get(ctx context.Context, key []byte) ([]byte, error) {
	b, err := callAs[wireformat.Bytes](ctx, c, FnGet, wireformat.Bytes(key))
	return b, err
}

// GetLength returns the size of the value stored under key.
func (c *Client) GetLength(ctx context.Context, key []byte) (uint32, error) {
	n, err := callAs[wireformat.Uint32](ctx, c, FnGetLength, wireformat.Bytes(key))
	return uint32(n), err
}

// Delete implements ports.Persistence.
func (c *Client) Delete(ctx context.Context, key []byte) error {
	_, err := c.call(ctx, FnDelete, wireformat.Bytes(key))
	return err
}

// KeyExists implements ports.Persistence.
func (c *Client) KeyExists(ctx context.Context, key []byte) (bool, error) {
	ok, err := callAs[wireformat.Bool](ctx, c, FnKeyExists, wireformat.Bytes(key))
	return bool(ok), err
}

// IsOwner implements ports.Accounts.
func (c *Client) IsOwner(ctx context.Context, key []byte) (bool, error) {
	ok, err := callAs[wireformat.Bool](ctx, c, FnIsOwner, wireformat.Bytes(key))
	return bool(ok), err
}

// AccountName implements ports.Accounts.
func (c *Client) AccountName(ctx context.Context, key []byte) (string, error) {
	name, err := callAs[wireformat.String](ctx, c, FnAccountName, wireformat.Bytes(key))
	return string(name), err
}

// AccountBalance implements ports.Accounts.
func (c *Client) AccountBalance(ctx context.Context, key []byte) (uint64, error) {
	bal, err := callAs[wireformat.Uint64](ctx, c, FnAccountBalance, wireformat.Bytes(key))
	return uint64(bal), err
}

// Hash implements ports.Crypto.
func (c *Client) Hash(ctx context.Context, alg ports.HashAlgorithm, data []byte) ([]byte, error) {
	b, err := callAs[wireformat.Bytes](ctx, c, FnHash, HashRequest{Algorithm: alg, Data: data})
	return b, err
}

// GenerateKeyPair implements ports.Crypto.
func (c *Client) GenerateKeyPair(ctx context.Context) (priv, pub []byte, err error) {
	kp, err := callAs[KeyPairResponse](ctx, c, FnGenerateKeyPair, Empty{})
	return kp.PrivateKey, kp.PublicKey, err
}

// Sign implements ports.Crypto.
func (c *Client) Sign(ctx context.Context, priv, message []byte) ([]byte, error) {
	b, err := callAs[wireformat.Bytes](ctx, c, FnSignMessage, SignRequest{PrivateKey: priv, Message: message})
	return b, err
}

// Verify implements ports.Crypto.
func (c *Client) Verify(ctx context.Context, pub, message, sig []byte) (bool, error) {
	ok, err := callAs[wireformat.Bool](ctx, c, FnVerifySignature,
		VerifyRequest{PublicKey: pub, Message: message, Signature: sig})
	return bool(ok), err
}

// Log implements ports.Logger.
func (c *Client) Log(ctx context.Context, msg string) error {
	_, err := c.call(ctx, FnLog, wireformat.String(msg))
	return err
}

// LogError implements ports.Logger.
func (c *Client) LogError(ctx context.Context, msg string) error {
	_, err := c.call(ctx, FnLogError, wireformat.String(msg))
	return err
}

// Insert implements ports.QueryExecutor.
func (c *Client) Insert(ctx context.Context, insert []byte) error {
	_, err := c.call(ctx, FnQueryInsert, wireformat.Bytes(insert))
	return err
}

// RunQuery implements ports.QueryExecutor.
func (c *Client) RunQuery(ctx context.Context, query []byte) (uint32, ports.QueryHandle, error) {
	r, err := callAs[QueryRunResponse](ctx, c, FnQueryRun, wireformat.Bytes(query))
	return r.Length, r.Handle, err
}

// FetchQueryResult implements ports.QueryExecutor.
func (c *Client) FetchQueryResult(ctx context.Context, handle ports.QueryHandle) ([]byte, error) {
	b, err := callAs[wireformat.Bytes](ctx, c, FnQueryFetch, QueryHandle(handle))
	return b, err
}

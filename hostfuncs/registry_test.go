package hostfuncs

import (
	"context"
	"testing"

	"github.com/reglet-dev/contract-sdk/infrastructure/memhost"
	"github.com/reglet-dev/contract-sdk/wireformat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(ctx context.Context, payload []byte) ([]byte, error) { return nil, nil }

func TestNewRegistry(t *testing.T) {
	tests := []struct {
		name    string
		opts    []RegistryOption
		want    []string
		wantErr []string
	}{
		{name: "empty"},
		{
			name: "sorted names",
			opts: []RegistryOption{WithByteHandler(FnStore, noop), WithByteHandler(FnGet, noop), WithByteHandler(FnDelete, noop)},
			want: []string{FnDelete, FnGet, FnStore},
		},
		{
			name:    "duplicate across bundle and handler",
			opts:    []RegistryOption{WithBundle(LoggerBundle(memhost.New())), WithByteHandler(FnLog, noop)},
			wantErr: []string{`duplicate handler name: "log"`},
		},
		{
			name:    "every error reported",
			opts:    []RegistryOption{WithByteHandler("", noop), WithByteHandler(FnHash, noop), WithByteHandler(FnHash, noop)},
			wantErr: []string{"cannot be empty", `duplicate handler name: "hash"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := NewRegistry(tt.opts...)
			if len(tt.wantErr) > 0 {
				require.Error(t, err)
				for _, msg := range tt.wantErr {
					assert.Contains(t, err.Error(), msg)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, reg.Names())
		})
	}
}

func TestHandlerRegistry_Missing(t *testing.T) {
	full, err := NewRegistry(WithBundle(ServicesBundle(memhost.New())))
	require.NoError(t, err)
	assert.Empty(t, full.Missing())
	assert.Len(t, full.Names(), len(ABI))

	partial, err := NewRegistry(WithBundle(TransactionBundle()))
	require.NoError(t, err)
	missing := partial.Missing()
	assert.Equal(t, FnStore, missing[0])
	assert.Equal(t, FnQueryFetch, missing[len(missing)-1])
	assert.NotContains(t, missing, FnFetchInput)
	assert.Len(t, missing, len(ABI)-4)
}

func TestHandlerRegistry_Call(t *testing.T) {
	reg, err := NewRegistry(
		WithHandler(FnAccountName, func(ctx context.Context, key wireformat.Bytes) (wireformat.String, error) {
			return wireformat.String("acct-" + string(key)), nil
		}),
	)
	require.NoError(t, err)

	t.Run("registered", func(t *testing.T) {
		resp, err := reg.Call(context.Background(), FnAccountName, wireformat.MustMarshal(wireformat.Bytes("k1")))
		require.NoError(t, err)
		assert.Equal(t, OK(wireformat.MustMarshal(wireformat.String("acct-k1"))), resp)
	})

	t.Run("unknown function is an ERR result", func(t *testing.T) {
		resp, err := reg.Call(context.Background(), "kq_drop", nil)
		require.NoError(t, err)

		res, err := DecodeResult(resp)
		require.NoError(t, err)
		require.NotNil(t, res.Err)
		assert.Equal(t, CodeUnknownFunction, res.Err.Code)
		assert.Contains(t, res.Err.Message, "kq_drop")
	})
}

func TestHandlerRegistry_CallHostContext(t *testing.T) {
	var seen []string
	record := func(ctx context.Context, payload []byte) ([]byte, error) {
		hc, ok := ctx.(HostContext)
		require.True(t, ok)
		_, leaked := hc.GetValue("outer")
		assert.False(t, leaked)
		f, ok := FrameFrom(ctx)
		require.True(t, ok)
		assert.Equal(t, []byte("sender"), f.Sender())
		seen = append(seen, hc.FunctionName())
		return nil, nil
	}

	reg, err := NewRegistry(WithByteHandler(FnLog, record))
	require.NoError(t, err)

	outer := NewHostContext(WithFrame(context.Background(), NewFrame(nil, []byte("sender"))), FnQueryRun)
	outer.SetValue("outer", true)

	_, err = reg.Call(outer, FnLog, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{FnLog}, seen)
}

func TestHandlerRegistry_FrameReachesHandler(t *testing.T) {
	reg, err := NewRegistry(WithBundle(TransactionBundle()))
	require.NoError(t, err)

	ctx := WithFrame(context.Background(), NewFrame([]byte("envelope"), nil))
	resp, err := reg.Call(ctx, FnInputLength, nil)
	require.NoError(t, err)
	assert.Equal(t, OK(wireformat.MustMarshal(wireformat.Uint32(8))), resp)
}

func TestWithMiddleware_Order(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return func(next ByteHandler) ByteHandler {
			return func(ctx context.Context, payload []byte) ([]byte, error) {
				order = append(order, name+">")
				resp, err := next(ctx, payload)
				order = append(order, "<"+name)
				return resp, err
			}
		}
	}

	reg, err := NewRegistry(
		WithMiddleware(tag("recover"), tag("limit")),
		WithByteHandler(FnKeyExists, func(ctx context.Context, payload []byte) ([]byte, error) {
			order = append(order, FnKeyExists)
			return nil, nil
		}),
	)
	require.NoError(t, err)

	_, err = reg.Call(context.Background(), FnKeyExists, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"recover>", "limit>", FnKeyExists, "<limit", "<recover"}, order)
}

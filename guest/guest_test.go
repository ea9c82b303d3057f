package guest

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/reglet-dev/contract-sdk/abi"
	"github.com/reglet-dev/contract-sdk/contract"
	"github.com/reglet-dev/contract-sdk/domain/entities"
	"github.com/reglet-dev/contract-sdk/infrastructure/memhost"
	"github.com/reglet-dev/contract-sdk/wireformat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counter(t *testing.T) *contract.Router {
	t.Helper()
	incr := contract.Method1(func(ctx context.Context, by wireformat.Uint32) (wireformat.Uint32, error) {
		rt, _ := contract.RuntimeFrom(ctx)
		cur := wireformat.Uint32(0)
		if raw, err := rt.Get(ctx, []byte("n")); err == nil {
			cur, err = wireformat.Decode[wireformat.Uint32](raw)
			if err != nil {
				return 0, err
			}
		}
		cur += by
		return cur, rt.Store(ctx, []byte("n"), wireformat.MustMarshal(cur))
	}).Named("by")

	r, err := contract.New(
		contract.WithName("counter"),
		contract.WithFunction("incr", incr),
	)
	require.NoError(t, err)
	return r
}

func call(t *testing.T, name string, args ...wireformat.Marshaler) []byte {
	t.Helper()
	env, err := abi.NewCall(name, args...)
	require.NoError(t, err)
	return wireformat.MustMarshal(env)
}

func TestDispatch(t *testing.T) {
	Register(counter(t))
	t.Cleanup(func() { Register(nil) })

	ctx := context.Background()
	host := memhost.New(memhost.WithInput(call(t, "incr", wireformat.Uint32(3))))

	require.Equal(t, contract.StatusOK, Dispatch(ctx, host, entities.KindMutating))
	out, ok := host.LastReturn()
	require.True(t, ok)
	assert.Equal(t, wireformat.MustMarshal(wireformat.Uint32(3)), out)

	host.SetInput(call(t, "incr", wireformat.Uint32(4)))
	require.Equal(t, contract.StatusOK, Dispatch(ctx, host, entities.KindMutating))
	out, _ = host.LastReturn()
	assert.Equal(t, wireformat.MustMarshal(wireformat.Uint32(7)), out)
}

func TestDispatch_Failures(t *testing.T) {
	Register(counter(t))
	t.Cleanup(func() { Register(nil) })
	ctx := context.Background()

	tests := []struct {
		name  string
		input []byte
		kind  entities.FunctionKind
		want  contract.ErrorKind
	}{
		{name: "unknown function", input: call(t, "decr"), kind: entities.KindMutating, want: contract.InvalidFunctionName},
		{name: "read-only table", input: call(t, "incr", wireformat.Uint32(1)), kind: entities.KindReadOnly, want: contract.InvalidFunctionName},
		{name: "missing argument", input: call(t, "incr"), kind: entities.KindMutating, want: contract.InvalidArguments},
		{name: "garbage envelope", input: []byte{1}, kind: entities.KindMutating, want: contract.DeserializeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := memhost.New(memhost.WithInput(tt.input))
			status := Dispatch(ctx, host, tt.kind)

			assert.Equal(t, uint32(tt.want), status)
			assert.True(t, contract.IsKind(contract.ErrorFromStatus(status), tt.want))
			assert.Len(t, host.ErrorLogs(), 1)
			_, returned := host.LastReturn()
			assert.False(t, returned)
		})
	}
}

func TestDispatch_NoRouter(t *testing.T) {
	Register(nil)
	host := memhost.New()

	assert.Equal(t, contract.StatusHostFailure, Dispatch(context.Background(), host, entities.KindMutating))
	require.Len(t, host.ErrorLogs(), 1)
	assert.Equal(t, ErrNoRouter.Error(), host.ErrorLogs()[0])

	_, err := Describe()
	assert.ErrorIs(t, err, ErrNoRouter)
}

func TestDescribe(t *testing.T) {
	Register(counter(t))
	t.Cleanup(func() { Register(nil) })

	data, err := Describe()
	require.NoError(t, err)

	var desc entities.Abi
	require.NoError(t, json.Unmarshal(data, &desc))
	assert.Equal(t, "counter", desc.Contract)
	sig, ok := desc.Lookup("incr", entities.KindMutating)
	require.True(t, ok)
	require.Len(t, sig.Inputs, 1)
	assert.Equal(t, "by", sig.Inputs[0].Name)
}

func TestRuntime_OutsideWasm(t *testing.T) {
	_, err := Runtime().Arguments(context.Background())
	assert.ErrorIs(t, err, ErrNotWasm)
}

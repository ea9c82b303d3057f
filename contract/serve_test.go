package contract

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/reglet-dev/contract-sdk/domain/entities"
	"github.com/reglet-dev/contract-sdk/infrastructure/memhost"
	"github.com/reglet-dev/contract-sdk/wireformat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func greeter(t *testing.T) *Router {
	t.Helper()
	greet := Method1(func(ctx context.Context, name wireformat.String) (wireformat.String, error) {
		rt, _ := RuntimeFrom(ctx)
		if err := rt.Store(ctx, []byte("last"), []byte(name)); err != nil {
			return "", err
		}
		return "hello " + name, nil
	}).Named("name")

	r, err := New(
		WithName("greeter"),
		WithFunction("greet", greet),
		WithReadOnly("hello", Method0(hello)),
		WithConstructor("init", Action0(func(context.Context) error { return nil })),
	)
	require.NoError(t, err)
	return r
}

func TestServe(t *testing.T) {
	ctx := context.Background()
	r := greeter(t)
	host := memhost.New(memhost.WithInput(envelope(t, "greet", wireformat.String("bob"))))

	require.NoError(t, Serve(ctx, host, r, entities.KindMutating))

	out, ok := host.LastReturn()
	require.True(t, ok)
	assert.Equal(t, wireformat.MustMarshal(wireformat.String("hello bob")), out)

	last, err := host.Get(ctx, []byte("last"))
	require.NoError(t, err)
	assert.Equal(t, []byte("bob"), last)
}

func TestServe_FailureIsLogged(t *testing.T) {
	host := memhost.New(memhost.WithInput(envelope(t, "nope")))

	err := Serve(context.Background(), host, greeter(t), entities.KindReadOnly)
	require.Error(t, err)
	assert.True(t, IsKind(err, InvalidFunctionName))

	_, ok := host.LastReturn()
	assert.False(t, ok)
	require.Len(t, host.ErrorLogs(), 1)
	assert.Contains(t, host.ErrorLogs()[0], "nope")
}

func TestServe_Constructor(t *testing.T) {
	host := memhost.New()
	r := greeter(t)
	require.NoError(t, Serve(context.Background(), host, r, entities.KindConstructor))
	assert.True(t, r.Constructed())
}

func TestDescribe(t *testing.T) {
	abi := greeter(t).Describe()

	assert.Equal(t, "greeter", abi.Contract)
	assert.Equal(t, SDKVersion, abi.SDKVersion)
	require.Len(t, abi.Functions, 3)

	assert.Equal(t, "init", abi.Functions[0].Name)
	assert.Equal(t, entities.KindConstructor, abi.Functions[0].Kind)

	greet := abi.Functions[1]
	assert.Equal(t, "greet", greet.Name)
	assert.Equal(t, []entities.Parameter{{Name: "name", Type: "string"}}, greet.Inputs)
	assert.Equal(t, []entities.Parameter{{Name: "returnValue0", Type: "string"}}, greet.Outputs)

	sig, ok := abi.Lookup("hello", entities.KindReadOnly)
	require.True(t, ok)
	assert.Empty(t, sig.Inputs)
	assert.Equal(t, "uint32", sig.Outputs[0].Type)

	data, err := abi.JSON()
	require.NoError(t, err)
	var decoded entities.Abi
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *abi, decoded)
}

func TestNames(t *testing.T) {
	r := greeter(t)
	assert.Equal(t, []string{"greet"}, r.Names(entities.KindMutating))
	assert.Equal(t, []string{"hello"}, r.Names(entities.KindReadOnly))
	assert.Equal(t, []string{"init"}, r.Names(entities.KindConstructor))
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	r, err := New(
		WithFunction("hello", Method0(hello)),
		WithMiddleware(LoggingMiddleware(logger)),
	)
	require.NoError(t, err)

	_, err = r.Execute(context.Background(), envelope(t, "hello"))
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "contract function completed", entry["msg"])
	assert.Equal(t, "hello", entry["function"])
	assert.Equal(t, "function", entry["kind"])
}

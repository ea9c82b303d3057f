package memhost

import (
	"context"
	"testing"

	"github.com/reglet-dev/contract-sdk/domain/errors"
	"github.com/reglet-dev/contract-sdk/domain/ports"
	"github.com/reglet-dev/contract-sdk/query"
	"github.com/reglet-dev/contract-sdk/wireformat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersistence(t *testing.T) {
	ctx := context.Background()
	h := New()

	_, err := h.Get(ctx, []byte("k"))
	assert.ErrorIs(t, err, errors.ErrMissingKey)

	require.NoError(t, h.Store(ctx, []byte("k"), []byte("v")))
	got, err := h.Get(ctx, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	exists, err := h.KeyExists(ctx, []byte("k"))
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, h.Delete(ctx, []byte("k")))
	assert.ErrorIs(t, h.Delete(ctx, []byte("k")), errors.ErrMissingKey)
	assert.Zero(t, h.StateLen())
}

func TestHostsAreIndependent(t *testing.T) {
	ctx := context.Background()
	a, b := New(), New()
	require.NoError(t, a.Store(ctx, []byte("k"), []byte("v")))

	exists, err := b.KeyExists(ctx, []byte("k"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestTransaction(t *testing.T) {
	ctx := context.Background()
	h := New(WithInput([]byte{1, 2}), WithSender([]byte("alice")))

	in, err := h.Arguments(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, in)

	sender, err := h.Sender(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("alice"), sender)

	_, ok := h.LastReturn()
	assert.False(t, ok)
	require.NoError(t, h.Return(ctx, []byte{9}))
	last, ok := h.LastReturn()
	require.True(t, ok)
	assert.Equal(t, []byte{9}, last)
}

func TestAccounts(t *testing.T) {
	ctx := context.Background()
	h := New(
		WithOwner([]byte("owner")),
		WithAccount([]byte("alice"), Account{Name: "Alice", Balance: 40}),
	)

	owner, err := h.IsOwner(ctx, []byte("owner"))
	require.NoError(t, err)
	assert.True(t, owner)

	owner, err = h.IsOwner(ctx, []byte("alice"))
	require.NoError(t, err)
	assert.False(t, owner)

	name, err := h.AccountName(ctx, []byte("alice"))
	require.NoError(t, err)
	assert.Equal(t, "Alice", name)

	balance, err := h.AccountBalance(ctx, []byte("alice"))
	require.NoError(t, err)
	assert.Equal(t, uint64(40), balance)

	_, err = h.AccountBalance(ctx, []byte("nobody"))
	assert.ErrorIs(t, err, errors.ErrMissingKey)
}

func TestLogs(t *testing.T) {
	ctx := context.Background()
	h := New()
	require.NoError(t, h.Log(ctx, "hello"))
	require.NoError(t, h.LogError(ctx, "bad"))
	assert.Equal(t, []string{"hello"}, h.Logs())
	assert.Equal(t, []string{"bad"}, h.ErrorLogs())
}

func TestQueriesAndCrypto(t *testing.T) {
	ctx := context.Background()
	var rt ports.Runtime = New()

	ins, err := query.NewInsert("T", query.NewRow(query.Col("id", wireformat.Uint32(1))))
	require.NoError(t, err)
	require.NoError(t, query.RunInsert(ctx, rt, ins))

	rows, err := query.RunRows(ctx, rt, query.NewQuery("T"))
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	sum, err := rt.Hash(ctx, ports.SHA256, []byte("abc"))
	require.NoError(t, err)
	assert.Len(t, sum, 32)
}

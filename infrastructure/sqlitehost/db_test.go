package sqlitehost

import (
	"context"
	"path/filepath"
	"testing"

	sdkerrors "github.com/reglet-dev/contract-sdk/domain/errors"
	"github.com/reglet-dev/contract-sdk/domain/ports"
	"github.com/reglet-dev/contract-sdk/infrastructure/memhost"
	"github.com/reglet-dev/contract-sdk/query"
	"github.com/reglet-dev/contract-sdk/wireformat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) (*DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.db")
	db, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, path
}

func TestPersistence(t *testing.T) {
	ctx := context.Background()
	db, _ := openTemp(t)

	_, err := db.Get(ctx, []byte("k"))
	assert.ErrorIs(t, err, sdkerrors.ErrMissingKey)

	require.NoError(t, db.Store(ctx, []byte("k"), []byte("v1")))
	require.NoError(t, db.Store(ctx, []byte("k"), []byte("v2")))

	got, err := db.Get(ctx, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)

	exists, err := db.KeyExists(ctx, []byte("k"))
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, db.Delete(ctx, []byte("k")))
	assert.ErrorIs(t, db.Delete(ctx, []byte("k")), sdkerrors.ErrMissingKey)

	exists, err = db.KeyExists(ctx, []byte("k"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestBinaryKeys(t *testing.T) {
	ctx := context.Background()
	db, _ := openTemp(t)

	keys := [][]byte{{0}, {0, 0}, {0xff, 0x00, 0x01}}
	for i, k := range keys {
		require.NoError(t, db.Store(ctx, k, []byte{byte(i + 1)}))
	}
	for i, k := range keys {
		got, err := db.Get(ctx, k)
		require.NoError(t, err)
		assert.Equal(t, []byte{byte(i + 1)}, got)
	}
}

func TestStatePersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	db, path := openTemp(t)

	require.NoError(t, db.Store(ctx, []byte("k"), []byte("v")))
	require.NoError(t, db.SetOwner(ctx, []byte("owner")))
	require.NoError(t, db.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	owner, err := reopened.IsOwner(ctx, []byte("owner"))
	require.NoError(t, err)
	assert.True(t, owner)
}

func TestAccounts(t *testing.T) {
	ctx := context.Background()
	db, _ := openTemp(t)

	owner, err := db.IsOwner(ctx, []byte("anyone"))
	require.NoError(t, err)
	assert.False(t, owner)

	require.NoError(t, db.SetAccount(ctx, []byte("alice"), "Alice", 40))
	require.NoError(t, db.SetAccount(ctx, []byte("alice"), "Alice B", 1<<40))

	name, err := db.AccountName(ctx, []byte("alice"))
	require.NoError(t, err)
	assert.Equal(t, "Alice B", name)

	bal, err := db.AccountBalance(ctx, []byte("alice"))
	require.NoError(t, err)
	assert.Equal(t, uint64(1<<40), bal)

	_, err = db.AccountName(ctx, []byte("bob"))
	assert.ErrorIs(t, err, sdkerrors.ErrMissingKey)
	_, err = db.AccountBalance(ctx, []byte("bob"))
	assert.ErrorIs(t, err, sdkerrors.ErrMissingKey)
}

func TestRows(t *testing.T) {
	ctx := context.Background()
	db, _ := openTemp(t)

	rows, err := db.ScanRows(ctx, "T")
	require.NoError(t, err)
	assert.Empty(t, rows)

	require.NoError(t, db.AppendRow(ctx, "T", []byte{1}))
	require.NoError(t, db.AppendRow(ctx, "U", []byte{9}))
	require.NoError(t, db.AppendRow(ctx, "T", []byte{2}))

	rows, err = db.ScanRows(ctx, "T")
	require.NoError(t, err)
	assert.Equal(t, [][]byte{{1}, {2}}, rows)
}

func TestMemoryDatabase(t *testing.T) {
	ctx := context.Background()
	db, err := Open(MemoryPath)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Store(ctx, []byte("k"), []byte("v")))
	got, err := db.Get(ctx, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}

func TestHost(t *testing.T) {
	ctx := context.Background()
	db, _ := openTemp(t)

	logs := memhost.New()
	host, err := NewHost(db, logs)
	require.NoError(t, err)

	var svc ports.Services = host

	ins, err := query.NewInsert("people", query.NewRow(
		query.Col("name", wireformat.String("alice")),
		query.Col("age", wireformat.Uint32(30)),
	))
	require.NoError(t, err)
	require.NoError(t, query.RunInsert(ctx, svc, ins))

	rows, err := query.RunRows(ctx, svc, query.NewQuery("people",
		query.FilterBy(query.Eq(query.Ident("age"), query.ValueOf(wireformat.Uint32(30)))),
	))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	sum, err := svc.Hash(ctx, ports.SHA3_256, []byte("abc"))
	require.NoError(t, err)
	assert.Len(t, sum, 32)

	require.NoError(t, svc.Log(ctx, "stored"))
	assert.Equal(t, []string{"stored"}, logs.Logs())
}

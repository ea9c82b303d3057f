package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	domainerrors "github.com/reglet-dev/contract-sdk/domain/errors"
	"github.com/reglet-dev/contract-sdk/domain/ports"
	"github.com/reglet-dev/contract-sdk/query"
	"github.com/reglet-dev/contract-sdk/wireformat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func account(name string, balance uint32, active bool) query.Row {
	return query.NewRow(
		query.Col("name", wireformat.String(name)),
		query.Col("balance", wireformat.Uint32(balance)),
		query.Col("active", wireformat.Bool(active)),
	)
}

func sampleRows() []query.Row {
	return []query.Row{
		account("alice", 10, true),
		account("bob", 3, false),
		account("carol", 7, true),
	}
}

func names(t *testing.T, rows []query.Row) []string {
	t.Helper()
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		raw, ok := r.Get("name")
		require.True(t, ok)
		s, err := wireformat.Decode[wireformat.String](raw)
		require.NoError(t, err)
		out = append(out, string(s))
	}
	return out
}

func TestEvaluate(t *testing.T) {
	row := account("alice", 10, true)

	tests := []struct {
		name string
		expr query.BoolNode
		want bool
	}{
		{name: "literal", expr: query.Literal(true), want: true},
		{name: "bool column", expr: query.Ident("active"), want: true},
		{name: "equal value", expr: query.Eq(query.Ident("name"), query.ValueOf(wireformat.String("alice"))), want: true},
		{name: "equal mismatch", expr: query.Eq(query.Ident("name"), query.ValueOf(wireformat.String("bob"))), want: false},
		{name: "bool column equals literal", expr: query.Eq(query.Ident("active"), query.Literal(true)), want: true},
		{name: "literals", expr: query.Eq(query.Literal(false), query.Literal(false)), want: true},
		{name: "absent column is empty", expr: query.Eq(query.Ident("missing"), query.Value(nil)), want: true},
		{name: "less than", expr: query.Lt(query.Ident("name"), query.ValueOf(wireformat.String("bobby"))), want: true},
		{name: "greater than", expr: query.Gt(query.Ident("name"), query.ValueOf(wireformat.String("bobby"))), want: false},
		{name: "and", expr: query.And(query.Ident("active"), query.Literal(false)), want: false},
		{name: "or", expr: query.Or(query.Ident("active"), query.Literal(false)), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.expr, row)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluate_NumericOrder(t *testing.T) {
	row := query.NewRow(
		query.Col("age", wireformat.Uint32(1)),
		query.Col("wide", wireformat.Uint32(255)),
		query.Col("total", wireformat.Uint64(1)),
		query.Col("name", wireformat.String("b")),
	)

	tests := []struct {
		name string
		expr query.BoolNode
		want bool
	}{
		{name: "1 < 256", expr: query.Lt(query.Ident("age"), query.ValueOf(wireformat.Uint32(256))), want: true},
		{name: "1 > 256", expr: query.Gt(query.Ident("age"), query.ValueOf(wireformat.Uint32(256))), want: false},
		{name: "256 > 1", expr: query.Gt(query.ValueOf(wireformat.Uint32(256)), query.Ident("age")), want: true},
		{name: "255 < 256", expr: query.Lt(query.Ident("wide"), query.ValueOf(wireformat.Uint32(256))), want: true},
		{name: "equal is not less", expr: query.Lt(query.Ident("age"), query.ValueOf(wireformat.Uint32(1))), want: false},
		{name: "uint64 1 < 1<<40", expr: query.Lt(query.Ident("total"), query.ValueOf(wireformat.Uint64(1<<40))), want: true},
		{name: "uint64 against uint32", expr: query.Lt(query.Ident("age"), query.ValueOf(wireformat.Uint64(300))), want: true},
		{name: "strings stay byte-wise", expr: query.Lt(query.Ident("name"), query.ValueOf(wireformat.String("a"))), want: false},
		{name: "string less", expr: query.Lt(query.Ident("name"), query.ValueOf(wireformat.String("c"))), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.expr, row)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluate_NonBoolean(t *testing.T) {
	row := account("alice", 10, true)

	_, err := Evaluate(query.Ident("name"), row)
	assert.Error(t, err)

	_, err = Evaluate(query.And(query.Ident("name"), query.Literal(true)), row)
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	t.Run("identity", func(t *testing.T) {
		rows, err := Apply(sampleRows(), query.NewQuery("Accounts"))
		require.NoError(t, err)
		assert.Equal(t, sampleRows(), rows)
	})

	t.Run("filter then select", func(t *testing.T) {
		q := query.NewQuery("Accounts",
			query.FilterBy(query.Eq(query.Ident("active"), query.Literal(true))),
			query.SelectProps("name"),
		)
		rows, err := Apply(sampleRows(), q)
		require.NoError(t, err)
		assert.Equal(t, []string{"alice", "carol"}, names(t, rows))
		for _, r := range rows {
			assert.Len(t, r.Columns, 1)
		}
	})

	t.Run("select keeps requested order", func(t *testing.T) {
		rows, err := Apply(sampleRows()[:1], query.NewQuery("Accounts", query.SelectProps("active", "name")))
		require.NoError(t, err)
		require.Len(t, rows[0].Columns, 2)
		assert.Equal(t, "active", rows[0].Columns[0].Name)
		assert.Equal(t, "name", rows[0].Columns[1].Name)
	})

	t.Run("select unknown column", func(t *testing.T) {
		_, err := Apply(sampleRows(), query.NewQuery("Accounts", query.SelectProps("nope")))
		assert.Error(t, err)
	})
}

func TestExecutor_RunAndFetch(t *testing.T) {
	ctx := context.Background()
	exec, err := New(NewMemStore())
	require.NoError(t, err)

	for _, row := range sampleRows() {
		ins, err := query.NewInsert("Accounts", row)
		require.NoError(t, err)
		require.NoError(t, query.RunInsert(ctx, exec, ins))
	}

	q := query.NewQuery("Accounts",
		query.FilterBy(query.Eq(query.Ident("name"), query.ValueOf(wireformat.String("bob")))),
	)
	length, handle, err := exec.RunQuery(ctx, wireformat.MustMarshal(q))
	require.NoError(t, err)
	require.NotZero(t, length)
	assert.Equal(t, 1, exec.Pending())

	result, err := exec.FetchQueryResult(ctx, handle)
	require.NoError(t, err)
	assert.Len(t, result, int(length))

	rows, err := query.DecodeRows(result)
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, names(t, rows))

	_, err = exec.FetchQueryResult(ctx, handle)
	assert.ErrorIs(t, err, domainerrors.ErrMissingKey, "handles are consumed by fetch")
}

func TestExecutor_NoRows(t *testing.T) {
	ctx := context.Background()
	exec, err := New(NewMemStore())
	require.NoError(t, err)

	length, handle, err := exec.RunQuery(ctx, wireformat.MustMarshal(query.NewQuery("Empty")))
	require.NoError(t, err)
	assert.Zero(t, length)
	assert.Equal(t, ports.QueryHandle{}, handle)
	assert.Zero(t, exec.Pending())

	rows, err := query.RunRows(ctx, exec, query.NewQuery("Empty"))
	require.NoError(t, err)
	assert.Nil(t, rows)
}

func TestExecutor_InsertRejectsNonRow(t *testing.T) {
	ins, err := query.NewInsert("CoolTable", wireformat.Uint32(7))
	require.NoError(t, err)
	err = query.RunInsert(context.Background(), mustExecutor(t), ins)
	assert.Error(t, err)
}

func TestExecutor_DepthLimit(t *testing.T) {
	deep := query.Literal(true)
	for i := 0; i < 4; i++ {
		deep = query.And(deep, query.Literal(true))
	}
	data := wireformat.MustMarshal(query.NewQuery("T", query.FilterBy(deep)))

	exec, err := New(NewMemStore(), WithMaxDepth(3))
	require.NoError(t, err)
	_, _, err = exec.RunQuery(context.Background(), data)
	assert.ErrorIs(t, err, domainerrors.ErrDepthExceeded)
}

func TestResultCache_Eviction(t *testing.T) {
	cache, err := NewResultCache(1)
	require.NoError(t, err)

	first, err := cache.Put([]byte("a"))
	require.NoError(t, err)
	second, err := cache.Put([]byte("b"))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	_, err = cache.Take(first)
	assert.ErrorIs(t, err, domainerrors.ErrMissingKey)

	got, err := cache.Take(second)
	require.NoError(t, err)
	assert.Equal(t, []byte("b"), got)
}

func mustExecutor(t *testing.T) *Executor {
	t.Helper()
	exec, err := New(NewMemStore())
	require.NoError(t, err)
	return exec
}

func TestResultCache_ConcurrentTake(t *testing.T) {
	cache, err := NewResultCache(4)
	require.NoError(t, err)

	handle, err := cache.Put([]byte("rows"))
	require.NoError(t, err)

	var (
		wg   sync.WaitGroup
		wins atomic.Int32
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Take(handle); err == nil {
				wins.Add(1)
			} else {
				assert.ErrorIs(t, err, domainerrors.ErrMissingKey)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
	assert.Equal(t, 0, cache.Len())
}

package hostfuncs

import (
	"context"
	"testing"

	sdkerrors "github.com/reglet-dev/contract-sdk/domain/errors"
	"github.com/reglet-dev/contract-sdk/infrastructure/memhost"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadOnlyGuardMiddleware(t *testing.T) {
	host := memhost.New(memhost.WithState([]byte("k"), []byte("v")))
	reg, err := NewRegistry(
		WithMiddleware(ReadOnlyGuardMiddleware()),
		WithBundle(ServicesBundle(host)),
	)
	require.NoError(t, err)
	c := NewClient(reg)

	t.Run("read-only frame rejects mutation", func(t *testing.T) {
		ctx := WithFrame(context.Background(), NewFrame(nil, nil).MarkReadOnly())

		for name, call := range map[string]func() error{
			FnStore:       func() error { return c.Store(ctx, []byte("k"), []byte("w")) },
			FnDelete:      func() error { return c.Delete(ctx, []byte("k")) },
			FnQueryInsert: func() error { return c.Insert(ctx, []byte{0}) },
		} {
			err := call()
			require.Error(t, err, name)
			assert.ErrorIs(t, err, sdkerrors.ErrReadOnlyViolation, name)
		}

		v, err := c.Get(ctx, []byte("k"))
		require.NoError(t, err)
		assert.Equal(t, []byte("v"), v)
	})

	t.Run("mutating frame passes through", func(t *testing.T) {
		ctx := WithFrame(context.Background(), NewFrame(nil, nil))
		require.NoError(t, c.Store(ctx, []byte("k"), []byte("w")))

		v, err := c.Get(ctx, []byte("k"))
		require.NoError(t, err)
		assert.Equal(t, []byte("w"), v)
	})
}

func TestIsMutating(t *testing.T) {
	assert.True(t, IsMutating(FnStore))
	assert.True(t, IsMutating(FnDelete))
	assert.True(t, IsMutating(FnQueryInsert))
	assert.False(t, IsMutating(FnGet))
	assert.False(t, IsMutating(FnQueryRun))
}

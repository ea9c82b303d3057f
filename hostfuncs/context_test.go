package hostfuncs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHostContext(t *testing.T) {
	ctx := context.Background()
	hc := NewHostContext(ctx, "fetch_input")

	require.NotNil(t, hc)
	assert.Equal(t, "fetch_input", hc.FunctionName())
}

func TestHostContext_SetGetValue(t *testing.T) {
	hc := NewHostContext(context.Background(), "test_func")

	// Initially no value
	_, ok := hc.GetValue("key1")
	assert.False(t, ok)

	// Set a value
	hc.SetValue("key1", "value1")
	val, ok := hc.GetValue("key1")
	assert.True(t, ok)
	assert.Equal(t, "value1", val)

	// Set another value
	hc.SetValue("key2", 42)
	val2, ok := hc.GetValue("key2")
	assert.True(t, ok)
	assert.Equal(t, 42, val2)

	// First value still there
	val, ok = hc.GetValue("key1")
	assert.True(t, ok)
	assert.Equal(t, "value1", val)
}

func TestHostContext_ImplementsContext(t *testing.T) {
	parent := context.Background()
	hc := NewHostContext(parent, "store")

	// Verify it implements context.Context
	var ctx context.Context = hc
	assert.NotNil(t, ctx)

	// Verify context methods work
	assert.Nil(t, hc.Done())
	assert.Nil(t, hc.Err())
	assert.Nil(t, hc.Value("nonexistent"))
}

func TestFrame(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		_, ok := FrameFrom(context.Background())
		assert.False(t, ok)
	})

	t.Run("attached", func(t *testing.T) {
		f := NewFrame([]byte("envelope"), []byte("alice"))
		ctx := WithFrame(context.Background(), f)

		got, ok := FrameFrom(ctx)
		require.True(t, ok)
		assert.Equal(t, []byte("envelope"), got.Input())
		assert.Equal(t, []byte("alice"), got.Sender())

		_, returned := got.Output()
		assert.False(t, returned)
	})

	t.Run("output is copied and replaced", func(t *testing.T) {
		f := NewFrame(nil, nil)
		buf := []byte{1, 2}
		f.SetOutput(buf)
		buf[0] = 9
		f.SetOutput([]byte{3})

		out, returned := f.Output()
		assert.True(t, returned)
		assert.Equal(t, []byte{3}, out)
	})

	t.Run("empty output still counts as returned", func(t *testing.T) {
		f := NewFrame(nil, nil)
		f.SetOutput([]byte{})
		out, returned := f.Output()
		assert.True(t, returned)
		assert.Empty(t, out)
	})
}

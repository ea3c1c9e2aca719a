package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorage(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStorage()

	_, ok, err := m.Get(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)

	input := []byte("one")
	require.NoError(t, m.Set(ctx, "b", input))
	require.NoError(t, m.Set(ctx, "a", []byte("two")))
	input[0] = 'X'

	value, ok, err := m.Get(ctx, "b")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "one", string(value), "stored value must not alias the caller's slice")

	value[0] = 'Y'
	again, _, _ := m.Get(ctx, "b")
	assert.Equal(t, "one", string(again), "returned value must not alias storage")

	keys, err := m.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestMemoryStorage_SetErr(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStorage()
	boom := errors.New("disk full")
	m.SetErr = boom

	assert.ErrorIs(t, m.Set(ctx, "a", []byte("x")), boom)
	_, ok, err := m.Get(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)
}

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stylekart/internal/metrics"
)

// brokenStore fails every operation, simulating a cache outage.
type brokenStore struct{}

func (brokenStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, assert.AnError
}
func (brokenStore) Set(context.Context, string, []byte, time.Duration) error { return assert.AnError }
func (brokenStore) Delete(context.Context, string) error                     { return assert.AnError }
func (brokenStore) DeleteByPrefix(context.Context, string) error             { return assert.AnError }
func (brokenStore) Close()                                                   {}

func TestFailOpenSwallowsBackendErrors(t *testing.T) {
	ctx := context.Background()
	store := NewFailOpen(brokenStore{}, zerolog.Nop(), metrics.NewRecorder(nil))

	t.Run("get error becomes a miss", func(t *testing.T) {
		v, ok, err := store.Get(ctx, "product:id:1")
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, v)
	})

	t.Run("set error is swallowed", func(t *testing.T) {
		assert.NoError(t, store.Set(ctx, "product:id:1", []byte("v"), time.Minute))
	})

	t.Run("delete error is swallowed", func(t *testing.T) {
		assert.NoError(t, store.Delete(ctx, "product:id:1"))
	})

	t.Run("sweep error is swallowed", func(t *testing.T) {
		assert.NoError(t, store.DeleteByPrefix(ctx, "product:"))
	})
}

func TestFailOpenPassesThroughHealthyBackend(t *testing.T) {
	ctx := context.Background()
	store := NewFailOpen(NewMemory(), zerolog.Nop(), nil)

	require.NoError(t, store.Set(ctx, "product:id:1", []byte("v1"), time.Minute))
	v, ok, err := store.Get(ctx, "product:id:1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v1"), v)

	require.NoError(t, store.DeleteByPrefix(ctx, "product:"))
	_, ok, err = store.Get(ctx, "product:id:1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEntityOf(t *testing.T) {
	assert.Equal(t, "product", entityOf("product:id:1"))
	assert.Equal(t, "guest_cart", entityOf("guest_cart:guest_abc"))
	assert.Equal(t, "unknown", entityOf("nocolon"))
	assert.Equal(t, "unknown", entityOf(":leading"))
}

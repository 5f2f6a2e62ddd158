package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stylekart/internal/cache"
	"stylekart/internal/model"
	"stylekart/internal/session"
)

func newTestWishlistService(catalog *fakeProductCatalog) WishlistService {
	sessions := session.NewStore(cache.NewMemory(), time.Hour, zerolog.Nop())
	return NewWishlistService(newFakeWishlistRepo(), sessions, catalog, zerolog.Nop())
}

func TestWishlistAddAndList(t *testing.T) {
	ctx := context.Background()
	p := activeProductWithStock(100, 5)
	discounted := activeProductWithStock(80, 0)
	price := 60.0
	discounted.DiscountPrice = &price

	for _, tc := range cartOwners(t) {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestWishlistService(newFakeCatalog(p, discounted))

			require.NoError(t, svc.Add(ctx, tc.owner, p.ID))
			require.NoError(t, svc.Add(ctx, tc.owner, discounted.ID))

			items, err := svc.List(ctx, tc.owner)
			require.NoError(t, err)
			require.Len(t, items, 2)

			assert.Equal(t, p.ID, items[0].ProductID)
			assert.True(t, items[0].InStock)
			assert.Equal(t, 100.0, items[0].EffectivePrice)

			assert.Equal(t, discounted.ID, items[1].ProductID)
			assert.False(t, items[1].InStock)
			assert.Equal(t, 60.0, items[1].EffectivePrice)
			assert.False(t, items[1].AddedAt.IsZero())
		})
	}
}

func TestWishlistAddValidation(t *testing.T) {
	ctx := context.Background()
	owner := UserOwner(uuid.New())
	p := activeProductWithStock(100, 5)
	inactive := activeProductWithStock(50, 5)
	inactive.IsActive = false
	svc := newTestWishlistService(newFakeCatalog(p, inactive))

	t.Run("duplicate add is a conflict", func(t *testing.T) {
		require.NoError(t, svc.Add(ctx, owner, p.ID))
		err := svc.Add(ctx, owner, p.ID)
		assert.ErrorIs(t, err, model.ErrWishlistDuplicate)
	})

	t.Run("unknown product", func(t *testing.T) {
		err := svc.Add(ctx, owner, uuid.New())
		assert.True(t, model.IsNotFound(err))
	})

	t.Run("inactive product", func(t *testing.T) {
		err := svc.Add(ctx, owner, inactive.ID)
		assert.True(t, model.IsNotFound(err))
	})
}

func TestWishlistRemoveAndClear(t *testing.T) {
	ctx := context.Background()
	owner := GuestOwner(session.NewID())
	p := activeProductWithStock(100, 5)
	svc := newTestWishlistService(newFakeCatalog(p))

	t.Run("remove absent entry", func(t *testing.T) {
		err := svc.Remove(ctx, owner, p.ID)
		assert.ErrorIs(t, err, model.ErrWishlistItemNotFound)
	})

	require.NoError(t, svc.Add(ctx, owner, p.ID))
	require.NoError(t, svc.Remove(ctx, owner, p.ID))

	items, err := svc.List(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, items)

	require.NoError(t, svc.Add(ctx, owner, p.ID))
	require.NoError(t, svc.Clear(ctx, owner))
	items, err = svc.List(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestWishlistListSkipsVanishedProducts(t *testing.T) {
	ctx := context.Background()
	owner := UserOwner(uuid.New())
	p1 := activeProductWithStock(10, 1)
	p2 := activeProductWithStock(20, 1)
	catalog := newFakeCatalog(p1, p2)
	svc := newTestWishlistService(catalog)

	require.NoError(t, svc.Add(ctx, owner, p1.ID))
	require.NoError(t, svc.Add(ctx, owner, p2.ID))

	catalog.mu.Lock()
	delete(catalog.products, p1.ID)
	p2.IsActive = false
	catalog.mu.Unlock()

	items, err := svc.List(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, items)
}

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
	"stylekart/internal/pricing"
	"stylekart/internal/session"
)

type mergeFixture struct {
	catalog   *fakeProductCatalog
	sessions  *session.Store
	carts     CartService
	wishlists WishlistService
	merges    MergeService
}

func newMergeFixture(products ...*model.Product) *mergeFixture {
	catalog := newFakeCatalog(products...)
	sessions := session.NewStore(cache.NewMemory(), time.Hour, zerolog.Nop())
	calc := pricing.NewCalculator(catalog, noOffers{}, zerolog.Nop())
	carts := NewCartService(newFakeCartRepo(), sessions, catalog, calc, zerolog.Nop())
	wishlists := NewWishlistService(newFakeWishlistRepo(), sessions, catalog, zerolog.Nop())
	return &mergeFixture{
		catalog:   catalog,
		sessions:  sessions,
		carts:     carts,
		wishlists: wishlists,
		merges:    NewMergeService(carts, wishlists, sessions, zerolog.Nop()),
	}
}

func TestMergeCart(t *testing.T) {
	ctx := context.Background()
	p1 := activeProductWithStock(10, 10)
	p2 := activeProductWithStock(20, 10)
	scarce := activeProductWithStock(30, 1)

	t.Run("valid lines merge, dead lines are reported, guest is cleared", func(t *testing.T) {
		f := newMergeFixture(p1, p2, scarce)
		guestID := session.NewID()
		userID := uuid.New()
		vanished := uuid.New()

		require.NoError(t, f.sessions.PutCartLines(ctx, guestID, []model.CartLine{
			{ProductID: p1.ID, Quantity: 2},
			{ProductID: vanished, Quantity: 1},
			{ProductID: scarce.ID, Quantity: 5},
			{ProductID: p2.ID, Quantity: 1},
		}))

		result := f.merges.MergeCart(ctx, guestID, userID)
		require.NotNil(t, result)
		assert.Equal(t, 2, result.Merged)
		require.Len(t, result.Failures, 2)
		assert.Equal(t, model.ErrCodeNotFound, result.Failures[0].Code)
		assert.Equal(t, vanished, result.Failures[0].ProductID)
		assert.Equal(t, model.ErrCodeInsufficientStock, result.Failures[1].Code)
		assert.Equal(t, scarce.ID, result.Failures[1].ProductID)

		cart, err := f.carts.Get(ctx, UserOwner(userID))
		require.NoError(t, err)
		assert.Len(t, cart.Items, 2)

		// Guest session is spent even though some lines failed.
		lines, err := f.sessions.CartLines(ctx, guestID)
		require.NoError(t, err)
		assert.Empty(t, lines)
	})

	t.Run("merging accumulates with the user's existing cart", func(t *testing.T) {
		f := newMergeFixture(p1)
		guestID := session.NewID()
		userID := uuid.New()

		_, err := f.carts.AddItem(ctx, UserOwner(userID), p1.ID, 2)
		require.NoError(t, err)
		require.NoError(t, f.sessions.PutCartLines(ctx, guestID, []model.CartLine{{ProductID: p1.ID, Quantity: 3}}))

		result := f.merges.MergeCart(ctx, guestID, userID)
		assert.Equal(t, 1, result.Merged)

		cart, err := f.carts.Get(ctx, UserOwner(userID))
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, 5, cart.Items[0].Quantity)
	})

	t.Run("empty guest session merges to nothing", func(t *testing.T) {
		f := newMergeFixture(p1)
		result := f.merges.MergeCart(ctx, session.NewID(), uuid.New())
		require.NotNil(t, result)
		assert.Zero(t, result.Merged)
		assert.Empty(t, result.Failures)
	})
}

func TestMergeWishlist(t *testing.T) {
	ctx := context.Background()
	p1 := activeProductWithStock(10, 10)
	p2 := activeProductWithStock(20, 10)

	t.Run("duplicates are skipped silently", func(t *testing.T) {
		f := newMergeFixture(p1, p2)
		guestID := session.NewID()
		userID := uuid.New()

		require.NoError(t, f.wishlists.Add(ctx, UserOwner(userID), p1.ID))
		require.NoError(t, f.sessions.PutWishlistEntries(ctx, guestID, []model.WishlistEntry{
			{ProductID: p1.ID, AddedAt: time.Now()},
			{ProductID: p2.ID, AddedAt: time.Now()},
		}))

		result := f.merges.MergeWishlist(ctx, guestID, userID)
		require.NotNil(t, result)
		assert.Equal(t, 1, result.Merged)
		assert.Empty(t, result.Failures, "duplicates are not failures")

		items, err := f.wishlists.List(ctx, UserOwner(userID))
		require.NoError(t, err)
		assert.Len(t, items, 2)

		entries, err := f.sessions.WishlistEntries(ctx, guestID)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("vanished products are reported", func(t *testing.T) {
		f := newMergeFixture(p1)
		guestID := session.NewID()
		vanished := uuid.New()

		require.NoError(t, f.sessions.PutWishlistEntries(ctx, guestID, []model.WishlistEntry{
			{ProductID: vanished, AddedAt: time.Now()},
			{ProductID: p1.ID, AddedAt: time.Now()},
		}))

		result := f.merges.MergeWishlist(ctx, guestID, uuid.New())
		assert.Equal(t, 1, result.Merged)
		require.Len(t, result.Failures, 1)
		assert.Equal(t, vanished, result.Failures[0].ProductID)
		assert.Equal(t, model.ErrCodeNotFound, result.Failures[0].Code)
	})
}

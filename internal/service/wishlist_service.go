package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"stylekart/internal/model"
	"stylekart/internal/repository"
	"stylekart/internal/session"
)

// wishlistEntryStore mirrors cartLineStore for wishlist entries.
type wishlistEntryStore interface {
	Entries(ctx context.Context, owner Owner) ([]model.WishlistEntry, error)
	PutEntries(ctx context.Context, owner Owner, entries []model.WishlistEntry) error
	Clear(ctx context.Context, owner Owner) error
}

type userWishlistEntries struct {
	repo repository.WishlistRepository
}

func (u userWishlistEntries) Entries(ctx context.Context, owner Owner) ([]model.WishlistEntry, error) {
	id, err := uuid.Parse(owner.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", owner.ID, err)
	}
	return u.repo.GetEntries(ctx, id)
}

func (u userWishlistEntries) PutEntries(ctx context.Context, owner Owner, entries []model.WishlistEntry) error {
	id, err := uuid.Parse(owner.ID)
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", owner.ID, err)
	}
	return u.repo.ReplaceEntries(ctx, id, entries)
}

func (u userWishlistEntries) Clear(ctx context.Context, owner Owner) error {
	id, err := uuid.Parse(owner.ID)
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", owner.ID, err)
	}
	return u.repo.Clear(ctx, id)
}

type guestWishlistEntries struct {
	sessions *session.Store
}

func (g guestWishlistEntries) Entries(ctx context.Context, owner Owner) ([]model.WishlistEntry, error) {
	return g.sessions.WishlistEntries(ctx, owner.ID)
}

func (g guestWishlistEntries) PutEntries(ctx context.Context, owner Owner, entries []model.WishlistEntry) error {
	return g.sessions.PutWishlistEntries(ctx, owner.ID, entries)
}

func (g guestWishlistEntries) Clear(ctx context.Context, owner Owner) error {
	return g.sessions.ClearWishlist(ctx, owner.ID)
}

type wishlistService struct {
	user     wishlistEntryStore
	guest    wishlistEntryStore
	products ProductService
	logger   zerolog.Logger
	now      func() time.Time
}

// NewWishlistService creates the wishlist service shared by users and guests.
func NewWishlistService(repo repository.WishlistRepository, sessions *session.Store,
	products ProductService, logger zerolog.Logger) WishlistService {
	return &wishlistService{
		user:     userWishlistEntries{repo: repo},
		guest:    guestWishlistEntries{sessions: sessions},
		products: products,
		logger:   logger.With().Str("service", "wishlist").Logger(),
		now:      time.Now,
	}
}

func (s *wishlistService) store(owner Owner) wishlistEntryStore {
	if owner.Kind == OwnerGuest {
		return s.guest
	}
	return s.user
}

// List resolves the owner's wishlist against the live catalogue. Entries
// whose product has disappeared or gone inactive are skipped, not surfaced
// as errors.
func (s *wishlistService) List(ctx context.Context, owner Owner) ([]model.WishlistItem, error) {
	entries, err := s.store(owner).Entries(ctx, owner)
	if err != nil {
		return nil, err
	}

	items := make([]model.WishlistItem, 0, len(entries))
	for _, entry := range entries {
		p, err := s.products.GetByID(ctx, entry.ProductID)
		if err != nil {
			if model.IsNotFound(err) {
				s.logger.Debug().Str("product_id", entry.ProductID.String()).Msg("skipping unresolvable wishlist entry")
				continue
			}
			return nil, err
		}
		if p == nil || !p.IsActive {
			continue
		}
		items = append(items, model.WishlistItem{
			ProductID:      p.ID,
			Name:           p.Name,
			Slug:           p.Slug,
			Price:          p.Price,
			EffectivePrice: p.EffectivePrice(),
			InStock:        p.Stock > 0,
			AddedAt:        entry.AddedAt,
		})
	}
	return items, nil
}

// Add appends a product to the wishlist. A product already present is a
// Conflict, and the product must exist and be active.
func (s *wishlistService) Add(ctx context.Context, owner Owner, productID uuid.UUID) error {
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if p == nil || !p.IsActive {
		return model.ErrProductNotFound
	}

	st := s.store(owner)
	entries, err := st.Entries(ctx, owner)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.ProductID == productID {
			return model.ErrWishlistDuplicate
		}
	}

	entries = append(entries, model.WishlistEntry{ProductID: productID, AddedAt: s.now()})
	return st.PutEntries(ctx, owner, entries)
}

func (s *wishlistService) Remove(ctx context.Context, owner Owner, productID uuid.UUID) error {
	st := s.store(owner)
	entries, err := st.Entries(ctx, owner)
	if err != nil {
		return err
	}

	kept := entries[:0]
	found := false
	for _, entry := range entries {
		if entry.ProductID == productID {
			found = true
			continue
		}
		kept = append(kept, entry)
	}
	if !found {
		return model.ErrWishlistItemNotFound
	}
	return st.PutEntries(ctx, owner, kept)
}

func (s *wishlistService) Clear(ctx context.Context, owner Owner) error {
	return s.store(owner).Clear(ctx, owner)
}

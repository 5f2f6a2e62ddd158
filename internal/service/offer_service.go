package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"stylekart/internal/cache"
	"stylekart/internal/model"
	"stylekart/internal/offer"
	"stylekart/internal/repository"
)

const offerEntity = "offer"

type offerService struct {
	repo   repository.OfferRepository
	cache  cache.Store
	ttl    time.Duration
	logger zerolog.Logger
	now    func() time.Time
}

// NewOfferService creates the offer resolution service.
func NewOfferService(repo repository.OfferRepository, store cache.Store, ttl time.Duration, logger zerolog.Logger) OfferService {
	return &offerService{
		repo:   repo,
		cache:  store,
		ttl:    ttl,
		logger: logger.With().Str("service", "offer").Logger(),
		now:    time.Now,
	}
}

// BestOffer resolves the single winning offer for the product at the given
// quantity. Candidate offers always come from the database rather than the
// cache: usage counts and activation windows must be evaluated fresh.
func (s *offerService) BestOffer(ctx context.Context, p *model.Product, quantity int) (*model.AppliedOffer, error) {
	if p == nil || quantity < 1 {
		return nil, nil
	}

	now := s.now()
	candidates, err := s.repo.ListActiveForProduct(ctx, p, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load offers for product: %w", err)
	}

	selected := offer.SelectBest(p, candidates, quantity, now)
	if selected.Offer == nil {
		return nil, nil
	}

	return &model.AppliedOffer{
		OfferID:  selected.Offer.ID,
		Name:     selected.Offer.Name,
		Type:     selected.Offer.Type,
		Discount: selected.Discount,
	}, nil
}

// Upsert validates an offer definition and inserts or replaces the offer
// with the same name, then drops the cached offer listings.
func (s *offerService) Upsert(ctx context.Context, def offer.Definition) (*model.Offer, error) {
	o, err := def.ToOffer()
	if err != nil {
		return nil, model.NewDomainError(model.ErrCodeValidationFailed, err.Error())
	}

	if err := s.repo.Upsert(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to upsert offer: %w", err)
	}

	if err := s.cache.DeleteByPrefix(ctx, cache.Prefix(offerEntity)); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate offer cache")
	}
	return o, nil
}

func (s *offerService) List(ctx context.Context, page, limit int) (*model.OfferList, error) {
	page, limit = model.NormalisePage(page, limit)
	key := cache.ListKey(offerEntity, "list", page, limit, nil)

	if payload, ok, _ := s.cache.Get(ctx, key); ok {
		var cached model.OfferList
		if decoded, err := cache.Decode(payload, &cached); err == nil && decoded {
			return &cached, nil
		}
	}

	offers, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}

	result := &model.OfferList{Data: offers, Pagination: model.NewPagination(page, limit, total)}
	if payload, err := cache.Encode(result); err == nil {
		_ = s.cache.Set(ctx, key, payload, s.ttl)
	}
	return result, nil
}

package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"stylekart/internal/model"
	"stylekart/internal/session"
)

type mergeService struct {
	carts     CartService
	wishlists WishlistService
	sessions  *session.Store
	logger    zerolog.Logger
}

// NewMergeService creates the guest-to-user merge service.
func NewMergeService(carts CartService, wishlists WishlistService, sessions *session.Store, logger zerolog.Logger) MergeService {
	return &mergeService{
		carts:     carts,
		wishlists: wishlists,
		sessions:  sessions,
		logger:    logger.With().Str("service", "merge").Logger(),
	}
}

// MergeCart replays each guest cart line as an add against the user's cart,
// so every line gets the same stock and catalogue validation a fresh add
// would. Lines that fail are recorded and skipped. The guest cart is
// cleared regardless of outcome: the session is spent once merge runs.
func (m *mergeService) MergeCart(ctx context.Context, guestID string, userID uuid.UUID) *model.MergeResult {
	result := &model.MergeResult{}
	owner := UserOwner(userID)

	lines, err := m.sessions.CartLines(ctx, guestID)
	if err != nil {
		m.logger.Warn().Err(err).Str("guest_id", guestID).Msg("failed to read guest cart for merge")
		return result
	}

	for _, line := range lines {
		if _, err := m.carts.AddItem(ctx, owner, line.ProductID, line.Quantity); err != nil {
			result.Failures = append(result.Failures, mergeFailure(line.ProductID, err))
			continue
		}
		result.Merged++
	}

	if err := m.sessions.ClearCart(ctx, guestID); err != nil {
		m.logger.Warn().Err(err).Str("guest_id", guestID).Msg("failed to clear guest cart after merge")
	}
	return result
}

// MergeWishlist folds the guest wishlist into the user's. Duplicates are
// expected when the user already saved the same product; they are dropped
// silently rather than reported as failures.
func (m *mergeService) MergeWishlist(ctx context.Context, guestID string, userID uuid.UUID) *model.MergeResult {
	result := &model.MergeResult{}
	owner := UserOwner(userID)

	entries, err := m.sessions.WishlistEntries(ctx, guestID)
	if err != nil {
		m.logger.Warn().Err(err).Str("guest_id", guestID).Msg("failed to read guest wishlist for merge")
		return result
	}

	for _, entry := range entries {
		if err := m.wishlists.Add(ctx, owner, entry.ProductID); err != nil {
			if errors.Is(err, model.ErrWishlistDuplicate) {
				continue
			}
			result.Failures = append(result.Failures, mergeFailure(entry.ProductID, err))
			continue
		}
		result.Merged++
	}

	if err := m.sessions.ClearWishlist(ctx, guestID); err != nil {
		m.logger.Warn().Err(err).Str("guest_id", guestID).Msg("failed to clear guest wishlist after merge")
	}
	return result
}

func mergeFailure(productID uuid.UUID, err error) model.MergeFailure {
	return model.MergeFailure{ProductID: productID, Code: model.ErrorCode(err), Reason: err.Error()}
}

// Package session holds anonymous shoppers' cart and wishlist records in a
// TTL-bounded key-value store. Records are thin — product id and quantity
// only — so every read reprices against the live catalogue. Every mutation
// rewrites the full record and reapplies the full TTL; reads never refresh
// it, so a session that is only viewed expires at TTL after its last write.
package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"stylekart/internal/cache"
	"stylekart/internal/model"
)

// IDPrefix distinguishes guest session ids from persistent user ids.
const IDPrefix = "guest_"

// NewID generates a fresh guest session identifier.
func NewID() string {
	return IDPrefix + uuid.NewString()
}

// IsGuestID reports whether id carries the guest prefix.
func IsGuestID(id string) bool {
	return strings.HasPrefix(id, IDPrefix)
}

type cartRecord struct {
	Lines     []model.CartLine `json:"lines"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

type wishlistRecord struct {
	Entries   []model.WishlistEntry `json:"entries"`
	UpdatedAt time.Time             `json:"updatedAt"`
}

// Store persists guest session records. Unlike the catalog cache, the
// backing store is authoritative for guest state, so backend failures
// propagate to the caller instead of failing open.
type Store struct {
	kv     cache.Store
	ttl    time.Duration
	logger zerolog.Logger
}

// NewStore creates a guest session store with the given record TTL.
func NewStore(kv cache.Store, ttl time.Duration, logger zerolog.Logger) *Store {
	return &Store{
		kv:     kv,
		ttl:    ttl,
		logger: logger.With().Str("component", "guest-session").Logger(),
	}
}

func cartKey(guestID string) string     { return "guest_cart:" + guestID }
func wishlistKey(guestID string) string { return "guest_wishlist:" + guestID }

// CartLines returns the guest's cart lines; an absent or expired record is
// an empty cart.
func (s *Store) CartLines(ctx context.Context, guestID string) ([]model.CartLine, error) {
	payload, ok, err := s.kv.Get(ctx, cartKey(guestID))
	if err != nil {
		return nil, fmt.Errorf("failed to read guest cart: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var rec cartRecord
	decoded, err := cache.Decode(payload, &rec)
	if err != nil || !decoded {
		// Unreadable record: treat as expired rather than poisoning
		// every later read.
		s.logger.Warn().Str("guest_id", guestID).Msg("discarding undecodable guest cart record")
		return nil, nil
	}
	return rec.Lines, nil
}

// PutCartLines rewrites the guest's full cart record with the full TTL.
func (s *Store) PutCartLines(ctx context.Context, guestID string, lines []model.CartLine) error {
	payload, err := cache.Encode(cartRecord{Lines: lines, UpdatedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to encode guest cart: %w", err)
	}
	if err := s.kv.Set(ctx, cartKey(guestID), payload, s.ttl); err != nil {
		return fmt.Errorf("failed to write guest cart: %w", err)
	}
	return nil
}

// ClearCart deletes the guest's cart record.
func (s *Store) ClearCart(ctx context.Context, guestID string) error {
	if err := s.kv.Delete(ctx, cartKey(guestID)); err != nil {
		return fmt.Errorf("failed to clear guest cart: %w", err)
	}
	return nil
}

// WishlistEntries returns the guest's wishlist; absent means empty.
func (s *Store) WishlistEntries(ctx context.Context, guestID string) ([]model.WishlistEntry, error) {
	payload, ok, err := s.kv.Get(ctx, wishlistKey(guestID))
	if err != nil {
		return nil, fmt.Errorf("failed to read guest wishlist: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var rec wishlistRecord
	decoded, err := cache.Decode(payload, &rec)
	if err != nil || !decoded {
		s.logger.Warn().Str("guest_id", guestID).Msg("discarding undecodable guest wishlist record")
		return nil, nil
	}
	return rec.Entries, nil
}

// PutWishlistEntries rewrites the guest's full wishlist record with the
// full TTL.
func (s *Store) PutWishlistEntries(ctx context.Context, guestID string, entries []model.WishlistEntry) error {
	payload, err := cache.Encode(wishlistRecord{Entries: entries, UpdatedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to encode guest wishlist: %w", err)
	}
	if err := s.kv.Set(ctx, wishlistKey(guestID), payload, s.ttl); err != nil {
		return fmt.Errorf("failed to write guest wishlist: %w", err)
	}
	return nil
}

// ClearWishlist deletes the guest's wishlist record.
func (s *Store) ClearWishlist(ctx context.Context, guestID string) error {
	if err := s.kv.Delete(ctx, wishlistKey(guestID)); err != nil {
		return fmt.Errorf("failed to clear guest wishlist: %w", err)
	}
	return nil
}

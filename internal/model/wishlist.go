package model

import (
	"time"

	"github.com/google/uuid"
)

// WishlistEntry is the persisted state of a wishlist line. A product id
// appears at most once per owner.
type WishlistEntry struct {
	ProductID uuid.UUID `json:"productId" db:"product_id"`
	AddedAt   time.Time `json:"addedAt" db:"added_at"`
}

// WishlistItem is one wishlist entry resolved against the catalogue.
type WishlistItem struct {
	ProductID      uuid.UUID `json:"productId"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	Price          float64   `json:"price"`
	EffectivePrice float64   `json:"effectivePrice"`
	InStock        bool      `json:"inStock"`
	AddedAt        time.Time `json:"addedAt"`
}

// AddToWishlistRequest is the payload for wishlist add operations.
type AddToWishlistRequest struct {
	ProductID uuid.UUID `json:"productId"`
	GuestID   string    `json:"guestId,omitempty"`
}

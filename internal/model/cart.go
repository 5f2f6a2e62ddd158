package model

import (
	"github.com/google/uuid"
)

// CartLine is the only state persisted for a cart entry. Prices and offers
// are derived on every read, never stored.
type CartLine struct {
	ProductID uuid.UUID `json:"productId" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
}

// PricedItem is one cart line with live pricing applied.
type PricedItem struct {
	ProductID       uuid.UUID     `json:"productId"`
	Name            string        `json:"name"`
	Slug            string        `json:"slug"`
	SKU             string        `json:"sku"`
	Quantity        int           `json:"quantity"`
	UnitPrice       float64       `json:"unitPrice"`
	EffectivePrice  float64       `json:"effectivePrice"`
	ProductDiscount float64       `json:"productDiscount"`
	Offer           *AppliedOffer `json:"offer,omitempty"`
	OfferDiscount   float64       `json:"offerDiscount"`
	ItemTotal       float64       `json:"itemTotal"`
}

// CartSummary aggregates the cart-level totals.
type CartSummary struct {
	Subtotal             float64 `json:"subtotal"`
	TotalProductDiscount float64 `json:"totalProductDiscount"`
	TotalOfferDiscount   float64 `json:"totalOfferDiscount"`
	TotalDiscount        float64 `json:"totalDiscount"`
	Total                float64 `json:"total"`
	TotalItems           int     `json:"totalItems"`
	ItemCount            int     `json:"itemCount"`
}

// PricedCart is the read model of a cart: every number computed fresh from
// the catalogue at read time.
type PricedCart struct {
	Items   []PricedItem `json:"items"`
	Summary CartSummary  `json:"summary"`
}

// AddToCartRequest is the payload for cart add operations.
type AddToCartRequest struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
	GuestID   string    `json:"guestId,omitempty"`
}

// UpdateQuantityRequest is the payload for cart quantity updates.
type UpdateQuantityRequest struct {
	Quantity int    `json:"quantity"`
	GuestID  string `json:"guestId,omitempty"`
}

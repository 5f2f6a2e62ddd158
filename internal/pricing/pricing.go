package pricing

import (
	"context"
	"math"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"stylekart/internal/model"
)

// ProductSource resolves product snapshots, typically through the cached
// catalog service.
type ProductSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
}

// OfferSource resolves the best offer for a product at a quantity.
type OfferSource interface {
	BestOffer(ctx context.Context, p *model.Product, quantity int) (*model.AppliedOffer, error)
}

// Calculator derives cart pricing from the live catalogue. Nothing here is
// ever persisted: every call recomputes prices and offers so that catalogue
// changes show up on the next read without any invalidation step.
type Calculator struct {
	products ProductSource
	offers   OfferSource
	logger   zerolog.Logger
}

// NewCalculator creates a new cart pricing calculator.
func NewCalculator(products ProductSource, offers OfferSource, logger zerolog.Logger) *Calculator {
	return &Calculator{
		products: products,
		offers:   offers,
		logger:   logger.With().Str("component", "pricing").Logger(),
	}
}

// PriceCart prices the given lines. Lines whose product is missing or
// inactive are silently skipped: a cart read must keep working when a
// product disappears from the catalogue. Offer and unexpected catalogue
// failures propagate.
func (c *Calculator) PriceCart(ctx context.Context, lines []model.CartLine) (*model.PricedCart, error) {
	cart := &model.PricedCart{Items: make([]model.PricedItem, 0, len(lines))}

	for _, line := range lines {
		p, err := c.products.GetByID(ctx, line.ProductID)
		if err != nil {
			if model.IsNotFound(err) {
				c.logger.Debug().Str("product_id", line.ProductID.String()).Msg("skipping unresolvable cart line")
				continue
			}
			return nil, err
		}
		if p == nil || !p.IsActive {
			c.logger.Debug().Str("product_id", line.ProductID.String()).Msg("skipping inactive cart line")
			continue
		}

		applied, err := c.offers.BestOffer(ctx, p, line.Quantity)
		if err != nil {
			return nil, err
		}

		qty := float64(line.Quantity)
		eff := p.EffectivePrice()

		item := model.PricedItem{
			ProductID:       p.ID,
			Name:            p.Name,
			Slug:            p.Slug,
			SKU:             p.SKU,
			Quantity:        line.Quantity,
			UnitPrice:       p.Price,
			EffectivePrice:  eff,
			ProductDiscount: roundCents((p.Price - eff) * qty),
		}
		if applied != nil {
			item.Offer = applied
			item.OfferDiscount = applied.Discount
		}
		item.ItemTotal = roundCents(eff*qty - item.OfferDiscount)

		cart.Items = append(cart.Items, item)

		cart.Summary.Subtotal = roundCents(cart.Summary.Subtotal + p.Price*qty)
		cart.Summary.TotalProductDiscount = roundCents(cart.Summary.TotalProductDiscount + item.ProductDiscount)
		cart.Summary.TotalOfferDiscount = roundCents(cart.Summary.TotalOfferDiscount + item.OfferDiscount)
		cart.Summary.TotalItems += line.Quantity
	}

	cart.Summary.ItemCount = len(cart.Items)
	cart.Summary.TotalDiscount = roundCents(cart.Summary.TotalProductDiscount + cart.Summary.TotalOfferDiscount)
	cart.Summary.Total = roundCents(cart.Summary.Subtotal - cart.Summary.TotalDiscount)

	return cart, nil
}

// roundCents rounds a monetary amount to two decimal places.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

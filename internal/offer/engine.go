package offer

import (
	"math"
	"time"

	"stylekart/internal/model"
)

// Selected is the outcome of best-offer resolution for one product/quantity.
// A nil Offer means no offer applies; Discount is then 0.
type Selected struct {
	Offer    *model.Offer
	Discount float64
}

// SelectBest evaluates every candidate offer against the product snapshot
// and picks exactly one winner. It is a pure function of its inputs: no
// side effects, and the result does not depend on the order offers are
// supplied in.
//
// Ranking: highest priority wins; ties broken by largest discount, then by
// earliest start date, then by offer id as a final total order.
func SelectBest(p *model.Product, offers []model.Offer, quantity int, now time.Time) Selected {
	if p == nil || quantity < 1 {
		return Selected{}
	}

	var best *model.Offer
	var bestDiscount float64

	for i := range offers {
		o := &offers[i]
		d := Discount(o, p, quantity, now)
		if d <= 0 {
			continue
		}
		if best == nil || beats(o, d, best, bestDiscount) {
			best = o
			bestDiscount = d
		}
	}

	if best == nil {
		return Selected{}
	}
	return Selected{Offer: best, Discount: bestDiscount}
}

// beats reports whether candidate (o, d) outranks the incumbent (b, bd).
func beats(o *model.Offer, d float64, b *model.Offer, bd float64) bool {
	if o.Priority != b.Priority {
		return o.Priority > b.Priority
	}
	if d != bd {
		return d > bd
	}
	if !o.StartDate.Equal(b.StartDate) {
		return o.StartDate.Before(b.StartDate)
	}
	return o.ID.String() < b.ID.String()
}

// Discount computes the discount the offer yields for the product at the
// given quantity, or 0 when the offer is not eligible. The result is always
// in [0, effectivePrice*quantity], rounded to cents.
func Discount(o *model.Offer, p *model.Product, quantity int, now time.Time) float64 {
	if !o.Live(now) || !o.Scope.Matches(p) || quantity < 1 {
		return 0
	}

	eff := p.EffectivePrice()
	lineTotal := eff * float64(quantity)

	var d float64
	switch {
	case o.Type == model.OfferBuyXGetY && o.Rule.BuyXGetY != nil:
		r := o.Rule.BuyXGetY
		group := r.BuyQuantity + r.GetQuantity
		if quantity < group {
			return 0
		}
		d = float64(quantity/group) * float64(r.GetQuantity) * eff

	case o.Type == model.OfferBundleDiscount && o.Rule.Bundle != nil:
		r := o.Rule.Bundle
		if quantity < r.MinQuantity {
			return 0
		}
		// The bundle price replaces the effective price for the first
		// MinQuantity units; the remainder stays at effective price, so
		// the discount is constant beyond the threshold.
		d = eff*float64(r.MinQuantity) - r.BundlePrice

	case o.Type == model.OfferPercentageOff && o.Rule.Percentage != nil:
		r := o.Rule.Percentage
		if quantity < r.MinQuantity {
			return 0
		}
		d = lineTotal * r.DiscountPercentage / 100

	case o.Type == model.OfferFixedAmountOff && o.Rule.FixedAmount != nil:
		r := o.Rule.FixedAmount
		if quantity < r.MinQuantity {
			return 0
		}
		d = r.DiscountAmount

	default:
		// Rule variant does not match the declared type.
		return 0
	}

	if d < 0 {
		return 0
	}
	if d > lineTotal {
		d = lineTotal
	}
	return roundCents(d)
}

// roundCents rounds a monetary amount to two decimal places.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// OfferType discriminates the discount rule an offer carries.
type OfferType string

const (
	OfferBuyXGetY       OfferType = "BUY_X_GET_Y"
	OfferBundleDiscount OfferType = "BUNDLE_DISCOUNT"
	OfferPercentageOff  OfferType = "PERCENTAGE_OFF"
	OfferFixedAmountOff OfferType = "FIXED_AMOUNT_OFF"
)

// BuyXGetYRule grants GetQuantity free units for every BuyQuantity paid units.
type BuyXGetYRule struct {
	BuyQuantity int `json:"buyQuantity"`
	GetQuantity int `json:"getQuantity"`
}

// BundleDiscountRule prices the first MinQuantity units at BundlePrice.
type BundleDiscountRule struct {
	MinQuantity int     `json:"minQuantity"`
	BundlePrice float64 `json:"bundlePrice"`
}

// PercentageOffRule discounts the whole line by a percentage.
type PercentageOffRule struct {
	DiscountPercentage float64 `json:"discountPercentage"`
	MinQuantity        int     `json:"minQuantity,omitempty"`
}

// FixedAmountOffRule discounts the line by a fixed amount, capped at the
// line's effective total.
type FixedAmountOffRule struct {
	DiscountAmount float64 `json:"discountAmount"`
	MinQuantity    int     `json:"minQuantity,omitempty"`
}

// Rule is a variant holder: exactly one field is non-nil and it must match
// the offer's type. Illegal combinations are rejected at decode time.
type Rule struct {
	BuyXGetY    *BuyXGetYRule
	Bundle      *BundleDiscountRule
	Percentage  *PercentageOffRule
	FixedAmount *FixedAmountOffRule
}

// RuleDoc is the loosely-typed wire/storage shape of a rule. It exists only
// at the codec boundary (database JSONB columns and offer feed files); the
// rest of the code works with the typed Rule variants.
type RuleDoc struct {
	BuyQuantity        *int     `json:"buyQuantity,omitempty"`
	GetQuantity        *int     `json:"getQuantity,omitempty"`
	MinQuantity        *int     `json:"minQuantity,omitempty"`
	BundlePrice        *float64 `json:"bundlePrice,omitempty"`
	DiscountPercentage *float64 `json:"discountPercentage,omitempty"`
	DiscountAmount     *float64 `json:"discountAmount,omitempty"`
}

// DecodeRule builds the typed rule variant for an offer type from its wire
// shape, validating that the required fields are present and positive.
func DecodeRule(t OfferType, doc RuleDoc) (Rule, error) {
	switch t {
	case OfferBuyXGetY:
		if doc.BuyQuantity == nil || doc.GetQuantity == nil {
			return Rule{}, fmt.Errorf("rule for %s requires buyQuantity and getQuantity", t)
		}
		if *doc.BuyQuantity < 1 || *doc.GetQuantity < 1 {
			return Rule{}, fmt.Errorf("rule for %s requires positive quantities", t)
		}
		return Rule{BuyXGetY: &BuyXGetYRule{BuyQuantity: *doc.BuyQuantity, GetQuantity: *doc.GetQuantity}}, nil

	case OfferBundleDiscount:
		if doc.MinQuantity == nil || doc.BundlePrice == nil {
			return Rule{}, fmt.Errorf("rule for %s requires minQuantity and bundlePrice", t)
		}
		if *doc.MinQuantity < 1 || *doc.BundlePrice < 0 {
			return Rule{}, fmt.Errorf("rule for %s has out-of-range values", t)
		}
		return Rule{Bundle: &BundleDiscountRule{MinQuantity: *doc.MinQuantity, BundlePrice: *doc.BundlePrice}}, nil

	case OfferPercentageOff:
		if doc.DiscountPercentage == nil {
			return Rule{}, fmt.Errorf("rule for %s requires discountPercentage", t)
		}
		if *doc.DiscountPercentage <= 0 || *doc.DiscountPercentage > 100 {
			return Rule{}, fmt.Errorf("rule for %s requires percentage in (0,100]", t)
		}
		r := &PercentageOffRule{DiscountPercentage: *doc.DiscountPercentage, MinQuantity: 1}
		if doc.MinQuantity != nil && *doc.MinQuantity > 1 {
			r.MinQuantity = *doc.MinQuantity
		}
		return Rule{Percentage: r}, nil

	case OfferFixedAmountOff:
		if doc.DiscountAmount == nil {
			return Rule{}, fmt.Errorf("rule for %s requires discountAmount", t)
		}
		if *doc.DiscountAmount <= 0 {
			return Rule{}, fmt.Errorf("rule for %s requires positive discountAmount", t)
		}
		r := &FixedAmountOffRule{DiscountAmount: *doc.DiscountAmount, MinQuantity: 1}
		if doc.MinQuantity != nil && *doc.MinQuantity > 1 {
			r.MinQuantity = *doc.MinQuantity
		}
		return Rule{FixedAmount: r}, nil
	}
	return Rule{}, fmt.Errorf("unknown offer type %q", t)
}

// Doc flattens the typed rule back into its wire shape.
func (r Rule) Doc() RuleDoc {
	var doc RuleDoc
	switch {
	case r.BuyXGetY != nil:
		doc.BuyQuantity = &r.BuyXGetY.BuyQuantity
		doc.GetQuantity = &r.BuyXGetY.GetQuantity
	case r.Bundle != nil:
		doc.MinQuantity = &r.Bundle.MinQuantity
		doc.BundlePrice = &r.Bundle.BundlePrice
	case r.Percentage != nil:
		doc.DiscountPercentage = &r.Percentage.DiscountPercentage
		if r.Percentage.MinQuantity > 1 {
			doc.MinQuantity = &r.Percentage.MinQuantity
		}
	case r.FixedAmount != nil:
		doc.DiscountAmount = &r.FixedAmount.DiscountAmount
		if r.FixedAmount.MinQuantity > 1 {
			doc.MinQuantity = &r.FixedAmount.MinQuantity
		}
	}
	return doc
}

// MarshalDoc serialises the rule's wire shape, for JSONB storage.
func (r Rule) MarshalDoc() ([]byte, error) {
	return json.Marshal(r.Doc())
}

// OfferScope is the set of products an offer applies to.
type OfferScope struct {
	ProductIDs     []uuid.UUID `json:"productIds,omitempty"`
	CategoryIDs    []uuid.UUID `json:"categoryIds,omitempty"`
	SubcategoryIDs []uuid.UUID `json:"subcategoryIds,omitempty"`
	GenderIDs      []uuid.UUID `json:"genderIds,omitempty"`
}

// Matches reports whether the product falls inside the scope, either by
// explicit product id or by taxonomy membership.
func (s OfferScope) Matches(p *Product) bool {
	for _, id := range s.ProductIDs {
		if id == p.ID {
			return true
		}
	}
	for _, id := range s.CategoryIDs {
		if id == p.CategoryID {
			return true
		}
	}
	if p.SubcategoryID != nil {
		for _, id := range s.SubcategoryIDs {
			if id == *p.SubcategoryID {
				return true
			}
		}
	}
	for _, id := range s.GenderIDs {
		if id == p.GenderID {
			return true
		}
	}
	return false
}

// Offer is a rule-based discount definition.
type Offer struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Type       OfferType  `json:"offerType"`
	Rule       Rule       `json:"rule"`
	Priority   int        `json:"priority"`
	IsActive   bool       `json:"isActive"`
	StartDate  time.Time  `json:"startDate"`
	EndDate    time.Time  `json:"endDate"`
	UsageLimit *int       `json:"usageLimit,omitempty"`
	UsageCount int        `json:"usageCount"`
	Scope      OfferScope `json:"scope"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// Live reports whether the offer is active, inside its validity window and
// under its usage limit at the given instant.
func (o *Offer) Live(now time.Time) bool {
	if !o.IsActive {
		return false
	}
	if now.Before(o.StartDate) || now.After(o.EndDate) {
		return false
	}
	if o.UsageLimit != nil && o.UsageCount >= *o.UsageLimit {
		return false
	}
	return true
}

// AppliedOffer is the offer selected for a cart line together with the
// discount it produced.
type AppliedOffer struct {
	OfferID  uuid.UUID `json:"offerId"`
	Name     string    `json:"name"`
	Type     OfferType `json:"offerType"`
	Discount float64   `json:"discount"`
}

// OfferList is a paginated offer query result.
type OfferList struct {
	Data       []Offer    `json:"data"`
	Pagination Pagination `json:"pagination"`
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a catalogue product.
type Product struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	Name          string     `json:"name" db:"name"`
	Slug          string     `json:"slug" db:"slug"`
	SKU           string     `json:"sku" db:"sku"`
	Description   string     `json:"description,omitempty" db:"description"`
	Price         float64    `json:"price" db:"price"`
	DiscountPrice *float64   `json:"discountPrice,omitempty" db:"discount_price"`
	Stock         int        `json:"stock" db:"stock"`
	IsActive      bool       `json:"isActive" db:"is_active"`
	IsFeatured    bool       `json:"isFeatured" db:"is_featured"`
	GenderID      uuid.UUID  `json:"genderId" db:"gender_id"`
	CategoryID    uuid.UUID  `json:"categoryId" db:"category_id"`
	SubcategoryID *uuid.UUID `json:"subcategoryId,omitempty" db:"subcategory_id"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time  `json:"updatedAt" db:"updated_at"`
}

// EffectivePrice returns the discount price when one is set, otherwise the
// list price.
func (p *Product) EffectivePrice() float64 {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}

// ProductFilters narrows product list queries. Nil/empty fields are ignored.
type ProductFilters struct {
	GenderID      *uuid.UUID
	CategoryID    *uuid.UUID
	SubcategoryID *uuid.UUID
	Featured      *bool
	Active        *bool
	Search        string
}

// ProductList is a paginated product query result.
type ProductList struct {
	Data       []Product  `json:"data"`
	Pagination Pagination `json:"pagination"`
}

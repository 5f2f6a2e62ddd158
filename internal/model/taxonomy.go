package model

import (
	"time"

	"github.com/google/uuid"
)

// Gender is the top level of the catalogue taxonomy.
type Gender struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Slug      string    `json:"slug" db:"slug"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Category belongs to a gender.
type Category struct {
	ID        uuid.UUID `json:"id" db:"id"`
	GenderID  uuid.UUID `json:"genderId" db:"gender_id"`
	Name      string    `json:"name" db:"name"`
	Slug      string    `json:"slug" db:"slug"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Subcategory belongs to a category.
type Subcategory struct {
	ID         uuid.UUID `json:"id" db:"id"`
	CategoryID uuid.UUID `json:"categoryId" db:"category_id"`
	Name       string    `json:"name" db:"name"`
	Slug       string    `json:"slug" db:"slug"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// GenderList is a paginated gender query result.
type GenderList struct {
	Data       []Gender   `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// CategoryList is a paginated category query result.
type CategoryList struct {
	Data       []Category `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// SubcategoryList is a paginated subcategory query result.
type SubcategoryList struct {
	Data       []Subcategory `json:"data"`
	Pagination Pagination    `json:"pagination"`
}

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"stylekart/internal/model"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// List retrieves products matching the filters with pagination,
	// returning the matching rows and the total match count.
	List(ctx context.Context, page, limit int, f model.ProductFilters) ([]model.Product, int, error)

	// GetByID retrieves a single product by id. Returns (nil, nil) when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// GetBySlug retrieves a single product by slug. Returns (nil, nil) when absent.
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)

	// SlugExists reports whether another product already uses slug.
	SlugExists(ctx context.Context, slug string, exclude uuid.UUID) (bool, error)

	// Create inserts a new product.
	Create(ctx context.Context, p *model.Product) error

	// Update rewrites an existing product. Returns model.ErrProductNotFound
	// when no row matches.
	Update(ctx context.Context, p *model.Product) error

	// Delete removes a product.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountBySubcategory counts products referencing a subcategory.
	CountBySubcategory(ctx context.Context, subcategoryID uuid.UUID) (int, error)
}

// GenderRepository defines gender taxonomy data access.
type GenderRepository interface {
	List(ctx context.Context, page, limit int) ([]model.Gender, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Gender, error)
	GetBySlug(ctx context.Context, slug string) (*model.Gender, error)
	Create(ctx context.Context, g *model.Gender) error
	Update(ctx context.Context, g *model.Gender) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryRepository defines category taxonomy data access.
type CategoryRepository interface {
	List(ctx context.Context, page, limit int, genderID *uuid.UUID) ([]model.Category, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	GetBySlug(ctx context.Context, slug string) (*model.Category, error)
	Create(ctx context.Context, c *model.Category) error
	Update(ctx context.Context, c *model.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByGender(ctx context.Context, genderID uuid.UUID) (int, error)
}

// SubcategoryRepository defines subcategory taxonomy data access.
type SubcategoryRepository interface {
	List(ctx context.Context, page, limit int, categoryID *uuid.UUID) ([]model.Subcategory, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Subcategory, error)
	GetBySlug(ctx context.Context, slug string) (*model.Subcategory, error)
	Create(ctx context.Context, s *model.Subcategory) error
	Update(ctx context.Context, s *model.Subcategory) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int, error)
}

// OfferRepository defines offer data access.
type OfferRepository interface {
	// ListActiveForProduct retrieves all offers whose scope includes the
	// product and which are live at the given instant.
	ListActiveForProduct(ctx context.Context, p *model.Product, now time.Time) ([]model.Offer, error)

	// List retrieves offers with pagination.
	List(ctx context.Context, page, limit int) ([]model.Offer, int, error)

	// GetByID retrieves a single offer. Returns (nil, nil) when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Offer, error)

	// Upsert inserts an offer or, when one with the same name exists,
	// replaces its definition. Used by the offer feed importer.
	Upsert(ctx context.Context, o *model.Offer) error
}

// CartRepository is the durable per-user cart line store. Writes rewrite the
// owner's full line set, mirroring the guest store's full-record semantics.
type CartRepository interface {
	GetLines(ctx context.Context, userID uuid.UUID) ([]model.CartLine, error)
	ReplaceLines(ctx context.Context, userID uuid.UUID, lines []model.CartLine) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

// WishlistRepository is the durable per-user wishlist store.
type WishlistRepository interface {
	GetEntries(ctx context.Context, userID uuid.UUID) ([]model.WishlistEntry, error)
	ReplaceEntries(ctx context.Context, userID uuid.UUID, entries []model.WishlistEntry) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

// UserRepository defines user account data access.
type UserRepository interface {
	// GetByEmail retrieves a user by email. Returns (nil, nil) when absent.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// GetByID retrieves a user by id. Returns (nil, nil) when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// Create inserts a new user. Returns model.ErrDuplicateEmail on a
	// unique-email violation.
	Create(ctx context.Context, u *model.User) error
}

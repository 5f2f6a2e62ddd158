package service

import (
	"context"

	"github.com/google/uuid"

	"stylekart/internal/model"
	"stylekart/internal/offer"
)

// OwnerKind discriminates the two shopping identities.
type OwnerKind int

const (
	// OwnerUser is a registered account, backed by the durable store.
	OwnerUser OwnerKind = iota
	// OwnerGuest is an anonymous session, backed by the TTL store.
	OwnerGuest
)

// Owner identifies who a cart or wishlist belongs to. The pricing and
// validation logic is written once against this abstraction; only the
// backing line store differs between the two kinds.
type Owner struct {
	Kind OwnerKind
	ID   string
}

// UserOwner builds the owner for a registered user.
func UserOwner(userID uuid.UUID) Owner {
	return Owner{Kind: OwnerUser, ID: userID.String()}
}

// GuestOwner builds the owner for a guest session.
func GuestOwner(guestID string) Owner {
	return Owner{Kind: OwnerGuest, ID: guestID}
}

// ProductService defines cached catalogue read operations and admin writes
// for products.
type ProductService interface {
	List(ctx context.Context, page, limit int, f model.ProductFilters) (*model.ProductList, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)
	Create(ctx context.Context, p *model.Product) error
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// GenderService defines cached gender taxonomy operations.
type GenderService interface {
	List(ctx context.Context, page, limit int) (*model.GenderList, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Gender, error)
	GetBySlug(ctx context.Context, slug string) (*model.Gender, error)
	Create(ctx context.Context, g *model.Gender) error
	Update(ctx context.Context, g *model.Gender) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryService defines cached category taxonomy operations.
type CategoryService interface {
	List(ctx context.Context, page, limit int, genderID *uuid.UUID) (*model.CategoryList, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	GetBySlug(ctx context.Context, slug string) (*model.Category, error)
	Create(ctx context.Context, c *model.Category) error
	Update(ctx context.Context, c *model.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SubcategoryService defines cached subcategory taxonomy operations.
type SubcategoryService interface {
	List(ctx context.Context, page, limit int, categoryID *uuid.UUID) (*model.SubcategoryList, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Subcategory, error)
	GetBySlug(ctx context.Context, slug string) (*model.Subcategory, error)
	Create(ctx context.Context, s *model.Subcategory) error
	Update(ctx context.Context, s *model.Subcategory) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// OfferService resolves offers for products and lists offer definitions.
type OfferService interface {
	// BestOffer returns the single winning offer for the product at the
	// quantity, or nil when no offer applies.
	BestOffer(ctx context.Context, p *model.Product, quantity int) (*model.AppliedOffer, error)

	List(ctx context.Context, page, limit int) (*model.OfferList, error)

	// Upsert validates and stores an offer definition, replacing any
	// existing offer with the same name.
	Upsert(ctx context.Context, def offer.Definition) (*model.Offer, error)
}

// CartService manages the cart of any owner, guest or user.
type CartService interface {
	Get(ctx context.Context, owner Owner) (*model.PricedCart, error)
	AddItem(ctx context.Context, owner Owner, productID uuid.UUID, quantity int) (*model.PricedCart, error)
	UpdateQuantity(ctx context.Context, owner Owner, productID uuid.UUID, quantity int) (*model.PricedCart, error)
	RemoveItem(ctx context.Context, owner Owner, productID uuid.UUID) (*model.PricedCart, error)
	Clear(ctx context.Context, owner Owner) error
}

// WishlistService manages the wishlist of any owner, guest or user.
type WishlistService interface {
	List(ctx context.Context, owner Owner) ([]model.WishlistItem, error)
	Add(ctx context.Context, owner Owner, productID uuid.UUID) error
	Remove(ctx context.Context, owner Owner, productID uuid.UUID) error
	Clear(ctx context.Context, owner Owner) error
}

// MergeService folds a guest session into a user account at login time.
// Merge outcomes are advisory: they never fail the parent call.
type MergeService interface {
	MergeCart(ctx context.Context, guestID string, userID uuid.UUID) *model.MergeResult
	MergeWishlist(ctx context.Context, guestID string, userID uuid.UUID) *model.MergeResult
}

// UserService handles registration and login, including the best-effort
// guest merge.
type UserService interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)
}

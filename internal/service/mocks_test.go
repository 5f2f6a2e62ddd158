package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"stylekart/internal/model"
)

// MockProductRepository is a mock implementation of repository.ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(ctx context.Context, page, limit int, f model.ProductFilters) ([]model.Product, int, error) {
	args := m.Called(ctx, page, limit, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Product), args.Int(1), args.Error(2)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) SlugExists(ctx context.Context, slug string, exclude uuid.UUID) (bool, error) {
	args := m.Called(ctx, slug, exclude)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, p *model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, p *model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) CountBySubcategory(ctx context.Context, subcategoryID uuid.UUID) (int, error) {
	args := m.Called(ctx, subcategoryID)
	return args.Int(0), args.Error(1)
}

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, u *model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

/// fakeProductCatalog is a stateful stand-in for ProductService: the cart and
// wishlist services only use its read side.
type fakeProductCatalog struct {
	mu       sync.Mutex
	products map[uuid.UUID]*model.Product
}

func newFakeCatalog(products ...*model.Product) *fakeProductCatalog {
	c := &fakeProductCatalog{products: make(map[uuid.UUID]*model.Product)}
	for _, p := range products {
		c.products[p.ID] = p
	}
	return c
}

func (c *fakeProductCatalog) GetByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.products[id]
	if !ok {
		return nil, model.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (c *fakeProductCatalog) GetBySlug(_ context.Context, slug string) (*model.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.products {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, model.ErrProductNotFound
}

func (c *fakeProductCatalog) List(context.Context, int, int, model.ProductFilters) (*model.ProductList, error) {
	return &model.ProductList{}, nil
}

func (c *fakeProductCatalog) Create(context.Context, *model.Product) error { return nil }
func (c *fakeProductCatalog) Update(context.Context, *model.Product) error { return nil }
func (c *fakeProductCatalog) Delete(context.Context, uuid.UUID) error      { return nil }

// noOffers is an offer source that never applies anything, keeping cart
// arithmetic tests independent of offer selection.
type noOffers struct{}

func (noOffers) BestOffer(context.Context, *model.Product, int) (*model.AppliedOffer, error) {
	return nil, nil
}

// fakeCartRepo is an in-memory repository.CartRepository.
type fakeCartRepo struct {
	mu    sync.Mutex
	lines map[uuid.UUID][]model.CartLine
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{lines: make(map[uuid.UUID][]model.CartLine)}
}

func (r *fakeCartRepo) GetLines(_ context.Context, userID uuid.UUID) ([]model.CartLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.CartLine(nil), r.lines[userID]...), nil
}

func (r *fakeCartRepo) ReplaceLines(_ context.Context, userID uuid.UUID, lines []model.CartLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines[userID] = append([]model.CartLine(nil), lines...)
	return nil
}

func (r *fakeCartRepo) Clear(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.lines, userID)
	return nil
}

// fakeWishlistRepo is an in-memory repository.WishlistRepository.
type fakeWishlistRepo struct {
	mu      sync.Mutex
	entries map[uuid.UUID][]model.WishlistEntry
}

func newFakeWishlistRepo() *fakeWishlistRepo {
	return &fakeWishlistRepo{entries: make(map[uuid.UUID][]model.WishlistEntry)}
}

func (r *fakeWishlistRepo) GetEntries(_ context.Context, userID uuid.UUID) ([]model.WishlistEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.WishlistEntry(nil), r.entries[userID]...), nil
}

func (r *fakeWishlistRepo) ReplaceEntries(_ context.Context, userID uuid.UUID, entries []model.WishlistEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[userID] = append([]model.WishlistEntry(nil), entries...)
	return nil
}

func (r *fakeWishlistRepo) Clear(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, userID)
	return nil
}

func activeProductWithStock(price float64, stock int) *model.Product {
	return &model.Product{
		ID:        uuid.New(),
		Name:      "Tee",
		Slug:      "tee-" + uuid.NewString()[:8],
		SKU:       "SKU-" + uuid.NewString()[:8],
		Price:     price,
		Stock:     stock,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
}

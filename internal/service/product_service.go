package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"stylekart/internal/cache"
	"stylekart/internal/model"
	"stylekart/internal/repository"
)

const productEntity = "product"

// productService implements ProductService with cache-aside reads. Every
// write invalidates the whole product cache namespace; the cache is
// best-effort so a failed lookup or sweep degrades latency, never
// correctness.
type productService struct {
	repo   repository.ProductRepository
	cache  cache.Store
	ttl    time.Duration
	logger zerolog.Logger
}

// NewProductService creates a new product service. The cache store is
// expected to be fail-open wrapped.
func NewProductService(repo repository.ProductRepository, store cache.Store, ttl time.Duration, logger zerolog.Logger) ProductService {
	return &productService{
		repo:   repo,
		cache:  store,
		ttl:    ttl,
		logger: logger.With().Str("service", "product").Logger(),
	}
}

// filterValues canonicalises the filters for the cache key.
func filterValues(f model.ProductFilters) map[string]string {
	values := make(map[string]string, 6)
	if f.GenderID != nil {
		values["gender"] = f.GenderID.String()
	}
	if f.CategoryID != nil {
		values["category"] = f.CategoryID.String()
	}
	if f.SubcategoryID != nil {
		values["subcategory"] = f.SubcategoryID.String()
	}
	if f.Featured != nil {
		values["featured"] = strconv.FormatBool(*f.Featured)
	}
	if f.Active != nil {
		values["active"] = strconv.FormatBool(*f.Active)
	}
	if f.Search != "" {
		values["search"] = f.Search
	}
	return values
}

// List retrieves products with pagination and filters, through the cache.
func (s *productService) List(ctx context.Context, page, limit int, f model.ProductFilters) (*model.ProductList, error) {
	page, limit = model.NormalisePage(page, limit)

	kind := "list"
	if f.Featured != nil && *f.Featured {
		kind = "featured"
	}
	key := cache.ListKey(productEntity, kind, page, limit, filterValues(f))

	if payload, ok, _ := s.cache.Get(ctx, key); ok {
		var cached model.ProductList
		if decoded, err := cache.Decode(payload, &cached); err == nil && decoded {
			return &cached, nil
		}
	}

	products, total, err := s.repo.List(ctx, page, limit, f)
	if err != nil {
		s.logger.Error().Err(err).Int("page", page).Int("limit", limit).Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	result := &model.ProductList{
		Data:       products,
		Pagination: model.NewPagination(page, limit, total),
	}

	if payload, err := cache.Encode(result); err == nil {
		_ = s.cache.Set(ctx, key, payload, s.ttl)
	}

	return result, nil
}

// GetByID retrieves a single product through the cache.
func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	key := cache.IDKey(productEntity, id.String())

	if payload, ok, _ := s.cache.Get(ctx, key); ok {
		var cached model.Product
		if decoded, err := cache.Decode(payload, &cached); err == nil && decoded {
			return &cached, nil
		}
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	if payload, err := cache.Encode(product); err == nil {
		_ = s.cache.Set(ctx, key, payload, s.ttl)
	}

	return product, nil
}

// GetBySlug retrieves a single product by slug through the cache.
func (s *productService) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	key := cache.SlugKey(productEntity, slug)

	if payload, ok, _ := s.cache.Get(ctx, key); ok {
		var cached model.Product
		if decoded, err := cache.Decode(payload, &cached); err == nil && decoded {
			return &cached, nil
		}
	}

	product, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		s.logger.Error().Err(err).Str("slug", slug).Msg("failed to get product by slug")
		return nil, fmt.Errorf("failed to get product by slug: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	if payload, err := cache.Encode(product); err == nil {
		_ = s.cache.Set(ctx, key, payload, s.ttl)
	}

	return product, nil
}

// Create inserts a product and invalidates the product cache namespace.
func (s *productService) Create(ctx context.Context, p *model.Product) error {
	if err := s.validate(p); err != nil {
		return err
	}
	exists, err := s.repo.SlugExists(ctx, p.Slug, uuid.Nil)
	if err != nil {
		return fmt.Errorf("failed to check product slug: %w", err)
	}
	if exists {
		return model.ErrDuplicateSlug
	}

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := s.repo.Create(ctx, p); err != nil {
		return err
	}

	s.invalidate(ctx)
	s.logger.Info().Str("product_id", p.ID.String()).Str("slug", p.Slug).Msg("product created")
	return nil
}

// Update rewrites a product and invalidates the product cache namespace.
func (s *productService) Update(ctx context.Context, p *model.Product) error {
	if err := s.validate(p); err != nil {
		return err
	}
	exists, err := s.repo.SlugExists(ctx, p.Slug, p.ID)
	if err != nil {
		return fmt.Errorf("failed to check product slug: %w", err)
	}
	if exists {
		return model.ErrDuplicateSlug
	}

	p.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, p); err != nil {
		return err
	}

	s.invalidate(ctx)
	s.logger.Info().Str("product_id", p.ID.String()).Msg("product updated")
	return nil
}

// Delete removes a product and invalidates the product cache namespace.
func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	s.logger.Info().Str("product_id", id.String()).Msg("product deleted")
	return nil
}

// invalidate sweeps every cached product query. A write cannot know which
// list keys it affects, so the whole namespace goes.
func (s *productService) invalidate(ctx context.Context) {
	_ = s.cache.DeleteByPrefix(ctx, cache.Prefix(productEntity))
}

func (s *productService) validate(p *model.Product) error {
	if p == nil || p.Name == "" || p.Slug == "" || p.SKU == "" {
		return model.NewDomainError(model.ErrCodeValidationFailed, "Product name, slug and SKU are required")
	}
	if p.Price <= 0 {
		return model.NewDomainError(model.ErrCodeValidationFailed, "Product price must be positive")
	}
	if p.DiscountPrice != nil && *p.DiscountPrice >= p.Price {
		return model.NewDomainError(model.ErrCodeValidationFailed, "Discount price must be strictly less than price")
	}
	if p.Stock < 0 {
		return model.NewDomainError(model.ErrCodeValidationFailed, "Stock cannot be negative")
	}
	return nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"stylekart/internal/cache"
	"stylekart/internal/model"
	"stylekart/internal/repository"
)

// The three taxonomy services replicate the product service's cache-aside
// pattern per entity, with relationship-integrity checks on delete.

const (
	genderEntity      = "gender"
	categoryEntity    = "category"
	subcategoryEntity = "subcategory"
)

type genderService struct {
	repo       repository.GenderRepository
	categories repository.CategoryRepository
	cache      cache.Store
	ttl        time.Duration
	logger     zerolog.Logger
}

// NewGenderService creates a new gender taxonomy service.
func NewGenderService(repo repository.GenderRepository, categories repository.CategoryRepository,
	store cache.Store, ttl time.Duration, logger zerolog.Logger) GenderService {
	return &genderService{
		repo:       repo,
		categories: categories,
		cache:      store,
		ttl:        ttl,
		logger:     logger.With().Str("service", "gender").Logger(),
	}
}

func (s *genderService) List(ctx context.Context, page, limit int) (*model.GenderList, error) {
	page, limit = model.NormalisePage(page, limit)
	key := cache.ListKey(genderEntity, "list", page, limit, nil)

	if payload, ok, _ := s.cache.Get(ctx, key); ok {
		var cached model.GenderList
		if decoded, err := cache.Decode(payload, &cached); err == nil && decoded {
			return &cached, nil
		}
	}

	genders, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list genders: %w", err)
	}

	result := &model.GenderList{Data: genders, Pagination: model.NewPagination(page, limit, total)}
	if payload, err := cache.Encode(result); err == nil {
		_ = s.cache.Set(ctx, key, payload, s.ttl)
	}
	return result, nil
}

func (s *genderService) GetByID(ctx context.Context, id uuid.UUID) (*model.Gender, error) {
	key := cache.IDKey(genderEntity, id.String())
	if payload, ok, _ := s.cache.Get(ctx, key); ok {
		var cached model.Gender
		if decoded, err := cache.Decode(payload, &cached); err == nil && decoded {
			return &cached, nil
		}
	}

	gender, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get gender: %w", err)
	}
	if gender == nil {
		return nil, model.ErrGenderNotFound
	}

	if payload, err := cache.Encode(gender); err == nil {
		_ = s.cache.Set(ctx, key, payload, s.ttl)
	}
	return gender, nil
}

func (s *genderService) GetBySlug(ctx context.Context, slug string) (*model.Gender, error) {
	key := cache.SlugKey(genderEntity, slug)
	if payload, ok, _ := s.cache.Get(ctx, key); ok {
		var cached model.Gender
		if decoded, err := cache.Decode(payload, &cached); err == nil && decoded {
			return &cached, nil
		}
	}

	gender, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get gender by slug: %w", err)
	}
	if gender == nil {
		return nil, model.ErrGenderNotFound
	}

	if payload, err := cache.Encode(gender); err == nil {
		_ = s.cache.Set(ctx, key, payload, s.ttl)
	}
	return gender, nil
}

func (s *genderService) Create(ctx context.Context, g *model.Gender) error {
	if g == nil || g.Name == "" || g.Slug == "" {
		return model.NewDomainError(model.ErrCodeValidationFailed, "Gender name and slug are required")
	}
	if existing, err := s.repo.GetBySlug(ctx, g.Slug); err != nil {
		return err
	} else if existing != nil {
		return model.ErrDuplicateSlug
	}

	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	g.CreatedAt = time.Now()
	if err := s.repo.Create(ctx, g); err != nil {
		return err
	}

	_ = s.cache.DeleteByPrefix(ctx, cache.Prefix(genderEntity))
	s.logger.Info().Str("gender_id", g.ID.String()).Msg("gender created")
	return nil
}

func (s *genderService) Update(ctx context.Context, g *model.Gender) error {
	if g == nil || g.Name == "" || g.Slug == "" {
		return model.NewDomainError(model.ErrCodeValidationFailed, "Gender name and slug are required")
	}
	if existing, err := s.repo.GetBySlug(ctx, g.Slug); err != nil {
		return err
	} else if existing != nil && existing.ID != g.ID {
		return model.ErrDuplicateSlug
	}

	if err := s.repo.Update(ctx, g); err != nil {
		return err
	}

	_ = s.cache.DeleteByPrefix(ctx, cache.Prefix(genderEntity))
	return nil
}

// Delete refuses to remove a gender that still has categories.
func (s *genderService) Delete(ctx context.Context, id uuid.UUID) error {
	count, err := s.categories.CountByGender(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return model.ErrGenderHasCategories
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	_ = s.cache.DeleteByPrefix(ctx, cache.Prefix(genderEntity))
	s.logger.Info().Str("gender_id", id.String()).Msg("gender deleted")
	return nil
}

type categoryService struct {
	repo          repository.CategoryRepository
	subcategories repository.SubcategoryRepository
	cache         cache.Store
	ttl           time.Duration
	logger        zerolog.Logger
}

// NewCategoryService creates a new category taxonomy service.
func NewCategoryService(repo repository.CategoryRepository, subcategories repository.SubcategoryRepository,
	store cache.Store, ttl time.Duration, logger zerolog.Logger) CategoryService {
	return &categoryService{
		repo:          repo,
		subcategories: subcategories,
		cache:         store,
		ttl:           ttl,
		logger:        logger.With().Str("service", "category").Logger(),
	}
}

func (s *categoryService) List(ctx context.Context, page, limit int, genderID *uuid.UUID) (*model.CategoryList, error) {
	page, limit = model.NormalisePage(page, limit)
	filters := map[string]string{}
	if genderID != nil {
		filters["gender"] = genderID.String()
	}
	key := cache.ListKey(categoryEntity, "list", page, limit, filters)

	if payload, ok, _ := s.cache.Get(ctx, key); ok {
		var cached model.CategoryList
		if decoded, err := cache.Decode(payload, &cached); err == nil && decoded {
			return &cached, nil
		}
	}

	categories, total, err := s.repo.List(ctx, page, limit, genderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	result := &model.CategoryList{Data: categories, Pagination: model.NewPagination(page, limit, total)}
	if payload, err := cache.Encode(result); err == nil {
		_ = s.cache.Set(ctx, key, payload, s.ttl)
	}
	return result, nil
}

func (s *categoryService) GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	key := cache.IDKey(categoryEntity, id.String())
	if payload, ok, _ := s.cache.Get(ctx, key); ok {
		var cached model.Category
		if decoded, err := cache.Decode(payload, &cached); err == nil && decoded {
			return &cached, nil
		}
	}

	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	if category == nil {
		return nil, model.ErrCategoryNotFound
	}

	if payload, err := cache.Encode(category); err == nil {
		_ = s.cache.Set(ctx, key, payload, s.ttl)
	}
	return category, nil
}

func (s *categoryService) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	key := cache.SlugKey(categoryEntity, slug)
	if payload, ok, _ := s.cache.Get(ctx, key); ok {
		var cached model.Category
		if decoded, err := cache.Decode(payload, &cached); err == nil && decoded {
			return &cached, nil
		}
	}

	category, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get category by slug: %w", err)
	}
	if category == nil {
		return nil, model.ErrCategoryNotFound
	}

	if payload, err := cache.Encode(category); err == nil {
		_ = s.cache.Set(ctx, key, payload, s.ttl)
	}
	return category, nil
}

func (s *categoryService) Create(ctx context.Context, c *model.Category) error {
	if c == nil || c.Name == "" || c.Slug == "" || c.GenderID == uuid.Nil {
		return model.NewDomainError(model.ErrCodeValidationFailed, "Category name, slug and gender are required")
	}
	if existing, err := s.repo.GetBySlug(ctx, c.Slug); err != nil {
		return err
	} else if existing != nil {
		return model.ErrDuplicateSlug
	}

	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	if err := s.repo.Create(ctx, c); err != nil {
		return err
	}

	_ = s.cache.DeleteByPrefix(ctx, cache.Prefix(categoryEntity))
	s.logger.Info().Str("category_id", c.ID.String()).Msg("category created")
	return nil
}

func (s *categoryService) Update(ctx context.Context, c *model.Category) error {
	if c == nil || c.Name == "" || c.Slug == "" {
		return model.NewDomainError(model.ErrCodeValidationFailed, "Category name and slug are required")
	}
	if existing, err := s.repo.GetBySlug(ctx, c.Slug); err != nil {
		return err
	} else if existing != nil && existing.ID != c.ID {
		return model.ErrDuplicateSlug
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return err
	}

	_ = s.cache.DeleteByPrefix(ctx, cache.Prefix(categoryEntity))
	return nil
}

// Delete refuses to remove a category that still has subcategories.
func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	count, err := s.subcategories.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return model.ErrCategoryHasSubcategories
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	_ = s.cache.DeleteByPrefix(ctx, cache.Prefix(categoryEntity))
	s.logger.Info().Str("category_id", id.String()).Msg("category deleted")
	return nil
}

type subcategoryService struct {
	repo     repository.SubcategoryRepository
	products repository.ProductRepository
	cache    cache.Store
	ttl      time.Duration
	logger   zerolog.Logger
}

// NewSubcategoryService creates a new subcategory taxonomy service.
func NewSubcategoryService(repo repository.SubcategoryRepository, products repository.ProductRepository,
	store cache.Store, ttl time.Duration, logger zerolog.Logger) SubcategoryService {
	return &subcategoryService{
		repo:     repo,
		products: products,
		cache:    store,
		ttl:      ttl,
		logger:   logger.With().Str("service", "subcategory").Logger(),
	}
}

func (s *subcategoryService) List(ctx context.Context, page, limit int, categoryID *uuid.UUID) (*model.SubcategoryList, error) {
	page, limit = model.NormalisePage(page, limit)
	filters := map[string]string{}
	if categoryID != nil {
		filters["category"] = categoryID.String()
	}
	key := cache.ListKey(subcategoryEntity, "list", page, limit, filters)

	if payload, ok, _ := s.cache.Get(ctx, key); ok {
		var cached model.SubcategoryList
		if decoded, err := cache.Decode(payload, &cached); err == nil && decoded {
			return &cached, nil
		}
	}

	subcategories, total, err := s.repo.List(ctx, page, limit, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subcategories: %w", err)
	}

	result := &model.SubcategoryList{Data: subcategories, Pagination: model.NewPagination(page, limit, total)}
	if payload, err := cache.Encode(result); err == nil {
		_ = s.cache.Set(ctx, key, payload, s.ttl)
	}
	return result, nil
}

func (s *subcategoryService) GetByID(ctx context.Context, id uuid.UUID) (*model.Subcategory, error) {
	key := cache.IDKey(subcategoryEntity, id.String())
	if payload, ok, _ := s.cache.Get(ctx, key); ok {
		var cached model.Subcategory
		if decoded, err := cache.Decode(payload, &cached); err == nil && decoded {
			return &cached, nil
		}
	}

	subcategory, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get subcategory: %w", err)
	}
	if subcategory == nil {
		return nil, model.ErrSubcategoryNotFound
	}

	if payload, err := cache.Encode(subcategory); err == nil {
		_ = s.cache.Set(ctx, key, payload, s.ttl)
	}
	return subcategory, nil
}

func (s *subcategoryService) GetBySlug(ctx context.Context, slug string) (*model.Subcategory, error) {
	key := cache.SlugKey(subcategoryEntity, slug)
	if payload, ok, _ := s.cache.Get(ctx, key); ok {
		var cached model.Subcategory
		if decoded, err := cache.Decode(payload, &cached); err == nil && decoded {
			return &cached, nil
		}
	}

	subcategory, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get subcategory by slug: %w", err)
	}
	if subcategory == nil {
		return nil, model.ErrSubcategoryNotFound
	}

	if payload, err := cache.Encode(subcategory); err == nil {
		_ = s.cache.Set(ctx, key, payload, s.ttl)
	}
	return subcategory, nil
}

func (s *subcategoryService) Create(ctx context.Context, sc *model.Subcategory) error {
	if sc == nil || sc.Name == "" || sc.Slug == "" || sc.CategoryID == uuid.Nil {
		return model.NewDomainError(model.ErrCodeValidationFailed, "Subcategory name, slug and category are required")
	}
	if existing, err := s.repo.GetBySlug(ctx, sc.Slug); err != nil {
		return err
	} else if existing != nil {
		return model.ErrDuplicateSlug
	}

	if sc.ID == uuid.Nil {
		sc.ID = uuid.New()
	}
	sc.CreatedAt = time.Now()
	if err := s.repo.Create(ctx, sc); err != nil {
		return err
	}

	_ = s.cache.DeleteByPrefix(ctx, cache.Prefix(subcategoryEntity))
	s.logger.Info().Str("subcategory_id", sc.ID.String()).Msg("subcategory created")
	return nil
}

func (s *subcategoryService) Update(ctx context.Context, sc *model.Subcategory) error {
	if sc == nil || sc.Name == "" || sc.Slug == "" {
		return model.NewDomainError(model.ErrCodeValidationFailed, "Subcategory name and slug are required")
	}
	if existing, err := s.repo.GetBySlug(ctx, sc.Slug); err != nil {
		return err
	} else if existing != nil && existing.ID != sc.ID {
		return model.ErrDuplicateSlug
	}

	if err := s.repo.Update(ctx, sc); err != nil {
		return err
	}

	_ = s.cache.DeleteByPrefix(ctx, cache.Prefix(subcategoryEntity))
	return nil
}

// Delete refuses to remove a subcategory that still has products.
func (s *subcategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	count, err := s.products.CountBySubcategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return model.ErrSubcategoryHasProducts
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	_ = s.cache.DeleteByPrefix(ctx, cache.Prefix(subcategoryEntity))
	s.logger.Info().Str("subcategory_id", id.String()).Msg("subcategory deleted")
	return nil
}

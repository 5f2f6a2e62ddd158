package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"stylekart/internal/cache"
	"stylekart/internal/model"
)

type MockGenderRepository struct {
	mock.Mock
}

func (m *MockGenderRepository) List(ctx context.Context, page, limit int) ([]model.Gender, int, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Gender), args.Int(1), args.Error(2)
}

func (m *MockGenderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Gender, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Gender), args.Error(1)
}

func (m *MockGenderRepository) GetBySlug(ctx context.Context, slug string) (*model.Gender, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Gender), args.Error(1)
}

func (m *MockGenderRepository) Create(ctx context.Context, g *model.Gender) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGenderRepository) Update(ctx context.Context, g *model.Gender) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGenderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) List(ctx context.Context, page, limit int, genderID *uuid.UUID) ([]model.Category, int, error) {
	args := m.Called(ctx, page, limit, genderID)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Category), args.Int(1), args.Error(2)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) Create(ctx context.Context, c *model.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCategoryRepository) Update(ctx context.Context, c *model.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCategoryRepository) CountByGender(ctx context.Context, genderID uuid.UUID) (int, error) {
	args := m.Called(ctx, genderID)
	return args.Int(0), args.Error(1)
}

type MockSubcategoryRepository struct {
	mock.Mock
}

func (m *MockSubcategoryRepository) List(ctx context.Context, page, limit int, categoryID *uuid.UUID) ([]model.Subcategory, int, error) {
	args := m.Called(ctx, page, limit, categoryID)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Subcategory), args.Int(1), args.Error(2)
}

func (m *MockSubcategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Subcategory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subcategory), args.Error(1)
}

func (m *MockSubcategoryRepository) GetBySlug(ctx context.Context, slug string) (*model.Subcategory, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subcategory), args.Error(1)
}

func (m *MockSubcategoryRepository) Create(ctx context.Context, s *model.Subcategory) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSubcategoryRepository) Update(ctx context.Context, s *model.Subcategory) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSubcategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSubcategoryRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int, error) {
	args := m.Called(ctx, categoryID)
	return args.Int(0), args.Error(1)
}

func TestGenderService(t *testing.T) {
	ctx := context.Background()

	t.Run("list is cached", func(t *testing.T) {
		repo := new(MockGenderRepository)
		svc := NewGenderService(repo, new(MockCategoryRepository), cache.NewMemory(), time.Minute, zerolog.Nop())

		repo.On("List", mock.Anything, 1, 10).
			Return([]model.Gender{{ID: uuid.New(), Name: "Women", Slug: "women"}}, 1, nil).Once()

		first, err := svc.List(ctx, 1, 10)
		require.NoError(t, err)
		second, err := svc.List(ctx, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, first.Data[0].Slug, second.Data[0].Slug)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate slug on create", func(t *testing.T) {
		repo := new(MockGenderRepository)
		svc := NewGenderService(repo, new(MockCategoryRepository), cache.NewMemory(), time.Minute, zerolog.Nop())

		repo.On("GetBySlug", mock.Anything, "women").Return(&model.Gender{ID: uuid.New(), Slug: "women"}, nil)
		err := svc.Create(ctx, &model.Gender{Name: "Women", Slug: "women"})
		assert.ErrorIs(t, err, model.ErrDuplicateSlug)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("update keeps its own slug", func(t *testing.T) {
		repo := new(MockGenderRepository)
		svc := NewGenderService(repo, new(MockCategoryRepository), cache.NewMemory(), time.Minute, zerolog.Nop())

		g := &model.Gender{ID: uuid.New(), Name: "Women", Slug: "women"}
		repo.On("GetBySlug", mock.Anything, "women").Return(g, nil)
		repo.On("Update", mock.Anything, g).Return(nil)
		assert.NoError(t, svc.Update(ctx, g))
	})

	t.Run("delete blocked by dependent categories", func(t *testing.T) {
		repo := new(MockGenderRepository)
		categories := new(MockCategoryRepository)
		svc := NewGenderService(repo, categories, cache.NewMemory(), time.Minute, zerolog.Nop())

		id := uuid.New()
		categories.On("CountByGender", mock.Anything, id).Return(3, nil)
		err := svc.Delete(ctx, id)
		assert.ErrorIs(t, err, model.ErrGenderHasCategories)
		repo.AssertNotCalled(t, "Delete")
	})

	t.Run("delete with no dependents", func(t *testing.T) {
		repo := new(MockGenderRepository)
		categories := new(MockCategoryRepository)
		svc := NewGenderService(repo, categories, cache.NewMemory(), time.Minute, zerolog.Nop())

		id := uuid.New()
		categories.On("CountByGender", mock.Anything, id).Return(0, nil)
		repo.On("Delete", mock.Anything, id).Return(nil)
		assert.NoError(t, svc.Delete(ctx, id))
	})

	t.Run("absent gender maps to not found", func(t *testing.T) {
		repo := new(MockGenderRepository)
		svc := NewGenderService(repo, new(MockCategoryRepository), cache.NewMemory(), time.Minute, zerolog.Nop())

		repo.On("GetByID", mock.Anything, mock.Anything).Return(nil, nil)
		_, err := svc.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, model.ErrGenderNotFound)
	})
}

func TestCategoryService(t *testing.T) {
	ctx := context.Background()

	t.Run("list caches per gender filter", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		svc := NewCategoryService(repo, new(MockSubcategoryRepository), cache.NewMemory(), time.Minute, zerolog.Nop())

		genderID := uuid.New()
		repo.On("List", mock.Anything, 1, 10, (*uuid.UUID)(nil)).
			Return([]model.Category{{Name: "Tops", Slug: "tops"}}, 1, nil).Once()
		repo.On("List", mock.Anything, 1, 10, &genderID).
			Return([]model.Category{}, 0, nil).Once()

		_, err := svc.List(ctx, 1, 10, nil)
		require.NoError(t, err)
		_, err = svc.List(ctx, 1, 10, &genderID)
		require.NoError(t, err)

		// Both variants now come from the cache.
		_, err = svc.List(ctx, 1, 10, nil)
		require.NoError(t, err)
		_, err = svc.List(ctx, 1, 10, &genderID)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("create requires a gender", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		svc := NewCategoryService(repo, new(MockSubcategoryRepository), cache.NewMemory(), time.Minute, zerolog.Nop())

		err := svc.Create(ctx, &model.Category{Name: "Tops", Slug: "tops"})
		assert.Equal(t, model.ErrCodeValidationFailed, model.ErrorCode(err))
	})

	t.Run("delete blocked by dependent subcategories", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		subcategories := new(MockSubcategoryRepository)
		svc := NewCategoryService(repo, subcategories, cache.NewMemory(), time.Minute, zerolog.Nop())

		id := uuid.New()
		subcategories.On("CountByCategory", mock.Anything, id).Return(1, nil)
		err := svc.Delete(ctx, id)
		assert.ErrorIs(t, err, model.ErrCategoryHasSubcategories)
		repo.AssertNotCalled(t, "Delete")
	})
}

func TestSubcategoryService(t *testing.T) {
	ctx := context.Background()

	t.Run("delete blocked by dependent products", func(t *testing.T) {
		repo := new(MockSubcategoryRepository)
		products := new(MockProductRepository)
		svc := NewSubcategoryService(repo, products, cache.NewMemory(), time.Minute, zerolog.Nop())

		id := uuid.New()
		products.On("CountBySubcategory", mock.Anything, id).Return(5, nil)
		err := svc.Delete(ctx, id)
		assert.ErrorIs(t, err, model.ErrSubcategoryHasProducts)
		repo.AssertNotCalled(t, "Delete")
	})

	t.Run("create invalidates the list cache", func(t *testing.T) {
		repo := new(MockSubcategoryRepository)
		svc := NewSubcategoryService(repo, new(MockProductRepository), cache.NewMemory(), time.Minute, zerolog.Nop())

		repo.On("List", mock.Anything, 1, 10, (*uuid.UUID)(nil)).
			Return([]model.Subcategory{}, 0, nil).Twice()
		_, err := svc.List(ctx, 1, 10, nil)
		require.NoError(t, err)

		sc := &model.Subcategory{Name: "T-Shirts", Slug: "t-shirts", CategoryID: uuid.New()}
		repo.On("GetBySlug", mock.Anything, "t-shirts").Return(nil, nil)
		repo.On("Create", mock.Anything, sc).Return(nil)
		require.NoError(t, svc.Create(ctx, sc))
		assert.NotEqual(t, uuid.Nil, sc.ID)

		_, err = svc.List(ctx, 1, 10, nil)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

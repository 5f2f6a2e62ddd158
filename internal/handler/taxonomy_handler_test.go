package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"stylekart/internal/model"
)

type MockGenderService struct {
	mock.Mock
}

func (m *MockGenderService) List(ctx context.Context, page, limit int) (*model.GenderList, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GenderList), args.Error(1)
}

func (m *MockGenderService) GetByID(ctx context.Context, id uuid.UUID) (*model.Gender, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Gender), args.Error(1)
}

func (m *MockGenderService) GetBySlug(ctx context.Context, slug string) (*model.Gender, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Gender), args.Error(1)
}

func (m *MockGenderService) Create(ctx context.Context, g *model.Gender) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGenderService) Update(ctx context.Context, g *model.Gender) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGenderService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) List(ctx context.Context, page, limit int, genderID *uuid.UUID) (*model.CategoryList, error) {
	args := m.Called(ctx, page, limit, genderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CategoryList), args.Error(1)
}

func (m *MockCategoryService) GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryService) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryService) Create(ctx context.Context, c *model.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCategoryService) Update(ctx context.Context, c *model.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockSubcategoryService struct {
	mock.Mock
}

func (m *MockSubcategoryService) List(ctx context.Context, page, limit int, categoryID *uuid.UUID) (*model.SubcategoryList, error) {
	args := m.Called(ctx, page, limit, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SubcategoryList), args.Error(1)
}

func (m *MockSubcategoryService) GetByID(ctx context.Context, id uuid.UUID) (*model.Subcategory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subcategory), args.Error(1)
}

func (m *MockSubcategoryService) GetBySlug(ctx context.Context, slug string) (*model.Subcategory, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subcategory), args.Error(1)
}

func (m *MockSubcategoryService) Create(ctx context.Context, s *model.Subcategory) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSubcategoryService) Update(ctx context.Context, s *model.Subcategory) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSubcategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestTaxonomyHandler() (*TaxonomyHandler, *MockGenderService, *MockCategoryService, *MockSubcategoryService) {
	genders := new(MockGenderService)
	categories := new(MockCategoryService)
	subcategories := new(MockSubcategoryService)
	h := NewTaxonomyHandler(genders, categories, subcategories, zerolog.Nop())
	return h, genders, categories, subcategories
}

func TestGenderEndpoints(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		h, genders, _, _ := newTestTaxonomyHandler()
		genders.On("List", mock.Anything, 0, 0).
			Return(&model.GenderList{Data: []model.Gender{{Name: "Women", Slug: "women"}}}, nil)

		r := httptest.NewRequest(http.MethodGet, "/api/genders", nil)
		rec := httptest.NewRecorder()
		h.ListGenders(rec, r)

		require.Equal(t, http.StatusOK, rec.Code)
		var body model.GenderList
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		require.Len(t, body.Data, 1)
		assert.Equal(t, "women", body.Data[0].Slug)
	})

	t.Run("get by id", func(t *testing.T) {
		h, genders, _, _ := newTestTaxonomyHandler()
		id := uuid.New()
		genders.On("GetByID", mock.Anything, id).Return(&model.Gender{ID: id, Name: "Men"}, nil)

		r := httptest.NewRequest(http.MethodGet, "/api/genders/"+id.String(), nil)
		r.SetPathValue("id", id.String())
		rec := httptest.NewRecorder()
		h.GetGender(rec, r)

		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		h, genders, _, _ := newTestTaxonomyHandler()

		r := httptest.NewRequest(http.MethodGet, "/api/genders/nope", nil)
		r.SetPathValue("id", "nope")
		rec := httptest.NewRecorder()
		h.GetGender(rec, r)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		genders.AssertNotCalled(t, "GetByID")
	})

	t.Run("create", func(t *testing.T) {
		h, genders, _, _ := newTestTaxonomyHandler()
		genders.On("Create", mock.Anything, mock.AnythingOfType("*model.Gender")).Return(nil)

		r := httptest.NewRequest(http.MethodPost, "/api/admin/genders",
			strings.NewReader(`{"name":"Kids","slug":"kids"}`))
		rec := httptest.NewRecorder()
		h.CreateGender(rec, r)

		require.Equal(t, http.StatusCreated, rec.Code)
		genders.AssertExpectations(t)
	})

	t.Run("delete with dependent categories conflicts", func(t *testing.T) {
		h, genders, _, _ := newTestTaxonomyHandler()
		id := uuid.New()
		genders.On("Delete", mock.Anything, id).Return(model.ErrGenderHasCategories)

		r := httptest.NewRequest(http.MethodDelete, "/api/admin/genders/"+id.String(), nil)
		r.SetPathValue("id", id.String())
		rec := httptest.NewRecorder()
		h.DeleteGender(rec, r)

		require.Equal(t, http.StatusConflict, rec.Code)
		body := decodeErrorBody(t, rec)
		assert.Equal(t, string(model.ErrCodeConflict), body.Code)
	})

	t.Run("delete", func(t *testing.T) {
		h, genders, _, _ := newTestTaxonomyHandler()
		id := uuid.New()
		genders.On("Delete", mock.Anything, id).Return(nil)

		r := httptest.NewRequest(http.MethodDelete, "/api/admin/genders/"+id.String(), nil)
		r.SetPathValue("id", id.String())
		rec := httptest.NewRecorder()
		h.DeleteGender(rec, r)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestCategoryEndpoints(t *testing.T) {
	t.Run("list filtered by gender", func(t *testing.T) {
		h, _, categories, _ := newTestTaxonomyHandler()
		genderID := uuid.New()

		var gotFilter *uuid.UUID
		categories.On("List", mock.Anything, 0, 0, mock.Anything).
			Run(func(args mock.Arguments) { gotFilter = args.Get(3).(*uuid.UUID) }).
			Return(&model.CategoryList{Data: []model.Category{}}, nil)

		r := httptest.NewRequest(http.MethodGet, "/api/categories?gender="+genderID.String(), nil)
		rec := httptest.NewRecorder()
		h.ListCategories(rec, r)

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, gotFilter)
		assert.Equal(t, genderID, *gotFilter)
	})

	t.Run("malformed gender filter", func(t *testing.T) {
		h, _, categories, _ := newTestTaxonomyHandler()

		r := httptest.NewRequest(http.MethodGet, "/api/categories?gender=abc", nil)
		rec := httptest.NewRecorder()
		h.ListCategories(rec, r)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		categories.AssertNotCalled(t, "List")
	})

	t.Run("unknown category", func(t *testing.T) {
		h, _, categories, _ := newTestTaxonomyHandler()
		id := uuid.New()
		categories.On("GetByID", mock.Anything, id).Return(nil, model.ErrCategoryNotFound)

		r := httptest.NewRequest(http.MethodGet, "/api/categories/"+id.String(), nil)
		r.SetPathValue("id", id.String())
		rec := httptest.NewRecorder()
		h.GetCategory(rec, r)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestSubcategoryEndpoints(t *testing.T) {
	t.Run("update sets id from path", func(t *testing.T) {
		h, _, _, subcategories := newTestTaxonomyHandler()
		id := uuid.New()

		var updated *model.Subcategory
		subcategories.On("Update", mock.Anything, mock.AnythingOfType("*model.Subcategory")).
			Run(func(args mock.Arguments) { updated = args.Get(1).(*model.Subcategory) }).
			Return(nil)

		r := httptest.NewRequest(http.MethodPut, "/api/admin/subcategories/"+id.String(),
			strings.NewReader(`{"name":"Sneakers","slug":"sneakers"}`))
		r.SetPathValue("id", id.String())
		rec := httptest.NewRecorder()
		h.UpdateSubcategory(rec, r)

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, updated)
		assert.Equal(t, id, updated.ID)
	})

	t.Run("delete with dependent products conflicts", func(t *testing.T) {
		h, _, _, subcategories := newTestTaxonomyHandler()
		id := uuid.New()
		subcategories.On("Delete", mock.Anything, id).Return(model.ErrSubcategoryHasProducts)

		r := httptest.NewRequest(http.MethodDelete, "/api/admin/subcategories/"+id.String(), nil)
		r.SetPathValue("id", id.String())
		rec := httptest.NewRecorder()
		h.DeleteSubcategory(rec, r)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"stylekart/internal/model"
	"stylekart/internal/service"
)

// TaxonomyHandler handles the gender/category/subcategory hierarchy.
type TaxonomyHandler struct {
	genders       service.GenderService
	categories    service.CategoryService
	subcategories service.SubcategoryService
	logger        zerolog.Logger
}

// NewTaxonomyHandler creates a new taxonomy handler.
func NewTaxonomyHandler(genders service.GenderService, categories service.CategoryService,
	subcategories service.SubcategoryService, logger zerolog.Logger) *TaxonomyHandler {
	return &TaxonomyHandler{
		genders:       genders,
		categories:    categories,
		subcategories: subcategories,
		logger:        logger.With().Str("handler", "taxonomy").Logger(),
	}
}

// ListGenders handles GET /api/genders.
func (h *TaxonomyHandler) ListGenders(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	genders, err := h.genders.List(r.Context(), page, limit)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, genders)
}

// GetGender handles GET /api/genders/{id}.
func (h *TaxonomyHandler) GetGender(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid gender ID")
		return
	}
	gender, err := h.genders.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, gender)
}

// CreateGender handles POST /api/admin/genders.
func (h *TaxonomyHandler) CreateGender(w http.ResponseWriter, r *http.Request) {
	var gender model.Gender
	if err := decodeBody(r, &gender); err != nil {
		writeError(w, err, h.logger)
		return
	}
	if err := h.genders.Create(r.Context(), &gender); err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, gender)
}

// UpdateGender handles PUT /api/admin/genders/{id}.
func (h *TaxonomyHandler) UpdateGender(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid gender ID")
		return
	}
	var gender model.Gender
	if err := decodeBody(r, &gender); err != nil {
		writeError(w, err, h.logger)
		return
	}
	gender.ID = id
	if err := h.genders.Update(r.Context(), &gender); err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, gender)
}

// DeleteGender handles DELETE /api/admin/genders/{id}. Deleting a gender
// that still has categories is a conflict.
func (h *TaxonomyHandler) DeleteGender(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid gender ID")
		return
	}
	if err := h.genders.Delete(r.Context(), id); err != nil {
		writeError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListCategories handles GET /api/categories, optionally filtered by gender.
func (h *TaxonomyHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	genderID, err := optionalUUID(r, "gender")
	if err != nil {
		writeBadRequest(w, "invalid gender parameter")
		return
	}
	categories, err := h.categories.List(r.Context(), page, limit, genderID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// GetCategory handles GET /api/categories/{id}.
func (h *TaxonomyHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid category ID")
		return
	}
	category, err := h.categories.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

// CreateCategory handles POST /api/admin/categories.
func (h *TaxonomyHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var category model.Category
	if err := decodeBody(r, &category); err != nil {
		writeError(w, err, h.logger)
		return
	}
	if err := h.categories.Create(r.Context(), &category); err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

// UpdateCategory handles PUT /api/admin/categories/{id}.
func (h *TaxonomyHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid category ID")
		return
	}
	var category model.Category
	if err := decodeBody(r, &category); err != nil {
		writeError(w, err, h.logger)
		return
	}
	category.ID = id
	if err := h.categories.Update(r.Context(), &category); err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

// DeleteCategory handles DELETE /api/admin/categories/{id}.
func (h *TaxonomyHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid category ID")
		return
	}
	if err := h.categories.Delete(r.Context(), id); err != nil {
		writeError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListSubcategories handles GET /api/subcategories, optionally filtered by
// category.
func (h *TaxonomyHandler) ListSubcategories(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	categoryID, err := optionalUUID(r, "category")
	if err != nil {
		writeBadRequest(w, "invalid category parameter")
		return
	}
	subcategories, err := h.subcategories.List(r.Context(), page, limit, categoryID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, subcategories)
}

// GetSubcategory handles GET /api/subcategories/{id}.
func (h *TaxonomyHandler) GetSubcategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid subcategory ID")
		return
	}
	subcategory, err := h.subcategories.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, subcategory)
}

// CreateSubcategory handles POST /api/admin/subcategories.
func (h *TaxonomyHandler) CreateSubcategory(w http.ResponseWriter, r *http.Request) {
	var subcategory model.Subcategory
	if err := decodeBody(r, &subcategory); err != nil {
		writeError(w, err, h.logger)
		return
	}
	if err := h.subcategories.Create(r.Context(), &subcategory); err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, subcategory)
}

// UpdateSubcategory handles PUT /api/admin/subcategories/{id}.
func (h *TaxonomyHandler) UpdateSubcategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid subcategory ID")
		return
	}
	var subcategory model.Subcategory
	if err := decodeBody(r, &subcategory); err != nil {
		writeError(w, err, h.logger)
		return
	}
	subcategory.ID = id
	if err := h.subcategories.Update(r.Context(), &subcategory); err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, subcategory)
}

// DeleteSubcategory handles DELETE /api/admin/subcategories/{id}.
func (h *TaxonomyHandler) DeleteSubcategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid subcategory ID")
		return
	}
	if err := h.subcategories.Delete(r.Context(), id); err != nil {
		writeError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"stylekart/internal/model"
	"stylekart/internal/service"
)

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /api/products with pagination and filters.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	var filters model.ProductFilters
	filters.Search = r.URL.Query().Get("search")
	var err error
	if filters.GenderID, err = optionalUUID(r, "gender"); err != nil {
		writeBadRequest(w, "invalid gender parameter")
		return
	}
	if filters.CategoryID, err = optionalUUID(r, "category"); err != nil {
		writeBadRequest(w, "invalid category parameter")
		return
	}
	if filters.SubcategoryID, err = optionalUUID(r, "subcategory"); err != nil {
		writeBadRequest(w, "invalid subcategory parameter")
		return
	}
	if v := r.URL.Query().Get("featured"); v != "" {
		featured, err := strconv.ParseBool(v)
		if err != nil {
			writeBadRequest(w, "invalid featured parameter")
			return
		}
		filters.Featured = &featured
	}
	// Public listings only ever see active products.
	active := true
	filters.Active = &active

	products, err := h.service.List(r.Context(), page, limit, filters)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// Featured handles GET /api/products/featured. Equivalent to the list
// endpoint with the featured filter forced on, under its own cache keys.
func (h *ProductHandler) Featured(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	featured := true
	active := true
	filters := model.ProductFilters{Featured: &featured, Active: &active}

	products, err := h.service.List(r.Context(), page, limit, filters)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// GetByID handles GET /api/products/{id}.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid product ID")
		return
	}

	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// GetBySlug handles GET /api/products/slug/{slug}.
func (h *ProductHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		writeBadRequest(w, "product slug is required")
		return
	}

	product, err := h.service.GetBySlug(r.Context(), slug)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// Create handles POST /api/admin/products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var product model.Product
	if err := decodeBody(r, &product); err != nil {
		writeError(w, err, h.logger)
		return
	}

	if err := h.service.Create(r.Context(), &product); err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

// Update handles PUT /api/admin/products/{id}.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid product ID")
		return
	}

	var product model.Product
	if err := decodeBody(r, &product); err != nil {
		writeError(w, err, h.logger)
		return
	}
	product.ID = id

	if err := h.service.Update(r.Context(), &product); err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// Delete handles DELETE /api/admin/products/{id}.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid product ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// parsePagination reads page/limit query parameters, falling back to the
// service-level defaults on anything malformed.
func parsePagination(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return page, limit
}

func optionalUUID(r *http.Request, name string) (*uuid.UUID, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

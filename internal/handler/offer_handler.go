package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"stylekart/internal/offer"
	"stylekart/internal/service"
)

// OfferHandler exposes offer listings and per-product offer resolution.
type OfferHandler struct {
	offers   service.OfferService
	products service.ProductService
	logger   zerolog.Logger
}

// NewOfferHandler creates a new offer handler.
func NewOfferHandler(offers service.OfferService, products service.ProductService, logger zerolog.Logger) *OfferHandler {
	return &OfferHandler{
		offers:   offers,
		products: products,
		logger:   logger.With().Str("handler", "offer").Logger(),
	}
}

// List handles GET /api/offers.
func (h *OfferHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	offers, err := h.offers.List(r.Context(), page, limit)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, offers)
}

// Upsert handles POST /api/admin/offers. The body is a single offer
// definition in the feed document shape; an existing offer with the same
// name is replaced, keeping its usage counter.
func (h *OfferHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var def offer.Definition
	if err := decodeBody(r, &def); err != nil {
		writeError(w, err, h.logger)
		return
	}

	o, err := h.offers.Upsert(r.Context(), def)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

// BestForProduct handles GET /api/products/{id}/offer. An optional quantity
// parameter defaults to 1. A 200 with a null body value means no offer
// applies at that quantity.
func (h *OfferHandler) BestForProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid product ID")
		return
	}

	quantity := 1
	if v := r.URL.Query().Get("quantity"); v != "" {
		quantity, err = strconv.Atoi(v)
		if err != nil || quantity < 1 {
			writeBadRequest(w, "invalid quantity parameter")
			return
		}
	}

	product, err := h.products.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	applied, err := h.offers.BestOffer(r.Context(), product, quantity)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"offer": applied})
}

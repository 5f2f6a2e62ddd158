package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"stylekart/internal/model"
	"stylekart/internal/service"
)

// WishlistHandler handles wishlist HTTP requests for both users and guests.
type WishlistHandler struct {
	service service.WishlistService
	logger  zerolog.Logger
}

// NewWishlistHandler creates a new wishlist handler.
func NewWishlistHandler(service service.WishlistService, logger zerolog.Logger) *WishlistHandler {
	return &WishlistHandler{
		service: service,
		logger:  logger.With().Str("handler", "wishlist").Logger(),
	}
}

type wishlistResponse struct {
	GuestID string               `json:"guestId,omitempty"`
	Items   []model.WishlistItem `json:"items"`
}

// List handles GET /api/wishlist.
func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	owner, guestID, err := identity(r, "", false)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	items, err := h.service.List(r.Context(), owner)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, wishlistResponse{GuestID: guestID, Items: items})
}

// Add handles POST /api/wishlist/items. A request without any identity
// starts a new guest session.
func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req model.AddToWishlistRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	owner, guestID, err := identity(r, req.GuestID, true)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	if err := h.service.Add(r.Context(), owner, req.ProductID); err != nil {
		writeError(w, err, h.logger)
		return
	}

	items, err := h.service.List(r.Context(), owner)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, wishlistResponse{GuestID: guestID, Items: items})
}

// Remove handles DELETE /api/wishlist/items/{productId}.
func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(r.PathValue("productId"))
	if err != nil {
		writeBadRequest(w, "invalid product ID")
		return
	}

	owner, _, err := identity(r, "", false)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	if err := h.service.Remove(r.Context(), owner, productID); err != nil {
		writeError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Clear handles DELETE /api/wishlist.
func (h *WishlistHandler) Clear(w http.ResponseWriter, r *http.Request) {
	owner, _, err := identity(r, "", false)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	if err := h.service.Clear(r.Context(), owner); err != nil {
		writeError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"stylekart/internal/model"
	"stylekart/internal/service"
	"stylekart/internal/session"
)

// userIDHeader carries the authenticated user's id. Verifying it is the
// job of an upstream gateway; this service trusts the header.
const userIDHeader = "X-User-ID"

// CartHandler handles cart HTTP requests for both users and guests.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// cartResponse wraps the priced cart with the guest id, so a first-time
// guest learns the id the server minted for them.
type cartResponse struct {
	GuestID string            `json:"guestId,omitempty"`
	Cart    *model.PricedCart `json:"cart"`
}

// identity resolves who the request acts for. A user id header wins over a
// guest id. When neither is present and create is set, a fresh guest id is
// minted; the caller must echo it back on subsequent requests.
func identity(r *http.Request, bodyGuestID string, create bool) (service.Owner, string, error) {
	if userID := r.Header.Get(userIDHeader); userID != "" {
		id, err := uuid.Parse(userID)
		if err != nil {
			return service.Owner{}, "", model.NewDomainError(model.ErrCodeValidationFailed, "Invalid user ID header")
		}
		return service.UserOwner(id), "", nil
	}

	guestID := bodyGuestID
	if guestID == "" {
		guestID = r.URL.Query().Get("guestId")
	}
	if guestID != "" {
		if !session.IsGuestID(guestID) {
			return service.Owner{}, "", model.NewDomainError(model.ErrCodeValidationFailed, "Invalid guest ID")
		}
		return service.GuestOwner(guestID), guestID, nil
	}

	if !create {
		return service.Owner{}, "", model.NewDomainError(model.ErrCodeValidationFailed,
			"A user ID header or guestId is required")
	}
	guestID = session.NewID()
	return service.GuestOwner(guestID), guestID, nil
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	owner, guestID, err := identity(r, "", false)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	cart, err := h.service.Get(r.Context(), owner)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, cartResponse{GuestID: guestID, Cart: cart})
}

// AddItem handles POST /api/cart/items. A request without any identity
// starts a new guest session.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req model.AddToCartRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	owner, guestID, err := identity(r, req.GuestID, true)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	cart, err := h.service.AddItem(r.Context(), owner, req.ProductID, req.Quantity)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, cartResponse{GuestID: guestID, Cart: cart})
}

// UpdateQuantity handles PUT /api/cart/items/{productId}.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(r.PathValue("productId"))
	if err != nil {
		writeBadRequest(w, "invalid product ID")
		return
	}

	var req model.UpdateQuantityRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	owner, guestID, err := identity(r, req.GuestID, false)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	cart, err := h.service.UpdateQuantity(r.Context(), owner, productID, req.Quantity)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, cartResponse{GuestID: guestID, Cart: cart})
}

// RemoveItem handles DELETE /api/cart/items/{productId}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(r.PathValue("productId"))
	if err != nil {
		writeBadRequest(w, "invalid product ID")
		return
	}

	owner, guestID, err := identity(r, "", false)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	cart, err := h.service.RemoveItem(r.Context(), owner, productID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, cartResponse{GuestID: guestID, Cart: cart})
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
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

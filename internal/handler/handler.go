package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"stylekart/internal/model"
)

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Encoding failures after the header is written cannot be reported
		// to the client.
		return
	}
}

// writeError maps a domain error onto an HTTP status and JSON body. Errors
// without a domain code are treated as internal and their detail is kept
// out of the response.
func writeError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var stockErr *model.StockError
	if errors.As(err, &stockErr) {
		writeJSON(w, http.StatusConflict, ErrorResponse{
			Error: stockErr.Error(),
			Code:  model.ErrCodeInsufficientStock,
			Details: map[string]any{
				"productId": stockErr.ProductID,
				"requested": stockErr.Requested,
				"available": stockErr.Available,
			},
		})
		return
	}

	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		writeJSON(w, statusFor(domainErr.Code), ErrorResponse{
			Error: domainErr.Message,
			Code:  domainErr.Code,
		})
		return
	}

	logger.Error().Err(err).Msg("internal error")
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error: "internal server error",
		Code:  model.ErrCodeInternalError,
	})
}

func statusFor(code string) int {
	switch code {
	case model.ErrCodeNotFound:
		return http.StatusNotFound
	case model.ErrCodeConflict, model.ErrCodeInsufficientStock:
		return http.StatusConflict
	case model.ErrCodeInvalidQuantity, model.ErrCodeValidationFailed, model.ErrCodeInvalidJSON:
		return http.StatusBadRequest
	case model.ErrCodeInvalidCredentials:
		return http.StatusUnauthorized
	case model.ErrCodeUnauthorised:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeBadRequest is a shorthand for request-shape problems caught before
// the service layer.
func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: message, Code: model.ErrCodeValidationFailed})
}

// decodeBody decodes a JSON request body into dst.
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return model.NewDomainError(model.ErrCodeInvalidJSON, "Invalid JSON body")
	}
	return nil
}

package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeConflict           = "CONFLICT"
	ErrCodeInsufficientStock  = "INSUFFICIENT_STOCK"
	ErrCodeInvalidQuantity    = "INVALID_QUANTITY"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeValidationFailed   = "VALIDATION_FAILED"
	ErrCodeUnauthorised       = "UNAUTHORIZED"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// DomainError is a business-logic error with a stable code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrProductNotFound      = NewDomainError(ErrCodeNotFound, "Product not found or inactive")
	ErrGenderNotFound       = NewDomainError(ErrCodeNotFound, "Gender not found")
	ErrCategoryNotFound     = NewDomainError(ErrCodeNotFound, "Category not found")
	ErrSubcategoryNotFound  = NewDomainError(ErrCodeNotFound, "Subcategory not found")
	ErrOfferNotFound        = NewDomainError(ErrCodeNotFound, "Offer not found")
	ErrUserNotFound         = NewDomainError(ErrCodeNotFound, "User not found")
	ErrCartItemNotFound     = NewDomainError(ErrCodeNotFound, "Item not in cart")
	ErrWishlistItemNotFound = NewDomainError(ErrCodeNotFound, "Item not in wishlist")

	ErrWishlistDuplicate = NewDomainError(ErrCodeConflict, "Product already in wishlist")
	ErrDuplicateSlug     = NewDomainError(ErrCodeConflict, "Slug already in use")
	ErrDuplicateEmail    = NewDomainError(ErrCodeConflict, "Email already registered")

	ErrGenderHasCategories      = NewDomainError(ErrCodeConflict, "Gender has dependent categories")
	ErrCategoryHasSubcategories = NewDomainError(ErrCodeConflict, "Category has dependent subcategories")
	ErrSubcategoryHasProducts   = NewDomainError(ErrCodeConflict, "Subcategory has dependent products")

	ErrInvalidQuantity    = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrInvalidCredentials = NewDomainError(ErrCodeInvalidCredentials, "Invalid email or password")
)

// StockError reports an insufficient-stock rejection with the shortfall detail.
type StockError struct {
	ProductID uuid.UUID
	Requested int
	Available int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

// ErrorCode extracts the stable code from a domain or stock error.
// Unknown errors map to INTERNAL_ERROR.
func ErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	var se *StockError
	if errors.As(err, &se) {
		return ErrCodeInsufficientStock
	}
	return ErrCodeInternalError
}

// IsNotFound reports whether err is a NOT_FOUND domain error.
func IsNotFound(err error) bool {
	return ErrorCode(err) == ErrCodeNotFound
}

// IsConflict reports whether err is a CONFLICT domain error.
func IsConflict(err error) bool {
	return ErrorCode(err) == ErrCodeConflict
}

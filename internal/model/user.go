package model

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered shopper account.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Name         string    `json:"name" db:"name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// RegisterRequest is the payload for account registration. GuestID, when
// present, triggers a best-effort merge of the guest session.
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	GuestID  string `json:"guestId,omitempty"`
}

// LoginRequest is the payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	GuestID  string `json:"guestId,omitempty"`
}

// MergeFailure records one guest line that could not be merged.
type MergeFailure struct {
	ProductID uuid.UUID `json:"productId"`
	Code      string    `json:"code"`
	Reason    string    `json:"reason"`
}

// MergeResult summarises a guest-to-user merge. Failures are advisory: the
// parent login/register call never fails because of them.
type MergeResult struct {
	Merged   int            `json:"merged"`
	Failures []MergeFailure `json:"failures,omitempty"`
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	User          User         `json:"user"`
	CartMerge     *MergeResult `json:"cartMerge,omitempty"`
	WishlistMerge *MergeResult `json:"wishlistMerge,omitempty"`
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"stylekart/internal/model"
	"stylekart/internal/repository"
	"stylekart/internal/session"
)

type userService struct {
	repo   repository.UserRepository
	merges MergeService
	logger zerolog.Logger
}

// NewUserService creates the account service.
func NewUserService(repo repository.UserRepository, merges MergeService, logger zerolog.Logger) UserService {
	return &userService{
		repo:   repo,
		merges: merges,
		logger: logger.With().Str("service", "user").Logger(),
	}
}

func (s *userService) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	if req == nil || req.Email == "" || req.Name == "" || len(req.Password) < 8 {
		return nil, model.NewDomainError(model.ErrCodeValidationFailed,
			"Email, name and a password of at least 8 characters are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Name:         req.Name,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", user.ID.String()).Msg("user registered")

	resp := &model.AuthResponse{User: *user}
	s.attachMerge(ctx, resp, req.GuestID, user.ID)
	return resp, nil
}

// Login verifies credentials and, when a guest id is supplied, folds the
// guest session into the account. Merge problems never fail the login.
func (s *userService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	if req == nil || req.Email == "" || req.Password == "" {
		return nil, model.ErrInvalidCredentials
	}

	user, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, model.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	resp := &model.AuthResponse{User: *user}
	s.attachMerge(ctx, resp, req.GuestID, user.ID)
	return resp, nil
}

func (s *userService) attachMerge(ctx context.Context, resp *model.AuthResponse, guestID string, userID uuid.UUID) {
	if guestID == "" {
		return
	}
	if !session.IsGuestID(guestID) {
		s.logger.Warn().Str("guest_id", guestID).Msg("ignoring malformed guest id at login")
		return
	}
	resp.CartMerge = s.merges.MergeCart(ctx, guestID, userID)
	resp.WishlistMerge = s.merges.MergeWishlist(ctx, guestID, userID)
}

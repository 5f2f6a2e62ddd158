package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"stylekart/internal/model"
)

// wishlistRepository implements WishlistRepository using PostgreSQL with the
// same full-rewrite semantics as the cart store. The (user_id, product_id)
// unique index backs the one-product-per-wishlist invariant.
type wishlistRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewWishlistRepository creates a new PostgreSQL-backed wishlist repository.
func NewWishlistRepository(pool *pgxpool.Pool, logger zerolog.Logger) WishlistRepository {
	return &wishlistRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "wishlist").Logger(),
	}
}

// GetEntries retrieves the user's wishlist entries.
func (r *wishlistRepository) GetEntries(ctx context.Context, userID uuid.UUID) ([]model.WishlistEntry, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT product_id, added_at FROM wishlist_entries WHERE user_id = $1 ORDER BY added_at", userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query wishlist entries")
		return nil, fmt.Errorf("failed to query wishlist entries: %w", err)
	}
	defer rows.Close()

	var entries []model.WishlistEntry
	for rows.Next() {
		var e model.WishlistEntry
		if err := rows.Scan(&e.ProductID, &e.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan wishlist entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wishlist entries: %w", err)
	}
	return entries, nil
}

// ReplaceEntries rewrites the user's full wishlist.
func (r *wishlistRepository) ReplaceEntries(ctx context.Context, userID uuid.UUID, entries []model.WishlistEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM wishlist_entries WHERE user_id = $1", userID); err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to clear wishlist entries")
		return fmt.Errorf("failed to clear wishlist entries: %w", err)
	}

	for _, e := range entries {
		_, err := tx.Exec(ctx,
			"INSERT INTO wishlist_entries (user_id, product_id, added_at) VALUES ($1, $2, $3)",
			userID, e.ProductID, e.AddedAt)
		if err != nil {
			r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to insert wishlist entry")
			return fmt.Errorf("failed to insert wishlist entry: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit wishlist entries: %w", err)
	}
	return nil
}

// Clear removes all wishlist entries for the user.
func (r *wishlistRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, "DELETE FROM wishlist_entries WHERE user_id = $1", userID); err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to clear wishlist")
		return fmt.Errorf("failed to clear wishlist: %w", err)
	}
	return nil
}

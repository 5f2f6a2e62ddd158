package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"stylekart/internal/model"
)

// cartRepository implements CartRepository using PostgreSQL. Every write
// replaces the owner's full line set inside a transaction so the durable
// store and the guest store share the same full-record-rewrite semantics.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

// GetLines retrieves the user's cart lines.
func (r *cartRepository) GetLines(ctx context.Context, userID uuid.UUID) ([]model.CartLine, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT product_id, quantity FROM cart_lines WHERE user_id = $1 ORDER BY position", userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query cart lines")
		return nil, fmt.Errorf("failed to query cart lines: %w", err)
	}
	defer rows.Close()

	var lines []model.CartLine
	for rows.Next() {
		var l model.CartLine
		if err := rows.Scan(&l.ProductID, &l.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart lines: %w", err)
	}
	return lines, nil
}

// ReplaceLines rewrites the user's full cart.
func (r *cartRepository) ReplaceLines(ctx context.Context, userID uuid.UUID, lines []model.CartLine) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM cart_lines WHERE user_id = $1", userID); err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to clear cart lines")
		return fmt.Errorf("failed to clear cart lines: %w", err)
	}

	for i, l := range lines {
		_, err := tx.Exec(ctx,
			"INSERT INTO cart_lines (user_id, product_id, quantity, position) VALUES ($1, $2, $3, $4)",
			userID, l.ProductID, l.Quantity, i)
		if err != nil {
			r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to insert cart line")
			return fmt.Errorf("failed to insert cart line: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit cart lines: %w", err)
	}
	return nil
}

// Clear removes all cart lines for the user.
func (r *cartRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, "DELETE FROM cart_lines WHERE user_id = $1", userID); err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to clear cart")
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

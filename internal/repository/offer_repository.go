package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"stylekart/internal/model"
)

const offerColumns = `id, name, offer_type, rule, priority, is_active, start_date, end_date,
	usage_limit, usage_count, product_ids, category_ids, subcategory_ids, gender_ids, created_at`

// offerRepository implements OfferRepository using PostgreSQL. Rules are
// stored as JSONB in their wire shape and decoded into typed variants on read.
type offerRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOfferRepository creates a new PostgreSQL-backed offer repository.
func NewOfferRepository(pool *pgxpool.Pool, logger zerolog.Logger) OfferRepository {
	return &offerRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "offer").Logger(),
	}
}

func scanOffer(row pgx.Row) (*model.Offer, error) {
	var o model.Offer
	var ruleRaw []byte
	err := row.Scan(&o.ID, &o.Name, &o.Type, &ruleRaw, &o.Priority, &o.IsActive,
		&o.StartDate, &o.EndDate, &o.UsageLimit, &o.UsageCount,
		&o.Scope.ProductIDs, &o.Scope.CategoryIDs, &o.Scope.SubcategoryIDs, &o.Scope.GenderIDs,
		&o.CreatedAt)
	if err != nil {
		return nil, err
	}

	var doc model.RuleDoc
	if err := json.Unmarshal(ruleRaw, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal offer rule: %w", err)
	}
	rule, err := model.DecodeRule(o.Type, doc)
	if err != nil {
		return nil, fmt.Errorf("stored offer %s has invalid rule: %w", o.ID, err)
	}
	o.Rule = rule
	return &o, nil
}

// ListActiveForProduct retrieves all offers scoped to the product that are
// live at the given instant. The usage-limit filter is repeated here so dead
// offers never leave the database; the selection engine re-checks all
// eligibility anyway.
func (r *offerRepository) ListActiveForProduct(ctx context.Context, p *model.Product, now time.Time) ([]model.Offer, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM offers
		WHERE is_active
		  AND start_date <= $5 AND end_date >= $5
		  AND (usage_limit IS NULL OR usage_count < usage_limit)
		  AND ($1 = ANY(product_ids)
		    OR $2 = ANY(category_ids)
		    OR ($3::uuid IS NOT NULL AND $3 = ANY(subcategory_ids))
		    OR $4 = ANY(gender_ids))
	`, offerColumns)

	rows, err := r.pool.Query(ctx, query, p.ID, p.CategoryID, p.SubcategoryID, p.GenderID, now)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", p.ID.String()).Msg("failed to query offers for product")
		return nil, fmt.Errorf("failed to query offers for product: %w", err)
	}
	defer rows.Close()

	var offers []model.Offer
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan offer row")
			return nil, fmt.Errorf("failed to scan offer: %w", err)
		}
		offers = append(offers, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating offers: %w", err)
	}
	return offers, nil
}

// List retrieves offers with pagination.
func (r *offerRepository) List(ctx context.Context, page, limit int) ([]model.Offer, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM offers").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count offers: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM offers ORDER BY priority DESC, start_date LIMIT $1 OFFSET $2", offerColumns)

	rows, err := r.pool.Query(ctx, query, limit, (page-1)*limit)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query offers")
		return nil, 0, fmt.Errorf("failed to query offers: %w", err)
	}
	defer rows.Close()

	var offers []model.Offer
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan offer: %w", err)
		}
		offers = append(offers, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating offers: %w", err)
	}
	return offers, total, nil
}

// GetByID retrieves a single offer by its ID.
func (r *offerRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Offer, error) {
	query := fmt.Sprintf("SELECT %s FROM offers WHERE id = $1", offerColumns)

	o, err := scanOffer(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("offer_id", id.String()).Msg("failed to query offer")
		return nil, fmt.Errorf("failed to query offer: %w", err)
	}
	return o, nil
}

// Upsert inserts an offer or replaces the definition of the offer with the
// same name. Usage counters are preserved across re-imports.
func (r *offerRepository) Upsert(ctx context.Context, o *model.Offer) error {
	ruleRaw, err := o.Rule.MarshalDoc()
	if err != nil {
		return fmt.Errorf("failed to marshal offer rule: %w", err)
	}

	query := `
		INSERT INTO offers (id, name, offer_type, rule, priority, is_active, start_date, end_date,
			usage_limit, usage_count, product_ids, category_ids, subcategory_ids, gender_ids, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (name) DO UPDATE SET
			offer_type = EXCLUDED.offer_type,
			rule = EXCLUDED.rule,
			priority = EXCLUDED.priority,
			is_active = EXCLUDED.is_active,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			usage_limit = EXCLUDED.usage_limit,
			product_ids = EXCLUDED.product_ids,
			category_ids = EXCLUDED.category_ids,
			subcategory_ids = EXCLUDED.subcategory_ids,
			gender_ids = EXCLUDED.gender_ids
	`

	_, err = r.pool.Exec(ctx, query, o.ID, o.Name, o.Type, ruleRaw, o.Priority, o.IsActive,
		o.StartDate, o.EndDate, o.UsageLimit, o.UsageCount,
		o.Scope.ProductIDs, o.Scope.CategoryIDs, o.Scope.SubcategoryIDs, o.Scope.GenderIDs,
		o.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("offer", o.Name).Msg("failed to upsert offer")
		return fmt.Errorf("failed to upsert offer: %w", err)
	}
	return nil
}

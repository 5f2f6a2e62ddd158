package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"stylekart/internal/model"
)

// The three taxonomy repositories share one query pattern, replicated per
// entity the way the tables are.

type genderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewGenderRepository creates a new PostgreSQL-backed gender repository.
func NewGenderRepository(pool *pgxpool.Pool, logger zerolog.Logger) GenderRepository {
	return &genderRepository{pool: pool, logger: logger.With().Str("repository", "gender").Logger()}
}

func (r *genderRepository) List(ctx context.Context, page, limit int) ([]model.Gender, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM genders").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count genders: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		"SELECT id, name, slug, created_at FROM genders ORDER BY name LIMIT $1 OFFSET $2",
		limit, (page-1)*limit)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query genders")
		return nil, 0, fmt.Errorf("failed to query genders: %w", err)
	}
	defer rows.Close()

	var genders []model.Gender
	for rows.Next() {
		var g model.Gender
		if err := rows.Scan(&g.ID, &g.Name, &g.Slug, &g.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan gender: %w", err)
		}
		genders = append(genders, g)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating genders: %w", err)
	}
	return genders, total, nil
}

func (r *genderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Gender, error) {
	var g model.Gender
	err := r.pool.QueryRow(ctx,
		"SELECT id, name, slug, created_at FROM genders WHERE id = $1", id).
		Scan(&g.ID, &g.Name, &g.Slug, &g.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("gender_id", id.String()).Msg("failed to query gender")
		return nil, fmt.Errorf("failed to query gender: %w", err)
	}
	return &g, nil
}

func (r *genderRepository) GetBySlug(ctx context.Context, slug string) (*model.Gender, error) {
	var g model.Gender
	err := r.pool.QueryRow(ctx,
		"SELECT id, name, slug, created_at FROM genders WHERE slug = $1", slug).
		Scan(&g.ID, &g.Name, &g.Slug, &g.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query gender by slug: %w", err)
	}
	return &g, nil
}

func (r *genderRepository) Create(ctx context.Context, g *model.Gender) error {
	_, err := r.pool.Exec(ctx,
		"INSERT INTO genders (id, name, slug, created_at) VALUES ($1, $2, $3, $4)",
		g.ID, g.Name, g.Slug, g.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("slug", g.Slug).Msg("failed to insert gender")
		return fmt.Errorf("failed to insert gender: %w", err)
	}
	return nil
}

func (r *genderRepository) Update(ctx context.Context, g *model.Gender) error {
	tag, err := r.pool.Exec(ctx,
		"UPDATE genders SET name = $2, slug = $3 WHERE id = $1", g.ID, g.Name, g.Slug)
	if err != nil {
		return fmt.Errorf("failed to update gender: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrGenderNotFound
	}
	return nil
}

func (r *genderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM genders WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete gender: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrGenderNotFound
	}
	return nil
}

type categoryRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCategoryRepository creates a new PostgreSQL-backed category repository.
func NewCategoryRepository(pool *pgxpool.Pool, logger zerolog.Logger) CategoryRepository {
	return &categoryRepository{pool: pool, logger: logger.With().Str("repository", "category").Logger()}
}

func (r *categoryRepository) List(ctx context.Context, page, limit int, genderID *uuid.UUID) ([]model.Category, int, error) {
	where := ""
	args := []any{}
	if genderID != nil {
		where = " WHERE gender_id = $1"
		args = append(args, *genderID)
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM categories"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count categories: %w", err)
	}

	args = append(args, limit, (page-1)*limit)
	query := fmt.Sprintf(
		"SELECT id, gender_id, name, slug, created_at FROM categories%s ORDER BY name LIMIT $%d OFFSET $%d",
		where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query categories")
		return nil, 0, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.GenderID, &c.Name, &c.Slug, &c.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating categories: %w", err)
	}
	return categories, total, nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	var c model.Category
	err := r.pool.QueryRow(ctx,
		"SELECT id, gender_id, name, slug, created_at FROM categories WHERE id = $1", id).
		Scan(&c.ID, &c.GenderID, &c.Name, &c.Slug, &c.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query category: %w", err)
	}
	return &c, nil
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	var c model.Category
	err := r.pool.QueryRow(ctx,
		"SELECT id, gender_id, name, slug, created_at FROM categories WHERE slug = $1", slug).
		Scan(&c.ID, &c.GenderID, &c.Name, &c.Slug, &c.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query category by slug: %w", err)
	}
	return &c, nil
}

func (r *categoryRepository) Create(ctx context.Context, c *model.Category) error {
	_, err := r.pool.Exec(ctx,
		"INSERT INTO categories (id, gender_id, name, slug, created_at) VALUES ($1, $2, $3, $4, $5)",
		c.ID, c.GenderID, c.Name, c.Slug, c.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("slug", c.Slug).Msg("failed to insert category")
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}

func (r *categoryRepository) Update(ctx context.Context, c *model.Category) error {
	tag, err := r.pool.Exec(ctx,
		"UPDATE categories SET gender_id = $2, name = $3, slug = $4 WHERE id = $1",
		c.ID, c.GenderID, c.Name, c.Slug)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCategoryNotFound
	}
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCategoryNotFound
	}
	return nil
}

func (r *categoryRepository) CountByGender(ctx context.Context, genderID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM categories WHERE gender_id = $1", genderID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count categories by gender: %w", err)
	}
	return count, nil
}

type subcategoryRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewSubcategoryRepository creates a new PostgreSQL-backed subcategory repository.
func NewSubcategoryRepository(pool *pgxpool.Pool, logger zerolog.Logger) SubcategoryRepository {
	return &subcategoryRepository{pool: pool, logger: logger.With().Str("repository", "subcategory").Logger()}
}

func (r *subcategoryRepository) List(ctx context.Context, page, limit int, categoryID *uuid.UUID) ([]model.Subcategory, int, error) {
	where := ""
	args := []any{}
	if categoryID != nil {
		where = " WHERE category_id = $1"
		args = append(args, *categoryID)
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM subcategories"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count subcategories: %w", err)
	}

	args = append(args, limit, (page-1)*limit)
	query := fmt.Sprintf(
		"SELECT id, category_id, name, slug, created_at FROM subcategories%s ORDER BY name LIMIT $%d OFFSET $%d",
		where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query subcategories")
		return nil, 0, fmt.Errorf("failed to query subcategories: %w", err)
	}
	defer rows.Close()

	var subcategories []model.Subcategory
	for rows.Next() {
		var s model.Subcategory
		if err := rows.Scan(&s.ID, &s.CategoryID, &s.Name, &s.Slug, &s.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan subcategory: %w", err)
		}
		subcategories = append(subcategories, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating subcategories: %w", err)
	}
	return subcategories, total, nil
}

func (r *subcategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Subcategory, error) {
	var s model.Subcategory
	err := r.pool.QueryRow(ctx,
		"SELECT id, category_id, name, slug, created_at FROM subcategories WHERE id = $1", id).
		Scan(&s.ID, &s.CategoryID, &s.Name, &s.Slug, &s.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query subcategory: %w", err)
	}
	return &s, nil
}

func (r *subcategoryRepository) GetBySlug(ctx context.Context, slug string) (*model.Subcategory, error) {
	var s model.Subcategory
	err := r.pool.QueryRow(ctx,
		"SELECT id, category_id, name, slug, created_at FROM subcategories WHERE slug = $1", slug).
		Scan(&s.ID, &s.CategoryID, &s.Name, &s.Slug, &s.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query subcategory by slug: %w", err)
	}
	return &s, nil
}

func (r *subcategoryRepository) Create(ctx context.Context, s *model.Subcategory) error {
	_, err := r.pool.Exec(ctx,
		"INSERT INTO subcategories (id, category_id, name, slug, created_at) VALUES ($1, $2, $3, $4, $5)",
		s.ID, s.CategoryID, s.Name, s.Slug, s.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("slug", s.Slug).Msg("failed to insert subcategory")
		return fmt.Errorf("failed to insert subcategory: %w", err)
	}
	return nil
}

func (r *subcategoryRepository) Update(ctx context.Context, s *model.Subcategory) error {
	tag, err := r.pool.Exec(ctx,
		"UPDATE subcategories SET category_id = $2, name = $3, slug = $4 WHERE id = $1",
		s.ID, s.CategoryID, s.Name, s.Slug)
	if err != nil {
		return fmt.Errorf("failed to update subcategory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrSubcategoryNotFound
	}
	return nil
}

func (r *subcategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM subcategories WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete subcategory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrSubcategoryNotFound
	}
	return nil
}

func (r *subcategoryRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM subcategories WHERE category_id = $1", categoryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count subcategories by category: %w", err)
	}
	return count, nil
}

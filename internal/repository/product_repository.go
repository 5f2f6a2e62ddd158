package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"stylekart/internal/model"
)

const productColumns = `id, name, slug, sku, description, price, discount_price, stock,
	is_active, is_featured, gender_id, category_id, subcategory_id, created_at, updated_at`

// productRepository implements ProductRepository using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.SKU, &p.Description, &p.Price, &p.DiscountPrice,
		&p.Stock, &p.IsActive, &p.IsFeatured, &p.GenderID, &p.CategoryID, &p.SubcategoryID,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// productWhere builds the WHERE clause and args for the filters.
func productWhere(f model.ProductFilters) (string, []any) {
	var clauses []string
	var args []any

	add := func(clause string, arg any) {
		args = append(args, arg)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if f.GenderID != nil {
		add("gender_id = $%d", *f.GenderID)
	}
	if f.CategoryID != nil {
		add("category_id = $%d", *f.CategoryID)
	}
	if f.SubcategoryID != nil {
		add("subcategory_id = $%d", *f.SubcategoryID)
	}
	if f.Featured != nil {
		add("is_featured = $%d", *f.Featured)
	}
	if f.Active != nil {
		add("is_active = $%d", *f.Active)
	}
	if f.Search != "" {
		add("name ILIKE '%%' || $%d || '%%'", f.Search)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// List retrieves products matching the filters with pagination.
func (r *productRepository) List(ctx context.Context, page, limit int, f model.ProductFilters) ([]model.Product, int, error) {
	where, args := productWhere(f)

	var total int
	countQuery := "SELECT COUNT(*) FROM products" + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		r.logger.Error().Err(err).Msg("failed to count products")
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	offset := (page - 1) * limit
	args = append(args, limit, offset)
	query := fmt.Sprintf("SELECT %s FROM products%s ORDER BY name LIMIT $%d OFFSET $%d",
		productColumns, where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Int("page", page).Int("limit", limit).Msg("failed to query products")
		return nil, 0, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, 0, fmt.Errorf("error iterating products: %w", err)
	}

	return products, total, nil
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE id = $1", productColumns)

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("product_id", id.String()).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return p, nil
}

// GetBySlug retrieves a single product by its slug.
func (r *productRepository) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE slug = $1", productColumns)

	p, err := scanProduct(r.pool.QueryRow(ctx, query, slug))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("slug", slug).Msg("failed to query product by slug")
		return nil, fmt.Errorf("failed to query product by slug: %w", err)
	}

	return p, nil
}

// SlugExists reports whether another product already uses the slug.
func (r *productRepository) SlugExists(ctx context.Context, slug string, exclude uuid.UUID) (bool, error) {
	query := "SELECT EXISTS(SELECT 1 FROM products WHERE slug = $1 AND id <> $2)"

	var exists bool
	if err := r.pool.QueryRow(ctx, query, slug, exclude).Scan(&exists); err != nil {
		r.logger.Error().Err(err).Str("slug", slug).Msg("failed to check product slug")
		return false, fmt.Errorf("failed to check product slug: %w", err)
	}
	return exists, nil
}

// Create inserts a new product.
func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
		INSERT INTO products (id, name, slug, sku, description, price, discount_price, stock,
			is_active, is_featured, gender_id, category_id, subcategory_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.pool.Exec(ctx, query, p.ID, p.Name, p.Slug, p.SKU, p.Description, p.Price,
		p.DiscountPrice, p.Stock, p.IsActive, p.IsFeatured, p.GenderID, p.CategoryID,
		p.SubcategoryID, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", p.ID.String()).Msg("failed to insert product")
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

// Update rewrites an existing product.
func (r *productRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
		UPDATE products
		SET name = $2, slug = $3, sku = $4, description = $5, price = $6, discount_price = $7,
			stock = $8, is_active = $9, is_featured = $10, gender_id = $11, category_id = $12,
			subcategory_id = $13, updated_at = $14
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, p.ID, p.Name, p.Slug, p.SKU, p.Description, p.Price,
		p.DiscountPrice, p.Stock, p.IsActive, p.IsFeatured, p.GenderID, p.CategoryID,
		p.SubcategoryID, p.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", p.ID.String()).Msg("failed to update product")
		return fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}
	return nil
}

// Delete removes a product.
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}
	return nil
}

// CountBySubcategory counts products referencing a subcategory.
func (r *productRepository) CountBySubcategory(ctx context.Context, subcategoryID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM products WHERE subcategory_id = $1", subcategoryID).Scan(&count)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to count products by subcategory")
		return 0, fmt.Errorf("failed to count products by subcategory: %w", err)
	}
	return count, nil
}

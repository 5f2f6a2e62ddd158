package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	createSchema(t, pool)

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// createSchema creates the database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS genders (
			id UUID PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			slug VARCHAR(100) NOT NULL UNIQUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS categories (
			id UUID PRIMARY KEY,
			gender_id UUID NOT NULL REFERENCES genders(id),
			name VARCHAR(100) NOT NULL,
			slug VARCHAR(100) NOT NULL UNIQUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS subcategories (
			id UUID PRIMARY KEY,
			category_id UUID NOT NULL REFERENCES categories(id),
			name VARCHAR(100) NOT NULL,
			slug VARCHAR(100) NOT NULL UNIQUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS products (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			slug VARCHAR(255) NOT NULL UNIQUE,
			sku VARCHAR(100) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price DOUBLE PRECISION NOT NULL CHECK (price > 0),
			discount_price DOUBLE PRECISION,
			stock INTEGER NOT NULL CHECK (stock >= 0),
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			is_featured BOOLEAN NOT NULL DEFAULT FALSE,
			gender_id UUID NOT NULL REFERENCES genders(id),
			category_id UUID NOT NULL REFERENCES categories(id),
			subcategory_id UUID REFERENCES subcategories(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email VARCHAR(255) NOT NULL UNIQUE,
			name VARCHAR(255) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS cart_lines (
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			product_id UUID NOT NULL,
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			position INTEGER NOT NULL,
			PRIMARY KEY (user_id, product_id)
		);

		CREATE TABLE IF NOT EXISTS wishlist_entries (
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			product_id UUID NOT NULL,
			added_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, product_id)
		);

		CREATE TABLE IF NOT EXISTS offers (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			offer_type VARCHAR(50) NOT NULL,
			rule JSONB NOT NULL,
			priority INTEGER NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			start_date TIMESTAMPTZ NOT NULL,
			end_date TIMESTAMPTZ NOT NULL,
			usage_limit INTEGER,
			usage_count INTEGER NOT NULL DEFAULT 0,
			product_ids UUID[],
			category_ids UUID[],
			subcategory_ids UUID[],
			gender_ids UUID[],
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_products_gender_id ON products(gender_id);
		CREATE INDEX IF NOT EXISTS idx_products_category_id ON products(category_id);
		CREATE INDEX IF NOT EXISTS idx_cart_lines_user_id ON cart_lines(user_id);
		CREATE INDEX IF NOT EXISTS idx_wishlist_entries_user_id ON wishlist_entries(user_id);
	`

	_, err := pool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// Taxonomy holds the seeded taxonomy row ids so tests can hang products off
// them without re-querying.
type Taxonomy struct {
	GenderID      uuid.UUID
	CategoryID    uuid.UUID
	SubcategoryID uuid.UUID
}

// SeedTaxonomy inserts one gender/category/subcategory chain.
func SeedTaxonomy(t *testing.T, pool *pgxpool.Pool) Taxonomy {
	t.Helper()

	ctx := context.Background()
	tax := Taxonomy{
		GenderID:      uuid.New(),
		CategoryID:    uuid.New(),
		SubcategoryID: uuid.New(),
	}

	if _, err := pool.Exec(ctx,
		"INSERT INTO genders (id, name, slug) VALUES ($1, $2, $3)",
		tax.GenderID, "Women", "women-"+tax.GenderID.String()[:8]); err != nil {
		t.Fatalf("failed to seed gender: %v", err)
	}
	if _, err := pool.Exec(ctx,
		"INSERT INTO categories (id, gender_id, name, slug) VALUES ($1, $2, $3, $4)",
		tax.CategoryID, tax.GenderID, "Tops", "tops-"+tax.CategoryID.String()[:8]); err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	if _, err := pool.Exec(ctx,
		"INSERT INTO subcategories (id, category_id, name, slug) VALUES ($1, $2, $3, $4)",
		tax.SubcategoryID, tax.CategoryID, "T-Shirts", "t-shirts-"+tax.SubcategoryID.String()[:8]); err != nil {
		t.Fatalf("failed to seed subcategory: %v", err)
	}
	return tax
}

// SeedUser inserts one user row and returns its id.
func SeedUser(t *testing.T, pool *pgxpool.Pool, email string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		"INSERT INTO users (id, email, name, password_hash) VALUES ($1, $2, $3, $4)",
		id, email, "Test Shopper", "x")
	if err != nil {
		t.Fatalf("failed to seed user %s: %v", email, err)
	}
	return id
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{
		"cart_lines", "wishlist_entries", "offers", "products",
		"subcategories", "categories", "genders", "users",
	}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}

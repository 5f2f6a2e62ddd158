package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Cache     CacheConfig
	Guest     GuestConfig
	Logger    LoggerConfig
	Auth      AuthConfig
	OfferFeed OfferFeedConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// CacheConfig holds the valkey/redis cache store configuration. When Address
// is empty the service falls back to an in-process cache.
type CacheConfig struct {
	Address     string
	Username    string
	Password    string
	DB          int
	TaxonomyTTL time.Duration
	ProductTTL  time.Duration
}

// GuestConfig holds guest session settings.
type GuestConfig struct {
	TTL time.Duration
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AuthConfig holds authentication configuration for admin write endpoints.
type AuthConfig struct {
	APIKey string
}

// OfferFeedConfig holds the offer feed import configuration. Feed files are
// JSON offer-definition documents, loaded from S3 when enabled there or from
// the local filesystem otherwise.
type OfferFeedConfig struct {
	Enabled   bool
	S3Enabled bool
	Bucket    string
	Region    string
	Keys      []string
	LocalPath string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "stylekart"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 5),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
		},
		Cache: CacheConfig{
			Address:     getEnv("CACHE_ADDRESS", ""),
			Username:    getEnv("CACHE_USERNAME", ""),
			Password:    getEnv("CACHE_PASSWORD", ""),
			DB:          getEnvAsInt("CACHE_DB", 0),
			TaxonomyTTL: time.Duration(getEnvAsInt("CACHE_TAXONOMY_TTL", 3600)) * time.Second,
			ProductTTL:  time.Duration(getEnvAsInt("CACHE_PRODUCT_TTL", 1800)) * time.Second,
		},
		Guest: GuestConfig{
			TTL: time.Duration(getEnvAsInt("GUEST_SESSION_TTL", 86400)) * time.Second,
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			APIKey: getEnv("API_KEY", ""),
		},
		OfferFeed: OfferFeedConfig{
			Enabled:   getEnvAsBool("OFFER_FEED_ENABLED", false),
			S3Enabled: getEnvAsBool("OFFER_FEED_S3_ENABLED", false),
			Bucket:    getEnv("OFFER_FEED_S3_BUCKET", ""),
			Region:    getEnv("OFFER_FEED_S3_REGION", "us-east-1"),
			Keys:      splitCSV(getEnv("OFFER_FEED_KEYS", "data/offers/offers.json")),
			LocalPath: getEnv("OFFER_FEED_LOCAL_PATH", "data/offers"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Database.Port)
	}

	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Database.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.Database.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.Database.MinConnections > c.Database.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	if c.Auth.APIKey == "" {
		return fmt.Errorf("API key is required")
	}

	if c.Cache.TaxonomyTTL <= 0 || c.Cache.ProductTTL <= 0 {
		return fmt.Errorf("cache TTLs must be positive")
	}

	if c.Guest.TTL <= 0 {
		return fmt.Errorf("guest session TTL must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.OfferFeed.Enabled && c.OfferFeed.S3Enabled {
		if c.OfferFeed.Bucket == "" {
			return fmt.Errorf("offer feed S3 bucket is required when S3 is enabled")
		}
		if c.OfferFeed.Region == "" {
			return fmt.Errorf("offer feed S3 region is required when S3 is enabled")
		}
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// splitCSV splits a comma-separated env value, dropping empty parts.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

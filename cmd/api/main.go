package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"stylekart/internal/cache"
	"stylekart/internal/config"
	"stylekart/internal/database"
	"stylekart/internal/handler"
	"stylekart/internal/metrics"
	"stylekart/internal/offer"
	"stylekart/internal/pricing"
	"stylekart/internal/repository"
	"stylekart/internal/router"
	"stylekart/internal/service"
	"stylekart/internal/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting stylekart API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	recorder := metrics.NewRecorder(nil)

	// Initialize the cache store. Without a configured address the service
	// runs on an in-process cache; guest sessions then do not survive a
	// restart, which is acceptable for development.
	var kv cache.Store
	if cfg.Cache.Address != "" {
		kv, err = cache.NewValkey(cache.ValkeyConfig{
			Address:  cfg.Cache.Address,
			Username: cfg.Cache.Username,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize cache: %w", err)
		}
		logger.Info().Str("address", cfg.Cache.Address).Msg("connected to valkey cache")
	} else {
		kv = cache.NewMemory()
		logger.Info().Msg("using in-process cache (no cache address configured)")
	}
	defer kv.Close()

	// Catalogue caching fails open: a cache outage degrades to database
	// reads. Guest sessions use the raw store because it is authoritative
	// for them.
	catalogueCache := cache.NewFailOpen(kv, logger, recorder)
	sessions := session.NewStore(kv, cfg.Guest.TTL, logger)

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	genderRepo := repository.NewGenderRepository(pool, logger)
	categoryRepo := repository.NewCategoryRepository(pool, logger)
	subcategoryRepo := repository.NewSubcategoryRepository(pool, logger)
	offerRepo := repository.NewOfferRepository(pool, logger)
	cartRepo := repository.NewCartRepository(pool, logger)
	wishlistRepo := repository.NewWishlistRepository(pool, logger)
	userRepo := repository.NewUserRepository(pool, logger)

	// Import the offer feed at startup when enabled, from S3 with a local
	// file fallback.
	if cfg.OfferFeed.Enabled {
		if err := importOfferFeed(ctx, cfg.OfferFeed, offerRepo, logger); err != nil {
			return fmt.Errorf("failed to import offer feed: %w", err)
		}
	}

	// Initialize services
	productService := service.NewProductService(productRepo, catalogueCache, cfg.Cache.ProductTTL, logger)
	genderService := service.NewGenderService(genderRepo, categoryRepo, catalogueCache, cfg.Cache.TaxonomyTTL, logger)
	categoryService := service.NewCategoryService(categoryRepo, subcategoryRepo, catalogueCache, cfg.Cache.TaxonomyTTL, logger)
	subcategoryService := service.NewSubcategoryService(subcategoryRepo, productRepo, catalogueCache, cfg.Cache.TaxonomyTTL, logger)
	offerService := service.NewOfferService(offerRepo, catalogueCache, cfg.Cache.ProductTTL, logger)

	calculator := pricing.NewCalculator(productService, offerService, logger)
	cartService := service.NewCartService(cartRepo, sessions, productService, calculator, logger)
	wishlistService := service.NewWishlistService(wishlistRepo, sessions, productService, logger)
	mergeService := service.NewMergeService(cartService, wishlistService, sessions, logger)
	userService := service.NewUserService(userRepo, mergeService, logger)

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(productService, logger)
	taxonomyHandler := handler.NewTaxonomyHandler(genderService, categoryService, subcategoryService, logger)
	offerHandler := handler.NewOfferHandler(offerService, productService, logger)
	cartHandler := handler.NewCartHandler(cartService, logger)
	wishlistHandler := handler.NewWishlistHandler(wishlistService, logger)
	userHandler := handler.NewUserHandler(userService, logger)

	// Initialize router
	mux := router.New(productHandler, taxonomyHandler, offerHandler, cartHandler,
		wishlistHandler, userHandler, recorder, cfg.Auth.APIKey, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// importOfferFeed selects the feed loader and runs the startup import. When
// S3 is enabled but cannot be initialised, the import falls back to local
// feed files rather than failing startup.
func importOfferFeed(ctx context.Context, cfg config.OfferFeedConfig,
	offerRepo repository.OfferRepository, logger zerolog.Logger) error {
	var loader offer.Loader
	paths := cfg.Keys

	if cfg.S3Enabled {
		s3Loader, err := offer.NewS3Loader(ctx, cfg.Bucket, cfg.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 offer feed loader, falling back to local files")
		} else {
			loader = s3Loader
		}
	}
	if loader == nil {
		loader = offer.NewFileLoader(logger)
		paths = make([]string, 0, len(cfg.Keys))
		for _, key := range cfg.Keys {
			paths = append(paths, filepath.Join(cfg.LocalPath, filepath.Base(key)))
		}
	}

	importer := offer.NewImporter(loader, offerRepo, logger)
	imported, err := importer.Import(ctx, paths)
	if err != nil {
		return err
	}
	logger.Info().Int("offers", imported).Msg("offer feed imported")
	return nil
}

package offer

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"stylekart/internal/repository"
)

// Importer loads offer feed files and upserts their definitions into the
// offer store. Runs at startup when the feed is enabled; re-imports are
// idempotent per offer name.
type Importer struct {
	loader Loader
	repo   repository.OfferRepository
	logger zerolog.Logger
}

// NewImporter creates a new offer feed importer.
func NewImporter(loader Loader, repo repository.OfferRepository, logger zerolog.Logger) *Importer {
	return &Importer{
		loader: loader,
		repo:   repo,
		logger: logger.With().Str("component", "offer-importer").Logger(),
	}
}

// Import loads every feed file and upserts its offers. A malformed
// definition skips that offer, not the whole feed; an unreadable file fails
// the import.
func (i *Importer) Import(ctx context.Context, paths []string) (int, error) {
	imported := 0
	for _, path := range paths {
		defs, err := i.loader.Load(ctx, path)
		if err != nil {
			return imported, fmt.Errorf("failed to load offer feed %s: %w", path, err)
		}

		for _, def := range defs {
			o, err := def.ToOffer()
			if err != nil {
				i.logger.Warn().Err(err).Str("feed", path).Msg("skipping invalid offer definition")
				continue
			}
			if err := i.repo.Upsert(ctx, o); err != nil {
				i.logger.Error().Err(err).Str("offer", o.Name).Msg("failed to upsert offer")
				return imported, fmt.Errorf("failed to upsert offer %q: %w", o.Name, err)
			}
			imported++
		}
	}

	i.logger.Info().Int("imported", imported).Int("feeds", len(paths)).Msg("offer feed import completed")
	return imported, nil
}

package offer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"stylekart/internal/model"
)

// Definition is the wire shape of one offer in a feed document. Feed files
// are JSON arrays of definitions.
type Definition struct {
	Name           string          `json:"name"`
	OfferType      model.OfferType `json:"offerType"`
	Rule           model.RuleDoc   `json:"rule"`
	Priority       int             `json:"priority"`
	IsActive       bool            `json:"isActive"`
	StartDate      time.Time       `json:"startDate"`
	EndDate        time.Time       `json:"endDate"`
	UsageLimit     *int            `json:"usageLimit,omitempty"`
	ProductIDs     []uuid.UUID     `json:"productIds,omitempty"`
	CategoryIDs    []uuid.UUID     `json:"categoryIds,omitempty"`
	SubcategoryIDs []uuid.UUID     `json:"subcategoryIds,omitempty"`
	GenderIDs      []uuid.UUID     `json:"genderIds,omitempty"`
}

// ToOffer validates a definition and converts it to a domain offer.
func (d Definition) ToOffer() (*model.Offer, error) {
	if d.Name == "" {
		return nil, fmt.Errorf("offer definition missing name")
	}
	if !d.EndDate.After(d.StartDate) {
		return nil, fmt.Errorf("offer %q: endDate must be after startDate", d.Name)
	}
	rule, err := model.DecodeRule(d.OfferType, d.Rule)
	if err != nil {
		return nil, fmt.Errorf("offer %q: %w", d.Name, err)
	}
	return &model.Offer{
		ID:         uuid.New(),
		Name:       d.Name,
		Type:       d.OfferType,
		Rule:       rule,
		Priority:   d.Priority,
		IsActive:   d.IsActive,
		StartDate:  d.StartDate,
		EndDate:    d.EndDate,
		UsageLimit: d.UsageLimit,
		Scope: model.OfferScope{
			ProductIDs:     d.ProductIDs,
			CategoryIDs:    d.CategoryIDs,
			SubcategoryIDs: d.SubcategoryIDs,
			GenderIDs:      d.GenderIDs,
		},
		CreatedAt: time.Now(),
	}, nil
}

// Loader defines the interface for loading offer feed files.
type Loader interface {
	// Load reads one feed file and returns its offer definitions.
	Load(ctx context.Context, path string) ([]Definition, error)
}

// fileLoader implements Loader for local JSON feed files.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based offer feed loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "offer-loader").Logger(),
	}
}

// Load reads a JSON offer feed file.
func (l *fileLoader) Load(ctx context.Context, filePath string) ([]Definition, error) {
	l.logger.Info().Str("file", filePath).Msg("loading offer feed file")

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open offer feed file")
		return nil, fmt.Errorf("failed to open offer feed file %s: %w", filePath, err)
	}
	defer file.Close()

	var defs []Definition
	if err := json.NewDecoder(file).Decode(&defs); err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to decode offer feed file")
		return nil, fmt.Errorf("failed to decode offer feed file %s: %w", filePath, err)
	}

	l.logger.Info().
		Str("file", filePath).
		Int("offers_loaded", len(defs)).
		Msg("offer feed file loaded successfully")

	return defs, nil
}

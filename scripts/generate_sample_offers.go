package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// generateSampleOffers writes a sample offer feed file covering every rule
// type, for local development with OFFER_FEED_ENABLED=true.
func main() {
	dataDir := "data/offers"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	now := time.Now().UTC().Truncate(time.Hour)
	intPtr := func(v int) *int { return &v }
	floatPtr := func(v float64) *float64 { return &v }

	tshirtCategory := uuid.MustParse("3f2d7a44-9b1c-4d5e-8f6a-1b2c3d4e5f60")
	heroProduct := uuid.MustParse("8a1b2c3d-4e5f-6071-8293-a4b5c6d7e8f9")

	offers := []map[string]any{
		{
			"name":      "Buy 2 Get 1 Tees",
			"offerType": "BUY_X_GET_Y",
			"rule": map[string]any{
				"buyQuantity": intPtr(2),
				"getQuantity": intPtr(1),
			},
			"priority":    10,
			"isActive":    true,
			"startDate":   now.AddDate(0, 0, -7),
			"endDate":     now.AddDate(0, 1, 0),
			"categoryIds": []uuid.UUID{tshirtCategory},
		},
		{
			"name":      "Tee Bundle of 3",
			"offerType": "BUNDLE_DISCOUNT",
			"rule": map[string]any{
				"minQuantity": intPtr(3),
				"bundlePrice": floatPtr(120),
			},
			"priority":    5,
			"isActive":    true,
			"startDate":   now.AddDate(0, 0, -7),
			"endDate":     now.AddDate(0, 1, 0),
			"categoryIds": []uuid.UUID{tshirtCategory},
		},
		{
			"name":      "25 Percent Off Hero Product",
			"offerType": "PERCENTAGE_OFF",
			"rule": map[string]any{
				"discountPercentage": floatPtr(25),
				"minQuantity":        intPtr(1),
			},
			"priority":   20,
			"isActive":   true,
			"startDate":  now.AddDate(0, 0, -1),
			"endDate":    now.AddDate(0, 0, 14),
			"usageLimit": intPtr(1000),
			"productIds": []uuid.UUID{heroProduct},
		},
		{
			"name":      "Flat 10 Off Hero Product",
			"offerType": "FIXED_AMOUNT_OFF",
			"rule": map[string]any{
				"discountAmount": floatPtr(10),
				"minQuantity":    intPtr(1),
			},
			"priority":   1,
			"isActive":   true,
			"startDate":  now.AddDate(0, 0, -1),
			"endDate":    now.AddDate(0, 0, 14),
			"productIds": []uuid.UUID{heroProduct},
		},
	}

	filePath := filepath.Join(dataDir, "offers.json")
	file, err := os.Create(filePath)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", filePath, err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(offers); err != nil {
		log.Fatalf("Failed to write %s: %v", filePath, err)
	}

	fmt.Printf("Created %s with %d offers\n", filePath, len(offers))
}

package model

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestEffectivePrice(t *testing.T) {
	p := Product{Price: 100}
	assert.Equal(t, 100.0, p.EffectivePrice())

	p.DiscountPrice = floatPtr(80)
	assert.Equal(t, 80.0, p.EffectivePrice())
}

func TestNormalisePage(t *testing.T) {
	tests := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{0, 0, 1, 10},
		{-3, -5, 1, 10},
		{2, 25, 2, 25},
		{1, 500, 1, 100},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("page=%d limit=%d", tt.page, tt.limit), func(t *testing.T) {
			page, limit := NormalisePage(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 10, 45)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, 45, p.Total)
	assert.Equal(t, 5, p.TotalPages)
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeNotFound, ErrorCode(ErrProductNotFound))
	assert.Equal(t, ErrCodeConflict, ErrorCode(ErrWishlistDuplicate))
	assert.Equal(t, ErrCodeInvalidQuantity, ErrorCode(ErrInvalidQuantity))
	assert.Equal(t, ErrCodeInternalError, ErrorCode(assert.AnError))

	stock := &StockError{ProductID: uuid.New(), Requested: 5, Available: 2}
	assert.Equal(t, ErrCodeInsufficientStock, ErrorCode(stock))
	assert.Contains(t, stock.Error(), "requested 5")

	wrapped := fmt.Errorf("add item: %w", stock)
	assert.Equal(t, ErrCodeInsufficientStock, ErrorCode(wrapped))
}

func TestIsNotFoundIsConflict(t *testing.T) {
	assert.True(t, IsNotFound(ErrCartItemNotFound))
	assert.False(t, IsNotFound(ErrWishlistDuplicate))
	assert.True(t, IsConflict(ErrGenderHasCategories))
	assert.False(t, IsConflict(assert.AnError))
}

package service

import (
	"testing"

	"storefront-service/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestResolveUnitPricePerSizeTableWins(t *testing.T) {
	p := &model.Product{
		Price: 100,
		Sizes: []string{"250g", "500g", "1kg"},
		SizePricing: map[string]float64{
			"250g": 60,
			"500g": 110,
			"1kg":  200,
		},
	}

	for size, want := range p.SizePricing {
		got, ok := ResolveUnitPrice(p, size)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestResolveUnitPriceFlatFallback(t *testing.T) {
	p := &model.Product{Price: 49.5, Sizes: []string{"S", "M", "L"}}

	for _, size := range p.Sizes {
		got, ok := ResolveUnitPrice(p, size)
		assert.True(t, ok)
		assert.Equal(t, 49.5, got)
	}

	// size missing from a partial table also falls back to base price
	p.SizePricing = map[string]float64{"S": 40}
	got, ok := ResolveUnitPrice(p, "L")
	assert.True(t, ok)
	assert.Equal(t, 49.5, got)
}

func TestResolveUnitPriceMissingProduct(t *testing.T) {
	_, ok := ResolveUnitPrice(nil, "M")
	assert.False(t, ok)
}

func TestEffectiveUnitPriceAppliesDiscount(t *testing.T) {
	p := &model.Product{Price: 200, Discount: 25}
	got, ok := EffectiveUnitPrice(p, "M")
	assert.True(t, ok)
	assert.Equal(t, 150.0, got)

	// zero discount is the default
	p.Discount = 0
	got, _ = EffectiveUnitPrice(p, "M")
	assert.Equal(t, 200.0, got)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.67, Round2(5.0/3.0))
	assert.Equal(t, 0.3, Round2(0.1+0.2))
	assert.Equal(t, 0.0, Round2(0))
}

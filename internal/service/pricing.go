package service

import (
	"math"

	"storefront-service/internal/model"
)

// ResolveUnitPrice determines the effective unit price for a product size.
// Per-size prices win over the flat base price; a product with sizes but no
// size table prices every size at the base price. The second return is false
// only when there is no product to price at all, callers must treat that line
// as unpriceable rather than zero.
func ResolveUnitPrice(p *model.Product, size string) (float64, bool) {
	if p == nil {
		return 0, false
	}
	if price, ok := p.SizePricing[size]; ok {
		return price, true
	}
	return p.Price, true
}

// EffectiveUnitPrice applies the product's percent discount to the resolved
// unit price. No rounding here; totals round at the display boundary.
func EffectiveUnitPrice(p *model.Product, size string) (float64, bool) {
	unit, ok := ResolveUnitPrice(p, size)
	if !ok {
		return 0, false
	}
	return unit * (1 - p.Discount/100), true
}

// Round2 rounds to two decimal places for currency display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

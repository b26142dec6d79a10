package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Sergiotsk/TecFlow/internal/model"
)

// ResolveMarkup returns the effective markup percentage for a supplier:
// the per-supplier override when one exists (trim + case-insensitive key
// match), otherwise the default. An empty supplier name always resolves to
// the default — no per-supplier entry can exist for an empty key.
func ResolveMarkup(supplier string, settings model.MarginSettings) decimal.Decimal {
	want := strings.ToLower(strings.TrimSpace(supplier))
	if want == "" {
		return settings.Default
	}
	for name, pct := range settings.Suppliers {
		if strings.ToLower(strings.TrimSpace(name)) == want {
			return pct
		}
	}
	return settings.Default
}

// SalePrice derives the sale price from a cost and a markup percentage:
// cost × (1 + markup/100).
func SalePrice(cost, markup decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Add(markup.Div(decimal.NewFromInt(100)))
	return cost.Mul(factor)
}

package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Sergiotsk/TecFlow/internal/model"
)

func marginSettings(def int64, suppliers map[string]int64) model.MarginSettings {
	m := model.MarginSettings{
		Default:   decimal.NewFromInt(def),
		Suppliers: map[string]decimal.Decimal{},
	}
	for k, v := range suppliers {
		m.Suppliers[k] = decimal.NewFromInt(v)
	}
	return m
}

func TestResolveMarkup_SupplierMatchIsCaseAndSpaceInsensitive(t *testing.T) {
	settings := marginSettings(30, map[string]int64{"acme": 15})

	assert.True(t, ResolveMarkup("  ACME ", settings).Equal(decimal.NewFromInt(15)))
	assert.True(t, ResolveMarkup("acme", settings).Equal(decimal.NewFromInt(15)))
	assert.True(t, ResolveMarkup("Acme", settings).Equal(decimal.NewFromInt(15)))
}

func TestResolveMarkup_FallsBackToDefault(t *testing.T) {
	settings := marginSettings(30, map[string]int64{"acme": 15})

	assert.True(t, ResolveMarkup("otro", settings).Equal(decimal.NewFromInt(30)))
	assert.True(t, ResolveMarkup("", settings).Equal(decimal.NewFromInt(30)))
}

func TestSalePrice(t *testing.T) {
	cost := decimal.NewFromInt(1000)
	assert.True(t, SalePrice(cost, decimal.NewFromInt(20)).Equal(decimal.NewFromInt(1200)))
	assert.True(t, SalePrice(cost, decimal.Zero).Equal(cost))
	assert.True(t, SalePrice(decimal.NewFromInt(50000), decimal.NewFromInt(30)).Equal(decimal.NewFromInt(65000)))
}

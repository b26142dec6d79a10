package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestQuoteTotals(t *testing.T) {
	q := QuoteData{
		Items: []LineItem{
			{Quantity: 2, UnitPrice: decimal.NewFromInt(5000)},
			{Quantity: 1, UnitPrice: decimal.RequireFromString("65000.50")},
		},
		TaxRate: decimal.NewFromInt(21),
	}

	assert.True(t, q.Subtotal().Equal(decimal.RequireFromString("75000.50")))
	// 21% of 75000.50 = 15750.105, rounded to cents.
	assert.True(t, q.TaxAmount().Equal(decimal.RequireFromString("15750.11")))
	assert.True(t, q.Total().Equal(decimal.RequireFromString("90750.61")))
}

func TestQuoteTotals_NoTax(t *testing.T) {
	q := QuoteData{Items: []LineItem{{Quantity: 1, UnitPrice: decimal.NewFromInt(100)}}}
	assert.True(t, q.TaxAmount().IsZero())
	assert.True(t, q.Total().Equal(decimal.NewFromInt(100)))
}

func TestLineItemFromProduct_DetachedCopy(t *testing.T) {
	p := Product{
		ID: "p1", Type: ItemMaterial, Description: "SSD 240GB",
		UnitPrice: decimal.NewFromInt(65000),
	}

	li := LineItemFromProduct("li1", p, 0)
	assert.Equal(t, "li1", li.ID)
	assert.Equal(t, 1, li.Quantity) // clamped
	assert.Equal(t, "SSD 240GB", li.Description)

	// Later catalog changes must not reach the line item.
	p.Description = "otra cosa"
	assert.Equal(t, "SSD 240GB", li.Description)
}

func TestMarginSettings_SupplierKeyAndClone(t *testing.T) {
	m := MarginSettings{
		Default:   decimal.NewFromInt(30),
		Suppliers: map[string]decimal.Decimal{"ACME": decimal.NewFromInt(15)},
	}

	assert.Equal(t, "ACME", m.SupplierKey(" acme "))
	assert.Equal(t, "", m.SupplierKey("otro"))

	clone := m.Clone()
	clone.Suppliers["Nuevo"] = decimal.NewFromInt(10)
	assert.Len(t, m.Suppliers, 1)
}

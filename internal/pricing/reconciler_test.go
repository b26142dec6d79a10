package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sergiotsk/TecFlow/internal/model"
)

func TestReconcile_NewProductFromEmptyCatalog(t *testing.T) {
	cost, err := ParsePrice("50.000")
	require.NoError(t, err)

	batch := []model.RawRecord{{Description: "SSD 240GB", Cost: cost, Code: "A1"}}
	settings := marginSettings(30, nil)
	now := time.Now()

	res := Reconcile(batch, "ACME", "Computación", nil, settings, now)

	assert.Equal(t, 1, res.Added)
	assert.Equal(t, 0, res.Updated)
	assert.Equal(t, 0, res.Unchanged)
	require.Len(t, res.Catalog, 1)

	p := res.Catalog[0]
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, model.ItemMaterial, p.Type)
	assert.Equal(t, "Computación", p.Category)
	assert.Equal(t, "SSD 240GB", p.Description)
	assert.Equal(t, "A1", p.Code)
	assert.Equal(t, "ACME", p.Supplier)
	assert.True(t, p.CostPrice.Equal(decimal.NewFromInt(50000)), p.CostPrice.String())
	assert.True(t, p.UnitPrice.Equal(decimal.NewFromInt(65000)), p.UnitPrice.String())
	require.NotNil(t, p.LastUpdated)
	assert.True(t, p.LastUpdated.Equal(now))
}

func TestReconcile_SecondRunIsUnchanged(t *testing.T) {
	batch := []model.RawRecord{{Description: "SSD 240GB", Cost: decimal.NewFromInt(50000), Code: "A1"}}
	settings := marginSettings(30, nil)

	first := Reconcile(batch, "ACME", "Computación", nil, settings, time.Now())
	require.Equal(t, 1, first.Added)

	stamp := *first.Catalog[0].LastUpdated
	second := Reconcile(batch, "ACME", "Computación", first.Catalog, settings, time.Now().Add(time.Hour))

	assert.Equal(t, 0, second.Added)
	assert.Equal(t, 0, second.Updated)
	assert.Equal(t, 1, second.Unchanged)
	require.Len(t, second.Catalog, 1)
	// An unchanged record keeps its original stamp.
	assert.True(t, second.Catalog[0].LastUpdated.Equal(stamp))
}

func TestReconcile_CostChangeUpdatesBothPrices(t *testing.T) {
	settings := marginSettings(30, nil)
	first := Reconcile(
		[]model.RawRecord{{Description: "SSD 240GB", Cost: decimal.NewFromInt(50000), Code: "A1"}},
		"ACME", "Computación", nil, settings, time.Now())

	later := time.Now().Add(time.Hour)
	second := Reconcile(
		[]model.RawRecord{{Description: "SSD 240GB", Cost: decimal.NewFromInt(60000), Code: "A1"}},
		"ACME", "Computación", first.Catalog, settings, later)

	assert.Equal(t, 0, second.Added)
	assert.Equal(t, 1, second.Updated)
	require.Len(t, second.Catalog, 1)
	p := second.Catalog[0]
	assert.True(t, p.CostPrice.Equal(decimal.NewFromInt(60000)))
	assert.True(t, p.UnitPrice.Equal(decimal.NewFromInt(78000)))
	assert.True(t, p.LastUpdated.Equal(later))
}

func TestReconcile_SubCentCostDriftIsUnchanged(t *testing.T) {
	settings := marginSettings(30, nil)
	first := Reconcile(
		[]model.RawRecord{{Description: "Cable", Cost: decimal.RequireFromString("100.00"), Code: "C1"}},
		"ACME", "Cables", nil, settings, time.Now())

	second := Reconcile(
		[]model.RawRecord{{Description: "Cable", Cost: decimal.RequireFromString("100.005"), Code: "C1"}},
		"ACME", "Cables", first.Catalog, settings, time.Now())

	assert.Equal(t, 1, second.Unchanged)
	assert.Equal(t, 0, second.Updated)
	// The stored cost stays at the original value.
	assert.True(t, second.Catalog[0].CostPrice.Equal(decimal.RequireFromString("100.00")))
}

func TestReconcile_MatchNeedsCodeAndSupplier(t *testing.T) {
	settings := marginSettings(30, nil)
	seed := Reconcile(
		[]model.RawRecord{{Description: "SSD 240GB", Cost: decimal.NewFromInt(50000), Code: "A1"}},
		"ACME", "Computación", nil, settings, time.Now())

	// Same code, different supplier: always a new product.
	res := Reconcile(
		[]model.RawRecord{{Description: "SSD 240GB", Cost: decimal.NewFromInt(48000), Code: "A1"}},
		"Distribuidora Sur", "Computación", seed.Catalog, settings, time.Now())

	assert.Equal(t, 1, res.Added)
	assert.Equal(t, 0, res.Updated)
	assert.Len(t, res.Catalog, 2)
}

func TestReconcile_EmptyCodeNeverMatches(t *testing.T) {
	settings := marginSettings(30, nil)
	batch := []model.RawRecord{{Description: "Tornillo", Cost: decimal.NewFromInt(10)}}

	first := Reconcile(batch, "ACME", "Ferretería", nil, settings, time.Now())
	second := Reconcile(batch, "ACME", "Ferretería", first.Catalog, settings, time.Now())

	// Codeless records always append, even with an identical row present.
	assert.Equal(t, 1, second.Added)
	assert.Len(t, second.Catalog, 2)
}

func TestReconcile_SupplierMarginOverridesDefault(t *testing.T) {
	settings := marginSettings(30, map[string]int64{"acme": 15})
	res := Reconcile(
		[]model.RawRecord{{Description: "SSD", Cost: decimal.NewFromInt(1000), Code: "A1"}},
		"ACME", "Computación", nil, settings, time.Now())

	require.Len(t, res.Catalog, 1)
	assert.True(t, res.Catalog[0].UnitPrice.Equal(decimal.NewFromInt(1150)))
}

func TestReconcile_UntouchedProductsPassThrough(t *testing.T) {
	settings := marginSettings(30, nil)
	other := model.Product{ID: "x", Type: model.ItemService, Description: "Diagnóstico", UnitPrice: decimal.NewFromInt(5000)}

	res := Reconcile(
		[]model.RawRecord{{Description: "SSD", Cost: decimal.NewFromInt(1000), Code: "A1"}},
		"ACME", "Computación", []model.Product{other}, settings, time.Now())

	require.Len(t, res.Catalog, 2)
	assert.Equal(t, other, res.Catalog[0])
}

func TestReconcileForce_OverwritesWithoutChanges(t *testing.T) {
	settings := marginSettings(30, nil)
	batch := []model.RawRecord{{Description: "SSD 240GB", Cost: decimal.NewFromInt(50000), Code: "A1"}}

	first := Reconcile(batch, "ACME", "Computación", nil, settings, time.Now())

	later := time.Now().Add(time.Hour)
	forced := ReconcileForce(batch, "ACME", "Computación", first.Catalog, settings, later)

	assert.Equal(t, 1, forced.Updated)
	assert.Equal(t, 0, forced.Unchanged)
	assert.True(t, forced.Catalog[0].LastUpdated.Equal(later))
}

func TestReconcileForce_KeepsDescriptionWhenIncomingEmpty(t *testing.T) {
	settings := marginSettings(30, nil)
	first := Reconcile(
		[]model.RawRecord{{Description: "SSD 240GB", Cost: decimal.NewFromInt(50000), Code: "A1"}},
		"ACME", "Computación", nil, settings, time.Now())

	forced := ReconcileForce(
		[]model.RawRecord{{Description: "", Cost: decimal.NewFromInt(51000), Code: "A1"}},
		"ACME", "Computación", first.Catalog, settings, time.Now())

	require.Len(t, forced.Catalog, 1)
	assert.Equal(t, "SSD 240GB", forced.Catalog[0].Description)
	assert.True(t, forced.Catalog[0].CostPrice.Equal(decimal.NewFromInt(51000)))
}

func TestReconcile_DoesNotMutateInputCatalog(t *testing.T) {
	settings := marginSettings(30, nil)
	seed := Reconcile(
		[]model.RawRecord{{Description: "SSD", Cost: decimal.NewFromInt(1000), Code: "A1"}},
		"ACME", "Computación", nil, settings, time.Now())

	original := seed.Catalog[0].CostPrice

	Reconcile(
		[]model.RawRecord{{Description: "SSD", Cost: decimal.NewFromInt(2000), Code: "A1"}},
		"ACME", "Computación", seed.Catalog, settings, time.Now())

	assert.True(t, seed.Catalog[0].CostPrice.Equal(original))
}

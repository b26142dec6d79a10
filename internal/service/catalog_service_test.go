package service

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sergiotsk/TecFlow/internal/dto"
	"github.com/Sergiotsk/TecFlow/internal/importer"
	"github.com/Sergiotsk/TecFlow/internal/model"
	"github.com/Sergiotsk/TecFlow/internal/repository"
)

func newCatalogFixture() (CatalogService, SettingsService, repository.CatalogRepository) {
	store := repository.NewMemoryStore()
	catalogRepo := repository.NewCatalogRepository(store)
	settingsRepo := repository.NewSettingsRepository(store)
	var mu sync.Mutex
	return NewCatalogService(catalogRepo, settingsRepo, &mu),
		NewSettingsService(settingsRepo, catalogRepo, &mu),
		catalogRepo
}

var testGrid = [][]string{
	{"Producto", "Precio", "Cod"},
	{"SSD 240GB", "50.000", "A1"},
	{"Mouse inalámbrico", "8.500", "M1"},
}

func TestCatalogService_ImportGrid(t *testing.T) {
	svc, _, repo := newCatalogFixture()
	ctx := context.Background()

	summary, err := svc.ImportGrid(ctx, testGrid, dto.ImportRequest{Supplier: "ACME", Category: "Computación"})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Added)
	assert.Equal(t, 0, summary.Updated)
	assert.Equal(t, 0, summary.Unchanged)

	catalog, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, catalog, 2)
	// Default margin is 30.
	assert.True(t, catalog[0].CostPrice.Equal(decimal.NewFromInt(50000)))
	assert.True(t, catalog[0].UnitPrice.Equal(decimal.NewFromInt(65000)))
}

func TestCatalogService_ImportTwiceIsUnchanged(t *testing.T) {
	svc, _, _ := newCatalogFixture()
	ctx := context.Background()
	meta := dto.ImportRequest{Supplier: "ACME", Category: "Computación"}

	_, err := svc.ImportGrid(ctx, testGrid, meta)
	require.NoError(t, err)

	summary, err := svc.ImportGrid(ctx, testGrid, meta)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Added)
	assert.Equal(t, 0, summary.Updated)
	assert.Equal(t, 2, summary.Unchanged)
}

func TestCatalogService_ImportUsesSupplierMargin(t *testing.T) {
	svc, settings, repo := newCatalogFixture()
	ctx := context.Background()

	_, err := settings.UpdateSupplierMargin(ctx, "ACME", decimal.NewFromInt(15))
	require.NoError(t, err)

	_, err = svc.ImportGrid(ctx, testGrid, dto.ImportRequest{Supplier: "acme ", Category: "Computación"})
	require.NoError(t, err)

	catalog, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.True(t, catalog[0].UnitPrice.Equal(decimal.NewFromInt(57500)), catalog[0].UnitPrice.String())
}

func TestCatalogService_ImportRejectsBadHeaders(t *testing.T) {
	svc, _, _ := newCatalogFixture()

	grid := [][]string{{"A", "B"}, {"x", "y"}}
	_, err := svc.ImportGrid(context.Background(), grid, dto.ImportRequest{Supplier: "ACME", Category: "X"})

	var headerErr *importer.HeaderError
	assert.ErrorAs(t, err, &headerErr)
}

func TestCatalogService_ImportExtracted(t *testing.T) {
	svc, _, _ := newCatalogFixture()
	ctx := context.Background()

	items := []model.ExtractedItem{
		{Description: "Fuente 500W", UnitPrice: "$ 32.000", Code: "F1"},
	}
	summary, err := svc.ImportExtracted(ctx, items, dto.ImportRequest{Supplier: "ACME", Category: "Computación"})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Added)
}

func TestCatalogService_CRUDAndFavorites(t *testing.T) {
	svc, _, _ := newCatalogFixture()
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.CreateProductRequest{
		Type:        model.ItemService,
		Category:    "Servicios",
		Description: "Diagnóstico",
		UnitPrice:   decimal.NewFromInt(5000),
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Nil(t, created.LastUpdated)

	updated, err := svc.Update(ctx, created.ID, dto.UpdateProductRequest{
		Type:        model.ItemService,
		Category:    "Servicios",
		Description: "Diagnóstico completo",
		UnitPrice:   decimal.NewFromInt(6000),
	})
	require.NoError(t, err)
	assert.Equal(t, "Diagnóstico completo", updated.Description)
	// Manual edits never stamp the reconciliation timestamp.
	assert.Nil(t, updated.LastUpdated)

	fav, err := svc.ToggleFavorite(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, fav.IsFavorite)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCatalogService_ListFilters(t *testing.T) {
	svc, _, _ := newCatalogFixture()
	ctx := context.Background()

	_, err := svc.ImportGrid(ctx, testGrid, dto.ImportRequest{Supplier: "ACME", Category: "Computación"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, dto.CreateProductRequest{
		Type: model.ItemService, Category: "Servicios", Description: "Diagnóstico", IsFavorite: true,
	})
	require.NoError(t, err)

	all, err := svc.List(ctx, dto.ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, all.Total)

	bySupplier, err := svc.List(ctx, dto.ProductFilter{Supplier: "acme"})
	require.NoError(t, err)
	assert.Equal(t, 2, bySupplier.Total)

	bySearch, err := svc.List(ctx, dto.ProductFilter{Search: "ssd"})
	require.NoError(t, err)
	assert.Equal(t, 1, bySearch.Total)

	favs, err := svc.List(ctx, dto.ProductFilter{FavoritesOnly: true})
	require.NoError(t, err)
	assert.Equal(t, 1, favs.Total)
}

func TestCatalogService_Suppliers(t *testing.T) {
	svc, settings, _ := newCatalogFixture()
	ctx := context.Background()

	_, err := svc.ImportGrid(ctx, testGrid, dto.ImportRequest{Supplier: "ACME", Category: "Computación"})
	require.NoError(t, err)
	_, err = settings.UpdateSupplierMargin(ctx, "ACME", decimal.NewFromInt(15))
	require.NoError(t, err)
	// Frozen under a different casing than the catalog stores.
	_, err = settings.ToggleFreeze(ctx, "acme")
	require.NoError(t, err)

	infos, err := svc.Suppliers(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "ACME", infos[0].Name)
	assert.True(t, infos[0].Margin.Equal(decimal.NewFromInt(15)))
	assert.True(t, infos[0].Frozen)
	assert.Equal(t, 2, infos[0].Products)
	assert.NotEmpty(t, infos[0].LastUpdated)
}

func TestCatalogService_BuildLineItem(t *testing.T) {
	svc, _, _ := newCatalogFixture()
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.CreateProductRequest{
		Type: model.ItemMaterial, Category: "Computación", Description: "SSD 240GB",
		UnitPrice: decimal.NewFromInt(65000),
	})
	require.NoError(t, err)

	item, err := svc.BuildLineItem(ctx, dto.BuildLineItemRequest{ProductID: created.ID, Quantity: 2})
	require.NoError(t, err)
	assert.NotEqual(t, created.ID, item.ID)
	assert.Equal(t, "SSD 240GB", item.Description)
	assert.Equal(t, 2, item.Quantity)
	assert.True(t, item.Subtotal().Equal(decimal.NewFromInt(130000)))

	// Quantity below 1 is clamped.
	item, err = svc.BuildLineItem(ctx, dto.BuildLineItemRequest{ProductID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)
}

func TestSettingsService_DeleteSupplierCascadesAndKeepsMargin(t *testing.T) {
	svc, settings, repo := newCatalogFixture()
	ctx := context.Background()

	_, err := svc.ImportGrid(ctx, testGrid, dto.ImportRequest{Supplier: "ACME", Category: "Computación"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, dto.CreateProductRequest{
		Type: model.ItemMaterial, Category: "Cables", Description: "HDMI", Supplier: "Distribuidora Sur",
	})
	require.NoError(t, err)
	_, err = settings.UpdateSupplierMargin(ctx, "ACME", decimal.NewFromInt(15))
	require.NoError(t, err)

	resp, err := settings.DeleteSupplier(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, 2, resp.ProductsRemoved)

	catalog, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, catalog, 1)
	assert.Equal(t, "Distribuidora Sur", catalog[0].Supplier)

	// The margin entry survives so a future re-import reuses it.
	margins, err := settings.Margins(ctx)
	require.NoError(t, err)
	assert.True(t, margins.Suppliers["ACME"].Equal(decimal.NewFromInt(15)))
}

func TestSettingsService_MarginOperations(t *testing.T) {
	_, settings, _ := newCatalogFixture()
	ctx := context.Background()

	margins, err := settings.Margins(ctx)
	require.NoError(t, err)
	assert.True(t, margins.Default.Equal(decimal.NewFromInt(30)))

	margins, err = settings.UpdateDefaultMargin(ctx, decimal.NewFromInt(40))
	require.NoError(t, err)
	assert.True(t, margins.Default.Equal(decimal.NewFromInt(40)))

	// Same supplier under different spellings collapses to one entry.
	_, err = settings.UpdateSupplierMargin(ctx, "ACME", decimal.NewFromInt(15))
	require.NoError(t, err)
	margins, err = settings.UpdateSupplierMargin(ctx, " acme", decimal.NewFromInt(18))
	require.NoError(t, err)
	require.Len(t, margins.Suppliers, 1)
	assert.True(t, margins.Suppliers["ACME"].Equal(decimal.NewFromInt(18)))

	margins, err = settings.RemoveSupplierMargin(ctx, "Acme")
	require.NoError(t, err)
	assert.Empty(t, margins.Suppliers)
}

func TestSettingsService_ToggleFreeze(t *testing.T) {
	_, settings, _ := newCatalogFixture()
	ctx := context.Background()

	margins, err := settings.ToggleFreeze(ctx, "ACME")
	require.NoError(t, err)
	assert.True(t, margins.IsFrozen("ACME"))

	margins, err = settings.ToggleFreeze(ctx, "acme")
	require.NoError(t, err)
	assert.Empty(t, margins.FrozenSuppliers)
}

func TestSettingsService_SavePreservesMargins(t *testing.T) {
	_, settings, _ := newCatalogFixture()
	ctx := context.Background()

	_, err := settings.UpdateSupplierMargin(ctx, "ACME", decimal.NewFromInt(15))
	require.NoError(t, err)

	saved, err := settings.Save(ctx, dto.SaveBusinessSettingsRequest{Name: "Servicio Técnico Norte"})
	require.NoError(t, err)
	assert.Equal(t, "Servicio Técnico Norte", saved.Name)
	assert.True(t, saved.Margins.Suppliers["ACME"].Equal(decimal.NewFromInt(15)))
}

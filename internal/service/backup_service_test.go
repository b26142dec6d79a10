package service

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sergiotsk/TecFlow/internal/dto"
	"github.com/Sergiotsk/TecFlow/internal/model"
	"github.com/Sergiotsk/TecFlow/internal/repository"
)

func TestBackupService_ExportRestoreRoundTrip(t *testing.T) {
	ctx := context.Background()

	store := repository.NewMemoryStore()
	catalogRepo := repository.NewCatalogRepository(store)
	settingsRepo := repository.NewSettingsRepository(store)
	documentRepo := repository.NewDocumentRepository(store)
	clientRepo := repository.NewClientRepository(store)

	var mu sync.Mutex
	catalog := NewCatalogService(catalogRepo, settingsRepo, &mu)
	settings := NewSettingsService(settingsRepo, catalogRepo, &mu)
	backup := NewBackupService(catalogRepo, settingsRepo, documentRepo, clientRepo)

	_, err := catalog.ImportGrid(ctx, testGrid, dto.ImportRequest{Supplier: "ACME", Category: "Computación"})
	require.NoError(t, err)
	_, err = settings.UpdateSupplierMargin(ctx, "ACME", decimal.NewFromInt(15))
	require.NoError(t, err)

	env, err := backup.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1.0", env.Version)
	assert.Len(t, env.Products, 2)
	assert.NotEmpty(t, env.ExportDate)

	// Restore into a fresh store.
	store2 := repository.NewMemoryStore()
	backup2 := NewBackupService(
		repository.NewCatalogRepository(store2),
		repository.NewSettingsRepository(store2),
		repository.NewDocumentRepository(store2),
		repository.NewClientRepository(store2),
	)
	require.NoError(t, backup2.Restore(ctx, *env))

	env2, err := backup2.Export(ctx)
	require.NoError(t, err)
	assert.Len(t, env2.Products, 2)
	assert.True(t, env2.Settings.Margins.Suppliers["ACME"].Equal(decimal.NewFromInt(15)))
}

// Envelopes exported by the desktop app carry branding but no margin block.
// Restoring one must keep the current markup configuration so later imports
// still price above cost.
func TestBackupService_RestoreWithoutMarginsKeepsMarkup(t *testing.T) {
	ctx := context.Background()

	store := repository.NewMemoryStore()
	catalogRepo := repository.NewCatalogRepository(store)
	settingsRepo := repository.NewSettingsRepository(store)
	documentRepo := repository.NewDocumentRepository(store)
	clientRepo := repository.NewClientRepository(store)

	var mu sync.Mutex
	catalog := NewCatalogService(catalogRepo, settingsRepo, &mu)
	settings := NewSettingsService(settingsRepo, catalogRepo, &mu)
	backup := NewBackupService(catalogRepo, settingsRepo, documentRepo, clientRepo)

	_, err := settings.UpdateSupplierMargin(ctx, "TecnoParts", decimal.NewFromInt(45))
	require.NoError(t, err)

	env := dto.BackupEnvelope{
		Version:  "1.0",
		Settings: model.BusinessSettings{Name: "Taller Norte"},
	}
	require.NoError(t, backup.Restore(ctx, env))

	got, err := settingsRepo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Taller Norte", got.Name)
	assert.True(t, got.Margins.Default.Equal(decimal.NewFromInt(30)))
	assert.True(t, got.Margins.Suppliers["TecnoParts"].Equal(decimal.NewFromInt(45)))

	grid := [][]string{
		{"Producto", "Precio", "Cod"},
		{"SSD 240GB", "50.000", "A1"},
	}
	_, err = catalog.ImportGrid(ctx, grid, dto.ImportRequest{Supplier: "ACME", Category: "Computación"})
	require.NoError(t, err)

	list, err := catalog.List(ctx, dto.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, list.Data, 1)
	assert.True(t, list.Data[0].CostPrice.Equal(decimal.NewFromInt(50000)))
	assert.True(t, list.Data[0].UnitPrice.Equal(decimal.NewFromInt(65000)))
}

func TestBackupService_RejectsUnknownVersion(t *testing.T) {
	store := repository.NewMemoryStore()
	backup := NewBackupService(
		repository.NewCatalogRepository(store),
		repository.NewSettingsRepository(store),
		repository.NewDocumentRepository(store),
		repository.NewClientRepository(store),
	)
	err := backup.Restore(context.Background(), dto.BackupEnvelope{Version: "99"})
	assert.ErrorIs(t, err, ErrBackupVersion)
}

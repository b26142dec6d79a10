package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sergiotsk/TecFlow/internal/dto"
	"github.com/Sergiotsk/TecFlow/internal/repository"
)

func newClientFixture() ClientService {
	return NewClientService(repository.NewClientRepository(repository.NewMemoryStore()))
}

func TestClientService_SaveAndUpdate(t *testing.T) {
	svc := newClientFixture()
	ctx := context.Background()

	created, err := svc.Save(ctx, "", dto.SaveClientRequest{Name: "Juan Pérez", Phone: "11-5555-0000"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	updated, err := svc.Save(ctx, created.ID, dto.SaveClientRequest{Name: "Juan Pérez", Phone: "11-5555-1111"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "11-5555-1111", updated.Phone)

	_, err = svc.Save(ctx, "nope", dto.SaveClientRequest{Name: "X"})
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestClientService_Delete(t *testing.T) {
	svc := newClientFixture()
	ctx := context.Background()

	created, err := svc.Save(ctx, "", dto.SaveClientRequest{Name: "Ana"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), ErrClientNotFound)
}

func TestClientService_ImportCSV(t *testing.T) {
	svc := newClientFixture()
	ctx := context.Background()

	_, err := svc.Save(ctx, "", dto.SaveClientRequest{Name: "Juan Pérez"})
	require.NoError(t, err)

	csvData := []byte("nombre,direccion,telefono,email,cuit,notas\n" +
		"Juan Pérez,Calle 1,11-5555-0000,juan@mail.com,20-11111111-1,\n" +
		"Ana Gómez,Calle 2,11-5555-2222,ana@mail.com,27-22222222-2,buena clienta\n" +
		",,,,,\n")

	summary, err := svc.ImportCSV(ctx, csvData)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Added)
	assert.Equal(t, 2, summary.Skipped)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, list.Total)
	assert.Equal(t, "Ana Gómez", list.Data[1].Name)
	assert.Equal(t, "buena clienta", list.Data[1].Notes)
}

package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventaris-api/internal/application/dto"
	"github.com/jhoicas/inventaris-api/internal/application/inventory"
	"github.com/jhoicas/inventaris-api/internal/application/usecase"
	"github.com/jhoicas/inventaris-api/internal/domain"
)

func TestStockSet_AsignaYDevuelveFilaEnriquecida(t *testing.T) {
	store := seedStore(t)
	items := newItemUseCase(store, &fakeImages{})
	stock := usecase.NewStockUseCase(inventory.NewLedger(store.Repos()))
	ctx := context.Background()

	created, err := items.Create(ctx, "", createReq("Proyektor"))
	require.NoError(t, err)

	out, err := stock.Set(ctx, created.ID, gudangB, dto.SetStockRequest{Available: d(6)})
	require.NoError(t, err)
	assert.Equal(t, gudangB, out.WarehouseID)
	assert.Equal(t, "Gudang B", out.WarehouseName)
	assert.True(t, out.Available.Equal(*d(6)))
	assert.NotEmpty(t, out.CreatedAt)

	list, err := stock.ListForItem(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestStockSet_SinAvailable_ErrorDeValidacion(t *testing.T) {
	store := seedStore(t)
	stock := usecase.NewStockUseCase(inventory.NewLedger(store.Repos()))

	_, err := stock.Set(context.Background(), "x", gudangA, dto.SetStockRequest{})
	var v *domain.ValidationError
	require.True(t, errors.As(err, &v))
	assert.Contains(t, v.Fields, "available")
}

func TestStockSet_ItemDesconocido_NotFound(t *testing.T) {
	store := seedStore(t)
	stock := usecase.NewStockUseCase(inventory.NewLedger(store.Repos()))

	_, err := stock.Set(context.Background(), "no-existe", gudangA, dto.SetStockRequest{Available: d(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStockRemove_QuitaElPar(t *testing.T) {
	store := seedStore(t)
	items := newItemUseCase(store, &fakeImages{})
	stock := usecase.NewStockUseCase(inventory.NewLedger(store.Repos()))
	ctx := context.Background()

	created, err := items.Create(ctx, "", createReq("Proyektor"))
	require.NoError(t, err)

	require.NoError(t, stock.Remove(ctx, created.ID, gudangA))
	list, err := stock.ListForItem(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

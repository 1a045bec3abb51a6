package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventaris-api/internal/application/dto"
	"github.com/jhoicas/inventaris-api/internal/application/usecase"
	"github.com/jhoicas/inventaris-api/internal/domain"
	"github.com/jhoicas/inventaris-api/internal/domain/entity"
)

func TestLookup_CrearListarBorrar(t *testing.T) {
	store := seedStore(t)
	uc := usecase.NewLookupUseCase(store.Lookups())
	ctx := context.Background()

	created, err := uc.Create(ctx, entity.LookupUnit, dto.CreateLookupRequest{Name: "Buah"})
	require.NoError(t, err)
	assert.Equal(t, "buah", created.Slug)
	assert.Equal(t, entity.LookupUnit, created.Kind)

	list, err := uc.List(ctx, entity.LookupUnit)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, uc.Delete(ctx, entity.LookupUnit, created.ID))
	list, err = uc.List(ctx, entity.LookupUnit)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestLookup_CatalogoDesconocido_NotFound(t *testing.T) {
	uc := usecase.NewLookupUseCase(seedStore(t).Lookups())
	_, err := uc.List(context.Background(), "users")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLookup_NombreDuplicado(t *testing.T) {
	uc := usecase.NewLookupUseCase(seedStore(t).Lookups())
	_, err := uc.Create(context.Background(), entity.LookupItemType, dto.CreateLookupRequest{Name: "Elektronik"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(context.Background(), entity.LookupItemType, dto.CreateLookupRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDashboard_Conteos(t *testing.T) {
	store := seedStore(t)
	seedUser(t, store, "op-1", "Operator Satu", entity.RoleOperator)
	items := newItemUseCase(store, &fakeImages{})
	ctx := context.Background()

	first, err := items.Create(ctx, "", createReq("Alpha"))
	require.NoError(t, err)
	_, err = items.Create(ctx, "", createReq("Beta"))
	require.NoError(t, err)
	require.NoError(t, items.Delete(ctx, first.ID))

	uc := usecase.NewDashboardUseCase(store.Items(), store.Lookups(), store.Warehouses(), store.Users())
	out, err := uc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, dto.DashboardResponse{
		Items: 1, ItemTypes: 1, Units: 0, Categories: 0, Warehouses: 2, Users: 1,
	}, *out)
}

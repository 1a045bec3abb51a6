package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventaris-api/internal/application/dto"
	"github.com/jhoicas/inventaris-api/internal/application/usecase"
	"github.com/jhoicas/inventaris-api/internal/domain"
	"github.com/jhoicas/inventaris-api/internal/domain/entity"
	"github.com/jhoicas/inventaris-api/internal/testutil/memstore"
)

func seedUser(t *testing.T, store *memstore.Store, id, name, role string) {
	t.Helper()
	now := time.Now()
	require.NoError(t, store.Users().Create(context.Background(), &entity.User{
		ID: id, Name: name, Email: id + "@inventaris.test", Avatar: entity.DefaultAvatar,
		Role: role, CreatedAt: now, UpdatedAt: now,
	}))
}

func TestWarehouseCreate_SlugYAdmin(t *testing.T) {
	store := seedStore(t)
	seedUser(t, store, "op-1", "Operator Satu", entity.RoleOperator)
	uc := usecase.NewWarehouseUseCase(store.Warehouses(), store.Users())

	out, err := uc.Create(context.Background(), "admin-1", dto.CreateWarehouseRequest{
		Name: " Gudang Timur ", AdminID: str("op-1"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Gudang Timur", out.Name)
	assert.Equal(t, "gudang-timur", out.Slug)
	require.NotNil(t, out.AdminID)
	assert.Equal(t, "op-1", *out.AdminID)
	require.NotNil(t, out.UserID)
	assert.Equal(t, "admin-1", *out.UserID)
}

func TestWarehouseCreate_AdminOcupadoODesconocido(t *testing.T) {
	store := seedStore(t)
	seedUser(t, store, "op-1", "Operator Satu", entity.RoleOperator)
	uc := usecase.NewWarehouseUseCase(store.Warehouses(), store.Users())
	ctx := context.Background()

	_, err := uc.Create(ctx, "", dto.CreateWarehouseRequest{Name: "Gudang 1", AdminID: str("op-1")})
	require.NoError(t, err)

	_, err = uc.Create(ctx, "", dto.CreateWarehouseRequest{Name: "Gudang 2", AdminID: str("op-1")})
	var v *domain.ValidationError
	require.True(t, errors.As(err, &v))
	assert.Contains(t, v.Fields, "admin_id")

	_, err = uc.Create(ctx, "", dto.CreateWarehouseRequest{Name: "Gudang 3", AdminID: str("nadie")})
	require.True(t, errors.As(err, &v))
	assert.Contains(t, v.Fields, "admin_id")
}

func TestWarehouseUpdate_MismoAdminYQuitarAdmin(t *testing.T) {
	store := seedStore(t)
	seedUser(t, store, "op-1", "Operator Satu", entity.RoleOperator)
	uc := usecase.NewWarehouseUseCase(store.Warehouses(), store.Users())
	ctx := context.Background()

	created, err := uc.Create(ctx, "", dto.CreateWarehouseRequest{Name: "Gudang 1", AdminID: str("op-1")})
	require.NoError(t, err)

	out, err := uc.Update(ctx, created.ID, dto.UpdateWarehouseRequest{Name: str("Gudang Satu"), AdminID: str("op-1")})
	require.NoError(t, err)
	assert.Equal(t, "gudang-satu", out.Slug)

	out, err = uc.Update(ctx, created.ID, dto.UpdateWarehouseRequest{AdminID: str("")})
	require.NoError(t, err)
	assert.Nil(t, out.AdminID)
}

func TestWarehouseListYDelete(t *testing.T) {
	store := seedStore(t)
	uc := usecase.NewWarehouseUseCase(store.Warehouses(), store.Users())
	ctx := context.Background()

	out, err := uc.List(ctx, dto.PageRequest{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Page.Total)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Gudang A", out.Items[0].Name)

	require.NoError(t, uc.Delete(ctx, gudangA))
	_, err = uc.GetByID(ctx, gudangA)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, gudangA), domain.ErrNotFound)
}

func TestWarehouseDelete_BorraStockEnCascada(t *testing.T) {
	store := seedStore(t)
	items := newItemUseCase(store, &fakeImages{})
	uc := usecase.NewWarehouseUseCase(store.Warehouses(), store.Users())
	ctx := context.Background()

	_, err := items.Create(ctx, "", createReq("Proyektor"))
	require.NoError(t, err)
	require.Equal(t, 1, store.StockRows())

	require.NoError(t, uc.Delete(ctx, gudangA))
	assert.Equal(t, 0, store.StockRows())
}

package usecase

import (
	"context"

	"github.com/jhoicas/inventaris-api/internal/application/dto"
	"github.com/jhoicas/inventaris-api/internal/domain/entity"
	"github.com/jhoicas/inventaris-api/internal/domain/repository"
)

// DashboardUseCase calcula los totales del panel principal.
type DashboardUseCase struct {
	items      repository.ItemRepository
	lookups    repository.LookupRepository
	warehouses repository.WarehouseRepository
	users      repository.UserRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	items repository.ItemRepository,
	lookups repository.LookupRepository,
	warehouses repository.WarehouseRepository,
	users repository.UserRepository,
) *DashboardUseCase {
	return &DashboardUseCase{items: items, lookups: lookups, warehouses: warehouses, users: users}
}

// Summary devuelve los conteos; los items eliminados no cuentan.
func (uc *DashboardUseCase) Summary(ctx context.Context) (*dto.DashboardResponse, error) {
	var out dto.DashboardResponse
	var err error
	if out.Items, err = uc.items.Count(ctx); err != nil {
		return nil, err
	}
	if out.ItemTypes, err = uc.lookups.Count(ctx, entity.LookupItemType); err != nil {
		return nil, err
	}
	if out.Units, err = uc.lookups.Count(ctx, entity.LookupUnit); err != nil {
		return nil, err
	}
	if out.Categories, err = uc.lookups.Count(ctx, entity.LookupCategory); err != nil {
		return nil, err
	}
	if out.Warehouses, err = uc.warehouses.Count(ctx); err != nil {
		return nil, err
	}
	if out.Users, err = uc.users.Count(ctx); err != nil {
		return nil, err
	}
	return &out, nil
}

package repository

import (
	"context"

	"github.com/jhoicas/inventaris-api/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *entity.Warehouse) error
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
	// GetByAdmin devuelve la bodega administrada por el usuario, o nil.
	GetByAdmin(ctx context.Context, adminID string) (*entity.Warehouse, error)
	Update(ctx context.Context, warehouse *entity.Warehouse) error
	List(ctx context.Context, limit, offset int) ([]*entity.Warehouse, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error
}

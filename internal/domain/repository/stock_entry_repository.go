package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/inventaris-api/internal/domain/entity"
)

// StockEntryRepository define el puerto para la relación item↔bodega con cantidades.
// La clave (item_id, warehouse_id) es única en la base de datos.
type StockEntryRepository interface {
	// Get devuelve la fila del par o (nil, nil) si no existe.
	Get(ctx context.Context, itemID, warehouseID string) (*entity.StockEntry, error)
	// Insert crea la fila. Si el par ya existe (p. ej. otra petición la creó antes)
	// devuelve domain.ErrConflict sin modificar la fila existente.
	Insert(ctx context.Context, entry *entity.StockEntry) error
	// UpdateAvailable sobrescribe solo Available. Devuelve domain.ErrNotFound si el par no existe.
	UpdateAvailable(ctx context.Context, itemID, warehouseID string, available decimal.Decimal) (*entity.StockEntry, error)
	ListByItem(ctx context.Context, itemID string) ([]*entity.WarehouseStock, error)
	ListByItems(ctx context.Context, itemIDs []string) (map[string][]*entity.WarehouseStock, error)
	// Delete elimina el par; no es error si no existía.
	Delete(ctx context.Context, itemID, warehouseID string) error
}

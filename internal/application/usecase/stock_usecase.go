package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventaris-api/internal/application/dto"
	"github.com/jhoicas/inventaris-api/internal/application/inventory"
	"github.com/jhoicas/inventaris-api/internal/domain"
)

// StockUseCase expone las operaciones directas del libro de stock de un item.
type StockUseCase struct {
	ledger *inventory.Ledger
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(ledger *inventory.Ledger) *StockUseCase {
	return &StockUseCase{ledger: ledger}
}

// ListForItem devuelve el stock del item en cada bodega asignada.
func (uc *StockUseCase) ListForItem(ctx context.Context, itemID string) ([]dto.StockEntryResponse, error) {
	list, err := uc.ledger.ListForItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockEntryResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toStockEntryResponse(s))
	}
	return out, nil
}

// Set asigna el item a la bodega o sobrescribe su cantidad disponible.
func (uc *StockUseCase) Set(ctx context.Context, itemID, warehouseID string, in dto.SetStockRequest) (*dto.StockEntryResponse, error) {
	if in.Available == nil {
		v := domain.NewValidationError()
		v.Add("available", "la cantidad disponible es obligatoria")
		return nil, v
	}
	if _, err := uc.ledger.AttachOrUpdate(ctx, itemID, warehouseID, *in.Available); err != nil {
		return nil, err
	}
	list, err := uc.ledger.ListForItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	for _, s := range list {
		if s.WarehouseID == warehouseID {
			out := toStockEntryResponse(s)
			return &out, nil
		}
	}
	return nil, fmt.Errorf("%w: stock de item %s en bodega %s", domain.ErrNotFound, itemID, warehouseID)
}

// Remove quita la asignación del item a la bodega.
func (uc *StockUseCase) Remove(ctx context.Context, itemID, warehouseID string) error {
	return uc.ledger.Remove(ctx, itemID, warehouseID)
}

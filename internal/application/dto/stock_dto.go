package dto

import "github.com/shopspring/decimal"

// SetStockRequest fija la cantidad disponible de un item en una bodega.
type SetStockRequest struct {
	Available *decimal.Decimal `json:"available" validate:"required"`
}

// StockEntryResponse fila del libro de stock con los datos de su bodega.
type StockEntryResponse struct {
	ItemID               string          `json:"item_id"`
	WarehouseID          string          `json:"warehouse_id"`
	WarehouseName        string          `json:"warehouse_name"`
	WarehouseSlug        string          `json:"warehouse_slug"`
	WarehouseDescription *string         `json:"warehouse_description"`
	Available            decimal.Decimal `json:"available"`
	Borrowed             decimal.Decimal `json:"borrowed"`
	UnderMaintenance     decimal.Decimal `json:"under_maintenance"`
	CreatedAt            string          `json:"created_at"`
	UpdatedAt            string          `json:"updated_at"`
}

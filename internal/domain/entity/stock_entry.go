package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockEntry es la fila de la relación item↔bodega con sus cantidades.
// Existe exactamente una por par (ItemID, WarehouseID) y ninguna cantidad es negativa.
type StockEntry struct {
	ItemID           string
	WarehouseID      string
	Available        decimal.Decimal // disponible en la bodega
	Borrowed         decimal.Decimal // prestado
	UnderMaintenance decimal.Decimal // en mantenimiento
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Cantidades y precios se guardan como NUMERIC(15,2).
const AmountScale = 2

// AmountLimit es la primera magnitud que ya no cabe en NUMERIC(15,2).
var AmountLimit = decimal.New(1, 13)

// AmountFits indica si d se puede guardar tal cual: menos de 10^13 y como mucho dos decimales.
func AmountFits(d decimal.Decimal) bool {
	return d.Abs().LessThan(AmountLimit) && d.Equal(d.Truncate(AmountScale))
}

// NewStockEntry construye la fila inicial de un par: Available según la entrada,
// Borrowed y UnderMaintenance en cero.
func NewStockEntry(itemID, warehouseID string, available decimal.Decimal, now time.Time) *StockEntry {
	return &StockEntry{
		ItemID:           itemID,
		WarehouseID:      warehouseID,
		Available:        available,
		Borrowed:         decimal.Zero,
		UnderMaintenance: decimal.Zero,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// WarehouseStock es una StockEntry enriquecida con los datos descriptivos de su bodega.
type WarehouseStock struct {
	StockEntry
	WarehouseName        string
	WarehouseSlug        string
	WarehouseDescription *string
}

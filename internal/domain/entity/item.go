package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Clasificación de un item (klasifikasi barang).
const (
	ClassificationConsumable = "sekali_pakai" // de un solo uso
	ClassificationReusable   = "berulang"     // reutilizable (préstamo/mantenimiento)
)

// DefaultItemImage es la ruta usada cuando el item no tiene imagen propia.
const DefaultItemImage = "default_image.png"

// IsClassification indica si c es una clasificación válida.
func IsClassification(c string) bool {
	return c == ClassificationConsumable || c == ClassificationReusable
}

// Item representa un barang del inventario. El stock no vive aquí sino en StockEntry,
// uno por cada bodega donde el item está asignado.
type Item struct {
	ID             string
	Code           string // barang_kode, contenido del QR
	Name           string
	Slug           string
	Classification string
	Price          decimal.Decimal
	TypeID         *string
	UnitID         *string
	CategoryID     *string
	Image          string
	UserID         *string
	DeletedAt      *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsDeleted indica si el item fue eliminado lógicamente.
func (i *Item) IsDeleted() bool {
	return i.DeletedAt != nil
}

// HasCustomImage indica si la imagen no es la de por defecto (y por tanto se puede borrar del storage).
func (i *Item) HasCustomImage() bool {
	return i.Image != "" && i.Image != DefaultItemImage
}

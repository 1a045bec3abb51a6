package entity

import "time"

// Tipos de catálogo auxiliar que clasifican un Item.
const (
	LookupItemType = "item_types"      // jenis barang
	LookupUnit     = "units"           // satuan
	LookupCategory = "item_categories" // kategori barang
)

// LookupKinds lista los catálogos válidos; el valor coincide con el nombre de la tabla.
var LookupKinds = []string{LookupItemType, LookupUnit, LookupCategory}

// IsLookupKind indica si kind es un catálogo conocido.
func IsLookupKind(kind string) bool {
	for _, k := range LookupKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Lookup representa una entrada de catálogo (tipo, unidad o categoría de item).
type Lookup struct {
	ID        string
	Kind      string
	Name      string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

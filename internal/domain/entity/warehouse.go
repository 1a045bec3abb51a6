package entity

import "time"

// Warehouse representa un gudang: ubicación física que guarda items con su propio stock.
// AdminID es único: un administrador gestiona como máximo una bodega.
type Warehouse struct {
	ID          string
	Name        string
	Slug        string
	Description *string
	UserID      *string // dueño (quien la creó)
	AdminID     *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

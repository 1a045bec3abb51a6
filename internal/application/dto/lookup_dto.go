package dto

import "time"

// CreateLookupRequest entrada para crear un tipo, unidad o categoría.
type CreateLookupRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// LookupResponse salida de una entrada de catálogo.
type LookupResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

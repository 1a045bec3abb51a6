package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para crear un item y asignarlo a una bodega.
// Image es base64 o data URI; vacío usa la imagen por defecto.
type CreateItemRequest struct {
	Name           string           `json:"name" validate:"required,max=255"`
	Classification string           `json:"classification" validate:"omitempty,oneof=sekali_pakai berulang"`
	Price          *decimal.Decimal `json:"price" validate:"required"`
	TypeID         *string          `json:"type_id"`
	UnitID         *string          `json:"unit_id"`
	CategoryID     *string          `json:"category_id"`
	Image          string           `json:"image"`
	WarehouseID    string           `json:"warehouse_id" validate:"required"`
	Available      *decimal.Decimal `json:"available" validate:"required"`
}

// UpdateItemRequest entrada para actualizar un item. Available es opcional: si falta,
// un par existente conserva su valor y uno nuevo inicia en 0.
type UpdateItemRequest struct {
	Name           string           `json:"name" validate:"required,max=255"`
	Classification string           `json:"classification" validate:"omitempty,oneof=sekali_pakai berulang"`
	Price          *decimal.Decimal `json:"price" validate:"required"`
	TypeID         *string          `json:"type_id"`
	UnitID         *string          `json:"unit_id"`
	CategoryID     *string          `json:"category_id"`
	Image          string           `json:"image"`
	WarehouseID    string           `json:"warehouse_id" validate:"required"`
	Available      *decimal.Decimal `json:"available"`
}

// ItemResponse salida de un item con su stock por bodega.
type ItemResponse struct {
	ID             string               `json:"id"`
	Code           string               `json:"code"`
	Name           string               `json:"name"`
	Slug           string               `json:"slug"`
	Classification string               `json:"classification"`
	Price          decimal.Decimal      `json:"price"`
	TypeID         *string              `json:"type_id"`
	UnitID         *string              `json:"unit_id"`
	CategoryID     *string              `json:"category_id"`
	Image          string               `json:"image"`
	ImageURL       string               `json:"image_url"`
	UserID         *string              `json:"user_id"`
	TotalAvailable decimal.Decimal      `json:"total_available"`
	Stocks         []StockEntryResponse `json:"stocks"`
	DeletedAt      *time.Time           `json:"deleted_at,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// ItemListResponse lista paginada de items.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventaris-api/internal/application/dto"
	"github.com/jhoicas/inventaris-api/internal/application/usecase"
)

// StockHandler expone el libro de stock de un item.
type StockHandler struct {
	uc *usecase.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *usecase.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// List godoc
// @Summary      Stock del item por bodega
// @Tags         stocks
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del item"
// @Success      200  {array}   dto.StockEntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/stocks [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListForItem(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Set godoc
// @Summary      Asignar o actualizar stock disponible
// @Description  Crea el par item-bodega con borrowed y under_maintenance en 0, o sobrescribe solo available.
// @Tags         stocks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id            path  string               true  "ID del item"
// @Param        warehouse_id  path  string               true  "ID de la bodega"
// @Param        body          body  dto.SetStockRequest  true  "available"
// @Success      200  {object}  dto.StockEntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/stocks/{warehouse_id} [put]
func (h *StockHandler) Set(c *fiber.Ctx) error {
	var in dto.SetStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Set(c.Context(), c.Params("id"), c.Params("warehouse_id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Remove godoc
// @Summary      Quitar el item de una bodega
// @Tags         stocks
// @Security     Bearer
// @Param        id            path  string  true  "ID del item"
// @Param        warehouse_id  path  string  true  "ID de la bodega"
// @Success      204
// @Router       /api/items/{id}/stocks/{warehouse_id} [delete]
func (h *StockHandler) Remove(c *fiber.Ctx) error {
	if err := h.uc.Remove(c.Context(), c.Params("id"), c.Params("warehouse_id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

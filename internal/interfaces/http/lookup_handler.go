package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventaris-api/internal/application/dto"
	"github.com/jhoicas/inventaris-api/internal/application/usecase"
)

// LookupHandler sirve un catálogo (tipos, unidades o categorías); kind fija cuál.
type LookupHandler struct {
	uc   *usecase.LookupUseCase
	kind string
}

// NewLookupHandler construye el handler del catálogo kind.
func NewLookupHandler(uc *usecase.LookupUseCase, kind string) *LookupHandler {
	return &LookupHandler{uc: uc, kind: kind}
}

// List godoc
// @Summary      Listar catálogo
// @Tags         lookups
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LookupResponse
// @Router       /api/item-types [get]
// @Router       /api/units [get]
// @Router       /api/categories [get]
func (h *LookupHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), h.kind)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear entrada de catálogo
// @Tags         lookups
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLookupRequest  true  "name"
// @Success      201   {object}  dto.LookupResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/item-types [post]
// @Router       /api/units [post]
// @Router       /api/categories [post]
func (h *LookupHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLookupRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), h.kind, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete godoc
// @Summary      Eliminar entrada de catálogo
// @Tags         lookups
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Router       /api/item-types/{id} [delete]
// @Router       /api/units/{id} [delete]
// @Router       /api/categories/{id} [delete]
func (h *LookupHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), h.kind, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

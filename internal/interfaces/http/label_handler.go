package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventaris-api/internal/application/usecase"
)

// LabelHandler genera los QR y las hojas de etiquetas.
type LabelHandler struct {
	uc *usecase.LabelUseCase
}

// NewLabelHandler construye el handler.
func NewLabelHandler(uc *usecase.LabelUseCase) *LabelHandler {
	return &LabelHandler{uc: uc}
}

// ItemQR godoc
// @Summary      Generar QR del item
// @Tags         labels
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del item"
// @Success      200  {object}  dto.QRResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/qr [get]
func (h *LabelHandler) ItemQR(c *fiber.Ctx) error {
	out, err := h.uc.ItemQR(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ItemLabels godoc
// @Summary      Hoja PDF de etiquetas del item
// @Tags         labels
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del item"
// @Param        jumlah  query  int     false  "Copias (1..100)"  default(1)
// @Success      200  {object}  dto.LabelPDFResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/qr/pdf [get]
func (h *LabelHandler) ItemLabels(c *fiber.Ctx) error {
	out, err := h.uc.ItemLabels(c.Context(), c.Params("id"), c.QueryInt("jumlah", 1))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AllQR godoc
// @Summary      Generar QR de todos los items
// @Tags         labels
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.QRListResponse
// @Router       /api/qr [get]
func (h *LabelHandler) AllQR(c *fiber.Ctx) error {
	out, err := h.uc.AllQR(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AllLabels godoc
// @Summary      Hoja PDF con las etiquetas de todos los items
// @Tags         labels
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LabelPDFResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/qr/pdf [get]
func (h *LabelHandler) AllLabels(c *fiber.Ctx) error {
	out, err := h.uc.AllLabels(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

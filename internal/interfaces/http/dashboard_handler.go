package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventaris-api/internal/application/usecase"
)

// DashboardHandler maneja el endpoint del panel principal.
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary devuelve los totales de items, catálogos, bodegas y usuarios.
// GET /api/dashboard
//
// Los items eliminados lógicamente no cuentan.
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"inventario-pos/internal/application/dto"
	"inventario-pos/internal/application/usecase"
)

// DashboardHandler maneja el resumen de la vista principal (protegido).
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary devuelve el resumen calculado al momento de la consulta.
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	sum, err := h.uc.Summary()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(sum)
}

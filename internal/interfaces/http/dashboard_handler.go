package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/taller-inventario/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve el resumen del inventario para el día y el mes en curso.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (product_count, low_stock_count, today_in, today_out,
// month_in, month_out, date_label).
// No requiere parámetros; las fechas se calculan en el servidor.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}

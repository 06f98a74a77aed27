package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/taller-inventario/internal/application/dto"
	"github.com/jhoicas/taller-inventario/internal/application/inventory"
)

// InventoryHandler maneja las peticiones HTTP de movimientos y reportes de inventario (protegido).
type InventoryHandler struct {
	uc      *inventory.RegisterMovementUseCase
	reports *inventory.ReportUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.RegisterMovementUseCase, reports *inventory.ReportUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc, reports: reports}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Description  Entrada (IN) o salida (OUT). No se valida stock disponible: el stock puede quedar negativo.
// @Description  Requiere Idempotency-Key cuando la API corre con Redis.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string                       false  "Clave de reintento"
// @Param        body             body    dto.RegisterMovementRequest  true   "product_id, type, quantity, vehicle_id, technician_id"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegisterMovementRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	mov, err := h.uc.RegisterMovementFromRequest(c.Context(), userID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inventory.ToMovementResponse(mov))
}

// RecentMovements godoc
// @Summary      Movimientos recientes
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Cantidad (default 200, max 500)"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) RecentMovements(c *fiber.Ctx) error {
	limit, err := queryInt(c, "limit", inventory.DefaultRecentLimit)
	if err != nil {
		return writeError(c, err)
	}
	list, err := h.reports.RecentMovements(c.Context(), limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// StockLevels godoc
// @Summary      Inventario global
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StockLevelDTO
// @Router       /api/inventory/stock [get]
func (h *InventoryHandler) StockLevels(c *fiber.Ctx) error {
	list, err := h.reports.StockLevels(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// LowStock godoc
// @Summary      Productos por debajo del mínimo
// @Description  Incluye los productos con stock igual al mínimo.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	list, err := h.reports.LowStock(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"total": len(list),
		"items": list,
	})
}

// StockReportPDF godoc
// @Summary      Reporte PDF de inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/report.pdf [get]
func (h *InventoryHandler) StockReportPDF(c *fiber.Ctx) error {
	pdf, filename, err := h.reports.StockReportPDF(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", filename))
	return c.Send(pdf)
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/taller-inventario/internal/application/dto"
	"github.com/jhoicas/taller-inventario/internal/application/usecase"
)

// VehicleHandler registro de vehículos.
type VehicleHandler struct {
	uc *usecase.VehicleUseCase
}

// NewVehicleHandler construye el handler.
func NewVehicleHandler(uc *usecase.VehicleUseCase) *VehicleHandler {
	return &VehicleHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar vehículo
// @Tags         vehicles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateVehicleRequest  true  "plate, owner"
// @Success      201   {object}  dto.VehicleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/vehicles [post]
func (h *VehicleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateVehicleRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar vehículos
// @Tags         vehicles
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.VehicleResponse
// @Router       /api/vehicles [get]
func (h *VehicleHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// TechnicianHandler registro de técnicos.
type TechnicianHandler struct {
	uc *usecase.TechnicianUseCase
}

// NewTechnicianHandler construye el handler.
func NewTechnicianHandler(uc *usecase.TechnicianUseCase) *TechnicianHandler {
	return &TechnicianHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar técnico
// @Tags         technicians
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTechnicianRequest  true  "name, note"
// @Success      201   {object}  dto.TechnicianResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/technicians [post]
func (h *TechnicianHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTechnicianRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar técnicos
// @Tags         technicians
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TechnicianResponse
// @Router       /api/technicians [get]
func (h *TechnicianHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

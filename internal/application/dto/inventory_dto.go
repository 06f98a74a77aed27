package dto

import "time"

// RegisterMovementRequest body para POST /api/inventory/movements.
type RegisterMovementRequest struct {
	ProductID    string     `json:"product_id" validate:"required,uuid"`
	Type         string     `json:"type" validate:"required,oneof=IN OUT"`
	Quantity     int        `json:"quantity" validate:"gt=0"`
	Date         *time.Time `json:"date"`
	VehicleID    *string    `json:"vehicle_id" validate:"omitempty,uuid"`
	TechnicianID *string    `json:"technician_id" validate:"omitempty,uuid"`
	Reference    string     `json:"reference" validate:"max=255"`
	Note         string     `json:"note"`
}

// MovementResponse un movimiento del ledger.
type MovementResponse struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	ProductName    string    `json:"product_name,omitempty"`
	Type           string    `json:"type"`
	Quantity       int       `json:"quantity"`
	Date           time.Time `json:"date"`
	VehicleID      *string   `json:"vehicle_id,omitempty"`
	VehiclePlate   string    `json:"vehicle_plate,omitempty"`
	TechnicianID   *string   `json:"technician_id,omitempty"`
	TechnicianName string    `json:"technician_name,omitempty"`
	Reference      string    `json:"reference"`
	Note           string    `json:"note"`
	CreatedBy      string    `json:"created_by,omitempty"`
}

// StockResponse stock actual de un producto (GET /api/products/:id/stock).
type StockResponse struct {
	ProductID string `json:"product_id"`
	Stock     int    `json:"stock"`
}

// DeliveryEstimateResponse salida de GET /api/products/:id/delivery-estimate.
// Source: stock | suppliers | product | default.
type DeliveryEstimateResponse struct {
	ProductID    string `json:"product_id"`
	Requested    int    `json:"requested"`
	Stock        int    `json:"stock"`
	Date         string `json:"date"` // YYYY-MM-DD
	Immediate    bool   `json:"immediate"`
	LeadTimeDays int    `json:"lead_time_days"`
	Source       string `json:"source"`
	Message      string `json:"message"`
}

// StockLevelDTO fila del inventario global.
type StockLevelDTO struct {
	ProductID string `json:"product_id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Unit      string `json:"unit"`
	Stock     int    `json:"stock"`
	MinStock  int    `json:"min_stock"`
	LowStock  bool   `json:"low_stock"`
}

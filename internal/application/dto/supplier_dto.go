package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSupplierRequest entrada para crear un proveedor. LeadTimeDays por defecto 7.
type CreateSupplierRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=255"`
	Contact      string `json:"contact" validate:"max=255"`
	LeadTimeDays *int   `json:"lead_time_days" validate:"omitempty,min=0"`
	Note         string `json:"note"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Contact      string    `json:"contact"`
	LeadTimeDays *int      `json:"lead_time_days"`
	Note         string    `json:"note"`
	CreatedAt    time.Time `json:"created_at"`
}

// RecordPriceRequest body para POST /api/suppliers/:id/prices. Currency por defecto la del taller.
type RecordPriceRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Price     decimal.Decimal `json:"price"`
	Currency  string          `json:"currency" validate:"omitempty,len=3"`
	Date      *time.Time      `json:"date"`
}

// SupplierPriceResponse un registro del historial de precios.
type SupplierPriceResponse struct {
	ID           string          `json:"id"`
	SupplierID   string          `json:"supplier_id"`
	SupplierName string          `json:"supplier_name,omitempty"`
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Currency     string          `json:"currency"`
	Date         time.Time       `json:"date"`
}

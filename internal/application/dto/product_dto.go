package dto

import "time"

// CreateProductRequest entrada para crear un producto.
// MinStock y LeadTimeDays opcionales: por defecto 0 y 7.
type CreateProductRequest struct {
	Code         string `json:"code" validate:"required,min=1,max=64"`
	Name         string `json:"name" validate:"required,min=1,max=255"`
	Unit         string `json:"unit" validate:"max=32"`
	MinStock     *int   `json:"min_stock" validate:"omitempty,min=0"`
	LeadTimeDays *int   `json:"lead_time_days" validate:"omitempty,min=0"`
	Note         string `json:"note"`
}

// UpdateProductRequest actualización parcial. El código no es editable.
type UpdateProductRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=255"`
	Unit         *string `json:"unit" validate:"omitempty,max=32"`
	MinStock     *int    `json:"min_stock" validate:"omitempty,min=0"`
	LeadTimeDays *int    `json:"lead_time_days" validate:"omitempty,min=0"`
	Note         *string `json:"note"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string    `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	Unit         string    `json:"unit"`
	MinStock     int       `json:"min_stock"`
	LeadTimeDays *int      `json:"lead_time_days"`
	Note         string    `json:"note"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

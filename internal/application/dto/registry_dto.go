package dto

import "time"

// CreateVehicleRequest entrada para registrar un vehículo.
type CreateVehicleRequest struct {
	Plate string `json:"plate" validate:"required,min=1,max=32"`
	Owner string `json:"owner" validate:"max=255"`
}

// VehicleResponse salida de un vehículo.
type VehicleResponse struct {
	ID        string    `json:"id"`
	Plate     string    `json:"plate"`
	Owner     string    `json:"owner"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateTechnicianRequest entrada para registrar un técnico.
type CreateTechnicianRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
	Note string `json:"note"`
}

// TechnicianResponse salida de un técnico.
type TechnicianResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCustomerRequest entrada para registrar un cliente.
type CreateCustomerRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=255"`
	Phone   string `json:"phone" validate:"max=64"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

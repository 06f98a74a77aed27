package repository

import (
	"context"

	"github.com/jhoicas/taller-inventario/internal/domain/entity"
)

// VehicleRepository define el puerto de persistencia para Vehicle.
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *entity.Vehicle) error
	GetByID(ctx context.Context, id string) (*entity.Vehicle, error)
	List(ctx context.Context) ([]*entity.Vehicle, error)
}

// TechnicianRepository define el puerto de persistencia para Technician.
type TechnicianRepository interface {
	Create(ctx context.Context, technician *entity.Technician) error
	GetByID(ctx context.Context, id string) (*entity.Technician, error)
	List(ctx context.Context) ([]*entity.Technician, error)
}

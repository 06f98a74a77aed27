package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/taller-inventario/internal/application/dto"
	"github.com/jhoicas/taller-inventario/internal/domain"
	"github.com/jhoicas/taller-inventario/internal/domain/entity"
	"github.com/jhoicas/taller-inventario/internal/domain/repository"
)

// VehicleUseCase registro de vehículos.
type VehicleUseCase struct {
	repo repository.VehicleRepository
}

// NewVehicleUseCase construye el caso de uso.
func NewVehicleUseCase(repo repository.VehicleRepository) *VehicleUseCase {
	return &VehicleUseCase{repo: repo}
}

// Create registra un vehículo. La placa se guarda en mayúsculas; repetida -> domain.ErrDuplicate.
func (uc *VehicleUseCase) Create(ctx context.Context, in dto.CreateVehicleRequest) (*dto.VehicleResponse, error) {
	plate := strings.ToUpper(strings.TrimSpace(in.Plate))
	if plate == "" {
		return nil, domain.ErrInvalidInput
	}
	v := &entity.Vehicle{
		ID:        uuid.New().String(),
		Plate:     plate,
		Owner:     strings.TrimSpace(in.Owner),
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return toVehicleResponse(v), nil
}

// List lista vehículos por placa.
func (uc *VehicleUseCase) List(ctx context.Context) ([]dto.VehicleResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VehicleResponse, 0, len(list))
	for _, v := range list {
		out = append(out, *toVehicleResponse(v))
	}
	return out, nil
}

// TechnicianUseCase registro de técnicos.
type TechnicianUseCase struct {
	repo repository.TechnicianRepository
}

// NewTechnicianUseCase construye el caso de uso.
func NewTechnicianUseCase(repo repository.TechnicianRepository) *TechnicianUseCase {
	return &TechnicianUseCase{repo: repo}
}

// Create registra un técnico.
func (uc *TechnicianUseCase) Create(ctx context.Context, in dto.CreateTechnicianRequest) (*dto.TechnicianResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	t := &entity.Technician{
		ID:        uuid.New().String(),
		Name:      name,
		Note:      in.Note,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return toTechnicianResponse(t), nil
}

// List lista técnicos por nombre.
func (uc *TechnicianUseCase) List(ctx context.Context) ([]dto.TechnicianResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TechnicianResponse, 0, len(list))
	for _, t := range list {
		out = append(out, *toTechnicianResponse(t))
	}
	return out, nil
}

func toVehicleResponse(v *entity.Vehicle) *dto.VehicleResponse {
	return &dto.VehicleResponse{ID: v.ID, Plate: v.Plate, Owner: v.Owner, CreatedAt: v.CreatedAt}
}

func toTechnicianResponse(t *entity.Technician) *dto.TechnicianResponse {
	return &dto.TechnicianResponse{ID: t.ID, Name: t.Name, Note: t.Note, CreatedAt: t.CreatedAt}
}

package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/taller-inventario/internal/application/dto"
	"github.com/jhoicas/taller-inventario/internal/domain"
	"github.com/jhoicas/taller-inventario/internal/domain/entity"
	"github.com/jhoicas/taller-inventario/internal/domain/repository"
)

// RegisterMovementUseCase registra entradas y salidas en el ledger dentro de una transacción.
// No valida stock suficiente: una salida puede dejar el stock negativo.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	metrics  Metrics
	now      Clock
}

// NewRegisterMovementUseCase construye el caso de uso. metrics puede ser nil.
func NewRegisterMovementUseCase(txRunner TxRunner, metrics Metrics) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner, metrics: metrics, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *RegisterMovementUseCase) WithClock(now Clock) *RegisterMovementUseCase {
	uc.now = now
	return uc
}

// MovementInput entrada para registrar un movimiento.
type MovementInput struct {
	UserID       string
	ProductID    string
	Type         string
	Quantity     int
	Date         *time.Time // nil = ahora
	VehicleID    *string
	TechnicianID *string
	Reference    string
	Note         string
}

// RegisterMovement valida tipo, cantidad y referencias y guarda el movimiento.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInput) (*entity.InventoryMovement, error) {
	if strings.TrimSpace(input.ProductID) == "" {
		return nil, fmt.Errorf("%w: product_id es obligatorio", domain.ErrInvalidInput)
	}
	if input.Quantity <= 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor que 0", domain.ErrInvalidInput)
	}
	delta, err := entity.NewDelta(strings.ToUpper(strings.TrimSpace(input.Type)), input.Quantity)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	date := uc.now()
	if input.Date != nil && !input.Date.IsZero() {
		date = *input.Date
	}
	mov := &entity.InventoryMovement{
		ID:           uuid.New().String(),
		ProductID:    input.ProductID,
		Delta:        delta,
		Date:         date,
		VehicleID:    emptyToNil(input.VehicleID),
		TechnicianID: emptyToNil(input.TechnicianID),
		Reference:    strings.TrimSpace(input.Reference),
		Note:         strings.TrimSpace(input.Note),
		CreatedBy:    input.UserID,
	}

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		vehicleRepo repository.VehicleRepository,
		technicianRepo repository.TechnicianRepository,
	) error {
		product, err := productRepo.GetByID(ctx, mov.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, mov.ProductID)
		}
		mov.ProductName = product.Name

		if mov.VehicleID != nil {
			v, err := vehicleRepo.GetByID(ctx, *mov.VehicleID)
			if err != nil {
				return err
			}
			if v == nil {
				return fmt.Errorf("%w: vehículo %s", domain.ErrNotFound, *mov.VehicleID)
			}
			mov.VehiclePlate = v.Plate
		}
		if mov.TechnicianID != nil {
			t, err := technicianRepo.GetByID(ctx, *mov.TechnicianID)
			if err != nil {
				return err
			}
			if t == nil {
				return fmt.Errorf("%w: técnico %s", domain.ErrNotFound, *mov.TechnicianID)
			}
			mov.TechnicianName = t.Name
		}
		return movRepo.Create(ctx, mov)
	})
	if err != nil {
		return nil, err
	}
	if uc.metrics != nil {
		uc.metrics.IncMovement(delta.Type())
	}
	return mov, nil
}

// RegisterMovementFromRequest adapta el request HTTP al caso de uso.
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*entity.InventoryMovement, error) {
	return uc.RegisterMovement(ctx, MovementInput{
		UserID:       userID,
		ProductID:    in.ProductID,
		Type:         in.Type,
		Quantity:     in.Quantity,
		Date:         in.Date,
		VehicleID:    in.VehicleID,
		TechnicianID: in.TechnicianID,
		Reference:    in.Reference,
		Note:         in.Note,
	})
}

// ToMovementResponse mapea un movimiento del ledger al DTO de salida.
func ToMovementResponse(m *entity.InventoryMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:             m.ID,
		ProductID:      m.ProductID,
		ProductName:    m.ProductName,
		Type:           m.Delta.Type(),
		Quantity:       m.Delta.Quantity(),
		Date:           m.Date,
		VehicleID:      m.VehicleID,
		VehiclePlate:   m.VehiclePlate,
		TechnicianID:   m.TechnicianID,
		TechnicianName: m.TechnicianName,
		Reference:      m.Reference,
		Note:           m.Note,
		CreatedBy:      m.CreatedBy,
	}
}

func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/taller-inventario/internal/domain/entity"
	"github.com/jhoicas/taller-inventario/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		vehicleRepo repository.VehicleRepository,
		technicianRepo repository.TechnicianRepository,
	) error) error
}

// MovementTotalsReader lectura de totales del ledger por producto.
type MovementTotalsReader interface {
	SumByProduct(ctx context.Context, productID string) (repository.MovementTotals, error)
}

// LeadTimeLister lead times de proveedores por fila de precio del producto.
type LeadTimeLister interface {
	ListLeadTimesByProduct(ctx context.Context, productID string) ([]*int, error)
}

// ProductGetter lectura de un producto; (nil, nil) si no existe.
type ProductGetter interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
}

// StockReader stock actual derivado del ledger.
type StockReader interface {
	CurrentStock(ctx context.Context, productID string) (int, error)
}

// Metrics contadores de negocio. *metrics.Metrics lo implementa.
type Metrics interface {
	IncMovement(movementType string)
	IncEstimate(source string)
}

// Clock devuelve la hora actual; se inyecta para fijar "hoy" en tests.
type Clock func() time.Time

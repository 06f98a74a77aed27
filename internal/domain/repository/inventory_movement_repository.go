package repository

import (
	"context"
	"time"

	"github.com/jhoicas/taller-inventario/internal/domain/entity"
)

// MovementTotals suma de cantidades de entrada y salida.
type MovementTotals struct {
	In  int
	Out int
}

// InventoryMovementRepository define el puerto de persistencia del ledger de movimientos.
// No expone Update ni Delete: el ledger es solo de inserción.
type InventoryMovementRepository interface {
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	// SumByProduct devuelve los totales del producto; cero si no tiene movimientos.
	SumByProduct(ctx context.Context, productID string) (MovementTotals, error)
	// SumByPeriod devuelve los totales de todos los productos entre from y to.
	SumByPeriod(ctx context.Context, from, to time.Time) (MovementTotals, error)
	// ListRecent lista los últimos movimientos (fecha descendente) con nombre de producto, placa y técnico.
	ListRecent(ctx context.Context, limit int) ([]*entity.InventoryMovement, error)
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.InventoryMovement, error)
}

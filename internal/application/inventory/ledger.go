package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/taller-inventario/internal/domain/entity"
	"github.com/jhoicas/taller-inventario/internal/domain/inventory"
)

var _ StockReader = (*LedgerReader)(nil)

// LedgerReader deriva el stock de un producto a partir de los movimientos registrados.
type LedgerReader struct {
	movements MovementTotalsReader
}

// NewLedgerReader construye el lector del ledger.
func NewLedgerReader(movements MovementTotalsReader) *LedgerReader {
	return &LedgerReader{movements: movements}
}

// CurrentStock devuelve SUM(IN) - SUM(OUT). Sin movimientos (o producto inexistente) devuelve 0.
func (r *LedgerReader) CurrentStock(ctx context.Context, productID string) (int, error) {
	totals, err := r.movements.SumByProduct(ctx, productID)
	if err != nil {
		return 0, fmt.Errorf("stock de %s: %w", productID, err)
	}
	return inventory.Balance(entity.In(totals.In), entity.Out(totals.Out)), nil
}

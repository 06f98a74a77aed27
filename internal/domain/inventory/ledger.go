package inventory

import "github.com/jhoicas/taller-inventario/internal/domain/entity"

// Balance suma las variaciones del ledger: entradas suman, salidas restan.
// El resultado no depende del orden de los movimientos y puede ser negativo.
func Balance(deltas ...entity.Delta) int {
	stock := 0
	for _, d := range deltas {
		stock += d.Signed()
	}
	return stock
}

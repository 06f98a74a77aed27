package entity

import "time"

// Valores por defecto del catálogo.
const (
	DefaultMinStock     = 0
	DefaultLeadTimeDays = 7
)

// Product representa un repuesto o insumo del catálogo del taller.
// El stock no se guarda aquí: se deriva siempre del ledger de movimientos.
type Product struct {
	ID           string
	Code         string // código único
	Name         string
	Unit         string // unidad, caja, litro...
	MinStock     int
	LeadTimeDays *int // lead time por defecto en días; nil = sin definir
	Note         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCurrency moneda por defecto del historial de precios (bolivianos).
const DefaultCurrency = "BOB"

// Supplier representa un proveedor con su tiempo de entrega.
type Supplier struct {
	ID           string
	Name         string
	Contact      string // teléfono o email
	LeadTimeDays *int
	Note         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SupplierPrice es un registro del historial de precios de un proveedor para un producto.
// Los registros son inmutables: solo se insertan.
type SupplierPrice struct {
	ID         string
	SupplierID string
	ProductID  string
	Price      decimal.Decimal
	Currency   string
	Date       time.Time

	// Solo lectura (joins)
	ProductName  string
	SupplierName string
}

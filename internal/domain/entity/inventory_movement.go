package entity

import (
	"fmt"
	"time"
)

// Tipos de movimiento de inventario tal como se persisten.
const (
	MovementTypeIN  = "IN"  // entrada
	MovementTypeOUT = "OUT" // salida
)

// Delta es la variación de stock que aporta un movimiento.
// Solo existen dos implementaciones: In y Out.
type Delta interface {
	// Signed devuelve la cantidad con signo (+ entrada, - salida).
	Signed() int
	// Type devuelve el tipo persistido (IN u OUT).
	Type() string
	// Quantity devuelve la magnitud (siempre positiva en el ledger).
	Quantity() int
	sealed()
}

// In entrada de stock.
type In int

// Out salida de stock.
type Out int

func (q In) Signed() int   { return int(q) }
func (q In) Type() string  { return MovementTypeIN }
func (q In) Quantity() int { return int(q) }
func (In) sealed()         {}

func (q Out) Signed() int   { return -int(q) }
func (q Out) Type() string  { return MovementTypeOUT }
func (q Out) Quantity() int { return int(q) }
func (Out) sealed()         {}

// NewDelta construye el Delta a partir del tipo persistido y la cantidad.
func NewDelta(movementType string, quantity int) (Delta, error) {
	switch movementType {
	case MovementTypeIN:
		return In(quantity), nil
	case MovementTypeOUT:
		return Out(quantity), nil
	}
	return nil, fmt.Errorf("tipo de movimiento desconocido %q", movementType)
}

// InventoryMovement entrada del ledger de inventario. Nunca se modifica ni se elimina.
type InventoryMovement struct {
	ID           string
	ProductID    string
	Delta        Delta
	Date         time.Time
	VehicleID    *string
	TechnicianID *string
	Reference    string
	Note         string
	CreatedBy    string

	// Solo lectura (joins de listados)
	ProductName    string
	VehiclePlate   string
	TechnicianName string
}

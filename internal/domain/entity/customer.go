package entity

import "time"

// Customer representa un cliente del taller (dueño de vehículos, contacto de órdenes).
type Customer struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	Address   string
	CreatedAt time.Time
}

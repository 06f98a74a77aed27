package entity

import "time"

// Vehicle representa un vehículo atendido en el taller.
type Vehicle struct {
	ID        string
	Plate     string // placa única
	Owner     string
	CreatedAt time.Time
}

// Technician representa un técnico del taller al que se le entregan repuestos.
type Technician struct {
	ID        string
	Name      string
	Note      string
	CreatedAt time.Time
}

package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin      = "admin"
	RoleAlmacenero = "almacenero"
	RoleTecnico    = "tecnico"
)

// Estados de User.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa un usuario del taller (personal con acceso a la API).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, almacenero, tecnico
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidRole indica si role es uno de los roles conocidos.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleAlmacenero, RoleTecnico:
		return true
	}
	return false
}

package entity

import "time"

// Roles de usuario para el middleware RBAC.
const (
	RoleAdmin      = "admin"
	RoleAuditor    = "auditor"
	RoleSupervisor = "supervisor"
)

// User representa un usuario operador del sistema (atribución de acciones).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

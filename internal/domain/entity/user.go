package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin     = "admin"
	RoleVendedor  = "vendedor"  // ventas / POS
	RoleBodeguero = "bodeguero" // inventario
)

// ValidRole indica si el rol es uno de los tres conocidos.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleVendedor || r == RoleBodeguero
}

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string // admin | vendedor | bodeguero
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

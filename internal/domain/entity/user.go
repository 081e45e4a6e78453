package entity

import "time"

// Roles formales del sistema.
const (
	RoleAdmin    = "ADMIN"
	RoleVendedor = "VENDEDOR"
	RoleGerente  = "GERENTE"
)

// StaffRoles roles que se pueden asignar al crear personal de tienda.
var StaffRoles = []string{RoleVendedor, RoleGerente}

// IsStaffRole indica si name es uno de los roles de personal permitidos.
func IsStaffRole(name string) bool {
	for _, r := range StaffRoles {
		if r == name {
			return true
		}
	}
	return false
}

// User representa un operador del punto de venta.
// RoleLabel es el cargo mostrado en pantalla; la pertenencia formal a roles vive en user_roles.
type User struct {
	ID           int64
	Username     string // único e inmutable
	PasswordHash string // nunca sale de la capa de aplicación
	RoleLabel    *string
	Email        *string
	StoreID      *int64
	Status       Status
	CreatedAt    *time.Time
	Roles        []string
}

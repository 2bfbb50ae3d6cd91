package entity

import "time"

// Roles de usuario.
const (
	RoleCliente  = "cliente"
	RoleEmpleado = "empleado"
	RoleAdmin    = "admin"
)

// User representa una cuenta del salón: cliente, empleado o administrador.
// Specialty solo aplica a empleados (ej. "colorimetría", "manicure").
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	Phone        string
	Specialty    string
	CreatedAt    time.Time
}

// ValidRole indica si el rol es uno de los reconocidos.
func ValidRole(role string) bool {
	switch role {
	case RoleCliente, RoleEmpleado, RoleAdmin:
		return true
	}
	return false
}

package dto

import "time"

// RegisterRequest entrada del registro público. El rol siempre es cliente.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
}

// CreateEmployeeRequest entrada para que un admin dé de alta un empleado.
type CreateEmployeeRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=200"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Phone     string `json:"phone" validate:"omitempty,max=30"`
	Specialty string `json:"specialty" validate:"omitempty,max=100"`
	Role      string `json:"role" validate:"required,oneof=empleado admin"`
}

// LoginRequest entrada del login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Phone     string    `json:"phone,omitempty"`
	Specialty string    `json:"specialty,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse salida con token JWT y usuario.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

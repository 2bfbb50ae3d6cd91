package repository

import "github.com/casabella/casa-bella-api/internal/domain/entity"

// UserRepository puerto de persistencia de usuarios.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	ListByRole(role string) ([]*entity.User, error)
}

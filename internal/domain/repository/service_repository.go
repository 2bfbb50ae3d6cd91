package repository

import "github.com/casabella/casa-bella-api/internal/domain/entity"

// ServiceRepository puerto de persistencia de servicios del salón.
type ServiceRepository interface {
	Create(service *entity.Service) error
	Update(service *entity.Service) error
	GetByID(id string) (*entity.Service, error)
	List() ([]*entity.Service, error)
}

// CategoryRepository puerto de persistencia de categorías de producto.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	List() ([]*entity.Category, error)
}

package repository

import "github.com/casabella/casa-bella-api/internal/domain/entity"

// ProductFilter filtros de listado de catálogo.
type ProductFilter struct {
	Search     string // búsqueda por nombre, insensible a acentos
	CategoryID string
	Type       string
	InStock    bool
	Limit      int
	Offset     int
}

// ProductRepository puerto de persistencia de productos.
// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE); solo tiene sentido
// dentro de una transacción del TxRunner.
type ProductRepository interface {
	Create(product *entity.Product) error
	Update(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetForUpdate(id string) (*entity.Product, error)
	List(filter ProductFilter) ([]*entity.Product, error)
	UpdateStock(id string, newStock int) error
	ListLowStock() ([]*entity.Product, error)
}

package repository

import (
	"time"

	"github.com/casabella/casa-bella-api/internal/domain/entity"
)

// MovementFilter filtros del listado del libro de inventario.
type MovementFilter struct {
	ProductID string
	Type      string
	From      time.Time
	To        time.Time
	Limit     int
	Offset    int
}

// InventoryMovementRepository puerto del libro de inventario (solo inserciones).
type InventoryMovementRepository interface {
	Create(movement *entity.InventoryMovement) error
	List(filter MovementFilter) ([]*entity.InventoryMovement, error)
}

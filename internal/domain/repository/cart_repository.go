package repository

import "github.com/casabella/casa-bella-api/internal/domain/entity"

// CartRepository puerto de persistencia del carrito.
//
// FindOrCreateActive y GetActiveForUpdate deben usarse dentro de una
// transacción: la primera hace INSERT ... ON CONFLICT DO NOTHING contra el
// índice único parcial y luego SELECT ... FOR UPDATE, cerrando la carrera de
// "buscar y crear"; la segunda bloquea el carrito activo para el checkout.
type CartRepository interface {
	FindOrCreateActive(userID string) (*entity.Cart, error)
	GetActiveByUser(userID string) (*entity.Cart, error)
	GetActiveForUpdate(userID string) (*entity.Cart, error)
	SetStatus(cartID, status string) error

	CreateLine(line *entity.CartLine) error
	GetLine(lineID string) (*entity.CartLine, error)
	ListLines(cartID string) ([]*entity.CartLine, error)
	UpdateLineQuantity(lineID string, quantity int) error
	DeleteLine(lineID string) error
	DeleteLines(cartID string) error
}

package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrUserNotFound           = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists     = errors.New("el email ya está registrado")
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrDuplicate              = errors.New("recurso duplicado")
	ErrUnauthorized           = errors.New("no autorizado")
	ErrForbidden              = errors.New("acceso denegado")
	ErrConflict               = errors.New("conflicto con el estado actual")
	ErrInsufficientStock      = errors.New("stock insuficiente")
	ErrCartEmpty              = errors.New("el carrito está vacío")
	ErrCartNotActive          = errors.New("el carrito no está activo")
	ErrInvalidPaymentMethod   = errors.New("método de pago no reconocido")
	ErrInvalidStateTransition = errors.New("transición de estado inválida")
	ErrSaleAlreadyExists      = errors.New("la cita ya tiene una venta generada")
)

// InsufficientStockError identifica el producto que impidió el checkout.
// errors.Is(err, ErrInsufficientStock) sigue funcionando vía Unwrap.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %q: disponible %d, solicitado %d",
		e.ProductName, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

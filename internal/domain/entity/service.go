package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service representa un servicio del salón (corte, manicure, etc.).
// No tiene concepto de stock; su cantidad por carrito se limita por política.
type Service struct {
	ID              string
	Name            string
	Description     string
	Price           decimal.Decimal
	DurationMinutes int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de carrito. activo → completado es unidireccional (checkout);
// abandonado lo marca mantenimiento para carritos viejos.
const (
	CartActivo     = "activo"
	CartCompletado = "completado"
	CartAbandonado = "abandonado"
)

// Cart carrito de compras. A lo sumo uno activo por usuario
// (índice único parcial en carts(user_id) WHERE status='activo').
type Cart struct {
	ID        string
	UserID    string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartLine línea de carrito: exactamente uno de ProductID/ServiceID no vacío.
// UnitPrice queda congelado al momento de agregar (price-lock); el checkout
// no vuelve a leer el precio del catálogo.
type CartLine struct {
	ID        string
	CartID    string
	ProductID string
	ServiceID string
	Quantity  int
	UnitPrice decimal.Decimal
	CreatedAt time.Time
}

// Item devuelve la referencia etiquetada de la línea.
func (l *CartLine) Item() ItemRef {
	if l.ProductID != "" {
		return ProductRef(l.ProductID)
	}
	return ServiceRef(l.ServiceID)
}

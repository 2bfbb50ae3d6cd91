package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale cabecera de venta. UserID vacío = venta mostrador (cliente no registrado).
// AppointmentID no vacío cuando la venta nació de una cita completada;
// la columna es UNIQUE, así que cada cita genera a lo sumo una venta.
type Sale struct {
	ID            string
	UserID        string
	AppointmentID string
	Date          time.Time
	Subtotal      decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
}

// SaleLine copia inmutable de una línea comprada: cantidad y precio unitario
// congelados al momento de la venta.
type SaleLine struct {
	ID        string
	SaleID    string
	ProductID string
	ServiceID string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Item devuelve la referencia etiquetada de la línea.
func (l *SaleLine) Item() ItemRef {
	if l.ProductID != "" {
		return ProductRef(l.ProductID)
	}
	return ServiceRef(l.ServiceID)
}

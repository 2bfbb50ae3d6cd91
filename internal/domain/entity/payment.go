package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados.
const (
	PaymentEfectivo      = "efectivo"
	PaymentTarjeta       = "tarjeta"
	PaymentTransferencia = "transferencia"
)

// Estados de pago.
const (
	PaymentCompletado = "completado"
	PaymentPendiente  = "pendiente"
)

// Payment registro de pago de una venta. Amount siempre igual al total de la venta.
type Payment struct {
	ID     string
	SaleID string
	Method string
	Amount decimal.Decimal
	Status string
	PaidAt time.Time
}

// ValidPaymentMethod indica si el método es uno de los reconocidos.
func ValidPaymentMethod(method string) bool {
	switch method {
	case PaymentEfectivo, PaymentTarjeta, PaymentTransferencia:
		return true
	}
	return false
}

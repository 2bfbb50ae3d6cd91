package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutRequest body para POST /api/checkout.
type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required,oneof=efectivo tarjeta transferencia"`
}

// SaleLineResponse una línea de venta.
type SaleLineResponse struct {
	ID        string          `json:"id"`
	ItemType  string          `json:"item_type"`
	ItemID    string          `json:"item_id"`
	ItemName  string          `json:"item_name,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// PaymentResponse registro de pago de la venta.
type PaymentResponse struct {
	ID     string          `json:"id"`
	Method string          `json:"method"`
	Amount decimal.Decimal `json:"amount"`
	Status string          `json:"status"`
	PaidAt time.Time       `json:"paid_at"`
}

// SaleResponse venta completa: cabecera, líneas y pago.
type SaleResponse struct {
	ID            string             `json:"id"`
	UserID        string             `json:"user_id,omitempty"`
	AppointmentID string             `json:"appointment_id,omitempty"`
	Date          time.Time          `json:"date"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Tax           decimal.Decimal    `json:"tax"`
	Total         decimal.Decimal    `json:"total"`
	Lines         []SaleLineResponse `json:"lines,omitempty"`
	Payment       *PaymentResponse   `json:"payment,omitempty"`
}

// SaleListRequest filtros para el listado admin de ventas (query params).
type SaleListRequest struct {
	From string `query:"from"` // YYYY-MM-DD
	To   string `query:"to"`   // YYYY-MM-DD
}

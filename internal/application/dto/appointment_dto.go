package dto

import "time"

// BookAppointmentRequest body para POST /api/appointments.
type BookAppointmentRequest struct {
	ServiceID   string    `json:"service_id" validate:"required,uuid"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
	Notes       string    `json:"notes" validate:"omitempty,max=1000"`
}

// AssignAppointmentRequest body para PUT /api/appointments/:id/assign (solo admin).
type AssignAppointmentRequest struct {
	EmployeeID string `json:"employee_id" validate:"required,uuid"`
}

// CompleteAppointmentRequest body para POST /api/appointments/:id/complete.
// Completar genera la venta del servicio, de ahí el método de pago.
type CompleteAppointmentRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required,oneof=efectivo tarjeta transferencia"`
}

// AppointmentResponse salida de una cita.
type AppointmentResponse struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"client_id"`
	EmployeeID  string    `json:"employee_id,omitempty"`
	ServiceID   string    `json:"service_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes,omitempty"`
	SaleID      string    `json:"sale_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

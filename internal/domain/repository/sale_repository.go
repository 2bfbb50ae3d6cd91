package repository

import (
	"time"

	"github.com/casabella/casa-bella-api/internal/domain/entity"
)

// SaleRepository puerto de persistencia de ventas, líneas y pagos.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateLine(line *entity.SaleLine) error
	CreatePayment(payment *entity.Payment) error
	GetByID(id string) (*entity.Sale, error)
	GetByAppointmentID(appointmentID string) (*entity.Sale, error)
	GetLines(saleID string) ([]*entity.SaleLine, error)
	GetPayment(saleID string) (*entity.Payment, error)
	ListByUser(userID string) ([]*entity.Sale, error)
	List(from, to time.Time) ([]*entity.Sale, error)
}

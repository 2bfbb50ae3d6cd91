package repository

import "github.com/casabella/casa-bella-api/internal/domain/entity"

// AppointmentRepository puerto de persistencia de citas.
// GetForUpdate bloquea la fila para las transiciones de estado y la
// generación de venta (una sola por cita).
type AppointmentRepository interface {
	Create(appointment *entity.Appointment) error
	GetByID(id string) (*entity.Appointment, error)
	GetForUpdate(id string) (*entity.Appointment, error)
	Update(appointment *entity.Appointment) error
	ListByClient(clientID string) ([]*entity.Appointment, error)
	ListByEmployee(employeeID string) ([]*entity.Appointment, error)
	ListByStatus(status string) ([]*entity.Appointment, error)
}

package appointment

import (
	"context"

	"github.com/casabella/casa-bella-api/internal/domain/repository"
)

// TxRunner ejecuta transiciones de cita dentro de una transacción. Completar
// una cita genera su venta en la misma tx, con la fila de la cita bloqueada.
type TxRunner interface {
	RunAppointment(ctx context.Context, fn func(
		apptRepo repository.AppointmentRepository,
		serviceRepo repository.ServiceRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

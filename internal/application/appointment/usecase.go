package appointment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/casabella/casa-bella-api/internal/application/dto"
	"github.com/casabella/casa-bella-api/internal/domain"
	"github.com/casabella/casa-bella-api/internal/domain/entity"
	"github.com/casabella/casa-bella-api/internal/domain/pricing"
	"github.com/casabella/casa-bella-api/internal/domain/repository"
	"github.com/casabella/casa-bella-api/pkg/logger"
	"github.com/casabella/casa-bella-api/pkg/metrics"
)

// AppointmentUseCase ciclo de vida de citas: reservar, asignar, confirmar,
// completar (genera la venta del servicio) y cancelar.
type AppointmentUseCase struct {
	txRunner    TxRunner
	apptRepo    repository.AppointmentRepository
	serviceRepo repository.ServiceRepository
	userRepo    repository.UserRepository
	notifRepo   repository.NotificationRepository
	metrics     *metrics.SalesMetrics
	log         *logger.Logger
	taxRate     decimal.Decimal
}

// NewAppointmentUseCase construye el caso de uso inyectando sus dependencias.
func NewAppointmentUseCase(
	txRunner TxRunner,
	apptRepo repository.AppointmentRepository,
	serviceRepo repository.ServiceRepository,
	userRepo repository.UserRepository,
	notifRepo repository.NotificationRepository,
	m *metrics.SalesMetrics,
	log *logger.Logger,
	taxRate decimal.Decimal,
) *AppointmentUseCase {
	return &AppointmentUseCase{
		txRunner:    txRunner,
		apptRepo:    apptRepo,
		serviceRepo: serviceRepo,
		userRepo:    userRepo,
		notifRepo:   notifRepo,
		metrics:     m,
		log:         log,
		taxRate:     taxRate,
	}
}

// Book reserva una cita para el cliente: servicio existente y fecha futura.
// Nace en estado pendiente, sin empleado asignado.
func (uc *AppointmentUseCase) Book(_ context.Context, clientID string, in dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	if !in.ScheduledAt.After(time.Now()) {
		return nil, domain.ErrInvalidInput
	}
	service, err := uc.serviceRepo.GetByID(in.ServiceID)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, domain.ErrNotFound
	}

	appt := &entity.Appointment{
		ClientID:    clientID,
		ServiceID:   in.ServiceID,
		ScheduledAt: in.ScheduledAt,
		Status:      entity.CitaPendiente,
		Notes:       in.Notes,
	}
	if err := uc.apptRepo.Create(appt); err != nil {
		return nil, err
	}
	return toAppointmentResponse(appt, ""), nil
}

// Assign asigna un empleado a la cita (solo admin). La cita debe seguir
// abierta (pendiente o confirmada) y el usuario asignado ser empleado.
func (uc *AppointmentUseCase) Assign(_ context.Context, appointmentID, employeeID string) (*dto.AppointmentResponse, error) {
	employee, err := uc.userRepo.GetByID(employeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil || employee.Role != entity.RoleEmpleado {
		return nil, domain.ErrInvalidInput
	}

	appt, err := uc.apptRepo.GetByID(appointmentID)
	if err != nil {
		return nil, err
	}
	if appt == nil {
		return nil, domain.ErrNotFound
	}
	if appt.Terminal() {
		return nil, domain.ErrInvalidStateTransition
	}

	appt.EmployeeID = employeeID
	if err := uc.apptRepo.Update(appt); err != nil {
		return nil, err
	}
	return toAppointmentResponse(appt, ""), nil
}

// Confirm pasa la cita de pendiente a confirmada. Solo el empleado asignado.
func (uc *AppointmentUseCase) Confirm(ctx context.Context, appointmentID, employeeID string) (*dto.AppointmentResponse, error) {
	var appt *entity.Appointment
	err := uc.txRunner.RunAppointment(ctx, func(
		apptRepo repository.AppointmentRepository,
		_ repository.ServiceRepository,
		_ repository.SaleRepository,
	) error {
		var err error
		appt, err = uc.lockOpenAppointment(apptRepo, appointmentID)
		if err != nil {
			return err
		}
		if appt.EmployeeID != employeeID {
			return domain.ErrForbidden
		}
		if !appt.CanTransitionTo(entity.CitaConfirmada) {
			return domain.ErrInvalidStateTransition
		}
		appt.Status = entity.CitaConfirmada
		return apptRepo.Update(appt)
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.Appointments.WithLabelValues(entity.CitaConfirmada).Inc()
	uc.notifyClient(appt, "Tu cita fue confirmada")
	return toAppointmentResponse(appt, ""), nil
}

// Complete cierra la cita y genera su venta: una línea con el precio vigente
// del servicio, mismas reglas de totales que el checkout. Solo el empleado
// asignado, solo desde confirmada, y a lo sumo una venta por cita (recheck
// dentro de la tx además del único en base).
func (uc *AppointmentUseCase) Complete(ctx context.Context, appointmentID, employeeID, paymentMethod string) (*dto.AppointmentResponse, error) {
	if !entity.ValidPaymentMethod(paymentMethod) {
		return nil, domain.ErrInvalidPaymentMethod
	}

	var (
		appt *entity.Appointment
		sale *entity.Sale
	)
	err := uc.txRunner.RunAppointment(ctx, func(
		apptRepo repository.AppointmentRepository,
		serviceRepo repository.ServiceRepository,
		saleRepo repository.SaleRepository,
	) error {
		var err error
		appt, err = uc.lockOpenAppointment(apptRepo, appointmentID)
		if err != nil {
			return err
		}
		if appt.EmployeeID != employeeID {
			return domain.ErrForbidden
		}
		if !appt.CanTransitionTo(entity.CitaCompletada) {
			return domain.ErrInvalidStateTransition
		}

		existing, err := saleRepo.GetByAppointmentID(appt.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrSaleAlreadyExists
		}

		service, err := serviceRepo.GetByID(appt.ServiceID)
		if err != nil {
			return err
		}
		if service == nil {
			return domain.ErrNotFound
		}

		totals := pricing.Compute([]pricing.Line{{Quantity: 1, UnitPrice: service.Price}}, uc.taxRate)
		now := time.Now()
		sale = &entity.Sale{
			UserID:        appt.ClientID,
			AppointmentID: appt.ID,
			Date:          now,
			Subtotal:      totals.Subtotal,
			Tax:           totals.Tax,
			Total:         totals.Total,
		}
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		if err := saleRepo.CreateLine(&entity.SaleLine{
			SaleID:    sale.ID,
			ServiceID: service.ID,
			Quantity:  1,
			UnitPrice: service.Price,
		}); err != nil {
			return err
		}
		if err := saleRepo.CreatePayment(&entity.Payment{
			SaleID: sale.ID,
			Method: paymentMethod,
			Amount: totals.Total,
			Status: entity.PaymentCompletado,
			PaidAt: now,
		}); err != nil {
			return err
		}

		appt.Status = entity.CitaCompletada
		return apptRepo.Update(appt)
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.Appointments.WithLabelValues(entity.CitaCompletada).Inc()
	uc.metrics.ObserveSale(sale.Total)
	return toAppointmentResponse(appt, sale.ID), nil
}

// Cancel cancela una cita abierta. Pueden hacerlo el cliente dueño, el
// empleado asignado o un admin.
func (uc *AppointmentUseCase) Cancel(ctx context.Context, appointmentID, userID, role string) (*dto.AppointmentResponse, error) {
	var appt *entity.Appointment
	err := uc.txRunner.RunAppointment(ctx, func(
		apptRepo repository.AppointmentRepository,
		_ repository.ServiceRepository,
		_ repository.SaleRepository,
	) error {
		var err error
		appt, err = uc.lockOpenAppointment(apptRepo, appointmentID)
		if err != nil {
			return err
		}
		allowed := role == entity.RoleAdmin ||
			appt.ClientID == userID ||
			(appt.EmployeeID != "" && appt.EmployeeID == userID)
		if !allowed {
			return domain.ErrForbidden
		}
		if !appt.CanTransitionTo(entity.CitaCancelada) {
			return domain.ErrInvalidStateTransition
		}
		appt.Status = entity.CitaCancelada
		return apptRepo.Update(appt)
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.Appointments.WithLabelValues(entity.CitaCancelada).Inc()
	uc.notifyClient(appt, "Tu cita fue cancelada")
	return toAppointmentResponse(appt, ""), nil
}

// GetByID devuelve una cita visible para el solicitante: cliente dueño,
// empleado asignado o admin.
func (uc *AppointmentUseCase) GetByID(_ context.Context, appointmentID, userID, role string) (*dto.AppointmentResponse, error) {
	appt, err := uc.apptRepo.GetByID(appointmentID)
	if err != nil {
		return nil, err
	}
	if appt == nil {
		return nil, domain.ErrNotFound
	}
	if role != entity.RoleAdmin && appt.ClientID != userID && appt.EmployeeID != userID {
		return nil, domain.ErrForbidden
	}
	return toAppointmentResponse(appt, ""), nil
}

// ListMine lista las citas del solicitante según su rol: las propias para
// clientes, las asignadas para empleados.
func (uc *AppointmentUseCase) ListMine(_ context.Context, userID, role string) ([]dto.AppointmentResponse, error) {
	var (
		appts []*entity.Appointment
		err   error
	)
	if role == entity.RoleEmpleado {
		appts, err = uc.apptRepo.ListByEmployee(userID)
	} else {
		appts, err = uc.apptRepo.ListByClient(userID)
	}
	if err != nil {
		return nil, err
	}
	return toAppointmentResponses(appts), nil
}

// ListByStatus listado admin por estado.
func (uc *AppointmentUseCase) ListByStatus(_ context.Context, status string) ([]dto.AppointmentResponse, error) {
	switch status {
	case entity.CitaPendiente, entity.CitaConfirmada, entity.CitaCancelada, entity.CitaCompletada:
	default:
		return nil, domain.ErrInvalidInput
	}
	appts, err := uc.apptRepo.ListByStatus(status)
	if err != nil {
		return nil, err
	}
	return toAppointmentResponses(appts), nil
}

// lockOpenAppointment bloquea la cita y valida que exista.
func (uc *AppointmentUseCase) lockOpenAppointment(apptRepo repository.AppointmentRepository, id string) (*entity.Appointment, error) {
	appt, err := apptRepo.GetForUpdate(id)
	if err != nil {
		return nil, err
	}
	if appt == nil {
		return nil, domain.ErrNotFound
	}
	return appt, nil
}

// notifyClient genera la notificación de cita para el cliente, post-commit.
func (uc *AppointmentUseCase) notifyClient(appt *entity.Appointment, message string) {
	n := &entity.Notification{
		UserID:    appt.ClientID,
		Message:   message,
		Type:      entity.NotifCita,
		CreatedAt: time.Now(),
	}
	if err := uc.notifRepo.Create(n); err != nil {
		uc.log.Warn().Err(err).Str("appointment_id", appt.ID).Msg("cita: notificación al cliente falló")
	}
}

func toAppointmentResponse(a *entity.Appointment, saleID string) *dto.AppointmentResponse {
	return &dto.AppointmentResponse{
		ID:          a.ID,
		ClientID:    a.ClientID,
		EmployeeID:  a.EmployeeID,
		ServiceID:   a.ServiceID,
		ScheduledAt: a.ScheduledAt,
		Status:      a.Status,
		Notes:       a.Notes,
		SaleID:      saleID,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func toAppointmentResponses(appts []*entity.Appointment) []dto.AppointmentResponse {
	out := make([]dto.AppointmentResponse, 0, len(appts))
	for _, a := range appts {
		out = append(out, *toAppointmentResponse(a, ""))
	}
	return out
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/casabella/casa-bella-api/internal/domain"
	"github.com/casabella/casa-bella-api/internal/domain/entity"
	"github.com/casabella/casa-bella-api/internal/domain/repository"
)

var _ repository.AppointmentRepository = (*AppointmentRepo)(nil)

// AppointmentRepo implementación del puerto AppointmentRepository sobre PostgreSQL.
type AppointmentRepo struct {
	q Querier
}

// NewAppointmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAppointmentRepository(q Querier) *AppointmentRepo {
	return &AppointmentRepo{q: q}
}

const appointmentColumns = `id, client_id, COALESCE(employee_id::text, ''), service_id, scheduled_at, status, COALESCE(notes, ''), created_at, updated_at`

func scanAppointment(row pgx.Row) (*entity.Appointment, error) {
	var a entity.Appointment
	err := row.Scan(&a.ID, &a.ClientID, &a.EmployeeID, &a.ServiceID,
		&a.ScheduledAt, &a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create persiste una cita nueva.
func (r *AppointmentRepo) Create(a *entity.Appointment) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO appointments (id, client_id, employee_id, service_id, scheduled_at, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		a.ID, a.ClientID, nullIfEmpty(a.EmployeeID), a.ServiceID,
		a.ScheduledAt, a.Status, nullIfEmpty(a.Notes), a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

// GetByID obtiene una cita por ID. Devuelve nil sin error si no existe.
func (r *AppointmentRepo) GetByID(id string) (*entity.Appointment, error) {
	a, err := scanAppointment(r.q.QueryRow(context.Background(),
		`SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return a, nil
}

// GetForUpdate igual que GetByID pero bloqueando la fila. Se usa en las
// transiciones de estado y en la generación de venta al completar.
func (r *AppointmentRepo) GetForUpdate(id string) (*entity.Appointment, error) {
	a, err := scanAppointment(r.q.QueryRow(context.Background(),
		`SELECT `+appointmentColumns+` FROM appointments WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get appointment for update: %w", err)
	}
	return a, nil
}

// Update persiste empleado asignado, fecha, estado y notas.
func (r *AppointmentRepo) Update(a *entity.Appointment) error {
	a.UpdatedAt = time.Now()
	cmd, err := r.q.Exec(context.Background(), `
		UPDATE appointments
		SET employee_id = $2, scheduled_at = $3, status = $4, notes = $5, updated_at = $6
		WHERE id = $1`,
		a.ID, nullIfEmpty(a.EmployeeID), a.ScheduledAt, a.Status, nullIfEmpty(a.Notes), a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update appointment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByClient lista las citas de un cliente, próximas primero.
func (r *AppointmentRepo) ListByClient(clientID string) ([]*entity.Appointment, error) {
	return r.list(`client_id = $1`, clientID)
}

// ListByEmployee lista las citas asignadas a un empleado, próximas primero.
func (r *AppointmentRepo) ListByEmployee(employeeID string) ([]*entity.Appointment, error) {
	return r.list(`employee_id = $1`, employeeID)
}

// ListByStatus lista las citas en un estado dado, próximas primero.
func (r *AppointmentRepo) ListByStatus(status string) ([]*entity.Appointment, error) {
	return r.list(`status = $1`, status)
}

func (r *AppointmentRepo) list(where string, arg any) ([]*entity.Appointment, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+appointmentColumns+` FROM appointments WHERE `+where+` ORDER BY scheduled_at DESC`, arg)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	var list []*entity.Appointment
	for rows.Next() {
		var a entity.Appointment
		err := rows.Scan(&a.ID, &a.ClientID, &a.EmployeeID, &a.ServiceID,
			&a.ScheduledAt, &a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

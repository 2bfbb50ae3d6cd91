package entity

import "time"

// Estados de cita. El flujo es pendiente → confirmada → completada;
// cancelada es alcanzable desde pendiente y desde confirmada.
const (
	CitaPendiente  = "pendiente"
	CitaConfirmada = "confirmada"
	CitaCancelada  = "cancelada"
	CitaCompletada = "completada"
)

// Appointment (cita) reserva de un servicio en una fecha y hora.
// EmployeeID queda vacío hasta que un admin asigna; solo el empleado
// asignado puede confirmar y completar.
type Appointment struct {
	ID          string
	ClientID    string
	EmployeeID  string
	ServiceID   string
	ScheduledAt time.Time
	Status      string
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// transiciones permitidas del estado de cita.
var citaTransitions = map[string][]string{
	CitaPendiente:  {CitaConfirmada, CitaCancelada},
	CitaConfirmada: {CitaCompletada, CitaCancelada},
	CitaCancelada:  {},
	CitaCompletada: {},
}

// CanTransitionTo indica si la cita puede pasar al estado destino.
func (a *Appointment) CanTransitionTo(target string) bool {
	for _, next := range citaTransitions[a.Status] {
		if next == target {
			return true
		}
	}
	return false
}

// Terminal indica si el estado actual ya no admite transiciones.
func (a *Appointment) Terminal() bool {
	return len(citaTransitions[a.Status]) == 0
}

package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/casabella/casa-bella-api/internal/domain/entity"
)

// La máquina de estados de citas: pendiente → confirmada → completada,
// cancelada alcanzable desde pendiente y confirmada, terminales sin salida.
func TestAppointment_Transiciones(t *testing.T) {
	cases := []struct {
		from    string
		to      string
		allowed bool
	}{
		{entity.CitaPendiente, entity.CitaConfirmada, true},
		{entity.CitaPendiente, entity.CitaCancelada, true},
		{entity.CitaPendiente, entity.CitaCompletada, false}, // no se salta la confirmación
		{entity.CitaConfirmada, entity.CitaCompletada, true},
		{entity.CitaConfirmada, entity.CitaCancelada, true},
		{entity.CitaConfirmada, entity.CitaPendiente, false}, // sin retrocesos
		{entity.CitaCancelada, entity.CitaConfirmada, false},
		{entity.CitaCancelada, entity.CitaCompletada, false},
		{entity.CitaCompletada, entity.CitaCancelada, false},
		{entity.CitaCompletada, entity.CitaConfirmada, false},
	}
	for _, tc := range cases {
		a := &entity.Appointment{Status: tc.from}
		assert.Equal(t, tc.allowed, a.CanTransitionTo(tc.to), "%s → %s", tc.from, tc.to)
	}
}

func TestAppointment_Terminal(t *testing.T) {
	assert.False(t, (&entity.Appointment{Status: entity.CitaPendiente}).Terminal())
	assert.False(t, (&entity.Appointment{Status: entity.CitaConfirmada}).Terminal())
	assert.True(t, (&entity.Appointment{Status: entity.CitaCancelada}).Terminal())
	assert.True(t, (&entity.Appointment{Status: entity.CitaCompletada}).Terminal())
}

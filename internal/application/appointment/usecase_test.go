package appointment_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casabella/casa-bella-api/internal/application/appointment"
	"github.com/casabella/casa-bella-api/internal/application/dto"
	"github.com/casabella/casa-bella-api/internal/domain"
	"github.com/casabella/casa-bella-api/internal/domain/entity"
	"github.com/casabella/casa-bella-api/internal/domain/repository"
	"github.com/casabella/casa-bella-api/pkg/logger"
	"github.com/casabella/casa-bella-api/pkg/metrics"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de test en memoria
// ──────────────────────────────────────────────────────────────────────────────

// Los colectores Prometheus se registran en el registry global; una sola
// instancia compartida por todo el paquete de tests.
var testMetrics = metrics.NewSalesMetrics()

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

type memApptRepo struct {
	appts  map[string]*entity.Appointment
	nextID int
}

func (m *memApptRepo) Create(a *entity.Appointment) error {
	m.nextID++
	a.ID = fmt.Sprintf("appt-%d", m.nextID)
	m.appts[a.ID] = a
	return nil
}

func (m *memApptRepo) GetByID(id string) (*entity.Appointment, error)      { return m.appts[id], nil }
func (m *memApptRepo) GetForUpdate(id string) (*entity.Appointment, error) { return m.appts[id], nil }

func (m *memApptRepo) Update(a *entity.Appointment) error {
	if _, ok := m.appts[a.ID]; !ok {
		return domain.ErrNotFound
	}
	m.appts[a.ID] = a
	return nil
}

func (m *memApptRepo) ListByClient(clientID string) ([]*entity.Appointment, error) {
	var out []*entity.Appointment
	for _, a := range m.appts {
		if a.ClientID == clientID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memApptRepo) ListByEmployee(employeeID string) ([]*entity.Appointment, error) {
	var out []*entity.Appointment
	for _, a := range m.appts {
		if a.EmployeeID == employeeID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memApptRepo) ListByStatus(status string) ([]*entity.Appointment, error) {
	var out []*entity.Appointment
	for _, a := range m.appts {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out, nil
}

type memServiceRepo struct {
	services map[string]*entity.Service
}

func (m *memServiceRepo) Create(s *entity.Service) error             { panic("no usado") }
func (m *memServiceRepo) Update(s *entity.Service) error             { panic("no usado") }
func (m *memServiceRepo) GetByID(id string) (*entity.Service, error) { return m.services[id], nil }
func (m *memServiceRepo) List() ([]*entity.Service, error)           { panic("no usado") }

type memSaleRepo struct {
	sales    []*entity.Sale
	lines    []*entity.SaleLine
	payments []*entity.Payment
}

func (m *memSaleRepo) Create(sale *entity.Sale) error {
	if sale.ID == "" {
		sale.ID = fmt.Sprintf("sale-%d", len(m.sales)+1)
	}
	m.sales = append(m.sales, sale)
	return nil
}

func (m *memSaleRepo) CreateLine(line *entity.SaleLine) error {
	m.lines = append(m.lines, line)
	return nil
}

func (m *memSaleRepo) CreatePayment(p *entity.Payment) error {
	m.payments = append(m.payments, p)
	return nil
}

func (m *memSaleRepo) GetByAppointmentID(appointmentID string) (*entity.Sale, error) {
	for _, s := range m.sales {
		if s.AppointmentID == appointmentID {
			return s, nil
		}
	}
	return nil, nil
}

func (m *memSaleRepo) GetByID(id string) (*entity.Sale, error)            { panic("no usado") }
func (m *memSaleRepo) GetLines(saleID string) ([]*entity.SaleLine, error) { panic("no usado") }
func (m *memSaleRepo) GetPayment(saleID string) (*entity.Payment, error)  { panic("no usado") }
func (m *memSaleRepo) ListByUser(userID string) ([]*entity.Sale, error)   { panic("no usado") }
func (m *memSaleRepo) List(from, to time.Time) ([]*entity.Sale, error)    { panic("no usado") }

type memUserRepo struct {
	users map[string]*entity.User
}

func (m *memUserRepo) Create(u *entity.User) error                    { panic("no usado") }
func (m *memUserRepo) GetByID(id string) (*entity.User, error)        { return m.users[id], nil }
func (m *memUserRepo) FindByEmail(email string) (*entity.User, error) { panic("no usado") }
func (m *memUserRepo) ListByRole(role string) ([]*entity.User, error) { panic("no usado") }

type memNotifRepo struct {
	created []*entity.Notification
}

func (m *memNotifRepo) Create(n *entity.Notification) error { m.created = append(m.created, n); return nil }
func (m *memNotifRepo) ListByUser(userID string) ([]*entity.Notification, error) { panic("no usado") }
func (m *memNotifRepo) MarkRead(id, userID string) error                         { panic("no usado") }

type memTxRunner struct {
	apptRepo    *memApptRepo
	serviceRepo *memServiceRepo
	saleRepo    *memSaleRepo
}

func (m *memTxRunner) RunAppointment(ctx context.Context, fn func(
	apptRepo repository.AppointmentRepository,
	serviceRepo repository.ServiceRepository,
	saleRepo repository.SaleRepository,
) error) error {
	return fn(m.apptRepo, m.serviceRepo, m.saleRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario base
// ──────────────────────────────────────────────────────────────────────────────

const (
	testClientID   = "11111111-1111-1111-1111-111111111111"
	testEmployeeID = "22222222-2222-2222-2222-222222222222"
	testOtherEmpID = "33333333-3333-3333-3333-333333333333"
	testServiceID  = "44444444-4444-4444-4444-444444444444"
)

type fixture struct {
	uc        *appointment.AppointmentUseCase
	runner    *memTxRunner
	notifRepo *memNotifRepo
}

func newFixture() *fixture {
	runner := &memTxRunner{
		apptRepo: &memApptRepo{appts: make(map[string]*entity.Appointment)},
		serviceRepo: &memServiceRepo{services: map[string]*entity.Service{
			testServiceID: {
				ID:    testServiceID,
				Name:  "Maquillaje profesional",
				Price: decimal.RequireFromString("650.00"),
			},
		}},
		saleRepo: &memSaleRepo{},
	}
	userRepo := &memUserRepo{users: map[string]*entity.User{
		testEmployeeID: {ID: testEmployeeID, Role: entity.RoleEmpleado},
		testOtherEmpID: {ID: testOtherEmpID, Role: entity.RoleEmpleado},
		testClientID:   {ID: testClientID, Role: entity.RoleCliente},
	}}
	notifRepo := &memNotifRepo{}
	uc := appointment.NewAppointmentUseCase(
		runner, runner.apptRepo, runner.serviceRepo, userRepo, notifRepo,
		testMetrics, testLogger(), decimal.RequireFromString("0.16"),
	)
	return &fixture{uc: uc, runner: runner, notifRepo: notifRepo}
}

// bookAssigned reserva una cita y la deja asignada al empleado de prueba.
func (f *fixture) bookAssigned(t *testing.T) string {
	t.Helper()
	resp, err := f.uc.Book(context.Background(), testClientID, dto.BookAppointmentRequest{
		ServiceID:   testServiceID,
		ScheduledAt: time.Now().Add(48 * time.Hour),
	})
	require.NoError(t, err)
	_, err = f.uc.Assign(context.Background(), resp.ID, testEmployeeID)
	require.NoError(t, err)
	return resp.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestBook_NaceEnPendienteSinEmpleado(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Book(context.Background(), testClientID, dto.BookAppointmentRequest{
		ServiceID:   testServiceID,
		ScheduledAt: time.Now().Add(24 * time.Hour),
		Notes:       "primera visita",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.CitaPendiente, resp.Status)
	assert.Empty(t, resp.EmployeeID)
	assert.Equal(t, testClientID, resp.ClientID)
}

func TestBook_FechaPasadaRechazada(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Book(context.Background(), testClientID, dto.BookAppointmentRequest{
		ServiceID:   testServiceID,
		ScheduledAt: time.Now().Add(-time.Hour),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAssign_SoloEmpleados(t *testing.T) {
	f := newFixture()
	resp, err := f.uc.Book(context.Background(), testClientID, dto.BookAppointmentRequest{
		ServiceID:   testServiceID,
		ScheduledAt: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	// un cliente no es asignable como empleado
	_, err = f.uc.Assign(context.Background(), resp.ID, testClientID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assigned, err := f.uc.Assign(context.Background(), resp.ID, testEmployeeID)
	require.NoError(t, err)
	assert.Equal(t, testEmployeeID, assigned.EmployeeID)
}

// Confirmar requiere ser el empleado asignado; notifica al cliente.
func TestConfirm_SoloEmpleadoAsignado(t *testing.T) {
	f := newFixture()
	apptID := f.bookAssigned(t)

	_, err := f.uc.Confirm(context.Background(), apptID, testOtherEmpID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	resp, err := f.uc.Confirm(context.Background(), apptID, testEmployeeID)
	require.NoError(t, err)
	assert.Equal(t, entity.CitaConfirmada, resp.Status)

	require.Len(t, f.notifRepo.created, 1)
	assert.Equal(t, testClientID, f.notifRepo.created[0].UserID)
	assert.Equal(t, entity.NotifCita, f.notifRepo.created[0].Type)
}

// Completar solo desde confirmada: saltarse la confirmación es transición inválida.
func TestComplete_RequiereConfirmada(t *testing.T) {
	f := newFixture()
	apptID := f.bookAssigned(t)

	_, err := f.uc.Complete(context.Background(), apptID, testEmployeeID, entity.PaymentEfectivo)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	assert.Empty(t, f.runner.saleRepo.sales, "sin venta si la transición falla")
}

// Completar genera la venta del servicio con el precio vigente y el IVA del
// checkout: 650.00 + 16% = 754.00.
func TestComplete_GeneraVentaDelServicio(t *testing.T) {
	f := newFixture()
	apptID := f.bookAssigned(t)
	_, err := f.uc.Confirm(context.Background(), apptID, testEmployeeID)
	require.NoError(t, err)

	checkoutsOKBefore := testutil.ToFloat64(testMetrics.Checkouts.WithLabelValues("ok"))

	resp, err := f.uc.Complete(context.Background(), apptID, testEmployeeID, entity.PaymentTarjeta)
	require.NoError(t, err)
	assert.Equal(t, entity.CitaCompletada, resp.Status)
	assert.NotEmpty(t, resp.SaleID)

	// la venta de una cita no cuenta como checkout de carrito
	assert.Equal(t, checkoutsOKBefore, testutil.ToFloat64(testMetrics.Checkouts.WithLabelValues("ok")))

	require.Len(t, f.runner.saleRepo.sales, 1)
	sale := f.runner.saleRepo.sales[0]
	assert.Equal(t, testClientID, sale.UserID)
	assert.Equal(t, apptID, sale.AppointmentID)
	assert.True(t, decimal.RequireFromString("650.00").Equal(sale.Subtotal))
	assert.True(t, decimal.RequireFromString("104.00").Equal(sale.Tax))
	assert.True(t, decimal.RequireFromString("754.00").Equal(sale.Total))

	require.Len(t, f.runner.saleRepo.lines, 1)
	assert.Equal(t, testServiceID, f.runner.saleRepo.lines[0].ServiceID)
	require.Len(t, f.runner.saleRepo.payments, 1)
	assert.Equal(t, entity.PaymentCompletado, f.runner.saleRepo.payments[0].Status)
}

// El precio de la venta es el vigente al completar, no el de la reserva.
func TestComplete_UsaPrecioVigente(t *testing.T) {
	f := newFixture()
	apptID := f.bookAssigned(t)
	_, err := f.uc.Confirm(context.Background(), apptID, testEmployeeID)
	require.NoError(t, err)

	f.runner.serviceRepo.services[testServiceID].Price = decimal.RequireFromString("700.00")

	_, err = f.uc.Complete(context.Background(), apptID, testEmployeeID, entity.PaymentEfectivo)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("700.00").Equal(f.runner.saleRepo.sales[0].Subtotal))
}

// A lo sumo una venta por cita: si ya existe, completar falla.
func TestComplete_VentaDuplicadaRechazada(t *testing.T) {
	f := newFixture()
	apptID := f.bookAssigned(t)
	_, err := f.uc.Confirm(context.Background(), apptID, testEmployeeID)
	require.NoError(t, err)

	// otra tx ya generó la venta de esta cita
	require.NoError(t, f.runner.saleRepo.Create(&entity.Sale{AppointmentID: apptID}))

	_, err = f.uc.Complete(context.Background(), apptID, testEmployeeID, entity.PaymentEfectivo)
	assert.ErrorIs(t, err, domain.ErrSaleAlreadyExists)
}

func TestComplete_MetodoPagoInvalido(t *testing.T) {
	f := newFixture()
	apptID := f.bookAssigned(t)

	_, err := f.uc.Complete(context.Background(), apptID, testEmployeeID, "cheque")
	assert.ErrorIs(t, err, domain.ErrInvalidPaymentMethod)
}

// Cancelar: permitido para el cliente dueño; prohibido para extraños;
// imposible sobre citas terminales.
func TestCancel_PermisosYEstados(t *testing.T) {
	f := newFixture()
	apptID := f.bookAssigned(t)

	_, err := f.uc.Cancel(context.Background(), apptID, testOtherEmpID, entity.RoleEmpleado)
	assert.ErrorIs(t, err, domain.ErrForbidden, "empleado no asignado no puede cancelar")

	resp, err := f.uc.Cancel(context.Background(), apptID, testClientID, entity.RoleCliente)
	require.NoError(t, err)
	assert.Equal(t, entity.CitaCancelada, resp.Status)

	_, err = f.uc.Cancel(context.Background(), apptID, testClientID, entity.RoleCliente)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition, "cancelada es terminal")
}

func TestGetByID_Visibilidad(t *testing.T) {
	f := newFixture()
	apptID := f.bookAssigned(t)

	_, err := f.uc.GetByID(context.Background(), apptID, testClientID, entity.RoleCliente)
	assert.NoError(t, err, "el cliente dueño ve su cita")

	_, err = f.uc.GetByID(context.Background(), apptID, testEmployeeID, entity.RoleEmpleado)
	assert.NoError(t, err, "el empleado asignado ve la cita")

	_, err = f.uc.GetByID(context.Background(), apptID, testOtherEmpID, entity.RoleEmpleado)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.uc.GetByID(context.Background(), apptID, "cualquiera", entity.RoleAdmin)
	assert.NoError(t, err, "admin ve todo")
}

func TestListByStatus_EstadoInvalido(t *testing.T) {
	f := newFixture()
	_, err := f.uc.ListByStatus(context.Background(), "agendada")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

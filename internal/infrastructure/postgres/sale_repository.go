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

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL.
// Las ventas son inmutables: solo inserciones y lecturas.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, COALESCE(user_id::text, ''), COALESCE(appointment_id::text, ''), date, subtotal, tax, total`

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	if err := row.Scan(&s.ID, &s.UserID, &s.AppointmentID, &s.Date, &s.Subtotal, &s.Tax, &s.Total); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create persiste la cabecera de venta. Una violación del único de
// appointment_id se traduce a ErrSaleAlreadyExists.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO sales (id, user_id, appointment_id, date, subtotal, tax, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		sale.ID, nullIfEmpty(sale.UserID), nullIfEmpty(sale.AppointmentID),
		sale.Date, sale.Subtotal, sale.Tax, sale.Total,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSaleAlreadyExists
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateLine persiste una línea de venta.
func (r *SaleRepo) CreateLine(line *entity.SaleLine) error {
	if line.ID == "" {
		line.ID = uuid.New().String()
	}
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO sale_lines (id, sale_id, product_id, service_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		line.ID, line.SaleID, nullIfEmpty(line.ProductID), nullIfEmpty(line.ServiceID),
		line.Quantity, line.UnitPrice,
	)
	if err != nil {
		return fmt.Errorf("insert sale line: %w", err)
	}
	return nil
}

// CreatePayment persiste el registro de pago de la venta.
func (r *SaleRepo) CreatePayment(payment *entity.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO payments (id, sale_id, method, amount, status, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		payment.ID, payment.SaleID, payment.Method, payment.Amount, payment.Status, payment.PaidAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID. Devuelve nil sin error si no existe.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(context.Background(),
		`SELECT `+saleColumns+` FROM sales WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// GetByAppointmentID obtiene la venta generada por una cita, o nil si no hay.
func (r *SaleRepo) GetByAppointmentID(appointmentID string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(context.Background(),
		`SELECT `+saleColumns+` FROM sales WHERE appointment_id = $1`, appointmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale by appointment: %w", err)
	}
	return s, nil
}

// GetLines lista las líneas de una venta.
func (r *SaleRepo) GetLines(saleID string) ([]*entity.SaleLine, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, sale_id, COALESCE(product_id::text, ''), COALESCE(service_id::text, ''), quantity, unit_price
		FROM sale_lines WHERE sale_id = $1 ORDER BY id`, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale lines: %w", err)
	}
	defer rows.Close()

	var list []*entity.SaleLine
	for rows.Next() {
		var l entity.SaleLine
		if err := rows.Scan(&l.ID, &l.SaleID, &l.ProductID, &l.ServiceID, &l.Quantity, &l.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan sale line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// GetPayment obtiene el pago de una venta, o nil si no hay.
func (r *SaleRepo) GetPayment(saleID string) (*entity.Payment, error) {
	var p entity.Payment
	err := r.q.QueryRow(context.Background(), `
		SELECT id, sale_id, method, amount, status, paid_at
		FROM payments WHERE sale_id = $1`, saleID,
	).Scan(&p.ID, &p.SaleID, &p.Method, &p.Amount, &p.Status, &p.PaidAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return &p, nil
}

// ListByUser lista las ventas de un usuario, más recientes primero.
func (r *SaleRepo) ListByUser(userID string) ([]*entity.Sale, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+saleColumns+` FROM sales WHERE user_id = $1 ORDER BY date DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list sales by user: %w", err)
	}
	return collectSales(rows)
}

// List lista ventas en un rango de fechas (inclusive), más recientes primero.
func (r *SaleRepo) List(from, to time.Time) ([]*entity.Sale, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+saleColumns+` FROM sales WHERE date >= $1 AND date <= $2 ORDER BY date DESC`, from, to)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	return collectSales(rows)
}

func collectSales(rows pgx.Rows) ([]*entity.Sale, error) {
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.UserID, &s.AppointmentID, &s.Date, &s.Subtotal, &s.Tax, &s.Total); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

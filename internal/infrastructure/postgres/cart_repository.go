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

var _ repository.CartRepository = (*CartRepo)(nil)

// CartRepo implementación del puerto CartRepository sobre PostgreSQL (usable con pool o tx).
type CartRepo struct {
	q Querier
}

// NewCartRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCartRepository(q Querier) *CartRepo {
	return &CartRepo{q: q}
}

const cartColumns = `id, user_id, status, created_at, updated_at`

func scanCart(row pgx.Row) (*entity.Cart, error) {
	var c entity.Cart
	if err := row.Scan(&c.ID, &c.UserID, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// FindOrCreateActive devuelve el carrito activo del usuario, creándolo si no
// existe. El INSERT apunta al índice único parcial uq_carts_active_user, así
// dos peticiones concurrentes nunca producen dos carritos activos; el SELECT
// final bloquea la fila ganadora. Usar dentro de una transacción.
func (r *CartRepo) FindOrCreateActive(userID string) (*entity.Cart, error) {
	now := time.Now()
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO carts (id, user_id, status, created_at, updated_at)
		VALUES ($1, $2, 'activo', $3, $3)
		ON CONFLICT (user_id) WHERE status = 'activo' DO NOTHING`,
		uuid.New().String(), userID, now,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert active cart: %w", err)
	}
	return r.GetActiveForUpdate(userID)
}

// GetActiveByUser devuelve el carrito activo del usuario, o nil si no hay.
func (r *CartRepo) GetActiveByUser(userID string) (*entity.Cart, error) {
	c, err := scanCart(r.q.QueryRow(context.Background(),
		`SELECT `+cartColumns+` FROM carts WHERE user_id = $1 AND status = 'activo'`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active cart: %w", err)
	}
	return c, nil
}

// GetActiveForUpdate igual que GetActiveByUser pero bloqueando la fila (FOR UPDATE).
func (r *CartRepo) GetActiveForUpdate(userID string) (*entity.Cart, error) {
	c, err := scanCart(r.q.QueryRow(context.Background(),
		`SELECT `+cartColumns+` FROM carts WHERE user_id = $1 AND status = 'activo' FOR UPDATE`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active cart for update: %w", err)
	}
	return c, nil
}

// SetStatus cambia el estado del carrito (activo → completado/abandonado).
// Solo transiciona desde activo; un carrito cerrado no se reabre ni se re-cierra.
func (r *CartRepo) SetStatus(cartID, status string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE carts SET status = $2, updated_at = now() WHERE id = $1 AND status = 'activo'`, cartID, status)
	if err != nil {
		return fmt.Errorf("set cart status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CreateLine persiste una línea de carrito.
func (r *CartRepo) CreateLine(line *entity.CartLine) error {
	if line.ID == "" {
		line.ID = uuid.New().String()
	}
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO cart_lines (id, cart_id, product_id, service_id, quantity, unit_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		line.ID, line.CartID, nullIfEmpty(line.ProductID), nullIfEmpty(line.ServiceID),
		line.Quantity, line.UnitPrice, line.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cart line: %w", err)
	}
	return nil
}

const cartLineColumns = `id, cart_id, COALESCE(product_id::text, ''), COALESCE(service_id::text, ''), quantity, unit_price, created_at`

// GetLine obtiene una línea por ID.
func (r *CartRepo) GetLine(lineID string) (*entity.CartLine, error) {
	var l entity.CartLine
	err := r.q.QueryRow(context.Background(),
		`SELECT `+cartLineColumns+` FROM cart_lines WHERE id = $1`, lineID,
	).Scan(&l.ID, &l.CartID, &l.ProductID, &l.ServiceID, &l.Quantity, &l.UnitPrice, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart line: %w", err)
	}
	return &l, nil
}

// ListLines lista las líneas de un carrito en orden de inserción.
func (r *CartRepo) ListLines(cartID string) ([]*entity.CartLine, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+cartLineColumns+` FROM cart_lines WHERE cart_id = $1 ORDER BY created_at, id`, cartID)
	if err != nil {
		return nil, fmt.Errorf("list cart lines: %w", err)
	}
	defer rows.Close()

	var list []*entity.CartLine
	for rows.Next() {
		var l entity.CartLine
		if err := rows.Scan(&l.ID, &l.CartID, &l.ProductID, &l.ServiceID, &l.Quantity, &l.UnitPrice, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// UpdateLineQuantity fija la cantidad de una línea.
func (r *CartRepo) UpdateLineQuantity(lineID string, quantity int) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE cart_lines SET quantity = $2 WHERE id = $1`, lineID, quantity)
	if err != nil {
		return fmt.Errorf("update cart line quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteLine elimina una línea.
func (r *CartRepo) DeleteLine(lineID string) error {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM cart_lines WHERE id = $1`, lineID)
	if err != nil {
		return fmt.Errorf("delete cart line: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteLines vacía el carrito (se usa al cerrar el checkout).
func (r *CartRepo) DeleteLines(cartID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM cart_lines WHERE cart_id = $1`, cartID)
	if err != nil {
		return fmt.Errorf("delete cart lines: %w", err)
	}
	return nil
}

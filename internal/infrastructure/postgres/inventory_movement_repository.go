package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/casabella/casa-bella-api/internal/domain/entity"
	"github.com/casabella/casa-bella-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo implementación del libro de inventario sobre PostgreSQL.
// El libro es solo-inserción: no hay Update ni Delete.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create registra un asiento del libro.
func (r *InventoryMovementRepo) Create(m *entity.InventoryMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO inventory_movements (id, product_id, type, quantity, reason, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.ID, m.ProductID, m.Type, m.Quantity, m.Reason, m.CreatedAt, nullIfEmpty(m.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("insert inventory movement: %w", err)
	}
	return nil
}

// List consulta el libro con filtros opcionales, más recientes primero.
func (r *InventoryMovementRepo) List(filter repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.ProductID != "" {
		conds = append(conds, "product_id = "+arg(filter.ProductID))
	}
	if filter.Type != "" {
		conds = append(conds, "type = "+arg(filter.Type))
	}
	if !filter.From.IsZero() {
		conds = append(conds, "created_at >= "+arg(filter.From))
	}
	if !filter.To.IsZero() {
		conds = append(conds, "created_at <= "+arg(filter.To))
	}

	query := `SELECT id, product_id, type, quantity, reason, created_at, COALESCE(created_by::text, '')
		FROM inventory_movements`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"
	if filter.Limit > 0 {
		query += " LIMIT " + arg(filter.Limit)
	}
	if filter.Offset > 0 {
		query += " OFFSET " + arg(filter.Offset)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.Reason, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan inventory movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/casabella/casa-bella-api/internal/domain"
	"github.com/casabella/casa-bella-api/internal/domain/entity"
	"github.com/casabella/casa-bella-api/internal/domain/repository"
)

var _ repository.ServiceRepository = (*ServiceRepo)(nil)

// ServiceRepo implementación del puerto ServiceRepository sobre PostgreSQL (usable con pool o tx).
type ServiceRepo struct {
	q Querier
}

// NewServiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewServiceRepository(q Querier) *ServiceRepo {
	return &ServiceRepo{q: q}
}

// Create persiste un nuevo servicio.
func (r *ServiceRepo) Create(service *entity.Service) error {
	query := `
		INSERT INTO services (id, name, description, price, duration_minutes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		service.ID, service.Name, service.Description, service.Price,
		service.DurationMinutes, service.CreatedAt, service.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert service: %w", err)
	}
	return nil
}

// Update actualiza un servicio existente.
func (r *ServiceRepo) Update(service *entity.Service) error {
	query := `
		UPDATE services SET name = $2, description = $3, price = $4, duration_minutes = $5, updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		service.ID, service.Name, service.Description, service.Price, service.DurationMinutes,
	)
	if err != nil {
		return fmt.Errorf("update service: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene un servicio por ID.
func (r *ServiceRepo) GetByID(id string) (*entity.Service, error) {
	query := `
		SELECT id, name, description, price, duration_minutes, created_at, updated_at
		FROM services WHERE id = $1`
	var s entity.Service
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Name, &s.Description, &s.Price, &s.DurationMinutes, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service: %w", err)
	}
	return &s, nil
}

// List lista todos los servicios ordenados por nombre.
func (r *ServiceRepo) List() ([]*entity.Service, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, name, description, price, duration_minutes, created_at, updated_at
		FROM services ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	var list []*entity.Service
	for rows.Next() {
		var s entity.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Price, &s.DurationMinutes, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

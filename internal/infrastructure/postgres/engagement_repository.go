package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/casabella/casa-bella-api/internal/domain"
	"github.com/casabella/casa-bella-api/internal/domain/entity"
	"github.com/casabella/casa-bella-api/internal/domain/repository"
)

var (
	_ repository.ReviewRepository       = (*ReviewRepo)(nil)
	_ repository.FavoriteRepository     = (*FavoriteRepo)(nil)
	_ repository.NotificationRepository = (*NotificationRepo)(nil)
)

// itemWhere arma el predicado por referencia de ítem (producto o servicio).
func itemWhere(item entity.ItemRef) (string, any) {
	if item.IsProduct() {
		return "product_id", item.ID
	}
	return "service_id", item.ID
}

// ReviewRepo implementación del puerto ReviewRepository sobre PostgreSQL.
type ReviewRepo struct {
	q Querier
}

// NewReviewRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReviewRepository(q Querier) *ReviewRepo {
	return &ReviewRepo{q: q}
}

// Create persiste una reseña.
func (r *ReviewRepo) Create(rev *entity.Review) error {
	if rev.ID == "" {
		rev.ID = uuid.New().String()
	}
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO reviews (id, user_id, product_id, service_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rev.ID, rev.UserID, nullIfEmpty(rev.ProductID), nullIfEmpty(rev.ServiceID),
		rev.Rating, nullIfEmpty(rev.Comment), rev.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

// ListByItem lista las reseñas de un producto o servicio, más recientes primero.
func (r *ReviewRepo) ListByItem(item entity.ItemRef) ([]*entity.Review, error) {
	col, id := itemWhere(item)
	rows, err := r.q.Query(context.Background(), `
		SELECT id, user_id, COALESCE(product_id::text, ''), COALESCE(service_id::text, ''), rating, COALESCE(comment, ''), created_at
		FROM reviews WHERE `+col+` = $1 ORDER BY created_at DESC`, id)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var list []*entity.Review
	for rows.Next() {
		var rev entity.Review
		if err := rows.Scan(&rev.ID, &rev.UserID, &rev.ProductID, &rev.ServiceID, &rev.Rating, &rev.Comment, &rev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		list = append(list, &rev)
	}
	return list, rows.Err()
}

// AverageByItem devuelve el promedio de estrellas y el conteo de reseñas del ítem.
func (r *ReviewRepo) AverageByItem(item entity.ItemRef) (decimal.Decimal, int, error) {
	col, id := itemWhere(item)
	var (
		avg   decimal.Decimal
		count int
	)
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(ROUND(AVG(rating), 2), 0), COUNT(*) FROM reviews WHERE `+col+` = $1`, id,
	).Scan(&avg, &count)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("average reviews: %w", err)
	}
	return avg, count, nil
}

// FavoriteRepo implementación del puerto FavoriteRepository sobre PostgreSQL.
type FavoriteRepo struct {
	q Querier
}

// NewFavoriteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFavoriteRepository(q Querier) *FavoriteRepo {
	return &FavoriteRepo{q: q}
}

// Create guarda un ítem para el usuario. Repetir el guardado devuelve ErrDuplicate.
func (r *FavoriteRepo) Create(fav *entity.Favorite) error {
	if fav.ID == "" {
		fav.ID = uuid.New().String()
	}
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO favorites (id, user_id, product_id, service_id, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		fav.ID, fav.UserID, nullIfEmpty(fav.ProductID), nullIfEmpty(fav.ServiceID), fav.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert favorite: %w", err)
	}
	return nil
}

// Delete quita un ítem guardado.
func (r *FavoriteRepo) Delete(userID string, item entity.ItemRef) error {
	col, id := itemWhere(item)
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM favorites WHERE user_id = $1 AND `+col+` = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Exists indica si el usuario ya guardó el ítem.
func (r *FavoriteRepo) Exists(userID string, item entity.ItemRef) (bool, error) {
	col, id := itemWhere(item)
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM favorites WHERE user_id = $1 AND `+col+` = $2)`, userID, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("favorite exists: %w", err)
	}
	return exists, nil
}

// ListByUser lista los guardados del usuario, más recientes primero.
func (r *FavoriteRepo) ListByUser(userID string) ([]*entity.Favorite, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, user_id, COALESCE(product_id::text, ''), COALESCE(service_id::text, ''), created_at
		FROM favorites WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	var list []*entity.Favorite
	for rows.Next() {
		var fav entity.Favorite
		if err := rows.Scan(&fav.ID, &fav.UserID, &fav.ProductID, &fav.ServiceID, &fav.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		list = append(list, &fav)
	}
	return list, rows.Err()
}

// NotificationRepo implementación del puerto NotificationRepository sobre PostgreSQL.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

// Create persiste una notificación.
func (r *NotificationRepo) Create(n *entity.Notification) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO notifications (id, user_id, message, type, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		n.ID, n.UserID, n.Message, n.Type, n.Read, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// ListByUser lista las notificaciones del usuario, no leídas primero.
func (r *NotificationRepo) ListByUser(userID string) ([]*entity.Notification, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, user_id, message, type, read, created_at
		FROM notifications WHERE user_id = $1 ORDER BY read, created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var list []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.Type, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

// MarkRead marca como leída una notificación del usuario. El filtro por
// user_id evita que un usuario marque notificaciones ajenas.
func (r *NotificationRepo) MarkRead(id, userID string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE notifications SET read = true WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

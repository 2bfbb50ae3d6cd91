package repository

import (
	"github.com/shopspring/decimal"

	"github.com/casabella/casa-bella-api/internal/domain/entity"
)

// ReviewRepository puerto de persistencia de reseñas.
type ReviewRepository interface {
	Create(review *entity.Review) error
	ListByItem(item entity.ItemRef) ([]*entity.Review, error)
	AverageByItem(item entity.ItemRef) (decimal.Decimal, int, error)
}

// FavoriteRepository puerto de persistencia de guardados.
type FavoriteRepository interface {
	Create(favorite *entity.Favorite) error
	Delete(userID string, item entity.ItemRef) error
	Exists(userID string, item entity.ItemRef) (bool, error)
	ListByUser(userID string) ([]*entity.Favorite, error)
}

// NotificationRepository puerto de persistencia de notificaciones.
type NotificationRepository interface {
	Create(notification *entity.Notification) error
	ListByUser(userID string) ([]*entity.Notification, error)
	MarkRead(id, userID string) error
}

package usecase

import (
	"context"

	"github.com/casabella/casa-bella-api/internal/application/dto"
	"github.com/casabella/casa-bella-api/internal/domain/entity"
	"github.com/casabella/casa-bella-api/internal/domain/repository"
)

// NotificationUseCase bandeja de notificaciones del usuario. Las
// notificaciones las generan otros casos de uso (citas, stock bajo);
// aquí solo se consultan y se marcan leídas.
type NotificationUseCase struct {
	repo repository.NotificationRepository
}

// NewNotificationUseCase construye el caso de uso.
func NewNotificationUseCase(repo repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{repo: repo}
}

// ListMine lista las notificaciones del usuario, no leídas primero.
func (uc *NotificationUseCase) ListMine(_ context.Context, userID string) ([]dto.NotificationResponse, error) {
	notifications, err := uc.repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, *toNotificationResponse(n))
	}
	return out, nil
}

// MarkRead marca una notificación propia como leída.
func (uc *NotificationUseCase) MarkRead(_ context.Context, id, userID string) error {
	return uc.repo.MarkRead(id, userID)
}

func toNotificationResponse(n *entity.Notification) *dto.NotificationResponse {
	return &dto.NotificationResponse{
		ID:        n.ID,
		Message:   n.Message,
		Type:      n.Type,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateReviewRequest body para POST /api/reviews.
type CreateReviewRequest struct {
	ItemRefRequest
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"omitempty,max=1000"`
}

// ReviewResponse salida de una reseña.
type ReviewResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ItemType  string    `json:"item_type"`
	ItemID    string    `json:"item_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ReviewSummaryResponse reseñas de un ítem con promedio y conteo.
type ReviewSummaryResponse struct {
	Average decimal.Decimal  `json:"average"`
	Count   int              `json:"count"`
	Reviews []ReviewResponse `json:"reviews"`
}

// FavoriteResponse un ítem guardado.
type FavoriteResponse struct {
	ID        string    `json:"id"`
	ItemType  string    `json:"item_type"`
	ItemID    string    `json:"item_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationResponse una notificación del usuario.
type NotificationResponse struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

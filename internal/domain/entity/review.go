package entity

import "time"

// Review reseña de un cliente sobre un producto o servicio (1 a 5 estrellas).
type Review struct {
	ID        string
	UserID    string
	ProductID string
	ServiceID string
	Rating    int
	Comment   string
	CreatedAt time.Time
}

// Favorite marca un producto o servicio como guardado por el usuario.
type Favorite struct {
	ID        string
	UserID    string
	ProductID string
	ServiceID string
	CreatedAt time.Time
}

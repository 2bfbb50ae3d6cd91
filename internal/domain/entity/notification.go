package entity

import "time"

// Tipos de notificación.
const (
	NotifCita       = "cita"
	NotifPromocion  = "promocion"
	NotifInventario = "inventario"
)

// Notification mensaje dirigido a un usuario. Las genera el sistema:
// transiciones de cita para el cliente, stock bajo para administradores.
type Notification struct {
	ID        string
	UserID    string
	Message   string
	Type      string
	Read      bool
	CreatedAt time.Time
}

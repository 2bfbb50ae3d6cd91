package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementEntrada = "entrada"
	MovementSalida  = "salida"
)

// InventoryMovement asiento del libro de inventario. Solo inserciones:
// las salidas de checkout referencian la venta en Reason ("venta <id>").
type InventoryMovement struct {
	ID        string
	ProductID string
	Type      string
	Quantity  int // siempre positivo; la dirección la da Type
	Reason    string
	CreatedAt time.Time
	CreatedBy string
}

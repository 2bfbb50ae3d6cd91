package dto

import "time"

// RegisterMovementRequest body para POST /api/inventory/movements.
// Type decide la dirección: entrada suma stock, salida lo resta.
type RegisterMovementRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Type      string `json:"type" validate:"required,oneof=entrada salida"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
	Reason    string `json:"reason" validate:"required,min=1,max=500"`
}

// MovementFilterRequest filtros del libro de inventario (query params).
type MovementFilterRequest struct {
	ProductID string `query:"product_id"`
	Type      string `query:"type"`
	From      string `query:"from"` // YYYY-MM-DD
	To        string `query:"to"`   // YYYY-MM-DD
	PageRequest
}

// MovementResponse un asiento del libro de inventario.
type MovementResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Type      string    `json:"type"`
	Quantity  int       `json:"quantity"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by,omitempty"`
}

// LowStockItem producto en o por debajo de su mínimo.
type LowStockItem struct {
	ProductID    string `json:"product_id"`
	Name         string `json:"name"`
	Stock        int    `json:"stock"`
	StockMinimum int    `json:"stock_minimum"`
}

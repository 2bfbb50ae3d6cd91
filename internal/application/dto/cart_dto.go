package dto

import "github.com/shopspring/decimal"

// AddCartItemRequest body para POST /api/cart/items.
type AddCartItemRequest struct {
	ItemRefRequest
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// UpdateCartLineRequest body para PUT /api/cart/items/:lineId.
type UpdateCartLineRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// CartLineResponse una línea del carrito.
type CartLineResponse struct {
	ID        string          `json:"id"`
	ItemType  string          `json:"item_type"`
	ItemID    string          `json:"item_id"`
	ItemName  string          `json:"item_name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// CartResponse carrito activo con sus líneas y totales previsualizados.
// Los totales son informativos: los definitivos se calculan en el checkout.
type CartResponse struct {
	ID       string             `json:"id"`
	Status   string             `json:"status"`
	Lines    []CartLineResponse `json:"lines"`
	Subtotal decimal.Decimal    `json:"subtotal"`
	Tax      decimal.Decimal    `json:"tax"`
	Total    decimal.Decimal    `json:"total"`
}

package checkout

import (
	"context"

	"github.com/casabella/casa-bella-api/internal/domain/repository"
)

// TxRunner ejecuta el checkout dentro de una transacción única: carrito,
// productos, venta y movimientos comparten la misma tx, así cualquier error
// revierte todo.
type TxRunner interface {
	RunCheckout(ctx context.Context, fn func(
		cartRepo repository.CartRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		movRepo repository.InventoryMovementRepository,
	) error) error
}

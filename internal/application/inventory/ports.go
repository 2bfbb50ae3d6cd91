package inventory

import (
	"context"

	"github.com/casabella/casa-bella-api/internal/domain/repository"
)

// TxRunner ejecuta movimientos manuales de inventario dentro de una
// transacción: el ajuste de stock y su asiento en el libro van juntos.
type TxRunner interface {
	RunInventory(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
	) error) error
}

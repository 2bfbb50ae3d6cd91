package cart

import (
	"context"

	"github.com/casabella/casa-bella-api/internal/domain/repository"
)

// TxRunner ejecuta mutaciones de carrito dentro de una transacción.
// Todas las escrituras pasan por aquí: el find-or-create del carrito activo
// y los ajustes de líneas se apoyan en bloqueos de fila.
type TxRunner interface {
	RunCart(ctx context.Context, fn func(
		cartRepo repository.CartRepository,
		productRepo repository.ProductRepository,
		serviceRepo repository.ServiceRepository,
	) error) error
}

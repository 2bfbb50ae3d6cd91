package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/casabella/casa-bella-api/internal/application/appointment"
	"github.com/casabella/casa-bella-api/internal/application/cart"
	"github.com/casabella/casa-bella-api/internal/application/checkout"
	"github.com/casabella/casa-bella-api/internal/application/inventory"
	"github.com/casabella/casa-bella-api/internal/domain/repository"
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, pasando
// repositorios atados a esa transacción. Implementa los puertos de checkout,
// carrito, inventario y citas.
var (
	_ checkout.TxRunner    = (*TxRunner)(nil)
	_ cart.TxRunner        = (*TxRunner)(nil)
	_ inventory.TxRunner   = (*TxRunner)(nil)
	_ appointment.TxRunner = (*TxRunner)(nil)
)

type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// run abre la transacción, ejecuta fn y hace Commit o Rollback.
func (r *TxRunner) run(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunCheckout transacción del checkout: carrito, productos, venta y movimientos.
func (r *TxRunner) RunCheckout(ctx context.Context, fn func(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	movRepo repository.InventoryMovementRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(
			NewCartRepository(q),
			NewProductRepository(q),
			NewSaleRepository(q),
			NewInventoryMovementRepository(q),
		)
	})
}

// RunCart transacción de mutaciones de carrito (find-or-create + líneas).
func (r *TxRunner) RunCart(ctx context.Context, fn func(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	serviceRepo repository.ServiceRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(
			NewCartRepository(q),
			NewProductRepository(q),
			NewServiceRepository(q),
		)
	})
}

// RunInventory transacción de movimientos manuales de inventario.
func (r *TxRunner) RunInventory(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.InventoryMovementRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(
			NewProductRepository(q),
			NewInventoryMovementRepository(q),
		)
	})
}

// RunAppointment transacción de transiciones de cita (y venta al completar).
func (r *TxRunner) RunAppointment(ctx context.Context, fn func(
	apptRepo repository.AppointmentRepository,
	serviceRepo repository.ServiceRepository,
	saleRepo repository.SaleRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(
			NewAppointmentRepository(q),
			NewServiceRepository(q),
			NewSaleRepository(q),
		)
	})
}

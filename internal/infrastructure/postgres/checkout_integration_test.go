//go:build integration

package postgres_test

// Pruebas de integración contra PostgreSQL real vía testcontainers.
// Correr con: go test -tags integration ./internal/infrastructure/postgres/... -v
//
// Cubren lo que los tests unitarios no pueden: el índice único parcial de
// carrito activo, los bloqueos de fila del checkout y la garantía de no
// sobreventa bajo concurrencia.

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/casabella/casa-bella-api/internal/application/cart"
	"github.com/casabella/casa-bella-api/internal/application/checkout"
	"github.com/casabella/casa-bella-api/internal/domain"
	"github.com/casabella/casa-bella-api/internal/domain/entity"
	"github.com/casabella/casa-bella-api/internal/infrastructure/postgres"
	"github.com/casabella/casa-bella-api/pkg/config"
	"github.com/casabella/casa-bella-api/pkg/logger"
	"github.com/casabella/casa-bella-api/pkg/metrics"
	"github.com/jackc/pgx/v5/pgxpool"
)

var testMetrics = metrics.NewSalesMetrics()

type testEnv struct {
	pool        *pgxpool.Pool
	txRunner    *postgres.TxRunner
	cartUC      *cart.CartUseCase
	checkoutUC  *checkout.CheckoutUseCase
	productRepo *postgres.ProductRepo
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.Run(ctx, "postgres:16-alpine",
		tcPostgres.WithDatabase("casa_bella_test"),
		tcPostgres.WithUsername("casabella"),
		tcPostgres.WithPassword("casabella"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: pgURL})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	schema, err := os.ReadFile("../../../migrations/0001_schema.sql")
	require.NoError(t, err)
	_, err = pool.Exec(ctx, string(schema))
	require.NoError(t, err)

	txRunner := postgres.NewTxRunner(pool)
	cartRepo := postgres.NewCartRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	serviceRepo := postgres.NewServiceRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	notifRepo := postgres.NewNotificationRepository(pool)

	log := logger.New(logger.Config{Env: "production", Level: "error"})
	taxRate := decimal.RequireFromString("0.16")

	return &testEnv{
		pool:        pool,
		txRunner:    txRunner,
		productRepo: productRepo,
		cartUC: cart.NewCartUseCase(txRunner, cartRepo, productRepo, serviceRepo, cart.Config{
			TaxRate:       taxRate,
			ServiceQtyCap: 10,
		}),
		checkoutUC: checkout.NewCheckoutUseCase(txRunner, userRepo, serviceRepo, notifRepo, testMetrics, log, taxRate),
	}
}

func (e *testEnv) createUser(t *testing.T, role string) string {
	t.Helper()
	id := uuid.New().String()
	_, err := e.pool.Exec(context.Background(), `
		INSERT INTO users (id, name, email, password_hash, role)
		VALUES ($1, $2, $3, 'x', $4)`,
		id, "Usuario "+id[:8], id[:8]+"@test.local", role)
	require.NoError(t, err)
	return id
}

func (e *testEnv) createProduct(t *testing.T, name string, price string, stock int) string {
	t.Helper()
	now := time.Now()
	p := &entity.Product{
		ID:           uuid.New().String(),
		Name:         name,
		Type:         entity.ProductCosmetico,
		Price:        decimal.RequireFromString(price),
		Stock:        stock,
		StockMinimum: 1,
		Status:       entity.ProductActivo,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, e.productRepo.Create(p))
	return p.ID
}

// Flujo completo contra la base: agregar al carrito, checkout, verificar
// venta, pago, stock descontado, asiento en el libro y carrito completado.
func TestIntegracion_CheckoutCompleto(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	userID := env.createUser(t, entity.RoleCliente)
	productID := env.createProduct(t, "Labial integración", "100.00", 10)

	_, err := env.cartUC.AddItem(ctx, userID, entity.ProductRef(productID), 2)
	require.NoError(t, err)

	resp, err := env.checkoutUC.Checkout(ctx, userID, entity.PaymentTarjeta)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("232.00").Equal(resp.Total), "total: %s", resp.Total)

	// Stock descontado en la base
	p, err := env.productRepo.GetByID(productID)
	require.NoError(t, err)
	assert.Equal(t, 8, p.Stock)

	// Asiento de salida en el libro
	var movCount int
	require.NoError(t, env.pool.QueryRow(ctx,
		`SELECT count(*) FROM inventory_movements WHERE product_id = $1 AND type = 'salida'`,
		productID).Scan(&movCount))
	assert.Equal(t, 1, movCount)

	// Carrito completado y vacío; un segundo checkout no tiene carrito activo
	_, err = env.checkoutUC.Checkout(ctx, userID, entity.PaymentTarjeta)
	assert.ErrorIs(t, err, domain.ErrCartNotActive)
}

// Dos checkouts concurrentes sobre el mismo producto con stock para uno solo:
// exactamente uno debe ganar. El bloqueo FOR UPDATE serializa la validación.
func TestIntegracion_ConcurrenciaNoSobrevende(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	productID := env.createProduct(t, "Sérum escaso", "250.00", 3)

	// Dos clientes, cada uno con 2 unidades en su carrito (4 > stock 3)
	users := []string{
		env.createUser(t, entity.RoleCliente),
		env.createUser(t, entity.RoleCliente),
	}
	for _, u := range users {
		_, err := env.cartUC.AddItem(ctx, u, entity.ProductRef(productID), 2)
		require.NoError(t, err)
	}

	errs := make([]error, len(users))
	var wg sync.WaitGroup
	for i, u := range users {
		wg.Add(1)
		go func(i int, userID string) {
			defer wg.Done()
			_, errs[i] = env.checkoutUC.Checkout(ctx, userID, entity.PaymentEfectivo)
		}(i, u)
	}
	wg.Wait()

	var ok, insufficient int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrInsufficientStock):
			insufficient++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, ok, "exactamente un checkout debe ganar")
	assert.Equal(t, 1, insufficient, "el otro debe fallar por stock")

	p, err := env.productRepo.GetByID(productID)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Stock, "3 - 2 = 1; jamás negativo")

	var saleCount int
	require.NoError(t, env.pool.QueryRow(ctx, `SELECT count(*) FROM sales`).Scan(&saleCount))
	assert.Equal(t, 1, saleCount)
}

// Agregados concurrentes del mismo usuario: el índice único parcial garantiza
// un solo carrito activo aunque varias peticiones lleguen a la vez.
func TestIntegracion_UnSoloCarritoActivoPorUsuario(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	userID := env.createUser(t, entity.RoleCliente)
	productID := env.createProduct(t, "Base concurrente", "349.50", 100)

	const n = 8
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.cartUC.AddItem(ctx, userID, entity.ProductRef(productID), 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	var cartCount int
	require.NoError(t, env.pool.QueryRow(ctx,
		`SELECT count(*) FROM carts WHERE user_id = $1 AND status = 'activo'`,
		userID).Scan(&cartCount))
	assert.Equal(t, 1, cartCount)

	// Todas las peticiones cayeron en la misma línea
	resp, err := env.cartUC.GetActive(ctx, userID)
	require.NoError(t, err)
	require.Len(t, resp.Lines, 1)
	assert.Equal(t, n, resp.Lines[0].Quantity)
}

// El pago queda por el total con IVA y la venta referencia al comprador.
func TestIntegracion_PagoPersistido(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	userID := env.createUser(t, entity.RoleCliente)
	productID := env.createProduct(t, "Collar integración", "1450.00", 5)

	_, err := env.cartUC.AddItem(ctx, userID, entity.ProductRef(productID), 1)
	require.NoError(t, err)

	resp, err := env.checkoutUC.Checkout(ctx, userID, entity.PaymentTransferencia)
	require.NoError(t, err)

	var method, status string
	var amount decimal.Decimal
	var paidAt time.Time
	require.NoError(t, env.pool.QueryRow(ctx,
		`SELECT method, status, amount, paid_at FROM payments WHERE sale_id = $1`,
		resp.ID).Scan(&method, &status, &amount, &paidAt))
	assert.Equal(t, entity.PaymentTransferencia, method)
	assert.Equal(t, entity.PaymentCompletado, status)
	assert.True(t, resp.Total.Equal(amount))
	assert.False(t, paidAt.IsZero())
}

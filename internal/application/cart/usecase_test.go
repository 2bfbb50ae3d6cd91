package cart_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casabella/casa-bella-api/internal/application/cart"
	"github.com/casabella/casa-bella-api/internal/domain"
	"github.com/casabella/casa-bella-api/internal/domain/entity"
	"github.com/casabella/casa-bella-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de test en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memCartRepo struct {
	cart    *entity.Cart
	lines   map[string]*entity.CartLine
	nextID  int
	created int // carritos creados por FindOrCreateActive
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{lines: make(map[string]*entity.CartLine)}
}

func (m *memCartRepo) FindOrCreateActive(userID string) (*entity.Cart, error) {
	if m.cart != nil && m.cart.UserID == userID && m.cart.Status == entity.CartActivo {
		return m.cart, nil
	}
	m.created++
	m.cart = &entity.Cart{ID: fmt.Sprintf("cart-%d", m.created), UserID: userID, Status: entity.CartActivo}
	return m.cart, nil
}

func (m *memCartRepo) GetActiveByUser(userID string) (*entity.Cart, error) {
	if m.cart == nil || m.cart.UserID != userID || m.cart.Status != entity.CartActivo {
		return nil, nil
	}
	return m.cart, nil
}

func (m *memCartRepo) GetActiveForUpdate(userID string) (*entity.Cart, error) {
	return m.GetActiveByUser(userID)
}

func (m *memCartRepo) SetStatus(cartID, status string) error {
	if m.cart == nil || m.cart.ID != cartID || m.cart.Status != entity.CartActivo {
		return domain.ErrNotFound
	}
	m.cart.Status = status
	return nil
}

func (m *memCartRepo) CreateLine(line *entity.CartLine) error {
	m.nextID++
	line.ID = fmt.Sprintf("line-%d", m.nextID)
	m.lines[line.ID] = line
	return nil
}

func (m *memCartRepo) GetLine(lineID string) (*entity.CartLine, error) {
	return m.lines[lineID], nil
}

func (m *memCartRepo) ListLines(cartID string) ([]*entity.CartLine, error) {
	var out []*entity.CartLine
	for i := 1; i <= m.nextID; i++ {
		if l, ok := m.lines[fmt.Sprintf("line-%d", i)]; ok && l.CartID == cartID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memCartRepo) UpdateLineQuantity(lineID string, quantity int) error {
	l, ok := m.lines[lineID]
	if !ok {
		return domain.ErrNotFound
	}
	l.Quantity = quantity
	return nil
}

func (m *memCartRepo) DeleteLine(lineID string) error {
	delete(m.lines, lineID)
	return nil
}

func (m *memCartRepo) DeleteLines(cartID string) error {
	for id, l := range m.lines {
		if l.CartID == cartID {
			delete(m.lines, id)
		}
	}
	return nil
}

type memProductRepo struct {
	products map[string]*entity.Product
}

func (m *memProductRepo) Create(p *entity.Product) error                              { panic("no usado") }
func (m *memProductRepo) Update(p *entity.Product) error                              { panic("no usado") }
func (m *memProductRepo) GetByID(id string) (*entity.Product, error)                  { return m.products[id], nil }
func (m *memProductRepo) GetForUpdate(id string) (*entity.Product, error)             { return m.products[id], nil }
func (m *memProductRepo) List(f repository.ProductFilter) ([]*entity.Product, error)  { panic("no usado") }
func (m *memProductRepo) UpdateStock(id string, newStock int) error                   { panic("no usado") }
func (m *memProductRepo) ListLowStock() ([]*entity.Product, error)                    { panic("no usado") }

type memServiceRepo struct {
	services map[string]*entity.Service
}

func (m *memServiceRepo) Create(s *entity.Service) error             { panic("no usado") }
func (m *memServiceRepo) Update(s *entity.Service) error             { panic("no usado") }
func (m *memServiceRepo) GetByID(id string) (*entity.Service, error) { return m.services[id], nil }
func (m *memServiceRepo) List() ([]*entity.Service, error)           { panic("no usado") }

type memTxRunner struct {
	cartRepo    *memCartRepo
	productRepo *memProductRepo
	serviceRepo *memServiceRepo
}

func (m *memTxRunner) RunCart(ctx context.Context, fn func(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	serviceRepo repository.ServiceRepository,
) error) error {
	return fn(m.cartRepo, m.productRepo, m.serviceRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario base
// ──────────────────────────────────────────────────────────────────────────────

const (
	testUserID    = "11111111-1111-1111-1111-111111111111"
	testProductID = "22222222-2222-2222-2222-222222222222"
	testServiceID = "33333333-3333-3333-3333-333333333333"
)

func newTestUseCase() (*cart.CartUseCase, *memTxRunner) {
	runner := &memTxRunner{
		cartRepo: newMemCartRepo(),
		productRepo: &memProductRepo{products: map[string]*entity.Product{
			testProductID: {
				ID:           testProductID,
				Name:         "Sérum facial",
				Type:         entity.ProductCosmetico,
				Price:        decimal.RequireFromString("520.00"),
				Stock:        5,
				StockMinimum: 2,
				Status:       entity.ProductActivo,
			},
		}},
		serviceRepo: &memServiceRepo{services: map[string]*entity.Service{
			testServiceID: {
				ID:    testServiceID,
				Name:  "Manicure spa",
				Price: decimal.RequireFromString("280.00"),
			},
		}},
	}
	uc := cart.NewCartUseCase(runner, runner.cartRepo, runner.productRepo, runner.serviceRepo, cart.Config{
		TaxRate:       decimal.RequireFromString("0.16"),
		ServiceQtyCap: 10,
	})
	return uc, runner
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AddItem
// ──────────────────────────────────────────────────────────────────────────────

// Agregar un producto crea el carrito activo, congela el precio del catálogo
// en la línea y previsualiza totales con las mismas reglas del checkout.
func TestAddItem_CreaCarritoYCongelaPrecio(t *testing.T) {
	uc, runner := newTestUseCase()

	resp, err := uc.AddItem(context.Background(), testUserID, entity.ProductRef(testProductID), 2)
	require.NoError(t, err)

	assert.Equal(t, 1, runner.cartRepo.created, "debe crearse un carrito activo")
	require.Len(t, resp.Lines, 1)
	line := resp.Lines[0]
	assert.Equal(t, "producto", line.ItemType)
	assert.Equal(t, "Sérum facial", line.ItemName)
	assert.Equal(t, 2, line.Quantity)
	assert.True(t, decimal.RequireFromString("520.00").Equal(line.UnitPrice))

	// 2 x 520.00 = 1040.00; IVA 16% = 166.40; total 1206.40
	assert.True(t, decimal.RequireFromString("1040.00").Equal(resp.Subtotal), "subtotal: %s", resp.Subtotal)
	assert.True(t, decimal.RequireFromString("166.40").Equal(resp.Tax), "iva: %s", resp.Tax)
	assert.True(t, decimal.RequireFromString("1206.40").Equal(resp.Total), "total: %s", resp.Total)
}

// El precio queda congelado al agregar: subir el catálogo después no cambia
// la línea ya existente.
func TestAddItem_PrecioCongeladoNoSigueAlCatalogo(t *testing.T) {
	uc, runner := newTestUseCase()

	_, err := uc.AddItem(context.Background(), testUserID, entity.ProductRef(testProductID), 1)
	require.NoError(t, err)

	runner.productRepo.products[testProductID].Price = decimal.RequireFromString("999.00")

	resp, err := uc.GetActive(context.Background(), testUserID)
	require.NoError(t, err)
	require.Len(t, resp.Lines, 1)
	assert.True(t, decimal.RequireFromString("520.00").Equal(resp.Lines[0].UnitPrice))
}

// Agregar el mismo ítem dos veces incrementa la línea, no crea otra.
func TestAddItem_MismoItemIncrementaLinea(t *testing.T) {
	uc, _ := newTestUseCase()

	_, err := uc.AddItem(context.Background(), testUserID, entity.ProductRef(testProductID), 2)
	require.NoError(t, err)
	resp, err := uc.AddItem(context.Background(), testUserID, entity.ProductRef(testProductID), 1)
	require.NoError(t, err)

	require.Len(t, resp.Lines, 1)
	assert.Equal(t, 3, resp.Lines[0].Quantity)
}

// La cantidad de producto se tope al stock disponible.
func TestAddItem_CantidadTopadaAStock(t *testing.T) {
	uc, _ := newTestUseCase()

	resp, err := uc.AddItem(context.Background(), testUserID, entity.ProductRef(testProductID), 50)
	require.NoError(t, err)
	require.Len(t, resp.Lines, 1)
	assert.Equal(t, 5, resp.Lines[0].Quantity, "el stock es 5")
}

// Producto sin stock se rechaza con el error tipado.
func TestAddItem_ProductoSinStock(t *testing.T) {
	uc, runner := newTestUseCase()
	runner.productRepo.products[testProductID].Stock = 0

	_, err := uc.AddItem(context.Background(), testUserID, entity.ProductRef(testProductID), 1)
	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 0, stockErr.Available)
}

// Producto inactivo no es agregable.
func TestAddItem_ProductoInactivo(t *testing.T) {
	uc, runner := newTestUseCase()
	runner.productRepo.products[testProductID].Status = entity.ProductInactivo

	_, err := uc.AddItem(context.Background(), testUserID, entity.ProductRef(testProductID), 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Los servicios no tienen stock: la cantidad se tope al límite configurado.
func TestAddItem_ServicioTopadoAlLimite(t *testing.T) {
	uc, _ := newTestUseCase()

	resp, err := uc.AddItem(context.Background(), testUserID, entity.ServiceRef(testServiceID), 99)
	require.NoError(t, err)
	require.Len(t, resp.Lines, 1)
	assert.Equal(t, "servicio", resp.Lines[0].ItemType)
	assert.Equal(t, 10, resp.Lines[0].Quantity)
}

// Referencia de ítem inválida o cantidad < 1 → ErrInvalidInput.
func TestAddItem_EntradasInvalidas(t *testing.T) {
	uc, _ := newTestUseCase()

	_, err := uc.AddItem(context.Background(), testUserID, entity.ItemRef{Kind: "otro", ID: "x"}, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.AddItem(context.Background(), testUserID, entity.ProductRef(testProductID), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests SetQuantity / RemoveLine
// ──────────────────────────────────────────────────────────────────────────────

// Delta positivo topado a stock; delta negativo con piso en 1.
func TestSetQuantity_DeltasConTopes(t *testing.T) {
	uc, _ := newTestUseCase()

	resp, err := uc.AddItem(context.Background(), testUserID, entity.ProductRef(testProductID), 2)
	require.NoError(t, err)
	lineID := resp.Lines[0].ID

	resp, err = uc.SetQuantity(context.Background(), testUserID, lineID, +10)
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Lines[0].Quantity, "incremento topado al stock")

	resp, err = uc.SetQuantity(context.Background(), testUserID, lineID, -10)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Lines[0].Quantity, "decremento con piso en 1")
}

// Una línea de otro carrito no es ajustable por este usuario.
func TestSetQuantity_LineaAjena(t *testing.T) {
	uc, runner := newTestUseCase()

	resp, err := uc.AddItem(context.Background(), testUserID, entity.ProductRef(testProductID), 1)
	require.NoError(t, err)
	lineID := resp.Lines[0].ID

	// el carrito pasa a otro usuario: la línea deja de pertenecerle
	runner.cartRepo.cart.UserID = "otro-usuario"

	_, err = uc.SetQuantity(context.Background(), testUserID, lineID, +1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemoveLine_QuitaLaLinea(t *testing.T) {
	uc, _ := newTestUseCase()

	resp, err := uc.AddItem(context.Background(), testUserID, entity.ProductRef(testProductID), 1)
	require.NoError(t, err)

	resp, err = uc.RemoveLine(context.Background(), testUserID, resp.Lines[0].ID)
	require.NoError(t, err)
	assert.Empty(t, resp.Lines)
	assert.True(t, resp.Subtotal.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests GetActive / Abandon
// ──────────────────────────────────────────────────────────────────────────────

// La consulta sin carrito activo devuelve vacío y no crea carritos.
func TestGetActive_SinCarritoDevuelveVacio(t *testing.T) {
	uc, runner := newTestUseCase()

	resp, err := uc.GetActive(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Empty(t, resp.Lines)
	assert.True(t, resp.Total.IsZero())
	assert.Equal(t, 0, runner.cartRepo.created, "la consulta no debe crear carritos")
}

// Abandonar un carrito activo lo saca de circulación; repetir falla porque
// la transición es de una sola vía.
func TestAbandon_SoloDesdeActivo(t *testing.T) {
	uc, runner := newTestUseCase()

	_, err := uc.AddItem(context.Background(), testUserID, entity.ProductRef(testProductID), 1)
	require.NoError(t, err)
	cartID := runner.cartRepo.cart.ID

	require.NoError(t, uc.Abandon(context.Background(), cartID))
	assert.Equal(t, entity.CartAbandonado, runner.cartRepo.cart.Status)

	assert.ErrorIs(t, uc.Abandon(context.Background(), cartID), domain.ErrNotFound)
}

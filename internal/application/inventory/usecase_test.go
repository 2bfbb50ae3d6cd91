package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casabella/casa-bella-api/internal/application/dto"
	"github.com/casabella/casa-bella-api/internal/application/inventory"
	"github.com/casabella/casa-bella-api/internal/domain"
	"github.com/casabella/casa-bella-api/internal/domain/entity"
	"github.com/casabella/casa-bella-api/internal/domain/repository"
)

type memProductRepo struct {
	products     map[string]*entity.Product
	stockUpdates map[string]int
}

func (m *memProductRepo) Create(p *entity.Product) error                             { panic("no usado") }
func (m *memProductRepo) Update(p *entity.Product) error                             { panic("no usado") }
func (m *memProductRepo) GetByID(id string) (*entity.Product, error)                 { panic("no usado") }
func (m *memProductRepo) List(f repository.ProductFilter) ([]*entity.Product, error) { panic("no usado") }

func (m *memProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return m.products[id], nil
}

func (m *memProductRepo) UpdateStock(id string, newStock int) error {
	if m.stockUpdates == nil {
		m.stockUpdates = make(map[string]int)
	}
	m.stockUpdates[id] = newStock
	m.products[id].Stock = newStock
	return nil
}

func (m *memProductRepo) ListLowStock() ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range m.products {
		if p.LowStock() {
			out = append(out, p)
		}
	}
	return out, nil
}

type memMovementRepo struct {
	movements []*entity.InventoryMovement
}

func (m *memMovementRepo) Create(mov *entity.InventoryMovement) error {
	m.movements = append(m.movements, mov)
	return nil
}

func (m *memMovementRepo) List(f repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	return m.movements, nil
}

type memTxRunner struct {
	productRepo *memProductRepo
	movRepo     *memMovementRepo
}

func (m *memTxRunner) RunInventory(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.InventoryMovementRepository,
) error) error {
	return fn(m.productRepo, m.movRepo)
}

const (
	testAdminID   = "11111111-1111-1111-1111-111111111111"
	testProductID = "22222222-2222-2222-2222-222222222222"
)

func newTestUseCase(stock int) (*inventory.InventoryUseCase, *memTxRunner) {
	runner := &memTxRunner{
		productRepo: &memProductRepo{products: map[string]*entity.Product{
			testProductID: {
				ID:           testProductID,
				Name:         "Crema hidratante",
				Price:        decimal.RequireFromString("410.00"),
				Stock:        stock,
				StockMinimum: 5,
				Status:       entity.ProductActivo,
			},
		}},
		movRepo: &memMovementRepo{},
	}
	return inventory.NewInventoryUseCase(runner, runner.productRepo, runner.movRepo), runner
}

// Una entrada suma stock y deja su asiento con autor y motivo.
func TestRegisterMovement_Entrada(t *testing.T) {
	uc, runner := newTestUseCase(10)

	resp, err := uc.RegisterMovement(context.Background(), testAdminID, dto.RegisterMovementRequest{
		ProductID: testProductID,
		Type:      entity.MovementEntrada,
		Quantity:  15,
		Reason:    "recepción de proveedor",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementEntrada, resp.Type)
	assert.Equal(t, 25, runner.productRepo.stockUpdates[testProductID])

	require.Len(t, runner.movRepo.movements, 1)
	assert.Equal(t, testAdminID, runner.movRepo.movements[0].CreatedBy)
	assert.Equal(t, "recepción de proveedor", runner.movRepo.movements[0].Reason)
}

// Una salida resta stock; el libro solo registra, nunca reescribe.
func TestRegisterMovement_Salida(t *testing.T) {
	uc, runner := newTestUseCase(10)

	_, err := uc.RegisterMovement(context.Background(), testAdminID, dto.RegisterMovementRequest{
		ProductID: testProductID,
		Type:      entity.MovementSalida,
		Quantity:  4,
		Reason:    "merma",
	})
	require.NoError(t, err)
	assert.Equal(t, 6, runner.productRepo.stockUpdates[testProductID])
}

// Una salida que dejaría stock negativo se rechaza sin tocar nada.
func TestRegisterMovement_SalidaSinStock(t *testing.T) {
	uc, runner := newTestUseCase(3)

	_, err := uc.RegisterMovement(context.Background(), testAdminID, dto.RegisterMovementRequest{
		ProductID: testProductID,
		Type:      entity.MovementSalida,
		Quantity:  5,
		Reason:    "daño",
	})
	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 3, stockErr.Available)
	assert.Empty(t, runner.movRepo.movements)
	assert.Empty(t, runner.productRepo.stockUpdates)
}

// Entradas inválidas: cantidad < 1, sin motivo, tipo desconocido.
func TestRegisterMovement_Validaciones(t *testing.T) {
	uc, _ := newTestUseCase(10)

	cases := []dto.RegisterMovementRequest{
		{ProductID: testProductID, Type: entity.MovementEntrada, Quantity: 0, Reason: "x"},
		{ProductID: testProductID, Type: entity.MovementEntrada, Quantity: 1, Reason: ""},
		{ProductID: testProductID, Type: "ajuste", Quantity: 1, Reason: "x"},
	}
	for _, in := range cases {
		_, err := uc.RegisterMovement(context.Background(), testAdminID, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

// Fechas del filtro en formato YYYY-MM-DD; otra cosa es entrada inválida.
func TestList_FechaInvalida(t *testing.T) {
	uc, _ := newTestUseCase(10)

	_, err := uc.List(context.Background(), dto.MovementFilterRequest{From: "29/11/2023"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// El reporte de stock bajo incluye el producto en o bajo su mínimo.
func TestLowStockReport(t *testing.T) {
	uc, runner := newTestUseCase(5) // stock 5 == mínimo 5

	report, err := uc.LowStockReport(context.Background())
	require.NoError(t, err)
	require.Len(t, report, 1)
	assert.Equal(t, testProductID, report[0].ProductID)
	assert.Equal(t, 5, report[0].Stock)
	assert.Equal(t, 5, report[0].StockMinimum)

	runner.productRepo.products[testProductID].Stock = 6
	report, err = uc.LowStockReport(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report)
}

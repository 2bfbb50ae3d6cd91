package inventory

import (
	"context"
	"time"

	"github.com/casabella/casa-bella-api/internal/application/dto"
	"github.com/casabella/casa-bella-api/internal/domain"
	"github.com/casabella/casa-bella-api/internal/domain/entity"
	"github.com/casabella/casa-bella-api/internal/domain/repository"
)

// InventoryUseCase movimientos manuales de inventario y consultas del libro.
// Las entradas son recepciones de mercancía; las salidas manuales cubren
// merma y daño (las salidas por venta las registra el checkout).
type InventoryUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	movRepo     repository.InventoryMovementRepository
}

// NewInventoryUseCase construye el caso de uso inyectando sus dependencias.
func NewInventoryUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movRepo repository.InventoryMovementRepository,
) *InventoryUseCase {
	return &InventoryUseCase{txRunner: txRunner, productRepo: productRepo, movRepo: movRepo}
}

// RegisterMovement registra una entrada o salida manual: bloquea la fila del
// producto, ajusta stock y agrega el asiento, todo en una transacción.
// Una salida que dejaría el stock negativo se rechaza con
// *InsufficientStockError.
func (uc *InventoryUseCase) RegisterMovement(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	if in.Quantity < 1 || in.Reason == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Type != entity.MovementEntrada && in.Type != entity.MovementSalida {
		return nil, domain.ErrInvalidInput
	}

	var movement *entity.InventoryMovement
	err := uc.txRunner.RunInventory(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
	) error {
		product, err := productRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		newStock := product.Stock
		if in.Type == entity.MovementEntrada {
			newStock += in.Quantity
		} else {
			newStock -= in.Quantity
			if newStock < 0 {
				return &domain.InsufficientStockError{
					ProductID:   product.ID,
					ProductName: product.Name,
					Available:   product.Stock,
					Requested:   in.Quantity,
				}
			}
		}
		if err := productRepo.UpdateStock(product.ID, newStock); err != nil {
			return err
		}

		movement = &entity.InventoryMovement{
			ProductID: product.ID,
			Type:      in.Type,
			Quantity:  in.Quantity,
			Reason:    in.Reason,
			CreatedAt: time.Now(),
			CreatedBy: userID,
		}
		return movRepo.Create(movement)
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(movement), nil
}

// List consulta el libro con filtros opcionales.
func (uc *InventoryUseCase) List(_ context.Context, in dto.MovementFilterRequest) ([]dto.MovementResponse, error) {
	in.DefaultPage()
	filter := repository.MovementFilter{
		ProductID: in.ProductID,
		Type:      in.Type,
		Limit:     in.Limit,
		Offset:    in.Offset,
	}
	var err error
	if filter.From, err = parseDate(in.From, false); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if filter.To, err = parseDate(in.To, true); err != nil {
		return nil, domain.ErrInvalidInput
	}

	movements, err := uc.movRepo.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, *toMovementResponse(m))
	}
	return out, nil
}

// LowStockReport lista los productos en o por debajo de su mínimo.
func (uc *InventoryUseCase) LowStockReport(_ context.Context) ([]dto.LowStockItem, error) {
	products, err := uc.productRepo.ListLowStock()
	if err != nil {
		return nil, err
	}
	out := make([]dto.LowStockItem, 0, len(products))
	for _, p := range products {
		out = append(out, dto.LowStockItem{
			ProductID:    p.ID,
			Name:         p.Name,
			Stock:        p.Stock,
			StockMinimum: p.StockMinimum,
		})
	}
	return out, nil
}

// parseDate interpreta YYYY-MM-DD; endOfDay corre el límite al final del día.
func parseDate(s string, endOfDay bool) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

func toMovementResponse(m *entity.InventoryMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Type:      m.Type,
		Quantity:  m.Quantity,
		Reason:    m.Reason,
		CreatedAt: m.CreatedAt,
		CreatedBy: m.CreatedBy,
	}
}

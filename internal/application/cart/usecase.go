package cart

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/casabella/casa-bella-api/internal/application/dto"
	"github.com/casabella/casa-bella-api/internal/domain"
	"github.com/casabella/casa-bella-api/internal/domain/entity"
	"github.com/casabella/casa-bella-api/internal/domain/pricing"
	"github.com/casabella/casa-bella-api/internal/domain/repository"
)

// Config reglas comerciales que afectan al carrito.
type Config struct {
	TaxRate       decimal.Decimal
	ServiceQtyCap int
}

// CartUseCase casos de uso del carrito: agregar, ajustar, quitar y consultar.
// Las mutaciones corren dentro del TxRunner; la consulta lee con los repos
// atados al pool.
type CartUseCase struct {
	txRunner    TxRunner
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	serviceRepo repository.ServiceRepository
	cfg         Config
}

// NewCartUseCase construye el caso de uso inyectando sus dependencias.
func NewCartUseCase(
	txRunner TxRunner,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	serviceRepo repository.ServiceRepository,
	cfg Config,
) *CartUseCase {
	return &CartUseCase{
		txRunner:    txRunner,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		serviceRepo: serviceRepo,
		cfg:         cfg,
	}
}

// AddItem agrega un producto o servicio al carrito activo del usuario,
// creándolo si no existe. El precio unitario queda congelado aquí; el
// checkout no vuelve a leer el catálogo. Si el ítem ya está en el carrito
// se incrementa la línea existente.
//
// Productos: requieren stock > 0 y la cantidad se tope a stock.
// Servicios: la cantidad se tope al límite configurado.
func (uc *CartUseCase) AddItem(ctx context.Context, userID string, item entity.ItemRef, quantity int) (*dto.CartResponse, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, domain.ErrInvalidInput
	}

	err := uc.txRunner.RunCart(ctx, func(
		cartRepo repository.CartRepository,
		productRepo repository.ProductRepository,
		serviceRepo repository.ServiceRepository,
	) error {
		cart, err := cartRepo.FindOrCreateActive(userID)
		if err != nil {
			return err
		}

		var (
			price  decimal.Decimal
			maxQty int
		)
		if item.IsProduct() {
			product, err := productRepo.GetByID(item.ID)
			if err != nil {
				return err
			}
			if product == nil || product.Status != entity.ProductActivo {
				return domain.ErrNotFound
			}
			if product.Stock <= 0 {
				return &domain.InsufficientStockError{
					ProductID:   product.ID,
					ProductName: product.Name,
					Available:   product.Stock,
					Requested:   quantity,
				}
			}
			price = product.Price
			maxQty = product.Stock
		} else {
			service, err := serviceRepo.GetByID(item.ID)
			if err != nil {
				return err
			}
			if service == nil {
				return domain.ErrNotFound
			}
			price = service.Price
			maxQty = uc.cfg.ServiceQtyCap
		}

		lines, err := cartRepo.ListLines(cart.ID)
		if err != nil {
			return err
		}
		for _, l := range lines {
			if l.Item() == item {
				newQty := l.Quantity + quantity
				if newQty > maxQty {
					newQty = maxQty
				}
				return cartRepo.UpdateLineQuantity(l.ID, newQty)
			}
		}

		if quantity > maxQty {
			quantity = maxQty
		}
		line := &entity.CartLine{
			CartID:    cart.ID,
			Quantity:  quantity,
			UnitPrice: price,
			CreatedAt: time.Now(),
		}
		if item.IsProduct() {
			line.ProductID = item.ID
		} else {
			line.ServiceID = item.ID
		}
		return cartRepo.CreateLine(line)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetActive(ctx, userID)
}

// SetQuantity ajusta la cantidad de una línea con un delta. Incrementos se
// topan a stock (productos) o al límite de servicios; decrementos tienen
// piso en 1 (para quitar la línea está RemoveLine).
func (uc *CartUseCase) SetQuantity(ctx context.Context, userID, lineID string, delta int) (*dto.CartResponse, error) {
	if delta == 0 {
		return uc.GetActive(ctx, userID)
	}

	err := uc.txRunner.RunCart(ctx, func(
		cartRepo repository.CartRepository,
		productRepo repository.ProductRepository,
		serviceRepo repository.ServiceRepository,
	) error {
		cart, err := cartRepo.GetActiveForUpdate(userID)
		if err != nil {
			return err
		}
		if cart == nil {
			return domain.ErrNotFound
		}
		line, err := cartRepo.GetLine(lineID)
		if err != nil {
			return err
		}
		if line == nil || line.CartID != cart.ID {
			return domain.ErrNotFound
		}

		newQty := line.Quantity + delta
		if newQty < 1 {
			newQty = 1
		}
		if delta > 0 {
			maxQty := uc.cfg.ServiceQtyCap
			if line.ProductID != "" {
				product, err := productRepo.GetByID(line.ProductID)
				if err != nil {
					return err
				}
				if product == nil {
					return domain.ErrNotFound
				}
				maxQty = product.Stock
			}
			if newQty > maxQty {
				newQty = maxQty
			}
			if newQty < 1 {
				newQty = 1
			}
		}
		if newQty == line.Quantity {
			return nil
		}
		return cartRepo.UpdateLineQuantity(line.ID, newQty)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetActive(ctx, userID)
}

// RemoveLine quita una línea del carrito activo del usuario.
func (uc *CartUseCase) RemoveLine(ctx context.Context, userID, lineID string) (*dto.CartResponse, error) {
	err := uc.txRunner.RunCart(ctx, func(
		cartRepo repository.CartRepository,
		_ repository.ProductRepository,
		_ repository.ServiceRepository,
	) error {
		cart, err := cartRepo.GetActiveForUpdate(userID)
		if err != nil {
			return err
		}
		if cart == nil {
			return domain.ErrNotFound
		}
		line, err := cartRepo.GetLine(lineID)
		if err != nil {
			return err
		}
		if line == nil || line.CartID != cart.ID {
			return domain.ErrNotFound
		}
		return cartRepo.DeleteLine(line.ID)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetActive(ctx, userID)
}

// GetActive devuelve el carrito activo con líneas y totales previsualizados
// (mismas reglas de cálculo que el checkout). Sin carrito activo devuelve
// una respuesta vacía; la consulta no crea carritos.
func (uc *CartUseCase) GetActive(_ context.Context, userID string) (*dto.CartResponse, error) {
	cart, err := uc.cartRepo.GetActiveByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return &dto.CartResponse{
			Status:   entity.CartActivo,
			Lines:    []dto.CartLineResponse{},
			Subtotal: decimal.Zero,
			Tax:      decimal.Zero,
			Total:    decimal.Zero,
		}, nil
	}

	lines, err := uc.cartRepo.ListLines(cart.ID)
	if err != nil {
		return nil, err
	}

	resp := &dto.CartResponse{
		ID:     cart.ID,
		Status: cart.Status,
		Lines:  make([]dto.CartLineResponse, 0, len(lines)),
	}
	priceLines := make([]pricing.Line, 0, len(lines))
	for _, l := range lines {
		item := l.Item()
		name := ""
		if item.IsProduct() {
			if p, err := uc.productRepo.GetByID(item.ID); err == nil && p != nil {
				name = p.Name
			}
		} else {
			if s, err := uc.serviceRepo.GetByID(item.ID); err == nil && s != nil {
				name = s.Name
			}
		}
		resp.Lines = append(resp.Lines, dto.CartLineResponse{
			ID:        l.ID,
			ItemType:  item.Kind,
			ItemID:    item.ID,
			ItemName:  name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			LineTotal: l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))),
		})
		priceLines = append(priceLines, pricing.Line{Quantity: l.Quantity, UnitPrice: l.UnitPrice})
	}

	totals := pricing.Compute(priceLines, uc.cfg.TaxRate)
	resp.Subtotal = totals.Subtotal
	resp.Tax = totals.Tax
	resp.Total = totals.Total
	return resp, nil
}

// Abandon marca un carrito como abandonado (mantenimiento, solo admin).
// Falla con ErrNotFound si el carrito no existe o ya no está activo.
func (uc *CartUseCase) Abandon(_ context.Context, cartID string) error {
	return uc.cartRepo.SetStatus(cartID, entity.CartAbandonado)
}

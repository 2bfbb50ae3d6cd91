package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/casabella/casa-bella-api/internal/application/dto"
	"github.com/casabella/casa-bella-api/internal/domain"
	"github.com/casabella/casa-bella-api/internal/domain/entity"
	"github.com/casabella/casa-bella-api/internal/domain/repository"
	"github.com/casabella/casa-bella-api/internal/infrastructure/cache"
	"github.com/casabella/casa-bella-api/pkg/logger"
)

// catalogTTL vigencia de los listados cacheados del catálogo.
const catalogTTL = 5 * time.Minute

// ProductUseCase casos de uso CRUD del catálogo de productos. Stock se
// maneja solo vía checkout y movimientos de inventario, nunca por Update.
// Los listados pasan por el caché de catálogo; las escrituras lo invalidan.
type ProductUseCase struct {
	repo  repository.ProductRepository
	cache cache.CatalogCache
	log   *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, c cache.CatalogCache, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{repo: repo, cache: c, log: log}
}

// Create crea un producto nuevo (solo admin).
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if !entity.ValidProductType(in.Type) || in.Price.LessThan(decimal.Zero) || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		CategoryID:   in.CategoryID,
		Name:         in.Name,
		Description:  in.Description,
		Type:         in.Type,
		Price:        in.Price,
		Stock:        in.Stock,
		StockMinimum: in.StockMinimum,
		Status:       entity.ProductActivo,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(_ context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza los datos del producto. No toca Stock.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if !entity.ValidProductType(in.Type) || in.Price.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.Status != entity.ProductActivo && in.Status != entity.ProductInactivo {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	product.CategoryID = in.CategoryID
	product.Name = in.Name
	product.Description = in.Description
	product.Type = in.Type
	product.Price = in.Price
	product.StockMinimum = in.StockMinimum
	product.Status = in.Status
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return toProductResponse(product), nil
}

// List lista el catálogo con filtros. Los resultados se sirven del caché
// cuando hay hit; un miss consulta la base y puebla la entrada.
func (uc *ProductUseCase) List(ctx context.Context, in dto.ProductFilterRequest) ([]dto.ProductResponse, error) {
	in.DefaultPage()
	key := listCacheKey(in)

	if cached, ok, err := uc.cache.GetProducts(ctx, key); err == nil && ok {
		return toProductResponses(cached), nil
	} else if err != nil {
		uc.log.Warn().Err(err).Msg("catálogo: lectura de caché falló")
	}

	products, err := uc.repo.List(repository.ProductFilter{
		Search:     in.Search,
		CategoryID: in.CategoryID,
		Type:       in.Type,
		InStock:    in.InStock,
		Limit:      in.Limit,
		Offset:     in.Offset,
	})
	if err != nil {
		return nil, err
	}

	if err := uc.cache.SetProducts(ctx, key, products, catalogTTL); err != nil {
		uc.log.Warn().Err(err).Msg("catálogo: escritura de caché falló")
	}
	return toProductResponses(products), nil
}

// invalidate borra el caché de catálogo tras una escritura.
func (uc *ProductUseCase) invalidate(ctx context.Context) {
	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("catálogo: invalidación de caché falló")
	}
}

func listCacheKey(in dto.ProductFilterRequest) string {
	return fmt.Sprintf("%s|%s|%s|%t|%d|%d",
		in.Search, in.CategoryID, in.Type, in.InStock, in.Limit, in.Offset)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           p.ID,
		CategoryID:   p.CategoryID,
		Name:         p.Name,
		Description:  p.Description,
		Type:         p.Type,
		Price:        p.Price,
		Stock:        p.Stock,
		StockMinimum: p.StockMinimum,
		Status:       p.Status,
		LowStock:     p.LowStock(),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func toProductResponses(products []*entity.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return out
}

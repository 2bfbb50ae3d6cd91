package cache

import (
	"context"
	"time"

	"github.com/casabella/casa-bella-api/internal/domain/entity"
)

// CatalogCache cachea listados del catálogo por clave de filtro.
// Invalidate borra todas las entradas; se llama al crear o modificar
// productos o servicios.
type CatalogCache interface {
	GetProducts(ctx context.Context, key string) ([]*entity.Product, bool, error)
	SetProducts(ctx context.Context, key string, products []*entity.Product, ttl time.Duration) error
	GetServices(ctx context.Context, key string) ([]*entity.Service, bool, error)
	SetServices(ctx context.Context, key string, services []*entity.Service, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

// NoopCatalogCache se usa cuando Redis no está configurado: todo miss.
type NoopCatalogCache struct{}

func (NoopCatalogCache) GetProducts(_ context.Context, _ string) ([]*entity.Product, bool, error) {
	return nil, false, nil
}

func (NoopCatalogCache) SetProducts(_ context.Context, _ string, _ []*entity.Product, _ time.Duration) error {
	return nil
}

func (NoopCatalogCache) GetServices(_ context.Context, _ string) ([]*entity.Service, bool, error) {
	return nil, false, nil
}

func (NoopCatalogCache) SetServices(_ context.Context, _ string, _ []*entity.Service, _ time.Duration) error {
	return nil
}

func (NoopCatalogCache) Invalidate(_ context.Context) error { return nil }

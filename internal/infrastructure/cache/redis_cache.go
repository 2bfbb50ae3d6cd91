package cache

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/casabella/casa-bella-api/internal/domain/entity"
)

const (
	productPrefix = "catalog:products:"
	servicePrefix = "catalog:services:"
)

var _ CatalogCache = (*RedisCatalogCache)(nil)

// RedisCatalogCache implementación de CatalogCache sobre go-redis.
type RedisCatalogCache struct {
	client *redis.Client
}

// NewRedisCatalogCache crea el cliente y valida la conexión al arranque.
func NewRedisCatalogCache(addr, password string, db int) (*RedisCatalogCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &RedisCatalogCache{client: client}, nil
}

func (c *RedisCatalogCache) Close() error {
	return c.client.Close()
}

func (c *RedisCatalogCache) GetProducts(ctx context.Context, key string) ([]*entity.Product, bool, error) {
	var list []*entity.Product
	ok, err := c.get(ctx, productPrefix+key, &list)
	return list, ok, err
}

func (c *RedisCatalogCache) SetProducts(ctx context.Context, key string, products []*entity.Product, ttl time.Duration) error {
	return c.set(ctx, productPrefix+key, products, ttl)
}

func (c *RedisCatalogCache) GetServices(ctx context.Context, key string) ([]*entity.Service, bool, error) {
	var list []*entity.Service
	ok, err := c.get(ctx, servicePrefix+key, &list)
	return list, ok, err
}

func (c *RedisCatalogCache) SetServices(ctx context.Context, key string, services []*entity.Service, ttl time.Duration) error {
	return c.set(ctx, servicePrefix+key, services, ttl)
}

// Invalidate borra todas las entradas del catálogo (productos y servicios).
func (c *RedisCatalogCache) Invalidate(ctx context.Context) error {
	for _, prefix := range []string{productPrefix, servicePrefix} {
		iter := c.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
		for iter.Next(ctx) {
			if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
				return err
			}
		}
		if err := iter.Err(); err != nil {
			return err
		}
	}
	return nil
}

func (c *RedisCatalogCache) get(ctx context.Context, key string, out any) (bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(val), out); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisCatalogCache) set(ctx context.Context, key string, value any, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, ttl).Err()
}

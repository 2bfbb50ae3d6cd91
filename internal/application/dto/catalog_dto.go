package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	CategoryID   string          `json:"category_id" validate:"omitempty,uuid"`
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Description  string          `json:"description" validate:"omitempty,max=2000"`
	Type         string          `json:"type" validate:"required,oneof=cosmético joya"`
	Price        decimal.Decimal `json:"price" validate:"required"`
	Stock        int             `json:"stock" validate:"min=0"`
	StockMinimum int             `json:"stock_minimum" validate:"min=0"`
}

// UpdateProductRequest body para PUT /api/products/:id. No toca stock:
// el stock solo se mueve por checkout o movimientos de inventario.
type UpdateProductRequest struct {
	CategoryID   string          `json:"category_id" validate:"omitempty,uuid"`
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Description  string          `json:"description" validate:"omitempty,max=2000"`
	Type         string          `json:"type" validate:"required,oneof=cosmético joya"`
	Price        decimal.Decimal `json:"price" validate:"required"`
	StockMinimum int             `json:"stock_minimum" validate:"min=0"`
	Status       string          `json:"status" validate:"required,oneof=activo inactivo"`
}

// ProductFilterRequest filtros de listado de catálogo (query params).
type ProductFilterRequest struct {
	Search     string `query:"search"`
	CategoryID string `query:"category_id"`
	Type       string `query:"type"`
	InStock    bool   `query:"in_stock"`
	PageRequest
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	CategoryID   string          `json:"category_id,omitempty"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Type         string          `json:"type"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	StockMinimum int             `json:"stock_minimum"`
	Status       string          `json:"status"`
	LowStock     bool            `json:"low_stock"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// CreateServiceRequest body para POST /api/services.
type CreateServiceRequest struct {
	Name            string          `json:"name" validate:"required,min=1,max=200"`
	Description     string          `json:"description" validate:"omitempty,max=2000"`
	Price           decimal.Decimal `json:"price" validate:"required"`
	DurationMinutes int             `json:"duration_minutes" validate:"required,min=5,max=480"`
}

// ServiceResponse salida de un servicio.
type ServiceResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes int             `json:"duration_minutes"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// CreateCategoryRequest body para POST /api/categories.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

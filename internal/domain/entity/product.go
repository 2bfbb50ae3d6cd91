package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de producto del catálogo.
const (
	ProductCosmetico = "cosmético"
	ProductJoya      = "joya"
)

// Estados de producto.
const (
	ProductActivo   = "activo"
	ProductInactivo = "inactivo"
)

// Product representa un producto vendible del catálogo (cosmético o joya).
// Stock se muta solo vía checkout o movimientos de inventario, nunca por Update.
type Product struct {
	ID           string
	CategoryID   string
	Name         string
	Description  string
	Type         string
	Price        decimal.Decimal
	Stock        int
	StockMinimum int
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LowStock indica si el producto está en o por debajo de su mínimo.
func (p *Product) LowStock() bool { return p.Stock <= p.StockMinimum }

// ValidProductType indica si el tipo es uno de los reconocidos.
func ValidProductType(t string) bool {
	return t == ProductCosmetico || t == ProductJoya
}

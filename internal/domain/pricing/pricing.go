// Package pricing concentra las reglas de totales de venta: el checkout del
// carrito y la venta generada por una cita completada pasan por aquí, nunca
// por copias propias del cálculo.
package pricing

import "github.com/shopspring/decimal"

// Line cantidad y precio unitario congelado de una línea a totalizar.
type Line struct {
	Quantity  int
	UnitPrice decimal.Decimal
}

// Totals subtotal, impuesto y total de una venta. Tax está redondeado a
// 2 decimales (mitad hacia arriba); Total = Subtotal + Tax.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Compute totaliza las líneas con la tasa de impuesto dada.
// Aritmética decimal de punta a punta; el único redondeo es el del impuesto
// (los precios unitarios ya vienen con 2 decimales, así que el subtotal es
// exacto y Total = round(Subtotal*(1+rate), 2) se cumple por construcción).
func Compute(lines []Line, taxRate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	subtotal = subtotal.Round(2)
	tax := subtotal.Mul(taxRate).Round(2)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

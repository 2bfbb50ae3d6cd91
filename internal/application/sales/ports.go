package sales

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/casabella/casa-bella-api/internal/domain/entity"
)

// SaleLineForPDF línea de venta enriquecida con el nombre del ítem para la factura.
type SaleLineForPDF struct {
	ItemName  string
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// SalePDFGenerator genera la factura en PDF de una venta.
// customer puede ser nil (venta mostrador sin cuenta).
type SalePDFGenerator interface {
	GenerateSalePDF(
		ctx context.Context,
		sale *entity.Sale,
		customer *entity.User,
		payment *entity.Payment,
		lines []SaleLineForPDF,
	) ([]byte, error)
}

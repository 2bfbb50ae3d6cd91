package sales

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/casabella/casa-bella-api/internal/domain"
	"github.com/casabella/casa-bella-api/internal/domain/entity"
	"github.com/casabella/casa-bella-api/internal/domain/repository"
)

// PDFUseCase genera la factura en PDF de una venta confirmada.
type PDFUseCase struct {
	saleRepo    repository.SaleRepository
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	serviceRepo repository.ServiceRepository
	generator   SalePDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	saleRepo repository.SaleRepository,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	serviceRepo repository.ServiceRepository,
	generator SalePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		saleRepo:    saleRepo,
		userRepo:    userRepo,
		productRepo: productRepo,
		serviceRepo: serviceRepo,
		generator:   generator,
	}
}

// DownloadSalePDF recupera la venta completa, verifica acceso (dueño o admin)
// y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la venta no existe.
//   - domain.ErrForbidden        si la venta no es del solicitante.
func (uc *PDFUseCase) DownloadSalePDF(ctx context.Context, saleID, userID, role string) (pdfBytes []byte, filename string, err error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener venta: %w", err)
	}
	if sale == nil {
		return nil, "", domain.ErrNotFound
	}
	if role != entity.RoleAdmin && sale.UserID != userID {
		return nil, "", domain.ErrForbidden
	}

	var customer *entity.User
	if sale.UserID != "" {
		customer, err = uc.userRepo.GetByID(sale.UserID)
		if err != nil {
			return nil, "", fmt.Errorf("pdf: obtener cliente: %w", err)
		}
	}

	rawLines, err := uc.saleRepo.GetLines(saleID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener líneas: %w", err)
	}
	payment, err := uc.saleRepo.GetPayment(saleID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener pago: %w", err)
	}

	enriched := make([]SaleLineForPDF, 0, len(rawLines))
	for _, l := range rawLines {
		name := uc.lineName(l)
		enriched = append(enriched, SaleLineForPDF{
			ItemName:  name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			LineTotal: l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))),
		})
	}

	pdfBytes, err = uc.generator.GenerateSalePDF(ctx, sale, customer, payment, enriched)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("venta_%s.pdf", sale.ID)
	return pdfBytes, filename, nil
}

// lineName resuelve el nombre del ítem con fallback genérico.
func (uc *PDFUseCase) lineName(l *entity.SaleLine) string {
	item := l.Item()
	if item.IsProduct() {
		if p, err := uc.productRepo.GetByID(item.ID); err == nil && p != nil {
			return p.Name
		}
		return "Producto " + item.ID
	}
	if s, err := uc.serviceRepo.GetByID(item.ID); err == nil && s != nil {
		return s.Name
	}
	return "Servicio " + item.ID
}

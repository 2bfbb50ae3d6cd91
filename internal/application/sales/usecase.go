package sales

import (
	"context"
	"time"

	"github.com/casabella/casa-bella-api/internal/application/dto"
	"github.com/casabella/casa-bella-api/internal/domain"
	"github.com/casabella/casa-bella-api/internal/domain/entity"
	"github.com/casabella/casa-bella-api/internal/domain/repository"
)

// SalesUseCase consultas de ventas ya confirmadas. Las ventas son inmutables:
// aquí no hay escrituras, solo lecturas con control de acceso.
type SalesUseCase struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	serviceRepo repository.ServiceRepository
}

// NewSalesUseCase construye el caso de uso inyectando sus dependencias.
func NewSalesUseCase(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	serviceRepo repository.ServiceRepository,
) *SalesUseCase {
	return &SalesUseCase{saleRepo: saleRepo, productRepo: productRepo, serviceRepo: serviceRepo}
}

// GetSale devuelve una venta con líneas y pago. Solo el dueño o un admin.
func (uc *SalesUseCase) GetSale(_ context.Context, saleID, userID, role string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if role != entity.RoleAdmin && sale.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return uc.buildResponse(sale)
}

// ListMine lista las ventas del usuario del token (solo cabeceras).
func (uc *SalesUseCase) ListMine(_ context.Context, userID string) ([]dto.SaleResponse, error) {
	sales, err := uc.saleRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	return toHeaders(sales), nil
}

// List listado admin por rango de fechas (YYYY-MM-DD, inclusive).
func (uc *SalesUseCase) List(_ context.Context, in dto.SaleListRequest) ([]dto.SaleResponse, error) {
	from, to, err := parseRange(in.From, in.To)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	sales, err := uc.saleRepo.List(from, to)
	if err != nil {
		return nil, err
	}
	return toHeaders(sales), nil
}

// buildResponse arma la respuesta completa resolviendo nombres de ítems.
func (uc *SalesUseCase) buildResponse(sale *entity.Sale) (*dto.SaleResponse, error) {
	lines, err := uc.saleRepo.GetLines(sale.ID)
	if err != nil {
		return nil, err
	}
	payment, err := uc.saleRepo.GetPayment(sale.ID)
	if err != nil {
		return nil, err
	}

	resp := &dto.SaleResponse{
		ID:            sale.ID,
		UserID:        sale.UserID,
		AppointmentID: sale.AppointmentID,
		Date:          sale.Date,
		Subtotal:      sale.Subtotal,
		Tax:           sale.Tax,
		Total:         sale.Total,
		Lines:         make([]dto.SaleLineResponse, 0, len(lines)),
	}
	for _, l := range lines {
		item := l.Item()
		resp.Lines = append(resp.Lines, dto.SaleLineResponse{
			ID:        l.ID,
			ItemType:  item.Kind,
			ItemID:    item.ID,
			ItemName:  uc.itemName(item),
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}
	if payment != nil {
		resp.Payment = &dto.PaymentResponse{
			ID:     payment.ID,
			Method: payment.Method,
			Amount: payment.Amount,
			Status: payment.Status,
			PaidAt: payment.PaidAt,
		}
	}
	return resp, nil
}

// itemName resuelve el nombre actual del ítem; vacío si ya no existe.
func (uc *SalesUseCase) itemName(item entity.ItemRef) string {
	if item.IsProduct() {
		if p, err := uc.productRepo.GetByID(item.ID); err == nil && p != nil {
			return p.Name
		}
		return ""
	}
	if s, err := uc.serviceRepo.GetByID(item.ID); err == nil && s != nil {
		return s.Name
	}
	return ""
}

func parseRange(fromStr, toStr string) (time.Time, time.Time, error) {
	from := time.Time{}
	to := time.Now()
	if fromStr != "" {
		t, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = t
	}
	if toStr != "" {
		t, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = t.Add(24*time.Hour - time.Nanosecond)
	}
	return from, to, nil
}

func toHeaders(sales []*entity.Sale) []dto.SaleResponse {
	out := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, dto.SaleResponse{
			ID:            s.ID,
			UserID:        s.UserID,
			AppointmentID: s.AppointmentID,
			Date:          s.Date,
			Subtotal:      s.Subtotal,
			Tax:           s.Tax,
			Total:         s.Total,
		})
	}
	return out
}

package checkout

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/casabella/casa-bella-api/internal/application/dto"
	"github.com/casabella/casa-bella-api/internal/domain"
	"github.com/casabella/casa-bella-api/internal/domain/entity"
	"github.com/casabella/casa-bella-api/internal/domain/pricing"
	"github.com/casabella/casa-bella-api/internal/domain/repository"
	"github.com/casabella/casa-bella-api/pkg/logger"
	"github.com/casabella/casa-bella-api/pkg/metrics"
)

// CheckoutUseCase convierte el carrito activo en una venta dentro de una
// transacción única. Es el núcleo del sistema: valida stock con bloqueo de
// fila, congela los precios del carrito en líneas de venta, registra el pago
// y descuenta inventario con su asiento en el libro.
type CheckoutUseCase struct {
	txRunner    TxRunner
	userRepo    repository.UserRepository
	serviceRepo repository.ServiceRepository
	notifRepo   repository.NotificationRepository
	metrics     *metrics.SalesMetrics
	log         *logger.Logger
	taxRate     decimal.Decimal
}

// NewCheckoutUseCase construye el caso de uso inyectando sus dependencias.
func NewCheckoutUseCase(
	txRunner TxRunner,
	userRepo repository.UserRepository,
	serviceRepo repository.ServiceRepository,
	notifRepo repository.NotificationRepository,
	m *metrics.SalesMetrics,
	log *logger.Logger,
	taxRate decimal.Decimal,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		txRunner:    txRunner,
		userRepo:    userRepo,
		serviceRepo: serviceRepo,
		notifRepo:   notifRepo,
		metrics:     m,
		log:         log,
		taxRate:     taxRate,
	}
}

// Checkout ejecuta la compra del carrito activo del usuario.
//
// Dentro de la transacción: bloquea el carrito, valida que tenga líneas,
// bloquea los productos en orden estable (id ascendente, para no armar ciclos
// de bloqueo entre checkouts concurrentes), verifica stock, calcula totales,
// persiste venta + líneas + pago + movimientos de salida, descuenta stock,
// vacía el carrito y lo marca completado. Cualquier error revierte todo.
//
// Errores distinguibles: ErrCartNotActive, ErrCartEmpty,
// *InsufficientStockError (envuelve ErrInsufficientStock),
// ErrInvalidPaymentMethod.
func (uc *CheckoutUseCase) Checkout(ctx context.Context, userID, paymentMethod string) (*dto.SaleResponse, error) {
	if !entity.ValidPaymentMethod(paymentMethod) {
		uc.metrics.Checkouts.WithLabelValues("metodo_invalido").Inc()
		return nil, domain.ErrInvalidPaymentMethod
	}

	var (
		sale     *entity.Sale
		payment  *entity.Payment
		resp     *dto.SaleResponse
		lowStock []*entity.Product
	)

	err := uc.txRunner.RunCheckout(ctx, func(
		cartRepo repository.CartRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		movRepo repository.InventoryMovementRepository,
	) error {
		cart, err := cartRepo.GetActiveForUpdate(userID)
		if err != nil {
			return err
		}
		if cart == nil {
			return domain.ErrCartNotActive
		}

		lines, err := cartRepo.ListLines(cart.ID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return domain.ErrCartEmpty
		}

		// Bloquear productos en orden estable y validar stock.
		qtyByProduct := make(map[string]int)
		for _, l := range lines {
			if l.ProductID != "" {
				qtyByProduct[l.ProductID] += l.Quantity
			}
		}
		productIDs := make([]string, 0, len(qtyByProduct))
		for id := range qtyByProduct {
			productIDs = append(productIDs, id)
		}
		sort.Strings(productIDs)

		products := make(map[string]*entity.Product, len(productIDs))
		for _, id := range productIDs {
			product, err := productRepo.GetForUpdate(id)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			if product.Stock < qtyByProduct[id] {
				return &domain.InsufficientStockError{
					ProductID:   product.ID,
					ProductName: product.Name,
					Available:   product.Stock,
					Requested:   qtyByProduct[id],
				}
			}
			products[id] = product
		}

		// Totales con los precios congelados del carrito.
		priceLines := make([]pricing.Line, 0, len(lines))
		for _, l := range lines {
			priceLines = append(priceLines, pricing.Line{Quantity: l.Quantity, UnitPrice: l.UnitPrice})
		}
		totals := pricing.Compute(priceLines, uc.taxRate)

		now := time.Now()
		sale = &entity.Sale{
			UserID:   userID,
			Date:     now,
			Subtotal: totals.Subtotal,
			Tax:      totals.Tax,
			Total:    totals.Total,
		}
		if err := saleRepo.Create(sale); err != nil {
			return err
		}

		saleLines := make([]*entity.SaleLine, 0, len(lines))
		for _, l := range lines {
			sl := &entity.SaleLine{
				SaleID:    sale.ID,
				ProductID: l.ProductID,
				ServiceID: l.ServiceID,
				Quantity:  l.Quantity,
				UnitPrice: l.UnitPrice,
			}
			if err := saleRepo.CreateLine(sl); err != nil {
				return err
			}
			saleLines = append(saleLines, sl)
		}

		payment = &entity.Payment{
			SaleID: sale.ID,
			Method: paymentMethod,
			Amount: totals.Total,
			Status: entity.PaymentCompletado,
			PaidAt: now,
		}
		if err := saleRepo.CreatePayment(payment); err != nil {
			return err
		}

		// Descuento de stock + asiento de salida por producto.
		for _, id := range productIDs {
			product := products[id]
			newStock := product.Stock - qtyByProduct[id]
			if err := productRepo.UpdateStock(id, newStock); err != nil {
				return err
			}
			if err := movRepo.Create(&entity.InventoryMovement{
				ProductID: id,
				Type:      entity.MovementSalida,
				Quantity:  qtyByProduct[id],
				Reason:    "venta " + sale.ID,
				CreatedAt: now,
				CreatedBy: userID,
			}); err != nil {
				return err
			}
			product.Stock = newStock
			if product.LowStock() {
				lowStock = append(lowStock, product)
			}
		}

		if err := cartRepo.DeleteLines(cart.ID); err != nil {
			return err
		}
		if err := cartRepo.SetStatus(cart.ID, entity.CartCompletado); err != nil {
			return err
		}

		services, err := uc.serviceNames(lines)
		if err != nil {
			return err
		}
		resp = toSaleResponse(sale, saleLines, payment, products, services)
		return nil
	})
	if err != nil {
		uc.metrics.Checkouts.WithLabelValues(checkoutResult(err)).Inc()
		return nil, err
	}

	// Post-commit: métricas y avisos de stock bajo a los administradores.
	uc.metrics.Checkouts.WithLabelValues("ok").Inc()
	uc.metrics.ObserveSale(sale.Total)
	uc.notifyLowStock(lowStock)

	return resp, nil
}

// checkoutResult etiqueta de métrica para un checkout fallido.
func checkoutResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return "stock_insuficiente"
	case errors.Is(err, domain.ErrCartEmpty):
		return "carrito_vacio"
	case errors.Is(err, domain.ErrCartNotActive):
		return "carrito_no_activo"
	default:
		return "error"
	}
}

// notifyLowStock avisa a cada admin por producto en o bajo su mínimo.
// Corre después del commit: un fallo aquí no afecta la venta, solo se loggea.
func (uc *CheckoutUseCase) notifyLowStock(products []*entity.Product) {
	if len(products) == 0 {
		return
	}
	admins, err := uc.userRepo.ListByRole(entity.RoleAdmin)
	if err != nil {
		uc.log.Warn().Err(err).Msg("checkout: no se pudieron listar admins para aviso de stock")
		return
	}
	now := time.Now()
	for _, p := range products {
		for _, admin := range admins {
			n := &entity.Notification{
				UserID:    admin.ID,
				Message:   "Stock bajo: " + p.Name,
				Type:      entity.NotifInventario,
				CreatedAt: now,
			}
			if err := uc.notifRepo.Create(n); err != nil {
				uc.log.Warn().Err(err).Str("product_id", p.ID).Msg("checkout: aviso de stock bajo falló")
			}
		}
	}
}

// serviceNames resuelve los nombres de los servicios del carrito para la
// respuesta. Solo lectura de catálogo, no necesita la transacción.
func (uc *CheckoutUseCase) serviceNames(lines []*entity.CartLine) (map[string]string, error) {
	names := make(map[string]string)
	for _, l := range lines {
		if l.ServiceID == "" {
			continue
		}
		if _, ok := names[l.ServiceID]; ok {
			continue
		}
		s, err := uc.serviceRepo.GetByID(l.ServiceID)
		if err != nil {
			return nil, err
		}
		if s != nil {
			names[l.ServiceID] = s.Name
		}
	}
	return names, nil
}

func toSaleResponse(sale *entity.Sale, lines []*entity.SaleLine, payment *entity.Payment, products map[string]*entity.Product, services map[string]string) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:            sale.ID,
		UserID:        sale.UserID,
		AppointmentID: sale.AppointmentID,
		Date:          sale.Date,
		Subtotal:      sale.Subtotal,
		Tax:           sale.Tax,
		Total:         sale.Total,
		Lines:         make([]dto.SaleLineResponse, 0, len(lines)),
		Payment: &dto.PaymentResponse{
			ID:     payment.ID,
			Method: payment.Method,
			Amount: payment.Amount,
			Status: payment.Status,
			PaidAt: payment.PaidAt,
		},
	}
	for _, l := range lines {
		item := l.Item()
		name := ""
		if l.ProductID != "" {
			if p, ok := products[l.ProductID]; ok {
				name = p.Name
			}
		} else {
			name = services[l.ServiceID]
		}
		resp.Lines = append(resp.Lines, dto.SaleLineResponse{
			ID:        l.ID,
			ItemType:  item.Kind,
			ItemID:    item.ID,
			ItemName:  name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}
	return resp
}

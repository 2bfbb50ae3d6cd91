package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/casabella/casa-bella-api/internal/application/dto"
	"github.com/casabella/casa-bella-api/internal/application/sales"
)

// SaleHandler consultas de ventas y descarga de la nota en PDF (protegido).
type SaleHandler struct {
	uc    *sales.SalesUseCase
	pdfUC *sales.PDFUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.SalesUseCase, pdfUC *sales.PDFUseCase) *SaleHandler {
	return &SaleHandler{uc: uc, pdfUC: pdfUC}
}

// GetByID godoc
// @Summary      Obtener venta con líneas y pago (dueño o admin)
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetSale(c.Context(), id, GetUserID(c), GetRole(c))
	if err != nil {
		return failWith(c, err)
	}
	return c.JSON(out)
}

// ListMine godoc
// @Summary      Mis compras
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SaleResponse
// @Router       /api/sales/mine [get]
func (h *SaleHandler) ListMine(c *fiber.Ctx) error {
	out, err := h.uc.ListMine(c.Context(), GetUserID(c))
	if err != nil {
		return failWith(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listado de ventas por rango de fechas (solo admin)
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to    query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200   {array}  dto.SaleResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var in dto.SaleListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	out, err := h.uc.List(c.Context(), in)
	if err != nil {
		return failWith(c, err)
	}
	return c.JSON(out)
}

// DownloadPDF godoc
// @Summary      Descargar la nota de venta en PDF (dueño o admin)
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/pdf [get]
func (h *SaleHandler) DownloadPDF(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	pdfBytes, filename, err := h.pdfUC.DownloadSalePDF(c.Context(), id, GetUserID(c), GetRole(c))
	if err != nil {
		return failWith(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

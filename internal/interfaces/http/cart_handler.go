package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/casabella/casa-bella-api/internal/application/cart"
	"github.com/casabella/casa-bella-api/internal/application/dto"
	"github.com/casabella/casa-bella-api/internal/domain/entity"
)

// CartHandler maneja el carrito del usuario del token (protegido).
type CartHandler struct {
	uc *cart.CartUseCase
}

// NewCartHandler construye el handler.
func NewCartHandler(uc *cart.CartUseCase) *CartHandler {
	return &CartHandler{uc: uc}
}

// Get godoc
// @Summary      Carrito activo con totales previsualizados
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetActive(c.Context(), GetUserID(c))
	if err != nil {
		return failWith(c, err)
	}
	return c.JSON(out)
}

// AddItem godoc
// @Summary      Agregar producto o servicio al carrito
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddCartItemRequest  true  "Ítem y cantidad"
// @Success      200   {object}  dto.CartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cart/items [post]
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item := entity.ItemRef{Kind: in.ItemType, ID: in.ItemID}
	out, err := h.uc.AddItem(c.Context(), GetUserID(c), item, in.Quantity)
	if err != nil {
		return failWith(c, err)
	}
	return c.JSON(out)
}

// UpdateLine godoc
// @Summary      Ajustar cantidad de una línea (delta)
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        lineId  path  string  true  "ID de la línea"
// @Param        delta   query int     true  "Incremento (positivo o negativo)"
// @Success      200     {object}  dto.CartResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/cart/items/{lineId} [put]
func (h *CartHandler) UpdateLine(c *fiber.Ctx) error {
	lineID := c.Params("lineId")
	if lineID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "lineId es requerido"})
	}
	delta := c.QueryInt("delta", 0)
	if delta == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "delta debe ser distinto de cero"})
	}
	out, err := h.uc.SetQuantity(c.Context(), GetUserID(c), lineID, delta)
	if err != nil {
		return failWith(c, err)
	}
	return c.JSON(out)
}

// RemoveLine godoc
// @Summary      Quitar una línea del carrito
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Param        lineId  path  string  true  "ID de la línea"
// @Success      200     {object}  dto.CartResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/cart/items/{lineId} [delete]
func (h *CartHandler) RemoveLine(c *fiber.Ctx) error {
	lineID := c.Params("lineId")
	if lineID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "lineId es requerido"})
	}
	out, err := h.uc.RemoveLine(c.Context(), GetUserID(c), lineID)
	if err != nil {
		return failWith(c, err)
	}
	return c.JSON(out)
}

// Abandon godoc
// @Summary      Marcar un carrito como abandonado (solo admin, mantenimiento)
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del carrito"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/carts/{id}/abandon [post]
func (h *CartHandler) Abandon(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Abandon(c.Context(), id); err != nil {
		return failWith(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/casabella/casa-bella-api/internal/application/dto"
	"github.com/casabella/casa-bella-api/internal/application/usecase"
	"github.com/casabella/casa-bella-api/internal/domain/entity"
)

// ReviewHandler reseñas de productos y servicios.
type ReviewHandler struct {
	uc *usecase.ReviewUseCase
}

// NewReviewHandler construye el handler.
func NewReviewHandler(uc *usecase.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{uc: uc}
}

// Create godoc
// @Summary      Crear reseña (1 a 5 estrellas)
// @Tags         reviews
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReviewRequest  true  "Reseña"
// @Success      201   {object}  dto.ReviewResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reviews [post]
func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReviewRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item := entity.ItemRef{Kind: in.ItemType, ID: in.ItemID}
	out, err := h.uc.Create(c.Context(), GetUserID(c), item, in.Rating, in.Comment)
	if err != nil {
		return failWith(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Summary godoc
// @Summary      Reseñas de un ítem con promedio
// @Tags         reviews
// @Produce      json
// @Param        item_type  query  string  true  "producto | servicio"
// @Param        item_id    query  string  true  "ID del ítem"
// @Success      200  {object}  dto.ReviewSummaryResponse
// @Router       /api/reviews [get]
func (h *ReviewHandler) Summary(c *fiber.Ctx) error {
	item := entity.ItemRef{Kind: c.Query("item_type"), ID: c.Query("item_id")}
	out, err := h.uc.Summary(c.Context(), item)
	if err != nil {
		return failWith(c, err)
	}
	return c.JSON(out)
}

// FavoriteHandler guardados del usuario.
type FavoriteHandler struct {
	uc *usecase.FavoriteUseCase
}

// NewFavoriteHandler construye el handler.
func NewFavoriteHandler(uc *usecase.FavoriteUseCase) *FavoriteHandler {
	return &FavoriteHandler{uc: uc}
}

// Save godoc
// @Summary      Guardar un ítem
// @Tags         favorites
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ItemRefRequest  true  "Ítem"
// @Success      201   {object}  dto.FavoriteResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/favorites [post]
func (h *FavoriteHandler) Save(c *fiber.Ctx) error {
	var in dto.ItemRefRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item := entity.ItemRef{Kind: in.ItemType, ID: in.ItemID}
	out, err := h.uc.Save(c.Context(), GetUserID(c), item)
	if err != nil {
		return failWith(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Remove godoc
// @Summary      Quitar un ítem guardado
// @Tags         favorites
// @Security     Bearer
// @Param        item_type  query  string  true  "producto | servicio"
// @Param        item_id    query  string  true  "ID del ítem"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/favorites [delete]
func (h *FavoriteHandler) Remove(c *fiber.Ctx) error {
	item := entity.ItemRef{Kind: c.Query("item_type"), ID: c.Query("item_id")}
	if err := h.uc.Remove(c.Context(), GetUserID(c), item); err != nil {
		return failWith(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListMine godoc
// @Summary      Mis ítems guardados
// @Tags         favorites
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.FavoriteResponse
// @Router       /api/favorites [get]
func (h *FavoriteHandler) ListMine(c *fiber.Ctx) error {
	out, err := h.uc.ListMine(c.Context(), GetUserID(c))
	if err != nil {
		return failWith(c, err)
	}
	return c.JSON(out)
}

// NotificationHandler bandeja de notificaciones del usuario.
type NotificationHandler struct {
	uc *usecase.NotificationUseCase
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(uc *usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

// ListMine godoc
// @Summary      Mis notificaciones (no leídas primero)
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.NotificationResponse
// @Router       /api/notifications [get]
func (h *NotificationHandler) ListMine(c *fiber.Ctx) error {
	out, err := h.uc.ListMine(c.Context(), GetUserID(c))
	if err != nil {
		return failWith(c, err)
	}
	return c.JSON(out)
}

// MarkRead godoc
// @Summary      Marcar una notificación como leída
// @Tags         notifications
// @Security     Bearer
// @Param        id  path  string  true  "ID de la notificación"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.uc.MarkRead(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		return failWith(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/casabella/casa-bella-api/internal/application/appointment"
	"github.com/casabella/casa-bella-api/internal/application/dto"
)

// AppointmentHandler ciclo de vida de citas (protegido).
type AppointmentHandler struct {
	uc *appointment.AppointmentUseCase
}

// NewAppointmentHandler construye el handler.
func NewAppointmentHandler(uc *appointment.AppointmentUseCase) *AppointmentHandler {
	return &AppointmentHandler{uc: uc}
}

// Book godoc
// @Summary      Reservar una cita
// @Tags         appointments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BookAppointmentRequest  true  "Servicio y fecha"
// @Success      201   {object}  dto.AppointmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/appointments [post]
func (h *AppointmentHandler) Book(c *fiber.Ctx) error {
	var in dto.BookAppointmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Book(c.Context(), GetUserID(c), in)
	if err != nil {
		return failWith(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener una cita (dueño, asignado o admin)
// @Tags         appointments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la cita"
// @Success      200  {object}  dto.AppointmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/appointments/{id} [get]
func (h *AppointmentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"), GetUserID(c), GetRole(c))
	if err != nil {
		return failWith(c, err)
	}
	return c.JSON(out)
}

// ListMine godoc
// @Summary      Mis citas (cliente: propias, empleado: asignadas)
// @Tags         appointments
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AppointmentResponse
// @Router       /api/appointments [get]
func (h *AppointmentHandler) ListMine(c *fiber.Ctx) error {
	out, err := h.uc.ListMine(c.Context(), GetUserID(c), GetRole(c))
	if err != nil {
		return failWith(c, err)
	}
	return c.JSON(out)
}

// ListByStatus godoc
// @Summary      Citas por estado (solo admin)
// @Tags         appointments
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  true  "pendiente | confirmada | completada | cancelada"
// @Success      200     {array}  dto.AppointmentResponse
// @Router       /api/appointments/all [get]
func (h *AppointmentHandler) ListByStatus(c *fiber.Ctx) error {
	out, err := h.uc.ListByStatus(c.Context(), c.Query("status"))
	if err != nil {
		return failWith(c, err)
	}
	return c.JSON(out)
}

// Assign godoc
// @Summary      Asignar empleado a cita (solo admin)
// @Tags         appointments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la cita"
// @Param        body  body  dto.AssignAppointmentRequest  true  "Empleado"
// @Success      200   {object}  dto.AppointmentResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/appointments/{id}/assign [put]
func (h *AppointmentHandler) Assign(c *fiber.Ctx) error {
	var in dto.AssignAppointmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Assign(c.Context(), c.Params("id"), in.EmployeeID)
	if err != nil {
		return failWith(c, err)
	}
	return c.JSON(out)
}

// Confirm godoc
// @Summary      Confirmar cita (solo el empleado asignado)
// @Tags         appointments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la cita"
// @Success      200  {object}  dto.AppointmentResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/appointments/{id}/confirm [post]
func (h *AppointmentHandler) Confirm(c *fiber.Ctx) error {
	out, err := h.uc.Confirm(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return failWith(c, err)
	}
	return c.JSON(out)
}

// Complete godoc
// @Summary      Completar cita y generar su venta (solo el empleado asignado)
// @Tags         appointments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la cita"
// @Param        body  body  dto.CompleteAppointmentRequest  true  "Método de pago"
// @Success      200   {object}  dto.AppointmentResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/appointments/{id}/complete [post]
func (h *AppointmentHandler) Complete(c *fiber.Ctx) error {
	var in dto.CompleteAppointmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Complete(c.Context(), c.Params("id"), GetUserID(c), in.PaymentMethod)
	if err != nil {
		return failWith(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar cita (cliente dueño, empleado asignado o admin)
// @Tags         appointments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la cita"
// @Success      200  {object}  dto.AppointmentResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/appointments/{id}/cancel [post]
func (h *AppointmentHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.Cancel(c.Context(), c.Params("id"), GetUserID(c), GetRole(c))
	if err != nil {
		return failWith(c, err)
	}
	return c.JSON(out)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/RosaQuijije/FacturacionWeb/internal/application/billing"
	"github.com/RosaQuijije/FacturacionWeb/internal/application/dto"
	"github.com/RosaQuijije/FacturacionWeb/internal/application/usecase"
)

// ServiceHandler servicios recurrentes y su facturación mensual (protegido).
type ServiceHandler struct {
	uc        *usecase.ServiceUseCase
	recurring *billing.RecurringUseCase
}

// NewServiceHandler construye el handler.
func NewServiceHandler(uc *usecase.ServiceUseCase, recurring *billing.RecurringUseCase) *ServiceHandler {
	return &ServiceHandler{uc: uc, recurring: recurring}
}

// Create godoc
// @Summary      Contratar servicio recurrente
// @Tags         services
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ServiceRequest  true  "Cliente, servicio, período y descuento"
// @Success      201   {object}  dto.ServiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/services [post]
func (h *ServiceHandler) Create(c *fiber.Ctx) error {
	var in dto.ServiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar servicios recurrentes
// @Tags         services
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ServiceResponse
// @Router       /api/services [get]
func (h *ServiceHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Billable godoc
// @Summary      Servicios facturables hoy
// @Tags         services
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ServiceResponse
// @Router       /api/services/billable [get]
func (h *ServiceHandler) Billable(c *fiber.Ctx) error {
	out, err := h.recurring.Billable(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener servicio recurrente
// @Tags         services
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del servicio"
// @Success      200  {object}  dto.ServiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/services/{id} [get]
func (h *ServiceHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c)
	}
	out, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar servicio recurrente
// @Tags         services
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del servicio"
// @Param        body  body  dto.ServiceRequest  true  "Cliente, servicio, período y descuento"
// @Success      200   {object}  dto.ServiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/services/{id} [put]
func (h *ServiceHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c)
	}
	var in dto.ServiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar servicio recurrente
// @Tags         services
// @Security     Bearer
// @Param        id   path  int  true  "ID del servicio"
// @Success      204
// @Router       /api/services/{id} [delete]
func (h *ServiceHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c)
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Bill godoc
// @Summary      Facturar un servicio en el mes en curso
// @Tags         services
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del servicio"
// @Success      201  {object}  dto.BillResult
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "fuera de rango, ya facturado o inactivo"
// @Router       /api/services/{id}/invoice [post]
func (h *ServiceHandler) Bill(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c)
	}
	res, err := h.recurring.BillService(c.Context(), id)
	if err != nil {
		if res.InvoiceID != 0 {
			// factura emitida, pero el servicio quedó sin marcar
			logFailure(c, err)
			res.Error = billing.ResultMessage(res, err)
			return c.Status(fiber.StatusBadGateway).JSON(res)
		}
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// BillDue godoc
// @Summary      Facturar todos los servicios pendientes del mes
// @Tags         services
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.BillDueResponse
// @Router       /api/services/bill-due [post]
func (h *ServiceHandler) BillDue(c *fiber.Ctx) error {
	out, err := h.recurring.BillDue(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/RosaQuijije/FacturacionWeb/internal/application/billing"
	"github.com/RosaQuijije/FacturacionWeb/internal/application/dto"
)

// DraftHandler edición de facturas antes de emitirlas. Cada usuario ve solo sus borradores.
type DraftHandler struct {
	uc *billing.DraftUseCase
}

// NewDraftHandler construye el handler.
func NewDraftHandler(uc *billing.DraftUseCase) *DraftHandler {
	return &DraftHandler{uc: uc}
}

// Create godoc
// @Summary      Crear borrador de factura
// @Description  Forma de pago SUSF y fecha de hoy si no se indican.
// @Tags         drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DraftHeaderRequest  false  "Cabecera inicial"
// @Success      201  {object}  dto.DraftResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/drafts [post]
func (h *DraftHandler) Create(c *fiber.Ctx) error {
	var in dto.DraftHeaderRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.uc.Create(c.Context(), GetUsername(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar borradores del usuario
// @Tags         drafts
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.DraftResponse
// @Router       /api/drafts [get]
func (h *DraftHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), GetUsername(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener borrador
// @Tags         drafts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del borrador"
// @Success      200  {object}  dto.DraftResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drafts/{id} [get]
func (h *DraftHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetUsername(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Descartar borrador
// @Tags         drafts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del borrador"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drafts/{id} [delete]
func (h *DraftHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetUsername(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateHeader godoc
// @Summary      Actualizar cabecera del borrador
// @Tags         drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id   path  string  true  "ID del borrador"
// @Param        body  body  dto.DraftHeaderRequest  true  "Campos a cambiar"
// @Success      200  {object}  dto.DraftResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drafts/{id} [put]
func (h *DraftHandler) UpdateHeader(c *fiber.Ctx) error {
	var in dto.DraftHeaderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateHeader(c.Context(), GetUsername(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddLine godoc
// @Summary      Agregar línea
// @Tags         drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id   path  string  true  "ID del borrador"
// @Param        body  body  dto.DraftLineRequest  false  "Ítem, cantidad y descuento"
// @Success      200  {object}  dto.DraftResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drafts/{id}/lines [post]
func (h *DraftHandler) AddLine(c *fiber.Ctx) error {
	var in dto.DraftLineRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.uc.AddLine(c.Context(), GetUsername(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateLine godoc
// @Summary      Actualizar línea
// @Tags         drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id   path  string  true  "ID del borrador"
// @Param        idx  path  int     true  "Posición de la línea (desde 0)"
// @Param        body  body  dto.DraftLineRequest  true  "Ítem, cantidad y descuento"
// @Success      200  {object}  dto.DraftResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drafts/{id}/lines/{idx} [put]
func (h *DraftHandler) UpdateLine(c *fiber.Ctx) error {
	idx, err := c.ParamsInt("idx")
	if err != nil {
		return badID(c)
	}
	var in dto.DraftLineRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateLine(c.Context(), GetUsername(c), c.Params("id"), idx, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RemoveLine godoc
// @Summary      Quitar línea
// @Tags         drafts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del borrador"
// @Param        idx  path  int     true  "Posición de la línea (desde 0)"
// @Success      200  {object}  dto.DraftResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drafts/{id}/lines/{idx} [delete]
func (h *DraftHandler) RemoveLine(c *fiber.Ctx) error {
	idx, err := c.ParamsInt("idx")
	if err != nil {
		return badID(c)
	}
	out, err := h.uc.RemoveLine(c.Context(), GetUsername(c), c.Params("id"), idx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Refresh godoc
// @Summary      Recalcular con precios vigentes
// @Description  Vuelve a tomar precio e IVA vigentes del catálogo.
// @Tags         drafts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del borrador"
// @Success      200  {object}  dto.DraftResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drafts/{id}/refresh [post]
func (h *DraftHandler) Refresh(c *fiber.Ctx) error {
	out, err := h.uc.Refresh(c.Context(), GetUsername(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Submit godoc
// @Summary      Emitir factura
// @Description  Emite la factura con la fecha del borrador y lo descarta.
// @Tags         drafts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del borrador"
// @Success      201  {object}  dto.InvoiceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/drafts/{id}/submit [post]
func (h *DraftHandler) Submit(c *fiber.Ctx) error {
	out, err := h.uc.Submit(c.Context(), GetUsername(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

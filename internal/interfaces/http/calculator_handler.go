package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/RosaQuijije/FacturacionWeb/internal/application/billing"
	"github.com/RosaQuijije/FacturacionWeb/internal/application/dto"
)

// CalculateLine godoc
// @Summary      Calcular una línea de factura
// @Description  Descuento, subtotal, IVA y total de una línea sin consultar el catálogo. Montos sin redondear.
// @Tags         calculator
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LineCalcRequest  true  "Precio, IVA, cantidad y descuento"
// @Success      200   {object}  dto.InvoiceLineResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/calculator/line [post]
func CalculateLine(c *fiber.Ctx) error {
	var in dto.LineCalcRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := billing.CalculateLine(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

package billing

import (
	"strings"

	"github.com/RosaQuijije/FacturacionWeb/internal/application/dto"
	calc "github.com/RosaQuijije/FacturacionWeb/internal/domain/billing"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/entity"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/validation"
)

// CalculateLine calcula una línea suelta con precio e IVA dados, sin consultar el catálogo.
// Kind S fuerza cantidad 1; cualquier otro valor se trata como producto.
func CalculateLine(in dto.LineCalcRequest) (dto.InvoiceLineResponse, error) {
	if in.UnitPrice.IsNegative() {
		return dto.InvoiceLineResponse{}, validation.Fail("precio", "El precio no puede ser negativo")
	}
	if !validation.AllowedTax(in.TaxPercent) {
		return dto.InvoiceLineResponse{}, validation.Fail("impuesto", "El impuesto debe ser 0 o 15")
	}
	kind := entity.CatalogKindProduct
	if strings.EqualFold(strings.TrimSpace(in.Kind), entity.CatalogKindService) {
		kind = entity.CatalogKindService
	}
	line, err := calc.RecomputeLine(entity.InvoiceLine{
		Quantity:        in.Quantity,
		DiscountPercent: in.DiscountPercent,
	}, &entity.CatalogEntry{UnitPrice: in.UnitPrice, TaxPercent: in.TaxPercent, Kind: kind, Status: entity.StatusActive})
	if err != nil {
		return dto.InvoiceLineResponse{}, err
	}
	return dto.FromLine(line, ""), nil
}

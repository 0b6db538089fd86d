package validation

import (
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var allowedTaxPercents = []decimal.Decimal{decimal.Zero, decimal.NewFromInt(15)}

// AllowedTax indica si la tarifa de IVA es una de las admitidas por el catálogo (0 o 15).
func AllowedTax(p decimal.Decimal) bool {
	for _, t := range allowedTaxPercents {
		if p.Equal(t) {
			return true
		}
	}
	return false
}

// ValidPercent indica si p está en [0, 100].
func ValidPercent(p decimal.Decimal) bool {
	return !p.IsNegative() && p.LessThanOrEqual(decimal.NewFromInt(100))
}

// ValidateCatalogEntry valida el formulario de catálogo. Los servicios deben tener cantidad 1.
func ValidateCatalogEntry(c *entity.CatalogEntry) error {
	if c == nil {
		return Fail("", "catálogo requerido")
	}
	if blank(c.Name) {
		return Fail("nombre", "El nombre es obligatorio")
	}
	if !c.UnitPrice.IsPositive() {
		return Fail("precio", "El precio debe ser un número válido mayor que 0")
	}
	if !AllowedTax(c.TaxPercent) {
		return Fail("impuesto", "El impuesto debe ser 0 o 15")
	}
	switch c.Kind {
	case entity.CatalogKindService:
		if c.Quantity != 1 {
			return Fail("cantidad", "Para servicios, la cantidad debe ser 1")
		}
	case entity.CatalogKindProduct:
		if c.Quantity < 0 {
			return Fail("cantidad", "Para productos, la cantidad debe ser igual o mayor a 0")
		}
	default:
		return Fail("tipo", "tipo inválido (P o S)")
	}
	switch c.Status {
	case "":
		c.Status = entity.StatusActive
	case entity.StatusActive, entity.StatusInactive:
	default:
		return Fail("estado", "estado inválido (A o I)")
	}
	return nil
}

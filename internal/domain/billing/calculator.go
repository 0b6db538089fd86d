// Package billing cálculo de líneas y totales de factura (servicio de dominio, sin estado).
//
// Fórmulas por línea:
//
//	Descuento = PrecioUnit * (%Desc / 100) * Cantidad
//	Subtotal  = PrecioUnit * Cantidad - Descuento
//	IVA       = Subtotal * (%IVA / 100)
//	Total     = Subtotal + IVA
//
// Los porcentajes se aplican con Shift(-2), así que la aritmética es exacta y no se redondea
// hasta mostrar los montos.
package billing

import (
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/entity"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/validation"
	"github.com/shopspring/decimal"
)

// Totals totales de una factura: suma de cada campo de sus líneas.
type Totals struct {
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
}

// Rounded totales a 2 decimales para mostrar.
func (t Totals) Rounded() Totals {
	return Totals{
		Subtotal:       Round2(t.Subtotal),
		TaxAmount:      Round2(t.TaxAmount),
		DiscountAmount: Round2(t.DiscountAmount),
		Total:          Round2(t.Total),
	}
}

// Round2 redondeo para presentación.
func Round2(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

func percentOf(amount, percent decimal.Decimal) decimal.Decimal {
	return amount.Mul(percent).Shift(-2)
}

// RecomputeLine recalcula la línea copiando precio e IVA de entry.
//
// Un servicio siempre se factura con cantidad 1, sin importar lo que envíe el caller.
// Un descuento fuera de [0, 100] es un error de validación (no se recorta).
// Si entry es nil (catálogo desconocido o eliminado) la línea queda en cero y no se
// devuelve error: una referencia vieja nunca rompe la edición del borrador.
func RecomputeLine(line entity.InvoiceLine, entry *entity.CatalogEntry) (entity.InvoiceLine, error) {
	if !validation.ValidPercent(line.DiscountPercent) {
		return line, validation.Fail("porcentajeDescuento", "Porcentaje de descuento debe ser entre 0 y 100")
	}
	out := entity.InvoiceLine{
		ID:              line.ID,
		CatalogID:       line.CatalogID,
		Quantity:        line.Quantity,
		DiscountPercent: line.DiscountPercent,
	}
	if entry == nil {
		return out, nil
	}
	if entry.IsService() {
		out.Quantity = 1
	}
	if out.Quantity < 1 {
		return line, validation.Fail("cantidad", "La cantidad debe ser un entero mayor que 0")
	}

	qty := decimal.NewFromInt(int64(out.Quantity))
	out.UnitPrice = entry.UnitPrice
	out.TaxPercent = entry.TaxPercent
	gross := out.UnitPrice.Mul(qty)
	out.DiscountAmount = percentOf(gross, out.DiscountPercent)
	out.Subtotal = gross.Sub(out.DiscountAmount)
	out.TaxAmount = percentOf(out.Subtotal, out.TaxPercent)
	out.LineTotal = out.Subtotal.Add(out.TaxAmount)
	return out, nil
}

// AggregateTotals suma subtotal, IVA, descuento y total de todas las líneas.
// Sin líneas devuelve todo en cero.
func AggregateTotals(lines []entity.InvoiceLine) Totals {
	t := Totals{
		Subtotal:       decimal.Zero,
		TaxAmount:      decimal.Zero,
		DiscountAmount: decimal.Zero,
		Total:          decimal.Zero,
	}
	for _, l := range lines {
		t.Subtotal = t.Subtotal.Add(l.Subtotal)
		t.TaxAmount = t.TaxAmount.Add(l.TaxAmount)
		t.DiscountAmount = t.DiscountAmount.Add(l.DiscountAmount)
		t.Total = t.Total.Add(l.LineTotal)
	}
	return t
}

// CatalogLookup resuelve un ítem del catálogo por ID; nil si no existe.
type CatalogLookup func(id int64) *entity.CatalogEntry

// RecomputeInvoice recalcula todas las líneas con el catálogo dado y devuelve los totales.
// Se detiene en la primera línea inválida y en ese caso inv queda sin cambios.
func RecomputeInvoice(inv *entity.Invoice, lookup CatalogLookup) (Totals, error) {
	lines := make([]entity.InvoiceLine, len(inv.Lines))
	for i := range inv.Lines {
		line, err := RecomputeLine(inv.Lines[i], lookup(inv.Lines[i].CatalogID))
		if err != nil {
			if vErr, ok := validation.AsError(err); ok {
				vErr.Field = lineField(i, vErr.Field)
			}
			return Totals{}, err
		}
		lines[i] = line
	}
	copy(inv.Lines, lines)
	return AggregateTotals(inv.Lines), nil
}

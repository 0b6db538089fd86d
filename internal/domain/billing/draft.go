package billing

import (
	"fmt"

	"github.com/RosaQuijije/FacturacionWeb/internal/domain/entity"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/validation"
)

// ValidateInvoiceDraft revisa un borrador antes de enviarlo y reporta el primer fallo:
//  1. cliente asignado (ID distinto de cero)
//  2. al menos una línea
//  3. por línea: descuento en [0, 100] e IVA admitido (0 o 15)
//  4. forma de pago conocida
func ValidateInvoiceDraft(inv *entity.Invoice) error {
	if inv == nil || inv.ClientID <= 0 {
		return validation.Fail("idCliente", "Seleccione un cliente")
	}
	if len(inv.Lines) == 0 {
		return validation.Fail("detalles", "Agregue al menos una línea")
	}
	for i, l := range inv.Lines {
		if !validation.ValidPercent(l.DiscountPercent) {
			return validation.Fail(lineField(i, "porcentajeDescuento"), "Porcentaje de descuento debe ser entre 0 y 100")
		}
		if !validation.AllowedTax(l.TaxPercent) {
			return validation.Fail(lineField(i, "porcentajeIva"), "El IVA debe ser 0 o 15")
		}
	}
	if !ValidPaymentMethod(inv.PaymentMethod) {
		return validation.Fail("formaPago", "forma de pago inválida")
	}
	return nil
}

// ValidPaymentMethod indica si code es una forma de pago conocida.
func ValidPaymentMethod(code string) bool {
	for _, m := range entity.PaymentMethods {
		if m == code {
			return true
		}
	}
	return false
}

func lineField(i int, field string) string {
	if field == "" {
		return fmt.Sprintf("detalles[%d]", i)
	}
	return fmt.Sprintf("detalles[%d].%s", i, field)
}

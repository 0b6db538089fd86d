package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la factura. Anular es reenviar la factura completa con estado I.
const (
	InvoiceStatusActive = "A"
	InvoiceStatusVoided = "I"
)

// Formas de pago.
const (
	PaymentNoFinancialSystem    = "SUSF" // sin utilización del sistema financiero
	PaymentCreditCard           = "TC"   // tarjeta de crédito
	PaymentOtherFinancialSystem = "OUSF" // otros con utilización del sistema financiero
)

// PaymentMethods formas de pago válidas, en el orden en que se ofrecen.
var PaymentMethods = []string{PaymentNoFinancialSystem, PaymentCreditCard, PaymentOtherFinancialSystem}

// PaymentMethodLabel texto legible de la forma de pago.
func PaymentMethodLabel(code string) string {
	switch code {
	case PaymentNoFinancialSystem:
		return "SIN UTILIZACIÓN DEL SISTEMA FINANCIERO"
	case PaymentCreditCard:
		return "TARJETA DE CRÉDITO"
	case PaymentOtherFinancialSystem:
		return "OTROS CON UTILIZACIÓN DEL SISTEMA FINANCIERO"
	default:
		return code
	}
}

// Invoice cabecera de factura con sus líneas en orden. El ID lo asigna el backend.
type Invoice struct {
	ID            int64
	ClientID      int64
	Date          time.Time
	Status        string
	PaymentMethod string
	Comment       string
	Lines         []InvoiceLine
}

// IsVoided indica si la factura fue anulada.
func (i *Invoice) IsVoided() bool {
	return i != nil && i.Status == InvoiceStatusVoided
}

// InvoiceLine línea de detalle. UnitPrice y TaxPercent son una copia del catálogo
// tomada al crear o editar la línea; no se vuelven a consultar después.
type InvoiceLine struct {
	ID              int64 // idDetalle del backend; 0 en borradores
	CatalogID       int64
	Quantity        int
	DiscountPercent decimal.Decimal

	UnitPrice      decimal.Decimal
	TaxPercent     decimal.Decimal
	DiscountAmount decimal.Decimal
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	LineTotal      decimal.Decimal
}

package dto

import "github.com/shopspring/decimal"

// Mensajes fijos para fallos que no deben exponer detalles internos ni del backend.
const (
	MsgBackendUnavailable = "El servicio de facturación no está disponible. Intente nuevamente más tarde."
	MsgInternal           = "Ocurrió un error inesperado. Intente nuevamente."
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"` // campo del formulario que falló la validación
}

// TotalsResponse totales de factura o borrador redondeados a 2 decimales.
type TotalsResponse struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Total          decimal.Decimal `json:"total"`
}

package dto

import "github.com/shopspring/decimal"

// InvoiceLineResponse línea de detalle en respuestas (montos sin redondear).
type InvoiceLineResponse struct {
	CatalogID       int64           `json:"catalog_id"`
	CatalogName     string          `json:"catalog_name,omitempty"`
	Quantity        int             `json:"quantity"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	TaxPercent      decimal.Decimal `json:"tax_percent"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	LineTotal       decimal.Decimal `json:"line_total"`
}

// InvoiceResponse factura con detalle para GET /api/invoices/:id.
type InvoiceResponse struct {
	ID                 int64                 `json:"id"`
	ClientID           int64                 `json:"client_id"`
	ClientName         string                `json:"client_name,omitempty"`
	Date               string                `json:"date"`
	Status             string                `json:"status"`
	PaymentMethod      string                `json:"payment_method"`
	PaymentMethodLabel string                `json:"payment_method_label"`
	Comment            string                `json:"comment"`
	Lines              []InvoiceLineResponse `json:"lines"`
	Totals             TotalsResponse        `json:"totals"`
}

// LineCalcRequest body para POST /api/calculator/line: calcula una línea sin catálogo.
type LineCalcRequest struct {
	UnitPrice       decimal.Decimal `json:"unit_price"`
	TaxPercent      decimal.Decimal `json:"tax_percent"`
	Quantity        int             `json:"quantity"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Kind            string          `json:"kind,omitempty"` // S fuerza cantidad 1
}

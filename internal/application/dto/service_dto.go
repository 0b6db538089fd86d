package dto

import "github.com/shopspring/decimal"

// ServiceRequest body para POST/PUT /api/services. Los campos opcionales permiten
// distinguir "no enviado" de cero. Fechas en formato YYYY-MM-DD.
type ServiceRequest struct {
	ClientID        *int64           `json:"client_id"`
	CatalogID       *int64           `json:"catalog_id"`
	From            *string          `json:"from"`
	To              *string          `json:"to"`
	Status          string           `json:"status,omitempty"`
	DiscountPercent *decimal.Decimal `json:"discount_percent"`
}

// ServiceResponse servicio recurrente en respuestas.
type ServiceResponse struct {
	ID              int64           `json:"id"`
	ClientID        int64           `json:"client_id"`
	CatalogID       int64           `json:"catalog_id"`
	Date            string          `json:"date,omitempty"`
	From            string          `json:"from"`
	To              string          `json:"to"`
	Status          string          `json:"status"`
	TaxPercent      decimal.Decimal `json:"tax_percent"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Total           decimal.Decimal `json:"total"`
	LastBilledAt    string          `json:"last_billed_at,omitempty"`
	Billable        bool            `json:"billable"`
}

// BillResult resultado de facturar un servicio.
type BillResult struct {
	ServiceID int64  `json:"service_id"`
	InvoiceID int64  `json:"invoice_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// BillDueResponse resultado de POST /api/services/bill-due.
type BillDueResponse struct {
	Billed  int          `json:"billed"`
	Failed  int          `json:"failed"`
	Results []BillResult `json:"results"`
}

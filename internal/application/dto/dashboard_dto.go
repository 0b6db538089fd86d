package dto

import "github.com/shopspring/decimal"

// ClientTotalDTO suma de líneas facturadas a un cliente (facturas activas).
type ClientTotalDTO struct {
	ClientID     int64           `json:"client_id"`
	ClientName   string          `json:"client_name"`
	InvoiceCount int             `json:"invoice_count"`
	Total        decimal.Decimal `json:"total"`
}

// DashboardSummaryDTO resumen de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	MonthLabel      string            `json:"month_label"`
	InvoiceCount    int               `json:"invoice_count"`
	VoidedCount     int               `json:"voided_count"`
	InvoicedTotal   decimal.Decimal   `json:"invoiced_total"`
	ClientTotals    []ClientTotalDTO  `json:"client_totals"`
	BilledServices  []ServiceResponse `json:"billed_services"`
	PendingServices []ServiceResponse `json:"pending_services"`
}

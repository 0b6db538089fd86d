package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DraftHeaderRequest cabecera de borrador. En PUT solo se aplican los campos enviados.
// Date en formato YYYY-MM-DD; vacío = hoy.
type DraftHeaderRequest struct {
	ClientID      *int64  `json:"client_id"`
	Date          *string `json:"date"`
	PaymentMethod *string `json:"payment_method"`
	Comment       *string `json:"comment"`
}

// DraftLineRequest línea que se agrega o edita en un borrador.
type DraftLineRequest struct {
	CatalogID       int64           `json:"catalog_id"`
	Quantity        int             `json:"quantity"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

// DraftResponse borrador con líneas calculadas y totales.
type DraftResponse struct {
	ID            string                `json:"id"`
	ClientID      int64                 `json:"client_id"`
	Date          string                `json:"date"`
	PaymentMethod string                `json:"payment_method"`
	Comment       string                `json:"comment"`
	Lines         []InvoiceLineResponse `json:"lines"`
	Totals        TotalsResponse        `json:"totals"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

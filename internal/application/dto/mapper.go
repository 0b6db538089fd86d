package dto

import (
	"time"

	"github.com/RosaQuijije/FacturacionWeb/internal/domain/billing"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/entity"
)

const dayLayout = "2006-01-02"

// FromClient convierte la entidad a respuesta.
func FromClient(c *entity.Client) ClientResponse {
	return ClientResponse{
		ID: c.ID, FirstName: c.FirstName, LastName: c.LastName, FullName: c.FullName(),
		Address: c.Address, Email: c.Email, Phone: c.Phone, Status: c.Status,
		IDType: c.IDType, IDNumber: c.IDNumber,
	}
}

// FromCatalog convierte la entidad a respuesta.
func FromCatalog(c *entity.CatalogEntry) CatalogResponse {
	return CatalogResponse{
		ID: c.ID, Name: c.Name, UnitPrice: c.UnitPrice, Quantity: c.Quantity,
		TaxPercent: c.TaxPercent, Kind: c.Kind, Status: c.Status,
	}
}

// FromService convierte la entidad a respuesta; Billable se evalúa respecto de today.
func FromService(s *entity.RecurringService, today time.Time) ServiceResponse {
	out := ServiceResponse{
		ID: s.ID, ClientID: s.ClientID, CatalogID: s.CatalogID,
		From: formatDay(s.From), To: formatDay(s.To), Status: s.Status,
		TaxPercent: s.TaxPercent, DiscountPercent: s.DiscountPercent, UnitPrice: s.UnitPrice,
		TaxAmount: s.TaxAmount, DiscountAmount: s.DiscountAmount, Subtotal: s.Subtotal, Total: s.Total,
		Billable: s.BillableOn(today),
	}
	if !s.Date.IsZero() {
		out.Date = s.Date.Format(time.RFC3339)
	}
	if s.LastBilledAt != nil {
		out.LastBilledAt = s.LastBilledAt.Format(time.RFC3339)
	}
	return out
}

// FromLine convierte una línea; name es el nombre del catálogo si se conoce.
func FromLine(l entity.InvoiceLine, name string) InvoiceLineResponse {
	return InvoiceLineResponse{
		CatalogID: l.CatalogID, CatalogName: name, Quantity: l.Quantity,
		DiscountPercent: l.DiscountPercent, UnitPrice: l.UnitPrice, TaxPercent: l.TaxPercent,
		DiscountAmount: l.DiscountAmount, Subtotal: l.Subtotal, TaxAmount: l.TaxAmount, LineTotal: l.LineTotal,
	}
}

// FromTotals totales redondeados para mostrar.
func FromTotals(t billing.Totals) TotalsResponse {
	r := t.Rounded()
	return TotalsResponse{Subtotal: r.Subtotal, TaxAmount: r.TaxAmount, DiscountAmount: r.DiscountAmount, Total: r.Total}
}

// FromInvoice convierte la factura; names mapea idCatalogo → nombre (puede ser nil).
func FromInvoice(inv *entity.Invoice, clientName string, names map[int64]string) InvoiceResponse {
	lines := make([]InvoiceLineResponse, 0, len(inv.Lines))
	for _, l := range inv.Lines {
		lines = append(lines, FromLine(l, names[l.CatalogID]))
	}
	return InvoiceResponse{
		ID: inv.ID, ClientID: inv.ClientID, ClientName: clientName,
		Date:               formatDay(inv.Date),
		Status:             inv.Status,
		PaymentMethod:      inv.PaymentMethod,
		PaymentMethodLabel: entity.PaymentMethodLabel(inv.PaymentMethod),
		Comment:            inv.Comment,
		Lines:              lines,
		Totals:             FromTotals(billing.AggregateTotals(inv.Lines)),
	}
}

// FromDraft convierte el borrador con sus totales.
func FromDraft(d *entity.Draft, names map[int64]string) DraftResponse {
	lines := make([]InvoiceLineResponse, 0, len(d.Invoice.Lines))
	for _, l := range d.Invoice.Lines {
		lines = append(lines, FromLine(l, names[l.CatalogID]))
	}
	return DraftResponse{
		ID: d.ID, ClientID: d.Invoice.ClientID, Date: formatDay(d.Invoice.Date),
		PaymentMethod: d.Invoice.PaymentMethod, Comment: d.Invoice.Comment,
		Lines:     lines,
		Totals:    FromTotals(billing.AggregateTotals(d.Invoice.Lines)),
		CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

func formatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dayLayout)
}

package billing

import (
	"context"

	calc "github.com/RosaQuijije/FacturacionWeb/internal/domain/billing"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/entity"
)

// InvoicePDFGenerator puerto para generar la representación gráfica de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, data InvoicePDFData) ([]byte, error)
}

// InvoicePDFData datos ya resueltos que necesita el generador.
type InvoicePDFData struct {
	Invoice *entity.Invoice
	Client  *entity.Client // nil si el cliente ya no existe en el backend
	Lines   []LineForPDF
	Totals  calc.Totals
}

// LineForPDF línea de detalle enriquecida con el nombre del catálogo.
type LineForPDF struct {
	entity.InvoiceLine
	Name string
}

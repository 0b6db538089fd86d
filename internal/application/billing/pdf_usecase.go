package billing

import (
	"context"
	"fmt"

	"github.com/RosaQuijije/FacturacionWeb/internal/domain"
	calc "github.com/RosaQuijije/FacturacionWeb/internal/domain/billing"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/repository"
)

// PDFUseCase genera la representación gráfica (PDF) de una factura emitida.
type PDFUseCase struct {
	invoices  repository.InvoiceRepository
	clients   repository.ClientRepository
	catalogs  repository.CatalogRepository
	generator InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	invoices repository.InvoiceRepository,
	clients repository.ClientRepository,
	catalogs repository.CatalogRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{invoices: invoices, clients: clients, catalogs: catalogs, generator: generator}
}

// DownloadInvoicePDF recupera la factura, su cliente y los nombres del catálogo y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la factura no existe.
//
// Una factura anulada también se puede descargar; el PDF la marca como ANULADA.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, invoiceID int64) (pdfBytes []byte, filename string, err error) {
	// ── 1. Cargar factura ─────────────────────────────────────────────────────
	inv, err := uc.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}

	// ── 2. Cargar cliente (puede haberse eliminado) ───────────────────────────
	client, err := uc.clients.GetByID(ctx, inv.ClientID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener cliente: %w", err)
	}

	// ── 3. Enriquecer detalles con nombre del catálogo ────────────────────────
	names, err := catalogNames(ctx, uc.catalogs)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: %w", err)
	}
	lines := make([]LineForPDF, 0, len(inv.Lines))
	for _, l := range inv.Lines {
		name, ok := names[l.CatalogID]
		if !ok {
			name = fmt.Sprintf("Ítem %d", l.CatalogID) // fallback
		}
		lines = append(lines, LineForPDF{InvoiceLine: l, Name: name})
	}

	// ── 4. Generar PDF ────────────────────────────────────────────────────────
	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, InvoicePDFData{
		Invoice: inv,
		Client:  client,
		Lines:   lines,
		Totals:  calc.AggregateTotals(inv.Lines),
	})
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("factura_%06d.pdf", inv.ID)
	return pdfBytes, filename, nil
}

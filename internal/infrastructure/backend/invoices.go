package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/RosaQuijije/FacturacionWeb/internal/domain/entity"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/repository"
)

// InvoiceRepo implementa repository.InvoiceRepository sobre /invoices.
// El listado del backend llega como arreglo simple; también se acepta HAL.
type InvoiceRepo struct {
	c *Client
}

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

func NewInvoiceRepo(c *Client) *InvoiceRepo { return &InvoiceRepo{c: c} }

func (r *InvoiceRepo) List(ctx context.Context) ([]*entity.Invoice, error) {
	var rows []invoiceDTO
	if err := r.c.getList(ctx, "/invoices", "invoices", &rows); err != nil {
		return nil, err
	}
	out := make([]*entity.Invoice, 0, len(rows))
	for _, row := range rows {
		inv, err := row.toEntity()
		if err != nil {
			return nil, fmt.Errorf("backend: GET /invoices: %w", err)
		}
		out = append(out, inv)
	}
	return out, nil
}

func (r *InvoiceRepo) GetByID(ctx context.Context, id int64) (*entity.Invoice, error) {
	var row invoiceDTO
	found, err := r.c.getOne(ctx, fmt.Sprintf("/invoices/%d", id), &row)
	if err != nil || !found {
		return nil, err
	}
	return row.toEntity()
}

func (r *InvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) (*entity.Invoice, error) {
	in := invoiceToDTO(invoice)
	in.IDFactura = 0
	var out invoiceDTO
	if err := r.c.do(ctx, http.MethodPost, "/invoices", in, &out); err != nil {
		return nil, err
	}
	return out.toEntity()
}

func (r *InvoiceRepo) Update(ctx context.Context, invoice *entity.Invoice) (*entity.Invoice, error) {
	var out invoiceDTO
	if err := r.c.do(ctx, http.MethodPut, fmt.Sprintf("/invoices/%d", invoice.ID), invoiceToDTO(invoice), &out); err != nil {
		return nil, err
	}
	if out.IDFactura == 0 {
		return invoice, nil
	}
	return out.toEntity()
}

func (r *InvoiceRepo) Delete(ctx context.Context, id int64) error {
	return r.c.do(ctx, http.MethodDelete, fmt.Sprintf("/invoices/%d", id), nil, nil)
}

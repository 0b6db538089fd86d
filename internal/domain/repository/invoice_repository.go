package repository

import (
	"context"

	"github.com/RosaQuijije/FacturacionWeb/internal/domain/entity"
)

// InvoiceRepository define el puerto hacia las facturas del backend. El backend asigna el ID
// en Create; anular es un Update completo con estado I.
type InvoiceRepository interface {
	List(ctx context.Context) ([]*entity.Invoice, error)
	GetByID(ctx context.Context, id int64) (*entity.Invoice, error)
	Create(ctx context.Context, invoice *entity.Invoice) (*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) (*entity.Invoice, error)
	Delete(ctx context.Context, id int64) error
}

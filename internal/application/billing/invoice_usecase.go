package billing

import (
	"context"
	"fmt"
	"sort"

	"github.com/RosaQuijije/FacturacionWeb/internal/application/dto"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/entity"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/repository"
)

// InvoiceUseCase consulta, anulación y eliminación de facturas emitidas.
// Las facturas se crean desde un borrador (DraftUseCase) o desde un servicio (RecurringUseCase).
type InvoiceUseCase struct {
	invoices repository.InvoiceRepository
	clients  repository.ClientRepository
	catalogs repository.CatalogRepository
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	invoices repository.InvoiceRepository,
	clients repository.ClientRepository,
	catalogs repository.CatalogRepository,
) *InvoiceUseCase {
	return &InvoiceUseCase{invoices: invoices, clients: clients, catalogs: catalogs}
}

// List facturas más recientes primero, con nombre de cliente.
// clientID > 0 filtra por cliente.
func (uc *InvoiceUseCase) List(ctx context.Context, clientID int64) ([]dto.InvoiceResponse, error) {
	list, err := uc.invoices.List(ctx)
	if err != nil {
		return nil, err
	}
	clients, err := clientNames(ctx, uc.clients)
	if err != nil {
		return nil, err
	}
	catalog, err := catalogNames(ctx, uc.catalogs)
	if err != nil {
		return nil, err
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	out := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		if clientID > 0 && inv.ClientID != clientID {
			continue
		}
		out = append(out, dto.FromInvoice(inv, clients[inv.ClientID], catalog))
	}
	return out, nil
}

// Get factura con detalle; ErrNotFound si no existe.
func (uc *InvoiceUseCase) Get(ctx context.Context, id int64) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	name := ""
	if c, err := uc.clients.GetByID(ctx, inv.ClientID); err == nil && c != nil {
		name = c.FullName()
	}
	catalog, err := catalogNames(ctx, uc.catalogs)
	if err != nil {
		return nil, err
	}
	out := dto.FromInvoice(inv, name, catalog)
	return &out, nil
}

// Void anula la factura: se reenvía completa con estado I. Anular dos veces es ErrConflict.
func (uc *InvoiceUseCase) Void(ctx context.Context, id int64) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.IsVoided() {
		return nil, fmt.Errorf("%w: la factura %d ya está anulada", domain.ErrConflict, id)
	}
	inv.Status = entity.InvoiceStatusVoided
	updated, err := uc.invoices.Update(ctx, inv)
	if err != nil {
		return nil, err
	}
	out := dto.FromInvoice(updated, "", nil)
	return &out, nil
}

// Delete elimina la factura en el backend.
func (uc *InvoiceUseCase) Delete(ctx context.Context, id int64) error {
	return uc.invoices.Delete(ctx, id)
}

func clientNames(ctx context.Context, repo repository.ClientRepository) (map[int64]string, error) {
	list, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar clientes: %w", err)
	}
	out := make(map[int64]string, len(list))
	for _, c := range list {
		out[c.ID] = c.FullName()
	}
	return out, nil
}

func catalogNames(ctx context.Context, repo repository.CatalogRepository) (map[int64]string, error) {
	list, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar catálogo: %w", err)
	}
	out := make(map[int64]string, len(list))
	for _, c := range list {
		out[c.ID] = c.Name
	}
	return out, nil
}

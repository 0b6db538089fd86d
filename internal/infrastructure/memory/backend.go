package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/RosaQuijije/FacturacionWeb/internal/domain"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/entity"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/repository"
)

// table colección en memoria con IDs autoincrementales, como los asigna el backend.
type table[T any] struct {
	mu   sync.RWMutex
	rows map[int64]T
	next int64
	id   func(*T) *int64
}

func newTable[T any](id func(*T) *int64) *table[T] {
	return &table[T]{rows: make(map[int64]T), id: id}
}

func (t *table[T]) list() []*T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*T, 0, len(ids))
	for _, id := range ids {
		row := t.rows[id]
		out = append(out, &row)
	}
	return out
}

func (t *table[T]) get(id int64) *T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	if !ok {
		return nil
	}
	return &row
}

func (t *table[T]) create(v *T) *T {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	row := *v
	*t.id(&row) = t.next
	t.rows[t.next] = row
	return &row
}

func (t *table[T]) update(v *T) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := *t.id(v)
	if _, ok := t.rows[id]; !ok {
		return nil, domain.ErrNotFound
	}
	row := *v
	t.rows[id] = row
	return &row, nil
}

func (t *table[T]) remove(id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(t.rows, id)
	return nil
}

// Backend sustituto en memoria del servidor de facturación, para desarrollo sin backend
// (BACKEND_URL=memory://) y para tests.
type Backend struct {
	Clients  *ClientRepo
	Catalogs *CatalogRepo
	Services *ServiceRepo
	Invoices *InvoiceRepo
	Auth     *AuthGateway
}

// NewBackend crea un backend vacío que acepta cualquier usuario con la contraseña indicada.
func NewBackend(password string) *Backend {
	return &Backend{
		Clients:  &ClientRepo{t: newTable(func(c *entity.Client) *int64 { return &c.ID })},
		Catalogs: &CatalogRepo{t: newTable(func(c *entity.CatalogEntry) *int64 { return &c.ID })},
		Services: &ServiceRepo{t: newTable(func(s *entity.RecurringService) *int64 { return &s.ID })},
		Invoices: &InvoiceRepo{t: newTable(func(i *entity.Invoice) *int64 { return &i.ID })},
		Auth:     &AuthGateway{Password: password},
	}
}

var (
	_ repository.ClientRepository  = (*ClientRepo)(nil)
	_ repository.CatalogRepository = (*CatalogRepo)(nil)
	_ repository.ServiceRepository = (*ServiceRepo)(nil)
	_ repository.InvoiceRepository = (*InvoiceRepo)(nil)
	_ repository.AuthGateway       = (*AuthGateway)(nil)
)

// ClientRepo clientes en memoria.
type ClientRepo struct{ t *table[entity.Client] }

func (r *ClientRepo) List(context.Context) ([]*entity.Client, error) { return r.t.list(), nil }
func (r *ClientRepo) GetByID(_ context.Context, id int64) (*entity.Client, error) {
	return r.t.get(id), nil
}
func (r *ClientRepo) Create(_ context.Context, c *entity.Client) (*entity.Client, error) {
	return r.t.create(c), nil
}
func (r *ClientRepo) Update(_ context.Context, c *entity.Client) (*entity.Client, error) {
	return r.t.update(c)
}
func (r *ClientRepo) Delete(_ context.Context, id int64) error { return r.t.remove(id) }

// CatalogRepo catálogo en memoria.
type CatalogRepo struct{ t *table[entity.CatalogEntry] }

func (r *CatalogRepo) List(context.Context) ([]*entity.CatalogEntry, error) { return r.t.list(), nil }
func (r *CatalogRepo) GetByID(_ context.Context, id int64) (*entity.CatalogEntry, error) {
	return r.t.get(id), nil
}
func (r *CatalogRepo) Create(_ context.Context, c *entity.CatalogEntry) (*entity.CatalogEntry, error) {
	return r.t.create(c), nil
}
func (r *CatalogRepo) Update(_ context.Context, c *entity.CatalogEntry) (*entity.CatalogEntry, error) {
	return r.t.update(c)
}
func (r *CatalogRepo) Delete(_ context.Context, id int64) error { return r.t.remove(id) }

// ServiceRepo servicios recurrentes en memoria.
type ServiceRepo struct{ t *table[entity.RecurringService] }

func (r *ServiceRepo) List(context.Context) ([]*entity.RecurringService, error) {
	return r.t.list(), nil
}
func (r *ServiceRepo) GetByID(_ context.Context, id int64) (*entity.RecurringService, error) {
	return r.t.get(id), nil
}
func (r *ServiceRepo) Create(_ context.Context, s *entity.RecurringService) (*entity.RecurringService, error) {
	return r.t.create(s), nil
}
func (r *ServiceRepo) Update(_ context.Context, s *entity.RecurringService) (*entity.RecurringService, error) {
	return r.t.update(s)
}
func (r *ServiceRepo) Delete(_ context.Context, id int64) error { return r.t.remove(id) }

// InvoiceRepo facturas en memoria. Las líneas se copian para no compartir el slice.
type InvoiceRepo struct{ t *table[entity.Invoice] }

func (r *InvoiceRepo) List(context.Context) ([]*entity.Invoice, error) {
	list := r.t.list()
	for _, inv := range list {
		inv.Lines = append([]entity.InvoiceLine(nil), inv.Lines...)
	}
	return list, nil
}
func (r *InvoiceRepo) GetByID(_ context.Context, id int64) (*entity.Invoice, error) {
	inv := r.t.get(id)
	if inv != nil {
		inv.Lines = append([]entity.InvoiceLine(nil), inv.Lines...)
	}
	return inv, nil
}
func (r *InvoiceRepo) Create(_ context.Context, inv *entity.Invoice) (*entity.Invoice, error) {
	cp := *inv
	cp.Lines = append([]entity.InvoiceLine(nil), inv.Lines...)
	return r.t.create(&cp), nil
}
func (r *InvoiceRepo) Update(_ context.Context, inv *entity.Invoice) (*entity.Invoice, error) {
	cp := *inv
	cp.Lines = append([]entity.InvoiceLine(nil), inv.Lines...)
	return r.t.update(&cp)
}
func (r *InvoiceRepo) Delete(_ context.Context, id int64) error { return r.t.remove(id) }

// AuthGateway acepta cualquier usuario cuya contraseña coincida con Password.
type AuthGateway struct {
	Password string
}

func (g *AuthGateway) Login(_ context.Context, _ string, password string) (string, error) {
	if password != g.Password {
		return "Usuario o contraseña incorrectos", nil
	}
	return "Login exitoso", nil
}

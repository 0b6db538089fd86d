package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/RosaQuijije/FacturacionWeb/internal/application/dto"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain"
	calc "github.com/RosaQuijije/FacturacionWeb/internal/domain/billing"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/entity"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/repository"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/validation"
	"github.com/RosaQuijije/FacturacionWeb/pkg/logger"
)

// DraftUseCase edición de facturas antes de enviarlas al backend.
//
// Cada línea copia precio e IVA del catálogo al agregarse o editarse; los totales
// se recalculan en cada cambio. Un borrador solo es visible para su dueño.
type DraftUseCase struct {
	drafts   repository.DraftRepository
	catalogs repository.CatalogRepository
	clients  repository.ClientRepository
	invoices repository.InvoiceRepository
	log      *logger.Logger
	now      func() time.Time
}

// NewDraftUseCase construye el caso de uso. now nil usa time.Now.
func NewDraftUseCase(
	drafts repository.DraftRepository,
	catalogs repository.CatalogRepository,
	clients repository.ClientRepository,
	invoices repository.InvoiceRepository,
	log *logger.Logger,
	now func() time.Time,
) *DraftUseCase {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = logger.Nop()
	}
	return &DraftUseCase{drafts: drafts, catalogs: catalogs, clients: clients, invoices: invoices, log: log, now: now}
}

// Create abre un borrador vacío con forma de pago SUSF y fecha de hoy.
func (uc *DraftUseCase) Create(ctx context.Context, owner string, in dto.DraftHeaderRequest) (*dto.DraftResponse, error) {
	now := uc.now()
	d := &entity.Draft{
		ID:    uuid.New().String(),
		Owner: owner,
		Invoice: entity.Invoice{
			Date:          truncateDay(now),
			Status:        entity.InvoiceStatusActive,
			PaymentMethod: entity.PaymentNoFinancialSystem,
			Lines:         []entity.InvoiceLine{},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.applyHeader(ctx, d, in); err != nil {
		return nil, err
	}
	if err := uc.drafts.Create(ctx, d); err != nil {
		return nil, err
	}
	return uc.response(ctx, d)
}

// Get devuelve el borrador del usuario.
func (uc *DraftUseCase) Get(ctx context.Context, owner, id string) (*dto.DraftResponse, error) {
	d, err := uc.load(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	return uc.response(ctx, d)
}

// List borradores del usuario, más recientes primero.
func (uc *DraftUseCase) List(ctx context.Context, owner string) ([]dto.DraftResponse, error) {
	list, err := uc.drafts.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	names, err := catalogNames(ctx, uc.catalogs)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DraftResponse, 0, len(list))
	for _, d := range list {
		out = append(out, dto.FromDraft(d, names))
	}
	return out, nil
}

// Delete descarta el borrador.
func (uc *DraftUseCase) Delete(ctx context.Context, owner, id string) error {
	if _, err := uc.load(ctx, owner, id); err != nil {
		return err
	}
	return uc.drafts.Delete(ctx, id)
}

// UpdateHeader aplica solo los campos enviados (cliente, fecha, forma de pago, comentario).
func (uc *DraftUseCase) UpdateHeader(ctx context.Context, owner, id string, in dto.DraftHeaderRequest) (*dto.DraftResponse, error) {
	d, err := uc.load(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if err := uc.applyHeader(ctx, d, in); err != nil {
		return nil, err
	}
	return uc.save(ctx, d)
}

// AddLine agrega una línea. Sin catálogo se usa el primer ítem activo; cantidad 0 se toma como 1.
func (uc *DraftUseCase) AddLine(ctx context.Context, owner, id string, in dto.DraftLineRequest) (*dto.DraftResponse, error) {
	d, err := uc.load(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	entry, err := uc.selectableEntry(ctx, in.CatalogID)
	if err != nil {
		return nil, err
	}
	qty := in.Quantity
	if qty == 0 {
		qty = 1
	}
	line, err := calc.RecomputeLine(entity.InvoiceLine{
		CatalogID:       entry.ID,
		Quantity:        qty,
		DiscountPercent: in.DiscountPercent,
	}, entry)
	if err != nil {
		return nil, err
	}
	d.Invoice.Lines = append(d.Invoice.Lines, line)
	return uc.save(ctx, d)
}

// UpdateLine reemplaza catálogo, cantidad y descuento de la línea idx y la recalcula.
// Si el catálogo no cambia pero ya no existe en el backend, la línea queda en cero.
func (uc *DraftUseCase) UpdateLine(ctx context.Context, owner, id string, idx int, in dto.DraftLineRequest) (*dto.DraftResponse, error) {
	d, err := uc.load(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(d.Invoice.Lines) {
		return nil, fmt.Errorf("%w: línea %d", domain.ErrNotFound, idx)
	}
	current := d.Invoice.Lines[idx]
	catalogID := in.CatalogID
	if catalogID == 0 {
		catalogID = current.CatalogID
	}

	var entry *entity.CatalogEntry
	if catalogID == current.CatalogID {
		entry, err = uc.catalogs.GetByID(ctx, catalogID)
		if err != nil {
			return nil, err
		}
	} else if entry, err = uc.selectableEntry(ctx, catalogID); err != nil {
		return nil, err
	}

	line, err := calc.RecomputeLine(entity.InvoiceLine{
		CatalogID:       catalogID,
		Quantity:        in.Quantity,
		DiscountPercent: in.DiscountPercent,
	}, entry)
	if err != nil {
		return nil, lineError(idx, err)
	}
	d.Invoice.Lines[idx] = line
	return uc.save(ctx, d)
}

// RemoveLine elimina la línea idx conservando el orden del resto.
func (uc *DraftUseCase) RemoveLine(ctx context.Context, owner, id string, idx int) (*dto.DraftResponse, error) {
	d, err := uc.load(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(d.Invoice.Lines) {
		return nil, fmt.Errorf("%w: línea %d", domain.ErrNotFound, idx)
	}
	d.Invoice.Lines = append(d.Invoice.Lines[:idx], d.Invoice.Lines[idx+1:]...)
	return uc.save(ctx, d)
}

// Refresh vuelve a copiar precio e IVA vigentes del catálogo en todas las líneas.
// Las líneas cuyo catálogo ya no existe quedan en cero.
func (uc *DraftUseCase) Refresh(ctx context.Context, owner, id string) (*dto.DraftResponse, error) {
	d, err := uc.load(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	entries, err := uc.catalogs.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*entity.CatalogEntry, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
	}
	if _, err := calc.RecomputeInvoice(&d.Invoice, func(id int64) *entity.CatalogEntry { return byID[id] }); err != nil {
		return nil, err
	}
	return uc.save(ctx, d)
}

// Submit valida el borrador, lo envía al backend como factura y lo descarta.
// La factura lleva la fecha de la cabecera del borrador.
func (uc *DraftUseCase) Submit(ctx context.Context, owner, id string) (*dto.InvoiceResponse, error) {
	d, err := uc.load(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	inv := d.Invoice
	if err := calc.ValidateInvoiceDraft(&inv); err != nil {
		return nil, err
	}
	client, err := uc.clients.GetByID(ctx, inv.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, validation.Fail("idCliente", "El cliente seleccionado no existe")
	}

	if inv.Date.IsZero() {
		inv.Date = truncateDay(uc.now())
	}
	inv.Status = entity.InvoiceStatusActive
	created, err := uc.invoices.Create(ctx, &inv)
	if err != nil {
		return nil, fmt.Errorf("enviar borrador %s: %w", d.ID, err)
	}
	if err := uc.drafts.Delete(ctx, d.ID); err != nil {
		uc.log.Warn().Err(err).Str("draft_id", d.ID).Int64("invoice_id", created.ID).Msg("descartar borrador enviado")
	}
	uc.log.Info().Int64("invoice_id", created.ID).Str("owner", owner).Msg("factura emitida")

	names, err := catalogNames(ctx, uc.catalogs)
	if err != nil {
		names = nil
	}
	out := dto.FromInvoice(created, client.FullName(), names)
	return &out, nil
}

// load obtiene el borrador; uno ajeno se reporta igual que uno inexistente.
func (uc *DraftUseCase) load(ctx context.Context, owner, id string) (*entity.Draft, error) {
	d, err := uc.drafts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil || d.Owner != owner {
		return nil, fmt.Errorf("%w: borrador %s", domain.ErrNotFound, id)
	}
	return d, nil
}

func (uc *DraftUseCase) save(ctx context.Context, d *entity.Draft) (*dto.DraftResponse, error) {
	d.UpdatedAt = uc.now()
	if err := uc.drafts.Update(ctx, d); err != nil {
		return nil, err
	}
	return uc.response(ctx, d)
}

func (uc *DraftUseCase) response(ctx context.Context, d *entity.Draft) (*dto.DraftResponse, error) {
	names, err := catalogNames(ctx, uc.catalogs)
	if err != nil {
		return nil, err
	}
	out := dto.FromDraft(d, names)
	return &out, nil
}

func (uc *DraftUseCase) applyHeader(ctx context.Context, d *entity.Draft, in dto.DraftHeaderRequest) error {
	if in.ClientID != nil {
		if *in.ClientID != 0 {
			c, err := uc.clients.GetByID(ctx, *in.ClientID)
			if err != nil {
				return err
			}
			if c == nil || !c.IsActive() {
				return validation.Fail("idCliente", "El cliente seleccionado no está disponible")
			}
		}
		d.Invoice.ClientID = *in.ClientID
	}
	if in.Date != nil {
		day, err := validation.ParseDay("fecha", in.Date)
		if err != nil {
			return err
		}
		if day != nil {
			d.Invoice.Date = *day
		}
	}
	if in.PaymentMethod != nil {
		pm := strings.TrimSpace(*in.PaymentMethod)
		if !calc.ValidPaymentMethod(pm) {
			return validation.Fail("formaPago", "Forma de pago inválida (SUSF, TC u OUSF)")
		}
		d.Invoice.PaymentMethod = pm
	}
	if in.Comment != nil {
		d.Invoice.Comment = *in.Comment
	}
	return nil
}

// selectableEntry ítem activo del catálogo; id 0 toma el primero activo.
func (uc *DraftUseCase) selectableEntry(ctx context.Context, id int64) (*entity.CatalogEntry, error) {
	if id == 0 {
		list, err := uc.catalogs.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, e := range list {
			if e.IsActive() {
				return e, nil
			}
		}
		return nil, validation.Fail("idCatalogo", "No hay ítems activos en el catálogo")
	}
	entry, err := uc.catalogs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil || !entry.IsActive() {
		return nil, validation.Fail("idCatalogo", "El catálogo seleccionado no está disponible")
	}
	return entry, nil
}

func lineError(idx int, err error) error {
	if vErr, ok := validation.AsError(err); ok {
		return validation.Fail(fmt.Sprintf("detalles[%d].%s", idx, vErr.Field), vErr.Message)
	}
	return err
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

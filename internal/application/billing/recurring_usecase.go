package billing

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/RosaQuijije/FacturacionWeb/internal/application/dto"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain"
	calc "github.com/RosaQuijije/FacturacionWeb/internal/domain/billing"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/entity"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/repository"
	"github.com/RosaQuijije/FacturacionWeb/pkg/logger"
)

// Motivos por los que un servicio no se puede facturar hoy.
var (
	ErrServiceOutOfRange    = fmt.Errorf("%w: El servicio no está dentro del rango de fechas válido para facturar.", domain.ErrConflict)
	ErrServiceAlreadyBilled = fmt.Errorf("%w: Este servicio ya fue facturado este mes.", domain.ErrConflict)
	ErrServiceInactive      = fmt.Errorf("%w: El servicio está inactivo.", domain.ErrConflict)
)

// RecurringUseCase facturación mensual de servicios recurrentes: una factura por
// servicio y mes calendario, con forma de pago OUSF y una sola línea.
type RecurringUseCase struct {
	services repository.ServiceRepository
	invoices repository.InvoiceRepository
	log      *logger.Logger
	now      func() time.Time
}

// NewRecurringUseCase construye el caso de uso. now nil usa time.Now.
func NewRecurringUseCase(
	services repository.ServiceRepository,
	invoices repository.InvoiceRepository,
	log *logger.Logger,
	now func() time.Time,
) *RecurringUseCase {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = logger.Nop()
	}
	return &RecurringUseCase{services: services, invoices: invoices, log: log, now: now}
}

// Billable servicios que se pueden facturar hoy, por ID descendente.
func (uc *RecurringUseCase) Billable(ctx context.Context) ([]dto.ServiceResponse, error) {
	due, err := uc.due(ctx, uc.now())
	if err != nil {
		return nil, err
	}
	today := uc.now()
	out := make([]dto.ServiceResponse, 0, len(due))
	for _, s := range due {
		out = append(out, dto.FromService(s, today))
	}
	return out, nil
}

// BillService factura el servicio id y registra la fecha de facturación.
// Si la factura se crea pero el servicio no se puede marcar, el resultado trae el
// ID de la factura junto con el error.
func (uc *RecurringUseCase) BillService(ctx context.Context, id int64) (dto.BillResult, error) {
	res := dto.BillResult{ServiceID: id}
	svc, err := uc.services.GetByID(ctx, id)
	if err != nil {
		return res, err
	}
	if svc == nil {
		return res, fmt.Errorf("%w: servicio %d", domain.ErrNotFound, id)
	}
	return uc.bill(ctx, svc, uc.now())
}

// BillDue factura todos los servicios pendientes del mes. Un fallo no detiene al resto.
func (uc *RecurringUseCase) BillDue(ctx context.Context) (*dto.BillDueResponse, error) {
	today := uc.now()
	due, err := uc.due(ctx, today)
	if err != nil {
		return nil, err
	}
	out := &dto.BillDueResponse{Results: make([]dto.BillResult, 0, len(due))}
	for _, svc := range due {
		res, err := uc.bill(ctx, svc, today)
		if err != nil {
			uc.log.Error().Err(err).Int64("service_id", svc.ID).Int64("invoice_id", res.InvoiceID).Msg("facturar servicio")
			res.Error = ResultMessage(res, err)
			out.Failed++
		} else {
			out.Billed++
		}
		out.Results = append(out.Results, res)
	}
	uc.log.Info().Int("billed", out.Billed).Int("failed", out.Failed).Msg("facturación recurrente")
	return out, nil
}

func (uc *RecurringUseCase) bill(ctx context.Context, svc *entity.RecurringService, today time.Time) (dto.BillResult, error) {
	res := dto.BillResult{ServiceID: svc.ID}
	switch {
	case !svc.IsActive():
		return res, ErrServiceInactive
	case !svc.InRange(today):
		return res, ErrServiceOutOfRange
	case svc.BilledInMonthOf(today):
		return res, ErrServiceAlreadyBilled
	}

	inv := &entity.Invoice{
		ClientID:      svc.ClientID,
		Date:          today,
		Status:        entity.InvoiceStatusActive,
		PaymentMethod: entity.PaymentOtherFinancialSystem,
		Lines:         []entity.InvoiceLine{calc.LineFromService(svc)},
	}
	created, err := uc.invoices.Create(ctx, inv)
	if err != nil {
		return res, err
	}
	res.InvoiceID = created.ID

	billed := today
	svc.LastBilledAt = &billed
	if _, err := uc.services.Update(ctx, svc); err != nil {
		return res, errors.Join(fmt.Errorf("marcar servicio %d como facturado (factura %d emitida)", svc.ID, created.ID), err)
	}
	return res, nil
}

// ResultMessage texto para el usuario de un fallo al facturar un servicio.
// Los motivos de negocio se muestran tal cual; los fallos del backend no.
func ResultMessage(res dto.BillResult, err error) string {
	switch {
	case res.InvoiceID != 0:
		return fmt.Sprintf("La factura %d se emitió, pero el servicio no se pudo marcar como facturado.", res.InvoiceID)
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrNotFound):
		return err.Error()
	default:
		return dto.MsgBackendUnavailable
	}
}

func (uc *RecurringUseCase) due(ctx context.Context, today time.Time) ([]*entity.RecurringService, error) {
	list, err := uc.services.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.RecurringService, 0, len(list))
	for _, s := range list {
		if s.BillableOn(today) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

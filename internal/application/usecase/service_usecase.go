package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/RosaQuijije/FacturacionWeb/internal/application/dto"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/billing"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/entity"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/repository"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/validation"
)

// ServiceUseCase casos de uso para servicios recurrentes. Los montos del servicio se
// calculan con el precio e IVA del catálogo vigentes al guardar.
type ServiceUseCase struct {
	services repository.ServiceRepository
	catalogs repository.CatalogRepository
	now      func() time.Time
}

// NewServiceUseCase construye el caso de uso. now nil usa time.Now.
func NewServiceUseCase(services repository.ServiceRepository, catalogs repository.CatalogRepository, now func() time.Time) *ServiceUseCase {
	if now == nil {
		now = time.Now
	}
	return &ServiceUseCase{services: services, catalogs: catalogs, now: now}
}

// Create valida el formulario, calcula los montos y crea el servicio.
func (uc *ServiceUseCase) Create(ctx context.Context, in dto.ServiceRequest) (*dto.ServiceResponse, error) {
	svc, err := uc.build(ctx, in)
	if err != nil {
		return nil, err
	}
	svc.Date = uc.now()
	created, err := uc.services.Create(ctx, svc)
	if err != nil {
		return nil, err
	}
	out := dto.FromService(created, uc.now())
	return &out, nil
}

// Update recalcula el servicio; conserva la fecha de registro y la última facturación.
func (uc *ServiceUseCase) Update(ctx context.Context, id int64, in dto.ServiceRequest) (*dto.ServiceResponse, error) {
	existing, err := uc.services.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	svc, err := uc.build(ctx, in)
	if err != nil {
		return nil, err
	}
	svc.ID = id
	svc.Date = existing.Date
	svc.LastBilledAt = existing.LastBilledAt
	updated, err := uc.services.Update(ctx, svc)
	if err != nil {
		return nil, err
	}
	out := dto.FromService(updated, uc.now())
	return &out, nil
}

// Get obtiene un servicio; ErrNotFound si no existe.
func (uc *ServiceUseCase) Get(ctx context.Context, id int64) (*dto.ServiceResponse, error) {
	svc, err := uc.services.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromService(svc, uc.now())
	return &out, nil
}

// List servicios ordenados por ID descendente (los más recientes primero).
func (uc *ServiceUseCase) List(ctx context.Context) ([]dto.ServiceResponse, error) {
	list, err := uc.services.List(ctx)
	if err != nil {
		return nil, err
	}
	sortServicesDesc(list)
	today := uc.now()
	out := make([]dto.ServiceResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.FromService(s, today))
	}
	return out, nil
}

// Delete elimina el servicio.
func (uc *ServiceUseCase) Delete(ctx context.Context, id int64) error {
	return uc.services.Delete(ctx, id)
}

func (uc *ServiceUseCase) build(ctx context.Context, in dto.ServiceRequest) (*entity.RecurringService, error) {
	from, err := validation.ParseDay("fechaDesde", in.From)
	if err != nil {
		return nil, err
	}
	to, err := validation.ParseDay("fechaHasta", in.To)
	if err != nil {
		return nil, err
	}
	svc, err := validation.ValidateServiceDraft(entity.ServiceDraftInput{
		ClientID:        in.ClientID,
		CatalogID:       in.CatalogID,
		From:            from,
		To:              to,
		Status:          in.Status,
		DiscountPercent: in.DiscountPercent,
	})
	if err != nil {
		return nil, err
	}
	entry, err := uc.catalogs.GetByID(ctx, svc.CatalogID)
	if err != nil {
		return nil, err
	}
	if entry == nil || !entry.IsActive() {
		return nil, validation.Fail("idCatalogo", "El catálogo seleccionado no está disponible")
	}
	if err := billing.PriceService(svc, entry); err != nil {
		return nil, err
	}
	return svc, nil
}

func sortServicesDesc(list []*entity.RecurringService) {
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
}

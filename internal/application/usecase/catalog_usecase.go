package usecase

import (
	"context"

	"github.com/RosaQuijije/FacturacionWeb/internal/application/dto"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/entity"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/repository"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/validation"
)

// CatalogUseCase casos de uso CRUD para productos y servicios del catálogo.
type CatalogUseCase struct {
	repo repository.CatalogRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(repo repository.CatalogRepository) *CatalogUseCase {
	return &CatalogUseCase{repo: repo}
}

// Create valida y crea el ítem. IVA solo 0 o 15; un servicio siempre con cantidad 1.
func (uc *CatalogUseCase) Create(ctx context.Context, in dto.CatalogRequest) (*dto.CatalogResponse, error) {
	entry := catalogFromRequest(in)
	if err := validation.ValidateCatalogEntry(entry); err != nil {
		return nil, err
	}
	created, err := uc.repo.Create(ctx, entry)
	if err != nil {
		return nil, err
	}
	out := dto.FromCatalog(created)
	return &out, nil
}

// Get obtiene un ítem; ErrNotFound si no existe.
func (uc *CatalogUseCase) Get(ctx context.Context, id int64) (*dto.CatalogResponse, error) {
	entry, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromCatalog(entry)
	return &out, nil
}

// List lista el catálogo aplicando los filtros.
func (uc *CatalogUseCase) List(ctx context.Context, f dto.CatalogFilter) ([]dto.CatalogResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CatalogResponse, 0, len(list))
	for _, e := range list {
		if f.ActiveOnly && !e.IsActive() {
			continue
		}
		if f.Kind != "" && e.Kind != f.Kind {
			continue
		}
		out = append(out, dto.FromCatalog(e))
	}
	return out, nil
}

// Update reemplaza el ítem. Las facturas ya emitidas conservan el precio que copiaron.
func (uc *CatalogUseCase) Update(ctx context.Context, id int64, in dto.CatalogRequest) (*dto.CatalogResponse, error) {
	existing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	entry := catalogFromRequest(in)
	entry.ID = id
	if err := validation.ValidateCatalogEntry(entry); err != nil {
		return nil, err
	}
	updated, err := uc.repo.Update(ctx, entry)
	if err != nil {
		return nil, err
	}
	out := dto.FromCatalog(updated)
	return &out, nil
}

// Delete elimina el ítem.
func (uc *CatalogUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

func catalogFromRequest(in dto.CatalogRequest) *entity.CatalogEntry {
	return &entity.CatalogEntry{
		Name:       in.Name,
		UnitPrice:  in.UnitPrice,
		Quantity:   in.Quantity,
		TaxPercent: in.TaxPercent,
		Kind:       in.Kind,
		Status:     in.Status,
	}
}

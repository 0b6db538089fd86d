package repository

import (
	"context"

	"github.com/RosaQuijije/FacturacionWeb/internal/domain/entity"
)

// CatalogRepository define el puerto hacia el catálogo de productos y servicios.
type CatalogRepository interface {
	List(ctx context.Context) ([]*entity.CatalogEntry, error)
	GetByID(ctx context.Context, id int64) (*entity.CatalogEntry, error)
	Create(ctx context.Context, entry *entity.CatalogEntry) (*entity.CatalogEntry, error)
	Update(ctx context.Context, entry *entity.CatalogEntry) (*entity.CatalogEntry, error)
	Delete(ctx context.Context, id int64) error
}

package repository

import (
	"context"

	"github.com/RosaQuijije/FacturacionWeb/internal/domain/entity"
)

// DraftRepository persiste borradores de factura mientras se editan.
// GetByID devuelve (nil, nil) si no existe.
type DraftRepository interface {
	Create(ctx context.Context, draft *entity.Draft) error
	GetByID(ctx context.Context, id string) (*entity.Draft, error)
	ListByOwner(ctx context.Context, owner string) ([]*entity.Draft, error)
	Update(ctx context.Context, draft *entity.Draft) error
	Delete(ctx context.Context, id string) error
}

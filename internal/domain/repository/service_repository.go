package repository

import (
	"context"

	"github.com/RosaQuijije/FacturacionWeb/internal/domain/entity"
)

// ServiceRepository define el puerto hacia los servicios recurrentes.
type ServiceRepository interface {
	List(ctx context.Context) ([]*entity.RecurringService, error)
	GetByID(ctx context.Context, id int64) (*entity.RecurringService, error)
	Create(ctx context.Context, svc *entity.RecurringService) (*entity.RecurringService, error)
	Update(ctx context.Context, svc *entity.RecurringService) (*entity.RecurringService, error)
	Delete(ctx context.Context, id int64) error
}

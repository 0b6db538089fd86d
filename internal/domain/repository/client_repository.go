package repository

import (
	"context"

	"github.com/RosaQuijije/FacturacionWeb/internal/domain/entity"
)

// ClientRepository define el puerto hacia los clientes del backend de facturación.
// GetByID devuelve (nil, nil) si el cliente no existe.
type ClientRepository interface {
	List(ctx context.Context) ([]*entity.Client, error)
	GetByID(ctx context.Context, id int64) (*entity.Client, error)
	Create(ctx context.Context, client *entity.Client) (*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) (*entity.Client, error)
	Delete(ctx context.Context, id int64) error
}

package usecase

import (
	"context"

	"github.com/RosaQuijije/FacturacionWeb/internal/application/dto"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/entity"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/repository"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/validation"
)

// ClientUseCase casos de uso CRUD para clientes.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Create valida el formulario y crea el cliente en el backend.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.ClientRequest) (*dto.ClientResponse, error) {
	client := clientFromRequest(in)
	if err := validation.ValidateClient(client); err != nil {
		return nil, err
	}
	created, err := uc.repo.Create(ctx, client)
	if err != nil {
		return nil, err
	}
	out := dto.FromClient(created)
	return &out, nil
}

// Get obtiene un cliente; ErrNotFound si no existe.
func (uc *ClientUseCase) Get(ctx context.Context, id int64) (*dto.ClientResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromClient(c)
	return &out, nil
}

// List lista clientes; activeOnly filtra los seleccionables para nuevas facturas.
func (uc *ClientUseCase) List(ctx context.Context, activeOnly bool) ([]dto.ClientResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		if activeOnly && !c.IsActive() {
			continue
		}
		out = append(out, dto.FromClient(c))
	}
	return out, nil
}

// Update reemplaza los datos del cliente.
func (uc *ClientUseCase) Update(ctx context.Context, id int64, in dto.ClientRequest) (*dto.ClientResponse, error) {
	existing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	client := clientFromRequest(in)
	client.ID = id
	if err := validation.ValidateClient(client); err != nil {
		return nil, err
	}
	updated, err := uc.repo.Update(ctx, client)
	if err != nil {
		return nil, err
	}
	out := dto.FromClient(updated)
	return &out, nil
}

// Delete elimina el cliente.
func (uc *ClientUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

func clientFromRequest(in dto.ClientRequest) *entity.Client {
	return &entity.Client{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Address:   in.Address,
		Email:     in.Email,
		Phone:     in.Phone,
		Status:    in.Status,
		IDType:    in.IDType,
		IDNumber:  in.IDNumber,
	}
}

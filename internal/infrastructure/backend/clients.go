package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/RosaQuijije/FacturacionWeb/internal/domain/entity"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/repository"
)

// ClientRepo implementa repository.ClientRepository sobre /clients.
type ClientRepo struct {
	c *Client
}

var _ repository.ClientRepository = (*ClientRepo)(nil)

// NewClientRepo construye el repositorio de clientes.
func NewClientRepo(c *Client) *ClientRepo { return &ClientRepo{c: c} }

func (r *ClientRepo) List(ctx context.Context) ([]*entity.Client, error) {
	var rows []clientDTO
	if err := r.c.getList(ctx, "/clients", "clients", &rows); err != nil {
		return nil, err
	}
	out := make([]*entity.Client, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

func (r *ClientRepo) GetByID(ctx context.Context, id int64) (*entity.Client, error) {
	var row clientDTO
	found, err := r.c.getOne(ctx, fmt.Sprintf("/clients/%d", id), &row)
	if err != nil || !found {
		return nil, err
	}
	return row.toEntity(), nil
}

func (r *ClientRepo) Create(ctx context.Context, client *entity.Client) (*entity.Client, error) {
	in := clientToDTO(client)
	in.IDCliente = 0
	var out clientDTO
	if err := r.c.do(ctx, http.MethodPost, "/clients", in, &out); err != nil {
		return nil, err
	}
	return out.toEntity(), nil
}

func (r *ClientRepo) Update(ctx context.Context, client *entity.Client) (*entity.Client, error) {
	var out clientDTO
	if err := r.c.do(ctx, http.MethodPut, fmt.Sprintf("/clients/%d", client.ID), clientToDTO(client), &out); err != nil {
		return nil, err
	}
	if out.IDCliente == 0 {
		return client, nil
	}
	return out.toEntity(), nil
}

func (r *ClientRepo) Delete(ctx context.Context, id int64) error {
	return r.c.do(ctx, http.MethodDelete, fmt.Sprintf("/clients/%d", id), nil, nil)
}

package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/RosaQuijije/FacturacionWeb/internal/domain/entity"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/repository"
)

// ServiceRepo implementa repository.ServiceRepository sobre /services.
type ServiceRepo struct {
	c *Client
}

var _ repository.ServiceRepository = (*ServiceRepo)(nil)

func NewServiceRepo(c *Client) *ServiceRepo { return &ServiceRepo{c: c} }

func (r *ServiceRepo) List(ctx context.Context) ([]*entity.RecurringService, error) {
	var rows []serviceDTO
	if err := r.c.getList(ctx, "/services", "services", &rows); err != nil {
		return nil, err
	}
	out := make([]*entity.RecurringService, 0, len(rows))
	for _, row := range rows {
		svc, err := row.toEntity()
		if err != nil {
			return nil, fmt.Errorf("backend: GET /services: %w", err)
		}
		out = append(out, svc)
	}
	return out, nil
}

func (r *ServiceRepo) GetByID(ctx context.Context, id int64) (*entity.RecurringService, error) {
	var row serviceDTO
	found, err := r.c.getOne(ctx, fmt.Sprintf("/services/%d", id), &row)
	if err != nil || !found {
		return nil, err
	}
	return row.toEntity()
}

func (r *ServiceRepo) Create(ctx context.Context, svc *entity.RecurringService) (*entity.RecurringService, error) {
	in := serviceToDTO(svc)
	in.IDServicio = 0
	var out serviceDTO
	if err := r.c.do(ctx, http.MethodPost, "/services", in, &out); err != nil {
		return nil, err
	}
	return out.toEntity()
}

func (r *ServiceRepo) Update(ctx context.Context, svc *entity.RecurringService) (*entity.RecurringService, error) {
	var out serviceDTO
	if err := r.c.do(ctx, http.MethodPut, fmt.Sprintf("/services/%d", svc.ID), serviceToDTO(svc), &out); err != nil {
		return nil, err
	}
	if out.IDServicio == 0 {
		return svc, nil
	}
	return out.toEntity()
}

func (r *ServiceRepo) Delete(ctx context.Context, id int64) error {
	return r.c.do(ctx, http.MethodDelete, fmt.Sprintf("/services/%d", id), nil, nil)
}

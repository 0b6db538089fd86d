package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/RosaQuijije/FacturacionWeb/internal/domain/entity"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/repository"
)

// CatalogRepo implementa repository.CatalogRepository sobre /catalogs.
type CatalogRepo struct {
	c *Client
}

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

func NewCatalogRepo(c *Client) *CatalogRepo { return &CatalogRepo{c: c} }

func (r *CatalogRepo) List(ctx context.Context) ([]*entity.CatalogEntry, error) {
	var rows []catalogDTO
	if err := r.c.getList(ctx, "/catalogs", "catalogs", &rows); err != nil {
		return nil, err
	}
	out := make([]*entity.CatalogEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

func (r *CatalogRepo) GetByID(ctx context.Context, id int64) (*entity.CatalogEntry, error) {
	var row catalogDTO
	found, err := r.c.getOne(ctx, fmt.Sprintf("/catalogs/%d", id), &row)
	if err != nil || !found {
		return nil, err
	}
	return row.toEntity(), nil
}

func (r *CatalogRepo) Create(ctx context.Context, entry *entity.CatalogEntry) (*entity.CatalogEntry, error) {
	in := catalogToDTO(entry)
	in.IDCatalogo = 0
	var out catalogDTO
	if err := r.c.do(ctx, http.MethodPost, "/catalogs", in, &out); err != nil {
		return nil, err
	}
	return out.toEntity(), nil
}

func (r *CatalogRepo) Update(ctx context.Context, entry *entity.CatalogEntry) (*entity.CatalogEntry, error) {
	var out catalogDTO
	if err := r.c.do(ctx, http.MethodPut, fmt.Sprintf("/catalogs/%d", entry.ID), catalogToDTO(entry), &out); err != nil {
		return nil, err
	}
	if out.IDCatalogo == 0 {
		return entry, nil
	}
	return out.toEntity(), nil
}

func (r *CatalogRepo) Delete(ctx context.Context, id int64) error {
	return r.c.do(ctx, http.MethodDelete, fmt.Sprintf("/catalogs/%d", id), nil, nil)
}

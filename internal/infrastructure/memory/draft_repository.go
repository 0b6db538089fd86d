// Package memory guarda borradores de factura en memoria del proceso.
// Se usa cuando no hay base de datos configurada y en tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/RosaQuijije/FacturacionWeb/internal/domain"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/entity"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/repository"
)

var _ repository.DraftRepository = (*DraftRepo)(nil)

// DraftRepo implementación de DraftRepository en memoria, segura para uso concurrente.
type DraftRepo struct {
	mu     sync.RWMutex
	drafts map[string]*entity.Draft
}

// NewDraftRepository construye el almacén vacío.
func NewDraftRepository() *DraftRepo {
	return &DraftRepo{drafts: make(map[string]*entity.Draft)}
}

func (r *DraftRepo) Create(_ context.Context, draft *entity.Draft) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.drafts[draft.ID]; ok {
		return domain.ErrConflict
	}
	r.drafts[draft.ID] = cloneDraft(draft)
	return nil
}

func (r *DraftRepo) GetByID(_ context.Context, id string) (*entity.Draft, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.drafts[id]
	if !ok {
		return nil, nil
	}
	return cloneDraft(d), nil
}

// ListByOwner borradores del usuario, más recientes primero.
func (r *DraftRepo) ListByOwner(_ context.Context, owner string) ([]*entity.Draft, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Draft, 0)
	for _, d := range r.drafts {
		if d.Owner == owner {
			out = append(out, cloneDraft(d))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (r *DraftRepo) Update(_ context.Context, draft *entity.Draft) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.drafts[draft.ID]; !ok {
		return domain.ErrNotFound
	}
	r.drafts[draft.ID] = cloneDraft(draft)
	return nil
}

func (r *DraftRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.drafts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.drafts, id)
	return nil
}

// cloneDraft copia las líneas para que el llamador no comparta el slice guardado.
func cloneDraft(d *entity.Draft) *entity.Draft {
	c := *d
	c.Invoice.Lines = append([]entity.InvoiceLine(nil), d.Invoice.Lines...)
	return &c
}

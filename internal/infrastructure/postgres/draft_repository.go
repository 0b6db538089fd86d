package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RosaQuijije/FacturacionWeb/internal/domain"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/entity"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/repository"
)

var _ repository.DraftRepository = (*DraftStore)(nil)

// DraftRepo acceso a las tablas de borradores (usable con pool o tx).
type DraftRepo struct {
	q Querier
}

// NewDraftRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDraftRepository(q Querier) *DraftRepo {
	return &DraftRepo{q: q}
}

// InsertHeader persiste la cabecera del borrador.
func (r *DraftRepo) InsertHeader(ctx context.Context, d *entity.Draft) error {
	query := `
		INSERT INTO invoice_drafts (id, owner, client_id, invoice_date, status, payment_method, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.Owner, d.Invoice.ClientID, d.Invoice.Date, d.Invoice.Status,
		d.Invoice.PaymentMethod, d.Invoice.Comment, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert draft: %w", err)
	}
	return nil
}

// UpdateHeader actualiza la cabecera. Devuelve ErrNotFound si el borrador no existe.
func (r *DraftRepo) UpdateHeader(ctx context.Context, d *entity.Draft) error {
	query := `
		UPDATE invoice_drafts
		SET client_id = $2, invoice_date = $3, status = $4, payment_method = $5, comment = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		d.ID, d.Invoice.ClientID, d.Invoice.Date, d.Invoice.Status,
		d.Invoice.PaymentMethod, d.Invoice.Comment, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update draft: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReplaceLines reemplaza todas las líneas del borrador conservando el orden.
func (r *DraftRepo) ReplaceLines(ctx context.Context, draftID string, lines []entity.InvoiceLine) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM invoice_draft_lines WHERE draft_id = $1`, draftID); err != nil {
		return fmt.Errorf("delete draft lines: %w", err)
	}
	query := `
		INSERT INTO invoice_draft_lines (draft_id, position, catalog_id, quantity, discount_percent,
		    unit_price, tax_percent, discount_amount, subtotal, tax_amount, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	for i, l := range lines {
		_, err := r.q.Exec(ctx, query,
			draftID, i, l.CatalogID, l.Quantity, l.DiscountPercent,
			l.UnitPrice, l.TaxPercent, l.DiscountAmount, l.Subtotal, l.TaxAmount, l.LineTotal,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("insert draft line %d: %w", i, err)
		}
	}
	return nil
}

// GetByID obtiene un borrador con sus líneas; (nil, nil) si no existe.
func (r *DraftRepo) GetByID(ctx context.Context, id string) (*entity.Draft, error) {
	query := `
		SELECT id, owner, client_id, invoice_date, status, payment_method, comment, created_at, updated_at
		FROM invoice_drafts WHERE id = $1`
	d, err := scanDraft(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get draft: %w", err)
	}
	lines, err := r.lines(ctx, []string{d.ID})
	if err != nil {
		return nil, err
	}
	d.Invoice.Lines = lines[d.ID]
	return d, nil
}

// ListByOwner borradores del usuario, más recientes primero.
func (r *DraftRepo) ListByOwner(ctx context.Context, owner string) ([]*entity.Draft, error) {
	query := `
		SELECT id, owner, client_id, invoice_date, status, payment_method, comment, created_at, updated_at
		FROM invoice_drafts WHERE owner = $1
		ORDER BY updated_at DESC, id`
	rows, err := r.q.Query(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}
	defer rows.Close()

	var list []*entity.Draft
	var ids []string
	for rows.Next() {
		d, err := scanDraft(rows)
		if err != nil {
			return nil, fmt.Errorf("scan draft: %w", err)
		}
		list = append(list, d)
		ids = append(ids, d.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*entity.Draft{}, nil
	}

	lines, err := r.lines(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, d := range list {
		d.Invoice.Lines = lines[d.ID]
	}
	return list, nil
}

// Delete elimina el borrador (las líneas caen por cascada).
func (r *DraftRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM invoice_drafts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DraftRepo) lines(ctx context.Context, draftIDs []string) (map[string][]entity.InvoiceLine, error) {
	query := `
		SELECT draft_id, catalog_id, quantity, discount_percent, unit_price, tax_percent,
		       discount_amount, subtotal, tax_amount, line_total
		FROM invoice_draft_lines WHERE draft_id = ANY($1)
		ORDER BY draft_id, position`
	rows, err := r.q.Query(ctx, query, draftIDs)
	if err != nil {
		return nil, fmt.Errorf("list draft lines: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]entity.InvoiceLine, len(draftIDs))
	for rows.Next() {
		var draftID string
		var l entity.InvoiceLine
		if err := rows.Scan(&draftID, &l.CatalogID, &l.Quantity, &l.DiscountPercent, &l.UnitPrice, &l.TaxPercent,
			&l.DiscountAmount, &l.Subtotal, &l.TaxAmount, &l.LineTotal); err != nil {
			return nil, fmt.Errorf("scan draft line: %w", err)
		}
		out[draftID] = append(out[draftID], l)
	}
	return out, rows.Err()
}

func scanDraft(row pgx.Row) (*entity.Draft, error) {
	var d entity.Draft
	err := row.Scan(
		&d.ID, &d.Owner, &d.Invoice.ClientID, &d.Invoice.Date, &d.Invoice.Status,
		&d.Invoice.PaymentMethod, &d.Invoice.Comment, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	d.Invoice.Lines = []entity.InvoiceLine{}
	return &d, nil
}

// DraftStore implementa repository.DraftRepository: las escrituras de cabecera y líneas
// van en una sola transacción.
type DraftStore struct {
	pool   *pgxpool.Pool
	runner *TxRunner
}

// NewDraftStore construye el almacén sobre el pool.
func NewDraftStore(pool *pgxpool.Pool) *DraftStore {
	return &DraftStore{pool: pool, runner: NewTxRunner(pool)}
}

func (s *DraftStore) Create(ctx context.Context, d *entity.Draft) error {
	return s.runner.Run(ctx, func(drafts *DraftRepo) error {
		if err := drafts.InsertHeader(ctx, d); err != nil {
			return err
		}
		return drafts.ReplaceLines(ctx, d.ID, d.Invoice.Lines)
	})
}

func (s *DraftStore) Update(ctx context.Context, d *entity.Draft) error {
	return s.runner.Run(ctx, func(drafts *DraftRepo) error {
		if err := drafts.UpdateHeader(ctx, d); err != nil {
			return err
		}
		return drafts.ReplaceLines(ctx, d.ID, d.Invoice.Lines)
	})
}

func (s *DraftStore) GetByID(ctx context.Context, id string) (*entity.Draft, error) {
	return NewDraftRepository(s.pool).GetByID(ctx, id)
}

func (s *DraftStore) ListByOwner(ctx context.Context, owner string) ([]*entity.Draft, error) {
	return NewDraftRepository(s.pool).ListByOwner(ctx, owner)
}

func (s *DraftStore) Delete(ctx context.Context, id string) error {
	return NewDraftRepository(s.pool).Delete(ctx, id)
}

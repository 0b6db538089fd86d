package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RosaQuijije/FacturacionWeb/internal/domain"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/entity"
	"github.com/RosaQuijije/FacturacionWeb/internal/infrastructure/postgres"
	"github.com/RosaQuijije/FacturacionWeb/pkg/config"
)

// Test de integración: requiere TEST_DATABASE_URL apuntando a una base desechable.
func newStore(t *testing.T) *postgres.DraftStore {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	pool, err := postgres.NewPool(context.Background(), config.DBConfig{DatabaseURL: url})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return postgres.NewDraftStore(pool)
}

func TestDraftStore_CicloDeVida(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)
	owner := "test-" + uuid.NewString()

	d := &entity.Draft{
		ID:    uuid.NewString(),
		Owner: owner,
		Invoice: entity.Invoice{
			ClientID: 1, Date: now, Status: entity.InvoiceStatusActive, PaymentMethod: entity.PaymentCreditCard,
			Lines: []entity.InvoiceLine{
				{CatalogID: 3, Quantity: 2, DiscountPercent: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(100),
					TaxPercent: decimal.NewFromInt(15), DiscountAmount: decimal.NewFromInt(20), Subtotal: decimal.NewFromInt(180),
					TaxAmount: decimal.NewFromInt(27), LineTotal: decimal.NewFromInt(207)},
				{CatalogID: 4, Quantity: 1},
			},
		},
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, store.Create(ctx, d))
	assert.ErrorIs(t, store.Create(ctx, d), domain.ErrConflict)

	got, err := store.GetByID(ctx, d.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Invoice.Lines, 2)
	assert.Equal(t, int64(3), got.Invoice.Lines[0].CatalogID)
	assert.True(t, decimal.NewFromInt(207).Equal(got.Invoice.Lines[0].LineTotal))

	got.Invoice.Lines = got.Invoice.Lines[1:]
	got.Invoice.Comment = "editado"
	require.NoError(t, store.Update(ctx, got))

	list, err := store.ListByOwner(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "editado", list[0].Invoice.Comment)
	require.Len(t, list[0].Invoice.Lines, 1)
	assert.Equal(t, int64(4), list[0].Invoice.Lines[0].CatalogID)

	require.NoError(t, store.Delete(ctx, d.ID))
	assert.ErrorIs(t, store.Delete(ctx, d.ID), domain.ErrNotFound)
	missing, err := store.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

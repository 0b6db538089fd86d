package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RosaQuijije/FacturacionWeb/internal/domain"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/entity"
	"github.com/RosaQuijije/FacturacionWeb/internal/infrastructure/memory"
)

func TestBackend_AsignaIDsYListaOrdenado(t *testing.T) {
	ctx := context.Background()
	b := memory.NewBackend("x")

	a, err := b.Clients.Create(ctx, &entity.Client{ID: 99, FirstName: "Ana"})
	require.NoError(t, err)
	c, err := b.Clients.Create(ctx, &entity.Client{FirstName: "Carlos"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.ID, "el ID enviado se ignora")
	assert.Equal(t, int64(2), c.ID)

	list, err := b.Clients.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Ana", list[0].FirstName)
}

func TestBackend_GetInexistenteEsNilNil(t *testing.T) {
	b := memory.NewBackend("x")
	got, err := b.Catalogs.GetByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestBackend_UpdateYDeleteInexistente(t *testing.T) {
	ctx := context.Background()
	b := memory.NewBackend("x")
	_, err := b.Services.Update(ctx, &entity.RecurringService{ID: 3})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, b.Invoices.Delete(ctx, 3), domain.ErrNotFound)
}

func TestBackend_FacturaNoCompartenLineas(t *testing.T) {
	ctx := context.Background()
	b := memory.NewBackend("x")
	inv := &entity.Invoice{ClientID: 1, Lines: []entity.InvoiceLine{{CatalogID: 1, Quantity: 1}}}
	created, err := b.Invoices.Create(ctx, inv)
	require.NoError(t, err)

	inv.Lines[0].Quantity = 9
	got, _ := b.Invoices.GetByID(ctx, created.ID)
	assert.Equal(t, 1, got.Lines[0].Quantity)
}

func TestAuthGateway_Memoria(t *testing.T) {
	b := memory.NewBackend("clave")
	msg, err := b.Auth.Login(context.Background(), "rosa", "clave")
	require.NoError(t, err)
	assert.Equal(t, "Login exitoso", msg)

	msg, _ = b.Auth.Login(context.Background(), "rosa", "otra")
	assert.NotEqual(t, "Login exitoso", msg)
}

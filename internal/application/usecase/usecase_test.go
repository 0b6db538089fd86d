package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RosaQuijije/FacturacionWeb/internal/application/dto"
	"github.com/RosaQuijije/FacturacionWeb/internal/application/usecase"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/entity"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/validation"
	"github.com/RosaQuijije/FacturacionWeb/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

var hoy = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

func reloj() time.Time { return hoy }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr[T any](v T) *T { return &v }

func fieldOf(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	vErr, ok := validation.AsError(err)
	require.True(t, ok, "se esperaba *validation.Error, llegó %v", err)
	return vErr.Field
}

func clienteReq() dto.ClientRequest {
	return dto.ClientRequest{
		FirstName: "Rosa", LastName: "Quijije", Address: "Manta", Email: "rosa@example.com",
		Phone: "0991234567", IDType: entity.IDTypeCedula, IDNumber: "1312345678",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Clientes
// ──────────────────────────────────────────────────────────────────────────────

func TestClientUseCase_CrearYListarActivos(t *testing.T) {
	ctx := context.Background()
	b := memory.NewBackend("x")
	uc := usecase.NewClientUseCase(b.Clients)

	created, err := uc.Create(ctx, clienteReq())
	require.NoError(t, err)
	assert.Equal(t, entity.StatusActive, created.Status)
	assert.Equal(t, "Rosa Quijije", created.FullName)

	inactivo := clienteReq()
	inactivo.Status = entity.StatusInactive
	_, err = uc.Create(ctx, inactivo)
	require.NoError(t, err)

	all, err := uc.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	active, err := uc.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestClientUseCase_EmailInvalidoNoLlegaAlBackend(t *testing.T) {
	ctx := context.Background()
	b := memory.NewBackend("x")
	uc := usecase.NewClientUseCase(b.Clients)

	in := clienteReq()
	in.Email = "rosa@"
	_, err := uc.Create(ctx, in)
	assert.Equal(t, "email", fieldOf(t, err))

	list, _ := b.Clients.List(ctx)
	assert.Empty(t, list)
}

func TestClientUseCase_UpdateYGetInexistente(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewClientUseCase(memory.NewBackend("x").Clients)

	_, err := uc.Update(ctx, 5, clienteReq())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Get(ctx, 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	created, err := uc.Create(ctx, clienteReq())
	require.NoError(t, err)
	in := clienteReq()
	in.Phone = "022345678"
	updated, err := uc.Update(ctx, created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "022345678", updated.Phone)
	assert.Equal(t, created.ID, updated.ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestCatalogUseCase_FiltrosActivoYTipo(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewCatalogUseCase(memory.NewBackend("x").Catalogs)

	_, err := uc.Create(ctx, dto.CatalogRequest{Name: "Router", UnitPrice: dec("50"), Quantity: 3, TaxPercent: dec("15"), Kind: entity.CatalogKindProduct})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CatalogRequest{Name: "Internet", UnitPrice: dec("25"), Quantity: 1, TaxPercent: dec("15"), Kind: entity.CatalogKindService})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CatalogRequest{Name: "TV", UnitPrice: dec("10"), Quantity: 1, TaxPercent: dec("0"), Kind: entity.CatalogKindService, Status: entity.StatusInactive})
	require.NoError(t, err)

	services, err := uc.List(ctx, dto.CatalogFilter{ActiveOnly: true, Kind: entity.CatalogKindService})
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "Internet", services[0].Name)

	all, err := uc.List(ctx, dto.CatalogFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestCatalogUseCase_ServicioConCantidadDistintaDeUno(t *testing.T) {
	uc := usecase.NewCatalogUseCase(memory.NewBackend("x").Catalogs)
	_, err := uc.Create(context.Background(), dto.CatalogRequest{Name: "Internet", UnitPrice: dec("25"), Quantity: 2, TaxPercent: dec("15"), Kind: entity.CatalogKindService})
	assert.Equal(t, "cantidad", fieldOf(t, err))
}

func TestCatalogUseCase_IVANoAdmitido(t *testing.T) {
	uc := usecase.NewCatalogUseCase(memory.NewBackend("x").Catalogs)
	_, err := uc.Create(context.Background(), dto.CatalogRequest{Name: "Router", UnitPrice: dec("25"), Quantity: 2, TaxPercent: dec("12"), Kind: entity.CatalogKindProduct})
	assert.Equal(t, "impuesto", fieldOf(t, err))
}

// ──────────────────────────────────────────────────────────────────────────────
// Servicios recurrentes
// ──────────────────────────────────────────────────────────────────────────────

func nuevoServicio(t *testing.T, b *memory.Backend) (*usecase.ServiceUseCase, int64) {
	t.Helper()
	entry, err := b.Catalogs.Create(context.Background(), &entity.CatalogEntry{
		Name: "Internet", UnitPrice: dec("100"), Quantity: 1, TaxPercent: dec("15"),
		Kind: entity.CatalogKindService, Status: entity.StatusActive,
	})
	require.NoError(t, err)
	return usecase.NewServiceUseCase(b.Services, b.Catalogs, reloj), entry.ID
}

func TestServiceUseCase_CreateCalculaMontos(t *testing.T) {
	b := memory.NewBackend("x")
	uc, catalogID := nuevoServicio(t, b)

	out, err := uc.Create(context.Background(), dto.ServiceRequest{
		ClientID: ptr(int64(1)), CatalogID: ptr(catalogID),
		From: ptr("2024-01-01"), To: ptr("2024-12-31"),
		DiscountPercent: ptr(dec("10")),
	})
	require.NoError(t, err)
	assert.True(t, dec("100").Equal(out.UnitPrice))
	assert.True(t, dec("10").Equal(out.DiscountAmount))
	assert.True(t, dec("90").Equal(out.Subtotal))
	assert.True(t, dec("13.5").Equal(out.TaxAmount))
	assert.True(t, dec("103.5").Equal(out.Total))
	assert.Equal(t, entity.StatusActive, out.Status)
	assert.True(t, out.Billable)
	assert.Equal(t, "2024-01-01", out.From)
}

func TestServiceUseCase_PeriodoMenorAUnMes(t *testing.T) {
	b := memory.NewBackend("x")
	uc, catalogID := nuevoServicio(t, b)

	_, err := uc.Create(context.Background(), dto.ServiceRequest{
		ClientID: ptr(int64(1)), CatalogID: ptr(catalogID),
		From: ptr("2024-01-01"), To: ptr("2024-01-31"),
	})
	assert.Equal(t, "fechaHasta", fieldOf(t, err))
}

func TestServiceUseCase_CatalogoInexistenteOInactivo(t *testing.T) {
	b := memory.NewBackend("x")
	uc, _ := nuevoServicio(t, b)

	_, err := uc.Create(context.Background(), dto.ServiceRequest{
		ClientID: ptr(int64(1)), CatalogID: ptr(int64(999)),
		From: ptr("2024-01-01"), To: ptr("2024-12-31"),
	})
	assert.Equal(t, "idCatalogo", fieldOf(t, err))
}

func TestServiceUseCase_UpdateConservaUltimaFacturacion(t *testing.T) {
	ctx := context.Background()
	b := memory.NewBackend("x")
	uc, catalogID := nuevoServicio(t, b)

	billed := hoy.AddDate(0, 0, -2)
	existing, err := b.Services.Create(ctx, &entity.RecurringService{
		ClientID: 1, CatalogID: catalogID, Status: entity.StatusActive,
		From: hoy.AddDate(0, -2, 0), To: hoy.AddDate(0, 6, 0), LastBilledAt: &billed,
	})
	require.NoError(t, err)

	out, err := uc.Update(ctx, existing.ID, dto.ServiceRequest{
		ClientID: ptr(int64(1)), CatalogID: ptr(catalogID),
		From: ptr("2024-01-01"), To: ptr("2024-12-31"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.LastBilledAt)
	assert.False(t, out.Billable, "ya se facturó este mes")
}

func TestServiceUseCase_ListOrdenDescendente(t *testing.T) {
	ctx := context.Background()
	b := memory.NewBackend("x")
	uc, catalogID := nuevoServicio(t, b)
	for i := 0; i < 3; i++ {
		_, err := b.Services.Create(ctx, &entity.RecurringService{ClientID: 1, CatalogID: catalogID})
		require.NoError(t, err)
	}

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, int64(3), list[0].ID)
	assert.Equal(t, int64(1), list[2].ID)
}

package backend_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RosaQuijije/FacturacionWeb/internal/domain"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/entity"
	"github.com/RosaQuijije/FacturacionWeb/internal/infrastructure/backend"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

// newServer levanta un backend falso que responde body con status para cualquier ruta
// y registra el último request recibido.
func newServer(t *testing.T, status int, body string) (*backend.Client, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.Method = r.Method
		captured.Path = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		captured.Body = raw
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return backend.NewClient(srv.URL+"/", 2*time.Second), captured
}

type capturedRequest struct {
	Method string
	Path   string
	Body   []byte
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Listados
// ──────────────────────────────────────────────────────────────────────────────

func TestClientRepo_List_FormatoHAL(t *testing.T) {
	c, req := newServer(t, http.StatusOK, `{"_embedded":{"clients":[
		{"idCliente":1,"nombre":"Ana","apellido":"Pérez","direccion":"Av. 1","email":"ana@x.com",
		 "telefono":"0991234567","estado":"A","tipoIdentificacion":"C","numIdentificacion":"0102030405"}]},
		"_links":{"self":{"href":"/clients"}}}`)

	list, err := backend.NewClientRepo(c).List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "/clients", req.Path)
	assert.Equal(t, int64(1), list[0].ID)
	assert.Equal(t, "Ana Pérez", list[0].FullName())
	assert.Equal(t, entity.IDTypeCedula, list[0].IDType)
}

func TestClientRepo_List_SinEmbeddedDevuelveVacio(t *testing.T) {
	c, _ := newServer(t, http.StatusOK, `{"_links":{}}`)

	list, err := backend.NewClientRepo(c).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestInvoiceRepo_List_ArregloSimple(t *testing.T) {
	c, _ := newServer(t, http.StatusOK, `[{"idFactura":7,"fecha":"2024-03-05T10:15:00","idCliente":1,
		"estado":"A","formaPago":"TC","comentario":"",
		"detalles":[{"idDetalle":1,"idCatalogo":3,"cantidad":2,"precioUnitario":100,"porcentajeIva":15,
		"porcentajeDescuento":10,"valorIva":27,"valorDescuento":20,"subtotalLinea":180,"totalLinea":207}]}]`)

	list, err := backend.NewInvoiceRepo(c).List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	inv := list[0]
	assert.Equal(t, int64(7), inv.ID)
	assert.Equal(t, 2024, inv.Date.Year())
	require.Len(t, inv.Lines, 1)
	assert.True(t, d("207").Equal(inv.Lines[0].LineTotal))
	assert.True(t, d("27").Equal(inv.Lines[0].TaxAmount))
}

func TestCatalogRepo_List_DecimalesYNull(t *testing.T) {
	c, _ := newServer(t, http.StatusOK, `{"_embedded":{"catalogs":[
		{"idCatalogo":2,"nombre":"Hosting","precio":12.5,"cantidad":1,"impuesto":null,"tipo":"S","estado":"A"}]}}`)

	list, err := backend.NewCatalogRepo(c).List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, d("12.5").Equal(list[0].UnitPrice))
	assert.True(t, list[0].TaxPercent.IsZero())
	assert.True(t, list[0].IsService())
}

// ──────────────────────────────────────────────────────────────────────────────
// GetByID y errores
// ──────────────────────────────────────────────────────────────────────────────

func TestGetByID_404DevuelveNilNil(t *testing.T) {
	c, _ := newServer(t, http.StatusNotFound, `{"error":"not found"}`)

	cl, err := backend.NewClientRepo(c).GetByID(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, cl)
}

func TestDelete_404EsErrNotFound(t *testing.T) {
	c, _ := newServer(t, http.StatusNotFound, ``)

	err := backend.NewCatalogRepo(c).Delete(context.Background(), 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_500EsErrBackendConStatusError(t *testing.T) {
	c, _ := newServer(t, http.StatusInternalServerError, `boom`)

	_, err := backend.NewClientRepo(c).Create(context.Background(), &entity.Client{FirstName: "Ana"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBackend)

	var se *backend.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.Status)
	assert.Equal(t, "boom", se.Body)
}

func TestBackendCaido_EsErrBackend(t *testing.T) {
	c := backend.NewClient("http://127.0.0.1:1", time.Second)

	_, err := backend.NewServiceRepo(c).List(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBackend)
}

// ──────────────────────────────────────────────────────────────────────────────
// Serialización de escritura
// ──────────────────────────────────────────────────────────────────────────────

func TestInvoiceRepo_Create_EnviaNumerosSinComillas(t *testing.T) {
	c, req := newServer(t, http.StatusCreated, `{"idFactura":10,"fecha":"2024-03-05","idCliente":1,"estado":"A","formaPago":"SUSF","detalles":[]}`)

	inv := &entity.Invoice{
		ID: 123, ClientID: 1, Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		Status: entity.InvoiceStatusActive, PaymentMethod: entity.PaymentNoFinancialSystem,
		Lines: []entity.InvoiceLine{
			{CatalogID: 3, Quantity: 2, UnitPrice: d("100"), TaxPercent: d("15"),
				DiscountPercent: d("10"), DiscountAmount: d("20"), Subtotal: d("180"), TaxAmount: d("27"), LineTotal: d("207")},
			{CatalogID: 4, Quantity: 3, UnitPrice: d("19.99"), TaxPercent: d("15"), DiscountPercent: d("12.5"),
				DiscountAmount: d("7.49625"), Subtotal: d("52.47375"), TaxAmount: d("7.8710625"), LineTotal: d("60.3448125")},
		},
	}
	created, err := backend.NewInvoiceRepo(c).Create(context.Background(), inv)
	require.NoError(t, err)
	assert.Equal(t, int64(10), created.ID)
	assert.Equal(t, http.MethodPost, req.Method)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(req.Body, &sent))
	_, hasID := sent["idFactura"]
	assert.False(t, hasID, "el backend asigna el ID")
	lines := sent["detalles"].([]any)
	line := lines[0].(map[string]any)
	assert.Equal(t, float64(207), line["totalLinea"])
	assert.Equal(t, "2024-03-05T00:00:00Z", sent["fecha"])

	// Montos calculados viajan con 2 decimales; precio y porcentajes tal cual.
	assert.Contains(t, string(req.Body), `"valorDescuento":7.5,`)
	assert.Contains(t, string(req.Body), `"subtotalLinea":52.47,`)
	assert.Contains(t, string(req.Body), `"valorIva":7.87,`)
	assert.Contains(t, string(req.Body), `"totalLinea":60.34`)
	assert.Contains(t, string(req.Body), `"precioUnitario":19.99,`)
	assert.Contains(t, string(req.Body), `"porcentajeDescuento":12.5,`)
}

func TestServiceRepo_Create_RedondeaMontos(t *testing.T) {
	c, req := newServer(t, http.StatusCreated, `{"idServicio":9,"fechaDesde":"2024-01-01","fechaHasta":"2024-12-31"}`)

	svc := &entity.RecurringService{
		ClientID: 1, CatalogID: 2, Status: entity.StatusActive,
		From:            time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		To:              time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		UnitPrice:       d("19.99"),
		TaxPercent:      d("15"),
		DiscountPercent: d("12.5"),
		DiscountAmount:  d("2.49875"),
		Subtotal:        d("17.49125"),
		TaxAmount:       d("2.6236875"),
		Total:           d("20.1149375"),
	}
	_, err := backend.NewServiceRepo(c).Create(context.Background(), svc)
	require.NoError(t, err)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(req.Body, &sent))
	assert.Equal(t, 2.5, sent["valorDescuento"])
	assert.Equal(t, 17.49, sent["subtotal"])
	assert.Equal(t, 2.62, sent["valorIva"])
	assert.Equal(t, 20.11, sent["total"])
	assert.Equal(t, 19.99, sent["precioUnitario"])
}

func TestServiceRepo_Update_FechasComoDia(t *testing.T) {
	c, req := newServer(t, http.StatusOK, `{}`)

	billed := time.Date(2024, 4, 2, 9, 0, 0, 0, time.UTC)
	svc := &entity.RecurringService{
		ID: 4, ClientID: 1, CatalogID: 2,
		From:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		To:           time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		Status:       entity.StatusActive,
		LastBilledAt: &billed,
	}
	out, err := backend.NewServiceRepo(c).Update(context.Background(), svc)
	require.NoError(t, err)
	assert.Same(t, svc, out, "respuesta vacía conserva la entidad enviada")
	assert.Equal(t, "/services/4", req.Path)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(req.Body, &sent))
	assert.Equal(t, "2024-01-01", sent["fechaDesde"])
	assert.Equal(t, "2024-12-31", sent["fechaHasta"])
	assert.Equal(t, "2024-04-02T09:00:00Z", sent["fechaFacturacion"])
}

func TestServiceRepo_GetByID_FechaFacturacion(t *testing.T) {
	c, _ := newServer(t, http.StatusOK, `{"idServicio":4,"idCliente":1,"idCatalogo":2,"fechaDesde":"2024-01-01",
		"fechaHasta":"2024-12-31","estado":"A","porcentajeIva":15,"porcentajeDescuento":0,"precioUnitario":10,
		"valorIva":1.5,"valorDescuento":0,"subtotal":10,"total":11.5,"fechaFacturacion":"2024-04-02T09:00:00.000"}`)

	svc, err := backend.NewServiceRepo(c).GetByID(context.Background(), 4)
	require.NoError(t, err)
	require.NotNil(t, svc)
	require.NotNil(t, svc.LastBilledAt)
	assert.Equal(t, time.April, svc.LastBilledAt.Month())
	assert.True(t, d("11.5").Equal(svc.Total))
}

func TestServiceRepo_GetByID_FechaInvalida(t *testing.T) {
	c, _ := newServer(t, http.StatusOK, `{"idServicio":4,"fechaDesde":"ayer"}`)

	_, err := backend.NewServiceRepo(c).GetByID(context.Background(), 4)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBackend)
}

func TestRespuestaIlegible_EsErrBackend(t *testing.T) {
	c, _ := newServer(t, http.StatusOK, `{"idCliente":"no-es-numero"`)

	_, err := backend.NewClientRepo(c).GetByID(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBackend)

	c, _ = newServer(t, http.StatusOK, `{"_embedded":`)
	_, err = backend.NewCatalogRepo(c).List(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBackend)
}

func TestStatusError_RecortaSinPartirCaracteres(t *testing.T) {
	c, _ := newServer(t, http.StatusBadRequest, "a"+strings.Repeat("ñ", 200))

	_, err := backend.NewClientRepo(c).Create(context.Background(), &entity.Client{FirstName: "Ana"})
	var se *backend.StatusError
	require.ErrorAs(t, err, &se)
	assert.True(t, utf8.ValidString(se.Body), "cuerpo recortado con UTF-8 válido")
	assert.True(t, strings.HasSuffix(se.Body, "ñ…"))
	assert.LessOrEqual(t, len(se.Body), 300+len("…"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthGateway_Login(t *testing.T) {
	c, req := newServer(t, http.StatusOK, `{"mensaje":"Login exitoso"}`)

	msg, err := backend.NewAuthGateway(c).Login(context.Background(), "rosa", "secreto")
	require.NoError(t, err)
	assert.Equal(t, "Login exitoso", msg)
	assert.Equal(t, "/users/login", req.Path)
	assert.JSONEq(t, `{"nombreUsuario":"rosa","claveUsuario":"secreto"}`, string(req.Body))
}

func TestAuthGateway_Login_401EsNoAutorizado(t *testing.T) {
	c, _ := newServer(t, http.StatusUnauthorized, `{"mensaje":"Credenciales inválidas"}`)

	_, err := backend.NewAuthGateway(c).Login(context.Background(), "rosa", "mala")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

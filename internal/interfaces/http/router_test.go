package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RosaQuijije/FacturacionWeb/internal/application/analytics"
	"github.com/RosaQuijije/FacturacionWeb/internal/application/auth"
	"github.com/RosaQuijije/FacturacionWeb/internal/application/billing"
	"github.com/RosaQuijije/FacturacionWeb/internal/application/dto"
	"github.com/RosaQuijije/FacturacionWeb/internal/application/usecase"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/entity"
	"github.com/RosaQuijije/FacturacionWeb/internal/infrastructure/backend"
	"github.com/RosaQuijije/FacturacionWeb/internal/infrastructure/memory"
	apphttp "github.com/RosaQuijije/FacturacionWeb/internal/interfaces/http"
	pkgjwt "github.com/RosaQuijije/FacturacionWeb/pkg/jwt"
	"github.com/RosaQuijije/FacturacionWeb/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUsername  = "rosa"
	testIssuer    = "facturacion-web-test"
	testExpMin    = 60
	testPassword  = "clave123"
)

type fakePDF struct{}

func (fakePDF) GenerateInvoicePDF(context.Context, billing.InvoicePDFData) ([]byte, error) {
	return []byte("%PDF-1.3 test"), nil
}

// buildTestApp arma la API completa sobre el backend en memoria.
func buildTestApp(t *testing.T) (*fiber.App, *memory.Backend) {
	t.Helper()
	b := memory.NewBackend(testPassword)
	drafts := memory.NewDraftRepository()

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      auth.NewAuthUseCase(b.Auth, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		ClientUC:    usecase.NewClientUseCase(b.Clients),
		CatalogUC:   usecase.NewCatalogUseCase(b.Catalogs),
		ServiceUC:   usecase.NewServiceUseCase(b.Services, b.Catalogs, nil),
		RecurringUC: billing.NewRecurringUseCase(b.Services, b.Invoices, nil, nil),
		InvoiceUC:   billing.NewInvoiceUseCase(b.Invoices, b.Clients, b.Catalogs),
		DraftUC:     billing.NewDraftUseCase(drafts, b.Catalogs, b.Clients, b.Invoices, nil, nil),
		PDFUC:       billing.NewPDFUseCase(b.Invoices, b.Clients, b.Catalogs, fakePDF{}),
		DashboardUC: analytics.NewDashboardUseCase(b.Invoices, b.Clients, b.Services, nil),
		JWTSecret:   testJWTSecret,
	})
	return app, b
}

func bearer(t *testing.T, username string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, username, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// call lanza una petición con body JSON opcional y devuelve status y cuerpo.
func call(t *testing.T, app *fiber.App, method, path, authHeader string, body any) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field"`
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	app, _ := buildTestApp(t)
	status, body := call(t, app, http.MethodGet, "/api/clients", "", nil)

	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_TOKEN", decode[errorBody](t, body).Code)
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app, _ := buildTestApp(t)
	status, body := call(t, app, http.MethodGet, "/api/clients", "Bearer token.invalido.aqui", nil)

	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_TOKEN", decode[errorBody](t, body).Code)
}

func TestAuthMiddleware_FormatoIncorrecto_Retorna401(t *testing.T) {
	app, _ := buildTestApp(t)
	status, _ := call(t, app, http.MethodGet, "/api/clients", "Basic abc", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAuthMiddleware_TokenExpirado_Retorna401(t *testing.T) {
	app, _ := buildTestApp(t)
	tok, err := pkgjwt.Generate(testJWTSecret, testUsername, testIssuer, -1)
	require.NoError(t, err)

	status, _ := call(t, app, http.MethodGet, "/api/clients", "Bearer "+tok, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAuthMiddleware_ExtraeUsuario(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"username": apphttp.GetUsername(c)})
	})

	status, body := call(t, app, http.MethodGet, "/me", bearer(t, testUsername), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, testUsername, decode[map[string]string](t, body)["username"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_Exitoso_DevuelveTokenUsable(t *testing.T) {
	app, _ := buildTestApp(t)
	status, body := call(t, app, http.MethodPost, "/api/auth/login", "",
		map[string]string{"username": "rosa", "password": testPassword})
	require.Equal(t, http.StatusOK, status, string(body))

	out := decode[map[string]string](t, body)
	require.NotEmpty(t, out["token"])

	status, _ = call(t, app, http.MethodGet, "/api/clients", "Bearer "+out["token"], nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestLogin_ClaveIncorrecta_Retorna401(t *testing.T) {
	app, _ := buildTestApp(t)
	status, body := call(t, app, http.MethodPost, "/api/auth/login", "",
		map[string]string{"username": "rosa", "password": "otra"})

	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", decode[errorBody](t, body).Code)
}

func TestLogin_CamposVacios_Retorna400(t *testing.T) {
	app, _ := buildTestApp(t)
	status, _ := call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{"username": " "})
	assert.Equal(t, http.StatusBadRequest, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Clientes y catálogo
// ──────────────────────────────────────────────────────────────────────────────

func clienteValido() map[string]any {
	return map[string]any{
		"first_name": "Rosa", "last_name": "Quijije", "address": "Av. 9 de Octubre",
		"email": "rosa@example.com", "phone": "0991234567", "id_type": "C", "id_number": "0912345678",
	}
}

func TestClients_CrearYObtener(t *testing.T) {
	app, _ := buildTestApp(t)
	tok := bearer(t, testUsername)

	status, body := call(t, app, http.MethodPost, "/api/clients", tok, clienteValido())
	require.Equal(t, http.StatusCreated, status, string(body))
	created := decode[map[string]any](t, body)
	assert.Equal(t, "Rosa Quijije", created["full_name"])
	assert.Equal(t, "A", created["status"])

	status, _ = call(t, app, http.MethodGet, fmt.Sprintf("/api/clients/%v", created["id"]), tok, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestClients_ValidacionIndicaCampo(t *testing.T) {
	app, _ := buildTestApp(t)
	in := clienteValido()
	in["email"] = "no-es-correo"

	status, body := call(t, app, http.MethodPost, "/api/clients", bearer(t, testUsername), in)
	assert.Equal(t, http.StatusBadRequest, status)
	errBody := decode[errorBody](t, body)
	assert.Equal(t, "VALIDATION", errBody.Code)
	assert.Equal(t, "email", errBody.Field)
}

func TestClients_NoEncontradoEIDInvalido(t *testing.T) {
	app, _ := buildTestApp(t)
	tok := bearer(t, testUsername)

	status, body := call(t, app, http.MethodGet, "/api/clients/999", tok, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", decode[errorBody](t, body).Code)

	status, _ = call(t, app, http.MethodGet, "/api/clients/abc", tok, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestCatalogs_FiltroPorTipo(t *testing.T) {
	app, b := buildTestApp(t)
	ctx := context.Background()
	_, err := b.Catalogs.Create(ctx, &entity.CatalogEntry{Name: "Router", UnitPrice: decimal.NewFromInt(100),
		Quantity: 3, TaxPercent: decimal.NewFromInt(15), Kind: entity.CatalogKindProduct, Status: entity.StatusActive})
	require.NoError(t, err)
	_, err = b.Catalogs.Create(ctx, &entity.CatalogEntry{Name: "Internet", UnitPrice: decimal.NewFromInt(30),
		Quantity: 1, Kind: entity.CatalogKindService, Status: entity.StatusActive})
	require.NoError(t, err)

	status, body := call(t, app, http.MethodGet, "/api/catalogs?kind=s", bearer(t, testUsername), nil)
	require.Equal(t, http.StatusOK, status)
	list := decode[[]map[string]any](t, body)
	require.Len(t, list, 1)
	assert.Equal(t, "Internet", list[0]["name"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Borrador → factura → anulación → PDF
// ──────────────────────────────────────────────────────────────────────────────

func seed(t *testing.T, b *memory.Backend) (client *entity.Client, product *entity.CatalogEntry) {
	t.Helper()
	ctx := context.Background()
	client, err := b.Clients.Create(ctx, &entity.Client{FirstName: "Rosa", LastName: "Quijije", Status: entity.StatusActive})
	require.NoError(t, err)
	product, err = b.Catalogs.Create(ctx, &entity.CatalogEntry{Name: "Router", UnitPrice: decimal.NewFromInt(100),
		Quantity: 10, TaxPercent: decimal.NewFromInt(15), Kind: entity.CatalogKindProduct, Status: entity.StatusActive})
	require.NoError(t, err)
	return client, product
}

func TestDrafts_FlujoCompleto(t *testing.T) {
	app, b := buildTestApp(t)
	client, product := seed(t, b)
	tok := bearer(t, testUsername)

	status, body := call(t, app, http.MethodPost, "/api/drafts", tok, map[string]any{"client_id": client.ID})
	require.Equal(t, http.StatusCreated, status, string(body))
	draftID := decode[map[string]any](t, body)["id"].(string)

	status, body = call(t, app, http.MethodPost, "/api/drafts/"+draftID+"/lines", tok,
		map[string]any{"catalog_id": product.ID, "quantity": 2, "discount_percent": 10})
	require.Equal(t, http.StatusOK, status, string(body))
	draft := decode[map[string]any](t, body)
	totals := draft["totals"].(map[string]any)
	assert.Equal(t, "207", fmt.Sprint(totals["total"]))

	status, body = call(t, app, http.MethodPut, "/api/drafts/"+draftID+"/lines/0", tok,
		map[string]any{"quantity": 0})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "detalles[0].cantidad", decode[errorBody](t, body).Field)

	// otro usuario no ve el borrador
	status, _ = call(t, app, http.MethodGet, "/api/drafts/"+draftID, bearer(t, "otro"), nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body = call(t, app, http.MethodPost, "/api/drafts/"+draftID+"/submit", tok, nil)
	require.Equal(t, http.StatusCreated, status, string(body))
	invoiceID := decode[map[string]any](t, body)["id"]

	status, body = call(t, app, http.MethodGet, fmt.Sprintf("/api/invoices?client_id=%d", client.ID), tok, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]map[string]any](t, body), 1)

	voidPath := fmt.Sprintf("/api/invoices/%v/void", invoiceID)
	status, body = call(t, app, http.MethodPost, voidPath, tok, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Equal(t, "I", decode[map[string]any](t, body)["status"])

	status, body = call(t, app, http.MethodPost, voidPath, tok, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT", decode[errorBody](t, body).Code)
}

func TestDrafts_SubmitSinLineas_Retorna400(t *testing.T) {
	app, b := buildTestApp(t)
	client, _ := seed(t, b)
	tok := bearer(t, testUsername)

	_, body := call(t, app, http.MethodPost, "/api/drafts", tok, map[string]any{"client_id": client.ID})
	draftID := decode[map[string]any](t, body)["id"].(string)

	status, body := call(t, app, http.MethodPost, "/api/drafts/"+draftID+"/submit", tok, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "detalles", decode[errorBody](t, body).Field)
}

func TestInvoices_PDF(t *testing.T) {
	app, b := buildTestApp(t)
	client, _ := seed(t, b)
	inv, err := b.Invoices.Create(context.Background(), &entity.Invoice{ClientID: client.ID, Date: time.Now(),
		Status: entity.InvoiceStatusActive, PaymentMethod: entity.PaymentNoFinancialSystem})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/invoices/%d/pdf", inv.ID), nil)
	req.Header.Set("Authorization", bearer(t, testUsername))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "factura_000001.pdf")
}

// ──────────────────────────────────────────────────────────────────────────────
// Servicios recurrentes
// ──────────────────────────────────────────────────────────────────────────────

func TestServices_FacturarDosVecesEsConflicto(t *testing.T) {
	app, b := buildTestApp(t)
	client, _ := seed(t, b)
	now := time.Now()
	svc, err := b.Services.Create(context.Background(), &entity.RecurringService{
		ClientID: client.ID, CatalogID: 99, Status: entity.StatusActive,
		From: now.AddDate(0, -1, 0), To: now.AddDate(0, 1, 0),
		UnitPrice: decimal.NewFromInt(30), Subtotal: decimal.NewFromInt(30), Total: decimal.NewFromInt(30),
	})
	require.NoError(t, err)
	tok := bearer(t, testUsername)

	status, body := call(t, app, http.MethodGet, "/api/services/billable", tok, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]map[string]any](t, body), 1)

	path := fmt.Sprintf("/api/services/%d/invoice", svc.ID)
	status, body = call(t, app, http.MethodPost, path, tok, nil)
	require.Equal(t, http.StatusCreated, status, string(body))
	assert.NotZero(t, decode[map[string]any](t, body)["invoice_id"])

	status, body = call(t, app, http.MethodPost, path, tok, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, decode[errorBody](t, body).Message, "ya fue facturado este mes")

	status, body = call(t, app, http.MethodPost, "/api/services/bill-due", tok, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 0, decode[map[string]any](t, body)["billed"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Calculadora y dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestCalculator_Linea(t *testing.T) {
	app, _ := buildTestApp(t)
	status, body := call(t, app, http.MethodPost, "/api/calculator/line", bearer(t, testUsername),
		map[string]any{"unit_price": 100, "tax_percent": 15, "quantity": 2, "discount_percent": 10})
	require.Equal(t, http.StatusOK, status, string(body))

	out := decode[map[string]any](t, body)
	assert.Equal(t, "20", fmt.Sprint(out["discount_amount"]))
	assert.Equal(t, "207", fmt.Sprint(out["line_total"]))
}

func TestCalculator_DescuentoFueraDeRango(t *testing.T) {
	app, _ := buildTestApp(t)
	status, body := call(t, app, http.MethodPost, "/api/calculator/line", bearer(t, testUsername),
		map[string]any{"unit_price": 100, "tax_percent": 15, "quantity": 1, "discount_percent": 101})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "porcentajeDescuento", decode[errorBody](t, body).Field)
}

func TestDashboard_Resumen(t *testing.T) {
	app, _ := buildTestApp(t)
	status, body := call(t, app, http.MethodGet, "/api/dashboard/summary", bearer(t, testUsername), nil)
	require.Equal(t, http.StatusOK, status, string(body))
	assert.NotEmpty(t, decode[map[string]any](t, body)["month_label"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Fallos del backend
// ──────────────────────────────────────────────────────────────────────────────

func TestBackendError_MensajeFijoYRegistro(t *testing.T) {
	trace := `{"trace":"org.hibernate.exception.ConstraintViolationException: SQL [insert into cliente ...]"}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, trace)
	}))
	t.Cleanup(srv.Close)

	var logs bytes.Buffer
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ClientUC:  usecase.NewClientUseCase(backend.NewClientRepo(backend.NewClient(srv.URL, time.Second))),
		JWTSecret: testJWTSecret,
		Logger:    logger.New(logger.Config{Env: "test", Level: "info", Output: &logs}),
	})

	status, body := call(t, app, http.MethodGet, "/api/clients", bearer(t, testUsername), nil)
	assert.Equal(t, http.StatusBadGateway, status)
	e := decode[errorBody](t, body)
	assert.Equal(t, "BACKEND_ERROR", e.Code)
	assert.Equal(t, dto.MsgBackendUnavailable, e.Message)
	assert.NotContains(t, string(body), "hibernate", "el detalle del backend no llega al usuario")

	assert.Contains(t, logs.String(), "hibernate", "el error completo queda en el log")
	assert.Contains(t, logs.String(), "/api/clients")
}

// ──────────────────────────────────────────────────────────────────────────────
// Documentación
// ──────────────────────────────────────────────────────────────────────────────

var paramRe = regexp.MustCompile(`:(\w+)`)

func TestSwagger_DocumentaTodasLasRutas(t *testing.T) {
	raw, err := os.ReadFile("../../../docs/swagger.json")
	require.NoError(t, err)
	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))

	app, _ := buildTestApp(t)
	for _, r := range app.GetRoutes(true) {
		if r.Method == http.MethodHead || !strings.HasPrefix(r.Path, "/api/") {
			continue
		}
		path := paramRe.ReplaceAllString(strings.TrimSuffix(r.Path, "/"), "{$1}")
		ops, ok := doc.Paths[path]
		if !assert.True(t, ok, "ruta sin documentar: %s", path) {
			continue
		}
		_, ok = ops[strings.ToLower(r.Method)]
		assert.True(t, ok, "método sin documentar: %s %s", r.Method, path)
	}
}

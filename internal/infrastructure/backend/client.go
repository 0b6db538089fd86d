// Package backend adaptador REST hacia el backend de facturación (Spring Boot).
//
// Implementa los puertos de internal/domain/repository para clientes, catálogo, servicios,
// facturas y login. Las colecciones pueden llegar en formato HAL
// ({"_embedded": {"clients": [...]}}) o como arreglo simple; ambas formas se aceptan.
// No hay reintentos: un fallo se devuelve al caso de uso tal cual.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/RosaQuijije/FacturacionWeb/internal/domain"
)

const maxResponseBytes = 4 << 20

// StatusError respuesta no 2xx del backend.
type StatusError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend: %s %s: HTTP %d: %s", e.Method, e.Path, e.Status, e.Body)
}

// Unwrap traduce el código HTTP a un error de dominio.
func (e *StatusError) Unwrap() error {
	if e.Status == http.StatusNotFound {
		return domain.ErrNotFound
	}
	return domain.ErrBackend
}

// Client cliente HTTP del backend. Seguro para uso concurrente.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient construye el cliente. timeout <= 0 usa 15 s.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// BaseURL URL base configurada (sin barra final).
func (c *Client) BaseURL() string { return c.baseURL }

// do ejecuta la petición; si out no es nil decodifica el cuerpo JSON en él.
func (c *Client) do(ctx context.Context, method, path string, in any, out any) error {
	raw, err := c.doRaw(ctx, method, path, in)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("backend: decodificar %s %s: %w", method, path, errors.Join(domain.ErrBackend, err))
	}
	return nil
}

func (c *Client) doRaw(ctx context.Context, method, path string, in any) ([]byte, error) {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("backend: serializar request: %w", err)
		}
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("backend: crear HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("backend: timeout o cancelación: %w", errors.Join(domain.ErrBackend, ctx.Err()))
		}
		return nil, fmt.Errorf("backend: llamada HTTP fallida: %w", errors.Join(domain.ErrBackend, err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("backend: leer respuesta: %w", errors.Join(domain.ErrBackend, err))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			Method: method,
			Path:   path,
			Status: resp.StatusCode,
			Body:   truncate(strings.TrimSpace(string(raw)), 300),
		}
	}
	return raw, nil
}

// getList descarga una colección aceptando HAL o arreglo simple.
func (c *Client) getList(ctx context.Context, path, embeddedKey string, out any) error {
	raw, err := c.doRaw(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if err := decodeList(raw, embeddedKey, out); err != nil {
		return fmt.Errorf("backend: decodificar GET %s: %w", path, errors.Join(domain.ErrBackend, err))
	}
	return nil
}

// getOne GET por ID; found=false si el backend responde 404.
func (c *Client) getOne(ctx context.Context, path string, out any) (found bool, err error) {
	err = c.do(ctx, http.MethodGet, path, nil, out)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// decodeList acepta `[...]`, `{"_embedded": {"<key>": [...]}}` o un objeto sin _embedded (lista vacía).
func decodeList(raw []byte, key string, out any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return json.Unmarshal([]byte("[]"), out)
	}
	if trimmed[0] == '[' {
		return json.Unmarshal(trimmed, out)
	}
	var hal struct {
		Embedded map[string]json.RawMessage `json:"_embedded"`
	}
	if err := json.Unmarshal(trimmed, &hal); err != nil {
		return err
	}
	items, ok := hal.Embedded[key]
	if !ok {
		return json.Unmarshal([]byte("[]"), out)
	}
	return json.Unmarshal(items, out)
}

// truncate corta s a lo sumo n bytes sin partir un carácter UTF-8.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "…"
}

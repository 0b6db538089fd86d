package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/RosaQuijije/FacturacionWeb/internal/domain"
	calc "github.com/RosaQuijije/FacturacionWeb/internal/domain/billing"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/entity"
)

// number decimal que viaja como número JSON (sin comillas), como lo espera el backend.
type number struct{ decimal.Decimal }

func num(d decimal.Decimal) number { return number{d} }

// amount monto calculado: el backend guarda 2 decimales.
func amount(d decimal.Decimal) number { return number{calc.Round2(d)} }

func (n number) MarshalJSON() ([]byte, error) {
	return []byte(n.Decimal.String()), nil
}

func (n *number) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		n.Decimal = decimal.Zero
		return nil
	}
	return n.Decimal.UnmarshalJSON(b)
}

// Formatos de fecha que puede devolver el backend (LocalDate, LocalDateTime o ISO con zona).
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: fecha inválida: %q", domain.ErrBackend, s)
}

const dayLayout = "2006-01-02"

func formatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dayLayout)
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// ── Clientes ─────────────────────────────────────────────────────────────────

type clientDTO struct {
	IDCliente          int64  `json:"idCliente,omitempty"`
	Nombre             string `json:"nombre"`
	Apellido           string `json:"apellido"`
	Direccion          string `json:"direccion"`
	Email              string `json:"email"`
	Telefono           string `json:"telefono"`
	Estado             string `json:"estado"`
	TipoIdentificacion string `json:"tipoIdentificacion"`
	NumIdentificacion  string `json:"numIdentificacion"`
}

func clientToDTO(c *entity.Client) clientDTO {
	return clientDTO{
		IDCliente: c.ID, Nombre: c.FirstName, Apellido: c.LastName, Direccion: c.Address,
		Email: c.Email, Telefono: c.Phone, Estado: c.Status,
		TipoIdentificacion: c.IDType, NumIdentificacion: c.IDNumber,
	}
}

func (d clientDTO) toEntity() *entity.Client {
	return &entity.Client{
		ID: d.IDCliente, FirstName: d.Nombre, LastName: d.Apellido, Address: d.Direccion,
		Email: d.Email, Phone: d.Telefono, Status: d.Estado,
		IDType: d.TipoIdentificacion, IDNumber: d.NumIdentificacion,
	}
}

// ── Catálogo ─────────────────────────────────────────────────────────────────

type catalogDTO struct {
	IDCatalogo int64  `json:"idCatalogo,omitempty"`
	Nombre     string `json:"nombre"`
	Precio     number `json:"precio"`
	Cantidad   int    `json:"cantidad"`
	Impuesto   number `json:"impuesto"`
	Tipo       string `json:"tipo"`
	Estado     string `json:"estado"`
}

func catalogToDTO(c *entity.CatalogEntry) catalogDTO {
	return catalogDTO{
		IDCatalogo: c.ID, Nombre: c.Name, Precio: num(c.UnitPrice), Cantidad: c.Quantity,
		Impuesto: num(c.TaxPercent), Tipo: c.Kind, Estado: c.Status,
	}
}

func (d catalogDTO) toEntity() *entity.CatalogEntry {
	return &entity.CatalogEntry{
		ID: d.IDCatalogo, Name: d.Nombre, UnitPrice: d.Precio.Decimal, Quantity: d.Cantidad,
		TaxPercent: d.Impuesto.Decimal, Kind: d.Tipo, Status: d.Estado,
	}
}

// ── Servicios recurrentes ────────────────────────────────────────────────────

type serviceDTO struct {
	IDServicio          int64  `json:"idServicio,omitempty"`
	IDCliente           int64  `json:"idCliente"`
	IDCatalogo          int64  `json:"idCatalogo"`
	Fecha               string `json:"fecha,omitempty"`
	FechaDesde          string `json:"fechaDesde"`
	FechaHasta          string `json:"fechaHasta"`
	Estado              string `json:"estado"`
	PorcentajeIva       number `json:"porcentajeIva"`
	PorcentajeDescuento number `json:"porcentajeDescuento"`
	PrecioUnitario      number `json:"precioUnitario"`
	ValorIva            number `json:"valorIva"`
	ValorDescuento      number `json:"valorDescuento"`
	Subtotal            number `json:"subtotal"`
	Total               number `json:"total"`
	FechaFacturacion    string `json:"fechaFacturacion,omitempty"`
}

func serviceToDTO(s *entity.RecurringService) serviceDTO {
	d := serviceDTO{
		IDServicio: s.ID, IDCliente: s.ClientID, IDCatalogo: s.CatalogID,
		Fecha: formatTimestamp(s.Date), FechaDesde: formatDay(s.From), FechaHasta: formatDay(s.To),
		Estado:              s.Status,
		PorcentajeIva:       num(s.TaxPercent),
		PorcentajeDescuento: num(s.DiscountPercent),
		PrecioUnitario:      num(s.UnitPrice),
		ValorIva:            amount(s.TaxAmount),
		ValorDescuento:      amount(s.DiscountAmount),
		Subtotal:            amount(s.Subtotal),
		Total:               amount(s.Total),
	}
	if s.LastBilledAt != nil {
		d.FechaFacturacion = formatTimestamp(*s.LastBilledAt)
	}
	return d
}

func (d serviceDTO) toEntity() (*entity.RecurringService, error) {
	s := &entity.RecurringService{
		ID: d.IDServicio, ClientID: d.IDCliente, CatalogID: d.IDCatalogo, Status: d.Estado,
		TaxPercent:      d.PorcentajeIva.Decimal,
		DiscountPercent: d.PorcentajeDescuento.Decimal,
		UnitPrice:       d.PrecioUnitario.Decimal,
		TaxAmount:       d.ValorIva.Decimal,
		DiscountAmount:  d.ValorDescuento.Decimal,
		Subtotal:        d.Subtotal.Decimal,
		Total:           d.Total.Decimal,
	}
	var err error
	if s.Date, err = parseDate(d.Fecha); err != nil {
		return nil, fmt.Errorf("servicio %d: %w", d.IDServicio, err)
	}
	if s.From, err = parseDate(d.FechaDesde); err != nil {
		return nil, fmt.Errorf("servicio %d: %w", d.IDServicio, err)
	}
	if s.To, err = parseDate(d.FechaHasta); err != nil {
		return nil, fmt.Errorf("servicio %d: %w", d.IDServicio, err)
	}
	if d.FechaFacturacion != "" {
		billed, err := parseDate(d.FechaFacturacion)
		if err != nil {
			return nil, fmt.Errorf("servicio %d: %w", d.IDServicio, err)
		}
		s.LastBilledAt = &billed
	}
	return s, nil
}

// ── Facturas ─────────────────────────────────────────────────────────────────

type invoiceLineDTO struct {
	IDDetalle           int64  `json:"idDetalle,omitempty"`
	IDCatalogo          int64  `json:"idCatalogo"`
	Cantidad            int    `json:"cantidad"`
	PrecioUnitario      number `json:"precioUnitario"`
	PorcentajeIva       number `json:"porcentajeIva"`
	PorcentajeDescuento number `json:"porcentajeDescuento"`
	ValorIva            number `json:"valorIva"`
	ValorDescuento      number `json:"valorDescuento"`
	SubtotalLinea       number `json:"subtotalLinea"`
	TotalLinea          number `json:"totalLinea"`
}

type invoiceDTO struct {
	IDFactura  int64            `json:"idFactura,omitempty"`
	Fecha      string           `json:"fecha"`
	IDCliente  int64            `json:"idCliente"`
	Estado     string           `json:"estado"`
	FormaPago  string           `json:"formaPago"`
	Comentario string           `json:"comentario"`
	Detalles   []invoiceLineDTO `json:"detalles"`
}

func invoiceToDTO(inv *entity.Invoice) invoiceDTO {
	d := invoiceDTO{
		IDFactura: inv.ID, Fecha: formatTimestamp(inv.Date), IDCliente: inv.ClientID,
		Estado: inv.Status, FormaPago: inv.PaymentMethod, Comentario: inv.Comment,
		Detalles: make([]invoiceLineDTO, 0, len(inv.Lines)),
	}
	for _, l := range inv.Lines {
		d.Detalles = append(d.Detalles, invoiceLineDTO{
			IDDetalle:           l.ID,
			IDCatalogo:          l.CatalogID,
			Cantidad:            l.Quantity,
			PrecioUnitario:      num(l.UnitPrice),
			PorcentajeIva:       num(l.TaxPercent),
			PorcentajeDescuento: num(l.DiscountPercent),
			ValorIva:            amount(l.TaxAmount),
			ValorDescuento:      amount(l.DiscountAmount),
			SubtotalLinea:       amount(l.Subtotal),
			TotalLinea:          amount(l.LineTotal),
		})
	}
	return d
}

func (d invoiceDTO) toEntity() (*entity.Invoice, error) {
	date, err := parseDate(d.Fecha)
	if err != nil {
		return nil, fmt.Errorf("factura %d: %w", d.IDFactura, err)
	}
	inv := &entity.Invoice{
		ID: d.IDFactura, ClientID: d.IDCliente, Date: date, Status: d.Estado,
		PaymentMethod: d.FormaPago, Comment: d.Comentario,
		Lines: make([]entity.InvoiceLine, 0, len(d.Detalles)),
	}
	for _, l := range d.Detalles {
		inv.Lines = append(inv.Lines, entity.InvoiceLine{
			ID:              l.IDDetalle,
			CatalogID:       l.IDCatalogo,
			Quantity:        l.Cantidad,
			DiscountPercent: l.PorcentajeDescuento.Decimal,
			UnitPrice:       l.PrecioUnitario.Decimal,
			TaxPercent:      l.PorcentajeIva.Decimal,
			DiscountAmount:  l.ValorDescuento.Decimal,
			Subtotal:        l.SubtotalLinea.Decimal,
			TaxAmount:       l.ValorIva.Decimal,
			LineTotal:       l.TotalLinea.Decimal,
		})
	}
	return inv, nil
}

// ── Login ────────────────────────────────────────────────────────────────────

type loginRequest struct {
	NombreUsuario string `json:"nombreUsuario"`
	ClaveUsuario  string `json:"claveUsuario"`
}

type loginResponse struct {
	Mensaje string `json:"mensaje"`
}

var _ json.Marshaler = number{}

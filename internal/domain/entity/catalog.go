package entity

import "github.com/shopspring/decimal"

// Tipo de ítem del catálogo (códigos del backend).
const (
	CatalogKindProduct = "P"
	CatalogKindService = "S"
)

// Estados compartidos por clientes, catálogo y servicios recurrentes.
const (
	StatusActive   = "A"
	StatusInactive = "I"
)

// CatalogEntry producto o servicio vendible. Es de solo lectura para el cálculo de facturas.
type CatalogEntry struct {
	ID         int64
	Name       string
	UnitPrice  decimal.Decimal
	Quantity   int             // existencias; para servicios siempre 1
	TaxPercent decimal.Decimal // IVA: 0 o 15
	Kind       string          // P | S
	Status     string          // A | I
}

// IsService indica si el ítem es un servicio (cantidad fija en 1).
func (c *CatalogEntry) IsService() bool {
	return c != nil && c.Kind == CatalogKindService
}

// IsActive indica si el ítem puede seleccionarse en nuevas líneas.
func (c *CatalogEntry) IsActive() bool {
	return c != nil && c.Status == StatusActive
}

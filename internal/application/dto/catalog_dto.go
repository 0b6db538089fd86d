package dto

import "github.com/shopspring/decimal"

// CatalogRequest body para POST/PUT /api/catalogs.
type CatalogRequest struct {
	Name       string          `json:"name"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Quantity   int             `json:"quantity"`
	TaxPercent decimal.Decimal `json:"tax_percent"`
	Kind       string          `json:"kind"` // P | S
	Status     string          `json:"status,omitempty"`
}

// CatalogResponse ítem del catálogo en respuestas.
type CatalogResponse struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Quantity   int             `json:"quantity"`
	TaxPercent decimal.Decimal `json:"tax_percent"`
	Kind       string          `json:"kind"`
	Status     string          `json:"status"`
}

// CatalogFilter filtros de GET /api/catalogs.
type CatalogFilter struct {
	ActiveOnly bool
	Kind       string // vacío = todos
}

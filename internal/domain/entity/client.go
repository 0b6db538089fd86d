package entity

import "strings"

// Tipos de identificación aceptados por el backend.
const (
	IDTypeCedula   = "C"
	IDTypeRUC      = "R"
	IDTypePassport = "P"
)

// Client cliente al que se factura.
type Client struct {
	ID        int64
	FirstName string
	LastName  string
	Address   string
	Email     string
	Phone     string
	Status    string // A | I
	IDType    string // C | R | P
	IDNumber  string
}

// FullName nombre y apellido separados por espacio.
func (c *Client) FullName() string {
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// IsActive indica si el cliente puede seleccionarse en nuevas facturas.
func (c *Client) IsActive() bool {
	return c != nil && c.Status == StatusActive
}

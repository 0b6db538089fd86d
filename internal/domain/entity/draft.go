package entity

import "time"

// Draft factura en edición, aún no enviada al backend. Owner es el usuario de la sesión.
type Draft struct {
	ID        string
	Owner     string
	Invoice   Invoice
	CreatedAt time.Time
	UpdatedAt time.Time
}

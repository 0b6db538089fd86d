// Package validation reglas de formulario para clientes, catálogo y servicios recurrentes.
// Cada validador devuelve solo el primer error encontrado, en el orden en que se revisan los campos.
package validation

import (
	"errors"
	"strings"

	"github.com/RosaQuijije/FacturacionWeb/internal/domain"
)

// Error falla de validación local sobre un campo. Envuelve domain.ErrInvalidInput.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Unwrap permite errors.Is(err, domain.ErrInvalidInput).
func (e *Error) Unwrap() error { return domain.ErrInvalidInput }

// Fail construye un *Error.
func Fail(field, message string) error {
	return &Error{Field: field, Message: message}
}

// AsError extrae el *Error de una cadena de errores.
func AsError(err error) (*Error, bool) {
	var vErr *Error
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

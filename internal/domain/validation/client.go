package validation

import (
	"regexp"

	"github.com/RosaQuijije/FacturacionWeb/internal/domain/entity"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^[0-9]{7,15}$`)
)

// ValidEmail formato básico usuario@dominio.tld.
func ValidEmail(s string) bool { return emailRe.MatchString(s) }

// ValidPhone solo dígitos, entre 7 y 15.
func ValidPhone(s string) bool { return phoneRe.MatchString(s) }

// ValidateClient exige todos los campos del formulario de cliente, email y teléfono válidos
// y un tipo de identificación conocido. Un estado vacío se toma como activo.
func ValidateClient(c *entity.Client) error {
	if c == nil {
		return Fail("", "cliente requerido")
	}
	if blank(c.IDType) || blank(c.IDNumber) || blank(c.FirstName) || blank(c.LastName) ||
		blank(c.Email) || blank(c.Phone) || blank(c.Address) {
		return Fail("", "Todos los campos son obligatorios")
	}
	switch c.IDType {
	case entity.IDTypeCedula, entity.IDTypeRUC, entity.IDTypePassport:
	default:
		return Fail("tipoIdentificacion", "tipo de identificación inválido (C, R o P)")
	}
	if !ValidEmail(c.Email) {
		return Fail("email", "Ingrese un correo electrónico válido")
	}
	if !ValidPhone(c.Phone) {
		return Fail("telefono", "Ingrese un número de teléfono válido (7-15 dígitos)")
	}
	switch c.Status {
	case "":
		c.Status = entity.StatusActive
	case entity.StatusActive, entity.StatusInactive:
	default:
		return Fail("estado", "estado inválido (A o I)")
	}
	return nil
}

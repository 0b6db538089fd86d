package validation

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/RosaQuijije/FacturacionWeb/internal/domain/entity"
)

// DayLayout formato de fecha de los formularios.
const DayLayout = "2006-01-02"

// ParseDay interpreta s como YYYY-MM-DD. nil o vacío devuelve (nil, nil).
func ParseDay(field string, s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := time.Parse(DayLayout, strings.TrimSpace(*s))
	if err != nil {
		return nil, Fail(field, "Fecha inválida, use el formato AAAA-MM-DD")
	}
	return &t, nil
}

// MonthsBetween diferencia en meses calendario entre dos fechas (ignora el día).
func MonthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}

// ValidateServiceDraft revisa el formulario de servicio recurrente y, si es válido,
// devuelve el servicio sin montos calculados. El período debe cubrir al menos un mes.
func ValidateServiceDraft(in entity.ServiceDraftInput) (*entity.RecurringService, error) {
	if in.ClientID == nil || *in.ClientID <= 0 {
		return nil, Fail("idCliente", "Seleccione un cliente")
	}
	if in.CatalogID == nil || *in.CatalogID <= 0 {
		return nil, Fail("idCatalogo", "Seleccione un catálogo")
	}
	if in.From == nil || in.To == nil || in.From.IsZero() || in.To.IsZero() {
		return nil, Fail("fechaDesde", "Seleccione fechas")
	}
	if MonthsBetween(*in.From, *in.To) < 1 {
		return nil, Fail("fechaHasta", "El período debe ser mínimo 1 mes")
	}
	discount := decimal.Zero
	if in.DiscountPercent != nil {
		discount = *in.DiscountPercent
	}
	if !ValidPercent(discount) {
		return nil, Fail("porcentajeDescuento", "Porcentaje de descuento debe ser entre 0 y 100")
	}
	status := in.Status
	switch status {
	case "":
		status = entity.StatusActive
	case entity.StatusActive, entity.StatusInactive:
	default:
		return nil, Fail("estado", "estado inválido (A o I)")
	}
	return &entity.RecurringService{
		ClientID:        *in.ClientID,
		CatalogID:       *in.CatalogID,
		From:            *in.From,
		To:              *in.To,
		Status:          status,
		DiscountPercent: discount,
	}, nil
}

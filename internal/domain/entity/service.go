package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecurringService servicio del catálogo contratado por un cliente y facturado
// una vez por mes calendario dentro del rango [From, To].
type RecurringService struct {
	ID        int64
	ClientID  int64
	CatalogID int64
	Date      time.Time
	From      time.Time
	To        time.Time
	Status    string

	TaxPercent      decimal.Decimal
	DiscountPercent decimal.Decimal
	UnitPrice       decimal.Decimal
	TaxAmount       decimal.Decimal
	DiscountAmount  decimal.Decimal
	Subtotal        decimal.Decimal
	Total           decimal.Decimal

	LastBilledAt *time.Time
}

// InRange indica si day cae dentro del período contratado (por fecha calendario).
func (s *RecurringService) InRange(day time.Time) bool {
	d := truncateDay(day)
	return !truncateDay(s.From).After(d) && !truncateDay(s.To).Before(d)
}

// BilledInMonthOf indica si el servicio ya se facturó en el mismo mes y año que day.
func (s *RecurringService) BilledInMonthOf(day time.Time) bool {
	if s.LastBilledAt == nil {
		return false
	}
	return s.LastBilledAt.Year() == day.Year() && s.LastBilledAt.Month() == day.Month()
}

// OverlapsMonthOf indica si el período contratado toca el mes calendario de day.
func (s *RecurringService) OverlapsMonthOf(day time.Time) bool {
	first := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
	last := first.AddDate(0, 1, -1)
	return !truncateDay(s.From).After(last) && !truncateDay(s.To).Before(first)
}

// IsActive indica si el servicio sigue vigente para facturación.
func (s *RecurringService) IsActive() bool {
	return s != nil && s.Status == StatusActive
}

// BillableOn indica si el servicio puede facturarse en day: activo, dentro del período
// y sin factura en el mismo mes.
func (s *RecurringService) BillableOn(day time.Time) bool {
	return s.IsActive() && s.InRange(day) && !s.BilledInMonthOf(day)
}

// ServiceDraftInput datos incompletos del formulario de servicio. Solo se convierte
// en RecurringService después de validarlo.
type ServiceDraftInput struct {
	ClientID        *int64
	CatalogID       *int64
	From            *time.Time
	To              *time.Time
	Status          string
	DiscountPercent *decimal.Decimal
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Package analytics contiene el resumen mensual que alimenta el dashboard.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/RosaQuijije/FacturacionWeb/internal/application/dto"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/entity"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/repository"
)

// DashboardUseCase genera el resumen del mes en curso a partir del backend.
//
// Facturas: solo las emitidas en el mes; las anuladas se cuentan aparte y no suman.
// Servicios: los que tocan el mes, separados en facturados y pendientes.
type DashboardUseCase struct {
	invoices repository.InvoiceRepository
	clients  repository.ClientRepository
	services repository.ServiceRepository
	now      func() time.Time
}

// NewDashboardUseCase construye el caso de uso. now nil usa time.Now.
func NewDashboardUseCase(
	invoices repository.InvoiceRepository,
	clients repository.ClientRepository,
	services repository.ServiceRepository,
	now func() time.Time,
) *DashboardUseCase {
	if now == nil {
		now = time.Now
	}
	return &DashboardUseCase{invoices: invoices, clients: clients, services: services, now: now}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Tres llamadas en paralelo al backend:
//  1. facturas
//  2. clientes (nombres)
//  3. servicios recurrentes
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()

	// ── Goroutines para paralelizar las 3 consultas ───────────────────────────
	type invoicesResult struct {
		list []*entity.Invoice
		err  error
	}
	type clientsResult struct {
		list []*entity.Client
		err  error
	}
	type servicesResult struct {
		list []*entity.RecurringService
		err  error
	}

	invCh := make(chan invoicesResult, 1)
	cliCh := make(chan clientsResult, 1)
	svcCh := make(chan servicesResult, 1)

	go func() {
		list, err := uc.invoices.List(ctx)
		invCh <- invoicesResult{list, err}
	}()
	go func() {
		list, err := uc.clients.List(ctx)
		cliCh <- clientsResult{list, err}
	}()
	go func() {
		list, err := uc.services.List(ctx)
		svcCh <- servicesResult{list, err}
	}()

	invs := <-invCh
	clis := <-cliCh
	svcs := <-svcCh

	if invs.err != nil {
		return nil, fmt.Errorf("dashboard: facturas: %w", invs.err)
	}
	if clis.err != nil {
		return nil, fmt.Errorf("dashboard: clientes: %w", clis.err)
	}
	if svcs.err != nil {
		return nil, fmt.Errorf("dashboard: servicios: %w", svcs.err)
	}

	names := make(map[int64]string, len(clis.list))
	for _, c := range clis.list {
		names[c.ID] = c.FullName()
	}

	// ── Facturas del mes por cliente ──────────────────────────────────────────
	out := &dto.DashboardSummaryDTO{
		MonthLabel:      monthLabel(now),
		InvoicedTotal:   decimal.Zero,
		ClientTotals:    []dto.ClientTotalDTO{},
		BilledServices:  []dto.ServiceResponse{},
		PendingServices: []dto.ServiceResponse{},
	}
	byClient := make(map[int64]*dto.ClientTotalDTO)
	for _, inv := range invs.list {
		if !sameMonth(inv.Date, now) {
			continue
		}
		out.InvoiceCount++
		if inv.IsVoided() {
			out.VoidedCount++
			continue
		}
		total := decimal.Zero
		for _, l := range inv.Lines {
			total = total.Add(l.LineTotal)
		}
		ct, ok := byClient[inv.ClientID]
		if !ok {
			ct = &dto.ClientTotalDTO{ClientID: inv.ClientID, ClientName: names[inv.ClientID], Total: decimal.Zero}
			byClient[inv.ClientID] = ct
		}
		ct.InvoiceCount++
		ct.Total = ct.Total.Add(total)
		out.InvoicedTotal = out.InvoicedTotal.Add(total)
	}
	for _, ct := range byClient {
		ct.Total = ct.Total.Round(2)
		out.ClientTotals = append(out.ClientTotals, *ct)
	}
	sort.Slice(out.ClientTotals, func(i, j int) bool {
		a, b := out.ClientTotals[i], out.ClientTotals[j]
		if !a.Total.Equal(b.Total) {
			return a.Total.GreaterThan(b.Total)
		}
		return a.ClientID < b.ClientID
	})
	out.InvoicedTotal = out.InvoicedTotal.Round(2)

	// ── Servicios del mes ─────────────────────────────────────────────────────
	sort.Slice(svcs.list, func(i, j int) bool { return svcs.list[i].ID > svcs.list[j].ID })
	for _, s := range svcs.list {
		if !s.OverlapsMonthOf(now) {
			continue
		}
		resp := dto.FromService(s, now)
		if s.BilledInMonthOf(now) {
			out.BilledServices = append(out.BilledServices, resp)
		} else {
			out.PendingServices = append(out.PendingServices, resp)
		}
	}
	return out, nil
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}

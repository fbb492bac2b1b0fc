package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/ledger-api/internal/application/dto"
)

const dashboardRecent = 10 // asientos recientes en el widget del dashboard

// DashboardUseCase reúne los reportes del panel principal en una sola llamada.
type DashboardUseCase struct {
	reports *ReportUseCase
}

// NewDashboardUseCase construye el caso de uso sobre el motor de reportes.
func NewDashboardUseCase(reports *ReportUseCase) *DashboardUseCase {
	return &DashboardUseCase{reports: reports}
}

// GetSummary ejecuta los reportes en paralelo; el primer error cancela el resto.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, period string, companyID *int64) (*dto.DashboardDTO, error) {
	var out dto.DashboardDTO
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		kpis, err := uc.reports.KPIs(gctx, period)
		if err != nil {
			return fmt.Errorf("dashboard: kpis: %w", err)
		}
		out.KPIs = *kpis
		return nil
	})
	g.Go(func() error {
		rows, err := uc.reports.Inventory(gctx, companyID)
		if err != nil {
			return fmt.Errorf("dashboard: inventario: %w", err)
		}
		out.Inventory = rows
		return nil
	})
	g.Go(func() error {
		alerts, err := uc.reports.UpcomingAlerts(gctx, companyID)
		if err != nil {
			return fmt.Errorf("dashboard: alertas: %w", err)
		}
		out.Alerts = alerts
		return nil
	})
	g.Go(func() error {
		ch, err := uc.reports.RevenueChannels(gctx, period)
		if err != nil {
			return fmt.Errorf("dashboard: canales: %w", err)
		}
		out.RevenueChannels = *ch
		return nil
	})
	g.Go(func() error {
		cats, err := uc.reports.ExpensesByCategory(gctx, period)
		if err != nil {
			return fmt.Errorf("dashboard: categorías: %w", err)
		}
		out.ExpensesByCategory = cats
		return nil
	})
	g.Go(func() error {
		recent, err := uc.reports.RecentTransactions(gctx, dashboardRecent)
		if err != nil {
			return fmt.Errorf("dashboard: recientes: %w", err)
		}
		out.Recent = recent
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	out.DateLabel = monthLabel(uc.reports.now())
	return &out, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Outubro 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
		"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ledger-api/internal/application/analytics"
	"github.com/jhoicas/ledger-api/internal/application/dto"
	domledger "github.com/jhoicas/ledger-api/internal/domain/ledger"
)

// ReportHandler reportes de solo lectura y el resumen del dashboard.
type ReportHandler struct {
	reports   *analytics.ReportUseCase
	dashboard *analytics.DashboardUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(reports *analytics.ReportUseCase, dashboard *analytics.DashboardUseCase) *ReportHandler {
	return &ReportHandler{reports: reports, dashboard: dashboard}
}

// reportQuery parsea los parámetros comunes; period vacío = mes corriente.
func reportQuery(c *fiber.Ctx) (dto.ReportRequest, error) {
	var q dto.ReportRequest
	if err := parseQuery(c, &q); err != nil {
		return q, err
	}
	if q.Period == "" {
		q.Period = string(domledger.PeriodMonth)
	}
	return q, nil
}

// Inventory godoc
// @Summary      Valuación de inventario
// @Tags         reports
// @Produce      json
// @Param        company_id  query  int  false  "Empresa"
// @Success      200  {array}  dto.InventoryRowDTO
// @Router       /api/reports/inventory [get]
func (h *ReportHandler) Inventory(c *fiber.Ctx) error {
	q, err := reportQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.reports.Inventory(c.UserContext(), companyScope(c, q.CompanyID))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// KPIs godoc
// @Summary      Indicadores del período
// @Tags         reports
// @Produce      json
// @Param        period  query  string  false  "week | month | year | all"
// @Success      200  {object}  dto.KPIDTO
// @Router       /api/reports/kpis [get]
func (h *ReportHandler) KPIs(c *fiber.Ctx) error {
	q, err := reportQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.reports.KPIs(c.UserContext(), q.Period)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Partners godoc
// @Summary      Participación y saldo por socio
// @Tags         reports
// @Produce      json
// @Param        company_id  query  int  false  "Empresa"
// @Success      200  {array}  dto.PartnerReportDTO
// @Router       /api/reports/partners [get]
func (h *ReportHandler) Partners(c *fiber.Ctx) error {
	q, err := reportQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.reports.PartnerReport(c.UserContext(), companyScope(c, q.CompanyID))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Alerts godoc
// @Summary      Gastos fijos que vencen en los próximos 5 días
// @Tags         reports
// @Produce      json
// @Param        company_id  query  int  false  "Empresa"
// @Success      200  {array}  dto.AlertDTO
// @Router       /api/reports/alerts [get]
func (h *ReportHandler) Alerts(c *fiber.Ctx) error {
	q, err := reportQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.reports.UpcomingAlerts(c.UserContext(), companyScope(c, q.CompanyID))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Channels godoc
// @Summary      Receitas por canal (producto / servicio)
// @Tags         reports
// @Produce      json
// @Param        period  query  string  false  "week | month | year | all"
// @Success      200  {object}  dto.RevenueChannelsDTO
// @Router       /api/reports/channels [get]
func (h *ReportHandler) Channels(c *fiber.Ctx) error {
	q, err := reportQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.reports.RevenueChannels(c.UserContext(), q.Period)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Categories godoc
// @Summary      Despesas por categoría
// @Tags         reports
// @Produce      json
// @Param        period  query  string  false  "week | month | year | all"
// @Success      200  {array}  dto.CategoryTotalDTO
// @Router       /api/reports/categories [get]
func (h *ReportHandler) Categories(c *fiber.Ctx) error {
	q, err := reportQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.reports.ExpensesByCategory(c.UserContext(), q.Period)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Recent godoc
// @Summary      Últimos asientos
// @Tags         reports
// @Produce      json
// @Param        limit  query  int  false  "Máximo de filas (default 10)"
// @Success      200  {array}  dto.TransactionResponse
// @Router       /api/reports/recent [get]
func (h *ReportHandler) Recent(c *fiber.Ctx) error {
	q, err := reportQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.reports.RecentTransactions(c.UserContext(), q.Limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Dashboard godoc
// @Summary      Resumen del dashboard
// @Tags         reports
// @Produce      json
// @Param        period      query  string  false  "week | month | year | all"
// @Param        company_id  query  int     false  "Empresa"
// @Success      200  {object}  dto.DashboardDTO
// @Router       /api/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	q, err := reportQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.dashboard.GetSummary(c.UserContext(), q.Period, companyScope(c, q.CompanyID))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

package dto

import "github.com/shopspring/decimal"

// ── Query parameters ──────────────────────────────────────────────────────────

// ReportRequest parámetros comunes de /api/reports/*.
type ReportRequest struct {
	Period    string `query:"period" validate:"omitempty,oneof=week month year all"`
	CompanyID int64  `query:"company_id" validate:"min=0"`
	Limit     int    `query:"limit" validate:"min=0,max=1000"`
}

// ── Estoque ───────────────────────────────────────────────────────────────────

// InventoryRowDTO valuación de un producto. Con estoque cero los valores son unitarios.
type InventoryRowDTO struct {
	ProductID int64           `json:"product_id"`
	SKU       string          `json:"sku,omitempty"`
	Name      string          `json:"name"`
	Stock     int64           `json:"stock"`
	LastCost  decimal.Decimal `json:"last_cost"`
	Price     decimal.Decimal `json:"price"`
	CostValue decimal.Decimal `json:"cost_value"`
	SaleValue decimal.Decimal `json:"sale_value"`
}

// ── KPIs ──────────────────────────────────────────────────────────────────────

// KPIDTO indicadores del período. COGS y TotalCash son globales.
type KPIDTO struct {
	Period    string          `json:"period"`
	Revenue   decimal.Decimal `json:"revenue"`
	Expenses  decimal.Decimal `json:"expenses"`
	COGS      decimal.Decimal `json:"cogs"`
	NetProfit decimal.Decimal `json:"net_profit"`
	TotalCash decimal.Decimal `json:"total_cash"`
}

// ── Sócios ────────────────────────────────────────────────────────────────────

// PartnerReportDTO participación y saldo de un socio.
type PartnerReportDTO struct {
	PartnerID        int64           `json:"partner_id"`
	Name             string          `json:"name"`
	SharePct         decimal.Decimal `json:"share_pct"`
	ShareOfProfit    decimal.Decimal `json:"share_of_profit"`
	TotalContributed decimal.Decimal `json:"total_contributed"`
	TotalWithdrawn   decimal.Decimal `json:"total_withdrawn"`
	CurrentBalance   decimal.Decimal `json:"current_balance"`
}

// ── Alertas y canales ─────────────────────────────────────────────────────────

// AlertDTO gasto fijo que vence en los próximos días.
type AlertDTO struct {
	FixedExpenseID int64           `json:"fixed_expense_id"`
	CompanyID      int64           `json:"company_id"`
	Name           string          `json:"name"`
	Amount         decimal.Decimal `json:"amount"`
	DueDay         int             `json:"due_day"`
}

// RevenueChannelsDTO receitas por canal: producto (Venda) y servicio (Serviço).
type RevenueChannelsDTO struct {
	Product decimal.Decimal `json:"product"`
	Service decimal.Decimal `json:"service"`
}

// CategoryTotalDTO total de despesas de una categoría.
type CategoryTotalDTO struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

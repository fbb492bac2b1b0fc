package dto

// DashboardDTO respuesta de GET /api/dashboard: todos los reportes en una sola llamada.
type DashboardDTO struct {
	KPIs               KPIDTO                `json:"kpis"`
	Inventory          []InventoryRowDTO     `json:"inventory"`
	Alerts             []AlertDTO            `json:"alerts"`
	RevenueChannels    RevenueChannelsDTO    `json:"revenue_channels"`
	ExpensesByCategory []CategoryTotalDTO    `json:"expenses_by_category"`
	Recent             []TransactionResponse `json:"recent_transactions"`
	DateLabel          string                `json:"date_label"` // ej: "Outubro 2026"
}

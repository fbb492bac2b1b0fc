// Package analytics contiene el motor de reportes: funciones de solo lectura que
// pliegan los tres libros en cada llamada. Ningún resultado se almacena.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	domledger "github.com/jhoicas/ledger-api/internal/domain/ledger"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

// Repos puertos de lectura que consume el motor de reportes.
type Repos struct {
	Products      repository.ProductRepository
	Movements     repository.StockMovementRepository
	Transactions  repository.TransactionRepository
	Equity        repository.EquityRepository
	Partners      repository.PartnerRepository
	FixedExpenses repository.FixedExpenseRepository
}

// ReportUseCase reportes derivados. No escribe nada: dos llamadas seguidas sin
// escrituras intermedias devuelven el mismo resultado.
type ReportUseCase struct {
	repos Repos
	now   func() time.Time
}

// Option configura el ReportUseCase.
type Option func(*ReportUseCase)

// WithClock fija el reloj usado para anclar períodos y alertas.
func WithClock(now func() time.Time) Option {
	return func(uc *ReportUseCase) { uc.now = now }
}

// NewReportUseCase construye el motor de reportes.
func NewReportUseCase(repos Repos, opts ...Option) *ReportUseCase {
	uc := &ReportUseCase{repos: repos, now: time.Now}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// ── Estoque ───────────────────────────────────────────────────────────────────

// Inventory nivel, último costo y valuación por producto. companyID nil = todas las empresas.
func (uc *ReportUseCase) Inventory(ctx context.Context, companyID *int64) ([]dto.InventoryRowDTO, error) {
	products, err := uc.repos.Products.List(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("inventario: productos: %w", err)
	}
	movs, err := uc.repos.Movements.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("inventario: movimientos: %w", err)
	}
	byProduct := domledger.GroupByProduct(movs)

	rows := make([]dto.InventoryRowDTO, 0, len(products))
	for _, p := range products {
		pm := byProduct[p.ID]
		stock := domledger.StockLevel(pm)
		lastCost := domledger.LastCost(pm)
		costValue, saleValue := domledger.Valuation(stock, lastCost, p.Price)
		rows = append(rows, dto.InventoryRowDTO{
			ProductID: p.ID,
			SKU:       p.SKU,
			Name:      p.Name,
			Stock:     stock,
			LastCost:  lastCost,
			Price:     p.Price,
			CostValue: costValue,
			SaleValue: saleValue,
		})
	}
	return rows, nil
}

// ── KPIs ──────────────────────────────────────────────────────────────────────

// KPIs receitas y despesas del período; COGS y caja son siempre globales.
func (uc *ReportUseCase) KPIs(ctx context.Context, period string) (*dto.KPIDTO, error) {
	p := domledger.ParsePeriod(period)
	now := uc.now()

	txs, err := uc.repos.Transactions.List(ctx, repository.TransactionFilter{})
	if err != nil {
		return nil, fmt.Errorf("kpis: transacciones: %w", err)
	}
	cogs, err := uc.globalCOGS(ctx)
	if err != nil {
		return nil, err
	}
	contributed, withdrawn, err := uc.equityTotals(ctx, nil)
	if err != nil {
		return nil, err
	}

	revenue, expenses := domledger.Totals(txs, func(t *entity.Transaction) bool {
		return p.Contains(t.Date, now)
	})
	allRevenue, allExpenses := domledger.Totals(txs, nil)

	return &dto.KPIDTO{
		Period:    string(p),
		Revenue:   revenue,
		Expenses:  expenses,
		COGS:      cogs,
		NetProfit: domledger.RealProfit(revenue, expenses, cogs),
		TotalCash: domledger.TotalCash(allRevenue, allExpenses, contributed, withdrawn),
	}, nil
}

// ── Sócios ────────────────────────────────────────────────────────────────────

// PartnerReport participación de cada socio sobre el lucro real global.
// companyID solo selecciona los socios; el lucro no se filtra por empresa.
func (uc *ReportUseCase) PartnerReport(ctx context.Context, companyID *int64) ([]dto.PartnerReportDTO, error) {
	partners, err := uc.repos.Partners.List(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("sócios: %w", err)
	}
	txs, err := uc.repos.Transactions.List(ctx, repository.TransactionFilter{})
	if err != nil {
		return nil, fmt.Errorf("sócios: transacciones: %w", err)
	}
	cogs, err := uc.globalCOGS(ctx)
	if err != nil {
		return nil, err
	}
	revenue, expenses := domledger.Totals(txs, nil)
	profit := domledger.RealProfit(revenue, expenses, cogs)

	rows := make([]dto.PartnerReportDTO, 0, len(partners))
	for _, p := range partners {
		id := p.ID
		contributed, withdrawn, err := uc.equityTotals(ctx, &id)
		if err != nil {
			return nil, err
		}
		share := domledger.PartnerShare(profit, p.SharePct)
		rows = append(rows, dto.PartnerReportDTO{
			PartnerID:        p.ID,
			Name:             p.Name,
			SharePct:         p.SharePct,
			ShareOfProfit:    share,
			TotalContributed: contributed,
			TotalWithdrawn:   withdrawn,
			CurrentBalance:   domledger.PartnerBalance(share, contributed, withdrawn),
		})
	}
	return rows, nil
}

// ── Alertas ───────────────────────────────────────────────────────────────────

// UpcomingAlerts gastos fijos con due_day en [hoy, hoy+5] (día del mes, sin vuelta de mes).
// start_date y end_date no se consideran.
func (uc *ReportUseCase) UpcomingAlerts(ctx context.Context, companyID *int64) ([]dto.AlertDTO, error) {
	list, err := uc.repos.FixedExpenses.List(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("alertas: %w", err)
	}
	today := uc.now().Day()
	alerts := make([]dto.AlertDTO, 0)
	for _, fe := range list {
		if !domledger.DueWithin(fe.DueDay, today, domledger.AlertWindowDays) {
			continue
		}
		alerts = append(alerts, dto.AlertDTO{
			FixedExpenseID: fe.ID,
			CompanyID:      fe.CompanyID,
			Name:           fe.Name,
			Amount:         fe.Amount,
			DueDay:         fe.DueDay,
		})
	}
	return alerts, nil
}

// ── Canais e categorias ───────────────────────────────────────────────────────

// RevenueChannels separa receitas con producto (Venda) de las demás (Serviço).
func (uc *ReportUseCase) RevenueChannels(ctx context.Context, period string) (*dto.RevenueChannelsDTO, error) {
	txs, err := uc.periodTransactions(ctx, period, entity.TransactionRevenue)
	if err != nil {
		return nil, fmt.Errorf("canales: %w", err)
	}
	product, service := domledger.RevenueChannels(txs)
	return &dto.RevenueChannelsDTO{Product: product, Service: service}, nil
}

// ExpensesByCategory despesas del período agrupadas por categoría, de mayor a menor.
func (uc *ReportUseCase) ExpensesByCategory(ctx context.Context, period string) ([]dto.CategoryTotalDTO, error) {
	txs, err := uc.periodTransactions(ctx, period, entity.TransactionExpense)
	if err != nil {
		return nil, fmt.Errorf("categorías: %w", err)
	}
	totals := domledger.ExpensesByCategory(txs)
	out := make([]dto.CategoryTotalDTO, 0, len(totals))
	for _, ct := range totals {
		out = append(out, dto.CategoryTotalDTO{Category: ct.Category, Total: ct.Total})
	}
	return out, nil
}

// RecentTransactions últimos asientos por fecha descendente.
func (uc *ReportUseCase) RecentTransactions(ctx context.Context, limit int) ([]dto.TransactionResponse, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	txs, err := uc.repos.Transactions.List(ctx, repository.TransactionFilter{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("recientes: %w", err)
	}
	out := make([]dto.TransactionResponse, 0, len(txs))
	for _, t := range txs {
		out = append(out, ToTransactionResponse(t))
	}
	return out, nil
}

const defaultRecentLimit = 10

// ToTransactionResponse convierte un asiento a su DTO (fecha como YYYY-MM-DD).
func ToTransactionResponse(t *entity.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:          t.ID,
		Type:        t.Type,
		Amount:      t.Amount,
		Category:    t.Category,
		Description: t.Description,
		Date:        t.Date.Format(time.DateOnly),
		ProductID:   t.ProductID,
		PartnerID:   t.PartnerID,
		CompanyID:   t.CompanyID,
		CreatedAt:   t.CreatedAt,
	}
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (uc *ReportUseCase) globalCOGS(ctx context.Context) (cogs decimal.Decimal, err error) {
	movs, err := uc.repos.Movements.List(ctx)
	if err != nil {
		return cogs, fmt.Errorf("cogs: movimientos: %w", err)
	}
	return domledger.COGS(movs), nil
}

func (uc *ReportUseCase) equityTotals(ctx context.Context, partnerID *int64) (contributed, withdrawn decimal.Decimal, err error) {
	cs, err := uc.repos.Equity.ListContributions(ctx, partnerID)
	if err != nil {
		return contributed, withdrawn, fmt.Errorf("patrimonio: aportes: %w", err)
	}
	ws, err := uc.repos.Equity.ListWithdrawals(ctx, partnerID)
	if err != nil {
		return contributed, withdrawn, fmt.Errorf("patrimonio: retiros: %w", err)
	}
	return domledger.SumContributions(cs), domledger.SumWithdrawals(ws), nil
}

func (uc *ReportUseCase) periodTransactions(ctx context.Context, period, txType string) ([]*entity.Transaction, error) {
	p := domledger.ParsePeriod(period)
	now := uc.now()
	txs, err := uc.repos.Transactions.List(ctx, repository.TransactionFilter{Type: txType})
	if err != nil {
		return nil, err
	}
	out := txs[:0]
	for _, t := range txs {
		if p.Contains(t.Date, now) {
			out = append(out, t)
		}
	}
	return out, nil
}

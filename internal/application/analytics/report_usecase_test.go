package analytics_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ledger-api/internal/application/analytics"
	"github.com/jhoicas/ledger-api/internal/application/ledger"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
	"github.com/jhoicas/ledger-api/internal/infrastructure/sqlite"
)

// clock fijo: 15 de marzo de 2026.
var fixedNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

type fixture struct {
	repos     ledger.TxRepos
	fixed     repository.FixedExpenseRepository
	intake    *ledger.IntakeUseCase
	financial *ledger.FinancialUseCase
	equity    *ledger.EquityUseCase
	reports   *analytics.ReportUseCase
	companyID int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	st, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "ledger.db"), sqlite.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	runner := sqlite.NewTxRunner(st.DB())
	repos := sqlite.Repos(st.DB())
	fixed := sqlite.NewFixedExpenseRepository(st.DB())
	stock := ledger.NewStockUseCase(runner, repos.Movements, repos.Products, nil)

	company := &entity.Company{Name: "Ateliê", CreatedAt: fixedNow}
	require.NoError(t, repos.Companies.Create(ctx, company))

	return &fixture{
		repos:     repos,
		fixed:     fixed,
		intake:    ledger.NewIntakeUseCase(stock),
		financial: ledger.NewFinancialUseCase(runner, repos.Transactions, nil),
		equity:    ledger.NewEquityUseCase(runner, nil),
		reports: analytics.NewReportUseCase(analytics.Repos{
			Products:      repos.Products,
			Movements:     repos.Movements,
			Transactions:  repos.Transactions,
			Equity:        repos.Equity,
			Partners:      repos.Partners,
			FixedExpenses: fixed,
		}, analytics.WithClock(func() time.Time { return fixedNow })),
		companyID: company.ID,
	}
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(y int, m time.Month, dd int) time.Time { return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC) }

func (f *fixture) tx(t *testing.T, typ, amount, category string, date time.Time, productID *int64) {
	t.Helper()
	_, err := f.financial.RecordTransaction(context.Background(), ledger.TransactionInput{
		Type: typ, Amount: d(amount), Category: category, Date: date, ProductID: productID,
	})
	require.NoError(t, err)
}

func (f *fixture) partner(t *testing.T, share string) int64 {
	t.Helper()
	p := &entity.Partner{CompanyID: f.companyID, Name: "Bia", SharePct: d(share), CreatedAt: fixedNow}
	require.NoError(t, f.repos.Partners.Create(context.Background(), p))
	return p.ID
}

func (f *fixture) product(t *testing.T, name, price string) int64 {
	t.Helper()
	p := &entity.Product{CompanyID: f.companyID, Name: name, Price: d(price)}
	_, err := f.intake.RegisterNewProduct(context.Background(), p, nil)
	require.NoError(t, err)
	return p.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// Sócios
// ──────────────────────────────────────────────────────────────────────────────

func TestPartnerReport_ParticipacionYSaldo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pid := f.partner(t, "20")
	f.tx(t, entity.TransactionRevenue, "1000", "Serviço", day(2026, time.March, 10), nil)
	_, err := f.equity.RecordContribution(ctx, ledger.EquityInput{PartnerID: pid, Amount: d("200")})
	require.NoError(t, err)
	_, err = f.equity.RecordWithdrawal(ctx, ledger.EquityInput{PartnerID: pid, Amount: d("50")})
	require.NoError(t, err)

	rows, err := f.reports.PartnerReport(ctx, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].ShareOfProfit.Equal(d("200")), "got %s", rows[0].ShareOfProfit)
	assert.True(t, rows[0].TotalContributed.Equal(d("200")))
	assert.True(t, rows[0].TotalWithdrawn.Equal(d("50")))
	assert.True(t, rows[0].CurrentBalance.Equal(d("350")), "got %s", rows[0].CurrentBalance)
}

func TestPartnerReport_LucroGlobalAunqueSeFiltreEmpresa(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.partner(t, "50")

	other := &entity.Company{Name: "Outra", CreatedAt: fixedNow}
	require.NoError(t, f.repos.Companies.Create(ctx, other))
	otherID := other.ID
	_, err := f.financial.RecordTransaction(ctx, ledger.TransactionInput{
		Type: entity.TransactionRevenue, Amount: d("400"), CompanyID: &otherID, Date: day(2026, time.March, 1),
	})
	require.NoError(t, err)

	rows, err := f.reports.PartnerReport(ctx, &f.companyID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].ShareOfProfit.Equal(d("200")))

	rows, err = f.reports.PartnerReport(ctx, &otherID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

// ──────────────────────────────────────────────────────────────────────────────
// KPIs
// ──────────────────────────────────────────────────────────────────────────────

func TestKPIs_PeriodoFiltraReceitasYDespesasPeroNoCaja(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pid := f.partner(t, "100")
	f.tx(t, entity.TransactionRevenue, "1000", "Serviço", day(2026, time.March, 2), nil)
	f.tx(t, entity.TransactionExpense, "300", "Aluguel", day(2026, time.March, 5), nil)
	f.tx(t, entity.TransactionExpense, "100", "Geral", day(2025, time.December, 1), nil)
	_, err := f.equity.RecordContribution(ctx, ledger.EquityInput{PartnerID: pid, Amount: d("500")})
	require.NoError(t, err)
	_, err = f.equity.RecordWithdrawal(ctx, ledger.EquityInput{PartnerID: pid, Amount: d("50")})
	require.NoError(t, err)

	k, err := f.reports.KPIs(ctx, "month")
	require.NoError(t, err)
	assert.Equal(t, "month", k.Period)
	assert.True(t, k.Revenue.Equal(d("1000")))
	assert.True(t, k.Expenses.Equal(d("300")))
	assert.True(t, k.NetProfit.Equal(d("700")))
	// 1000 − 400 + 500 − 50
	assert.True(t, k.TotalCash.Equal(d("1050")), "got %s", k.TotalCash)

	all, err := f.reports.KPIs(ctx, "all")
	require.NoError(t, err)
	assert.True(t, all.Expenses.Equal(d("400")))
	assert.True(t, all.TotalCash.Equal(k.TotalCash))
}

func TestKPIs_COGSGlobalSeDescuenta(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pid := f.product(t, "Widget", "9.90")
	_, err := f.intake.RegisterIntake(ctx, ledger.IntakeInput{ProductID: pid, Quantity: 10, UnitCost: d("5")})
	require.NoError(t, err)

	// salida registrada con costo 5 → COGS 15
	out := &entity.StockMovement{
		ProductID: pid, Quantity: 3, Type: entity.MovementTypeOut,
		Source: entity.SourceOwn, UnitCost: d("5"), CreatedAt: fixedNow,
	}
	require.NoError(t, f.repos.Movements.Create(ctx, out))
	f.tx(t, entity.TransactionRevenue, "29.70", entity.CategorySale, day(2026, time.March, 15), &pid)

	k, err := f.reports.KPIs(ctx, "week")
	require.NoError(t, err)
	assert.True(t, k.COGS.Equal(d("15")))
	assert.True(t, k.NetProfit.Equal(d("14.70")), "got %s", k.NetProfit)
}

func TestKPIs_Idempotente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.tx(t, entity.TransactionRevenue, "80", "Serviço", day(2026, time.March, 1), nil)

	first, err := f.reports.KPIs(ctx, "year")
	require.NoError(t, err)
	second, err := f.reports.KPIs(ctx, "year")
	require.NoError(t, err)
	assert.Equal(t, first.Revenue.String(), second.Revenue.String())
	assert.Equal(t, first.TotalCash.String(), second.TotalCash.String())
	assert.Equal(t, first.NetProfit.String(), second.NetProfit.String())
}

// ──────────────────────────────────────────────────────────────────────────────
// Inventario, alertas, canales, categorías
// ──────────────────────────────────────────────────────────────────────────────

func TestInventory_Valuacion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	widget := f.product(t, "Widget", "9.90")
	f.product(t, "Sem estoque", "4")
	_, err := f.intake.RegisterIntake(ctx, ledger.IntakeInput{ProductID: widget, Quantity: 10, UnitCost: d("5")})
	require.NoError(t, err)

	rows, err := f.reports.Inventory(ctx, nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	byName := map[string]int{}
	for i, r := range rows {
		byName[r.Name] = i
	}
	w := rows[byName["Widget"]]
	assert.Equal(t, int64(10), w.Stock)
	assert.True(t, w.CostValue.Equal(d("50")))
	assert.True(t, w.SaleValue.Equal(d("99")))

	empty := rows[byName["Sem estoque"]]
	assert.Equal(t, int64(0), empty.Stock)
	assert.True(t, empty.SaleValue.Equal(d("4")), "con estoque cero se informa el precio unitario")
}

func TestUpcomingAlerts_VentanaDeCincoDias(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, due := range []int{3, 15, 20, 21} {
		require.NoError(t, f.fixed.Create(ctx, &entity.FixedExpense{
			CompanyID: f.companyID, Name: "Conta", Amount: d("100"), DueDay: due, CreatedAt: fixedNow,
		}))
	}

	alerts, err := f.reports.UpcomingAlerts(ctx, nil)
	require.NoError(t, err)
	var days []int
	for _, a := range alerts {
		days = append(days, a.DueDay)
	}
	assert.ElementsMatch(t, []int{15, 20}, days)
}

func TestRevenueChannelsYCategorias(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pid := f.product(t, "Widget", "9.90")
	f.tx(t, entity.TransactionRevenue, "30", entity.CategorySale, day(2026, time.March, 3), &pid)
	f.tx(t, entity.TransactionRevenue, "70", "Serviço", day(2026, time.March, 4), nil)
	f.tx(t, entity.TransactionExpense, "10", "Geral", day(2026, time.March, 4), nil)
	f.tx(t, entity.TransactionExpense, "90", "Aluguel", day(2026, time.March, 6), nil)
	f.tx(t, entity.TransactionExpense, "500", "Aluguel", day(2025, time.March, 6), nil)

	ch, err := f.reports.RevenueChannels(ctx, "month")
	require.NoError(t, err)
	assert.True(t, ch.Product.Equal(d("30")))
	assert.True(t, ch.Service.Equal(d("70")))

	cats, err := f.reports.ExpensesByCategory(ctx, "month")
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Aluguel", cats[0].Category)
	assert.True(t, cats[0].Total.Equal(d("90")))

	recent, err := f.reports.RecentTransactions(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "2026-03-06", recent[0].Date)
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboard_GetSummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.product(t, "Widget", "9.90")
	f.tx(t, entity.TransactionRevenue, "120", "Serviço", day(2026, time.March, 9), nil)

	out, err := analytics.NewDashboardUseCase(f.reports).GetSummary(ctx, "month", nil)
	require.NoError(t, err)
	assert.Equal(t, "Março 2026", out.DateLabel)
	assert.True(t, out.KPIs.Revenue.Equal(d("120")))
	assert.Len(t, out.Inventory, 1)
	assert.Len(t, out.Recent, 1)
	assert.True(t, out.RevenueChannels.Service.Equal(d("120")))
}

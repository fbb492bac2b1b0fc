package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/ledger"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func mov(productID int64, typ string, qty int64, cost string) *entity.StockMovement {
	return &entity.StockMovement{ProductID: productID, Type: typ, Quantity: qty, UnitCost: d(cost)}
}

func ptr(v int64) *int64 { return &v }

// ── Estoque ───────────────────────────────────────────────────────────────────

func TestStockLevel_SinMovimientos_EsCero(t *testing.T) {
	assert.Equal(t, int64(0), ledger.StockLevel(nil))
}

func TestStockLevel_IndependienteDelOrden(t *testing.T) {
	a := []*entity.StockMovement{
		mov(1, entity.MovementTypeIn, 10, "5"),
		mov(1, entity.MovementTypeOut, 3, "0"),
		mov(1, entity.MovementTypeIn, 4, "6"),
		mov(1, entity.MovementTypeOut, 2, "0"),
	}
	b := []*entity.StockMovement{a[3], a[1], a[2], a[0]}
	assert.Equal(t, int64(9), ledger.StockLevel(a))
	assert.Equal(t, ledger.StockLevel(a), ledger.StockLevel(b))
}

func TestLastCost_EsElMayorCostoDeEntrada(t *testing.T) {
	movs := []*entity.StockMovement{
		mov(1, entity.MovementTypeIn, 1, "5"),
		mov(1, entity.MovementTypeIn, 1, "7.5"),
		mov(1, entity.MovementTypeIn, 1, "6"),
		mov(1, entity.MovementTypeOut, 1, "99"), // las salidas no cuentan
	}
	assert.True(t, d("7.5").Equal(ledger.LastCost(movs)))
	assert.True(t, decimal.Zero.Equal(ledger.LastCost(nil)))
}

func TestCOGS_SoloSalidasConCosto(t *testing.T) {
	movs := []*entity.StockMovement{
		mov(1, entity.MovementTypeIn, 10, "5"),
		mov(1, entity.MovementTypeOut, 3, "5"),
		mov(2, entity.MovementTypeOut, 2, "0"),
		mov(2, entity.MovementTypeOut, 1, "4.25"),
	}
	assert.True(t, d("19.25").Equal(ledger.COGS(movs)))
}

func TestValuation_EstoqueCeroMuestraValoresUnitarios(t *testing.T) {
	cost, sale := ledger.Valuation(0, d("5"), d("9.90"))
	assert.True(t, d("5").Equal(cost))
	assert.True(t, d("9.90").Equal(sale))

	cost, sale = ledger.Valuation(7, d("5"), d("9.90"))
	assert.True(t, d("35").Equal(cost))
	assert.True(t, d("69.30").Equal(sale))
}

func TestGroupByProduct(t *testing.T) {
	g := ledger.GroupByProduct([]*entity.StockMovement{
		mov(1, entity.MovementTypeIn, 1, "0"),
		mov(2, entity.MovementTypeIn, 1, "0"),
		mov(1, entity.MovementTypeOut, 1, "0"),
	})
	assert.Len(t, g[1], 2)
	assert.Len(t, g[2], 1)
}

// ── Financiero ────────────────────────────────────────────────────────────────

func TestPartnerShareYBalance(t *testing.T) {
	share := ledger.PartnerShare(d("1000"), d("20"))
	assert.True(t, d("200").Equal(share))
	assert.True(t, d("350").Equal(ledger.PartnerBalance(share, d("200"), d("50"))))
}

func TestTotalsYCaja(t *testing.T) {
	txs := []*entity.Transaction{
		{Type: entity.TransactionRevenue, Amount: d("100")},
		{Type: entity.TransactionRevenue, Amount: d("50"), ProductID: ptr(1)},
		{Type: entity.TransactionExpense, Amount: d("30")},
	}
	rev, exp := ledger.Totals(txs, nil)
	assert.True(t, d("150").Equal(rev))
	assert.True(t, d("30").Equal(exp))

	onlyProducts := func(t *entity.Transaction) bool { return t.ProductID != nil }
	rev, exp = ledger.Totals(txs, onlyProducts)
	assert.True(t, d("50").Equal(rev))
	assert.True(t, exp.IsZero())

	assert.True(t, d("170").Equal(ledger.TotalCash(d("150"), d("30"), d("100"), d("50"))))
	assert.True(t, d("110").Equal(ledger.RealProfit(d("150"), d("30"), d("10"))))
}

func TestRevenueChannels(t *testing.T) {
	txs := []*entity.Transaction{
		{Type: entity.TransactionRevenue, Amount: d("29.70"), ProductID: ptr(1)},
		{Type: entity.TransactionRevenue, Amount: d("100")},
		{Type: entity.TransactionExpense, Amount: d("50"), ProductID: ptr(1)},
	}
	product, service := ledger.RevenueChannels(txs)
	assert.True(t, d("29.70").Equal(product))
	assert.True(t, d("100").Equal(service))
}

func TestExpensesByCategory_OrdenDescendente(t *testing.T) {
	txs := []*entity.Transaction{
		{Type: entity.TransactionExpense, Amount: d("10"), Category: "Aluguel"},
		{Type: entity.TransactionExpense, Amount: d("50"), Category: entity.CategoryStockPurchase},
		{Type: entity.TransactionExpense, Amount: d("15"), Category: "Aluguel"},
		{Type: entity.TransactionRevenue, Amount: d("999"), Category: "Aluguel"},
	}
	got := ledger.ExpensesByCategory(txs)
	if assert.Len(t, got, 2) {
		assert.Equal(t, entity.CategoryStockPurchase, got[0].Category)
		assert.Equal(t, "Aluguel", got[1].Category)
		assert.True(t, d("25").Equal(got[1].Total))
	}
}

// ── Períodos y alertas ────────────────────────────────────────────────────────

func TestPeriodContains(t *testing.T) {
	now := time.Date(2026, time.March, 15, 14, 0, 0, 0, time.UTC)
	day := func(y int, m time.Month, dd int) time.Time { return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC) }

	assert.True(t, ledger.PeriodWeek.Contains(day(2026, time.March, 8), now))
	assert.False(t, ledger.PeriodWeek.Contains(day(2026, time.March, 7), now))

	assert.True(t, ledger.PeriodMonth.Contains(day(2026, time.March, 1), now))
	assert.False(t, ledger.PeriodMonth.Contains(day(2025, time.March, 20), now))

	assert.True(t, ledger.PeriodYear.Contains(day(2026, time.January, 1), now))
	assert.False(t, ledger.PeriodYear.Contains(day(2025, time.December, 31), now))

	assert.True(t, ledger.PeriodAll.Contains(day(1999, time.January, 1), now))
}

func TestParsePeriod(t *testing.T) {
	assert.Equal(t, ledger.PeriodWeek, ledger.ParsePeriod("Week"))
	assert.Equal(t, ledger.PeriodMonth, ledger.ParsePeriod(" month "))
	assert.Equal(t, ledger.PeriodYear, ledger.ParsePeriod("year"))
	assert.Equal(t, ledger.PeriodAll, ledger.ParsePeriod("trimestre"))
}

func TestDueWithin_SinVueltaDeMes(t *testing.T) {
	assert.True(t, ledger.DueWithin(10, 10, ledger.AlertWindowDays))
	assert.True(t, ledger.DueWithin(15, 10, ledger.AlertWindowDays))
	assert.False(t, ledger.DueWithin(16, 10, ledger.AlertWindowDays))
	assert.False(t, ledger.DueWithin(9, 10, ledger.AlertWindowDays))
	// día 28 de febrero: el vencimiento del 2 de marzo no alerta
	assert.False(t, ledger.DueWithin(2, 28, ledger.AlertWindowDays))
}

func TestToday_DescartaHora(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	now := time.Date(2026, time.October, 15, 23, 30, 0, 0, loc)
	assert.Equal(t, time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC), ledger.Today(now))
}

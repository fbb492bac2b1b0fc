package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Totals suma receitas y despesas de los asientos aceptados por keep (nil = todos).
func Totals(txs []*entity.Transaction, keep func(*entity.Transaction) bool) (revenue, expenses decimal.Decimal) {
	revenue, expenses = decimal.Zero, decimal.Zero
	for _, t := range txs {
		if keep != nil && !keep(t) {
			continue
		}
		switch t.Type {
		case entity.TransactionRevenue:
			revenue = revenue.Add(t.Amount)
		case entity.TransactionExpense:
			expenses = expenses.Add(t.Amount)
		}
	}
	return revenue, expenses
}

// SumContributions suma los aportes.
func SumContributions(cs []*entity.Contribution) decimal.Decimal {
	total := decimal.Zero
	for _, c := range cs {
		total = total.Add(c.Amount)
	}
	return total
}

// SumWithdrawals suma los retiros.
func SumWithdrawals(ws []*entity.Withdrawal) decimal.Decimal {
	total := decimal.Zero
	for _, w := range ws {
		total = total.Add(w.Amount)
	}
	return total
}

// RealProfit = receitas − despesas − COGS (lucro real global).
func RealProfit(revenue, expenses, cogs decimal.Decimal) decimal.Decimal {
	return revenue.Sub(expenses).Sub(cogs)
}

// TotalCash = (receitas − despesas) + aportes − retiros, siempre sobre todo el histórico.
func TotalCash(revenue, expenses, contributed, withdrawn decimal.Decimal) decimal.Decimal {
	return revenue.Sub(expenses).Add(contributed).Sub(withdrawn)
}

// PartnerShare = lucro × share_pct / 100.
func PartnerShare(profit, sharePct decimal.Decimal) decimal.Decimal {
	return profit.Mul(sharePct).Div(hundred)
}

// PartnerBalance = participación + aportes − retiros.
func PartnerBalance(share, contributed, withdrawn decimal.Decimal) decimal.Decimal {
	return share.Add(contributed).Sub(withdrawn)
}

// RevenueChannels separa las receitas en Venda (con producto) y Serviço (sin producto).
func RevenueChannels(txs []*entity.Transaction) (product, service decimal.Decimal) {
	product, service = decimal.Zero, decimal.Zero
	for _, t := range txs {
		if t.Type != entity.TransactionRevenue {
			continue
		}
		if t.ProductID != nil {
			product = product.Add(t.Amount)
		} else {
			service = service.Add(t.Amount)
		}
	}
	return product, service
}

// CategoryTotal total de despesas de una categoría.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// ExpensesByCategory agrupa despesas por categoría, de mayor a menor (empate por nombre).
func ExpensesByCategory(txs []*entity.Transaction) []CategoryTotal {
	idx := make(map[string]decimal.Decimal)
	for _, t := range txs {
		if t.Type != entity.TransactionExpense {
			continue
		}
		idx[t.Category] = idx[t.Category].Add(t.Amount)
	}
	out := make([]CategoryTotal, 0, len(idx))
	for cat, total := range idx {
		out = append(out, CategoryTotal{Category: cat, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}

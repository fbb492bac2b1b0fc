// Package ledger contiene los pliegues puros sobre los tres libros
// (estoque, financiero y patrimonio). No tiene estado ni acceso a datos.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
)

// StockLevel = Σin − Σout. Sin movimientos devuelve 0.
func StockLevel(movements []*entity.StockMovement) int64 {
	var level int64
	for _, m := range movements {
		switch m.Type {
		case entity.MovementTypeIn:
			level += m.Quantity
		case entity.MovementTypeOut:
			level -= m.Quantity
		}
	}
	return level
}

// LastCost es el mayor unit_cost entre las entradas. Aproximación: no hay capas FIFO/LIFO.
func LastCost(movements []*entity.StockMovement) decimal.Decimal {
	last := decimal.Zero
	for _, m := range movements {
		if m.Type == entity.MovementTypeIn && m.UnitCost.GreaterThan(last) {
			last = m.UnitCost
		}
	}
	return last
}

// COGS = Σ(unit_cost × quantity) sobre salidas con costo registrado.
func COGS(movements []*entity.StockMovement) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		if m.Type == entity.MovementTypeOut && m.UnitCost.IsPositive() {
			total = total.Add(m.UnitCost.Mul(decimal.NewFromInt(m.Quantity)))
		}
	}
	return total
}

// Valuation devuelve el valor a costo y a precio de venta del estoque.
// Con estoque cero se informan los valores unitarios en lugar de totales en cero.
func Valuation(stock int64, lastCost, price decimal.Decimal) (costValue, saleValue decimal.Decimal) {
	if stock == 0 {
		return lastCost, price
	}
	qty := decimal.NewFromInt(stock)
	return qty.Mul(lastCost), qty.Mul(price)
}

// GroupByProduct indexa los movimientos por producto conservando el orden de entrada.
func GroupByProduct(movements []*entity.StockMovement) map[int64][]*entity.StockMovement {
	out := make(map[int64][]*entity.StockMovement)
	for _, m := range movements {
		out[m.ProductID] = append(out[m.ProductID], m)
	}
	return out
}

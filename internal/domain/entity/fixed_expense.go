package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// FixedExpense obligación recurrente declarativa; solo la consume el reporte de alertas.
type FixedExpense struct {
	ID        int64
	CompanyID int64
	Name      string
	Amount    decimal.Decimal
	DueDay    int // 1..31
	StartDate *time.Time
	EndDate   *time.Time
	CreatedAt time.Time
}

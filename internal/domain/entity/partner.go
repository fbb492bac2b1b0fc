package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Partner socio de una empresa. SharePct va de 0 a 100; la suma entre socios no se valida.
type Partner struct {
	ID        int64
	CompanyID int64
	Name      string
	SharePct  decimal.Decimal
	CreatedAt time.Time
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Contribution aporte de capital de un socio.
type Contribution struct {
	ID        int64
	PartnerID int64
	Amount    decimal.Decimal
	Date      time.Time
	Note      string
	CreatedAt time.Time
}

// Withdrawal retiro de un socio. No se bloquea aunque supere el saldo calculado.
type Withdrawal struct {
	ID        int64
	PartnerID int64
	Amount    decimal.Decimal
	Date      time.Time
	Reason    string
	CreatedAt time.Time
}

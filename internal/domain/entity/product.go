package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto de una empresa. Price es el precio de venta por defecto;
// cada venta registra su propio precio unitario.
type Product struct {
	ID        int64
	CompanyID int64
	SKU       string // vacío = sin SKU
	Name      string
	Price     decimal.Decimal
	CreatedAt time.Time
}

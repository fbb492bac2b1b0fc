package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de estoque.
const (
	MovementTypeIn  = "in"  // entrada
	MovementTypeOut = "out" // salida
)

// Origen de la mercadería.
const (
	SourceOwn       = "próprio"
	SourceConsigned = "consignado"
)

// StockMovement asiento del libro de estoque. Solo se agrega; nunca se edita.
// En salidas UnitCost guarda el último costo vigente al momento de la venta.
type StockMovement struct {
	ID        int64
	ProductID int64
	Quantity  int64 // siempre > 0; el signo lo define Type
	Type      string
	Reference string
	Source    string
	IsPaid    bool
	UnitCost  decimal.Decimal
	CreatedAt time.Time
}

// IsValidMovementType indica si t es in u out.
func IsValidMovementType(t string) bool {
	return t == MovementTypeIn || t == MovementTypeOut
}

// IsValidSource indica si s es un origen conocido.
func IsValidSource(s string) bool {
	return s == SourceOwn || s == SourceConsigned
}

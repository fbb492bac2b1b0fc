package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Estoque ───────────────────────────────────────────────────────────────────

// MovementRequest entrada de POST /api/stock/movements.
type MovementRequest struct {
	ProductID    int64           `json:"product_id" validate:"required,gt=0"`
	Quantity     int64           `json:"quantity" validate:"required,gt=0"`
	MovementType string          `json:"movement_type" validate:"required,oneof=in out IN OUT"`
	Reference    string          `json:"reference" validate:"max=500"`
	Source       string          `json:"source" validate:"omitempty,oneof=próprio consignado"`
	IsPaid       bool            `json:"is_paid"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
}

// IntakeRequest entrada de POST /api/stock/intake.
type IntakeRequest struct {
	ProductID int64           `json:"product_id" validate:"required,gt=0"`
	Quantity  int64           `json:"quantity" validate:"required,gt=0"`
	Reference string          `json:"reference" validate:"max=500"`
	Source    string          `json:"source" validate:"omitempty,oneof=próprio consignado"`
	IsPaid    bool            `json:"is_paid"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// MovementResponse ids escritos por un movimiento.
type MovementResponse struct {
	MovementID int64  `json:"movement_id"`
	ExpenseID  *int64 `json:"expense_id,omitempty"`
}

// StockLevelResponse nivel actual de un producto.
type StockLevelResponse struct {
	ProductID int64 `json:"product_id"`
	Stock     int64 `json:"stock"`
}

// ── Venda ─────────────────────────────────────────────────────────────────────

// SaleRequest entrada de POST /api/sales.
type SaleRequest struct {
	ProductID   int64           `json:"product_id" validate:"required,gt=0"`
	Quantity    int64           `json:"quantity" validate:"required,gt=0"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Description string          `json:"description" validate:"max=500"`
	PartnerID   *int64          `json:"partner_id" validate:"omitempty,gt=0"`
	CompanyID   *int64          `json:"company_id" validate:"omitempty,gt=0"`
}

// SaleResponse resultado de una venta.
type SaleResponse struct {
	MovementID    int64           `json:"movement_id"`
	TransactionID int64           `json:"transaction_id"`
	Total         decimal.Decimal `json:"total"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	Remaining     int64           `json:"remaining"`
}

// ── Financeiro ────────────────────────────────────────────────────────────────

// TransactionRequest entrada de POST /api/transactions. Date vacía = hoy.
type TransactionRequest struct {
	Type        string          `json:"type" validate:"required,oneof=Receita Despesa"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category" validate:"max=100"`
	Description string          `json:"description" validate:"max=500"`
	Date        string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
	ProductID   *int64          `json:"product_id" validate:"omitempty,gt=0"`
	PartnerID   *int64          `json:"partner_id" validate:"omitempty,gt=0"`
	CompanyID   *int64          `json:"company_id" validate:"omitempty,gt=0"`
}

// TransactionListRequest filtros de GET /api/transactions.
type TransactionListRequest struct {
	Type      string `query:"type" validate:"omitempty,oneof=Receita Despesa"`
	CompanyID int64  `query:"company_id" validate:"min=0"`
	ProductID int64  `query:"product_id" validate:"min=0"`
	PartnerID int64  `query:"partner_id" validate:"min=0"`
	From      string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To        string `query:"to" validate:"omitempty,datetime=2006-01-02"`
	Limit     int    `query:"limit" validate:"min=0,max=1000"`
}

// TransactionResponse salida de un asiento.
type TransactionResponse struct {
	ID          int64           `json:"id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	ProductID   *int64          `json:"product_id,omitempty"`
	PartnerID   *int64          `json:"partner_id,omitempty"`
	CompanyID   *int64          `json:"company_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ── Patrimônio ────────────────────────────────────────────────────────────────

// EquityRequest entrada de aportes y retiros. Memo es la nota o el motivo.
type EquityRequest struct {
	PartnerID int64           `json:"partner_id" validate:"required,gt=0"`
	Amount    decimal.Decimal `json:"amount"`
	Date      string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Memo      string          `json:"memo" validate:"max=500"`
}

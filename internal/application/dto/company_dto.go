package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCompanyRequest entrada para crear una empresa.
type CreateCompanyRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// RenameCompanyRequest el nombre es el único campo mutable.
type RenameCompanyRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CreatePartnerRequest entrada para crear un socio. share_pct 0..100 (la suma no se valida).
type CreatePartnerRequest struct {
	CompanyID int64           `json:"company_id" validate:"required,gt=0"`
	Name      string          `json:"name" validate:"required,min=1,max=200"`
	SharePct  decimal.Decimal `json:"share_pct"`
}

// PartnerResponse salida de un socio.
type PartnerResponse struct {
	ID        int64           `json:"id"`
	CompanyID int64           `json:"company_id"`
	Name      string          `json:"name"`
	SharePct  decimal.Decimal `json:"share_pct"`
	CreatedAt time.Time       `json:"created_at"`
}

// CreateFixedExpenseRequest entrada para registrar un gasto fijo.
type CreateFixedExpenseRequest struct {
	CompanyID int64           `json:"company_id" validate:"required,gt=0"`
	Name      string          `json:"name" validate:"required,min=1,max=200"`
	Amount    decimal.Decimal `json:"amount"`
	DueDay    int             `json:"due_day" validate:"required,min=1,max=31"`
	StartDate string          `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string          `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

// FixedExpenseResponse salida de un gasto fijo.
type FixedExpenseResponse struct {
	ID        int64           `json:"id"`
	CompanyID int64           `json:"company_id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	DueDay    int             `json:"due_day"`
	StartDate *time.Time      `json:"start_date,omitempty"`
	EndDate   *time.Time      `json:"end_date,omitempty"`
}

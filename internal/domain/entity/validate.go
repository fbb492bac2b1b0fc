package entity

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-api/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Validate normaliza el nombre y valida la empresa.
func (c *Company) Validate() error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return domain.NewValidationError("name", "obligatorio")
	}
	return nil
}

// Validate valida el socio. share_pct entre 0 y 100.
func (p *Partner) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return domain.NewValidationError("name", "obligatorio")
	}
	if p.CompanyID <= 0 {
		return domain.NewValidationError("company_id", "obligatorio")
	}
	if p.SharePct.IsNegative() || p.SharePct.GreaterThan(hundred) {
		return domain.NewValidationError("share_pct", "debe estar entre 0 y 100")
	}
	return nil
}

// Validate valida el producto. El precio puede ser cero pero no negativo.
func (p *Product) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	p.SKU = strings.TrimSpace(p.SKU)
	if p.Name == "" {
		return domain.NewValidationError("name", "obligatorio")
	}
	if p.CompanyID <= 0 {
		return domain.NewValidationError("company_id", "obligatorio")
	}
	if p.Price.IsNegative() {
		return domain.NewValidationError("price", "no puede ser negativo")
	}
	return nil
}

// Validate valida el gasto fijo. due_day entre 1 y 31.
func (f *FixedExpense) Validate() error {
	f.Name = strings.TrimSpace(f.Name)
	if f.Name == "" {
		return domain.NewValidationError("name", "obligatorio")
	}
	if f.CompanyID <= 0 {
		return domain.NewValidationError("company_id", "obligatorio")
	}
	if !f.Amount.IsPositive() {
		return domain.NewValidationError("amount", "debe ser mayor que cero")
	}
	if f.DueDay < 1 || f.DueDay > 31 {
		return domain.NewValidationError("due_day", "debe estar entre 1 y 31")
	}
	if f.StartDate != nil && f.EndDate != nil && f.EndDate.Before(*f.StartDate) {
		return domain.NewValidationError("end_date", "anterior a start_date")
	}
	return nil
}

package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	domledger "github.com/jhoicas/ledger-api/internal/domain/ledger"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

// FixedExpenseUseCase alta y consulta de gastos fijos (solo alimentan las alertas).
type FixedExpenseUseCase struct {
	repo        repository.FixedExpenseRepository
	companyRepo repository.CompanyRepository
}

// NewFixedExpenseUseCase construye el caso de uso.
func NewFixedExpenseUseCase(repo repository.FixedExpenseRepository, companyRepo repository.CompanyRepository) *FixedExpenseUseCase {
	return &FixedExpenseUseCase{repo: repo, companyRepo: companyRepo}
}

// Create registra un gasto fijo. due_day 1..31; fechas opcionales en formato 2006-01-02.
func (uc *FixedExpenseUseCase) Create(ctx context.Context, in dto.CreateFixedExpenseRequest) (*dto.FixedExpenseResponse, error) {
	start, err := parseOptionalDate("start_date", in.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseOptionalDate("end_date", in.EndDate)
	if err != nil {
		return nil, err
	}
	fe := &entity.FixedExpense{
		CompanyID: in.CompanyID,
		Name:      in.Name,
		Amount:    in.Amount,
		DueDay:    in.DueDay,
		StartDate: start,
		EndDate:   end,
		CreatedAt: time.Now(),
	}
	if err := fe.Validate(); err != nil {
		return nil, err
	}
	if err := ensureCompany(ctx, uc.companyRepo, in.CompanyID); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, fe); err != nil {
		return nil, err
	}
	return toFixedExpenseResponse(fe), nil
}

// List lista gastos fijos; companyID nil devuelve todos.
func (uc *FixedExpenseUseCase) List(ctx context.Context, companyID *int64) ([]dto.FixedExpenseResponse, error) {
	list, err := uc.repo.List(ctx, companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.FixedExpenseResponse, 0, len(list))
	for _, fe := range list {
		items = append(items, *toFixedExpenseResponse(fe))
	}
	return items, nil
}

func toFixedExpenseResponse(fe *entity.FixedExpense) *dto.FixedExpenseResponse {
	return &dto.FixedExpenseResponse{
		ID:        fe.ID,
		CompanyID: fe.CompanyID,
		Name:      fe.Name,
		Amount:    fe.Amount,
		DueDay:    fe.DueDay,
		StartDate: fe.StartDate,
		EndDate:   fe.EndDate,
	}
}

// parseOptionalDate interpreta YYYY-MM-DD; vacío devuelve nil.
func parseOptionalDate(field, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, domain.NewValidationError(field, "formato esperado YYYY-MM-DD")
	}
	d := domledger.CivilDate(t)
	return &d, nil
}

package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-api/internal/application/ports"
	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	domledger "github.com/jhoicas/ledger-api/internal/domain/ledger"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

// TransactionInput entrada de record_transaction. Date cero = hoy; Category vacía = "Geral".
type TransactionInput struct {
	Type        string
	Amount      decimal.Decimal
	Category    string
	Description string
	Date        time.Time
	ProductID   *int64
	PartnerID   *int64
	CompanyID   *int64
}

// FinancialUseCase libro financiero: receitas y despesas.
type FinancialUseCase struct {
	txRunner TxRunner
	txRepo   repository.TransactionRepository
	metrics  ports.LedgerMetrics
	now      func() time.Time
}

// NewFinancialUseCase construye el caso de uso. metrics puede ser nil.
func NewFinancialUseCase(txRunner TxRunner, txRepo repository.TransactionRepository, metrics ports.LedgerMetrics) *FinancialUseCase {
	return &FinancialUseCase{txRunner: txRunner, txRepo: txRepo, metrics: orNop(metrics), now: time.Now}
}

// RecordTransaction valida y agrega un asiento. Type debe ser exactamente Receita o Despesa;
// la categoría nunca lo sustituye.
func (uc *FinancialUseCase) RecordTransaction(ctx context.Context, in TransactionInput) (id int64, err error) {
	defer func() { uc.metrics.ObserveOperation("transaction", err) }()

	if !entity.IsValidTransactionType(in.Type) {
		return 0, domain.NewValidationError("type", "debe ser Receita o Despesa")
	}
	if !in.Amount.IsPositive() {
		return 0, domain.NewValidationError("amount", "debe ser mayor que cero")
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = entity.CategoryDefault
	}
	now := uc.now()
	date := domledger.Today(now)
	if !in.Date.IsZero() {
		date = domledger.CivilDate(in.Date)
	}

	t := &entity.Transaction{
		Type:        in.Type,
		Amount:      in.Amount,
		Category:    category,
		Description: in.Description,
		Date:        date,
		ProductID:   in.ProductID,
		PartnerID:   in.PartnerID,
		CompanyID:   in.CompanyID,
		CreatedAt:   now,
	}
	err = uc.txRunner.Run(ctx, func(r TxRepos) error {
		if in.ProductID != nil {
			p, err := r.Products.GetByID(ctx, *in.ProductID)
			if err != nil {
				return err
			}
			if p == nil {
				return domain.NewNotFoundError("produto", *in.ProductID)
			}
		}
		if err := ensureLinks(ctx, r, in.PartnerID, in.CompanyID); err != nil {
			return err
		}
		return r.Transactions.Create(ctx, t)
	})
	if err != nil {
		return 0, err
	}
	return t.ID, nil
}

// DeleteTransaction borrado físico de corrección administrativa (sin asiento de reversión).
// Devuelve false si el id no existe.
func (uc *FinancialUseCase) DeleteTransaction(ctx context.Context, id int64) (deleted bool, err error) {
	defer func() { uc.metrics.ObserveOperation("transaction_delete", err) }()
	return uc.txRepo.Delete(ctx, id)
}

// ListTransactions lista asientos por fecha descendente.
func (uc *FinancialUseCase) ListTransactions(ctx context.Context, filter repository.TransactionFilter) ([]*entity.Transaction, error) {
	if filter.Type != "" && !entity.IsValidTransactionType(filter.Type) {
		return nil, domain.NewValidationError("type", "debe ser Receita o Despesa")
	}
	if filter.Limit < 0 {
		return nil, domain.NewValidationError("limit", "no puede ser negativo")
	}
	if filter.From != nil {
		from := domledger.CivilDate(*filter.From)
		filter.From = &from
	}
	if filter.To != nil {
		to := domledger.CivilDate(*filter.To)
		filter.To = &to
	}
	return uc.txRepo.List(ctx, filter)
}

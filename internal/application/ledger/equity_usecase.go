package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-api/internal/application/ports"
	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	domledger "github.com/jhoicas/ledger-api/internal/domain/ledger"
)

// EquityInput entrada de aporte o retiro. Memo es la nota del aporte o el motivo del retiro.
type EquityInput struct {
	PartnerID int64
	Amount    decimal.Decimal
	Date      time.Time
	Memo      string
}

// EquityUseCase libro de patrimonio. No aplica reglas de saldo: un retiro mayor
// al saldo calculado se registra igual y se concilia después.
type EquityUseCase struct {
	txRunner TxRunner
	metrics  ports.LedgerMetrics
	now      func() time.Time
}

// NewEquityUseCase construye el caso de uso. metrics puede ser nil.
func NewEquityUseCase(txRunner TxRunner, metrics ports.LedgerMetrics) *EquityUseCase {
	return &EquityUseCase{txRunner: txRunner, metrics: orNop(metrics), now: time.Now}
}

// RecordContribution agrega un aporte del socio.
func (uc *EquityUseCase) RecordContribution(ctx context.Context, in EquityInput) (id int64, err error) {
	defer func() { uc.metrics.ObserveOperation("contribution", err) }()
	if err := validateEquity(in); err != nil {
		return 0, err
	}
	now := uc.now()
	c := &entity.Contribution{
		PartnerID: in.PartnerID,
		Amount:    in.Amount,
		Date:      uc.dateOrToday(in.Date, now),
		Note:      in.Memo,
		CreatedAt: now,
	}
	err = uc.txRunner.Run(ctx, func(r TxRepos) error {
		if err := ensurePartner(ctx, r, in.PartnerID); err != nil {
			return err
		}
		return r.Equity.CreateContribution(ctx, c)
	})
	if err != nil {
		return 0, err
	}
	return c.ID, nil
}

// RecordWithdrawal agrega un retiro del socio.
func (uc *EquityUseCase) RecordWithdrawal(ctx context.Context, in EquityInput) (id int64, err error) {
	defer func() { uc.metrics.ObserveOperation("withdrawal", err) }()
	if err := validateEquity(in); err != nil {
		return 0, err
	}
	now := uc.now()
	w := &entity.Withdrawal{
		PartnerID: in.PartnerID,
		Amount:    in.Amount,
		Date:      uc.dateOrToday(in.Date, now),
		Reason:    in.Memo,
		CreatedAt: now,
	}
	err = uc.txRunner.Run(ctx, func(r TxRepos) error {
		if err := ensurePartner(ctx, r, in.PartnerID); err != nil {
			return err
		}
		return r.Equity.CreateWithdrawal(ctx, w)
	})
	if err != nil {
		return 0, err
	}
	return w.ID, nil
}

func (uc *EquityUseCase) dateOrToday(d, now time.Time) time.Time {
	if d.IsZero() {
		return domledger.Today(now)
	}
	return domledger.CivilDate(d)
}

func validateEquity(in EquityInput) error {
	if in.PartnerID <= 0 {
		return domain.NewValidationError("partner_id", "obligatorio")
	}
	if !in.Amount.IsPositive() {
		return domain.NewValidationError("amount", "debe ser mayor que cero")
	}
	return nil
}

func ensurePartner(ctx context.Context, r TxRepos, id int64) error {
	p, err := r.Partners.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.NewNotFoundError("sócio", id)
	}
	return nil
}

package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
)

// IntakeInput entrada de mercadería. Con IsPaid y UnitCost > 0 genera la despesa automática.
type IntakeInput struct {
	ProductID int64
	Quantity  int64
	Reference string
	Source    string
	IsPaid    bool
	UnitCost  decimal.Decimal
}

// IntakeUseCase operación compuesta de entrada: movimiento in + despesa condicional, atómicos.
type IntakeUseCase struct {
	stock *StockUseCase
}

// NewIntakeUseCase construye el caso de uso sobre el libro de estoque.
func NewIntakeUseCase(stock *StockUseCase) *IntakeUseCase {
	return &IntakeUseCase{stock: stock}
}

// RegisterIntake delega en RecordMovement con tipo in.
func (uc *IntakeUseCase) RegisterIntake(ctx context.Context, in IntakeInput) (*MovementResult, error) {
	return uc.stock.RecordMovement(ctx, MovementInput{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Type:      entity.MovementTypeIn,
		Reference: in.Reference,
		Source:    in.Source,
		IsPaid:    in.IsPaid,
		UnitCost:  in.UnitCost,
	})
}

// RegisterNewProduct crea el producto y, si initial no es nil, su saldo inicial
// en la misma transacción. Devuelve el resultado del movimiento (nil sin saldo inicial).
func (uc *IntakeUseCase) RegisterNewProduct(ctx context.Context, product *entity.Product, initial *IntakeInput) (res *MovementResult, err error) {
	defer func() { uc.stock.metrics.ObserveOperation("product_onboarding", err) }()

	if err := product.Validate(); err != nil {
		return nil, err
	}
	var in MovementInput
	if initial != nil {
		in = MovementInput{
			Quantity:  initial.Quantity,
			Type:      entity.MovementTypeIn,
			Reference: initial.Reference,
			Source:    initial.Source,
			IsPaid:    initial.IsPaid,
			UnitCost:  initial.UnitCost,
			ProductID: 1, // se reemplaza por el id real dentro de la transacción
		}
		if err := normalizeMovement(&in); err != nil {
			return nil, err
		}
	}
	now := uc.stock.now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}

	err = uc.stock.txRunner.Run(ctx, func(r TxRepos) error {
		company, err := r.Companies.GetByID(ctx, product.CompanyID)
		if err != nil {
			return err
		}
		if company == nil {
			return domain.NewNotFoundError("empresa", product.CompanyID)
		}
		if err := r.Products.Create(ctx, product); err != nil {
			return err
		}
		if initial == nil {
			return nil
		}
		in.ProductID = product.ID
		res, err = recordMovementTx(ctx, r, in, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

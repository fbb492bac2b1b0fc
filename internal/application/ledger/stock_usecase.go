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

// MovementInput entrada de record_movement. Source vacío = "próprio".
// TotalCost, si viene, es el importe exacto de la despesa automática; si no,
// despesa = UnitCost × Quantity.
type MovementInput struct {
	ProductID int64
	Quantity  int64
	Type      string
	Reference string
	Source    string
	IsPaid    bool
	UnitCost  decimal.Decimal
	TotalCost *decimal.Decimal
}

// MovementResult identificadores escritos por un movimiento.
// ExpenseID solo se informa cuando la entrada pagada generó la despesa automática.
type MovementResult struct {
	MovementID int64
	ExpenseID  *int64
}

// StockUseCase libro de estoque: agrega movimientos y pliega el nivel actual.
type StockUseCase struct {
	txRunner    TxRunner
	movRepo     repository.StockMovementRepository
	productRepo repository.ProductRepository
	metrics     ports.LedgerMetrics
	now         func() time.Time
}

// NewStockUseCase construye el caso de uso. metrics puede ser nil.
func NewStockUseCase(
	txRunner TxRunner,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	metrics ports.LedgerMetrics,
) *StockUseCase {
	return &StockUseCase{
		txRunner:    txRunner,
		movRepo:     movRepo,
		productRepo: productRepo,
		metrics:     orNop(metrics),
		now:         time.Now,
	}
}

// RecordMovement agrega un movimiento. Las salidas no validan suficiencia: eso es
// responsabilidad de SaleUseCase, por lo que solo deben llamarlo sitios confiables.
func (uc *StockUseCase) RecordMovement(ctx context.Context, in MovementInput) (res *MovementResult, err error) {
	defer func() { uc.metrics.ObserveOperation("movement", err) }()

	if err := normalizeMovement(&in); err != nil {
		return nil, err
	}
	now := uc.now()
	err = uc.txRunner.Run(ctx, func(r TxRepos) error {
		var txErr error
		res, txErr = recordMovementTx(ctx, r, in, now)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// CurrentStockLevel pliega todos los movimientos del producto. Sin movimientos devuelve 0.
func (uc *StockUseCase) CurrentStockLevel(ctx context.Context, productID int64) (int64, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, domain.NewNotFoundError("produto", productID)
	}
	movs, err := uc.movRepo.ListByProduct(ctx, productID)
	if err != nil {
		return 0, err
	}
	return domledger.StockLevel(movs), nil
}

// normalizeMovement valida la entrada y completa los valores por defecto.
func normalizeMovement(in *MovementInput) error {
	in.Type = strings.ToLower(strings.TrimSpace(in.Type))
	if !entity.IsValidMovementType(in.Type) {
		return domain.NewValidationError("movement_type", "debe ser in u out")
	}
	if in.ProductID <= 0 {
		return domain.NewValidationError("product_id", "obligatorio")
	}
	if in.Quantity <= 0 {
		return domain.NewValidationError("quantity", "debe ser mayor que cero")
	}
	if in.UnitCost.IsNegative() {
		return domain.NewValidationError("unit_cost", "no puede ser negativo")
	}
	if in.TotalCost != nil && in.TotalCost.IsNegative() {
		return domain.NewValidationError("total_cost", "no puede ser negativo")
	}
	if in.Source == "" {
		in.Source = entity.SourceOwn
	}
	if !entity.IsValidSource(in.Source) {
		return domain.NewValidationError("source", "debe ser próprio o consignado")
	}
	return nil
}

// recordMovementTx escribe el movimiento y, si es una entrada pagada con costo,
// la despesa "Estoque/Compra" en la misma transacción. Las salidas sin costo
// explícito toman el último costo vigente para que el COGS quede registrado.
func recordMovementTx(ctx context.Context, r TxRepos, in MovementInput, now time.Time) (*MovementResult, error) {
	var (
		product *entity.Product
		err     error
	)
	if in.Type == entity.MovementTypeOut {
		product, err = r.Products.GetForUpdate(ctx, in.ProductID)
	} else {
		product, err = r.Products.GetByID(ctx, in.ProductID)
	}
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewNotFoundError("produto", in.ProductID)
	}

	if in.Type == entity.MovementTypeOut && in.UnitCost.IsZero() {
		movs, err := r.Movements.ListByProduct(ctx, in.ProductID)
		if err != nil {
			return nil, err
		}
		in.UnitCost = domledger.LastCost(movs)
	}

	mov := &entity.StockMovement{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Type:      in.Type,
		Reference: in.Reference,
		Source:    in.Source,
		IsPaid:    in.IsPaid,
		UnitCost:  in.UnitCost,
		CreatedAt: now,
	}
	if err := r.Movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	res := &MovementResult{MovementID: mov.ID}

	if in.Type != entity.MovementTypeIn || !in.IsPaid || !in.UnitCost.IsPositive() {
		return res, nil
	}
	amount := in.UnitCost.Mul(decimal.NewFromInt(in.Quantity))
	if in.TotalCost != nil {
		amount = *in.TotalCost
	}

	companyID := product.CompanyID
	productID := product.ID
	expense := &entity.Transaction{
		Type:        entity.TransactionExpense,
		Amount:      amount,
		Category:    entity.CategoryStockPurchase,
		Description: "Compra de estoque: " + in.Reference,
		Date:        domledger.Today(now),
		ProductID:   &productID,
		CompanyID:   &companyID,
		CreatedAt:   now,
	}
	if err := r.Transactions.Create(ctx, expense); err != nil {
		return nil, err
	}
	res.ExpenseID = &expense.ID
	return res, nil
}

func orNop(m ports.LedgerMetrics) ports.LedgerMetrics {
	if m == nil {
		return ports.NopMetrics{}
	}
	return m
}

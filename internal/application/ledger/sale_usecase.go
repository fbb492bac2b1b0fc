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
)

// SaleInput entrada de una venta. UnitPrice es el precio efectivo; Product.Price no se usa.
// Total, si viene, es el importe exacto de la receita (p. ej. un total que no se
// divide en centavos por la cantidad); si no, receita = UnitPrice × Quantity.
type SaleInput struct {
	ProductID   int64
	Quantity    int64
	UnitPrice   decimal.Decimal
	Total       *decimal.Decimal
	Description string
	PartnerID   *int64
	CompanyID   *int64
}

// SaleResult resultado de una venta confirmada.
type SaleResult struct {
	MovementID    int64
	TransactionID int64
	Total         decimal.Decimal
	UnitCost      decimal.Decimal // costo registrado en la salida
	Remaining     int64           // estoque después de la venta
}

// SaleUseCase operación compuesta de venta: salida de estoque + receita "Venda".
type SaleUseCase struct {
	txRunner TxRunner
	metrics  ports.LedgerMetrics
	now      func() time.Time
}

// NewSaleUseCase construye el caso de uso. metrics puede ser nil.
func NewSaleUseCase(txRunner TxRunner, metrics ports.LedgerMetrics) *SaleUseCase {
	return &SaleUseCase{txRunner: txRunner, metrics: orNop(metrics), now: time.Now}
}

// RegisterSale bloquea el producto, verifica suficiencia y escribe salida y receita
// en la misma transacción. Con estoque insuficiente devuelve InsufficientStockError
// sin escribir nada.
func (uc *SaleUseCase) RegisterSale(ctx context.Context, in SaleInput) (res *SaleResult, err error) {
	defer func() { uc.metrics.ObserveOperation("sale", err) }()

	if in.ProductID <= 0 {
		return nil, domain.NewValidationError("product_id", "obligatorio")
	}
	if in.Quantity <= 0 {
		return nil, domain.NewValidationError("quantity", "debe ser mayor que cero")
	}
	if !in.UnitPrice.IsPositive() {
		return nil, domain.NewValidationError("unit_price", "debe ser mayor que cero")
	}
	if in.Total != nil && !in.Total.IsPositive() {
		return nil, domain.NewValidationError("total", "debe ser mayor que cero")
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		description = entity.CategorySale
	}
	now := uc.now()

	err = uc.txRunner.Run(ctx, func(r TxRepos) error {
		// Bloqueo de fila: cierra la carrera entre la lectura del estoque y el commit.
		product, err := r.Products.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.NewNotFoundError("produto", in.ProductID)
		}
		if err := ensureLinks(ctx, r, in.PartnerID, in.CompanyID); err != nil {
			return err
		}

		movs, err := r.Movements.ListByProduct(ctx, in.ProductID)
		if err != nil {
			return err
		}
		available := domledger.StockLevel(movs)
		if available < in.Quantity {
			return &domain.InsufficientStockError{
				ProductID: in.ProductID,
				Requested: in.Quantity,
				Available: available,
			}
		}

		unitCost := domledger.LastCost(movs)
		mov := &entity.StockMovement{
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			Type:      entity.MovementTypeOut,
			Reference: description,
			Source:    entity.SourceOwn,
			UnitCost:  unitCost,
			CreatedAt: now,
		}
		if err := r.Movements.Create(ctx, mov); err != nil {
			return err
		}

		companyID := product.CompanyID
		if in.CompanyID != nil {
			companyID = *in.CompanyID
		}
		productID := product.ID
		total := in.UnitPrice.Mul(decimal.NewFromInt(in.Quantity))
		if in.Total != nil {
			total = *in.Total
		}
		revenue := &entity.Transaction{
			Type:        entity.TransactionRevenue,
			Amount:      total,
			Category:    entity.CategorySale,
			Description: description,
			Date:        domledger.Today(now),
			ProductID:   &productID,
			PartnerID:   in.PartnerID,
			CompanyID:   &companyID,
			CreatedAt:   now,
		}
		if err := r.Transactions.Create(ctx, revenue); err != nil {
			return err
		}

		res = &SaleResult{
			MovementID:    mov.ID,
			TransactionID: revenue.ID,
			Total:         total,
			UnitCost:      unitCost,
			Remaining:     available - in.Quantity,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ensureLinks verifica que los vínculos opcionales existan antes de escribir.
func ensureLinks(ctx context.Context, r TxRepos, partnerID, companyID *int64) error {
	if partnerID != nil {
		p, err := r.Partners.GetByID(ctx, *partnerID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.NewNotFoundError("sócio", *partnerID)
		}
	}
	if companyID != nil {
		c, err := r.Companies.GetByID(ctx, *companyID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.NewNotFoundError("empresa", *companyID)
		}
	}
	return nil
}

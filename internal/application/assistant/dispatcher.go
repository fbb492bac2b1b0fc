// Package assistant conecta el sobre del resolvedor de intenciones con las operaciones
// del libro: aplicación individual, importación por lotes y el flujo de conversación.
package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/application/ledger"
	"github.com/jhoicas/ledger-api/internal/application/usecase"
	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/intent"
)

// DefaultCompanyName empresa que se crea si CREATE_PRODUCT llega sin ninguna registrada.
const DefaultCompanyName = "Minha Empresa"

// Result resultado de aplicar una intención. ID es el registro principal escrito.
type Result struct {
	Intent  string `json:"intent"`
	ID      int64  `json:"id"`
	Details any    `json:"details,omitempty"`
}

// BatchFailure fallo local de un registro del lote.
type BatchFailure struct {
	Index  int    `json:"index"`
	Intent string `json:"intent"`
	Error  string `json:"error"`
}

// BatchResult conteo de la importación. El lote nunca se revierte como un todo.
type BatchResult struct {
	SuccessCount int            `json:"success_count"`
	ErrorCount   int            `json:"error_count"`
	Failures     []BatchFailure `json:"failures"`
}

// DispatcherDeps casos de uso que ejecutan cada intención.
type DispatcherDeps struct {
	Financial *ledger.FinancialUseCase
	Sales     *ledger.SaleUseCase
	Stock     *ledger.StockUseCase
	Equity    *ledger.EquityUseCase
	Products  *usecase.ProductUseCase
	Companies *usecase.CompanyUseCase
}

// Dispatcher traduce intenciones completas en operaciones del libro.
type Dispatcher struct {
	deps DispatcherDeps
}

// NewDispatcher construye el despachador.
func NewDispatcher(deps DispatcherDeps) *Dispatcher {
	return &Dispatcher{deps: deps}
}

// Apply ejecuta un sobre. Solo actúa sobre COMPLETE; un sobre INCOMPLETE o con error
// devuelve ValidationError sin escribir nada.
func (d *Dispatcher) Apply(ctx context.Context, env *intent.Envelope) (*Result, error) {
	if err := validateEnvelope(env); err != nil {
		return nil, err
	}
	return d.apply(ctx, env.Intent, env.Data)
}

// validateEnvelope solo acepta sobres COMPLETE sin error del resolvedor.
func validateEnvelope(env *intent.Envelope) error {
	if env == nil {
		return domain.NewValidationError("envelope", "vacío")
	}
	if env.Error != "" {
		return domain.NewValidationError("envelope", env.Error)
	}
	if env.Status != intent.StatusComplete {
		reason := "intención incompleta"
		if len(env.MissingFields) > 0 {
			reason += ": faltan " + strings.Join(env.MissingFields, ", ")
		}
		return domain.NewValidationError("status", reason)
	}
	return nil
}

// ApplyBatch aplica cada registro de forma independiente; los fallos se cuentan y
// el proceso continúa con el siguiente.
func (d *Dispatcher) ApplyBatch(ctx context.Context, records []intent.Record) BatchResult {
	res := BatchResult{Failures: make([]BatchFailure, 0)}
	for i, rec := range records {
		if _, err := d.apply(ctx, rec.Intent, rec.Data); err != nil {
			res.ErrorCount++
			res.Failures = append(res.Failures, BatchFailure{Index: i, Intent: rec.Intent, Error: err.Error()})
			continue
		}
		res.SuccessCount++
	}
	return res
}

func (d *Dispatcher) apply(ctx context.Context, name string, data intent.Data) (*Result, error) {
	switch name {
	case intent.SaveTransaction:
		return d.saveTransaction(ctx, data)
	case intent.RegisterSale:
		return d.registerSale(ctx, data)
	case intent.StockMovement:
		return d.stockMovement(ctx, data)
	case intent.PartnerContribution, intent.PartnerWithdrawal:
		return d.equity(ctx, name, data)
	case intent.CreateProduct:
		return d.createProduct(ctx, data)
	default:
		return nil, domain.NewValidationError("intent", fmt.Sprintf("desconocida: %q", name))
	}
}

// ── Handlers por intención ────────────────────────────────────────────────────

func (d *Dispatcher) saveTransaction(ctx context.Context, data intent.Data) (*Result, error) {
	amount, err := requireAmount(data)
	if err != nil {
		return nil, err
	}
	date, err := parseDate(data.Date)
	if err != nil {
		return nil, err
	}
	id, err := d.deps.Financial.RecordTransaction(ctx, ledger.TransactionInput{
		Type:        data.Type,
		Amount:      amount,
		Category:    data.Category,
		Description: data.Description,
		Date:        date,
		ProductID:   data.ProductID,
		PartnerID:   data.PartnerID,
		CompanyID:   data.CompanyID,
	})
	if err != nil {
		return nil, err
	}
	return &Result{Intent: intent.SaveTransaction, ID: id}, nil
}

// unitScale decimales del valor unitario derivado de un total (unit_cost es NUMERIC(14,4)).
const unitScale = 4

// registerSale: amount es el total y se registra tal cual; unit_price = amount / quantity.
func (d *Dispatcher) registerSale(ctx context.Context, data intent.Data) (*Result, error) {
	productID, err := requireProduct(data)
	if err != nil {
		return nil, err
	}
	amount, err := requireAmount(data)
	if err != nil {
		return nil, err
	}
	qty := quantityOrOne(data)
	res, err := d.deps.Sales.RegisterSale(ctx, ledger.SaleInput{
		ProductID:   productID,
		Quantity:    qty,
		UnitPrice:   amount.DivRound(decimal.NewFromInt(qty), unitScale),
		Total:       &amount,
		Description: data.Description,
		PartnerID:   data.PartnerID,
		CompanyID:   data.CompanyID,
	})
	if err != nil {
		return nil, err
	}
	return &Result{
		Intent: intent.RegisterSale,
		ID:     res.TransactionID,
		Details: dto.SaleResponse{
			MovementID:    res.MovementID,
			TransactionID: res.TransactionID,
			Total:         res.Total,
			UnitCost:      res.UnitCost,
			Remaining:     res.Remaining,
		},
	}, nil
}

// stockMovement: tipo por defecto in; amount es el costo total de la entrada
// (importe exacto de la despesa) y unit_cost = amount / quantity.
func (d *Dispatcher) stockMovement(ctx context.Context, data intent.Data) (*Result, error) {
	productID, err := requireProduct(data)
	if err != nil {
		return nil, err
	}
	qty := quantityOrOne(data)
	movType := strings.ToLower(strings.TrimSpace(data.Type))
	if movType == "" {
		movType = entity.MovementTypeIn
	}
	unitCost := decimal.Zero
	var totalCost *decimal.Decimal
	if data.Amount != nil {
		unitCost = data.Amount.DivRound(decimal.NewFromInt(qty), unitScale)
		totalCost = data.Amount
	}
	res, err := d.deps.Stock.RecordMovement(ctx, ledger.MovementInput{
		ProductID: productID,
		Quantity:  qty,
		Type:      movType,
		Reference: data.Description,
		Source:    data.Source,
		IsPaid:    isPaid(data),
		UnitCost:  unitCost,
		TotalCost: totalCost,
	})
	if err != nil {
		return nil, err
	}
	return &Result{
		Intent:  intent.StockMovement,
		ID:      res.MovementID,
		Details: dto.MovementResponse{MovementID: res.MovementID, ExpenseID: res.ExpenseID},
	}, nil
}

func (d *Dispatcher) equity(ctx context.Context, name string, data intent.Data) (*Result, error) {
	if data.PartnerID == nil {
		return nil, domain.NewValidationError("partner_id", "obligatorio")
	}
	amount, err := requireAmount(data)
	if err != nil {
		return nil, err
	}
	date, err := parseDate(data.Date)
	if err != nil {
		return nil, err
	}
	in := ledger.EquityInput{PartnerID: *data.PartnerID, Amount: amount, Date: date, Memo: data.Description}
	var id int64
	if name == intent.PartnerContribution {
		id, err = d.deps.Equity.RecordContribution(ctx, in)
	} else {
		id, err = d.deps.Equity.RecordWithdrawal(ctx, in)
	}
	if err != nil {
		return nil, err
	}
	return &Result{Intent: name, ID: id}, nil
}

// createProduct: empresa indicada, o la primera, o una nueva "Minha Empresa".
// Con quantity > 0 registra el saldo inicial con unit_cost = amount.
func (d *Dispatcher) createProduct(ctx context.Context, data intent.Data) (*Result, error) {
	name := strings.TrimSpace(data.Description)
	if name == "" {
		name = strings.TrimSpace(data.ProductName)
	}
	if name == "" {
		return nil, domain.NewValidationError("description", "nombre del producto obligatorio")
	}
	var companyID int64
	if data.CompanyID != nil {
		companyID = *data.CompanyID
	} else {
		id, err := d.deps.Companies.FirstOrCreate(ctx, DefaultCompanyName)
		if err != nil {
			return nil, err
		}
		companyID = id
	}
	price := decimal.Zero
	if data.Amount != nil {
		price = *data.Amount
	}
	req := dto.CreateProductRequest{
		CompanyID: companyID,
		Name:      name,
		Price:     price,
		Source:    data.Source,
		IsPaid:    isPaid(data),
	}
	if data.Quantity != nil && *data.Quantity > 0 {
		req.InitialQuantity = *data.Quantity
		req.InitialCost = price
	}
	p, err := d.deps.Products.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	return &Result{Intent: intent.CreateProduct, ID: p.ID, Details: p}, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func requireAmount(data intent.Data) (decimal.Decimal, error) {
	if data.Amount == nil {
		return decimal.Zero, domain.NewValidationError("amount", "obligatorio")
	}
	return *data.Amount, nil
}

func requireProduct(data intent.Data) (int64, error) {
	if data.ProductID == nil || *data.ProductID <= 0 {
		return 0, domain.NewValidationError("product_id", "obligatorio")
	}
	return *data.ProductID, nil
}

// quantityOrOne: ausente o cero vale 1; negativos pasan y los rechaza el libro.
func quantityOrOne(data intent.Data) int64 {
	if data.Quantity == nil || *data.Quantity == 0 {
		return 1
	}
	return *data.Quantity
}

func isPaid(data intent.Data) bool {
	return data.IsPaid != nil && *data.IsPaid
}

// parseDate interpreta YYYY-MM-DD; vacío devuelve el instante cero (el libro usa hoy).
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, domain.NewValidationError("date", "formato esperado YYYY-MM-DD")
	}
	return t, nil
}

package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ledger-api/internal/application/analytics"
	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/application/ledger"
	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

// LedgerHandler expone los tres libros: estoque, financiero y patrimonio.
type LedgerHandler struct {
	stock     *ledger.StockUseCase
	intake    *ledger.IntakeUseCase
	sales     *ledger.SaleUseCase
	financial *ledger.FinancialUseCase
	equity    *ledger.EquityUseCase
}

// LedgerUseCases casos de uso que consume LedgerHandler.
type LedgerUseCases struct {
	Stock     *ledger.StockUseCase
	Intake    *ledger.IntakeUseCase
	Sales     *ledger.SaleUseCase
	Financial *ledger.FinancialUseCase
	Equity    *ledger.EquityUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc LedgerUseCases) *LedgerHandler {
	return &LedgerHandler{
		stock:     uc.Stock,
		intake:    uc.Intake,
		sales:     uc.Sales,
		financial: uc.Financial,
		equity:    uc.Equity,
	}
}

// ── Estoque ───────────────────────────────────────────────────────────────────

// RecordMovement godoc
// @Summary      Registrar movimiento de estoque
// @Description  Las salidas no validan suficiencia; para vender use /api/sales.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *LedgerHandler) RecordMovement(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	res, err := h.stock.RecordMovement(c.UserContext(), ledger.MovementInput{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Type:      in.MovementType,
		Reference: in.Reference,
		Source:    in.Source,
		IsPaid:    in.IsPaid,
		UnitCost:  in.UnitCost,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResponse{MovementID: res.MovementID, ExpenseID: res.ExpenseID})
}

// RegisterIntake godoc
// @Summary      Entrada de mercadería
// @Description  Con is_paid y unit_cost > 0 registra además la despesa Estoque/Compra.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IntakeRequest  true  "Entrada"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/intake [post]
func (h *LedgerHandler) RegisterIntake(c *fiber.Ctx) error {
	var in dto.IntakeRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	res, err := h.intake.RegisterIntake(c.UserContext(), ledger.IntakeInput{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Reference: in.Reference,
		Source:    in.Source,
		IsPaid:    in.IsPaid,
		UnitCost:  in.UnitCost,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResponse{MovementID: res.MovementID, ExpenseID: res.ExpenseID})
}

// StockLevel godoc
// @Summary      Nivel actual de estoque
// @Tags         stock
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.StockLevelResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock [get]
func (h *LedgerHandler) StockLevel(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	level, err := h.stock.CurrentStockLevel(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.StockLevelResponse{ProductID: id, Stock: level})
}

// ── Venda ─────────────────────────────────────────────────────────────────────

// RegisterSale godoc
// @Summary      Registrar venta
// @Description  Salida de estoque y receita Venda en la misma transacción.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaleRequest  true  "Venta"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *LedgerHandler) RegisterSale(c *fiber.Ctx) error {
	var in dto.SaleRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	res, err := h.sales.RegisterSale(c.UserContext(), ledger.SaleInput{
		ProductID:   in.ProductID,
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice,
		Description: in.Description,
		PartnerID:   in.PartnerID,
		CompanyID:   in.CompanyID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SaleResponse{
		MovementID:    res.MovementID,
		TransactionID: res.TransactionID,
		Total:         res.Total,
		UnitCost:      res.UnitCost,
		Remaining:     res.Remaining,
	})
}

// ── Financeiro ────────────────────────────────────────────────────────────────

// RecordTransaction godoc
// @Summary      Registrar receita o despesa
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransactionRequest  true  "Asiento"
// @Success      201   {object}  dto.IDResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/transactions [post]
func (h *LedgerHandler) RecordTransaction(c *fiber.Ctx) error {
	var in dto.TransactionRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	date, err := parseDate("date", in.Date)
	if err != nil {
		return writeError(c, err)
	}
	id, err := h.financial.RecordTransaction(c.UserContext(), ledger.TransactionInput{
		Type:        in.Type,
		Amount:      in.Amount,
		Category:    in.Category,
		Description: in.Description,
		Date:        date,
		ProductID:   in.ProductID,
		PartnerID:   in.PartnerID,
		CompanyID:   in.CompanyID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.IDResponse{ID: id})
}

// ListTransactions godoc
// @Summary      Listar asientos (fecha descendente)
// @Tags         transactions
// @Produce      json
// @Param        type        query  string  false  "Receita | Despesa"
// @Param        company_id  query  int     false  "Empresa"
// @Param        product_id  query  int     false  "Producto"
// @Param        partner_id  query  int     false  "Socio"
// @Param        from        query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to          query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        limit       query  int     false  "Máximo de filas"
// @Success      200  {array}  dto.TransactionResponse
// @Router       /api/transactions [get]
func (h *LedgerHandler) ListTransactions(c *fiber.Ctx) error {
	var q dto.TransactionListRequest
	if err := parseQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	filter := repository.TransactionFilter{
		Type:      q.Type,
		CompanyID: companyScope(c, q.CompanyID),
		ProductID: optionalID(q.ProductID),
		PartnerID: optionalID(q.PartnerID),
		Limit:     q.Limit,
	}
	from, err := parseDate("from", q.From)
	if err != nil {
		return writeError(c, err)
	}
	if !from.IsZero() {
		filter.From = &from
	}
	to, err := parseDate("to", q.To)
	if err != nil {
		return writeError(c, err)
	}
	if !to.IsZero() {
		filter.To = &to
	}

	rows, err := h.financial.ListTransactions(c.UserContext(), filter)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.TransactionResponse, 0, len(rows))
	for _, t := range rows {
		out = append(out, analytics.ToTransactionResponse(t))
	}
	return c.JSON(out)
}

// DeleteTransaction godoc
// @Summary      Borrar asiento (corrección administrativa)
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del asiento"
// @Success      200  {object}  dto.DeletedResponse
// @Router       /api/transactions/{id} [delete]
func (h *LedgerHandler) DeleteTransaction(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	ok, err := h.financial.DeleteTransaction(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DeletedResponse{Deleted: ok})
}

// ── Patrimônio ────────────────────────────────────────────────────────────────

// RecordContribution godoc
// @Summary      Registrar aporte de socio
// @Tags         equity
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EquityRequest  true  "Aporte"
// @Success      201   {object}  dto.IDResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/equity/contributions [post]
func (h *LedgerHandler) RecordContribution(c *fiber.Ctx) error {
	return h.recordEquity(c, h.equity.RecordContribution)
}

// RecordWithdrawal godoc
// @Summary      Registrar retiro de socio
// @Description  No valida contra el saldo del socio.
// @Tags         equity
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EquityRequest  true  "Retiro"
// @Success      201   {object}  dto.IDResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/equity/withdrawals [post]
func (h *LedgerHandler) RecordWithdrawal(c *fiber.Ctx) error {
	return h.recordEquity(c, h.equity.RecordWithdrawal)
}

func (h *LedgerHandler) recordEquity(c *fiber.Ctx, record func(ctx context.Context, in ledger.EquityInput) (int64, error)) error {
	var in dto.EquityRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	date, err := parseDate("date", in.Date)
	if err != nil {
		return writeError(c, err)
	}
	id, err := record(c.UserContext(), ledger.EquityInput{
		PartnerID: in.PartnerID,
		Amount:    in.Amount,
		Date:      date,
		Memo:      in.Memo,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.IDResponse{ID: id})
}

// parseDate lee YYYY-MM-DD; vacío devuelve la fecha cero.
func parseDate(field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, domain.NewValidationError(field, "formato esperado YYYY-MM-DD")
	}
	return d, nil
}

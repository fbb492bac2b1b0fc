package assistant_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ledger-api/internal/application/assistant"
	"github.com/jhoicas/ledger-api/internal/application/ledger"
	"github.com/jhoicas/ledger-api/internal/application/usecase"
	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/intent"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
	"github.com/jhoicas/ledger-api/internal/infrastructure/session"
	"github.com/jhoicas/ledger-api/internal/infrastructure/sqlite"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeResolver struct {
	envelope *intent.Envelope
	err      error
	delay    time.Duration
	last     intent.ResolveRequest
}

func (f *fakeResolver) Resolve(ctx context.Context, req intent.ResolveRequest) (*intent.Envelope, error) {
	f.last = req
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	env := *f.envelope
	return &env, nil
}

type fakeParser struct {
	records []intent.Record
	err     error
}

func (f *fakeParser) ParseStatement(context.Context, []byte) ([]intent.Record, error) {
	return f.records, f.err
}

// flakyStore envuelve el store en memoria y permite hacer fallar Save.
type flakyStore struct {
	*session.MemoryStore
	failSave bool
}

var errStoreDown = errors.New("store caído")

func (s *flakyStore) Save(ctx context.Context, conv *intent.Conversation) error {
	if s.failSave {
		return errStoreDown
	}
	return s.MemoryStore.Save(ctx, conv)
}

type statusRecorder struct {
	statuses []string
}

func (r *statusRecorder) ObserveResolution(status string, _ time.Duration) {
	r.statuses = append(r.statuses, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type harness struct {
	assistant *assistant.Assistant
	resolver  *fakeResolver
	parser    *fakeParser
	metrics   *statusRecorder
	store     *flakyStore
	runner    ledger.TxRunner
	repos     ledger.TxRepos
	financial *ledger.FinancialUseCase
	stock     *ledger.StockUseCase
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctx := context.Background()
	st, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "ledger.db"), sqlite.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	runner := sqlite.NewTxRunner(st.DB())
	repos := sqlite.Repos(st.DB())
	stock := ledger.NewStockUseCase(runner, repos.Movements, repos.Products, nil)
	intake := ledger.NewIntakeUseCase(stock)
	financial := ledger.NewFinancialUseCase(runner, repos.Transactions, nil)

	h := &harness{
		resolver:  &fakeResolver{},
		parser:    &fakeParser{},
		metrics:   &statusRecorder{},
		store:     &flakyStore{MemoryStore: session.NewMemoryStore(time.Hour)},
		runner:    runner,
		repos:     repos,
		financial: financial,
		stock:     stock,
	}
	h.assistant = assistant.New(assistant.Config{
		Dispatcher: assistant.NewDispatcher(assistant.DispatcherDeps{
			Financial: financial,
			Sales:     ledger.NewSaleUseCase(runner, nil),
			Stock:     stock,
			Equity:    ledger.NewEquityUseCase(runner, nil),
			Products:  usecase.NewProductUseCase(repos.Products, intake),
			Companies: usecase.NewCompanyUseCase(repos.Companies),
		}),
		Resolver: h.resolver,
		Parser:   h.parser,
		Store:    h.store,
		Products: repos.Products,
		Partners: repos.Partners,
		Metrics:  h.metrics,
		Logger:   zerolog.Nop(),
		Timeout:  200 * time.Millisecond,
	})
	return h
}

func amount(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

func i64(v int64) *int64 { return &v }

func boolPtr(v bool) *bool { return &v }

func (h *harness) transactions(t *testing.T) []*entity.Transaction {
	t.Helper()
	list, err := h.financial.ListTransactions(context.Background(), repository.TransactionFilter{})
	require.NoError(t, err)
	return list
}

func completeExpense() *intent.Envelope {
	return &intent.Envelope{
		Intent: intent.SaveTransaction,
		Status: intent.StatusComplete,
		Data: intent.Data{
			Amount:      amount("45.50"),
			Type:        entity.TransactionExpense,
			Category:    "Transporte",
			Description: "Uber",
			Date:        "2026-03-02",
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Conversación
// ──────────────────────────────────────────────────────────────────────────────

func TestChat_NoEscribeHastaConfirmar(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.resolver.envelope = completeExpense()

	res, err := h.assistant.Chat(ctx, "", "paguei 45,50 de uber", "")
	require.NoError(t, err)
	require.NotEmpty(t, res.ConversationID)
	assert.Equal(t, intent.StatusComplete, res.Envelope.Status)
	assert.Empty(t, h.transactions(t), "chat nunca escribe en el libro")

	applied, err := h.assistant.Confirm(ctx, res.ConversationID)
	require.NoError(t, err)
	assert.Equal(t, intent.SaveTransaction, applied.Intent)

	list := h.transactions(t)
	require.Len(t, list, 1)
	assert.True(t, list[0].Amount.Equal(decimal.RequireFromString("45.50")))
	assert.Equal(t, "Transporte", list[0].Category)
	assert.Equal(t, "2026-03-02", list[0].Date.Format(time.DateOnly))

	_, err = h.assistant.Confirm(ctx, res.ConversationID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el pendiente se descarta al aplicarse")
	assert.Len(t, h.transactions(t), 1)
}

func TestChat_PasaContextoAlResolvedor(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	company := &entity.Company{Name: "Ateliê", CreatedAt: time.Now()}
	require.NoError(t, h.repos.Companies.Create(ctx, company))
	require.NoError(t, h.repos.Products.Create(ctx, &entity.Product{
		CompanyID: company.ID, Name: "Widget", Price: decimal.NewFromInt(10), CreatedAt: time.Now(),
	}))

	h.resolver.envelope = &intent.Envelope{
		Intent: intent.RegisterSale, Status: intent.StatusIncomplete,
		Data: intent.Data{ProductName: "Widget"}, MissingFields: []string{"amount"},
	}
	first, err := h.assistant.Chat(ctx, "", "vendi widget", intent.RegisterSale)
	require.NoError(t, err)
	assert.Equal(t, intent.RegisterSale, h.resolver.last.SuggestedIntent)
	require.Len(t, h.resolver.last.Products, 1)
	assert.Equal(t, "Widget", h.resolver.last.Products[0].Name)
	assert.Nil(t, h.resolver.last.Pending)

	_, err = h.assistant.Chat(ctx, first.ConversationID, "foi 20 reais", "")
	require.NoError(t, err)
	require.NotNil(t, h.resolver.last.Pending, "el segundo turno recibe el sobre pendiente")
	assert.Equal(t, []string{"amount"}, h.resolver.last.Pending.MissingFields)
}

func TestConfirm_IncompletoNoEscribe(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.resolver.envelope = &intent.Envelope{
		Intent: intent.SaveTransaction, Status: intent.StatusIncomplete, MissingFields: []string{"amount"},
	}
	res, err := h.assistant.Chat(ctx, "", "paguei o aluguel", "")
	require.NoError(t, err)

	_, err = h.assistant.Confirm(ctx, res.ConversationID)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Reason, "amount")
	assert.Empty(t, h.transactions(t))
}

func TestChat_IntencionDesconocidaQuedaIncompleta(t *testing.T) {
	h := newHarness(t)
	h.resolver.envelope = &intent.Envelope{Intent: "ORDER_PIZZA", Status: intent.StatusComplete}

	res, err := h.assistant.Chat(context.Background(), "", "quero pizza", "")
	require.NoError(t, err)
	assert.Equal(t, intent.StatusIncomplete, res.Envelope.Status)
	assert.Contains(t, res.Envelope.MissingFields, "intent")
}

func TestChat_TimeoutDelResolvedorVuelveEnElSobre(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.resolver.envelope = completeExpense()
	first, err := h.assistant.Chat(ctx, "", "paguei 45,50 de uber", "")
	require.NoError(t, err)

	h.resolver.delay = time.Second
	res, err := h.assistant.Chat(ctx, first.ConversationID, "e mais 10", "")
	require.NoError(t, err)
	assert.Equal(t, intent.StatusIncomplete, res.Envelope.Status)
	assert.NotEmpty(t, res.Envelope.Error)
	assert.Equal(t, []string{intent.StatusComplete, "ERROR"}, h.metrics.statuses)

	// el pendiente anterior sigue disponible
	applied, err := h.assistant.Confirm(ctx, first.ConversationID)
	require.NoError(t, err)
	assert.Equal(t, intent.SaveTransaction, applied.Intent)
}

func TestChat_ErrorDelResolvedor(t *testing.T) {
	h := newHarness(t)
	h.resolver.err = errors.New("quota exceeded")

	res, err := h.assistant.Chat(context.Background(), "", "oi", "")
	require.NoError(t, err)
	assert.Contains(t, res.Envelope.Error, "quota exceeded")
}

func TestChat_Validaciones(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.assistant.Chat(ctx, "", "   ", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = h.assistant.Chat(ctx, "no-es-uuid", "oi", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = h.assistant.Chat(ctx, "", "oi", "ORDER_PIZZA")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConfirm_ConversacionInexistente(t *testing.T) {
	h := newHarness(t)
	_, err := h.assistant.Confirm(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCancel_DescartaPendiente(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.resolver.envelope = completeExpense()
	res, err := h.assistant.Chat(ctx, "", "paguei 45,50 de uber", "")
	require.NoError(t, err)

	require.NoError(t, h.assistant.Cancel(ctx, res.ConversationID))
	_, err = h.assistant.Confirm(ctx, res.ConversationID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, h.transactions(t))
}

func TestConfirm_FalloDelLibroConservaPendiente(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.resolver.envelope = &intent.Envelope{
		Intent: intent.RegisterSale, Status: intent.StatusComplete,
		Data: intent.Data{ProductID: i64(999), Amount: amount("20"), Quantity: i64(2)},
	}
	res, err := h.assistant.Chat(ctx, "", "vendi 2 widgets por 20", "")
	require.NoError(t, err)

	_, err = h.assistant.Confirm(ctx, res.ConversationID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = h.assistant.Confirm(ctx, res.ConversationID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "el pendiente se conserva para corregirlo")
}

func TestConfirm_FalloDelStoreNoAplica(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.resolver.envelope = completeExpense()
	res, err := h.assistant.Chat(ctx, "", "paguei 45,50 de uber", "")
	require.NoError(t, err)

	h.store.failSave = true
	_, err = h.assistant.Confirm(ctx, res.ConversationID)
	require.ErrorIs(t, err, domain.ErrStorage)
	assert.Empty(t, h.transactions(t), "sin retirar el pendiente no se escribe en el libro")

	h.store.failSave = false
	_, err = h.assistant.Confirm(ctx, res.ConversationID)
	require.NoError(t, err)
	_, err = h.assistant.Confirm(ctx, res.ConversationID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Len(t, h.transactions(t), 1, "el reintento aplica una sola vez")
}

// ──────────────────────────────────────────────────────────────────────────────
// Despacho de intenciones
// ──────────────────────────────────────────────────────────────────────────────

func TestDispatcher_RegisterSaleDivideElTotal(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.resolver.envelope = &intent.Envelope{
		Intent: intent.CreateProduct, Status: intent.StatusComplete,
		Data: intent.Data{Description: "Widget", Amount: amount("5"), Quantity: i64(10)},
	}
	res, err := h.assistant.Chat(ctx, "", "cadastra widget", "")
	require.NoError(t, err)
	created, err := h.assistant.Confirm(ctx, res.ConversationID)
	require.NoError(t, err)

	h.resolver.envelope = &intent.Envelope{
		Intent: intent.RegisterSale, Status: intent.StatusComplete,
		Data: intent.Data{ProductID: i64(created.ID), Amount: amount("29.70"), Quantity: i64(3)},
	}
	res, err = h.assistant.Chat(ctx, res.ConversationID, "vendi 3 por 29,70", "")
	require.NoError(t, err)
	sale, err := h.assistant.Confirm(ctx, res.ConversationID)
	require.NoError(t, err)
	assert.Equal(t, intent.RegisterSale, sale.Intent)

	level, err := h.stock.CurrentStockLevel(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), level)

	revenues, err := h.financial.ListTransactions(ctx, repository.TransactionFilter{Type: entity.TransactionRevenue})
	require.NoError(t, err)
	require.Len(t, revenues, 1)
	assert.True(t, revenues[0].Amount.Equal(decimal.RequireFromString("29.70")))
}

func TestDispatcher_TotalesQueNoSeDividenSeRegistranExactos(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	d := assistantDispatcher(h)
	company := &entity.Company{Name: "Ateliê", CreatedAt: time.Now()}
	require.NoError(t, h.repos.Companies.Create(ctx, company))
	product := &entity.Product{CompanyID: company.ID, Name: "Caneca", Price: decimal.NewFromInt(4), CreatedAt: time.Now()}
	require.NoError(t, h.repos.Products.Create(ctx, product))

	_, err := d.Apply(ctx, &intent.Envelope{
		Intent: intent.StockMovement, Status: intent.StatusComplete,
		Data: intent.Data{ProductID: i64(product.ID), Amount: amount("10"), Quantity: i64(3), IsPaid: boolPtr(true)},
	})
	require.NoError(t, err)

	_, err = d.Apply(ctx, &intent.Envelope{
		Intent: intent.RegisterSale, Status: intent.StatusComplete,
		Data: intent.Data{ProductID: i64(product.ID), Amount: amount("10"), Quantity: i64(3)},
	})
	require.NoError(t, err)

	expenses, err := h.financial.ListTransactions(ctx, repository.TransactionFilter{Type: entity.TransactionExpense})
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, "10", expenses[0].Amount.String())

	revenues, err := h.financial.ListTransactions(ctx, repository.TransactionFilter{Type: entity.TransactionRevenue})
	require.NoError(t, err)
	require.Len(t, revenues, 1)
	assert.Equal(t, "10", revenues[0].Amount.String())

	movs, err := h.repos.Movements.ListByProduct(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	for _, m := range movs {
		assert.Equal(t, "3.3333", m.UnitCost.String(), m.Type)
	}
}

func TestDispatcher_CreateProductCreaEmpresaPorDefecto(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	d := assistantDispatcher(h)

	res, err := d.Apply(ctx, &intent.Envelope{
		Intent: intent.CreateProduct, Status: intent.StatusComplete,
		Data: intent.Data{ProductName: "Caneca", Amount: amount("25")},
	})
	require.NoError(t, err)
	assert.NotZero(t, res.ID)

	companies, err := h.repos.Companies.List(ctx)
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, assistant.DefaultCompanyName, companies[0].Name)

	// la segunda alta reutiliza la empresa existente
	_, err = d.Apply(ctx, &intent.Envelope{
		Intent: intent.CreateProduct, Status: intent.StatusComplete,
		Data: intent.Data{ProductName: "Prato"},
	})
	require.NoError(t, err)
	companies, err = h.repos.Companies.List(ctx)
	require.NoError(t, err)
	assert.Len(t, companies, 1)
}

func TestDispatcher_EnvelopeInvalido(t *testing.T) {
	h := newHarness(t)
	d := assistantDispatcher(h)
	ctx := context.Background()

	_, err := d.Apply(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = d.Apply(ctx, &intent.Envelope{Intent: intent.SaveTransaction, Status: intent.StatusComplete, Error: "timeout"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = d.Apply(ctx, &intent.Envelope{
		Intent: intent.SaveTransaction, Status: intent.StatusComplete,
		Data: intent.Data{Amount: amount("10"), Type: entity.TransactionRevenue, Date: "02/03/2026"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Importación por lotes
// ──────────────────────────────────────────────────────────────────────────────

func TestImportStatement_SoloSaveTransaction(t *testing.T) {
	h := newHarness(t)
	h.parser.records = []intent.Record{
		{Data: intent.Data{Amount: amount("10"), Type: entity.TransactionExpense}},
		{Intent: intent.RegisterSale, Data: intent.Data{Amount: amount("5")}},
		{Intent: intent.SaveTransaction, Data: intent.Data{Amount: amount("90"), Type: entity.TransactionRevenue}},
	}

	records, err := h.assistant.ImportStatement(context.Background(), []byte("extrato"))
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, r := range records {
		assert.Equal(t, intent.SaveTransaction, r.Intent)
	}
	assert.Empty(t, h.transactions(t), "la importación no escribe nada")

	_, err = h.assistant.ImportStatement(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplyBatch_FallosLocales(t *testing.T) {
	h := newHarness(t)
	records := []intent.Record{
		{Intent: intent.SaveTransaction, Data: intent.Data{Amount: amount("10"), Type: entity.TransactionExpense, Description: "Tarifa"}},
		{Intent: intent.SaveTransaction, Data: intent.Data{Amount: amount("-3"), Type: entity.TransactionExpense}},
		{Intent: intent.SaveTransaction, Data: intent.Data{Type: entity.TransactionRevenue}},
		{Intent: intent.SaveTransaction, Data: intent.Data{Amount: amount("250"), Type: entity.TransactionRevenue, Description: "PIX"}},
	}

	res := h.assistant.ApplyBatch(context.Background(), records)
	assert.Equal(t, 2, res.SuccessCount)
	assert.Equal(t, 2, res.ErrorCount)
	require.Len(t, res.Failures, 2)
	assert.Equal(t, 1, res.Failures[0].Index)
	assert.Equal(t, 2, res.Failures[1].Index)
	assert.Len(t, h.transactions(t), 2)
}

func assistantDispatcher(h *harness) *assistant.Dispatcher {
	return assistant.NewDispatcher(assistant.DispatcherDeps{
		Financial: h.financial,
		Sales:     ledger.NewSaleUseCase(h.runner, nil),
		Stock:     h.stock,
		Equity:    ledger.NewEquityUseCase(h.runner, nil),
		Products:  usecase.NewProductUseCase(h.repos.Products, ledger.NewIntakeUseCase(h.stock)),
		Companies: usecase.NewCompanyUseCase(h.repos.Companies),
	})
}

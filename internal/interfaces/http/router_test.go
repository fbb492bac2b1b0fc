package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ledger-api/internal/application/analytics"
	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/application/ledger"
	"github.com/jhoicas/ledger-api/internal/application/usecase"
	"github.com/jhoicas/ledger-api/internal/infrastructure/sqlite"
	apphttp "github.com/jhoicas/ledger-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/ledger-api/pkg/jwt"
)

// buildLedgerApp monta el router completo sobre una base SQLite temporal.
func buildLedgerApp(t *testing.T, secret string) *fiber.App {
	t.Helper()
	st, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "ledger.db"), sqlite.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	runner := sqlite.NewTxRunner(st.DB())
	repos := sqlite.Repos(st.DB())
	fixed := sqlite.NewFixedExpenseRepository(st.DB())
	stock := ledger.NewStockUseCase(runner, repos.Movements, repos.Products, nil)
	intake := ledger.NewIntakeUseCase(stock)
	reports := analytics.NewReportUseCase(analytics.Repos{
		Products:      repos.Products,
		Movements:     repos.Movements,
		Transactions:  repos.Transactions,
		Equity:        repos.Equity,
		Partners:      repos.Partners,
		FixedExpenses: fixed,
	})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CompanyUC:      usecase.NewCompanyUseCase(repos.Companies),
		PartnerUC:      usecase.NewPartnerUseCase(repos.Partners, repos.Companies),
		FixedExpenseUC: usecase.NewFixedExpenseUseCase(fixed, repos.Companies),
		ProductUC:      usecase.NewProductUseCase(repos.Products, intake),
		Ledger: apphttp.LedgerUseCases{
			Stock:     stock,
			Intake:    intake,
			Sales:     ledger.NewSaleUseCase(runner, nil),
			Financial: ledger.NewFinancialUseCase(runner, repos.Transactions, nil),
			Equity:    ledger.NewEquityUseCase(runner, nil),
		},
		Reports:   reports,
		Dashboard: analytics.NewDashboardUseCase(reports),
		JWTSecret: secret,
	})
	return app
}

// call ejecuta la petición y decodifica el cuerpo JSON en out (si no es nil).
func call(t *testing.T, app *fiber.App, method, path, auth string, body any, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestRouter_FlujoDeVenta(t *testing.T) {
	app := buildLedgerApp(t, "")

	var company dto.CompanyResponse
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/companies", "", fiber.Map{"name": "Loja Centro"}, &company))

	var product dto.ProductResponse
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/products", "",
		fiber.Map{"company_id": company.ID, "name": "Widget", "price": "19.90"}, &product))

	var mov dto.MovementResponse
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/stock/intake", "",
		fiber.Map{"product_id": product.ID, "quantity": 10, "unit_cost": "5", "is_paid": true}, &mov))
	require.NotNil(t, mov.ExpenseID)

	var sale dto.SaleResponse
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/sales", "",
		fiber.Map{"product_id": product.ID, "quantity": 4, "unit_price": "20"}, &sale))
	assert.Equal(t, "80", sale.Total.String())
	assert.Equal(t, int64(6), sale.Remaining)

	var stockErr dto.ErrorResponse
	assert.Equal(t, http.StatusConflict, call(t, app, http.MethodPost, "/api/sales", "",
		fiber.Map{"product_id": product.ID, "quantity": 7, "unit_price": "20"}, &stockErr))
	assert.Equal(t, "INSUFFICIENT_STOCK", stockErr.Code)

	var level dto.StockLevelResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/products/"+itoa(product.ID)+"/stock", "", nil, &level))
	assert.Equal(t, int64(6), level.Stock)

	var kpis dto.KPIDTO
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/reports/kpis?period=all", "", nil, &kpis))
	assert.Equal(t, "80", kpis.Revenue.String())
	assert.Equal(t, "50", kpis.Expenses.String())
	assert.Equal(t, "20", kpis.COGS.String())
}

func TestRouter_ErroresDeEntrada(t *testing.T) {
	app := buildLedgerApp(t, "")

	var e dto.ErrorResponse
	assert.Equal(t, http.StatusBadRequest, call(t, app, http.MethodPost, "/api/transactions", "",
		fiber.Map{"type": "Lucro", "amount": "10"}, &e))

	e = dto.ErrorResponse{}
	assert.Equal(t, http.StatusBadRequest, call(t, app, http.MethodPost, "/api/transactions", "",
		fiber.Map{"type": "Despesa", "amount": "0"}, &e))
	assert.Equal(t, "VALIDATION", e.Code)

	e = dto.ErrorResponse{}
	assert.Equal(t, http.StatusNotFound, call(t, app, http.MethodGet, "/api/products/999/stock", "", nil, &e))
	assert.Equal(t, "NOT_FOUND", e.Code)

	assert.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/companies", "", fiber.Map{"name": "A"}, nil))
	e = dto.ErrorResponse{}
	assert.Equal(t, http.StatusConflict, call(t, app, http.MethodPost, "/api/companies", "", fiber.Map{"name": "A"}, &e))
	assert.Equal(t, "DUPLICATE", e.Code)
}

func TestRouter_BorradoSoloAdmin(t *testing.T) {
	const secret = "router-test-secret"
	app := buildLedgerApp(t, secret)
	token := func(role string) string {
		tok, err := pkgjwt.Generate(secret, testSubject, testCompanyID, role, testIssuer, testExpMin)
		require.NoError(t, err)
		return "Bearer " + tok
	}

	assert.Equal(t, http.StatusUnauthorized, call(t, app, http.MethodGet, "/api/companies", "", nil, nil))

	var company dto.CompanyResponse
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/companies", token(pkgjwt.RoleOperator),
		fiber.Map{"name": "Loja"}, &company))

	path := "/api/companies/" + itoa(company.ID)
	assert.Equal(t, http.StatusForbidden, call(t, app, http.MethodDelete, path, token(pkgjwt.RoleOperator), nil, nil))
	assert.Equal(t, http.StatusOK, call(t, app, http.MethodDelete, path, token(pkgjwt.RoleAdmin), nil, nil))
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

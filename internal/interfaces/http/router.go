package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ledger-api/internal/application/analytics"
	"github.com/jhoicas/ledger-api/internal/application/assistant"
	"github.com/jhoicas/ledger-api/internal/application/usecase"
	"github.com/jhoicas/ledger-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC      *usecase.CompanyUseCase
	PartnerUC      *usecase.PartnerUseCase
	FixedExpenseUC *usecase.FixedExpenseUseCase
	ProductUC      *usecase.ProductUseCase
	Ledger         LedgerUseCases
	Reports        *analytics.ReportUseCase
	Dashboard      *analytics.DashboardUseCase
	Assistant      *assistant.Assistant // nil = sin front end conversacional
	JWTSecret      string               // vacío = API sin autenticación
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	if deps.JWTSecret != "" {
		api.Use(AuthMiddleware(deps.JWTSecret))
	}
	// Los borrados administrativos exigen rol admin cuando hay autenticación.
	adminOnly := func(c *fiber.Ctx) error { return c.Next() }
	if deps.JWTSecret != "" {
		adminOnly = RequireRole(jwt.RoleAdmin)
	}

	// Companies, partners, fixed expenses
	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.PartnerUC, deps.FixedExpenseUC)
	companies := api.Group("/companies")
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Patch("/:id", companyHandler.Rename)
	companies.Delete("/:id", adminOnly, companyHandler.Delete)

	api.Get("/partners", companyHandler.ListPartners)
	api.Post("/partners", companyHandler.CreatePartner)
	api.Get("/fixed-expenses", companyHandler.ListFixedExpenses)
	api.Post("/fixed-expenses", companyHandler.CreateFixedExpense)

	// Products
	ledgerHandler := NewLedgerHandler(deps.Ledger)
	productHandler := NewProductHandler(deps.ProductUC)
	products := api.Group("/products")
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/stock", ledgerHandler.StockLevel)
	products.Put("/:id/price", productHandler.UpdatePrice)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Ledgers
	api.Post("/stock/movements", ledgerHandler.RecordMovement)
	api.Post("/stock/intake", ledgerHandler.RegisterIntake)
	api.Post("/sales", ledgerHandler.RegisterSale)
	api.Post("/transactions", ledgerHandler.RecordTransaction)
	api.Get("/transactions", ledgerHandler.ListTransactions)
	api.Delete("/transactions/:id", adminOnly, ledgerHandler.DeleteTransaction)
	api.Post("/equity/contributions", ledgerHandler.RecordContribution)
	api.Post("/equity/withdrawals", ledgerHandler.RecordWithdrawal)

	// Reports
	reportHandler := NewReportHandler(deps.Reports, deps.Dashboard)
	reports := api.Group("/reports")
	reports.Get("/inventory", reportHandler.Inventory)
	reports.Get("/kpis", reportHandler.KPIs)
	reports.Get("/partners", reportHandler.Partners)
	reports.Get("/alerts", reportHandler.Alerts)
	reports.Get("/channels", reportHandler.Channels)
	reports.Get("/categories", reportHandler.Categories)
	reports.Get("/recent", reportHandler.Recent)
	api.Get("/dashboard", reportHandler.Dashboard)

	// Assistant
	if deps.Assistant != nil {
		assistantHandler := NewAssistantHandler(deps.Assistant)
		api.Post("/chat", assistantHandler.Chat)
		api.Post("/chat/confirm", assistantHandler.Confirm)
		api.Post("/chat/cancel", assistantHandler.Cancel)
		api.Post("/import/statement", assistantHandler.ImportStatement)
		api.Post("/import/apply", assistantHandler.ApplyBatch)
	}
}

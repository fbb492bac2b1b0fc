package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	appanalytics "github.com/jhoicas/ledger-api/internal/application/analytics"
	"github.com/jhoicas/ledger-api/internal/application/assistant"
	"github.com/jhoicas/ledger-api/internal/application/ledger"
	"github.com/jhoicas/ledger-api/internal/application/ports"
	"github.com/jhoicas/ledger-api/internal/application/usecase"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
	infraai "github.com/jhoicas/ledger-api/internal/infrastructure/ai"
	"github.com/jhoicas/ledger-api/internal/infrastructure/metrics"
	"github.com/jhoicas/ledger-api/internal/infrastructure/migrations"
	"github.com/jhoicas/ledger-api/internal/infrastructure/postgres"
	"github.com/jhoicas/ledger-api/internal/infrastructure/session"
	"github.com/jhoicas/ledger-api/internal/infrastructure/sqlite"
	httpRouter "github.com/jhoicas/ledger-api/internal/interfaces/http"
	"github.com/jhoicas/ledger-api/pkg/config"
	"github.com/jhoicas/ledger-api/pkg/logger"
)

// storage repositorios y runner del motor elegido.
type storage struct {
	runner ledger.TxRunner
	repos  ledger.TxRepos
	fixed  repository.FixedExpenseRepository
	close  func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer store.close()

	m := metrics.New(nil)
	repos := store.repos

	stockUC := ledger.NewStockUseCase(store.runner, repos.Movements, repos.Products, m)
	intakeUC := ledger.NewIntakeUseCase(stockUC)
	saleUC := ledger.NewSaleUseCase(store.runner, m)
	financialUC := ledger.NewFinancialUseCase(store.runner, repos.Transactions, m)
	equityUC := ledger.NewEquityUseCase(store.runner, m)

	companyUC := usecase.NewCompanyUseCase(repos.Companies)
	partnerUC := usecase.NewPartnerUseCase(repos.Partners, repos.Companies)
	fixedUC := usecase.NewFixedExpenseUseCase(store.fixed, repos.Companies)
	productUC := usecase.NewProductUseCase(repos.Products, intakeUC)

	reportUC := appanalytics.NewReportUseCase(appanalytics.Repos{
		Products:      repos.Products,
		Movements:     repos.Movements,
		Transactions:  repos.Transactions,
		Equity:        repos.Equity,
		Partners:      repos.Partners,
		FixedExpenses: store.fixed,
	})
	dashboardUC := appanalytics.NewDashboardUseCase(reportUC)

	var assistantSvc *assistant.Assistant
	if resolver, parser, ok := newIntentAdapters(cfg.AI); ok {
		convStore, closeStore := newConversationStore(cfg.Redis)
		defer closeStore()
		assistantSvc = assistant.New(assistant.Config{
			Dispatcher: assistant.NewDispatcher(assistant.DispatcherDeps{
				Financial: financialUC,
				Sales:     saleUC,
				Stock:     stockUC,
				Equity:    equityUC,
				Products:  productUC,
				Companies: companyUC,
			}),
			Resolver: resolver,
			Parser:   parser,
			Store:    convStore,
			Products: repos.Products,
			Partners: repos.Partners,
			Metrics:  m,
			Logger:   log.Component("assistant"),
			Timeout:  cfg.AI.Timeout,
		})
	} else {
		log.Warn().Str("provider", cfg.AI.Provider).Msg("sin API key del proveedor de IA: /api/chat deshabilitado")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    cfg.HTTP.BodyLimitMB * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Ledger API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "db": cfg.DB.Driver})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: API sin autenticación")
	}
	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:      companyUC,
		PartnerUC:      partnerUC,
		FixedExpenseUC: fixedUC,
		ProductUC:      productUC,
		Ledger: httpRouter.LedgerUseCases{
			Stock:     stockUC,
			Intake:    intakeUC,
			Sales:     saleUC,
			Financial: financialUC,
			Equity:    equityUC,
		},
		Reports:   reportUC,
		Dashboard: dashboardUC,
		Assistant: assistantSvc,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStorage abre el motor configurado. SQLite siempre migra al abrir; PostgreSQL
// solo con DB_AUTO_MIGRATE.
func openStorage(ctx context.Context, cfg config.DBConfig) (*storage, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		st, err := sqlite.Open(ctx, cfg.SQLitePath, sqlite.Options{})
		if err != nil {
			return nil, err
		}
		return &storage{
			runner: sqlite.NewTxRunner(st.DB()),
			repos:  sqlite.Repos(st.DB()),
			fixed:  sqlite.NewFixedExpenseRepository(st.DB()),
			close:  func() { _ = st.Close() },
		}, nil
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			db := postgres.OpenSQL(pool)
			err := migrations.Up(ctx, db, migrations.EnginePostgres)
			_ = db.Close()
			if err != nil {
				pool.Close()
				return nil, err
			}
		}
		return &storage{
			runner: postgres.NewTxRunner(pool),
			repos:  postgres.Repos(pool),
			fixed:  postgres.NewFixedExpenseRepository(pool),
			close:  pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("motor desconocido %q", cfg.Driver)
	}
}

// newIntentAdapters elige el proveedor de IA. ok=false si falta la API key.
func newIntentAdapters(cfg config.AIConfig) (ports.IntentResolver, ports.StatementParser, bool) {
	switch cfg.Provider {
	case "anthropic":
		if cfg.AnthropicKey == "" {
			return nil, nil, false
		}
		svc := infraai.NewAnthropicService(cfg.AnthropicKey, cfg.AnthropicModel)
		return svc, svc, true
	default:
		if cfg.GeminiAPIKey == "" {
			return nil, nil, false
		}
		svc := infraai.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel)
		return svc, svc, true
	}
}

// newConversationStore usa Redis si hay dirección; si no, memoria del proceso.
func newConversationStore(cfg config.RedisConfig) (ports.ConversationStore, func()) {
	if cfg.Addr == "" {
		return session.NewMemoryStore(cfg.ConversationTTL), func() {}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return session.NewRedisStore(client, cfg.ConversationTTL), func() { _ = client.Close() }
}

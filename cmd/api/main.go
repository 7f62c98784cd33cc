package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/helados-api/internal/application/audit"
	"github.com/jhoicas/helados-api/internal/application/cash"
	"github.com/jhoicas/helados-api/internal/application/inventory"
	"github.com/jhoicas/helados-api/internal/application/localsales"
	"github.com/jhoicas/helados-api/internal/application/ownersales"
	"github.com/jhoicas/helados-api/internal/application/payments"
	"github.com/jhoicas/helados-api/internal/application/purchases"
	"github.com/jhoicas/helados-api/internal/application/receipts"
	"github.com/jhoicas/helados-api/internal/application/transfers"
	"github.com/jhoicas/helados-api/internal/application/trips"
	"github.com/jhoicas/helados-api/internal/application/workers"
	infrapdf "github.com/jhoicas/helados-api/internal/infrastructure/pdf"
	"github.com/jhoicas/helados-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/helados-api/internal/interfaces/http"
	"github.com/jhoicas/helados-api/pkg/config"
	"github.com/jhoicas/helados-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	txRunner := postgres.NewTxRunner(pool)
	repos := postgres.NewRepos(pool)

	invLedger := inventory.NewLedger(cfg.Inventory.DefaultMinStock)
	cashLedger := cash.NewLedger()

	inventoryUC := inventory.NewUseCase(txRunner, repos.Inventory, invLedger)
	tripsUC := trips.NewUseCase(txRunner, repos, invLedger, cashLedger)
	ownerSalesUC := ownersales.NewUseCase(txRunner, repos, invLedger, cashLedger)
	transfersUC := transfers.NewUseCase(txRunner, repos.Transfers, invLedger)
	localSalesUC := localsales.NewUseCase(txRunner, repos.LocalSales, invLedger, cashLedger)
	purchasesUC := purchases.NewUseCase(txRunner, repos.Purchases, invLedger)
	cashUC := cash.NewUseCase(txRunner, repos.Cash, cashLedger)
	paymentsUC := payments.NewUseCase(txRunner, repos.Payments)
	workersUC := workers.NewUseCase(txRunner, repos)
	auditUC := audit.NewUseCase(repos.Audit)

	// PDF: comprobante de liquidación
	receiptsUC := receipts.NewUseCase(tripsUC, ownerSalesUC, infrapdf.NewMarotoPDFGenerator(), cfg.Business.Name)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Helados API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db_unavailable", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		InventoryUC:  inventoryUC,
		TripsUC:      tripsUC,
		OwnerSalesUC: ownerSalesUC,
		TransfersUC:  transfersUC,
		LocalSalesUC: localSalesUC,
		PurchasesUC:  purchasesUC,
		CashUC:       cashUC,
		PaymentsUC:   paymentsUC,
		WorkersUC:    workersUC,
		AuditUC:      auditUC,
		ReceiptsUC:   receiptsUC,
		JWTSecret:    cfg.JWT.Secret,
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

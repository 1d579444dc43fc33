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

	"github.com/jhoicas/Kardex-api/internal/application/inventory"
	"github.com/jhoicas/Kardex-api/internal/application/production"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
	"github.com/jhoicas/Kardex-api/internal/infrastructure/memory"
	"github.com/jhoicas/Kardex-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Kardex-api/internal/interfaces/http"
	"github.com/jhoicas/Kardex-api/pkg/config"
	"github.com/jhoicas/Kardex-api/pkg/logger"
)

// txRunner lo cumplen postgres.TxRunner y memory.Store.
type txRunner interface {
	inventory.TxRunner
	production.TxRunner
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	ctx := context.Background()

	var (
		runner txRunner
		reads  repository.TxRepos
	)
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		store := memory.NewStore()
		runner = store
		reads = store.Repos()
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.Store.AutoSchema {
			if err := postgres.EnsureSchema(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("esquema del kardex")
			}
		}
		runner = postgres.NewTxRunner(pool)
		reads = repository.TxRepos{
			Stock:     postgres.NewStockRepository(pool),
			Movements: postgres.NewMovementRepository(pool),
			Batches:   postgres.NewProductionBatchRepository(pool),
			Staging:   postgres.NewStagingRepository(pool),
		}
	}

	stockItems := inventory.NewStockItemService(runner, reads.Stock, reads.Movements, log.Component("stock_items"))
	ledger := inventory.NewLedgerRecorder(runner, log.Component("ledger"))
	transfer := inventory.NewTransferOrchestrator(runner, log.Component("transfer"))
	blend := production.NewBlendConsumptionOrchestrator(runner, production.StagingConfig{
		CounterID:   cfg.Staging.CounterID,
		CounterName: cfg.Staging.CounterName,
	}, log.Component("blend"))
	batches := production.NewBatchService(runner, reads.Batches, reads.Staging, log.Component("batches"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	if cfg.App.DocsPath != "" {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.DocsPath,
			Path:     "docs",
			Title:    "Kardex API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		StockItems: stockItems,
		Ledger:     ledger,
		Transfer:   transfer,
		Blend:      blend,
		Batches:    batches,
		JWTSecret:  cfg.JWT.Secret,
		Log:        log.Component("http"),
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

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

	_ "github.com/jhoicas/stock-relief/docs"
	"github.com/jhoicas/stock-relief/internal/application/demo"
	"github.com/jhoicas/stock-relief/internal/application/inventory"
	"github.com/jhoicas/stock-relief/internal/application/usecase"
	"github.com/jhoicas/stock-relief/internal/domain/repository"
	"github.com/jhoicas/stock-relief/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/stock-relief/internal/infrastructure/pdf"
	"github.com/jhoicas/stock-relief/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/stock-relief/internal/interfaces/http"
	"github.com/jhoicas/stock-relief/pkg/config"
	"github.com/jhoicas/stock-relief/pkg/logger"
	"github.com/jhoicas/stock-relief/pkg/telemetry"
)

const version = "1.0.0"

// stores puertos de persistencia según el driver configurado.
type stores struct {
	txRunner     inventory.TxRunner
	movementRepo repository.MovementRepository
	stockRepo    repository.StockRepository
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
	close        func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.Storage).
		Bool("demo", cfg.App.Demo).
		Msg("iniciando aplicación")

	ctx := context.Background()

	shutdownTelemetry, err := telemetry.Setup(ctx, cfg.Telemetry, version)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar telemetría")
	}

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer st.close()

	processor := inventory.NewTransferProcessor(st.txRunner, st.productRepo, st.locationRepo, log.Component("transfer"))
	queryUC := inventory.NewQueryUseCase(st.movementRepo, st.stockRepo)
	auditUC := inventory.NewAuditUseCase(st.txRunner, log.Component("audit"))
	referenceUC := usecase.NewReferenceUseCase(st.productRepo, st.locationRepo)

	// PDF: planilla de stock disponible
	reportUC := inventory.NewReportUseCase(st.stockRepo, st.productRepo, st.locationRepo, infrapdf.NewMarotoStockSheet())

	if cfg.App.Demo {
		if _, err := demo.Load(ctx, referenceUC, processor, log.Component("demo")); err != nil {
			log.Fatal().Err(err).Msg("cargar datos demo")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Stock Relief API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Processor:   processor,
		QueryUC:     queryUC,
		ReportUC:    reportUC,
		AuditUC:     auditUC,
		ReferenceUC: referenceUC,
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
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado de telemetría")
	}

	log.Info().Msg("aplicación detenida")
}

// openStores abre PostgreSQL (aplicando migraciones) o el store en memoria.
// En modo demo sobre PostgreSQL se vacían las tablas antes de la carga.
func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	if cfg.App.Storage == config.StorageMemory {
		s := memory.NewStore()
		return &stores{
			txRunner:     s,
			movementRepo: s.MovementRepository(),
			stockRepo:    s.StockRepository(),
			productRepo:  s.ProductRepository(),
			locationRepo: s.LocationRepository(),
			close:        func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, pool, log.Component("migrations")); err != nil {
		pool.Close()
		return nil, err
	}
	if cfg.App.Demo {
		if err := postgres.Reset(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return &stores{
		txRunner:     postgres.NewTxRunner(pool),
		movementRepo: postgres.NewMovementRepository(pool),
		stockRepo:    postgres.NewStockRepository(pool),
		productRepo:  postgres.NewProductRepository(pool),
		locationRepo: postgres.NewLocationRepository(pool),
		close:        pool.Close,
	}, nil
}

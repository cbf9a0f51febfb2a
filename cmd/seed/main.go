// Command seed aplica las migraciones y carga los datos demo en PostgreSQL.
//
//	go run ./cmd/seed            # falla si ya existen los nombres demo
//	go run ./cmd/seed -reset     # vacía las tablas antes de cargar
package main

import (
	"context"
	"flag"

	"github.com/jhoicas/stock-relief/internal/application/demo"
	"github.com/jhoicas/stock-relief/internal/application/inventory"
	"github.com/jhoicas/stock-relief/internal/application/usecase"
	"github.com/jhoicas/stock-relief/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-relief/pkg/config"
	"github.com/jhoicas/stock-relief/pkg/logger"
)

func main() {
	reset := flag.Bool("reset", false, "vaciar movimientos, stock, productos y ubicaciones antes de cargar")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, log); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	if *reset {
		if err := postgres.Reset(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("vaciar tablas")
		}
		log.Info().Msg("tablas vaciadas")
	}

	productRepo := postgres.NewProductRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	ref := usecase.NewReferenceUseCase(productRepo, locationRepo)
	processor := inventory.NewTransferProcessor(postgres.NewTxRunner(pool), productRepo, locationRepo, log)

	res, err := demo.Load(ctx, ref, processor, log)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar datos demo")
	}
	log.Info().Int("applied", res.Applied).Int("rejected", res.Rejected).Msg("seed completado")
}

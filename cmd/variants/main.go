// Command variants regenera las variantes SKU de un producto o de todos los activos.
//
//	variants -product <id> [-dry-run]
//	variants [-dry-run]
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/vallas-erp/internal/application/variants"
	"github.com/jhoicas/vallas-erp/internal/domain/variant"
	"github.com/jhoicas/vallas-erp/internal/infrastructure/postgres"
	"github.com/jhoicas/vallas-erp/pkg/config"
	"github.com/jhoicas/vallas-erp/pkg/logger"
)

func main() {
	productID := flag.String("product", "", "ID del producto (vacío = todos los productos activos)")
	dryRun := flag.Bool("dry-run", false, "solo calcular, sin escribir")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	uc := variants.NewGenerateVariantsUseCase(
		postgres.NewProductRepository(pool),
		postgres.NewVariantRepository(pool),
		postgres.NewTxRunner(pool),
		variants.Config{
			Branch:          variant.Attribute{Name: cfg.Variants.BranchName, Values: cfg.Variants.BranchValues},
			MaxCombinations: cfg.Variants.MaxCombinations,
		},
		log.Component("variants"),
	)

	if *productID != "" {
		res, err := uc.Generate(ctx, *productID, *dryRun)
		if err != nil {
			log.Error().Err(err).Str("product_id", *productID).Msg("generación fallida")
			pool.Close()
			os.Exit(1)
		}
		log.Info().Interface("result", res).Msg("listo")
		return
	}

	results, errs := uc.GenerateAll(ctx, *dryRun)
	for _, err := range errs {
		log.Error().Err(err).Msg("producto omitido")
	}
	log.Info().Int("ok", len(results)).Int("failed", len(errs)).Bool("dry_run", *dryRun).Msg("regeneración en lote terminada")
	if len(errs) > 0 {
		pool.Close()
		os.Exit(1)
	}
}

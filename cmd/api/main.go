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

	"github.com/jhoicas/vallas-erp/internal/application/accounting"
	"github.com/jhoicas/vallas-erp/internal/application/inventory"
	"github.com/jhoicas/vallas-erp/internal/application/usecase"
	"github.com/jhoicas/vallas-erp/internal/application/variants"
	"github.com/jhoicas/vallas-erp/internal/domain/repository"
	"github.com/jhoicas/vallas-erp/internal/domain/variant"
	"github.com/jhoicas/vallas-erp/internal/infrastructure/cache"
	"github.com/jhoicas/vallas-erp/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/vallas-erp/internal/interfaces/http"
	"github.com/jhoicas/vallas-erp/pkg/config"
	"github.com/jhoicas/vallas-erp/pkg/logger"
)

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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Plantillas: la expansión lee siempre la base (estado activo y líneas vigentes);
	// los listados de solo lectura pasan por la caché (Redis si está configurado, si no memoria).
	templateSource := postgres.NewTemplateRepository(pool)
	var templateReads repository.TemplateRepository = templateSource
	if cfg.Accounting.TemplateCacheTTL > 0 {
		var store cache.Store = cache.NewMemoryStore()
		if cfg.Redis.Enabled() {
			client, err := cache.NewRedis(ctx, cfg.Redis)
			if err != nil {
				log.Warn().Err(err).Msg("redis no disponible, se usa caché en memoria")
			} else {
				defer client.Close()
				store = cache.NewRedisStore(client)
			}
		}
		templateReads = cache.NewTemplateCache(templateSource, store, cfg.Accounting.TemplateCacheTTL, log.Zerolog())
	}

	voucherRepo := postgres.NewVoucherRepository(pool)
	configRepo := postgres.NewConfigRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	variantRepo := postgres.NewVariantRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	permissionRepo := postgres.NewPermissionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	expandUC := accounting.NewExpandTemplateUseCase(templateSource, configRepo, voucherRepo, txRunner, log.Component("accounting"))
	voucherUC := accounting.NewVoucherUseCase(voucherRepo, txRunner, log.Component("accounting"))
	templateUC := accounting.NewTemplateUseCase(templateReads)
	variantsUC := variants.NewGenerateVariantsUseCase(productRepo, variantRepo, txRunner, variants.Config{
		Branch:          variant.Attribute{Name: cfg.Variants.BranchName, Values: cfg.Variants.BranchValues},
		MaxCombinations: cfg.Variants.MaxCombinations,
	}, log.Component("variants"))
	decrementUC := inventory.NewDecrementStockUseCase(txRunner, variantRepo, stockRepo, log.Component("inventory"))
	permissionSvc := usecase.NewPermissionService(permissionRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Vallas ERP API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db_unavailable", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Expander:    expandUC,
		Vouchers:    voucherUC,
		Templates:   templateUC,
		Variants:    variantsUC,
		Inventory:   decrementUC,
		Permissions: permissionSvc,
		JWTSecret:   cfg.JWT.Secret,
		JWTIssuer:   cfg.JWT.Issuer,
		Log:         log.Component("http"),
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

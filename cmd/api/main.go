package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appanalytics "github.com/jhoicas/taller-inventario/internal/application/analytics"
	"github.com/jhoicas/taller-inventario/internal/application/auth"
	"github.com/jhoicas/taller-inventario/internal/application/inventory"
	"github.com/jhoicas/taller-inventario/internal/application/usecase"
	infrapdf "github.com/jhoicas/taller-inventario/internal/infrastructure/pdf"
	"github.com/jhoicas/taller-inventario/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/taller-inventario/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/taller-inventario/internal/interfaces/http"
	"github.com/jhoicas/taller-inventario/pkg/config"
	"github.com/jhoicas/taller-inventario/pkg/logger"
	"github.com/jhoicas/taller-inventario/pkg/metrics"
)

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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Migraciones automáticas solo en development; en otros entornos usar cmd/migrate.
	if cfg.DB.AutoMigrate && cfg.App.IsDev() {
		db := postgres.OpenDB(pool)
		if err := postgres.Migrate(ctx, db, "up"); err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
		_ = db.Close()
		log.Info().Msg("migraciones aplicadas")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(registry)

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	priceRepo := postgres.NewSupplierPriceRepository(pool)
	vehicleRepo := postgres.NewVehicleRepository(pool)
	technicianRepo := postgres.NewTechnicianRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledger := inventory.NewLedgerReader(movementRepo)
	estimator := inventory.NewDeliveryEstimator(ledger, priceRepo, productRepo, appMetrics)
	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner, appMetrics)

	// PDF: reporte de stock del taller
	reportsUC := inventory.NewReportUseCase(
		productRepo, movementRepo, priceRepo, infrapdf.NewMarotoStockReport(),
		cfg.Workshop.Name, cfg.Workshop.Currency,
	)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	deps := httpRouter.RouterDeps{
		AuthUC:           authUC,
		ProductUC:        usecase.NewProductUseCase(productRepo),
		SupplierUC:       usecase.NewSupplierUseCase(supplierRepo, priceRepo, productRepo, cfg.Workshop.Currency),
		VehicleUC:        usecase.NewVehicleUseCase(vehicleRepo),
		TechnicianUC:     usecase.NewTechnicianUseCase(technicianRepo),
		CustomerUC:       usecase.NewCustomerUseCase(customerRepo),
		Stock:            ledger,
		Estimator:        estimator,
		RegisterMovement: registerMovementUC,
		Reports:          reportsUC,
		DashboardUC:      appanalytics.NewDashboardUseCase(productRepo, movementRepo),
		JWTSecret:        cfg.JWT.Secret,
		IdempotencyTTL:   httpRouter.DefaultIdempotencyTTL,
		Logger:           log,
		Metrics:          appMetrics,
	}

	// Redis es opcional: sin REDIS_URL los movimientos no se deduplican.
	if cfg.Redis.URL != "" {
		redisClient, err := infraredis.New(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisClient.Close()
		deps.Idempotency = redisClient
		log.Info().Msg("idempotencia habilitada (redis)")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log, appMetrics))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Taller Inventario API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	httpRouter.Router(app, deps)

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

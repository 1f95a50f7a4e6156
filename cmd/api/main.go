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

	"github.com/jhoicas/Auditoria-api/internal/application/adjustment"
	appaudit "github.com/jhoicas/Auditoria-api/internal/application/audit"
	"github.com/jhoicas/Auditoria-api/internal/application/auth"
	"github.com/jhoicas/Auditoria-api/internal/application/metrics"
	"github.com/jhoicas/Auditoria-api/internal/application/report"
	infrapdf "github.com/jhoicas/Auditoria-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Auditoria-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Auditoria-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Auditoria-api/internal/interfaces/http"
	"github.com/jhoicas/Auditoria-api/pkg/config"
	"github.com/jhoicas/Auditoria-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	// Repositorios sobre el pool (las operaciones multi-fila usan el TxRunner).
	auditRepo := postgres.NewAuditRepository(pool)
	detailRepo := postgres.NewAuditDetailRepository(pool)
	scanRepo := postgres.NewSerialScanRepository(pool)
	evidenceRepo := postgres.NewEvidenceRepository(pool)
	adjustmentRepo := postgres.NewAdjustmentRepository(pool)
	snapshotRepo := postgres.NewSnapshotRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	seqRepo := postgres.NewSequenceRepository(pool)
	metricsRepo := postgres.NewMetricsRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	serialRegistry := postgres.NewSerialRegistry(pool)
	txRunner := postgres.NewTxRunner(pool)

	blobs, err := storage.NewLocalBlobStorage(cfg.Storage.Dir, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("almacén de evidencias")
	}

	plannerUC := appaudit.NewPlannerUseCase(txRunner, auditRepo, detailRepo, warehouseRepo, categoryRepo, seqRepo)
	countUC := appaudit.NewCountUseCase(txRunner, auditRepo, detailRepo, scanRepo, evidenceRepo, serialRegistry, blobs, log)
	finalizeUC := appaudit.NewFinalizeUseCase(txRunner, auditRepo, snapshotRepo)
	adjustmentUC := adjustment.NewWorkflowUseCase(txRunner, auditRepo, detailRepo, adjustmentRepo, log)
	metricsUC := metrics.NewAggregatorUseCase(auditRepo, adjustmentRepo, metricsRepo, log)
	reportUC := report.NewAuditReportUseCase(plannerUC, finalizeUC, infrapdf.NewMarotoPDFGenerator())
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "Auditoría API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	// Evidencias servidas como estáticos desde el almacén local.
	app.Static(cfg.Storage.BaseURL, cfg.Storage.Dir)

	httpRouter.Router(app, httpRouter.RouterDeps{
		PlannerUC:    plannerUC,
		CountUC:      countUC,
		FinalizeUC:   finalizeUC,
		ReportUC:     reportUC,
		AdjustmentUC: adjustmentUC,
		MetricsUC:    metricsUC,
		AuthUC:       authUC,
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

	log.Info().Msg("apagando servidor")
	if err := app.ShutdownWithTimeout(time.Second * 10); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}

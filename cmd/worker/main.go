package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/jhoicas/Auditoria-api/internal/application/metrics"
	"github.com/jhoicas/Auditoria-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Auditoria-api/internal/jobs"
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
	log.Info().Str("redis", cfg.Redis.Addr).Msg("iniciando worker de métricas")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	auditRepo := postgres.NewAuditRepository(pool)
	adjustmentRepo := postgres.NewAdjustmentRepository(pool)
	metricsRepo := postgres.NewMetricsRepository(pool)
	metricsUC := metrics.NewAggregatorUseCase(auditRepo, adjustmentRepo, metricsRepo, log)

	worker, err := jobs.NewWorker(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, metricsUC, log)
	if err != nil {
		log.Fatal().Err(err).Msg("configurar worker")
	}

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("worker finalizado con error")
	}
	log.Info().Msg("worker detenido")
}

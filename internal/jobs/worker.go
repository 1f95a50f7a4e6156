package jobs

import (
	"context"
	"time"

	"github.com/hibiken/asynq"

	"github.com/jhoicas/Auditoria-api/internal/application/metrics"
	"github.com/jhoicas/Auditoria-api/pkg/logger"
)

// CronMetricsRollup corre el día 1 de cada mes a las 02:00 UTC y recalcula
// el período del mes que acaba de cerrar.
const CronMetricsRollup = "0 2 1 * *"

// Worker envuelve el servidor Asynq y el scheduler del cron mensual.
type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	scheduler *asynq.Scheduler
	log       *logger.Logger
}

// NewWorker construye el worker con el handler de rollup registrado y el
// cron mensual programado.
func NewWorker(redisOpts asynq.RedisClientOpt, metricsUC *metrics.AggregatorUseCase, log *logger.Logger) (*Worker, error) {
	srv := asynq.NewServer(redisOpts, asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			QueueDefault: 1,
		},
	})
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskMetricsRollup, NewMetricsRollupHandler(metricsUC, log))

	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{Location: time.UTC})
	task, err := NewMetricsRollupTask(MetricsRollupPayload{})
	if err != nil {
		return nil, err
	}
	if _, err := scheduler.Register(CronMetricsRollup, task); err != nil {
		return nil, err
	}

	return &Worker{server: srv, mux: mux, scheduler: scheduler, log: log}, nil
}

// Run procesa jobs hasta que se cancele el contexto.
func (w *Worker) Run(ctx context.Context) error {
	if err := w.scheduler.Start(); err != nil {
		return err
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- w.server.Run(w.mux)
	}()
	select {
	case <-ctx.Done():
		w.scheduler.Shutdown()
		w.server.Shutdown()
		return ctx.Err()
	case err := <-errCh:
		w.scheduler.Shutdown()
		return err
	}
}

// Client encola tareas desde el API.
type Client struct {
	client *asynq.Client
}

// NewClient construye el cliente Asynq.
func NewClient(redisOpts asynq.RedisClientOpt) *Client {
	return &Client{client: asynq.NewClient(redisOpts)}
}

// EnqueueMetricsRollup encola un recálculo de métricas.
func (c *Client) EnqueueMetricsRollup(ctx context.Context, payload MetricsRollupPayload) (*asynq.TaskInfo, error) {
	task, err := NewMetricsRollupTask(payload)
	if err != nil {
		return nil, err
	}
	return c.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault))
}

// Close libera los recursos del cliente.
func (c *Client) Close() error {
	return c.client.Close()
}

// Package jobs define las tareas en background del sistema de auditorías:
// el recálculo periódico de KPIs corre en un worker Asynq sobre Redis.
package jobs

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"github.com/jhoicas/Auditoria-api/internal/application/metrics"
	"github.com/jhoicas/Auditoria-api/pkg/logger"
)

const (
	// QueueDefault cola por defecto de los jobs.
	QueueDefault = "default"
	// TaskMetricsRollup recalcula los KPIs de un período.
	TaskMetricsRollup = "metrics:rollup"
)

// MetricsRollupPayload indica qué período recalcular. Period vacío significa
// el mes calendario anterior al momento de ejecución (caso del cron mensual).
type MetricsRollupPayload struct {
	Period      string `json:"period"` // YYYYMM
	WarehouseID string `json:"warehouse_id"`
}

// NewMetricsRollupTask construye la tarea Asynq de recálculo.
func NewMetricsRollupTask(payload MetricsRollupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskMetricsRollup, data, asynq.Queue(QueueDefault)), nil
}

// NewMetricsRollupHandler procesa tareas TaskMetricsRollup delegando en el
// agregador de métricas.
func NewMetricsRollupHandler(uc *metrics.AggregatorUseCase, log *logger.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload MetricsRollupPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		period := payload.Period
		if period == "" {
			period = time.Now().AddDate(0, -1, 0).Format("200601")
		}
		out, err := uc.Recompute(ctx, period, payload.WarehouseID)
		if err != nil {
			log.Error().Err(err).Str("period", period).Msg("recálculo de métricas falló")
			return err
		}
		log.Info().
			Str("period", out.Period).
			Str("warehouse_id", payload.WarehouseID).
			Int("audits_completed", out.AuditsCompleted).
			Msg("métricas recalculadas")
		return nil
	}
}

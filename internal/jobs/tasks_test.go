package jobs_test

import (
	"context"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Auditoria-api/internal/application/metrics"
	"github.com/jhoicas/Auditoria-api/internal/domain/entity"
	"github.com/jhoicas/Auditoria-api/internal/jobs"
	"github.com/jhoicas/Auditoria-api/internal/testutil"
	"github.com/jhoicas/Auditoria-api/pkg/logger"
)

func newHandlerFixture() (*testutil.FakeStore, asynq.HandlerFunc) {
	s := testutil.NewFakeStore()
	uc := metrics.NewAggregatorUseCase(
		&testutil.FakeAuditRepo{S: s},
		&testutil.FakeAdjustmentRepo{S: s},
		&testutil.FakeMetricsRepo{S: s},
		logger.Nop(),
	)
	return s, jobs.NewMetricsRollupHandler(uc, logger.Nop())
}

func TestMetricsRollupHandler_RecalculaPeriodoExplicito(t *testing.T) {
	s, handler := newHandlerFixture()
	finished := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	s.Audits["a1"] = entity.Audit{
		ID: "a1", State: entity.AuditStateCompletada, WarehouseID: "BOD-1",
		FinishedAt: &finished, ItemsCounted: 10, ItemsConformant: 10,
	}

	task, err := jobs.NewMetricsRollupTask(jobs.MetricsRollupPayload{Period: "202503"})
	require.NoError(t, err)
	require.NoError(t, handler(context.Background(), task))

	m, ok := s.Metrics["202503|"]
	require.True(t, ok)
	assert.Equal(t, 1, m.AuditsCompleted)
}

func TestMetricsRollupHandler_PeriodoVacioEsMesAnterior(t *testing.T) {
	s, handler := newHandlerFixture()

	task, err := jobs.NewMetricsRollupTask(jobs.MetricsRollupPayload{})
	require.NoError(t, err)
	require.NoError(t, handler(context.Background(), task))

	previo := time.Now().AddDate(0, -1, 0).Format("200601")
	_, ok := s.Metrics[previo+"|"]
	assert.True(t, ok, "el cron mensual recalcula el mes cerrado")
}

func TestMetricsRollupHandler_PayloadCorruptoNoReintenta(t *testing.T) {
	_, handler := newHandlerFixture()

	task := asynq.NewTask(jobs.TaskMetricsRollup, []byte("{no es json"))
	err := handler(context.Background(), task)
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

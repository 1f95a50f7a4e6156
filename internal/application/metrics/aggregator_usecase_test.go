package metrics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Auditoria-api/internal/application/metrics"
	"github.com/jhoicas/Auditoria-api/internal/domain"
	"github.com/jhoicas/Auditoria-api/internal/domain/entity"
	"github.com/jhoicas/Auditoria-api/internal/testutil"
	"github.com/jhoicas/Auditoria-api/pkg/logger"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newAggregator(s *testutil.FakeStore) *metrics.AggregatorUseCase {
	return metrics.NewAggregatorUseCase(
		&testutil.FakeAuditRepo{S: s},
		&testutil.FakeAdjustmentRepo{S: s},
		&testutil.FakeMetricsRepo{S: s},
		logger.Nop(),
	)
}

func auditCompletada(id, warehouseID string, finished time.Time, counted, conformant int) entity.Audit {
	discrepant := counted - conformant
	return entity.Audit{
		ID:              id,
		Code:            "AUD-" + finished.Format("200601") + "-" + id,
		State:           entity.AuditStateCompletada,
		WarehouseID:     warehouseID,
		FinishedAt:      &finished,
		ItemsCounted:    counted,
		ItemsConformant: conformant,
		ItemsDiscrepant: discrepant,
	}
}

func TestRecompute_ExactitudPonderadaPorItems(t *testing.T) {
	s := testutil.NewFakeStore()
	marzo := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	abril := time.Date(2025, 4, 2, 9, 0, 0, 0, time.UTC)

	// Dos auditorías dentro del período, una fuera y una no completada.
	s.Audits["a1"] = auditCompletada("a1", "BOD-1", marzo, 10, 9)
	s.Audits["a2"] = auditCompletada("a2", "BOD-1", marzo.AddDate(0, 0, 5), 20, 12)
	s.Audits["a3"] = auditCompletada("a3", "BOD-1", abril, 50, 50)
	enCurso := auditCompletada("a4", "BOD-1", marzo, 99, 99)
	enCurso.State = entity.AuditStateEnProgreso
	s.Audits["a4"] = enCurso

	resp, err := newAggregator(s).Recompute(context.Background(), "202503", "")
	require.NoError(t, err)

	assert.Equal(t, 2, resp.AuditsCompleted)
	assert.Equal(t, 30, resp.ItemsCounted)
	assert.Equal(t, 9, resp.ItemsDiscrepant)
	// Ponderada por ítems, no promedio de promedios: (9+12)/(10+20) = 70%.
	assert.True(t, dec("70").Equal(resp.Accuracy), "exactitud %s", resp.Accuracy)
}

func TestRecompute_SeparaValorPorSigno(t *testing.T) {
	s := testutil.NewFakeStore()
	created := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	s.Adjustments["adj1"] = entity.Adjustment{
		ID: "adj1", Code: "AJU-202503-0001", WarehouseID: "BOD-1",
		State:    entity.AdjustmentStateAplicado,
		QtyDelta: dec("2"), UnitCost: dec("3"), // +6
		CreatedAt: created,
	}
	s.Adjustments["adj2"] = entity.Adjustment{
		ID: "adj2", Code: "AJU-202503-0002", WarehouseID: "BOD-1",
		State:    entity.AdjustmentStatePendiente,
		QtyDelta: dec("-4"), UnitCost: dec("2.5"), // -10
		CreatedAt: created,
	}

	resp, err := newAggregator(s).Recompute(context.Background(), "202503", "")
	require.NoError(t, err)

	assert.Equal(t, 2, resp.AdjustmentsTotal)
	assert.Equal(t, 1, resp.AdjustmentsApplied)
	assert.True(t, dec("6").Equal(resp.PositiveValue))
	assert.True(t, dec("-10").Equal(resp.NegativeValue))
	assert.True(t, dec("-4").Equal(resp.NetValue))
}

func TestRecompute_FiltraPorBodega(t *testing.T) {
	s := testutil.NewFakeStore()
	marzo := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	s.Audits["a1"] = auditCompletada("a1", "BOD-1", marzo, 10, 10)
	s.Audits["a2"] = auditCompletada("a2", "BOD-2", marzo, 10, 5)

	resp, err := newAggregator(s).Recompute(context.Background(), "202503", "BOD-2")
	require.NoError(t, err)
	assert.Equal(t, 1, resp.AuditsCompleted)
	assert.True(t, dec("50").Equal(resp.Accuracy))
}

func TestRecompute_SobrescribeNoAcumula(t *testing.T) {
	s := testutil.NewFakeStore()
	marzo := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	s.Audits["a1"] = auditCompletada("a1", "BOD-1", marzo, 10, 8)
	uc := newAggregator(s)

	_, err := uc.Recompute(context.Background(), "202503", "")
	require.NoError(t, err)
	resp, err := uc.Recompute(context.Background(), "202503", "")
	require.NoError(t, err)

	assert.Equal(t, 1, resp.AuditsCompleted, "el recálculo es idempotente")
	assert.Len(t, s.Metrics, 1)
}

func TestRecompute_SinDatosDejaCeros(t *testing.T) {
	s := testutil.NewFakeStore()

	resp, err := newAggregator(s).Recompute(context.Background(), "202503", "")
	require.NoError(t, err)
	assert.Zero(t, resp.AuditsCompleted)
	assert.True(t, resp.Accuracy.IsZero(), "sin ítems contados no hay división")
	assert.True(t, resp.NetValue.IsZero())
}

func TestRecompute_PeriodoInvalido(t *testing.T) {
	s := testutil.NewFakeStore()

	_, err := newAggregator(s).Recompute(context.Background(), "2025-03", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGet_PeriodoNoCalculado(t *testing.T) {
	s := testutil.NewFakeStore()

	_, err := newAggregator(s).Get(context.Background(), "202503", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

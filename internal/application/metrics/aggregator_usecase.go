// Package metrics contiene el roll-up periódico de KPIs de auditoría.
// Es un consumidor read-only del resto del núcleo: sus filas no son estado
// autoritativo y siempre pueden recalcularse.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Auditoria-api/internal/application/dto"
	"github.com/jhoicas/Auditoria-api/internal/domain"
	"github.com/jhoicas/Auditoria-api/internal/domain/entity"
	"github.com/jhoicas/Auditoria-api/internal/domain/repository"
	"github.com/jhoicas/Auditoria-api/pkg/logger"
)

var hundred = decimal.NewFromInt(100)

// AggregatorUseCase recalcula los KPIs de un período YYYYMM sobre las
// auditorías COMPLETADA y los ajustes de la ventana. El upsert es por clave
// natural (period, warehouse): recalcular sobreescribe, nunca acumula.
type AggregatorUseCase struct {
	auditRepo   repository.AuditRepository
	adjRepo     repository.AdjustmentRepository
	metricsRepo repository.MetricsRepository
	log         *logger.Logger
}

// NewAggregatorUseCase construye el caso de uso.
func NewAggregatorUseCase(
	auditRepo repository.AuditRepository,
	adjRepo repository.AdjustmentRepository,
	metricsRepo repository.MetricsRepository,
	log *logger.Logger,
) *AggregatorUseCase {
	return &AggregatorUseCase{
		auditRepo:   auditRepo,
		adjRepo:     adjRepo,
		metricsRepo: metricsRepo,
		log:         log,
	}
}

// Recompute recalcula y persiste los KPIs del período indicado (YYYYMM),
// opcionalmente acotados a una bodega.
func (uc *AggregatorUseCase) Recompute(ctx context.Context, period, warehouseID string) (*dto.MetricsResponse, error) {
	from, err := parsePeriod(period)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	to := from.AddDate(0, 1, 0)

	audits, err := uc.auditRepo.ListCompletedBetween(from, to, warehouseID)
	if err != nil {
		return nil, err
	}
	adjustments, err := uc.adjRepo.ListBetween(from, to, warehouseID)
	if err != nil {
		return nil, err
	}

	m := &entity.AuditMetrics{
		ID:            uuid.New().String(),
		Period:        period,
		WarehouseID:   warehouseID,
		PositiveValue: decimal.Zero,
		NegativeValue: decimal.Zero,
		Accuracy:      decimal.Zero,
		ComputedAt:    time.Now(),
	}
	conformant := 0
	for _, a := range audits {
		m.AuditsCompleted++
		m.ItemsCounted += a.ItemsCounted
		m.ItemsDiscrepant += a.ItemsDiscrepant
		conformant += a.ItemsConformant
	}
	if m.ItemsCounted > 0 {
		m.Accuracy = decimal.NewFromInt(int64(conformant)).
			Mul(hundred).
			Div(decimal.NewFromInt(int64(m.ItemsCounted))).
			Round(2)
	}
	for _, adj := range adjustments {
		m.AdjustmentsTotal++
		if adj.State == entity.AdjustmentStateAplicado {
			m.AdjustmentsApplied++
		}
		value := adj.QtyDelta.Mul(adj.UnitCost)
		if value.GreaterThan(decimal.Zero) {
			m.PositiveValue = m.PositiveValue.Add(value)
		} else {
			m.NegativeValue = m.NegativeValue.Add(value)
		}
	}
	m.NetValue = m.PositiveValue.Add(m.NegativeValue)

	if err := uc.metricsRepo.Upsert(ctx, m); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("period", period).
		Str("warehouse_id", warehouseID).
		Int("audits", m.AuditsCompleted).
		Msg("KPIs de auditoría recalculados")
	return toMetricsResponse(m), nil
}

// Get obtiene los KPIs persistidos de un período/bodega.
func (uc *AggregatorUseCase) Get(ctx context.Context, period, warehouseID string) (*dto.MetricsResponse, error) {
	m, err := uc.metricsRepo.Get(ctx, period, warehouseID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return toMetricsResponse(m), nil
}

func toMetricsResponse(m *entity.AuditMetrics) *dto.MetricsResponse {
	return &dto.MetricsResponse{
		Period:             m.Period,
		WarehouseID:        m.WarehouseID,
		AuditsCompleted:    m.AuditsCompleted,
		ItemsCounted:       m.ItemsCounted,
		ItemsDiscrepant:    m.ItemsDiscrepant,
		Accuracy:           m.Accuracy,
		PositiveValue:      m.PositiveValue,
		NegativeValue:      m.NegativeValue,
		NetValue:           m.NetValue,
		AdjustmentsTotal:   m.AdjustmentsTotal,
		AdjustmentsApplied: m.AdjustmentsApplied,
		ComputedAt:         m.ComputedAt,
	}
}

// parsePeriod interpreta YYYYMM como el primer instante del mes (UTC).
func parsePeriod(period string) (time.Time, error) {
	t, err := time.Parse("200601", period)
	if err != nil {
		return time.Time{}, fmt.Errorf("período inválido %q: %w", period, err)
	}
	return t, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Auditoria-api/internal/domain/entity"
	"github.com/jhoicas/Auditoria-api/internal/domain/repository"
)

var _ repository.MetricsRepository = (*MetricsRepo)(nil)

// MetricsRepo implementación de MetricsRepository. El recálculo corre desde
// el worker con su propio contexto, por eso este repo sí recibe ctx.
type MetricsRepo struct {
	q Querier
}

// NewMetricsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMetricsRepository(q Querier) *MetricsRepo {
	return &MetricsRepo{q: q}
}

const metricsColumns = `
	id, period, warehouse_id, audits_completed, items_counted, items_discrepant,
	accuracy, positive_value, negative_value, net_value,
	adjustments_total, adjustments_applied, computed_at`

// Upsert inserta o sobreescribe los KPIs de (period, warehouse_id).
func (r *MetricsRepo) Upsert(ctx context.Context, m *entity.AuditMetrics) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO audit_metrics (id, period, warehouse_id, audits_completed, items_counted, items_discrepant,
			accuracy, positive_value, negative_value, net_value,
			adjustments_total, adjustments_applied, computed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (period, warehouse_id)
		DO UPDATE SET audits_completed = EXCLUDED.audits_completed,
		              items_counted = EXCLUDED.items_counted,
		              items_discrepant = EXCLUDED.items_discrepant,
		              accuracy = EXCLUDED.accuracy,
		              positive_value = EXCLUDED.positive_value,
		              negative_value = EXCLUDED.negative_value,
		              net_value = EXCLUDED.net_value,
		              adjustments_total = EXCLUDED.adjustments_total,
		              adjustments_applied = EXCLUDED.adjustments_applied,
		              computed_at = EXCLUDED.computed_at`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Period, m.WarehouseID, m.AuditsCompleted, m.ItemsCounted, m.ItemsDiscrepant,
		m.Accuracy, m.PositiveValue, m.NegativeValue, m.NetValue,
		m.AdjustmentsTotal, m.AdjustmentsApplied, m.ComputedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert metrics: %w", err)
	}
	return nil
}

// Get obtiene los KPIs de (period, warehouse_id); nil si no se han calculado.
func (r *MetricsRepo) Get(ctx context.Context, period, warehouseID string) (*entity.AuditMetrics, error) {
	query := `SELECT ` + metricsColumns + ` FROM audit_metrics WHERE period = $1 AND warehouse_id = $2`
	row := r.q.QueryRow(ctx, query, period, warehouseID)
	m, err := scanMetrics(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get metrics: %w", err)
	}
	return m, nil
}

// ListByPeriod lista los KPIs de todas las bodegas de un período.
func (r *MetricsRepo) ListByPeriod(ctx context.Context, period string) ([]*entity.AuditMetrics, error) {
	query := `SELECT ` + metricsColumns + ` FROM audit_metrics WHERE period = $1 ORDER BY warehouse_id`
	rows, err := r.q.Query(ctx, query, period)
	if err != nil {
		return nil, fmt.Errorf("list metrics: %w", err)
	}
	defer rows.Close()

	var metrics []*entity.AuditMetrics
	for rows.Next() {
		m, err := scanMetrics(rows)
		if err != nil {
			return nil, fmt.Errorf("scan metrics: %w", err)
		}
		metrics = append(metrics, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate metrics: %w", err)
	}
	return metrics, nil
}

func scanMetrics(row pgx.Row) (*entity.AuditMetrics, error) {
	var m entity.AuditMetrics
	err := row.Scan(
		&m.ID, &m.Period, &m.WarehouseID, &m.AuditsCompleted, &m.ItemsCounted, &m.ItemsDiscrepant,
		&m.Accuracy, &m.PositiveValue, &m.NegativeValue, &m.NetValue,
		&m.AdjustmentsTotal, &m.AdjustmentsApplied, &m.ComputedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

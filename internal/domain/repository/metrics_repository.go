package repository

import (
	"context"

	"github.com/jhoicas/Auditoria-api/internal/domain/entity"
)

// MetricsRepository define el puerto para los KPIs periódicos.
// Upsert es idempotente por clave natural (period, warehouse_id): recalcular
// sobreescribe la fila en lugar de acumular.
type MetricsRepository interface {
	Upsert(ctx context.Context, metrics *entity.AuditMetrics) error
	Get(ctx context.Context, period, warehouseID string) (*entity.AuditMetrics, error)
	ListByPeriod(ctx context.Context, period string) ([]*entity.AuditMetrics, error)
}

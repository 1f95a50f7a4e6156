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

var _ repository.SnapshotRepository = (*SnapshotRepo)(nil)

// SnapshotRepo implementación de SnapshotRepository. Los snapshots son
// inmutables: solo hay inserción y lecturas.
type SnapshotRepo struct {
	q Querier
}

// NewSnapshotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSnapshotRepository(q Querier) *SnapshotRepo {
	return &SnapshotRepo{q: q}
}

// Create inserta la cabecera del snapshot y sus filas. La columna audit_id
// tiene constraint único: un segundo snapshot de la misma auditoría falla.
func (r *SnapshotRepo) Create(s *entity.Snapshot, details []*entity.SnapshotDetail) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	query := `
		INSERT INTO audit_snapshots (id, audit_id, warehouse_id, total_items, total_qty, total_value, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.AuditID, s.WarehouseID, s.TotalItems, s.TotalQty, s.TotalValue, s.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("snapshot already exists for audit: %w", err)
		}
		return fmt.Errorf("insert snapshot: %w", err)
	}

	detailQuery := `
		INSERT INTO audit_snapshot_details (id, snapshot_id, product_id, quantity, avg_cost, total_value)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for _, d := range details {
		if d.ID == "" {
			d.ID = uuid.New().String()
		}
		d.SnapshotID = s.ID
		_, err := r.q.Exec(context.Background(), detailQuery,
			d.ID, d.SnapshotID, d.ProductID, d.Quantity, d.AvgCost, d.TotalValue,
		)
		if err != nil {
			return fmt.Errorf("insert snapshot detail: %w", err)
		}
	}
	return nil
}

// GetByAuditID obtiene el snapshot de una auditoría; nil si aún no existe.
func (r *SnapshotRepo) GetByAuditID(auditID string) (*entity.Snapshot, error) {
	query := `
		SELECT id, audit_id, warehouse_id, total_items, total_qty, total_value, created_at
		FROM audit_snapshots WHERE audit_id = $1`
	var s entity.Snapshot
	err := r.q.QueryRow(context.Background(), query, auditID).Scan(
		&s.ID, &s.AuditID, &s.WarehouseID, &s.TotalItems, &s.TotalQty, &s.TotalValue, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	return &s, nil
}

// ListDetails lista las filas de un snapshot.
func (r *SnapshotRepo) ListDetails(snapshotID string) ([]*entity.SnapshotDetail, error) {
	query := `
		SELECT id, snapshot_id, product_id, quantity, avg_cost, total_value
		FROM audit_snapshot_details WHERE snapshot_id = $1 ORDER BY product_id`
	rows, err := r.q.Query(context.Background(), query, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("list snapshot details: %w", err)
	}
	defer rows.Close()

	var details []*entity.SnapshotDetail
	for rows.Next() {
		var d entity.SnapshotDetail
		if err := rows.Scan(&d.ID, &d.SnapshotID, &d.ProductID, &d.Quantity, &d.AvgCost, &d.TotalValue); err != nil {
			return nil, fmt.Errorf("scan snapshot detail: %w", err)
		}
		details = append(details, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshot details: %w", err)
	}
	return details, nil
}

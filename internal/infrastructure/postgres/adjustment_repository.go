package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Auditoria-api/internal/domain/entity"
	"github.com/jhoicas/Auditoria-api/internal/domain/repository"
)

var _ repository.AdjustmentRepository = (*AdjustmentRepo)(nil)

// AdjustmentRepo implementación de AdjustmentRepository (usable con pool o tx).
type AdjustmentRepo struct {
	q Querier
}

// NewAdjustmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAdjustmentRepository(q Querier) *AdjustmentRepo {
	return &AdjustmentRepo{q: q}
}

const adjustmentColumns = `
	id, code, audit_id, audit_code, audit_detail_id, product_id, warehouse_id, shelf_id,
	qty_before, qty_delta, qty_after, unit_cost,
	classification, root_cause, state,
	requested_by, requested_at, authorized_by, authorized_at, rejection_reason,
	applied_at, movement_id, created_at, updated_at`

// Create persiste un ajuste recién generado.
func (r *AdjustmentRepo) Create(a *entity.Adjustment) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	query := `
		INSERT INTO adjustments (id, code, audit_id, audit_code, audit_detail_id, product_id, warehouse_id, shelf_id,
			qty_before, qty_delta, qty_after, unit_cost,
			classification, root_cause, state,
			requested_by, requested_at, authorized_by, authorized_at, rejection_reason,
			applied_at, movement_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.Code, a.AuditID, a.AuditCode, a.AuditDetailID, a.ProductID, a.WarehouseID, nullIfEmpty(a.ShelfID),
		a.QtyBefore, a.QtyDelta, a.QtyAfter, a.UnitCost,
		a.Classification, a.RootCause, a.State,
		a.RequestedBy, a.RequestedAt, nullIfEmpty(a.AuthorizedBy), a.AuthorizedAt, nullIfEmpty(a.RejectionReason),
		a.AppliedAt, nullIfEmpty(a.MovementID), a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("adjustment code already exists: %w", err)
		}
		return fmt.Errorf("insert adjustment: %w", err)
	}
	return nil
}

// GetByID obtiene un ajuste por ID; nil si no existe.
func (r *AdjustmentRepo) GetByID(id string) (*entity.Adjustment, error) {
	query := `SELECT ` + adjustmentColumns + ` FROM adjustments WHERE id = $1`
	row := r.q.QueryRow(context.Background(), query, id)
	a, err := scanAdjustment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get adjustment: %w", err)
	}
	return a, nil
}

// Update persiste el estado del ajuste y sus campos de autorización/aplicación.
func (r *AdjustmentRepo) Update(a *entity.Adjustment) error {
	query := `
		UPDATE adjustments
		SET state = $2, root_cause = $3,
		    authorized_by = $4, authorized_at = $5, rejection_reason = $6,
		    applied_at = $7, movement_id = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.State, a.RootCause,
		nullIfEmpty(a.AuthorizedBy), a.AuthorizedAt, nullIfEmpty(a.RejectionReason),
		a.AppliedAt, nullIfEmpty(a.MovementID), a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update adjustment: %w", err)
	}
	return nil
}

// List lista ajustes con filtros opcionales, más recientes primero.
func (r *AdjustmentRepo) List(filter repository.AdjustmentListFilter) ([]*entity.Adjustment, error) {
	query := `SELECT ` + adjustmentColumns + ` FROM adjustments WHERE 1=1`
	args := []interface{}{}
	idx := 1
	if filter.AuditID != "" {
		query += fmt.Sprintf(" AND audit_id = $%d", idx)
		args = append(args, filter.AuditID)
		idx++
	}
	if filter.WarehouseID != "" {
		query += fmt.Sprintf(" AND warehouse_id = $%d", idx)
		args = append(args, filter.WarehouseID)
		idx++
	}
	if filter.State != "" {
		query += fmt.Sprintf(" AND state = $%d", idx)
		args = append(args, filter.State)
		idx++
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", idx, idx+1)
		args = append(args, filter.Limit, filter.Offset)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list adjustments: %w", err)
	}
	defer rows.Close()
	return collectAdjustments(rows)
}

// ListBetween lista ajustes creados en la ventana [from, to).
func (r *AdjustmentRepo) ListBetween(from, to time.Time, warehouseID string) ([]*entity.Adjustment, error) {
	query := `SELECT ` + adjustmentColumns + `
		FROM adjustments
		WHERE created_at >= $1 AND created_at < $2`
	args := []interface{}{from, to}
	if warehouseID != "" {
		query += " AND warehouse_id = $3"
		args = append(args, warehouseID)
	}
	query += " ORDER BY created_at"
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list adjustments between: %w", err)
	}
	defer rows.Close()
	return collectAdjustments(rows)
}

func collectAdjustments(rows pgx.Rows) ([]*entity.Adjustment, error) {
	var adjustments []*entity.Adjustment
	for rows.Next() {
		a, err := scanAdjustment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan adjustment: %w", err)
		}
		adjustments = append(adjustments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate adjustments: %w", err)
	}
	return adjustments, nil
}

func scanAdjustment(row pgx.Row) (*entity.Adjustment, error) {
	var a entity.Adjustment
	var shelfID, authorizedBy, rejectionReason, movementID *string
	err := row.Scan(
		&a.ID, &a.Code, &a.AuditID, &a.AuditCode, &a.AuditDetailID, &a.ProductID, &a.WarehouseID, &shelfID,
		&a.QtyBefore, &a.QtyDelta, &a.QtyAfter, &a.UnitCost,
		&a.Classification, &a.RootCause, &a.State,
		&a.RequestedBy, &a.RequestedAt, &authorizedBy, &a.AuthorizedAt, &rejectionReason,
		&a.AppliedAt, &movementID, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.ShelfID = derefStr(shelfID)
	a.AuthorizedBy = derefStr(authorizedBy)
	a.RejectionReason = derefStr(rejectionReason)
	a.MovementID = derefStr(movementID)
	return &a, nil
}

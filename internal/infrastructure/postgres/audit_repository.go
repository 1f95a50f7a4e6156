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

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo implementación de AuditRepository (usable con pool o tx).
// El alcance de categorías se persiste como all_categories + category_ids
// (arreglo de texto); ambos reconstruyen el CategoryFilter al leer.
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

const auditColumns = `
	id, code, type, state, warehouse_id, shelf_id, all_categories, category_ids,
	planned_by, executed_by, scheduled, started_at, finished_at, notes,
	items_counted, items_conformant, items_discrepant, total_discrepancy, accuracy,
	created_at, updated_at`

// Create persiste una auditoría recién planificada.
func (r *AuditRepo) Create(a *entity.Audit) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	query := `
		INSERT INTO audits (id, code, type, state, warehouse_id, shelf_id, all_categories, category_ids,
			planned_by, executed_by, scheduled, started_at, finished_at, notes,
			items_counted, items_conformant, items_discrepant, total_discrepancy, accuracy,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.Code, a.Type, a.State, a.WarehouseID, nullIfEmpty(a.ShelfID),
		a.Categories.All(), a.Categories.IDs(),
		a.PlannedBy, nullIfEmpty(a.ExecutedBy), a.Scheduled, a.StartedAt, a.FinishedAt, a.Notes,
		a.ItemsCounted, a.ItemsConformant, a.ItemsDiscrepant, a.TotalDiscrepancy, a.Accuracy,
		a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("audit code already exists: %w", err)
		}
		return fmt.Errorf("insert audit: %w", err)
	}
	return nil
}

// GetByID obtiene una auditoría por ID; nil si no existe.
func (r *AuditRepo) GetByID(id string) (*entity.Audit, error) {
	query := `SELECT ` + auditColumns + ` FROM audits WHERE id = $1`
	row := r.q.QueryRow(context.Background(), query, id)
	a, err := scanAudit(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get audit: %w", err)
	}
	return a, nil
}

// Update persiste el estado y los agregados de la auditoría.
func (r *AuditRepo) Update(a *entity.Audit) error {
	query := `
		UPDATE audits
		SET state = $2, executed_by = $3, started_at = $4, finished_at = $5,
		    scheduled = $6, notes = $7,
		    items_counted = $8, items_conformant = $9, items_discrepant = $10,
		    total_discrepancy = $11, accuracy = $12,
		    updated_at = $13
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.State, nullIfEmpty(a.ExecutedBy), a.StartedAt, a.FinishedAt,
		a.Scheduled, a.Notes,
		a.ItemsCounted, a.ItemsConformant, a.ItemsDiscrepant,
		a.TotalDiscrepancy, a.Accuracy,
		a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update audit: %w", err)
	}
	return nil
}

// List lista auditorías con filtros opcionales, más recientes primero.
func (r *AuditRepo) List(filter repository.AuditListFilter) ([]*entity.Audit, error) {
	query := `SELECT ` + auditColumns + ` FROM audits WHERE 1=1`
	args := []interface{}{}
	idx := 1
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
		return nil, fmt.Errorf("list audits: %w", err)
	}
	defer rows.Close()
	return collectAudits(rows)
}

// ListCompletedBetween lista auditorías COMPLETADA finalizadas en [from, to).
func (r *AuditRepo) ListCompletedBetween(from, to time.Time, warehouseID string) ([]*entity.Audit, error) {
	query := `SELECT ` + auditColumns + `
		FROM audits
		WHERE state = $1 AND finished_at >= $2 AND finished_at < $3`
	args := []interface{}{entity.AuditStateCompletada, from, to}
	if warehouseID != "" {
		query += " AND warehouse_id = $4"
		args = append(args, warehouseID)
	}
	query += " ORDER BY finished_at"
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list completed audits: %w", err)
	}
	defer rows.Close()
	return collectAudits(rows)
}

func collectAudits(rows pgx.Rows) ([]*entity.Audit, error) {
	var audits []*entity.Audit
	for rows.Next() {
		a, err := scanAudit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan audit: %w", err)
		}
		audits = append(audits, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audits: %w", err)
	}
	return audits, nil
}

func scanAudit(row pgx.Row) (*entity.Audit, error) {
	var a entity.Audit
	var shelfID, executedBy *string
	var allCategories bool
	var categoryIDs []string
	err := row.Scan(
		&a.ID, &a.Code, &a.Type, &a.State, &a.WarehouseID, &shelfID,
		&allCategories, &categoryIDs,
		&a.PlannedBy, &executedBy, &a.Scheduled, &a.StartedAt, &a.FinishedAt, &a.Notes,
		&a.ItemsCounted, &a.ItemsConformant, &a.ItemsDiscrepant, &a.TotalDiscrepancy, &a.Accuracy,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.ShelfID = derefStr(shelfID)
	a.ExecutedBy = derefStr(executedBy)
	if allCategories {
		a.Categories = entity.AllCategories()
	} else {
		a.Categories = entity.ExplicitCategories(categoryIDs)
	}
	return &a, nil
}

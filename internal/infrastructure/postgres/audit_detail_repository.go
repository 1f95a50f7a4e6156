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

var _ repository.AuditDetailRepository = (*AuditDetailRepo)(nil)

// AuditDetailRepo implementación de AuditDetailRepository (usable con pool o tx).
type AuditDetailRepo struct {
	q Querier
}

// NewAuditDetailRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditDetailRepository(q Querier) *AuditDetailRepo {
	return &AuditDetailRepo{q: q}
}

const auditDetailColumns = `
	id, audit_id, product_id, product_sku, product_name, shelf_id,
	system_qty, reserved_qty, avg_cost,
	counted, physical_qty, delta, delta_value, pct_diff, classification, investigate,
	note, counted_by, counted_at, created_at, updated_at`

// BulkCreate inserta las líneas capturadas al iniciar el conteo.
func (r *AuditDetailRepo) BulkCreate(details []*entity.AuditDetail) error {
	query := `
		INSERT INTO audit_details (id, audit_id, product_id, product_sku, product_name, shelf_id,
			system_qty, reserved_qty, avg_cost,
			counted, physical_qty, delta, delta_value, pct_diff, classification, investigate,
			note, counted_by, counted_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`
	for _, d := range details {
		if d.ID == "" {
			d.ID = uuid.New().String()
		}
		_, err := r.q.Exec(context.Background(), query,
			d.ID, d.AuditID, d.ProductID, d.ProductSKU, d.ProductName, nullIfEmpty(d.ShelfID),
			d.SystemQty, d.ReservedQty, d.AvgCost,
			d.Counted, d.PhysicalQty, d.Delta, d.DeltaValue, d.PctDiff, nullIfEmpty(d.Classification), d.Investigate,
			d.Note, nullIfEmpty(d.CountedBy), d.CountedAt, d.CreatedAt, d.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert audit detail: %w", err)
		}
	}
	return nil
}

// GetForAudit obtiene una línea verificando que pertenezca a la auditoría;
// nil si no existe o pertenece a otra.
func (r *AuditDetailRepo) GetForAudit(detailID, auditID string) (*entity.AuditDetail, error) {
	query := `SELECT ` + auditDetailColumns + ` FROM audit_details WHERE id = $1 AND audit_id = $2`
	row := r.q.QueryRow(context.Background(), query, detailID, auditID)
	d, err := scanAuditDetail(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get audit detail: %w", err)
	}
	return d, nil
}

// GetByProduct obtiene la línea de un producto dentro de la auditoría; nil si no existe.
func (r *AuditDetailRepo) GetByProduct(auditID, productID string) (*entity.AuditDetail, error) {
	query := `SELECT ` + auditDetailColumns + ` FROM audit_details WHERE audit_id = $1 AND product_id = $2`
	row := r.q.QueryRow(context.Background(), query, auditID, productID)
	d, err := scanAuditDetail(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get audit detail by product: %w", err)
	}
	return d, nil
}

// ListByAudit lista todas las líneas de una auditoría ordenadas por SKU.
func (r *AuditDetailRepo) ListByAudit(auditID string) ([]*entity.AuditDetail, error) {
	query := `SELECT ` + auditDetailColumns + ` FROM audit_details WHERE audit_id = $1 ORDER BY product_sku`
	rows, err := r.q.Query(context.Background(), query, auditID)
	if err != nil {
		return nil, fmt.Errorf("list audit details: %w", err)
	}
	defer rows.Close()
	return collectAuditDetails(rows)
}

// ListDiscrepant lista las líneas contadas con clasificación distinta de CONFORME.
func (r *AuditDetailRepo) ListDiscrepant(auditID string) ([]*entity.AuditDetail, error) {
	query := `SELECT ` + auditDetailColumns + `
		FROM audit_details
		WHERE audit_id = $1 AND counted AND classification <> $2
		ORDER BY product_sku`
	rows, err := r.q.Query(context.Background(), query, auditID, entity.ClassConforme)
	if err != nil {
		return nil, fmt.Errorf("list discrepant details: %w", err)
	}
	defer rows.Close()
	return collectAuditDetails(rows)
}

// CountByAudit cuenta las líneas de una auditoría.
func (r *AuditDetailRepo) CountByAudit(auditID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM audit_details WHERE audit_id = $1`, auditID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count audit details: %w", err)
	}
	return n, nil
}

// Update persiste el resultado del conteo de una línea.
func (r *AuditDetailRepo) Update(d *entity.AuditDetail) error {
	query := `
		UPDATE audit_details
		SET counted = $2, physical_qty = $3, delta = $4, delta_value = $5,
		    pct_diff = $6, classification = $7, investigate = $8,
		    note = $9, counted_by = $10, counted_at = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.Counted, d.PhysicalQty, d.Delta, d.DeltaValue,
		d.PctDiff, nullIfEmpty(d.Classification), d.Investigate,
		d.Note, nullIfEmpty(d.CountedBy), d.CountedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update audit detail: %w", err)
	}
	return nil
}

func collectAuditDetails(rows pgx.Rows) ([]*entity.AuditDetail, error) {
	var details []*entity.AuditDetail
	for rows.Next() {
		d, err := scanAuditDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("scan audit detail: %w", err)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit details: %w", err)
	}
	return details, nil
}

func scanAuditDetail(row pgx.Row) (*entity.AuditDetail, error) {
	var d entity.AuditDetail
	var shelfID, classification, countedBy *string
	err := row.Scan(
		&d.ID, &d.AuditID, &d.ProductID, &d.ProductSKU, &d.ProductName, &shelfID,
		&d.SystemQty, &d.ReservedQty, &d.AvgCost,
		&d.Counted, &d.PhysicalQty, &d.Delta, &d.DeltaValue, &d.PctDiff, &classification, &d.Investigate,
		&d.Note, &countedBy, &d.CountedAt, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	d.ShelfID = derefStr(shelfID)
	d.Classification = derefStr(classification)
	d.CountedBy = derefStr(countedBy)
	return &d, nil
}

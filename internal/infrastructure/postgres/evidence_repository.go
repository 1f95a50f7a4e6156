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

var _ repository.EvidenceRepository = (*EvidenceRepo)(nil)

// EvidenceRepo implementación de EvidenceRepository (solo la metadata; el
// binario vive en el almacén de blobs).
type EvidenceRepo struct {
	q Querier
}

// NewEvidenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEvidenceRepository(q Querier) *EvidenceRepo {
	return &EvidenceRepo{q: q}
}

const evidenceColumns = `
	id, audit_id, product_id, type, title, description, file_url, content_type, created_by, created_at`

// Create inserta la metadata de una evidencia.
func (r *EvidenceRepo) Create(e *entity.Evidence) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	query := `
		INSERT INTO audit_evidence (id, audit_id, product_id, type, title, description,
			file_url, content_type, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.AuditID, nullIfEmpty(e.ProductID), e.Type, e.Title, e.Description,
		e.FileURL, e.ContentType, e.CreatedBy, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert evidence: %w", err)
	}
	return nil
}

// GetByID obtiene una evidencia por ID; nil si no existe.
func (r *EvidenceRepo) GetByID(id string) (*entity.Evidence, error) {
	query := `SELECT ` + evidenceColumns + ` FROM audit_evidence WHERE id = $1`
	row := r.q.QueryRow(context.Background(), query, id)
	e, err := scanEvidence(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get evidence: %w", err)
	}
	return e, nil
}

// ListByAudit lista las evidencias de una auditoría en orden de carga.
func (r *EvidenceRepo) ListByAudit(auditID string) ([]*entity.Evidence, error) {
	query := `SELECT ` + evidenceColumns + ` FROM audit_evidence WHERE audit_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, auditID)
	if err != nil {
		return nil, fmt.Errorf("list evidence: %w", err)
	}
	defer rows.Close()

	var evidence []*entity.Evidence
	for rows.Next() {
		e, err := scanEvidence(rows)
		if err != nil {
			return nil, fmt.Errorf("scan evidence: %w", err)
		}
		evidence = append(evidence, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate evidence: %w", err)
	}
	return evidence, nil
}

// Update actualiza la metadata y la URL del archivo (reemplazo de evidencia).
func (r *EvidenceRepo) Update(e *entity.Evidence) error {
	query := `
		UPDATE audit_evidence
		SET type = $2, title = $3, description = $4, file_url = $5, content_type = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.Type, e.Title, e.Description, e.FileURL, e.ContentType,
	)
	if err != nil {
		return fmt.Errorf("update evidence: %w", err)
	}
	return nil
}

// Delete borra la metadata de una evidencia.
func (r *EvidenceRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM audit_evidence WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete evidence: %w", err)
	}
	return nil
}

func scanEvidence(row pgx.Row) (*entity.Evidence, error) {
	var e entity.Evidence
	var productID *string
	err := row.Scan(
		&e.ID, &e.AuditID, &productID, &e.Type, &e.Title, &e.Description,
		&e.FileURL, &e.ContentType, &e.CreatedBy, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.ProductID = derefStr(productID)
	return &e, nil
}

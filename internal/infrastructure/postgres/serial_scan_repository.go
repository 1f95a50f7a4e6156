package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Auditoria-api/internal/domain/entity"
	"github.com/jhoicas/Auditoria-api/internal/domain/repository"
)

var _ repository.SerialScanRepository = (*SerialScanRepo)(nil)

// SerialScanRepo implementación de SerialScanRepository (usable con pool o tx).
type SerialScanRepo struct {
	q Querier
}

// NewSerialScanRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSerialScanRepository(q Querier) *SerialScanRepo {
	return &SerialScanRepo{q: q}
}

const serialScanColumns = `
	id, audit_id, audit_detail_id, product_id, serial,
	found_physically, in_registry, registry_state, expected_warehouse_id, warehouse_matches,
	scanned_by, scanned_at`

// Create inserta un escaneo de serial.
func (r *SerialScanRepo) Create(s *entity.SerialScan) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	query := `
		INSERT INTO serial_scans (id, audit_id, audit_detail_id, product_id, serial,
			found_physically, in_registry, registry_state, expected_warehouse_id, warehouse_matches,
			scanned_by, scanned_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.AuditID, s.AuditDetailID, s.ProductID, s.Serial,
		s.FoundPhysically, s.InRegistry, nullIfEmpty(s.RegistryState), nullIfEmpty(s.ExpectedWarehouseID), s.WarehouseMatches,
		s.ScannedBy, s.ScannedAt,
	)
	if err != nil {
		return fmt.Errorf("insert serial scan: %w", err)
	}
	return nil
}

// ListByAudit lista los escaneos de una auditoría en orden de captura.
func (r *SerialScanRepo) ListByAudit(auditID string) ([]*entity.SerialScan, error) {
	query := `SELECT ` + serialScanColumns + ` FROM serial_scans WHERE audit_id = $1 ORDER BY scanned_at`
	rows, err := r.q.Query(context.Background(), query, auditID)
	if err != nil {
		return nil, fmt.Errorf("list serial scans: %w", err)
	}
	defer rows.Close()
	return collectSerialScans(rows)
}

// ListByDetail lista los escaneos de una línea de auditoría.
func (r *SerialScanRepo) ListByDetail(detailID string) ([]*entity.SerialScan, error) {
	query := `SELECT ` + serialScanColumns + ` FROM serial_scans WHERE audit_detail_id = $1 ORDER BY scanned_at`
	rows, err := r.q.Query(context.Background(), query, detailID)
	if err != nil {
		return nil, fmt.Errorf("list serial scans by detail: %w", err)
	}
	defer rows.Close()
	return collectSerialScans(rows)
}

func collectSerialScans(rows pgx.Rows) ([]*entity.SerialScan, error) {
	var scans []*entity.SerialScan
	for rows.Next() {
		var s entity.SerialScan
		var registryState, expectedWarehouseID *string
		err := rows.Scan(
			&s.ID, &s.AuditID, &s.AuditDetailID, &s.ProductID, &s.Serial,
			&s.FoundPhysically, &s.InRegistry, &registryState, &expectedWarehouseID, &s.WarehouseMatches,
			&s.ScannedBy, &s.ScannedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan serial scan: %w", err)
		}
		s.RegistryState = derefStr(registryState)
		s.ExpectedWarehouseID = derefStr(expectedWarehouseID)
		scans = append(scans, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate serial scans: %w", err)
	}
	return scans, nil
}

package repository

import "github.com/jhoicas/Auditoria-api/internal/domain/entity"

// SnapshotRepository define el puerto para los snapshots de valoración.
// Un snapshot es inmutable: solo Create y lecturas.
type SnapshotRepository interface {
	Create(snapshot *entity.Snapshot, details []*entity.SnapshotDetail) error
	GetByAuditID(auditID string) (*entity.Snapshot, error)
	ListDetails(snapshotID string) ([]*entity.SnapshotDetail, error)
}

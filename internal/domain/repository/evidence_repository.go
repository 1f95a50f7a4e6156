package repository

import "github.com/jhoicas/Auditoria-api/internal/domain/entity"

// EvidenceRepository define el puerto para la metadata de evidencias.
type EvidenceRepository interface {
	Create(evidence *entity.Evidence) error
	GetByID(id string) (*entity.Evidence, error)
	ListByAudit(auditID string) ([]*entity.Evidence, error)
	Update(evidence *entity.Evidence) error
	Delete(id string) error
}

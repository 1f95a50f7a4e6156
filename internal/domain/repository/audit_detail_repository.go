package repository

import "github.com/jhoicas/Auditoria-api/internal/domain/entity"

// AuditDetailRepository define el puerto para las líneas de auditoría.
// GetForAudit centraliza la verificación "la línea pertenece a la auditoría"
// usada por conteo, escaneo de series y generación de ajustes.
type AuditDetailRepository interface {
	BulkCreate(details []*entity.AuditDetail) error
	GetForAudit(detailID, auditID string) (*entity.AuditDetail, error)
	GetByProduct(auditID, productID string) (*entity.AuditDetail, error)
	ListByAudit(auditID string) ([]*entity.AuditDetail, error)
	ListDiscrepant(auditID string) ([]*entity.AuditDetail, error)
	CountByAudit(auditID string) (int, error)
	Update(detail *entity.AuditDetail) error
}

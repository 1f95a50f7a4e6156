package repository

import "github.com/jhoicas/Auditoria-api/internal/domain/entity"

// SerialScanRepository define el puerto para los escaneos de serial.
type SerialScanRepository interface {
	Create(scan *entity.SerialScan) error
	ListByAudit(auditID string) ([]*entity.SerialScan, error)
	ListByDetail(detailID string) ([]*entity.SerialScan, error)
}

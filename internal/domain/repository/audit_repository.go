package repository

import (
	"time"

	"github.com/jhoicas/Auditoria-api/internal/domain/entity"
)

// AuditListFilter filtros de listado de auditorías.
type AuditListFilter struct {
	WarehouseID string
	State       string
	Limit       int
	Offset      int
}

// AuditRepository define el puerto de persistencia para Audit (DIP).
type AuditRepository interface {
	Create(audit *entity.Audit) error
	GetByID(id string) (*entity.Audit, error)
	Update(audit *entity.Audit) error
	List(filter AuditListFilter) ([]*entity.Audit, error)
	// ListCompletedBetween lista auditorías COMPLETADA finalizadas en la
	// ventana [from, to); warehouseID vacío = todas las bodegas.
	ListCompletedBetween(from, to time.Time, warehouseID string) ([]*entity.Audit, error)
}

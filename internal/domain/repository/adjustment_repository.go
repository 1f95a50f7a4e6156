package repository

import (
	"time"

	"github.com/jhoicas/Auditoria-api/internal/domain/entity"
)

// AdjustmentListFilter filtros de listado de ajustes.
type AdjustmentListFilter struct {
	AuditID     string
	WarehouseID string
	State       string
	Limit       int
	Offset      int
}

// AdjustmentRepository define el puerto de persistencia para Adjustment.
type AdjustmentRepository interface {
	Create(adjustment *entity.Adjustment) error
	GetByID(id string) (*entity.Adjustment, error)
	Update(adjustment *entity.Adjustment) error
	List(filter AdjustmentListFilter) ([]*entity.Adjustment, error)
	// ListBetween lista ajustes creados en la ventana [from, to);
	// warehouseID vacío = todas las bodegas.
	ListBetween(from, to time.Time, warehouseID string) ([]*entity.Adjustment, error)
}

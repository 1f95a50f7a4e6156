package repository

import (
	"time"

	"github.com/jhoicas/Auditoria-api/internal/domain/entity"
)

// StockMovementRepository define el puerto al ledger de movimientos
// (append-only: no hay update ni delete).
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
}

package repository

import "github.com/jhoicas/Auditoria-api/internal/domain/entity"

// WarehouseRepository define el puerto de lectura de bodegas y estantes
// (master data externo: este núcleo solo verifica existencia y pertenencia).
type WarehouseRepository interface {
	GetByID(id string) (*entity.Warehouse, error)
	GetShelf(shelfID string) (*entity.Shelf, error)
	List(limit, offset int) ([]*entity.Warehouse, error)
}

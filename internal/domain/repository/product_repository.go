package repository

import "github.com/jhoicas/Auditoria-api/internal/domain/entity"

// ProductRepository define el puerto de lectura de productos (master data).
type ProductRepository interface {
	GetByID(id string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
}

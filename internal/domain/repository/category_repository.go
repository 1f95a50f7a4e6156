package repository

import "github.com/jhoicas/Auditoria-api/internal/domain/entity"

// CategoryRepository define el puerto de lectura de categorías (master data).
type CategoryRepository interface {
	GetByID(id string) (*entity.Category, error)
	List(limit, offset int) ([]*entity.Category, error)
}

package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Auditoria-api/internal/domain/entity"
)

// StockScope delimita una consulta al ledger vivo: bodega, estante opcional
// y filtro de categorías.
type StockScope struct {
	WarehouseID string
	ShelfID     string // vacío = toda la bodega
	Categories  entity.CategoryFilter
}

// ScopedStock es una fila del ledger vivo enriquecida con los datos del
// producto, tal como se captura al iniciar un conteo o tomar un snapshot.
type ScopedStock struct {
	ProductID   string
	ProductSKU  string
	ProductName string
	ShelfID     string
	Quantity    decimal.Decimal
	ReservedQty decimal.Decimal
	AvgCost     decimal.Decimal
}

// StockRepository define el puerto al ledger de existencias vivo.
// Get/GetForUpdate devuelven nil si la fila no existe; GetForUpdate bloquea
// la fila (SELECT FOR UPDATE) para el patrón leer-validar-escribir de
// aplicación de ajustes.
type StockRepository interface {
	Get(productID, warehouseID, shelfID string) (*entity.Stock, error)
	GetForUpdate(productID, warehouseID, shelfID string) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error
	ListByScope(scope StockScope) ([]*ScopedStock, error)
}

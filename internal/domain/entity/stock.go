package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa la existencia viva de un producto en una bodega/estante.
// Es el único recurso mutable compartido que este núcleo escribe, y solo a
// través de la aplicación de ajustes.
type Stock struct {
	ProductID   string
	WarehouseID string
	ShelfID     string
	Quantity    decimal.Decimal
	ReservedQty decimal.Decimal
	AvgCost     decimal.Decimal // costo promedio ponderado vigente
	UpdatedAt   time.Time
}

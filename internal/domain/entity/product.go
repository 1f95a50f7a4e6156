package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario (multi-bodega).
// Cost es el promedio ponderado vigente; las existencias viven en Stock.
type Product struct {
	ID          string
	SKU         string
	Name        string
	Description string
	CategoryID  string
	Cost        decimal.Decimal
	UnitMeasure string
	Serialized  bool // true si se controla por número de serie
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

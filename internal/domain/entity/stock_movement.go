package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIN         = "IN"         // entrada
	MovementTypeOUT        = "OUT"        // salida
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste de auditoría
)

// StockMovement es una entrada del ledger de movimientos (append-only).
// Quantity es firmada: positiva entrada/ajuste+, negativa salida/ajuste-.
type StockMovement struct {
	ID          string
	ProductID   string
	WarehouseID string
	ShelfID     string
	Type        string
	Quantity    decimal.Decimal
	UnitCost    decimal.Decimal
	TotalCost   decimal.Decimal
	Reference   string // código del ajuste y de la auditoría origen
	Notes       string
	Date        time.Time
	CreatedAt   time.Time
	CreatedBy   string
}

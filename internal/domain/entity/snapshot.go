package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot es la valoración inmutable del alcance auditado, tomada una única
// vez al finalizar la auditoría (1:1 con su Audit). Se construye re-leyendo
// el ledger vivo, no copiando las líneas de conteo.
type Snapshot struct {
	ID          string
	AuditID     string
	WarehouseID string
	TotalItems  int
	TotalQty    decimal.Decimal
	TotalValue  decimal.Decimal
	CreatedAt   time.Time
}

// SnapshotDetail es la fila por producto del snapshot.
type SnapshotDetail struct {
	ID         string
	SnapshotID string
	ProductID  string
	Quantity   decimal.Decimal
	AvgCost    decimal.Decimal
	TotalValue decimal.Decimal
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditMetrics es la fila de KPIs de un período, recalculable de forma
// idempotente: la clave natural es (Period, WarehouseID) y el recálculo
// sobreescribe en lugar de acumular. No es estado autoritativo.
type AuditMetrics struct {
	ID          string
	Period      string // YYYYMM
	WarehouseID string // vacío = todas las bodegas

	AuditsCompleted     int
	ItemsCounted        int
	ItemsDiscrepant     int
	Accuracy            decimal.Decimal // conformes/contados × 100 del período
	PositiveValue       decimal.Decimal // Σ valor de sobrantes
	NegativeValue       decimal.Decimal // Σ valor de faltantes (negativo)
	NetValue            decimal.Decimal
	AdjustmentsTotal    int
	AdjustmentsApplied  int

	ComputedAt time.Time
}

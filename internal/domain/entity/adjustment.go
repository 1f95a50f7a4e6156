package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un ajuste de inventario.
const (
	AdjustmentStatePendiente  = "PENDIENTE_AUTORIZACION"
	AdjustmentStateAutorizado = "AUTORIZADO"
	AdjustmentStateRechazado  = "RECHAZADO"
	AdjustmentStateAplicado   = "APLICADO"
)

// CanTransitionAdjustment indica si un ajuste puede pasar de `from` a `to`.
// PENDIENTE_AUTORIZACION → AUTORIZADO | RECHAZADO; APLICADO solo desde AUTORIZADO.
func CanTransitionAdjustment(from, to string) bool {
	switch from {
	case AdjustmentStatePendiente:
		return to == AdjustmentStateAutorizado || to == AdjustmentStateRechazado
	case AdjustmentStateAutorizado:
		return to == AdjustmentStateAplicado
	}
	return false // RECHAZADO y APLICADO son terminales
}

// Adjustment es una corrección de stock propuesta a partir de una línea
// discrepante de auditoría. Solo AplicarAjuste muta el stock vivo; al
// aplicarse queda registrado el ID del movimiento de inventario generado.
type Adjustment struct {
	ID            string
	Code          string // AJU-YYYYMM-####
	AuditID       string
	AuditCode     string
	AuditDetailID string
	ProductID     string
	WarehouseID   string
	ShelfID       string

	QtyBefore decimal.Decimal // cantidad del sistema al generar el ajuste
	QtyDelta  decimal.Decimal // físico − sistema (firmado)
	QtyAfter  decimal.Decimal // QtyBefore + QtyDelta (proyectado)
	UnitCost  decimal.Decimal // costo promedio vivo al generar

	Classification  string
	RootCause       string
	State           string
	RequestedBy     string
	RequestedAt     time.Time
	AuthorizedBy    string
	AuthorizedAt    *time.Time
	RejectionReason string
	AppliedAt       *time.Time
	MovementID      string // movimiento del ledger generado al aplicar

	CreatedAt time.Time
	UpdatedAt time.Time
}

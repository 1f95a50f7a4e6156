package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una auditoría de inventario.
const (
	AuditStatePlanificada       = "PLANIFICADA"
	AuditStateEnProgreso        = "EN_PROGRESO"
	AuditStatePendienteRevision = "PENDIENTE_REVISION"
	AuditStateCompletada        = "COMPLETADA"
	AuditStateCancelada         = "CANCELADA"
)

// Tipos de auditoría.
const (
	AuditTypeGeneral = "GENERAL" // toda la bodega
	AuditTypeParcial = "PARCIAL" // estante y/o categorías
	AuditTypeCiclico = "CICLICO" // conteo cíclico programado
)

// ValidAuditType verifica que el tipo sea uno de los soportados.
func ValidAuditType(t string) bool {
	switch t {
	case AuditTypeGeneral, AuditTypeParcial, AuditTypeCiclico:
		return true
	}
	return false
}

// CanTransitionAudit indica si una auditoría puede pasar de `from` a `to`.
// PLANIFICADA → EN_PROGRESO → PENDIENTE_REVISION → COMPLETADA;
// CANCELADA alcanzable desde PLANIFICADA o EN_PROGRESO.
func CanTransitionAudit(from, to string) bool {
	switch from {
	case AuditStatePlanificada:
		return to == AuditStateEnProgreso || to == AuditStateCancelada
	case AuditStateEnProgreso:
		return to == AuditStatePendienteRevision || to == AuditStateCancelada
	case AuditStatePendienteRevision:
		return to == AuditStateCompletada
	}
	return false // COMPLETADA y CANCELADA son terminales
}

// Audit representa una auditoría física de inventario sobre una bodega,
// opcionalmente acotada a un estante y/o un conjunto de categorías.
// Los agregados (ItemsCounted, Accuracy, ...) se calculan al finalizar.
type Audit struct {
	ID          string
	Code        string // AUD-YYYYMM-####
	Type        string
	State       string
	WarehouseID string
	ShelfID     string // vacío = toda la bodega
	Categories  CategoryFilter
	PlannedBy   string
	ExecutedBy  string
	Scheduled   time.Time
	StartedAt   *time.Time
	FinishedAt  *time.Time
	Notes       string

	ItemsCounted    int
	ItemsConformant int
	ItemsDiscrepant int
	TotalDiscrepancy decimal.Decimal // Σ delta_value de las líneas contadas
	Accuracy        decimal.Decimal // conformes/contados × 100

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal indica si la auditoría ya no admite transiciones.
func (a *Audit) IsTerminal() bool {
	return a.State == AuditStateCompletada || a.State == AuditStateCancelada
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Clasificación de la discrepancia de una línea contada.
const (
	ClassSobrante = "SOBRANTE" // físico > sistema
	ClassFaltante = "FALTANTE" // físico < sistema
	ClassConforme = "CONFORME" // sin diferencia
)

// AuditDetail es la línea de auditoría de un producto: cantidades del sistema
// capturadas al iniciar el conteo (nunca re-consultadas) y, una vez contada,
// la cantidad física con sus campos derivados.
type AuditDetail struct {
	ID          string
	AuditID     string
	ProductID   string
	ProductSKU  string
	ProductName string
	ShelfID     string

	// Foto del ledger al momento de iniciarConteo.
	SystemQty   decimal.Decimal
	ReservedQty decimal.Decimal
	AvgCost     decimal.Decimal

	// Derivados del conteo; indefinidos mientras Counted sea false.
	Counted        bool
	PhysicalQty    decimal.Decimal
	Delta          decimal.Decimal
	DeltaValue     decimal.Decimal
	PctDiff        decimal.Decimal
	Classification string
	Investigate    bool
	Note           string
	CountedBy      string
	CountedAt      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasDiscrepancy indica si la línea fue contada con diferencia.
func (d *AuditDetail) HasDiscrepancy() bool {
	return d.Counted && d.Classification != ClassConforme
}

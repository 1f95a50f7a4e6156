// Package audit contiene los servicios de dominio puros del motor de
// auditoría: el cálculo de discrepancias y la numeración mensual de códigos.
package audit

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Auditoria-api/internal/domain/entity"
)

// InvestigateThresholdPct es el umbral fijo de investigación: una línea con
// diferencia porcentual mayor al 10% del sistema se marca para investigar.
var InvestigateThresholdPct = decimal.NewFromInt(10)

var hundred = decimal.NewFromInt(100)

// Result es el resultado del cálculo de discrepancia de una línea.
type Result struct {
	Delta          decimal.Decimal // físico − sistema (firmado)
	DeltaValue     decimal.Decimal // delta × costo promedio del sistema
	PctDiff        decimal.Decimal // |delta| / sistema × 100 (0 si sistema ≤ 0)
	Classification string          // SOBRANTE | FALTANTE | CONFORME
	Investigate    bool
}

// Reconcile deriva delta, valor monetario, porcentaje, clasificación y marca
// de investigación a partir de la cantidad del sistema capturada al iniciar
// el conteo, la cantidad física contada y el costo promedio capturado.
// Es una función pura: no lee ni escribe estado.
func Reconcile(systemQty, physicalQty, avgCost decimal.Decimal) Result {
	delta := physicalQty.Sub(systemQty)

	pct := decimal.Zero
	if systemQty.GreaterThan(decimal.Zero) {
		pct = delta.Abs().Div(systemQty).Mul(hundred)
	}

	class := entity.ClassConforme
	switch {
	case delta.GreaterThan(decimal.Zero):
		class = entity.ClassSobrante
	case delta.LessThan(decimal.Zero):
		class = entity.ClassFaltante
	}

	return Result{
		Delta:          delta,
		DeltaValue:     delta.Mul(avgCost),
		PctDiff:        pct,
		Classification: class,
		Investigate:    pct.GreaterThan(InvestigateThresholdPct),
	}
}

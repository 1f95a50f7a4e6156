package audit_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Auditoria-api/internal/domain/audit"
	"github.com/jhoicas/Auditoria-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// Reconcile: fórmulas y clasificación
// ──────────────────────────────────────────────────────────────────────────────

func TestReconcile_Faltante(t *testing.T) {
	r := audit.Reconcile(dec("10"), dec("8"), dec("2"))

	assert.True(t, r.Delta.Equal(dec("-2")), "delta = físico - sistema")
	assert.True(t, r.DeltaValue.Equal(dec("-4")), "valor = delta × costo promedio")
	assert.True(t, r.PctDiff.Equal(dec("20")), "pct = |delta|/sistema × 100")
	assert.Equal(t, entity.ClassFaltante, r.Classification)
	assert.True(t, r.Investigate, "20% supera el umbral de investigación")
}

func TestReconcile_Sobrante(t *testing.T) {
	r := audit.Reconcile(dec("0"), dec("2"), dec("1"))

	assert.True(t, r.Delta.Equal(dec("2")))
	assert.True(t, r.DeltaValue.Equal(dec("2")))
	assert.Equal(t, entity.ClassSobrante, r.Classification)
}

func TestReconcile_Conforme(t *testing.T) {
	r := audit.Reconcile(dec("5"), dec("5"), dec("10"))

	assert.True(t, r.Delta.IsZero())
	assert.True(t, r.DeltaValue.IsZero())
	assert.True(t, r.PctDiff.IsZero())
	assert.Equal(t, entity.ClassConforme, r.Classification)
	assert.False(t, r.Investigate)
}

// El signo del delta y la clasificación son equivalentes: nunca un SOBRANTE
// con delta negativo ni un FALTANTE con delta positivo.
func TestReconcile_SignoYClasificacionCoinciden(t *testing.T) {
	cases := []struct {
		system, physical string
		want             string
	}{
		{"10", "12", entity.ClassSobrante},
		{"10", "3", entity.ClassFaltante},
		{"10", "10", entity.ClassConforme},
		{"0", "0", entity.ClassConforme},
		{"0.5", "0.75", entity.ClassSobrante},
	}
	for _, tc := range cases {
		r := audit.Reconcile(dec(tc.system), dec(tc.physical), dec("1"))
		assert.Equal(t, tc.want, r.Classification, "sistema=%s físico=%s", tc.system, tc.physical)
		switch tc.want {
		case entity.ClassSobrante:
			assert.True(t, r.Delta.IsPositive())
		case entity.ClassFaltante:
			assert.True(t, r.Delta.IsNegative())
		case entity.ClassConforme:
			assert.True(t, r.Delta.IsZero())
		}
	}
}

// Con cantidad de sistema cero (o negativa) el porcentaje se define como 0:
// no hay base de comparación, pero la clasificación sigue valiendo.
func TestReconcile_SistemaCero_PctCero(t *testing.T) {
	r := audit.Reconcile(decimal.Zero, dec("3"), dec("7"))

	assert.True(t, r.PctDiff.IsZero(), "sistema 0 no permite calcular porcentaje")
	assert.Equal(t, entity.ClassSobrante, r.Classification)
	assert.False(t, r.Investigate, "sin porcentaje no se marca investigación")
}

// El umbral de investigación es estricto: exactamente 10% no marca, más de
// 10% sí.
func TestReconcile_UmbralInvestigacionEstricto(t *testing.T) {
	exact := audit.Reconcile(dec("100"), dec("90"), dec("1")) // 10%
	assert.True(t, exact.PctDiff.Equal(dec("10")))
	assert.False(t, exact.Investigate, "10% exacto no supera el umbral")

	over := audit.Reconcile(dec("100"), dec("89"), dec("1")) // 11%
	assert.True(t, over.Investigate, "11% supera el umbral")
}

func TestReconcile_CantidadesFraccionarias(t *testing.T) {
	r := audit.Reconcile(dec("2.5"), dec("2.25"), dec("4"))

	assert.True(t, r.Delta.Equal(dec("-0.25")))
	assert.True(t, r.DeltaValue.Equal(dec("-1")))
	assert.True(t, r.PctDiff.Equal(dec("10")))
	assert.Equal(t, entity.ClassFaltante, r.Classification)
}

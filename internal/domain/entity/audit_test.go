package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Auditoria-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Máquina de estados de auditoría
// ──────────────────────────────────────────────────────────────────────────────

func TestCanTransitionAudit_FlujoFeliz(t *testing.T) {
	assert.True(t, entity.CanTransitionAudit(entity.AuditStatePlanificada, entity.AuditStateEnProgreso))
	assert.True(t, entity.CanTransitionAudit(entity.AuditStateEnProgreso, entity.AuditStatePendienteRevision))
	assert.True(t, entity.CanTransitionAudit(entity.AuditStatePendienteRevision, entity.AuditStateCompletada))
}

func TestCanTransitionAudit_Cancelacion(t *testing.T) {
	assert.True(t, entity.CanTransitionAudit(entity.AuditStatePlanificada, entity.AuditStateCancelada))
	assert.True(t, entity.CanTransitionAudit(entity.AuditStateEnProgreso, entity.AuditStateCancelada))
	assert.False(t, entity.CanTransitionAudit(entity.AuditStatePendienteRevision, entity.AuditStateCancelada),
		"una auditoría en revisión ya no puede cancelarse")
}

func TestCanTransitionAudit_EstadosTerminales(t *testing.T) {
	for _, terminal := range []string{entity.AuditStateCompletada, entity.AuditStateCancelada} {
		for _, to := range []string{
			entity.AuditStatePlanificada, entity.AuditStateEnProgreso,
			entity.AuditStatePendienteRevision, entity.AuditStateCompletada, entity.AuditStateCancelada,
		} {
			assert.False(t, entity.CanTransitionAudit(terminal, to),
				"%s es terminal, no debe transicionar a %s", terminal, to)
		}
	}
}

func TestCanTransitionAudit_SaltosProhibidos(t *testing.T) {
	assert.False(t, entity.CanTransitionAudit(entity.AuditStatePlanificada, entity.AuditStatePendienteRevision),
		"no se puede saltar el conteo")
	assert.False(t, entity.CanTransitionAudit(entity.AuditStatePlanificada, entity.AuditStateCompletada))
	assert.False(t, entity.CanTransitionAudit(entity.AuditStateEnProgreso, entity.AuditStateCompletada),
		"completar exige pasar por revisión")
}

func TestAuditIsTerminal(t *testing.T) {
	assert.True(t, (&entity.Audit{State: entity.AuditStateCompletada}).IsTerminal())
	assert.True(t, (&entity.Audit{State: entity.AuditStateCancelada}).IsTerminal())
	assert.False(t, (&entity.Audit{State: entity.AuditStateEnProgreso}).IsTerminal())
}

func TestValidAuditType(t *testing.T) {
	assert.True(t, entity.ValidAuditType(entity.AuditTypeGeneral))
	assert.True(t, entity.ValidAuditType(entity.AuditTypeParcial))
	assert.True(t, entity.ValidAuditType(entity.AuditTypeCiclico))
	assert.False(t, entity.ValidAuditType("EXPRESS"))
	assert.False(t, entity.ValidAuditType(""))
}

// ──────────────────────────────────────────────────────────────────────────────
// Máquina de estados de ajuste
// ──────────────────────────────────────────────────────────────────────────────

func TestCanTransitionAdjustment(t *testing.T) {
	assert.True(t, entity.CanTransitionAdjustment(entity.AdjustmentStatePendiente, entity.AdjustmentStateAutorizado))
	assert.True(t, entity.CanTransitionAdjustment(entity.AdjustmentStatePendiente, entity.AdjustmentStateRechazado))
	assert.True(t, entity.CanTransitionAdjustment(entity.AdjustmentStateAutorizado, entity.AdjustmentStateAplicado))

	assert.False(t, entity.CanTransitionAdjustment(entity.AdjustmentStatePendiente, entity.AdjustmentStateAplicado),
		"aplicar exige autorización previa")
	assert.False(t, entity.CanTransitionAdjustment(entity.AdjustmentStateRechazado, entity.AdjustmentStateAutorizado),
		"RECHAZADO es terminal")
	assert.False(t, entity.CanTransitionAdjustment(entity.AdjustmentStateAplicado, entity.AdjustmentStateAutorizado),
		"APLICADO es terminal")
}

// ──────────────────────────────────────────────────────────────────────────────
// CategoryFilter
// ──────────────────────────────────────────────────────────────────────────────

func TestCategoryFilter_TodasVsConjuntoVacio(t *testing.T) {
	all := entity.AllCategories()
	empty := entity.ExplicitCategories(nil)

	assert.True(t, all.All())
	assert.True(t, all.Matches("cualquiera"))

	assert.False(t, empty.All(), "conjunto vacío no es lo mismo que todas")
	assert.False(t, empty.Matches("cualquiera"))
}

func TestCategoryFilter_ConjuntoExplicito(t *testing.T) {
	f := entity.ExplicitCategories([]string{"cat-1", "cat-2"})

	assert.False(t, f.All())
	assert.True(t, f.Matches("cat-1"))
	assert.True(t, f.Matches("cat-2"))
	assert.False(t, f.Matches("cat-3"))
	assert.ElementsMatch(t, []string{"cat-1", "cat-2"}, f.IDs())
}

func TestCategoryFilter_IDsDevuelveCopia(t *testing.T) {
	src := []string{"cat-1"}
	f := entity.ExplicitCategories(src)
	src[0] = "mutado"

	ids := f.IDs()
	assert.Equal(t, []string{"cat-1"}, ids, "el filtro no comparte el slice de entrada")

	ids[0] = "mutado-2"
	assert.Equal(t, []string{"cat-1"}, f.IDs(), "ni el de salida")
}

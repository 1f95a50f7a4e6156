package adjustment_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Auditoria-api/internal/application/adjustment"
	"github.com/jhoicas/Auditoria-api/internal/application/dto"
	"github.com/jhoicas/Auditoria-api/internal/domain"
	"github.com/jhoicas/Auditoria-api/internal/domain/entity"
	"github.com/jhoicas/Auditoria-api/internal/domain/repository"
	"github.com/jhoicas/Auditoria-api/internal/testutil"
	"github.com/jhoicas/Auditoria-api/pkg/logger"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: auditoría AUD-X en PENDIENTE_REVISION con tres líneas:
//   det-faltante  PROD-1 contada, sistema 10 → físico 8 (FALTANTE, Δ=-2)
//   det-conforme  PROD-2 contada sin diferencia
//   det-sin-stock PROD-9 contada discrepante pero sin fila de stock vivo
// ──────────────────────────────────────────────────────────────────────────────

func newWorkflowFixture(t *testing.T) (*testutil.FakeStore, *adjustment.WorkflowUseCase) {
	t.Helper()
	s := testutil.NewFakeStore()
	now := time.Now()
	s.Audits["aud-1"] = entity.Audit{
		ID:          "aud-1",
		Code:        "AUD-202508-0001",
		Type:        entity.AuditTypeGeneral,
		State:       entity.AuditStatePendienteRevision,
		WarehouseID: "BOD-1",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	counted := now
	s.Details["det-faltante"] = entity.AuditDetail{
		ID: "det-faltante", AuditID: "aud-1", ProductID: "PROD-1", ProductSKU: "SKU-001",
		SystemQty: dec("10"), AvgCost: dec("2"),
		Counted: true, PhysicalQty: dec("8"), Delta: dec("-2"), DeltaValue: dec("-4"),
		PctDiff: dec("20"), Classification: entity.ClassFaltante, Investigate: true,
		CountedBy: "user-2", CountedAt: &counted,
	}
	s.Details["det-conforme"] = entity.AuditDetail{
		ID: "det-conforme", AuditID: "aud-1", ProductID: "PROD-2", ProductSKU: "SKU-002",
		SystemQty: dec("5"), AvgCost: dec("10"),
		Counted: true, PhysicalQty: dec("5"), Classification: entity.ClassConforme,
	}
	s.Details["det-sin-stock"] = entity.AuditDetail{
		ID: "det-sin-stock", AuditID: "aud-1", ProductID: "PROD-9", ProductSKU: "SKU-009",
		SystemQty: dec("3"), AvgCost: dec("1"),
		Counted: true, PhysicalQty: dec("1"), Delta: dec("-2"), DeltaValue: dec("-2"),
		Classification: entity.ClassFaltante,
	}
	s.AddStock("PROD-1", "BOD-1", "", dec("10"), dec("0"), dec("2"))
	s.AddStock("PROD-2", "BOD-1", "", dec("5"), dec("0"), dec("10"))

	uc := adjustment.NewWorkflowUseCase(
		&testutil.FakeTxRunner{S: s},
		&testutil.FakeAuditRepo{S: s},
		&testutil.FakeAuditDetailRepo{S: s},
		&testutil.FakeAdjustmentRepo{S: s},
		logger.Nop(),
	)
	return s, uc
}

func generarFaltante(t *testing.T, uc *adjustment.WorkflowUseCase) *dto.AdjustmentResponse {
	t.Helper()
	created, err := uc.Generate(context.Background(), "aud-1", "super-1", dto.GenerateAdjustmentsRequest{
		Items: []dto.AdjustmentItemRequest{{DetailID: "det-faltante", RootCause: "merma no registrada"}},
	})
	require.NoError(t, err)
	require.Len(t, created, 1)
	return created[0]
}

func TestGenerate_CodigoYProyeccion(t *testing.T) {
	_, uc := newWorkflowFixture(t)

	adj := generarFaltante(t, uc)

	period := time.Now().Format("200601")
	assert.Equal(t, fmt.Sprintf("AJU-%s-0001", period), adj.Code)
	assert.Equal(t, "AUD-202508-0001", adj.AuditCode)
	assert.Equal(t, entity.AdjustmentStatePendiente, adj.State)
	assert.True(t, dec("10").Equal(adj.QtyBefore))
	assert.True(t, dec("-2").Equal(adj.QtyDelta))
	assert.True(t, dec("8").Equal(adj.QtyAfter))
	assert.True(t, dec("2").Equal(adj.UnitCost), "costo promedio vivo al generar")
	assert.Equal(t, "merma no registrada", adj.RootCause)
	assert.Equal(t, "super-1", adj.RequestedBy)
}

func TestGenerate_LineaConformeNoGeneraAjuste(t *testing.T) {
	_, uc := newWorkflowFixture(t)

	_, err := uc.Generate(context.Background(), "aud-1", "super-1", dto.GenerateAdjustmentsRequest{
		Items: []dto.AdjustmentItemRequest{{DetailID: "det-conforme"}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGenerate_LineaDeOtraAuditoria(t *testing.T) {
	s, uc := newWorkflowFixture(t)
	s.Details["det-ajena"] = entity.AuditDetail{
		ID: "det-ajena", AuditID: "aud-999", ProductID: "PROD-1",
		Counted: true, Classification: entity.ClassFaltante,
	}

	_, err := uc.Generate(context.Background(), "aud-1", "super-1", dto.GenerateAdjustmentsRequest{
		Items: []dto.AdjustmentItemRequest{{DetailID: "det-ajena"}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGenerate_EstadoAuditoriaInvalido(t *testing.T) {
	s, uc := newWorkflowFixture(t)
	a := s.Audits["aud-1"]
	a.State = entity.AuditStateEnProgreso
	s.Audits["aud-1"] = a

	_, err := uc.Generate(context.Background(), "aud-1", "super-1", dto.GenerateAdjustmentsRequest{
		Items: []dto.AdjustmentItemRequest{{DetailID: "det-faltante"}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState, "el conteo aún no cerró")
}

func TestGenerate_TodoONada(t *testing.T) {
	s, uc := newWorkflowFixture(t)

	// La segunda línea no tiene fila de stock vivo: el lote entero revierte,
	// incluido el contador de códigos.
	_, err := uc.Generate(context.Background(), "aud-1", "super-1", dto.GenerateAdjustmentsRequest{
		Items: []dto.AdjustmentItemRequest{
			{DetailID: "det-faltante"},
			{DetailID: "det-sin-stock"},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, s.Adjustments)
	assert.Empty(t, s.Sequences, "la secuencia consumida también revierte")
}

func TestGenerate_LoteVacio(t *testing.T) {
	_, uc := newWorkflowFixture(t)

	_, err := uc.Generate(context.Background(), "aud-1", "super-1", dto.GenerateAdjustmentsRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Autorización
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthorize_Aprobar(t *testing.T) {
	_, uc := newWorkflowFixture(t)
	adj := generarFaltante(t, uc)

	resp, err := uc.Authorize(adj.ID, "super-1", dto.AuthorizeAdjustmentRequest{Approve: true})
	require.NoError(t, err)
	assert.Equal(t, entity.AdjustmentStateAutorizado, resp.State)
	assert.Equal(t, "super-1", resp.AuthorizedBy)
	require.NotNil(t, resp.AuthorizedAt)
}

func TestAuthorize_RechazarExigeMotivo(t *testing.T) {
	_, uc := newWorkflowFixture(t)
	adj := generarFaltante(t, uc)

	_, err := uc.Authorize(adj.ID, "super-1", dto.AuthorizeAdjustmentRequest{Approve: false})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	resp, err := uc.Authorize(adj.ID, "super-1", dto.AuthorizeAdjustmentRequest{
		Approve: false, Reason: "el conteo fue impugnado",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.AdjustmentStateRechazado, resp.State)
	assert.Equal(t, "el conteo fue impugnado", resp.RejectionReason)
}

func TestAuthorize_SoloPendiente(t *testing.T) {
	_, uc := newWorkflowFixture(t)
	adj := generarFaltante(t, uc)

	_, err := uc.Authorize(adj.ID, "super-1", dto.AuthorizeAdjustmentRequest{Approve: true})
	require.NoError(t, err)

	_, err = uc.Authorize(adj.ID, "super-2", dto.AuthorizeAdjustmentRequest{Approve: true})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// ──────────────────────────────────────────────────────────────────────────────
// Aplicación: el único camino que muta el stock vivo.
// ──────────────────────────────────────────────────────────────────────────────

func TestApply_MutaStockYAnexaMovimiento(t *testing.T) {
	s, uc := newWorkflowFixture(t)
	adj := generarFaltante(t, uc)
	_, err := uc.Authorize(adj.ID, "super-1", dto.AuthorizeAdjustmentRequest{Approve: true})
	require.NoError(t, err)

	resp, err := uc.Apply(context.Background(), adj.ID, "super-1")
	require.NoError(t, err)
	assert.Equal(t, entity.AdjustmentStateAplicado, resp.State)
	require.NotNil(t, resp.AppliedAt)
	require.NotEmpty(t, resp.MovementID)

	stock := s.Stocks["PROD-1|BOD-1|"]
	assert.True(t, dec("8").Equal(stock.Quantity), "10 + (-2)")

	mov := s.Movements[resp.MovementID]
	assert.Equal(t, entity.MovementTypeADJUSTMENT, mov.Type)
	assert.True(t, dec("-2").Equal(mov.Quantity))
	assert.True(t, dec("-4").Equal(mov.TotalCost))
	assert.Equal(t, fmt.Sprintf("%s (AUD-202508-0001)", resp.Code), mov.Reference)
	assert.Equal(t, "super-1", mov.CreatedBy)
}

func TestApply_StockNegativoViolaInvariante(t *testing.T) {
	s, uc := newWorkflowFixture(t)
	adj := generarFaltante(t, uc)
	_, err := uc.Authorize(adj.ID, "super-1", dto.AuthorizeAdjustmentRequest{Approve: true})
	require.NoError(t, err)

	// Entre la autorización y la aplicación salieron 9 unidades: aplicar
	// Δ=-2 sobre 1 dejaría el stock en -1.
	s.AddStock("PROD-1", "BOD-1", "", dec("1"), dec("0"), dec("2"))

	_, err = uc.Apply(context.Background(), adj.ID, "super-1")
	assert.ErrorIs(t, err, domain.ErrInvariantViolation)

	// Todo revierte: stock intacto, sin movimiento, ajuste reintentable.
	assert.True(t, dec("1").Equal(s.Stocks["PROD-1|BOD-1|"].Quantity))
	assert.Empty(t, s.Movements)
	assert.Equal(t, entity.AdjustmentStateAutorizado, s.Adjustments[adj.ID].State)
}

func TestApply_SoloAutorizado(t *testing.T) {
	s, uc := newWorkflowFixture(t)
	adj := generarFaltante(t, uc)

	_, err := uc.Apply(context.Background(), adj.ID, "super-1")
	assert.ErrorIs(t, err, domain.ErrInvalidState, "PENDIENTE_AUTORIZACION no se aplica")

	_, err = uc.Authorize(adj.ID, "super-1", dto.AuthorizeAdjustmentRequest{Approve: true})
	require.NoError(t, err)
	_, err = uc.Apply(context.Background(), adj.ID, "super-1")
	require.NoError(t, err)

	// Aplicar dos veces no duplica la mutación.
	_, err = uc.Apply(context.Background(), adj.ID, "super-1")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.True(t, dec("8").Equal(s.Stocks["PROD-1|BOD-1|"].Quantity))
	assert.Len(t, s.Movements, 1)
}

func TestList_FiltraPorEstado(t *testing.T) {
	_, uc := newWorkflowFixture(t)
	adj := generarFaltante(t, uc)
	_, err := uc.Authorize(adj.ID, "super-1", dto.AuthorizeAdjustmentRequest{Approve: true})
	require.NoError(t, err)

	list, err := uc.List(repository.AdjustmentListFilter{State: entity.AdjustmentStateAutorizado})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = uc.List(repository.AdjustmentListFilter{State: entity.AdjustmentStateRechazado})
	require.NoError(t, err)
	assert.Empty(t, list)
}

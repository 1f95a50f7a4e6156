package adjustment_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Auditoria-api/internal/application/adjustment"
	"github.com/jhoicas/Auditoria-api/internal/application/audit"
	"github.com/jhoicas/Auditoria-api/internal/application/dto"
	"github.com/jhoicas/Auditoria-api/internal/domain/entity"
	"github.com/jhoicas/Auditoria-api/internal/testutil"
	"github.com/jhoicas/Auditoria-api/pkg/logger"
)

// TestCicloCompletoAuditoria recorre el flujo entero sobre un mismo almacén:
// planificar → iniciar conteo → contar → finalizar (agregados + snapshot) →
// completar → generar ajustes → autorizar → aplicar, verificando el efecto
// final sobre el stock vivo y el ledger de movimientos.
func TestCicloCompletoAuditoria(t *testing.T) {
	s := testutil.NewFakeStore()
	s.AddWarehouse("BOD-1", "Bodega Central")
	s.AddCategory("CAT-1", "General")
	s.AddProduct("P-1", "SKU-001", "Teclado", "CAT-1")
	s.AddProduct("P-2", "SKU-002", "Monitor", "CAT-1")
	s.AddProduct("P-3", "SKU-003", "Cable", "CAT-1")
	s.AddStock("P-1", "BOD-1", "", dec("10"), dec("0"), dec("2"))
	s.AddStock("P-2", "BOD-1", "", dec("5"), dec("0"), dec("10"))
	s.AddStock("P-3", "BOD-1", "", dec("0"), dec("0"), dec("1"))

	tx := &testutil.FakeTxRunner{S: s}
	auditRepo := &testutil.FakeAuditRepo{S: s}
	detailRepo := &testutil.FakeAuditDetailRepo{S: s}

	planner := audit.NewPlannerUseCase(tx, auditRepo, detailRepo,
		&testutil.FakeWarehouseRepo{S: s}, &testutil.FakeCategoryRepo{S: s}, &testutil.FakeSequenceRepo{S: s})
	counter := audit.NewCountUseCase(tx, auditRepo, detailRepo,
		&testutil.FakeSerialScanRepo{S: s}, &testutil.FakeEvidenceRepo{S: s},
		&testutil.FakeSerialRegistry{}, &testutil.FakeBlobStorage{}, logger.Nop())
	finalizer := audit.NewFinalizeUseCase(tx, auditRepo, &testutil.FakeSnapshotRepo{S: s})
	workflow := adjustment.NewWorkflowUseCase(tx, auditRepo, detailRepo,
		&testutil.FakeAdjustmentRepo{S: s}, logger.Nop())

	ctx := context.Background()

	// Planificar e iniciar: la foto del ledger queda en las líneas.
	a, err := planner.Create("planner-1", dto.CreateAuditRequest{
		Type: entity.AuditTypeGeneral, WarehouseID: "BOD-1", AllCategories: true,
	})
	require.NoError(t, err)
	_, err = planner.StartCount(ctx, a.ID, "auditor-1")
	require.NoError(t, err)

	// Conteo físico: faltante, conforme y sobrante.
	err = counter.RegisterCount(ctx, a.ID, "auditor-1", dto.RegisterCountRequest{
		Items: []dto.CountItemRequest{
			{ProductID: "P-1", PhysicalQty: dec("8")},
			{ProductID: "P-2", PhysicalQty: dec("5")},
			{ProductID: "P-3", PhysicalQty: dec("2")},
		},
	})
	require.NoError(t, err)

	// Finalizar: agregados y snapshot en la misma transacción.
	closed, err := finalizer.Finalize(ctx, a.ID, "auditor-1")
	require.NoError(t, err)
	assert.Equal(t, entity.AuditStatePendienteRevision, closed.State)
	assert.Equal(t, 3, closed.ItemsCounted)
	assert.Equal(t, 2, closed.ItemsDiscrepant)
	assert.True(t, dec("-2").Equal(closed.TotalDiscrepancy))
	assert.True(t, dec("33.33").Equal(closed.Accuracy))
	require.Len(t, s.Snapshots, 1)

	// Revisión aprobada.
	done, err := planner.Complete(a.ID, "super-1")
	require.NoError(t, err)
	assert.Equal(t, entity.AuditStateCompletada, done.State)

	// Ajustes para las dos líneas discrepantes.
	discrepancies, err := planner.ListDiscrepancies(a.ID)
	require.NoError(t, err)
	require.Len(t, discrepancies, 2)

	items := make([]dto.AdjustmentItemRequest, 0, len(discrepancies))
	for _, d := range discrepancies {
		items = append(items, dto.AdjustmentItemRequest{DetailID: d.ID, RootCause: "conteo físico"})
	}
	adjustments, err := workflow.Generate(ctx, a.ID, "super-1", dto.GenerateAdjustmentsRequest{Items: items})
	require.NoError(t, err)
	require.Len(t, adjustments, 2)

	// Autorizar y aplicar el del faltante (P-1).
	var faltante *dto.AdjustmentResponse
	for _, adj := range adjustments {
		if adj.ProductID == "P-1" {
			faltante = adj
		}
	}
	require.NotNil(t, faltante)
	_, err = workflow.Authorize(faltante.ID, "super-1", dto.AuthorizeAdjustmentRequest{Approve: true})
	require.NoError(t, err)
	applied, err := workflow.Apply(ctx, faltante.ID, "super-1")
	require.NoError(t, err)

	// Solo el ajuste aplicado tocó el ledger vivo.
	assert.True(t, dec("8").Equal(s.Stocks["P-1|BOD-1|"].Quantity))
	assert.True(t, dec("5").Equal(s.Stocks["P-2|BOD-1|"].Quantity))
	assert.True(t, dec("0").Equal(s.Stocks["P-3|BOD-1|"].Quantity))
	require.Len(t, s.Movements, 1)
	assert.Equal(t, entity.MovementTypeADJUSTMENT, s.Movements[applied.MovementID].Type)

	// El snapshot sigue valorando el instante del cierre, no el stock actual.
	snap, err := finalizer.GetSnapshot(a.ID)
	require.NoError(t, err)
	assert.True(t, dec("70").Equal(snap.TotalValue))
}

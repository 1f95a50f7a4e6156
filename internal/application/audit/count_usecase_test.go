package audit_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Auditoria-api/internal/application/audit"
	"github.com/jhoicas/Auditoria-api/internal/application/dto"
	"github.com/jhoicas/Auditoria-api/internal/domain"
	"github.com/jhoicas/Auditoria-api/internal/domain/entity"
	"github.com/jhoicas/Auditoria-api/internal/testutil"
	"github.com/jhoicas/Auditoria-api/pkg/logger"
)

// newCountFixture arma una auditoría EN_PROGRESO sobre la bodega del fixture
// del planificador, con sus líneas ya capturadas.
func newCountFixture(t *testing.T) (*testutil.FakeStore, *audit.CountUseCase, string) {
	t.Helper()
	s, planner := newPlannerFixture(t)
	created := crearAuditoria(t, planner)
	_, err := planner.StartCount(context.Background(), created.ID, "user-2")
	require.NoError(t, err)

	uc := newCountUseCase(s, nil)
	return s, uc, created.ID
}

func newCountUseCase(s *testutil.FakeStore, blobs *testutil.FakeBlobStorage) *audit.CountUseCase {
	if blobs == nil {
		blobs = &testutil.FakeBlobStorage{}
	}
	return audit.NewCountUseCase(
		&testutil.FakeTxRunner{S: s},
		&testutil.FakeAuditRepo{S: s},
		&testutil.FakeAuditDetailRepo{S: s},
		&testutil.FakeSerialScanRepo{S: s},
		&testutil.FakeEvidenceRepo{S: s},
		&testutil.FakeSerialRegistry{},
		blobs,
		logger.Nop(),
	)
}

func TestRegisterCount_CalculaDerivados(t *testing.T) {
	s, uc, auditID := newCountFixture(t)

	err := uc.RegisterCount(context.Background(), auditID, "user-2", dto.RegisterCountRequest{
		Items: []dto.CountItemRequest{
			{ProductID: "PROD-1", PhysicalQty: dec("8"), Note: "caja dañada"},
		},
	})
	require.NoError(t, err)

	var line *entity.AuditDetail
	for _, d := range s.Details {
		if d.ProductID == "PROD-1" {
			cp := d
			line = &cp
		}
	}
	require.NotNil(t, line)
	assert.True(t, line.Counted)
	assert.True(t, dec("-2").Equal(line.Delta))
	assert.True(t, dec("-4").Equal(line.DeltaValue), "delta × costo promedio capturado")
	assert.True(t, dec("20").Equal(line.PctDiff))
	assert.Equal(t, entity.ClassFaltante, line.Classification)
	assert.True(t, line.Investigate, "supera el umbral de investigación")
	assert.Equal(t, "caja dañada", line.Note)
	assert.Equal(t, "user-2", line.CountedBy)
	require.NotNil(t, line.CountedAt)
}

func TestRegisterCount_LoteAtomico(t *testing.T) {
	s, uc, auditID := newCountFixture(t)

	// La segunda línea está fuera del alcance: todo el lote debe revertirse,
	// incluida la primera que sí era válida.
	err := uc.RegisterCount(context.Background(), auditID, "user-2", dto.RegisterCountRequest{
		Items: []dto.CountItemRequest{
			{ProductID: "PROD-1", PhysicalQty: dec("8")},
			{ProductID: "PROD-404", PhysicalQty: dec("3")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	for _, d := range s.Details {
		assert.False(t, d.Counted, "ninguna línea del lote fallido queda contada")
	}
}

func TestRegisterCount_ReconteoSobrescribe(t *testing.T) {
	s, uc, auditID := newCountFixture(t)

	count := func(qty string) {
		err := uc.RegisterCount(context.Background(), auditID, "user-2", dto.RegisterCountRequest{
			Items: []dto.CountItemRequest{{ProductID: "PROD-1", PhysicalQty: dec(qty)}},
		})
		require.NoError(t, err)
	}
	count("8")
	count("10") // reconteo: ahora coincide con el sistema

	for _, d := range s.Details {
		if d.ProductID != "PROD-1" {
			continue
		}
		assert.Equal(t, entity.ClassConforme, d.Classification)
		assert.True(t, d.Delta.IsZero())
		assert.True(t, d.DeltaValue.IsZero())
		assert.False(t, d.Investigate)
	}
}

func TestRegisterCount_LoteVacio(t *testing.T) {
	_, uc, auditID := newCountFixture(t)

	err := uc.RegisterCount(context.Background(), auditID, "user-2", dto.RegisterCountRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterCount_SoloEnProgreso(t *testing.T) {
	s, planner := newPlannerFixture(t)
	created := crearAuditoria(t, planner)
	uc := newCountUseCase(s, nil)

	err := uc.RegisterCount(context.Background(), created.ID, "user-2", dto.RegisterCountRequest{
		Items: []dto.CountItemRequest{{ProductID: "PROD-1", PhysicalQty: dec("8")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState, "PLANIFICADA no admite conteos")
}

// ──────────────────────────────────────────────────────────────────────────────
// Escaneo de seriales: informativo, nunca toca los números de discrepancia.
// ──────────────────────────────────────────────────────────────────────────────

func TestScanSerial_ContraRegistroExterno(t *testing.T) {
	s, _, auditID := newCountFixture(t)
	registry := &testutil.FakeSerialRegistry{Serials: map[string]audit.RegisteredSerial{
		"SN-AQUI": {Serial: "SN-AQUI", ProductID: "PROD-1", State: "activo", WarehouseID: "BOD-1"},
		"SN-OTRA": {Serial: "SN-OTRA", ProductID: "PROD-1", State: "activo", WarehouseID: "BOD-2"},
	}}
	uc := audit.NewCountUseCase(
		&testutil.FakeTxRunner{S: s},
		&testutil.FakeAuditRepo{S: s},
		&testutil.FakeAuditDetailRepo{S: s},
		&testutil.FakeSerialScanRepo{S: s},
		&testutil.FakeEvidenceRepo{S: s},
		registry,
		&testutil.FakeBlobStorage{},
		logger.Nop(),
	)

	resp, err := uc.ScanSerial(auditID, "user-2", dto.ScanSerialRequest{
		ProductID: "PROD-1", Serial: "SN-AQUI", FoundPhysically: true,
	})
	require.NoError(t, err)
	assert.True(t, resp.InRegistry)
	assert.True(t, resp.WarehouseMatches)
	assert.Equal(t, "activo", resp.RegistryState)

	resp, err = uc.ScanSerial(auditID, "user-2", dto.ScanSerialRequest{
		ProductID: "PROD-1", Serial: "SN-OTRA", FoundPhysically: true,
	})
	require.NoError(t, err)
	assert.True(t, resp.InRegistry)
	assert.False(t, resp.WarehouseMatches, "el registro lo espera en BOD-2")

	resp, err = uc.ScanSerial(auditID, "user-2", dto.ScanSerialRequest{
		ProductID: "PROD-1", Serial: "SN-FANTASMA", FoundPhysically: true,
	})
	require.NoError(t, err)
	assert.False(t, resp.InRegistry, "serial no registrado se guarda igual")

	// Los escaneos no alteran las líneas de conteo.
	for _, d := range s.Details {
		assert.False(t, d.Counted)
	}
	scans, err := uc.ListSerialScans(auditID)
	require.NoError(t, err)
	assert.Len(t, scans, 3)
}

func TestScanSerial_ProductoFueraDelAlcance(t *testing.T) {
	s, _, auditID := newCountFixture(t)
	uc := newCountUseCase(s, nil)

	_, err := uc.ScanSerial(auditID, "user-2", dto.ScanSerialRequest{
		ProductID: "PROD-404", Serial: "SN-1",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Evidencias
// ──────────────────────────────────────────────────────────────────────────────

func TestUploadEvidence_GuardaBlobYMetadata(t *testing.T) {
	s, _, auditID := newCountFixture(t)
	blobs := &testutil.FakeBlobStorage{}
	uc := newCountUseCase(s, blobs)

	resp, err := uc.UploadEvidence(context.Background(), auditID, "user-2", audit.UploadEvidenceInput{
		Title:       "Estante A-01",
		ProductID:   "PROD-1",
		FileName:    "estante.jpg",
		ContentType: "image/jpeg",
		Content:     strings.NewReader("jpegdata"),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.EvidenceTypeFoto, resp.Type, "tipo por defecto")
	assert.NotEmpty(t, resp.FileURL)
	assert.Len(t, blobs.Saved, 1)

	list, err := uc.ListEvidence(auditID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestUploadEvidence_SinTituloNiContenido(t *testing.T) {
	_, uc, auditID := newCountFixture(t)

	_, err := uc.UploadEvidence(context.Background(), auditID, "user-2", audit.UploadEvidenceInput{
		FileName: "x.jpg", Content: strings.NewReader("x"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin título")

	_, err = uc.UploadEvidence(context.Background(), auditID, "user-2", audit.UploadEvidenceInput{
		Title: "t", FileName: "x.jpg",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin contenido")
}

func TestReplaceEvidence_ToleraBlobAnteriorPerdido(t *testing.T) {
	s, _, auditID := newCountFixture(t)
	blobs := &testutil.FakeBlobStorage{FailDelete: true}
	uc := newCountUseCase(s, blobs)

	created, err := uc.UploadEvidence(context.Background(), auditID, "user-2", audit.UploadEvidenceInput{
		Title:    "Foto original",
		FileName: "v1.jpg",
		Content:  strings.NewReader("v1"),
	})
	require.NoError(t, err)

	// El borrado del blob anterior falla; el reemplazo continúa con warning.
	replaced, err := uc.ReplaceEvidence(context.Background(), created.ID, "user-2", audit.UploadEvidenceInput{
		Title:    "Foto corregida",
		FileName: "v2.jpg",
		Content:  strings.NewReader("v2"),
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, replaced.ID)
	assert.NotEqual(t, created.FileURL, replaced.FileURL)
	assert.Equal(t, "Foto corregida", replaced.Title)
}

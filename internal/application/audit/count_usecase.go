package audit

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Auditoria-api/internal/application/dto"
	"github.com/jhoicas/Auditoria-api/internal/domain"
	domaudit "github.com/jhoicas/Auditoria-api/internal/domain/audit"
	"github.com/jhoicas/Auditoria-api/internal/domain/entity"
	"github.com/jhoicas/Auditoria-api/internal/domain/repository"
	"github.com/jhoicas/Auditoria-api/pkg/logger"
)

// CountUseCase registra los conteos físicos contra una auditoría EN_PROGRESO:
// lotes de conteo, escaneos de serial informativos y evidencias adjuntas.
type CountUseCase struct {
	txRunner     TxRunner
	auditRepo    repository.AuditRepository
	detailRepo   repository.AuditDetailRepository
	scanRepo     repository.SerialScanRepository
	evidenceRepo repository.EvidenceRepository
	registry     SerialRegistry
	blobs        BlobStorage
	log          *logger.Logger
}

// NewCountUseCase construye el caso de uso.
func NewCountUseCase(
	txRunner TxRunner,
	auditRepo repository.AuditRepository,
	detailRepo repository.AuditDetailRepository,
	scanRepo repository.SerialScanRepository,
	evidenceRepo repository.EvidenceRepository,
	registry SerialRegistry,
	blobs BlobStorage,
	log *logger.Logger,
) *CountUseCase {
	return &CountUseCase{
		txRunner:     txRunner,
		auditRepo:    auditRepo,
		detailRepo:   detailRepo,
		scanRepo:     scanRepo,
		evidenceRepo: evidenceRepo,
		registry:     registry,
		blobs:        blobs,
		log:          log,
	}
}

// RegisterCount aplica un lote de conteos en una sola transacción: cada línea
// debe existir en el alcance de la auditoría (si alguna falta, todo el lote
// se revierte). El recálculo usa los valores capturados al iniciar el conteo,
// nunca una lectura fresca del ledger.
func (uc *CountUseCase) RegisterCount(ctx context.Context, auditID, userID string, in dto.RegisterCountRequest) error {
	if len(in.Items) == 0 {
		return domain.ErrInvalidInput
	}
	a, err := uc.auditRepo.GetByID(auditID)
	if err != nil {
		return err
	}
	if a == nil {
		return domain.ErrNotFound
	}
	if a.State != entity.AuditStateEnProgreso {
		return domain.ErrInvalidState
	}

	now := time.Now()
	return uc.txRunner.Run(ctx, func(
		_ repository.AuditRepository,
		detailRepo repository.AuditDetailRepository,
		_ repository.StockRepository,
		_ repository.SnapshotRepository,
	) error {
		for _, item := range in.Items {
			detail, err := detailRepo.GetByProduct(a.ID, item.ProductID)
			if err != nil {
				return err
			}
			if detail == nil {
				return fmt.Errorf("producto %s fuera del alcance de la auditoría: %w", item.ProductID, domain.ErrNotFound)
			}
			res := domaudit.Reconcile(detail.SystemQty, item.PhysicalQty, detail.AvgCost)
			detail.Counted = true
			detail.PhysicalQty = item.PhysicalQty
			detail.Delta = res.Delta
			detail.DeltaValue = res.DeltaValue
			detail.PctDiff = res.PctDiff
			detail.Classification = res.Classification
			detail.Investigate = res.Investigate
			detail.Note = item.Note
			detail.CountedBy = userID
			countedAt := now
			detail.CountedAt = &countedAt
			detail.UpdatedAt = now
			if err := detailRepo.Update(detail); err != nil {
				return err
			}
		}
		return nil
	})
}

// ScanSerial registra un escaneo de serial contra una línea del alcance.
// Consulta el registro externo y guarda existencia/estado/bodega esperada;
// nunca altera los números de discrepancia.
func (uc *CountUseCase) ScanSerial(auditID, userID string, in dto.ScanSerialRequest) (*dto.SerialScanResponse, error) {
	a, err := uc.auditRepo.GetByID(auditID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	if a.State != entity.AuditStateEnProgreso {
		return nil, domain.ErrInvalidState
	}
	detail, err := uc.detailRepo.GetByProduct(a.ID, in.ProductID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, domain.ErrNotFound // producto fuera del alcance
	}

	scan := &entity.SerialScan{
		ID:              uuid.New().String(),
		AuditID:         a.ID,
		AuditDetailID:   detail.ID,
		ProductID:       in.ProductID,
		Serial:          in.Serial,
		FoundPhysically: in.FoundPhysically,
		ScannedBy:       userID,
		ScannedAt:       time.Now(),
	}
	reg, err := uc.registry.Lookup(in.Serial)
	if err != nil {
		return nil, err
	}
	if reg != nil {
		scan.InRegistry = true
		scan.RegistryState = reg.State
		scan.ExpectedWarehouseID = reg.WarehouseID
		scan.WarehouseMatches = reg.WarehouseID == a.WarehouseID
	}
	if err := uc.scanRepo.Create(scan); err != nil {
		return nil, err
	}
	return toScanResponse(scan), nil
}

// UploadEvidenceInput entrada para adjuntar evidencia a una auditoría.
type UploadEvidenceInput struct {
	Type        string
	Title       string
	Description string
	ProductID   string
	FileName    string
	ContentType string
	Content     io.Reader
}

// UploadEvidence sube el binario al almacén de blobs y persiste la metadata.
// No tiene efecto sobre la máquina de estados.
func (uc *CountUseCase) UploadEvidence(ctx context.Context, auditID, userID string, in UploadEvidenceInput) (*dto.EvidenceResponse, error) {
	a, err := uc.auditRepo.GetByID(auditID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	if in.Title == "" || in.Content == nil {
		return nil, domain.ErrInvalidInput
	}
	url, err := uc.blobs.Save(ctx, in.FileName, in.ContentType, in.Content)
	if err != nil {
		return nil, err
	}
	ev := &entity.Evidence{
		ID:          uuid.New().String(),
		AuditID:     a.ID,
		ProductID:   in.ProductID,
		Type:        in.Type,
		Title:       in.Title,
		Description: in.Description,
		FileURL:     url,
		ContentType: in.ContentType,
		CreatedBy:   userID,
		CreatedAt:   time.Now(),
	}
	if ev.Type == "" {
		ev.Type = entity.EvidenceTypeFoto
	}
	if err := uc.evidenceRepo.Create(ev); err != nil {
		return nil, err
	}
	return toEvidenceResponse(ev), nil
}

// ReplaceEvidence reemplaza el archivo de una evidencia existente. Si el blob
// anterior ya no existe, se tolera: queda un warning en el log y el
// reemplazo continúa.
func (uc *CountUseCase) ReplaceEvidence(ctx context.Context, evidenceID, userID string, in UploadEvidenceInput) (*dto.EvidenceResponse, error) {
	ev, err := uc.evidenceRepo.GetByID(evidenceID)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		return nil, domain.ErrNotFound
	}
	if in.Content == nil {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.blobs.Delete(ctx, ev.FileURL); err != nil {
		uc.log.Warn().Err(err).
			Str("evidence_id", ev.ID).
			Str("file_url", ev.FileURL).
			Msg("no se pudo borrar el blob anterior; se continúa con el reemplazo")
	}
	url, err := uc.blobs.Save(ctx, in.FileName, in.ContentType, in.Content)
	if err != nil {
		return nil, err
	}
	ev.FileURL = url
	if in.ContentType != "" {
		ev.ContentType = in.ContentType
	}
	if in.Title != "" {
		ev.Title = in.Title
	}
	if in.Description != "" {
		ev.Description = in.Description
	}
	if err := uc.evidenceRepo.Update(ev); err != nil {
		return nil, err
	}
	return toEvidenceResponse(ev), nil
}

// ListEvidence lista las evidencias de una auditoría.
func (uc *CountUseCase) ListEvidence(auditID string) ([]*dto.EvidenceResponse, error) {
	list, err := uc.evidenceRepo.ListByAudit(auditID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.EvidenceResponse, 0, len(list))
	for _, ev := range list {
		out = append(out, toEvidenceResponse(ev))
	}
	return out, nil
}

// ListSerialScans lista los escaneos registrados en una auditoría.
func (uc *CountUseCase) ListSerialScans(auditID string) ([]*dto.SerialScanResponse, error) {
	list, err := uc.scanRepo.ListByAudit(auditID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SerialScanResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toScanResponse(s))
	}
	return out, nil
}

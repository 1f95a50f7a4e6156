package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Auditoria-api/internal/application/dto"
	"github.com/jhoicas/Auditoria-api/internal/domain"
	"github.com/jhoicas/Auditoria-api/internal/domain/entity"
	"github.com/jhoicas/Auditoria-api/internal/domain/repository"
)

var pctFactor = decimal.NewFromInt(100)

// FinalizeUseCase cierra el conteo: calcula los agregados de la auditoría,
// transiciona a PENDIENTE_REVISION y captura el snapshot inmutable de
// valoración, todo dentro de una transacción.
type FinalizeUseCase struct {
	txRunner  TxRunner
	auditRepo repository.AuditRepository
	snapRepo  repository.SnapshotRepository
}

// NewFinalizeUseCase construye el caso de uso.
func NewFinalizeUseCase(txRunner TxRunner, auditRepo repository.AuditRepository, snapRepo repository.SnapshotRepository) *FinalizeUseCase {
	return &FinalizeUseCase{txRunner: txRunner, auditRepo: auditRepo, snapRepo: snapRepo}
}

// Finalize: legal solo desde EN_PROGRESO y con al menos una línea contada.
// Calcula items contados/conformes/discrepantes, valor total de discrepancia
// y exactitud; estampa fin; transiciona a PENDIENTE_REVISION y garantiza el
// snapshot (idempotente) en la misma transacción.
func (uc *FinalizeUseCase) Finalize(ctx context.Context, auditID, userID string) (*dto.AuditResponse, error) {
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

	now := time.Now()
	err = uc.txRunner.Run(ctx, func(
		auditRepo repository.AuditRepository,
		detailRepo repository.AuditDetailRepository,
		stockRepo repository.StockRepository,
		snapshotRepo repository.SnapshotRepository,
	) error {
		details, err := detailRepo.ListByAudit(a.ID)
		if err != nil {
			return err
		}
		counted, conformant, discrepant := 0, 0, 0
		total := decimal.Zero
		for _, d := range details {
			if !d.Counted {
				continue
			}
			counted++
			if d.Classification == entity.ClassConforme {
				conformant++
			} else {
				discrepant++
			}
			total = total.Add(d.DeltaValue)
		}
		if counted == 0 {
			return domain.ErrInvalidInput // finalizar sin conteos no es válido
		}

		a.ItemsCounted = counted
		a.ItemsConformant = conformant
		a.ItemsDiscrepant = discrepant
		a.TotalDiscrepancy = total
		a.Accuracy = decimal.NewFromInt(int64(conformant)).
			Mul(pctFactor).
			Div(decimal.NewFromInt(int64(counted))).
			Round(2)
		a.State = entity.AuditStatePendienteRevision
		a.FinishedAt = &now
		a.UpdatedAt = now
		if err := auditRepo.Update(a); err != nil {
			return err
		}
		_, err = ensureSnapshot(a, stockRepo, snapshotRepo, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toAuditResponse(a), nil
}

// GetSnapshot devuelve el snapshot de una auditoría, si existe.
func (uc *FinalizeUseCase) GetSnapshot(auditID string) (*dto.SnapshotResponse, error) {
	snap, err := uc.snapRepo.GetByAuditID(auditID)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, domain.ErrNotFound
	}
	return toSnapshotResponse(snap), nil
}

// EnsureSnapshot garantiza el snapshot de una auditoría ya finalizada;
// si ya existe lo devuelve sin cambios.
func (uc *FinalizeUseCase) EnsureSnapshot(ctx context.Context, auditID string) (*dto.SnapshotResponse, error) {
	a, err := uc.auditRepo.GetByID(auditID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	if a.State != entity.AuditStatePendienteRevision && a.State != entity.AuditStateCompletada {
		return nil, domain.ErrInvalidState
	}
	var snap *entity.Snapshot
	err = uc.txRunner.Run(ctx, func(
		_ repository.AuditRepository,
		_ repository.AuditDetailRepository,
		stockRepo repository.StockRepository,
		snapshotRepo repository.SnapshotRepository,
	) error {
		snap, err = ensureSnapshot(a, stockRepo, snapshotRepo, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return toSnapshotResponse(snap), nil
}

// ensureSnapshot crea el snapshot si no existe aún (a lo sumo uno por
// auditoría). La valoración re-lee el ledger vivo del alcance: es una
// valoración independiente, no una copia de las líneas de conteo, porque
// pudieron ocurrir movimientos desde el inicio del conteo.
func ensureSnapshot(
	a *entity.Audit,
	stockRepo repository.StockRepository,
	snapshotRepo repository.SnapshotRepository,
	now time.Time,
) (*entity.Snapshot, error) {
	existing, err := snapshotRepo.GetByAuditID(a.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	rows, err := stockRepo.ListByScope(repository.StockScope{
		WarehouseID: a.WarehouseID,
		ShelfID:     a.ShelfID,
		Categories:  a.Categories,
	})
	if err != nil {
		return nil, err
	}

	snap := &entity.Snapshot{
		ID:          uuid.New().String(),
		AuditID:     a.ID,
		WarehouseID: a.WarehouseID,
		TotalItems:  len(rows),
		TotalQty:    decimal.Zero,
		TotalValue:  decimal.Zero,
		CreatedAt:   now,
	}
	details := make([]*entity.SnapshotDetail, 0, len(rows))
	for _, row := range rows {
		value := row.Quantity.Mul(row.AvgCost)
		snap.TotalQty = snap.TotalQty.Add(row.Quantity)
		snap.TotalValue = snap.TotalValue.Add(value)
		details = append(details, &entity.SnapshotDetail{
			ID:         uuid.New().String(),
			SnapshotID: snap.ID,
			ProductID:  row.ProductID,
			Quantity:   row.Quantity,
			AvgCost:    row.AvgCost,
			TotalValue: value,
		})
	}
	if err := snapshotRepo.Create(snap, details); err != nil {
		return nil, err
	}
	return snap, nil
}

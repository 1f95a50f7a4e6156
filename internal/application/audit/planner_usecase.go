package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Auditoria-api/internal/application/dto"
	"github.com/jhoicas/Auditoria-api/internal/domain"
	domaudit "github.com/jhoicas/Auditoria-api/internal/domain/audit"
	"github.com/jhoicas/Auditoria-api/internal/domain/entity"
	"github.com/jhoicas/Auditoria-api/internal/domain/repository"
)

// PlannerUseCase gobierna el ciclo de vida de la auditoría: creación con
// alcance validado, edición en PLANIFICADA, cancelación, inicio de conteo
// (captura de la foto del ledger) y cierre de revisión.
type PlannerUseCase struct {
	txRunner      TxRunner
	auditRepo     repository.AuditRepository
	detailRepo    repository.AuditDetailRepository
	warehouseRepo repository.WarehouseRepository
	categoryRepo  repository.CategoryRepository
	seqRepo       repository.SequenceRepository
}

// NewPlannerUseCase construye el caso de uso.
func NewPlannerUseCase(
	txRunner TxRunner,
	auditRepo repository.AuditRepository,
	detailRepo repository.AuditDetailRepository,
	warehouseRepo repository.WarehouseRepository,
	categoryRepo repository.CategoryRepository,
	seqRepo repository.SequenceRepository,
) *PlannerUseCase {
	return &PlannerUseCase{
		txRunner:      txRunner,
		auditRepo:     auditRepo,
		detailRepo:    detailRepo,
		warehouseRepo: warehouseRepo,
		categoryRepo:  categoryRepo,
		seqRepo:       seqRepo,
	}
}

// Create valida el alcance (bodega, estante perteneciente, categorías) y
// persiste la auditoría en PLANIFICADA con código AUD-YYYYMM-#### del
// contador mensual.
func (uc *PlannerUseCase) Create(userID string, in dto.CreateAuditRequest) (*dto.AuditResponse, error) {
	if !entity.ValidAuditType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	warehouse, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	if in.ShelfID != "" {
		shelf, err := uc.warehouseRepo.GetShelf(in.ShelfID)
		if err != nil {
			return nil, err
		}
		if shelf == nil {
			return nil, domain.ErrNotFound
		}
		if shelf.WarehouseID != in.WarehouseID {
			return nil, domain.ErrInvalidInput // el estante no pertenece a la bodega
		}
	}

	filter := entity.AllCategories()
	if !in.AllCategories {
		if len(in.CategoryIDs) == 0 {
			return nil, domain.ErrInvalidInput
		}
		for _, id := range in.CategoryIDs {
			cat, err := uc.categoryRepo.GetByID(id)
			if err != nil {
				return nil, err
			}
			if cat == nil {
				return nil, domain.ErrNotFound
			}
		}
		filter = entity.ExplicitCategories(in.CategoryIDs)
	}

	now := time.Now()
	seq, err := uc.seqRepo.Next(domaudit.SequenceAudit, domaudit.PeriodKey(now))
	if err != nil {
		return nil, err
	}

	scheduled := in.Scheduled
	if scheduled.IsZero() {
		scheduled = now
	}
	a := &entity.Audit{
		ID:               uuid.New().String(),
		Code:             domaudit.FormatCode(domaudit.SequenceAudit, now, seq),
		Type:             in.Type,
		State:            entity.AuditStatePlanificada,
		WarehouseID:      in.WarehouseID,
		ShelfID:          in.ShelfID,
		Categories:       filter,
		PlannedBy:        userID,
		Scheduled:        scheduled,
		Notes:            in.Notes,
		TotalDiscrepancy: decimal.Zero,
		Accuracy:         decimal.Zero,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.auditRepo.Create(a); err != nil {
		return nil, err
	}
	return toAuditResponse(a), nil
}

// GetByID obtiene una auditoría.
func (uc *PlannerUseCase) GetByID(id string) (*dto.AuditResponse, error) {
	a, err := uc.auditRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return toAuditResponse(a), nil
}

// List lista auditorías con filtros.
func (uc *PlannerUseCase) List(filter repository.AuditListFilter) ([]*dto.AuditResponse, error) {
	audits, err := uc.auditRepo.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.AuditResponse, 0, len(audits))
	for _, a := range audits {
		out = append(out, toAuditResponse(a))
	}
	return out, nil
}

// ListDetails lista las líneas de una auditoría.
func (uc *PlannerUseCase) ListDetails(auditID string) ([]*dto.AuditDetailResponse, error) {
	details, err := uc.detailRepo.ListByAudit(auditID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.AuditDetailResponse, 0, len(details))
	for _, d := range details {
		out = append(out, toDetailResponse(d))
	}
	return out, nil
}

// ListDiscrepancies lista solo las líneas contadas con diferencia.
func (uc *PlannerUseCase) ListDiscrepancies(auditID string) ([]*dto.AuditDetailResponse, error) {
	details, err := uc.detailRepo.ListDiscrepant(auditID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.AuditDetailResponse, 0, len(details))
	for _, d := range details {
		out = append(out, toDetailResponse(d))
	}
	return out, nil
}

// Update edita campos de planificación; solo es legal en PLANIFICADA.
func (uc *PlannerUseCase) Update(id string, in dto.UpdateAuditRequest) (*dto.AuditResponse, error) {
	a, err := uc.auditRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	if a.State != entity.AuditStatePlanificada {
		return nil, domain.ErrInvalidState
	}
	if in.Type != nil {
		if !entity.ValidAuditType(*in.Type) {
			return nil, domain.ErrInvalidInput
		}
		a.Type = *in.Type
	}
	if in.ShelfID != nil {
		if *in.ShelfID != "" {
			shelf, err := uc.warehouseRepo.GetShelf(*in.ShelfID)
			if err != nil {
				return nil, err
			}
			if shelf == nil {
				return nil, domain.ErrNotFound
			}
			if shelf.WarehouseID != a.WarehouseID {
				return nil, domain.ErrInvalidInput
			}
		}
		a.ShelfID = *in.ShelfID
	}
	if in.AllCategories != nil && *in.AllCategories {
		a.Categories = entity.AllCategories()
	} else if in.CategoryIDs != nil {
		if len(*in.CategoryIDs) == 0 {
			return nil, domain.ErrInvalidInput
		}
		a.Categories = entity.ExplicitCategories(*in.CategoryIDs)
	}
	if in.Scheduled != nil {
		a.Scheduled = *in.Scheduled
	}
	if in.Notes != nil {
		a.Notes = *in.Notes
	}
	a.UpdatedAt = time.Now()
	if err := uc.auditRepo.Update(a); err != nil {
		return nil, err
	}
	return toAuditResponse(a), nil
}

// Cancel cancela la auditoría desde cualquier estado no terminal; anexa la
// nota y conserva todos los datos ya capturados.
func (uc *PlannerUseCase) Cancel(id, userID, note string) (*dto.AuditResponse, error) {
	a, err := uc.auditRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	if a.IsTerminal() {
		return nil, domain.ErrInvalidState
	}
	a.State = entity.AuditStateCancelada
	if note != "" {
		if a.Notes != "" {
			a.Notes += "\n"
		}
		a.Notes += note
	}
	a.UpdatedAt = time.Now()
	if err := uc.auditRepo.Update(a); err != nil {
		return nil, err
	}
	return toAuditResponse(a), nil
}

// StartCount inicia el conteo físico: solo desde PLANIFICADA. Si las líneas
// ya existen (inicialización parcial previa) solo transiciona; si no,
// consulta el ledger vivo del alcance y crea una línea por producto
// capturando cantidad del sistema, reservada y costo promedio en este
// instante. Alcance vacío es entrada inválida. Todo en una transacción.
func (uc *PlannerUseCase) StartCount(ctx context.Context, auditID, userID string) (*dto.AuditResponse, error) {
	a, err := uc.auditRepo.GetByID(auditID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	if a.State != entity.AuditStatePlanificada {
		return nil, domain.ErrInvalidState
	}

	now := time.Now()
	err = uc.txRunner.Run(ctx, func(
		auditRepo repository.AuditRepository,
		detailRepo repository.AuditDetailRepository,
		stockRepo repository.StockRepository,
		_ repository.SnapshotRepository,
	) error {
		existing, err := detailRepo.CountByAudit(a.ID)
		if err != nil {
			return err
		}
		if existing == 0 {
			rows, err := stockRepo.ListByScope(repository.StockScope{
				WarehouseID: a.WarehouseID,
				ShelfID:     a.ShelfID,
				Categories:  a.Categories,
			})
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				return domain.ErrInvalidInput // alcance sin productos
			}
			details := make([]*entity.AuditDetail, 0, len(rows))
			for _, row := range rows {
				details = append(details, &entity.AuditDetail{
					ID:          uuid.New().String(),
					AuditID:     a.ID,
					ProductID:   row.ProductID,
					ProductSKU:  row.ProductSKU,
					ProductName: row.ProductName,
					ShelfID:     row.ShelfID,
					SystemQty:   row.Quantity,
					ReservedQty: row.ReservedQty,
					AvgCost:     row.AvgCost,
					CreatedAt:   now,
					UpdatedAt:   now,
				})
			}
			if err := detailRepo.BulkCreate(details); err != nil {
				return err
			}
		}
		a.State = entity.AuditStateEnProgreso
		a.ExecutedBy = userID
		a.StartedAt = &now
		a.UpdatedAt = now
		return auditRepo.Update(a)
	})
	if err != nil {
		return nil, err
	}
	return toAuditResponse(a), nil
}

// Complete cierra la revisión: PENDIENTE_REVISION → COMPLETADA.
func (uc *PlannerUseCase) Complete(id, userID string) (*dto.AuditResponse, error) {
	a, err := uc.auditRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	if !entity.CanTransitionAudit(a.State, entity.AuditStateCompletada) {
		return nil, domain.ErrInvalidState
	}
	a.State = entity.AuditStateCompletada
	a.UpdatedAt = time.Now()
	if err := uc.auditRepo.Update(a); err != nil {
		return nil, err
	}
	return toAuditResponse(a), nil
}

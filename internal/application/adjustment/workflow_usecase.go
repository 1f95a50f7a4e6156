package adjustment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Auditoria-api/internal/application/dto"
	"github.com/jhoicas/Auditoria-api/internal/domain"
	domaudit "github.com/jhoicas/Auditoria-api/internal/domain/audit"
	"github.com/jhoicas/Auditoria-api/internal/domain/entity"
	"github.com/jhoicas/Auditoria-api/internal/domain/repository"
	"github.com/jhoicas/Auditoria-api/pkg/logger"
)

// WorkflowUseCase gobierna el ciclo de vida de los ajustes derivados de una
// auditoría: generación desde líneas discrepantes, autorización/rechazo y la
// aplicación que muta el stock vivo y anexa el movimiento al ledger.
type WorkflowUseCase struct {
	txRunner   TxRunner
	auditRepo  repository.AuditRepository
	detailRepo repository.AuditDetailRepository
	adjRepo    repository.AdjustmentRepository
	log        *logger.Logger
}

// NewWorkflowUseCase construye el caso de uso.
func NewWorkflowUseCase(
	txRunner TxRunner,
	auditRepo repository.AuditRepository,
	detailRepo repository.AuditDetailRepository,
	adjRepo repository.AdjustmentRepository,
	log *logger.Logger,
) *WorkflowUseCase {
	return &WorkflowUseCase{
		txRunner:   txRunner,
		auditRepo:  auditRepo,
		detailRepo: detailRepo,
		adjRepo:    adjRepo,
		log:        log,
	}
}

// Generate crea un ajuste por cada línea solicitada, en una sola transacción
// (todo o nada). Legal solo con la auditoría en PENDIENTE_REVISION o
// COMPLETADA. Cada línea debe pertenecer a la auditoría, estar contada y no
// ser CONFORME; la fila de stock vivo de (producto, bodega, estante) debe
// existir. El delta es físico − sistema de la línea; el costo unitario se
// copia del promedio vivo actual.
func (uc *WorkflowUseCase) Generate(ctx context.Context, auditID, userID string, in dto.GenerateAdjustmentsRequest) ([]*dto.AdjustmentResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
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

	now := time.Now()
	var created []*entity.Adjustment
	err = uc.txRunner.RunAdjustment(ctx, func(
		adjRepo repository.AdjustmentRepository,
		stockRepo repository.StockRepository,
		_ repository.StockMovementRepository,
		seqRepo repository.SequenceRepository,
	) error {
		created = created[:0]
		for _, item := range in.Items {
			detail, err := uc.detailRepo.GetForAudit(item.DetailID, a.ID)
			if err != nil {
				return err
			}
			if detail == nil {
				return fmt.Errorf("línea %s no pertenece a la auditoría %s: %w", item.DetailID, a.Code, domain.ErrInvalidInput)
			}
			if !detail.Counted || detail.Classification == entity.ClassConforme {
				return domain.ErrInvalidInput // solo líneas discrepantes generan ajuste
			}
			stock, err := stockRepo.Get(detail.ProductID, a.WarehouseID, detail.ShelfID)
			if err != nil {
				return err
			}
			if stock == nil {
				return fmt.Errorf("sin fila de stock para producto %s: %w", detail.ProductID, domain.ErrNotFound)
			}
			seq, err := seqRepo.Next(domaudit.SequenceAdjustment, domaudit.PeriodKey(now))
			if err != nil {
				return err
			}
			adj := &entity.Adjustment{
				ID:            uuid.New().String(),
				Code:          domaudit.FormatCode(domaudit.SequenceAdjustment, now, seq),
				AuditID:       a.ID,
				AuditCode:     a.Code,
				AuditDetailID: detail.ID,
				ProductID:     detail.ProductID,
				WarehouseID:   a.WarehouseID,
				ShelfID:       detail.ShelfID,

				QtyBefore: detail.SystemQty,
				QtyDelta:  detail.Delta,
				QtyAfter:  detail.SystemQty.Add(detail.Delta),
				UnitCost:  stock.AvgCost,

				Classification: detail.Classification,
				RootCause:      item.RootCause,
				State:          entity.AdjustmentStatePendiente,
				RequestedBy:    userID,
				RequestedAt:    now,
				CreatedAt:      now,
				UpdatedAt:      now,
			}
			if err := adjRepo.Create(adj); err != nil {
				return err
			}
			created = append(created, adj)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.AdjustmentResponse, 0, len(created))
	for _, adj := range created {
		out = append(out, toAdjustmentResponse(adj))
	}
	return out, nil
}

// Authorize decide un ajuste PENDIENTE_AUTORIZACION: lo aprueba o lo rechaza.
// Rechazar sin motivo es entrada inválida. Nunca toca el stock.
func (uc *WorkflowUseCase) Authorize(adjustmentID, userID string, in dto.AuthorizeAdjustmentRequest) (*dto.AdjustmentResponse, error) {
	adj, err := uc.adjRepo.GetByID(adjustmentID)
	if err != nil {
		return nil, err
	}
	if adj == nil {
		return nil, domain.ErrNotFound
	}
	if adj.State != entity.AdjustmentStatePendiente {
		return nil, domain.ErrInvalidState
	}
	if !in.Approve && in.Reason == "" {
		return nil, domain.ErrInvalidInput // rechazar exige motivo
	}

	now := time.Now()
	if in.Approve {
		adj.State = entity.AdjustmentStateAutorizado
	} else {
		adj.State = entity.AdjustmentStateRechazado
		adj.RejectionReason = in.Reason
	}
	adj.AuthorizedBy = userID
	adj.AuthorizedAt = &now
	adj.UpdatedAt = now
	if err := uc.adjRepo.Update(adj); err != nil {
		return nil, err
	}
	return toAdjustmentResponse(adj), nil
}

// Apply ejecuta un ajuste AUTORIZADO: dentro de una transacción re-lee la
// fila de stock viva con bloqueo, valida que la cantidad resultante no sea
// negativa (la autorización puede estar desactualizada frente a movimientos
// intermedios), actualiza el stock, anexa el movimiento firmado al ledger y
// transiciona a APLICADO guardando el ID del movimiento. Cualquier fallo
// revierte el paso completo y el ajuste queda reintentable en AUTORIZADO.
func (uc *WorkflowUseCase) Apply(ctx context.Context, adjustmentID, userID string) (*dto.AdjustmentResponse, error) {
	adj, err := uc.adjRepo.GetByID(adjustmentID)
	if err != nil {
		return nil, err
	}
	if adj == nil {
		return nil, domain.ErrNotFound
	}
	if adj.State != entity.AdjustmentStateAutorizado {
		return nil, domain.ErrInvalidState
	}

	now := time.Now()
	err = uc.txRunner.RunAdjustment(ctx, func(
		adjRepo repository.AdjustmentRepository,
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
		_ repository.SequenceRepository,
	) error {
		// Releer dentro de la tx: el estado pudo cambiar entre la
		// validación y la transacción.
		current, err := adjRepo.GetByID(adj.ID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		if current.State != entity.AdjustmentStateAutorizado {
			return domain.ErrInvalidState
		}

		stock, err := stockRepo.GetForUpdate(current.ProductID, current.WarehouseID, current.ShelfID)
		if err != nil {
			return err
		}
		if stock == nil {
			return domain.ErrNotFound
		}
		newQty := stock.Quantity.Add(current.QtyDelta)
		if newQty.IsNegative() {
			return fmt.Errorf("ajuste %s dejaría stock en %s: %w", current.Code, newQty.String(), domain.ErrInvariantViolation)
		}
		stock.Quantity = newQty
		stock.UpdatedAt = now
		if err := stockRepo.Upsert(stock); err != nil {
			return err
		}

		mov := &entity.StockMovement{
			ID:          uuid.New().String(),
			ProductID:   current.ProductID,
			WarehouseID: current.WarehouseID,
			ShelfID:     current.ShelfID,
			Type:        entity.MovementTypeADJUSTMENT,
			Quantity:    current.QtyDelta,
			UnitCost:    current.UnitCost,
			TotalCost:   current.QtyDelta.Mul(current.UnitCost),
			Reference:   fmt.Sprintf("%s (%s)", current.Code, current.AuditCode),
			Date:        now,
			CreatedAt:   now,
			CreatedBy:   userID,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}

		current.State = entity.AdjustmentStateAplicado
		current.AppliedAt = &now
		current.MovementID = mov.ID
		current.UpdatedAt = now
		if err := adjRepo.Update(current); err != nil {
			return err
		}
		*adj = *current
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("adjustment", adj.Code).
		Str("audit", adj.AuditCode).
		Str("movement_id", adj.MovementID).
		Msg("ajuste aplicado al stock vivo")
	return toAdjustmentResponse(adj), nil
}

// GetByID obtiene un ajuste.
func (uc *WorkflowUseCase) GetByID(id string) (*dto.AdjustmentResponse, error) {
	adj, err := uc.adjRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if adj == nil {
		return nil, domain.ErrNotFound
	}
	return toAdjustmentResponse(adj), nil
}

// List lista ajustes con filtros.
func (uc *WorkflowUseCase) List(filter repository.AdjustmentListFilter) ([]*dto.AdjustmentResponse, error) {
	list, err := uc.adjRepo.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.AdjustmentResponse, 0, len(list))
	for _, adj := range list {
		out = append(out, toAdjustmentResponse(adj))
	}
	return out, nil
}

package adjustment

import (
	"github.com/jhoicas/Auditoria-api/internal/application/dto"
	"github.com/jhoicas/Auditoria-api/internal/domain/entity"
)

func toAdjustmentResponse(a *entity.Adjustment) *dto.AdjustmentResponse {
	return &dto.AdjustmentResponse{
		ID:            a.ID,
		Code:          a.Code,
		AuditID:       a.AuditID,
		AuditCode:     a.AuditCode,
		AuditDetailID: a.AuditDetailID,
		ProductID:     a.ProductID,
		WarehouseID:   a.WarehouseID,
		ShelfID:       a.ShelfID,

		QtyBefore: a.QtyBefore,
		QtyDelta:  a.QtyDelta,
		QtyAfter:  a.QtyAfter,
		UnitCost:  a.UnitCost,

		Classification:  a.Classification,
		RootCause:       a.RootCause,
		State:           a.State,
		RequestedBy:     a.RequestedBy,
		AuthorizedBy:    a.AuthorizedBy,
		AuthorizedAt:    a.AuthorizedAt,
		RejectionReason: a.RejectionReason,
		AppliedAt:       a.AppliedAt,
		MovementID:      a.MovementID,
		CreatedAt:       a.CreatedAt,
	}
}

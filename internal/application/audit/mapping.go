package audit

import (
	"github.com/jhoicas/Auditoria-api/internal/application/dto"
	"github.com/jhoicas/Auditoria-api/internal/domain/entity"
)

func toAuditResponse(a *entity.Audit) *dto.AuditResponse {
	return &dto.AuditResponse{
		ID:            a.ID,
		Code:          a.Code,
		Type:          a.Type,
		State:         a.State,
		WarehouseID:   a.WarehouseID,
		ShelfID:       a.ShelfID,
		AllCategories: a.Categories.All(),
		CategoryIDs:   a.Categories.IDs(),
		PlannedBy:     a.PlannedBy,
		ExecutedBy:    a.ExecutedBy,
		Scheduled:     a.Scheduled,
		StartedAt:     a.StartedAt,
		FinishedAt:    a.FinishedAt,
		Notes:         a.Notes,

		ItemsCounted:     a.ItemsCounted,
		ItemsConformant:  a.ItemsConformant,
		ItemsDiscrepant:  a.ItemsDiscrepant,
		TotalDiscrepancy: a.TotalDiscrepancy,
		Accuracy:         a.Accuracy,

		CreatedAt: a.CreatedAt,
	}
}

func toDetailResponse(d *entity.AuditDetail) *dto.AuditDetailResponse {
	return &dto.AuditDetailResponse{
		ID:          d.ID,
		AuditID:     d.AuditID,
		ProductID:   d.ProductID,
		ProductSKU:  d.ProductSKU,
		ProductName: d.ProductName,
		ShelfID:     d.ShelfID,

		SystemQty:   d.SystemQty,
		ReservedQty: d.ReservedQty,
		AvgCost:     d.AvgCost,

		Counted:        d.Counted,
		PhysicalQty:    d.PhysicalQty,
		Delta:          d.Delta,
		DeltaValue:     d.DeltaValue,
		PctDiff:        d.PctDiff,
		Classification: d.Classification,
		Investigate:    d.Investigate,
		Note:           d.Note,
		CountedBy:      d.CountedBy,
		CountedAt:      d.CountedAt,
	}
}

func toScanResponse(s *entity.SerialScan) *dto.SerialScanResponse {
	return &dto.SerialScanResponse{
		ID:                  s.ID,
		AuditID:             s.AuditID,
		AuditDetailID:       s.AuditDetailID,
		ProductID:           s.ProductID,
		Serial:              s.Serial,
		FoundPhysically:     s.FoundPhysically,
		InRegistry:          s.InRegistry,
		RegistryState:       s.RegistryState,
		ExpectedWarehouseID: s.ExpectedWarehouseID,
		WarehouseMatches:    s.WarehouseMatches,
		ScannedAt:           s.ScannedAt,
	}
}

func toEvidenceResponse(e *entity.Evidence) *dto.EvidenceResponse {
	return &dto.EvidenceResponse{
		ID:          e.ID,
		AuditID:     e.AuditID,
		ProductID:   e.ProductID,
		Type:        e.Type,
		Title:       e.Title,
		Description: e.Description,
		FileURL:     e.FileURL,
		ContentType: e.ContentType,
		CreatedAt:   e.CreatedAt,
	}
}

func toSnapshotResponse(s *entity.Snapshot) *dto.SnapshotResponse {
	return &dto.SnapshotResponse{
		ID:          s.ID,
		AuditID:     s.AuditID,
		WarehouseID: s.WarehouseID,
		TotalItems:  s.TotalItems,
		TotalQty:    s.TotalQty,
		TotalValue:  s.TotalValue,
		CreatedAt:   s.CreatedAt,
	}
}

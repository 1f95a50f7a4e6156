// Package report arma el reporte de resultados de una auditoría y delega el
// render en el generador de documentos.
package report

import (
	"context"
	"errors"

	"github.com/jhoicas/Auditoria-api/internal/application/audit"
	"github.com/jhoicas/Auditoria-api/internal/domain"
)

// AuditReportUseCase construye el payload del reporte de auditoría.
type AuditReportUseCase struct {
	planner  *audit.PlannerUseCase
	finalize *audit.FinalizeUseCase
	pdf      PDFGenerator
}

// NewAuditReportUseCase construye el caso de uso.
func NewAuditReportUseCase(planner *audit.PlannerUseCase, finalize *audit.FinalizeUseCase, pdf PDFGenerator) *AuditReportUseCase {
	return &AuditReportUseCase{planner: planner, finalize: finalize, pdf: pdf}
}

// Generate arma el payload (auditoría + discrepancias + snapshot si existe)
// y devuelve los bytes del PDF.
func (uc *AuditReportUseCase) Generate(ctx context.Context, auditID string) ([]byte, error) {
	a, err := uc.planner.GetByID(auditID)
	if err != nil {
		return nil, err
	}
	discrepancies, err := uc.planner.ListDiscrepancies(auditID)
	if err != nil {
		return nil, err
	}
	snap, err := uc.finalize.GetSnapshot(auditID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return uc.pdf.GenerateAuditReport(ctx, &AuditReportData{
		Audit:         a,
		Discrepancies: discrepancies,
		Snapshot:      snap,
	})
}

package report

import (
	"context"

	"github.com/jhoicas/Auditoria-api/internal/application/dto"
)

// AuditReportData es el payload que consume el renderizador de documentos.
type AuditReportData struct {
	Audit         *dto.AuditResponse
	Discrepancies []*dto.AuditDetailResponse
	Snapshot      *dto.SnapshotResponse // nil si aún no existe
}

// PDFGenerator puerto al renderizador de documentos (rol consumidor puro:
// recibe el payload y devuelve los bytes del reporte).
type PDFGenerator interface {
	GenerateAuditReport(ctx context.Context, data *AuditReportData) ([]byte, error)
}

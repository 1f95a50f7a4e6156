package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Auditoria-api/internal/application/adjustment"
	appaudit "github.com/jhoicas/Auditoria-api/internal/application/audit"
	"github.com/jhoicas/Auditoria-api/internal/application/auth"
	"github.com/jhoicas/Auditoria-api/internal/application/metrics"
	"github.com/jhoicas/Auditoria-api/internal/application/report"
	"github.com/jhoicas/Auditoria-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	PlannerUC    *appaudit.PlannerUseCase
	CountUC      *appaudit.CountUseCase
	FinalizeUC   *appaudit.FinalizeUseCase
	ReportUC     *report.AuditReportUseCase
	AdjustmentUC *adjustment.WorkflowUseCase
	MetricsUC    *metrics.AggregatorUseCase
	AuthUC       *auth.AuthUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	supervisors := RequireRole(entity.RoleAdmin, entity.RoleSupervisor)

	// Audits (protegido)
	audits := protected.Group("/audits")
	auditHandler := NewAuditHandler(deps.PlannerUC, deps.FinalizeUC, deps.ReportUC)
	audits.Post("/", auditHandler.Create)
	audits.Get("/", auditHandler.List)
	audits.Get("/:id", auditHandler.GetByID)
	audits.Put("/:id", auditHandler.Update)
	audits.Post("/:id/cancel", auditHandler.Cancel)
	audits.Post("/:id/start", auditHandler.Start)
	audits.Post("/:id/finalize", auditHandler.Finalize)
	audits.Post("/:id/complete", supervisors, auditHandler.Complete)
	audits.Get("/:id/details", auditHandler.ListDetails)
	audits.Get("/:id/discrepancies", auditHandler.ListDiscrepancies)
	audits.Get("/:id/snapshot", auditHandler.GetSnapshot)
	audits.Get("/:id/report", auditHandler.Report)

	// Captura durante el conteo (protegido)
	countHandler := NewCountHandler(deps.CountUC)
	audits.Post("/:id/counts", countHandler.RegisterCounts)
	audits.Post("/:id/serial-scans", countHandler.ScanSerial)
	audits.Get("/:id/serial-scans", countHandler.ListSerialScans)
	audits.Post("/:id/evidence", countHandler.UploadEvidence)
	audits.Get("/:id/evidence", countHandler.ListEvidence)
	protected.Put("/evidence/:evidenceID", countHandler.ReplaceEvidence)

	// Adjustments (protegido; autorizar y aplicar solo supervisor/admin)
	adjustmentHandler := NewAdjustmentHandler(deps.AdjustmentUC)
	audits.Post("/:id/adjustments", adjustmentHandler.Generate)
	adjustments := protected.Group("/adjustments")
	adjustments.Get("/", adjustmentHandler.List)
	adjustments.Get("/:id", adjustmentHandler.GetByID)
	adjustments.Post("/:id/authorize", supervisors, adjustmentHandler.Authorize)
	adjustments.Post("/:id/apply", supervisors, adjustmentHandler.Apply)

	// Metrics (protegido)
	metricsHandler := NewMetricsHandler(deps.MetricsUC)
	metricsGroup := protected.Group("/metrics")
	metricsGroup.Post("/recompute", supervisors, metricsHandler.Recompute)
	metricsGroup.Get("/:period", metricsHandler.Get)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Auditoria-api/internal/application/audit"
	"github.com/jhoicas/Auditoria-api/internal/application/dto"
	"github.com/jhoicas/Auditoria-api/internal/application/report"
	"github.com/jhoicas/Auditoria-api/internal/domain/repository"
)

// AuditHandler maneja el ciclo de vida de las auditorías (protegido).
type AuditHandler struct {
	planner  *audit.PlannerUseCase
	finalize *audit.FinalizeUseCase
	report   *report.AuditReportUseCase
}

// NewAuditHandler construye el handler.
func NewAuditHandler(planner *audit.PlannerUseCase, finalize *audit.FinalizeUseCase, rep *report.AuditReportUseCase) *AuditHandler {
	return &AuditHandler{planner: planner, finalize: finalize, report: rep}
}

// Create godoc
// @Summary      Planificar auditoría
// @Tags         audits
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAuditRequest  true  "type, warehouse_id, shelf_id, all_categories o category_ids, scheduled_date"
// @Success      201   {object}  dto.AuditResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/audits [post]
func (h *AuditHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAuditRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.planner.Create(GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar auditorías
// @Tags         audits
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Filtrar por bodega"
// @Param        state         query  string  false  "Filtrar por estado"
// @Param        limit         query  int     false  "Tamaño de página (default 20)"
// @Param        offset        query  int     false  "Desplazamiento"
// @Success      200  {array}   dto.AuditResponse
// @Router       /api/audits [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	out, err := h.planner.List(repository.AuditListFilter{
		WarehouseID: c.Query("warehouse_id"),
		State:       c.Query("state"),
		Limit:       page.Limit,
		Offset:      page.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(out), "audits": out})
}

// GetByID godoc
// @Summary      Consultar auditoría
// @Tags         audits
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la auditoría"
// @Success      200  {object}  dto.AuditResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/audits/{id} [get]
func (h *AuditHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.planner.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Modificar planificación (solo PLANIFICADA)
// @Tags         audits
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la auditoría"
// @Param        body  body  dto.UpdateAuditRequest  true  "campos a modificar"
// @Success      200   {object}  dto.AuditResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/audits/{id} [put]
func (h *AuditHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateAuditRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.planner.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar auditoría (PLANIFICADA o EN_PROGRESO)
// @Tags         audits
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la auditoría"
// @Param        body  body  dto.CancelAuditRequest  false "nota de cancelación"
// @Success      200   {object}  dto.AuditResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/audits/{id}/cancel [post]
func (h *AuditHandler) Cancel(c *fiber.Ctx) error {
	var in dto.CancelAuditRequest
	if err := c.BodyParser(&in); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.planner.Cancel(c.Params("id"), GetUserID(c), in.Note)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Start godoc
// @Summary      Iniciar conteo: captura las líneas del alcance y pasa a EN_PROGRESO
// @Tags         audits
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la auditoría"
// @Success      200  {object}  dto.AuditResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/audits/{id}/start [post]
func (h *AuditHandler) Start(c *fiber.Ctx) error {
	out, err := h.planner.StartCount(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Finalize godoc
// @Summary      Finalizar conteo: calcula agregados, toma snapshot y pasa a PENDIENTE_REVISION
// @Tags         audits
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la auditoría"
// @Success      200  {object}  dto.AuditResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/audits/{id}/finalize [post]
func (h *AuditHandler) Finalize(c *fiber.Ctx) error {
	out, err := h.finalize.Finalize(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Complete godoc
// @Summary      Cerrar revisión: PENDIENTE_REVISION → COMPLETADA
// @Tags         audits
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la auditoría"
// @Success      200  {object}  dto.AuditResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/audits/{id}/complete [post]
func (h *AuditHandler) Complete(c *fiber.Ctx) error {
	out, err := h.planner.Complete(c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListDetails godoc
// @Summary      Listar líneas de la auditoría
// @Tags         audits
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la auditoría"
// @Success      200  {array}   dto.AuditDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/audits/{id}/details [get]
func (h *AuditHandler) ListDetails(c *fiber.Ctx) error {
	out, err := h.planner.ListDetails(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(out), "details": out})
}

// ListDiscrepancies godoc
// @Summary      Listar líneas discrepantes (SOBRANTE/FALTANTE)
// @Tags         audits
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la auditoría"
// @Success      200  {array}   dto.AuditDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/audits/{id}/discrepancies [get]
func (h *AuditHandler) ListDiscrepancies(c *fiber.Ctx) error {
	out, err := h.planner.ListDiscrepancies(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(out), "discrepancies": out})
}

// GetSnapshot godoc
// @Summary      Consultar el snapshot de valoración de la auditoría
// @Tags         audits
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la auditoría"
// @Success      200  {object}  dto.SnapshotResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/audits/{id}/snapshot [get]
func (h *AuditHandler) GetSnapshot(c *fiber.Ctx) error {
	out, err := h.finalize.GetSnapshot(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Descargar el reporte PDF de resultados
// @Tags         audits
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la auditoría"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/audits/{id}/report [get]
func (h *AuditHandler) Report(c *fiber.Ctx) error {
	pdfBytes, err := h.report.Generate(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="auditoria.pdf"`)
	return c.Send(pdfBytes)
}

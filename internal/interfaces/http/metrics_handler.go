package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Auditoria-api/internal/application/dto"
	"github.com/jhoicas/Auditoria-api/internal/application/metrics"
)

// MetricsHandler maneja los KPIs de auditoría (protegido).
type MetricsHandler struct {
	uc *metrics.AggregatorUseCase
}

// NewMetricsHandler construye el handler.
func NewMetricsHandler(uc *metrics.AggregatorUseCase) *MetricsHandler {
	return &MetricsHandler{uc: uc}
}

// Get godoc
// @Summary      Consultar KPIs de un período
// @Tags         metrics
// @Security     Bearer
// @Produce      json
// @Param        period        path   string  true   "Período YYYYMM"
// @Param        warehouse_id  query  string  false  "Bodega (vacío = todas)"
// @Success      200  {object}  dto.MetricsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/metrics/{period} [get]
func (h *MetricsHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("period"), c.Query("warehouse_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Recompute godoc
// @Summary      Recalcular KPIs de un período (idempotente)
// @Tags         metrics
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecomputeMetricsRequest  true  "period YYYYMM, warehouse_id opcional"
// @Success      200   {object}  dto.MetricsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/metrics/recompute [post]
func (h *MetricsHandler) Recompute(c *fiber.Ctx) error {
	var in dto.RecomputeMetricsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Recompute(c.Context(), in.Period, in.WarehouseID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Auditoria-api/internal/application/audit"
	"github.com/jhoicas/Auditoria-api/internal/application/dto"
)

// CountHandler maneja la captura durante el conteo: lotes de conteo, escaneo
// de series y evidencias (protegido).
type CountHandler struct {
	uc *audit.CountUseCase
}

// NewCountHandler construye el handler.
func NewCountHandler(uc *audit.CountUseCase) *CountHandler {
	return &CountHandler{uc: uc}
}

// RegisterCounts godoc
// @Summary      Registrar lote de conteos físicos (todo o nada)
// @Tags         counts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la auditoría"
// @Param        body  body  dto.RegisterCountRequest true  "items: product_id, physical_qty, note"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/audits/{id}/counts [post]
func (h *CountHandler) RegisterCounts(c *fiber.Ctx) error {
	var in dto.RegisterCountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el lote de conteos está vacío"})
	}
	if err := h.uc.RegisterCount(c.Context(), c.Params("id"), GetUserID(c), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "conteos registrados"})
}

// ScanSerial godoc
// @Summary      Registrar escaneo de número de serie (informativo)
// @Tags         counts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID de la auditoría"
// @Param        body  body  dto.ScanSerialRequest true  "product_id, serial, found_physically"
// @Success      201   {object}  dto.SerialScanResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/audits/{id}/serial-scans [post]
func (h *CountHandler) ScanSerial(c *fiber.Ctx) error {
	var in dto.ScanSerialRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ScanSerial(c.Params("id"), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSerialScans godoc
// @Summary      Listar escaneos de serie de la auditoría
// @Tags         counts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la auditoría"
// @Success      200  {array}  dto.SerialScanResponse
// @Router       /api/audits/{id}/serial-scans [get]
func (h *CountHandler) ListSerialScans(c *fiber.Ctx) error {
	out, err := h.uc.ListSerialScans(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(out), "scans": out})
}

// UploadEvidence godoc
// @Summary      Adjuntar evidencia (multipart: file + metadata)
// @Tags         counts
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id           path      string  true   "ID de la auditoría"
// @Param        file         formData  file    true   "archivo de evidencia"
// @Param        type         formData  string  false  "FOTO | DOCUMENTO | OTRO"
// @Param        title        formData  string  false  "título"
// @Param        description  formData  string  false  "descripción"
// @Param        product_id   formData  string  false  "producto asociado"
// @Success      201  {object}  dto.EvidenceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/audits/{id}/evidence [post]
func (h *CountHandler) UploadEvidence(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "se requiere el campo file"})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "no se pudo leer el archivo"})
	}
	defer f.Close()

	out, err := h.uc.UploadEvidence(c.Context(), c.Params("id"), GetUserID(c), audit.UploadEvidenceInput{
		Type:        c.FormValue("type"),
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		ProductID:   c.FormValue("product_id"),
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     f,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ReplaceEvidence godoc
// @Summary      Reemplazar el archivo de una evidencia existente
// @Tags         counts
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        evidenceID  path      string  true  "ID de la evidencia"
// @Param        file        formData  file    true  "archivo nuevo"
// @Success      200  {object}  dto.EvidenceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/evidence/{evidenceID} [put]
func (h *CountHandler) ReplaceEvidence(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "se requiere el campo file"})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "no se pudo leer el archivo"})
	}
	defer f.Close()

	out, err := h.uc.ReplaceEvidence(c.Context(), c.Params("evidenceID"), GetUserID(c), audit.UploadEvidenceInput{
		Type:        c.FormValue("type"),
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     f,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListEvidence godoc
// @Summary      Listar evidencias de la auditoría
// @Tags         counts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la auditoría"
// @Success      200  {array}  dto.EvidenceResponse
// @Router       /api/audits/{id}/evidence [get]
func (h *CountHandler) ListEvidence(c *fiber.Ctx) error {
	out, err := h.uc.ListEvidence(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(out), "evidence": out})
}

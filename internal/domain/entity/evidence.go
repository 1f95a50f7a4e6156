package entity

import "time"

// Tipos de evidencia adjunta a una auditoría.
const (
	EvidenceTypeFoto      = "FOTO"
	EvidenceTypeDocumento = "DOCUMENTO"
	EvidenceTypeOtro      = "OTRO"
)

// Evidence es la metadata de un adjunto de auditoría (el binario vive en el
// almacén de blobs externo; aquí solo se guarda la URL).
type Evidence struct {
	ID          string
	AuditID     string
	ProductID   string // opcional: evidencia ligada a un producto concreto
	Type        string
	Title       string
	Description string
	FileURL     string
	ContentType string
	CreatedBy   string
	CreatedAt   time.Time
}

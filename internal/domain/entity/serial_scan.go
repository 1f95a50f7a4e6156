package entity

import "time"

// SerialScan registra el escaneo de un serial durante el conteo. Es un
// registro informativo hijo de una línea de auditoría: nunca altera los
// números de discrepancia.
type SerialScan struct {
	ID              string
	AuditID         string
	AuditDetailID   string
	ProductID       string
	Serial          string
	FoundPhysically bool   // el serial estaba físicamente en la bodega
	InRegistry      bool   // el serial existe en el registro externo
	RegistryState   string // estado reportado por el registro (si existe)
	ExpectedWarehouseID string // bodega donde el registro dice que debería estar
	WarehouseMatches    bool   // ExpectedWarehouseID == bodega de la auditoría
	ScannedBy       string
	ScannedAt       time.Time
}

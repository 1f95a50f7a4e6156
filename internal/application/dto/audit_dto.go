package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAuditRequest crea una auditoría planificada.
// all_categories=true ignora category_ids; false exige el conjunto explícito.
type CreateAuditRequest struct {
	Type          string    `json:"type" validate:"required"`
	WarehouseID   string    `json:"warehouse_id" validate:"required"`
	ShelfID       string    `json:"shelf_id"`
	AllCategories bool      `json:"all_categories"`
	CategoryIDs   []string  `json:"category_ids"`
	Scheduled     time.Time `json:"scheduled_date"`
	Notes         string    `json:"notes"`
}

// UpdateAuditRequest actualiza campos de planificación (solo en PLANIFICADA).
// Campos nil se dejan sin tocar.
type UpdateAuditRequest struct {
	Type          *string    `json:"type"`
	ShelfID       *string    `json:"shelf_id"`
	AllCategories *bool      `json:"all_categories"`
	CategoryIDs   *[]string  `json:"category_ids"`
	Scheduled     *time.Time `json:"scheduled_date"`
	Notes         *string    `json:"notes"`
}

// CancelAuditRequest cancela una auditoría dejando una nota.
type CancelAuditRequest struct {
	Note string `json:"note"`
}

// CountItemRequest una línea del lote de conteo físico.
type CountItemRequest struct {
	ProductID   string          `json:"product_id" validate:"required"`
	PhysicalQty decimal.Decimal `json:"physical_qty"`
	Note        string          `json:"note"`
}

// RegisterCountRequest lote de conteos: todo el lote se aplica o ninguno.
type RegisterCountRequest struct {
	Items []CountItemRequest `json:"items" validate:"required,min=1"`
}

// ScanSerialRequest escaneo informativo de un número de serie.
type ScanSerialRequest struct {
	ProductID       string `json:"product_id" validate:"required"`
	Serial          string `json:"serial" validate:"required"`
	FoundPhysically bool   `json:"found_physically"`
}

// AuditResponse representación de una auditoría.
type AuditResponse struct {
	ID            string     `json:"id"`
	Code          string     `json:"code"`
	Type          string     `json:"type"`
	State         string     `json:"state"`
	WarehouseID   string     `json:"warehouse_id"`
	ShelfID       string     `json:"shelf_id,omitempty"`
	AllCategories bool       `json:"all_categories"`
	CategoryIDs   []string   `json:"category_ids,omitempty"`
	PlannedBy     string     `json:"planned_by"`
	ExecutedBy    string     `json:"executed_by,omitempty"`
	Scheduled     time.Time  `json:"scheduled_date"`
	StartedAt     *time.Time `json:"started_at,omitempty"`
	FinishedAt    *time.Time `json:"finished_at,omitempty"`
	Notes         string     `json:"notes,omitempty"`

	ItemsCounted     int             `json:"items_counted"`
	ItemsConformant  int             `json:"items_conformant"`
	ItemsDiscrepant  int             `json:"items_discrepant"`
	TotalDiscrepancy decimal.Decimal `json:"total_discrepancy_value"`
	Accuracy         decimal.Decimal `json:"accuracy_pct"`

	CreatedAt time.Time `json:"created_at"`
}

// AuditDetailResponse línea de auditoría con sus campos derivados.
type AuditDetailResponse struct {
	ID          string `json:"id"`
	AuditID     string `json:"audit_id"`
	ProductID   string `json:"product_id"`
	ProductSKU  string `json:"product_sku"`
	ProductName string `json:"product_name"`
	ShelfID     string `json:"shelf_id,omitempty"`

	SystemQty   decimal.Decimal `json:"system_qty"`
	ReservedQty decimal.Decimal `json:"reserved_qty"`
	AvgCost     decimal.Decimal `json:"avg_cost"`

	Counted        bool            `json:"counted"`
	PhysicalQty    decimal.Decimal `json:"physical_qty"`
	Delta          decimal.Decimal `json:"delta"`
	DeltaValue     decimal.Decimal `json:"delta_value"`
	PctDiff        decimal.Decimal `json:"pct_diff"`
	Classification string          `json:"classification,omitempty"`
	Investigate    bool            `json:"investigate"`
	Note           string          `json:"note,omitempty"`
	CountedBy      string          `json:"counted_by,omitempty"`
	CountedAt      *time.Time      `json:"counted_at,omitempty"`
}

// SerialScanResponse resultado de un escaneo de serie.
type SerialScanResponse struct {
	ID                  string    `json:"id"`
	AuditID             string    `json:"audit_id"`
	AuditDetailID       string    `json:"audit_detail_id"`
	ProductID           string    `json:"product_id"`
	Serial              string    `json:"serial"`
	FoundPhysically     bool      `json:"found_physically"`
	InRegistry          bool      `json:"in_registry"`
	RegistryState       string    `json:"registry_state,omitempty"`
	ExpectedWarehouseID string    `json:"expected_warehouse_id,omitempty"`
	WarehouseMatches    bool      `json:"warehouse_matches"`
	ScannedAt           time.Time `json:"scanned_at"`
}

// EvidenceResponse metadata de un adjunto.
type EvidenceResponse struct {
	ID          string    `json:"id"`
	AuditID     string    `json:"audit_id"`
	ProductID   string    `json:"product_id,omitempty"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	FileURL     string    `json:"file_url"`
	ContentType string    `json:"content_type,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// SnapshotResponse cabecera del snapshot de valoración.
type SnapshotResponse struct {
	ID          string          `json:"id"`
	AuditID     string          `json:"audit_id"`
	WarehouseID string          `json:"warehouse_id"`
	TotalItems  int             `json:"total_items"`
	TotalQty    decimal.Decimal `json:"total_qty"`
	TotalValue  decimal.Decimal `json:"total_value"`
	CreatedAt   time.Time       `json:"created_at"`
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustmentItemRequest pide un ajuste para una línea discrepante.
type AdjustmentItemRequest struct {
	DetailID  string `json:"detail_id" validate:"required"`
	RootCause string `json:"root_cause"`
	Note      string `json:"note"`
}

// GenerateAdjustmentsRequest lote de ajustes propuestos (todo o nada).
type GenerateAdjustmentsRequest struct {
	Items []AdjustmentItemRequest `json:"items" validate:"required,min=1"`
}

// AuthorizeAdjustmentRequest decide un ajuste pendiente. Rechazar sin
// reason es entrada inválida.
type AuthorizeAdjustmentRequest struct {
	Approve bool   `json:"approve"`
	Reason  string `json:"reason"`
}

// AdjustmentResponse representación de un ajuste.
type AdjustmentResponse struct {
	ID            string `json:"id"`
	Code          string `json:"code"`
	AuditID       string `json:"audit_id"`
	AuditCode     string `json:"audit_code"`
	AuditDetailID string `json:"audit_detail_id"`
	ProductID     string `json:"product_id"`
	WarehouseID   string `json:"warehouse_id"`
	ShelfID       string `json:"shelf_id,omitempty"`

	QtyBefore decimal.Decimal `json:"qty_before"`
	QtyDelta  decimal.Decimal `json:"qty_delta"`
	QtyAfter  decimal.Decimal `json:"qty_after"`
	UnitCost  decimal.Decimal `json:"unit_cost"`

	Classification  string     `json:"classification"`
	RootCause       string     `json:"root_cause,omitempty"`
	State           string     `json:"state"`
	RequestedBy     string     `json:"requested_by"`
	AuthorizedBy    string     `json:"authorized_by,omitempty"`
	AuthorizedAt    *time.Time `json:"authorized_at,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	AppliedAt       *time.Time `json:"applied_at,omitempty"`
	MovementID      string     `json:"movement_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecomputeMetricsRequest recalcula los KPIs de un período YYYYMM.
type RecomputeMetricsRequest struct {
	Period      string `json:"period" validate:"required,len=6"`
	WarehouseID string `json:"warehouse_id"`
}

// MetricsResponse KPIs de un período.
type MetricsResponse struct {
	Period      string `json:"period"`
	WarehouseID string `json:"warehouse_id,omitempty"`

	AuditsCompleted    int             `json:"audits_completed"`
	ItemsCounted       int             `json:"items_counted"`
	ItemsDiscrepant    int             `json:"items_discrepant"`
	Accuracy           decimal.Decimal `json:"accuracy_pct"`
	PositiveValue      decimal.Decimal `json:"positive_value"`
	NegativeValue      decimal.Decimal `json:"negative_value"`
	NetValue           decimal.Decimal `json:"net_value"`
	AdjustmentsTotal   int             `json:"adjustments_total"`
	AdjustmentsApplied int             `json:"adjustments_applied"`

	ComputedAt time.Time `json:"computed_at"`
}

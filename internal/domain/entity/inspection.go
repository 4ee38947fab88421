package entity

import (
	"used_market/internal/domain/value"
)

type InspectionStatus string

const (
	InspectionNone     InspectionStatus = "none"
	InspectionPending  InspectionStatus = "pending"
	InspectionComplete InspectionStatus = "complete"
)

// Inspection is the delayed-reveal sub-state of a listing. It moves one way,
// none → pending → complete, on the simulated-hour clock; cancelling a pending
// inspection resets it to none with the cost sunk.
type Inspection struct {
	Status          InspectionStatus     `json:"status"`
	Tier            value.InspectionTier `json:"tier,omitempty"`
	CostPaid        int64                `json:"cost_paid,omitempty"`
	RequestedAtHour int                  `json:"requested_at_hour,omitempty"`
	CompletesAtHour int                  `json:"completes_at_hour,omitempty"`

	Report *InspectionReport `json:"report,omitempty"`
}

// InspectionReport is what the buyer learns, scoped by tier depth.
type InspectionReport struct {
	Depth         value.InspectionDepth `json:"depth"`
	OverallRating float64               `json:"overall_rating"`

	EngineReliability     *float64 `json:"engine_reliability,omitempty"`
	HydraulicReliability  *float64 `json:"hydraulic_reliability,omitempty"`
	ElectricalReliability *float64 `json:"electrical_reliability,omitempty"`

	SellerHintKey      string `json:"seller_hint_key,omitempty"`
	RepairCostEstimate int64  `json:"repair_cost_estimate,omitempty"`
}

package value

import (
	"used_market/internal/domain"
	"used_market/pkg/errcodes"
)

// InspectionTier names a pre-purchase inspection level. Each tier fixes cost
// (a fraction of the asking price), duration on the simulated-hour clock and
// the depth of data revealed.
type InspectionTier string

const (
	InspectionQuick         InspectionTier = "quick"
	InspectionStandard      InspectionTier = "standard"
	InspectionComprehensive InspectionTier = "comprehensive"
)

// InspectionDepth is what an inspection report discloses.
type InspectionDepth int

const (
	// DepthOverall reveals only the averaged condition rating.
	DepthOverall InspectionDepth = iota + 1
	// DepthBreakdown reveals every reliability score.
	DepthBreakdown
	// DepthFull adds the seller disposition hint and a repair cost estimate.
	DepthFull
)

type InspectionTierParams struct {
	CostRate      float64
	DurationHours int
	Depth         InspectionDepth
}

func DefaultInspectionTierParams() map[InspectionTier]InspectionTierParams {
	return map[InspectionTier]InspectionTierParams{
		InspectionQuick:         {CostRate: 0.005, DurationHours: 6, Depth: DepthOverall},
		InspectionStandard:      {CostRate: 0.012, DurationHours: 24, Depth: DepthBreakdown},
		InspectionComprehensive: {CostRate: 0.025, DurationHours: 48, Depth: DepthFull},
	}
}

func ParseInspectionTier(s string) (InspectionTier, error) {
	tier := InspectionTier(s)

	switch tier {
	case InspectionQuick, InspectionStandard, InspectionComprehensive:
		return tier, nil
	default:
		return "", domain.NewError(errcodes.InvalidInspectionTier, "unknown inspection tier: "+s)
	}
}

func (t InspectionTier) String() string {
	return string(t)
}

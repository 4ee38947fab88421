package value

// ConditionProfile is the hidden reliability state of a listed unit. The three
// scores drive malfunction odds after purchase; Disposition drives the seller
// side and is never shown to the buyer directly.
type ConditionProfile struct {
	EngineReliability     float64 `json:"engine_reliability"`
	HydraulicReliability  float64 `json:"hydraulic_reliability"`
	ElectricalReliability float64 `json:"electrical_reliability"`
	Disposition           float64 `json:"disposition"`
}

func (p ConditionProfile) OverallRating() float64 {
	return (p.EngineReliability + p.HydraulicReliability + p.ElectricalReliability) / 3
}

func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

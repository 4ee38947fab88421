package condition

import (
	"math"

	"used_market/internal/domain/value"
)

// Rand is the injectable uniform(0,1) source.
type Rand interface {
	Float64() float64
}

// Generator rolls the hidden reliability profile of a unit. It is pure: the
// same inputs and the same draw sequence always produce the same profile.
//
// Draw order, relied on by scripted tests: engine, hydraulic, electrical,
// disposition.
type Generator struct {
	rand Rand
}

func NewGenerator(rand Rand) *Generator {
	return &Generator{rand: rand}
}

const (
	damageWeight   = 0.55
	ageWeightPerYr = 0.025
	hoursWeight    = 0.20
	hoursScale     = 40000.0
	scoreSpread    = 0.30

	// Disposition is drawn through a power curve so the full [0,1] range stays
	// reachable at any severity: a pristine unit can still have an impatient
	// seller.
	dispositionGammaMin  = 0.6
	dispositionGammaSpan = 1.6
)

func (g *Generator) Generate(damage float64, ageYears, hoursOperated int, quality value.QualityTarget) value.ConditionProfile {
	severity := severity(damage, ageYears, hoursOperated)
	base := 1 - severity + quality.Band().ReliabilityShift

	profile := value.ConditionProfile{
		EngineReliability:     g.rollScore(base),
		HydraulicReliability:  g.rollScore(base),
		ElectricalReliability: g.rollScore(base),
	}

	gamma := dispositionGammaMin + dispositionGammaSpan*severity
	profile.Disposition = value.Clamp01(math.Pow(g.rand.Float64(), gamma))

	return profile
}

func (g *Generator) rollScore(base float64) float64 {
	return value.Clamp01(base + (g.rand.Float64()-0.5)*scoreSpread)
}

// severity folds damage, age and operating hours into [0,1]. Higher damage and
// older, harder-run units bias disposition toward the desperate end.
func severity(damage float64, ageYears, hoursOperated int) float64 {
	s := damageWeight*damage +
		ageWeightPerYr*float64(ageYears) +
		hoursWeight*float64(hoursOperated)/hoursScale

	return value.Clamp01(s)
}

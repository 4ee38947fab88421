package value

import (
	"used_market/internal/domain"
	"used_market/pkg/errcodes"
)

// QualityTarget is the condition band a search is scoped to. It bounds the
// condition rolls the listing factory makes, it does not guarantee them.
type QualityTarget string

const (
	QualityAny       QualityTarget = "any"
	QualityRough     QualityTarget = "rough"
	QualityFair      QualityTarget = "fair"
	QualityGood      QualityTarget = "good"
	QualityExcellent QualityTarget = "excellent"
)

// ConditionBand bounds the factory's condition rolls for a quality target.
type ConditionBand struct {
	MinAgeYears     int
	MaxAgeYears     int
	MinHoursPerYear int
	MaxHoursPerYear int
	MinDamage       float64
	MaxDamage       float64
	// ReliabilityShift nudges generated reliability scores for the band.
	ReliabilityShift float64
}

var qualityBands = map[QualityTarget]ConditionBand{ //nolint:gochecknoglobals
	QualityAny:       {MinAgeYears: 1, MaxAgeYears: 14, MinHoursPerYear: 200, MaxHoursPerYear: 900, MinDamage: 0.05, MaxDamage: 0.70},
	QualityRough:     {MinAgeYears: 9, MaxAgeYears: 14, MinHoursPerYear: 500, MaxHoursPerYear: 900, MinDamage: 0.40, MaxDamage: 0.70, ReliabilityShift: -0.05},
	QualityFair:      {MinAgeYears: 5, MaxAgeYears: 9, MinHoursPerYear: 350, MaxHoursPerYear: 700, MinDamage: 0.20, MaxDamage: 0.40},
	QualityGood:      {MinAgeYears: 2, MaxAgeYears: 6, MinHoursPerYear: 250, MaxHoursPerYear: 550, MinDamage: 0.08, MaxDamage: 0.22, ReliabilityShift: 0.05},
	QualityExcellent: {MinAgeYears: 1, MaxAgeYears: 3, MinHoursPerYear: 200, MaxHoursPerYear: 400, MinDamage: 0.02, MaxDamage: 0.10, ReliabilityShift: 0.10},
}

func ParseQualityTarget(s string) (QualityTarget, error) {
	quality := QualityTarget(s)

	if _, ok := qualityBands[quality]; !ok {
		return "", domain.NewError(errcodes.InvalidQualityTarget, "unknown quality target: "+s)
	}

	return quality, nil
}

func (q QualityTarget) Band() ConditionBand {
	return qualityBands[q]
}

func (q QualityTarget) String() string {
	return string(q)
}

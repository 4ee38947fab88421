package value

// Personality classifies seller negotiation behavior. It is a pure function of
// the disposition scalar: five contiguous buckets covering [0,1].
type Personality string

const (
	PersonalityDesperate  Personality = "desperate"
	PersonalityMotivated  Personality = "motivated"
	PersonalityReasonable Personality = "reasonable"
	PersonalityFirm       Personality = "firm"
	PersonalityImmovable  Personality = "immovable"
)

// ImmovableAcceptFraction is the only offer level an immovable seller takes.
const ImmovableAcceptFraction = 0.98

func PersonalityFromDisposition(disposition float64) Personality {
	d := Clamp01(disposition)

	switch {
	case d < 0.15:
		return PersonalityDesperate
	case d < 0.40:
		return PersonalityMotivated
	case d < 0.70:
		return PersonalityReasonable
	case d < 0.90:
		return PersonalityFirm
	default:
		return PersonalityImmovable
	}
}

// PersonalityParams tune the negotiation ladder per personality.
type PersonalityParams struct {
	AcceptThreshold  float64 // minimum offer fraction accepted outright
	CounterThreshold float64 // fraction of asking offered back on a counter
	ToleranceBonus   float64 // shrinks the perceived gap
	WalkAwayChance   float64 // base probability of a permanent refusal
}

var personalityParams = map[Personality]PersonalityParams{ //nolint:gochecknoglobals
	PersonalityDesperate:  {AcceptThreshold: 0.78, CounterThreshold: 0.88, ToleranceBonus: 0.05, WalkAwayChance: 0.05},
	PersonalityMotivated:  {AcceptThreshold: 0.84, CounterThreshold: 0.92, ToleranceBonus: 0.03, WalkAwayChance: 0.10},
	PersonalityReasonable: {AcceptThreshold: 0.90, CounterThreshold: 0.95, ToleranceBonus: 0.02, WalkAwayChance: 0.15},
	PersonalityFirm:       {AcceptThreshold: 0.94, CounterThreshold: 0.97, ToleranceBonus: 0.01, WalkAwayChance: 0.25},
	PersonalityImmovable:  {AcceptThreshold: ImmovableAcceptFraction, CounterThreshold: 1.0, ToleranceBonus: 0, WalkAwayChance: 0.40},
}

func (p Personality) Params() PersonalityParams {
	return personalityParams[p]
}

var personalityHintKeys = map[Personality]string{ //nolint:gochecknoglobals
	PersonalityDesperate:  "seller_hint_desperate",
	PersonalityMotivated:  "seller_hint_motivated",
	PersonalityReasonable: "seller_hint_reasonable",
	PersonalityFirm:       "seller_hint_firm",
	PersonalityImmovable:  "seller_hint_immovable",
}

// HintKey is the localization key of the whisper text a comprehensive
// inspection reveals about the seller.
func (p Personality) HintKey() string {
	return personalityHintKeys[p]
}

func (p Personality) Valid() bool {
	_, ok := personalityParams[p]
	return ok
}

func (p Personality) String() string {
	return string(p)
}

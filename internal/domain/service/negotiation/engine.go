package negotiation

import (
	"used_market/internal/domain"
	"used_market/internal/domain/entity"
	"used_market/internal/domain/value"
	"used_market/pkg/errcodes"
)

type Rand interface {
	Float64() float64
}

// Engine evaluates a single offer against a listing's seller. It is stateless
// and deterministic given the random source; the caller applies whatever
// mutation the response implies.
type Engine struct {
	rand Rand
}

func NewEngine(rand Rand) *Engine {
	return &Engine{rand: rand}
}

// Situational modifier weights. Each contribution nudges the seller toward
// accepting lower offers; the premium bracket pushes the other way.
const (
	timeOnMarketPerDay = 0.004
	timeOnMarketCap    = 0.10
	severityWeight     = 0.06
	premiumPenalty     = 0.03
	weatherWeight      = 0.02
)

// Risk ladder band edges over the tolerance-adjusted gap.
const (
	bandSafeCounter  = 0.05
	bandRiskyCounter = 0.10
	bandEvenSplit    = 0.15
	bandMostlyReject = 0.20

	riskyCounterMaxReject = 0.30
	evenSplitWalkShare    = 0.30
	mostlyRejectWalkShare = 0.60
)

func (e *Engine) Evaluate(l *entity.Listing, offerPercent int, sit value.Situational) (value.SellerResponse, error) {
	if _, err := value.ParseOfferPercent(offerPercent); err != nil {
		return value.SellerResponse{}, err
	}

	if !l.Personality.Valid() {
		return value.SellerResponse{}, domain.NewError(errcodes.InvalidState, "listing has no seller personality")
	}

	offerFraction := float64(offerPercent) / 100
	asking := l.AskingPrice()
	params := l.Personality.Params()

	// An immovable seller already knows what the unit is worth: full price or
	// nothing, and lowballing risks the walk-away directly, ungraduated.
	if l.Personality == value.PersonalityImmovable {
		if offerFraction >= value.ImmovableAcceptFraction {
			return value.SellerResponse{Type: value.ResponseAccept, Amount: value.OfferAmount(asking, offerPercent)}, nil
		}

		if e.rand.Float64() < params.WalkAwayChance {
			return value.SellerResponse{Type: value.ResponseWalkAway}, nil
		}

		return value.SellerResponse{Type: value.ResponseReject}, nil
	}

	effectiveThreshold := params.AcceptThreshold - situationalModifier(l, sit)
	gap := effectiveThreshold - offerFraction
	adjustedGap := gap - params.ToleranceBonus

	counterAmount := value.RoundToHundred(float64(asking) * params.CounterThreshold)

	switch {
	case adjustedGap <= 0:
		return value.SellerResponse{Type: value.ResponseAccept, Amount: value.OfferAmount(asking, offerPercent)}, nil

	case adjustedGap <= bandSafeCounter:
		return value.SellerResponse{Type: value.ResponseCounter, Amount: counterAmount}, nil

	case adjustedGap <= bandRiskyCounter:
		// Reject probability scales 0% → 30% across the band.
		rejectP := (adjustedGap - bandSafeCounter) / (bandRiskyCounter - bandSafeCounter) * riskyCounterMaxReject
		if e.rand.Float64() < rejectP {
			return value.SellerResponse{Type: value.ResponseReject}, nil
		}

		return value.SellerResponse{Type: value.ResponseCounter, Amount: counterAmount}, nil

	case adjustedGap <= bandEvenSplit:
		walkP := evenSplitWalkShare * params.WalkAwayChance
		draw := e.rand.Float64()

		switch {
		case draw < walkP:
			return value.SellerResponse{Type: value.ResponseWalkAway}, nil
		case draw < walkP+(1-walkP)/2:
			return value.SellerResponse{Type: value.ResponseReject}, nil
		default:
			return value.SellerResponse{Type: value.ResponseCounter, Amount: counterAmount}, nil
		}

	case adjustedGap <= bandMostlyReject:
		// Counter probability scales 30% → 0% across the band.
		walkP := mostlyRejectWalkShare * params.WalkAwayChance
		counterP := riskyCounterMaxReject * (bandMostlyReject - adjustedGap) / (bandMostlyReject - bandEvenSplit)
		draw := e.rand.Float64()

		switch {
		case draw < walkP:
			return value.SellerResponse{Type: value.ResponseWalkAway}, nil
		case draw < walkP+counterP:
			return value.SellerResponse{Type: value.ResponseCounter, Amount: counterAmount}, nil
		default:
			return value.SellerResponse{Type: value.ResponseReject}, nil
		}

	default:
		// An insulting offer is never met with a counter.
		if e.rand.Float64() < params.WalkAwayChance {
			return value.SellerResponse{Type: value.ResponseWalkAway}, nil
		}

		return value.SellerResponse{Type: value.ResponseReject}, nil
	}
}

func situationalModifier(l *entity.Listing, sit value.Situational) float64 {
	modifier := 0.0

	timeBonus := float64(sit.DaysOnMarket) * timeOnMarketPerDay
	if timeBonus > timeOnMarketCap {
		timeBonus = timeOnMarketCap
	}
	modifier += timeBonus

	modifier += severityWeight * l.Damage

	if sit.PriceBracket == value.PriceBracketPremium {
		modifier -= premiumPenalty
	}

	modifier += weatherWeight * sit.WeatherFavorability

	return modifier
}

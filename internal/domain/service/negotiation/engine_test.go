package negotiation_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"used_market/internal/domain/entity"
	"used_market/internal/domain/service/negotiation"
	"used_market/internal/domain/value"
	"used_market/pkg/tests"
)

// newListing prices at 43200 asking (40000 + 3200 commission), zero damage so
// situational modifiers start from nothing.
func newListing(personality value.Personality) *entity.Listing {
	return &entity.Listing{
		ID:               "lst-1",
		AccountID:        10,
		CatalogRef:       "tractor.m9540",
		BasePrice:        40000,
		CommissionAmount: 3200,
		Personality:      personality,
		Status:           entity.ListingAvailable,
	}
}

func evaluate(t *testing.T, personality value.Personality, percent int, draws ...float64) value.SellerResponse {
	t.Helper()

	engine := negotiation.NewEngine(tests.NewScripted(draws...))

	response, err := engine.Evaluate(newListing(personality), percent, value.Situational{})
	require.NoError(t, err)

	return response
}

func TestEvaluateRejectsInvalidPercent(t *testing.T) {
	rq := require.New(t)

	engine := negotiation.NewEngine(tests.NewScripted(0.5))

	_, err := engine.Evaluate(newListing(value.PersonalityReasonable), 87, value.Situational{})
	rq.Error(err)
}

func TestAcceptAtThreshold(t *testing.T) {
	rq := require.New(t)

	// Reasonable accepts from 90% up; tolerance covers the exact boundary.
	response := evaluate(t, value.PersonalityReasonable, 90)
	rq.Equal(value.ResponseAccept, response.Type)
	rq.EqualValues(38900, response.Amount) // 43200 × 0.90 rounded to hundreds
}

func TestSafeCounterBand(t *testing.T) {
	rq := require.New(t)

	// Five points short is a guaranteed counter at 95% of asking.
	response := evaluate(t, value.PersonalityReasonable, 85)
	rq.Equal(value.ResponseCounter, response.Type)
	rq.EqualValues(41000, response.Amount) // 43200 × 0.95 rounded to hundreds
}

func TestRiskyCounterBand(t *testing.T) {
	rq := require.New(t)

	// Ten points short: reject probability is 18% at this depth.
	counter := evaluate(t, value.PersonalityReasonable, 80, 0.50)
	rq.Equal(value.ResponseCounter, counter.Type)

	reject := evaluate(t, value.PersonalityReasonable, 80, 0.10)
	rq.Equal(value.ResponseReject, reject.Type)
	rq.Zero(reject.Amount)
}

func TestEvenSplitBand(t *testing.T) {
	rq := require.New(t)

	// Fifteen points short: walk-away becomes possible, the rest splits evenly.
	walk := evaluate(t, value.PersonalityReasonable, 75, 0.01)
	rq.Equal(value.ResponseWalkAway, walk.Type)

	reject := evaluate(t, value.PersonalityReasonable, 75, 0.40)
	rq.Equal(value.ResponseReject, reject.Type)

	counter := evaluate(t, value.PersonalityReasonable, 75, 0.90)
	rq.Equal(value.ResponseCounter, counter.Type)
}

func TestMostlyRejectBand(t *testing.T) {
	rq := require.New(t)

	// Twenty points short: walking is likelier and counters are fading out.
	walk := evaluate(t, value.PersonalityReasonable, 70, 0.05)
	rq.Equal(value.ResponseWalkAway, walk.Type)

	counter := evaluate(t, value.PersonalityReasonable, 70, 0.15)
	rq.Equal(value.ResponseCounter, counter.Type)

	reject := evaluate(t, value.PersonalityReasonable, 70, 0.50)
	rq.Equal(value.ResponseReject, reject.Type)
}

func TestInsultingOfferNeverCountered(t *testing.T) {
	rq := require.New(t)

	// A firm seller 24 points short of the threshold: reject or walk, only.
	for _, draw := range []float64{0.0, 0.2, 0.24, 0.26, 0.5, 0.99} {
		response := evaluate(t, value.PersonalityFirm, 70, draw)
		rq.Contains(
			[]value.ResponseType{value.ResponseReject, value.ResponseWalkAway},
			response.Type,
			"draw %v", draw,
		)
	}

	walk := evaluate(t, value.PersonalityFirm, 70, 0.10)
	rq.Equal(value.ResponseWalkAway, walk.Type)
}

func TestImmovableTakesFullPriceOnly(t *testing.T) {
	rq := require.New(t)

	full := evaluate(t, value.PersonalityImmovable, 100)
	rq.Equal(value.ResponseAccept, full.Type)
	rq.EqualValues(43200, full.Amount)

	// Anything below full price is reject or walk-away, never a counter.
	for _, percent := range []int{70, 75, 80, 85, 90, 95} {
		for _, draw := range []float64{0.0, 0.39, 0.41, 0.99} {
			response := evaluate(t, value.PersonalityImmovable, percent, draw)
			rq.Contains(
				[]value.ResponseType{value.ResponseReject, value.ResponseWalkAway},
				response.Type,
				"percent %d draw %v", percent, draw,
			)
		}
	}

	walk := evaluate(t, value.PersonalityImmovable, 95, 0.10)
	rq.Equal(value.ResponseWalkAway, walk.Type)

	reject := evaluate(t, value.PersonalityImmovable, 95, 0.90)
	rq.Equal(value.ResponseReject, reject.Type)
}

func TestTimeOnMarketSoftensSeller(t *testing.T) {
	rq := require.New(t)

	engine := negotiation.NewEngine(tests.NewScripted(0.5))

	// 85% is a counter on a fresh listing, an accept after a month on market:
	// the time bonus caps at 10 points off the threshold.
	response, err := engine.Evaluate(newListing(value.PersonalityReasonable), 85,
		value.Situational{DaysOnMarket: 30})
	rq.NoError(err)
	rq.Equal(value.ResponseAccept, response.Type)
}

func TestPremiumBracketHardensSeller(t *testing.T) {
	rq := require.New(t)

	engine := negotiation.NewEngine(tests.NewScripted(0.5))

	// The 90% accept boundary moves out of reach on a premium-priced unit.
	response, err := engine.Evaluate(newListing(value.PersonalityReasonable), 90,
		value.Situational{PriceBracket: value.PriceBracketPremium})
	rq.NoError(err)
	rq.Equal(value.ResponseCounter, response.Type)
}

func TestDamageSoftensSeller(t *testing.T) {
	rq := require.New(t)

	engine := negotiation.NewEngine(tests.NewScripted(0.5))

	l := newListing(value.PersonalityFirm)
	l.Damage = 0.5

	// Firm accepts from 94%; 3 points of damage discount pull 95% in, while
	// 85% still only earns a counter.
	accept, err := engine.Evaluate(l, 95, value.Situational{})
	rq.NoError(err)
	rq.Equal(value.ResponseAccept, accept.Type)

	counter, err := engine.Evaluate(l, 85, value.Situational{})
	rq.NoError(err)
	rq.Equal(value.ResponseCounter, counter.Type)
}

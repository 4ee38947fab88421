package value

import (
	"used_market/internal/domain"
	"used_market/pkg/errcodes"
)

// SearchTier names a search-agent contract level. Each tier fixes the retainer
// fee formula, the monthly success probability, the portfolio cap and the
// maximum contract length.
type SearchTier string

const (
	SearchTierLocal    SearchTier = "local"
	SearchTierRegional SearchTier = "regional"
	SearchTierNational SearchTier = "national"
)

type SearchTierParams struct {
	FeeRate            float64 // retainer = catalog price × rate, floored at MinFee
	MinFee             int64
	SuccessProbability float64 // monthly Bernoulli roll
	MaxListings        int
	MaxMonths          int
	// GuaranteedFind forces one success by the final month if none occurred.
	GuaranteedFind bool
}

func DefaultSearchTierParams() map[SearchTier]SearchTierParams {
	return map[SearchTier]SearchTierParams{
		SearchTierLocal:    {FeeRate: 0.010, MinFee: 500, SuccessProbability: 0.35, MaxListings: 2, MaxMonths: 3},
		SearchTierRegional: {FeeRate: 0.020, MinFee: 1000, SuccessProbability: 0.55, MaxListings: 3, MaxMonths: 4},
		SearchTierNational: {FeeRate: 0.035, MinFee: 2000, SuccessProbability: 0.75, MaxListings: 5, MaxMonths: 6, GuaranteedFind: true},
	}
}

func ParseSearchTier(s string) (SearchTier, error) {
	tier := SearchTier(s)

	switch tier {
	case SearchTierLocal, SearchTierRegional, SearchTierNational:
		return tier, nil
	default:
		return "", domain.NewError(errcodes.InvalidSearchTier, "unknown search tier: "+s)
	}
}

func (t SearchTier) String() string {
	return string(t)
}

// RetainerFee computes the up-front agent fee for a catalog price.
func (p SearchTierParams) RetainerFee(catalogPrice int64) int64 {
	fee := int64(float64(catalogPrice) * p.FeeRate)
	if fee < p.MinFee {
		fee = p.MinFee
	}

	return fee
}

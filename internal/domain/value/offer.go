package value

import (
	"math"

	"used_market/internal/domain"
	"used_market/pkg/errcodes"
)

// Offers are made on a fixed discrete scale of percentages of the asking
// price.
const (
	MinOfferPercent  = 70
	MaxOfferPercent  = 100
	OfferPercentStep = 5
)

func ValidOfferPercent(percent int) bool {
	return percent >= MinOfferPercent &&
		percent <= MaxOfferPercent &&
		percent%OfferPercentStep == 0
}

func ParseOfferPercent(percent int) (int, error) {
	if !ValidOfferPercent(percent) {
		return 0, domain.NewError(errcodes.InvalidOfferPercent, "offer percent must be 70..100 in steps of 5")
	}

	return percent, nil
}

// OfferAmount converts a percentage of the asking price to money, rounded to
// the nearest hundred.
func OfferAmount(askingPrice int64, percent int) int64 {
	return RoundToHundred(float64(askingPrice) * float64(percent) / 100)
}

func RoundToHundred(v float64) int64 {
	return int64(math.Round(v/100)) * 100
}

// ResponseType is a seller's reaction to an offer.
type ResponseType string

const (
	ResponseAccept   ResponseType = "accept"
	ResponseCounter  ResponseType = "counter"
	ResponseReject   ResponseType = "reject"
	ResponseWalkAway ResponseType = "walkaway"
)

// SellerResponse is the evaluated outcome: Amount is the accepted price on
// accept, the counter price on counter, zero otherwise.
type SellerResponse struct {
	Type   ResponseType
	Amount int64
}

// PriceBracket situates the asking price against the market for situational
// modifiers.
type PriceBracket string

const (
	PriceBracketBudget   PriceBracket = "budget"
	PriceBracketStandard PriceBracket = "standard"
	PriceBracketPremium  PriceBracket = "premium"
)

// Situational carries the caller-supplied context of an offer.
type Situational struct {
	DaysOnMarket        int
	WeatherFavorability float64 // [-1,1], positive favors the buyer
	PriceBracket        PriceBracket
}

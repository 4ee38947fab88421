package value_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"used_market/internal/domain"
	"used_market/internal/domain/value"
	"used_market/pkg/errcodes"
)

func TestValidOfferPercent(t *testing.T) {
	rq := require.New(t)

	for percent := 70; percent <= 100; percent += 5 {
		rq.True(value.ValidOfferPercent(percent), "percent %d", percent)
	}

	for _, percent := range []int{0, 65, 72, 99, 105, -70} {
		rq.False(value.ValidOfferPercent(percent), "percent %d", percent)
	}
}

func TestParseOfferPercentError(t *testing.T) {
	rq := require.New(t)

	_, err := value.ParseOfferPercent(73)
	rq.Error(err)
	rq.True(domain.HasCode(err, errcodes.InvalidOfferPercent))
}

func TestOfferAmountRoundsToHundred(t *testing.T) {
	rq := require.New(t)

	// 47498 × 85% = 40373.3, nearest hundred is 40400.
	rq.EqualValues(40400, value.OfferAmount(47498, 85))

	// Exact multiples stay exact.
	rq.EqualValues(75000, value.OfferAmount(100000, 75))

	rq.EqualValues(0, value.OfferAmount(0, 70))
}

package listing_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"used_market/internal/domain/entity"
	listingfactory "used_market/internal/domain/service/listing"
	"used_market/internal/domain/value"
	"used_market/internal/infrastructure/catalog"
	"used_market/pkg/tests"
)

type staticProfiles struct {
	profile value.ConditionProfile
}

func (s staticProfiles) Generate(float64, int, int, value.QualityTarget) value.ConditionProfile {
	return s.profile
}

func testCatalog() *catalog.Catalog {
	return catalog.New(entity.CatalogItem{
		Ref:        "tractor.m9540",
		Name:       "M 9540 Tractor",
		StorePrice: 100000,
		OptionSets: []entity.OptionSet{
			{Class: "tires", Choices: []string{"standard", "flotation"}},
			{Class: "loader", Choices: []string{"none", "fl500"}},
			{Class: "frame", Choices: []string{"fixed"}, UnsafeToRandomize: true},
		},
	})
}

func testRequest() *entity.SearchRequest {
	return &entity.SearchRequest{
		ID:         "req-1",
		AccountID:  7,
		CatalogRef: "tractor.m9540",
		Tier:       value.SearchTierLocal,
		Quality:    value.QualityFair,
		Status:     entity.SearchActive,
	}
}

func TestBuildMidpointDraws(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	profiles := staticProfiles{profile: value.ConditionProfile{
		EngineReliability:     0.64,
		HydraulicReliability:  0.64,
		ElectricalReliability: 0.64,
		Disposition:           0.44,
	}}

	factory := listingfactory.NewFactory(testCatalog(), profiles, tests.NewScripted(0.5))

	l, err := factory.Build(ctx, testRequest(), 2)
	rq.NoError(err)

	// Midpoint draws through the fair band: 7 years, 525 h/yr, 30% damage.
	rq.Equal(7, l.AgeYears)
	rq.Equal(3675, l.HoursOperated)
	rq.InDelta(0.30, l.Damage, 1e-9)
	rq.InDelta(0.30, l.CosmeticWear, 1e-9)

	// 100000 × 0.58 (age) × 0.908125 (hours) × 0.835 (damage) ≈ 43980.
	rq.InDelta(43980, float64(l.BasePrice), 2)
	rq.Equal(l.BasePrice+int64(math.Floor(float64(l.BasePrice)*0.08)), l.AskingPrice())

	rq.Equal(value.PersonalityReasonable, l.Personality)
	rq.Equal(entity.ListingAvailable, l.Status)
	rq.Equal(entity.InspectionNone, l.Inspection.Status)
	rq.Equal(2, l.DiscoveredAtMonth)
	rq.Equal("req-1", l.RequestID)
	rq.EqualValues(7, l.AccountID)
}

func TestBuildVariantSkipsUnsafeClasses(t *testing.T) {
	rq := require.New(t)

	factory := listingfactory.NewFactory(testCatalog(), staticProfiles{}, tests.NewScripted(0.5))

	l, err := factory.Build(context.Background(), testRequest(), 0)
	rq.NoError(err)

	rq.Contains(l.Variant, "tires")
	rq.Contains(l.Variant, "loader")
	rq.NotContains(l.Variant, "frame")
}

func TestBuildStaysInsideQualityBand(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	random := tests.NewSeeded(7)
	factory := listingfactory.NewFactory(testCatalog(), staticProfiles{}, random)

	band := value.QualityFair.Band()

	for i := 0; i < 200; i++ {
		l, err := factory.Build(ctx, testRequest(), 0)
		rq.NoError(err)

		rq.GreaterOrEqual(l.AgeYears, band.MinAgeYears)
		rq.LessOrEqual(l.AgeYears, band.MaxAgeYears)
		rq.GreaterOrEqual(l.Damage, band.MinDamage)
		rq.LessOrEqual(l.Damage, band.MaxDamage)
		rq.LessOrEqual(l.HoursOperated, l.AgeYears*band.MaxHoursPerYear)

		rq.Positive(l.BasePrice)
		rq.Less(l.BasePrice, int64(100000))
		rq.Greater(l.AskingPrice(), l.BasePrice)
	}
}

func TestBuildUnknownItemFails(t *testing.T) {
	rq := require.New(t)

	factory := listingfactory.NewFactory(testCatalog(), staticProfiles{}, tests.NewScripted(0.5))

	req := testRequest()
	req.CatalogRef = "tractor.unknown"

	_, err := factory.Build(context.Background(), req, 0)
	rq.Error(err)
}

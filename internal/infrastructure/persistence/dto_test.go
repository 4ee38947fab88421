package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"

	"used_market/internal/domain/entity"
	"used_market/internal/domain/value"
)

func TestSearchRequestSchemaRoundTrip(t *testing.T) {
	rq := require.New(t)

	req := &entity.SearchRequest{
		ID:            "req-1",
		AccountID:     10,
		CatalogRef:    "tractor.m9540",
		Tier:          value.SearchTierRegional,
		Quality:       value.QualityGood,
		MonthsElapsed: 2,
		Found:         1,
		Status:        entity.SearchActive,
		HiredAtMonth:  5,
		FeePaid:       2000,
	}

	restored := newSearchRequestSchema(req, 3).toEntity()

	rq.Equal(req, restored)
}

func TestListingSchemaRoundTrip(t *testing.T) {
	rq := require.New(t)

	engine := 0.71

	l := &entity.Listing{
		ID:            "lst-1",
		RequestID:     "req-1",
		AccountID:     10,
		CatalogRef:    "tractor.m9540",
		Variant:       map[string]string{"tires": "flotation"},
		AgeYears:      6,
		HoursOperated: 2400,
		Damage:        0.25,
		CosmeticWear:  0.20,
		Profile: value.ConditionProfile{
			EngineReliability:     0.71,
			HydraulicReliability:  0.65,
			ElectricalReliability: 0.58,
			Disposition:           0.12,
		},
		BasePrice:         43980,
		CommissionPercent: 0.08,
		CommissionAmount:  3518,
		AgreedPrice:       40000,
		Personality:       value.PersonalityDesperate,
		Inspection: entity.Inspection{
			Status:          entity.InspectionComplete,
			Tier:            value.InspectionStandard,
			CostPaid:        518,
			RequestedAtHour: 4,
			CompletesAtHour: 28,
			Report: &entity.InspectionReport{
				Depth:             value.DepthBreakdown,
				OverallRating:     0.646,
				EngineReliability: &engine,
			},
		},
		Lock:              entity.NegotiationLock{Locked: true, UntilHour: 30},
		Status:            entity.ListingAvailable,
		DiscoveredAtMonth: 4,
	}

	row, err := newListingSchema(l, 0)
	rq.NoError(err)

	restored, err := row.toEntity()
	rq.NoError(err)

	rq.Equal(l, restored)
}

func TestListingSchemaRoundTripEmptyOptionalState(t *testing.T) {
	rq := require.New(t)

	l := &entity.Listing{
		ID:         "lst-2",
		RequestID:  "req-1",
		AccountID:  10,
		CatalogRef: "truck.hx620",
		Inspection: entity.Inspection{Status: entity.InspectionNone},
		Status:     entity.ListingAvailable,
	}

	row, err := newListingSchema(l, 1)
	rq.NoError(err)

	restored, err := row.toEntity()
	rq.NoError(err)

	rq.Equal(l, restored)
	rq.Nil(restored.Inspection.Report)
	rq.False(restored.Lock.Locked)
}

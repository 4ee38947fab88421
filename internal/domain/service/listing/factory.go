package listing

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/xid"

	"used_market/internal/domain/entity"
	"used_market/internal/domain/value"
)

type Rand interface {
	Float64() float64
}

type Catalog interface {
	FindItem(ctx context.Context, ref string) (*entity.CatalogItem, error)
	OptionSets(ctx context.Context, ref string) ([]entity.OptionSet, error)
}

type ProfileGenerator interface {
	Generate(damage float64, ageYears, hoursOperated int, quality value.QualityTarget) value.ConditionProfile
}

const defaultCommissionPercent = 0.08

// Factory assembles a full, priced, configured listing from a search request
// and the target catalog item. It has no side effects: the caller inserts the
// result into the portfolio, and a failed build leaves nothing behind.
//
// Draw order per build: age, hours-per-year, damage, wear, then the profile
// generator's four draws, then one draw per randomizable option class.
type Factory struct {
	catalog           Catalog
	profiles          ProfileGenerator
	rand              Rand
	commissionPercent float64
}

func NewFactory(catalog Catalog, profiles ProfileGenerator, rand Rand) *Factory {
	return &Factory{
		catalog:           catalog,
		profiles:          profiles,
		rand:              rand,
		commissionPercent: defaultCommissionPercent,
	}
}

func (f *Factory) WithCommissionPercent(percent float64) *Factory {
	f.commissionPercent = percent
	return f
}

func (f *Factory) Build(ctx context.Context, req *entity.SearchRequest, currentMonth int) (*entity.Listing, error) {
	item, err := f.catalog.FindItem(ctx, req.CatalogRef)
	if err != nil {
		return nil, fmt.Errorf("catalog.FindItem: %w", err)
	}

	band := req.Quality.Band()

	age := band.MinAgeYears + int(f.rand.Float64()*float64(band.MaxAgeYears-band.MinAgeYears+1))
	if age > band.MaxAgeYears {
		age = band.MaxAgeYears
	}

	hoursPerYear := float64(band.MinHoursPerYear) +
		f.rand.Float64()*float64(band.MaxHoursPerYear-band.MinHoursPerYear)
	hours := int(float64(age) * hoursPerYear)

	damage := band.MinDamage + f.rand.Float64()*(band.MaxDamage-band.MinDamage)
	wear := value.Clamp01(damage * (0.6 + 0.8*f.rand.Float64()))

	profile := f.profiles.Generate(damage, age, hours, req.Quality)

	variant, err := f.rollVariant(ctx, req.CatalogRef)
	if err != nil {
		return nil, fmt.Errorf("rollVariant: %w", err)
	}

	basePrice := depreciatedPrice(item.StorePrice, age, hours, damage)
	commission := int64(math.Floor(float64(basePrice) * f.commissionPercent))

	return &entity.Listing{
		ID:                xid.New().String(),
		RequestID:         req.ID,
		AccountID:         req.AccountID,
		CatalogRef:        req.CatalogRef,
		Variant:           variant,
		AgeYears:          age,
		HoursOperated:     hours,
		Damage:            damage,
		CosmeticWear:      wear,
		Profile:           profile,
		BasePrice:         basePrice,
		CommissionPercent: f.commissionPercent,
		CommissionAmount:  commission,
		Personality:       value.PersonalityFromDisposition(profile.Disposition),
		Inspection:        entity.Inspection{Status: entity.InspectionNone},
		Status:            entity.ListingAvailable,
		DiscoveredAtMonth: currentMonth,
	}, nil
}

// rollVariant picks one choice per option class, skipping classes flagged
// unsafe to randomize (desyncs the physical simulation) and empty ones.
func (f *Factory) rollVariant(ctx context.Context, ref string) (map[string]string, error) {
	optionSets, err := f.catalog.OptionSets(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("catalog.OptionSets: %w", err)
	}

	variant := make(map[string]string, len(optionSets))

	for _, set := range optionSets {
		if set.UnsafeToRandomize || len(set.Choices) == 0 {
			continue
		}

		pick := int(f.rand.Float64() * float64(len(set.Choices)))
		if pick >= len(set.Choices) {
			pick = len(set.Choices) - 1
		}

		variant[set.Class] = set.Choices[pick]
	}

	return variant, nil
}

const (
	agePenaltyPerYear = 0.06
	agePenaltyFloor   = 0.25
	hoursPenaltyScale = 40000.0
	hoursPenaltyFloor = 0.55
	damagePenaltyRate = 0.55
)

func depreciatedPrice(storePrice int64, ageYears, hours int, damage float64) int64 {
	agePenalty := math.Max(agePenaltyFloor, 1-agePenaltyPerYear*float64(ageYears))
	hoursPenalty := math.Max(hoursPenaltyFloor, 1-float64(hours)/hoursPenaltyScale)
	damagePenalty := 1 - damagePenaltyRate*damage

	return int64(math.Floor(float64(storePrice) * agePenalty * hoursPenalty * damagePenalty))
}

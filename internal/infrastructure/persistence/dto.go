package persistence

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"used_market/internal/domain/entity"
	"used_market/internal/domain/value"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

type searchRequestSchema struct {
	ID            string  `db:"id"`
	AccountID     int64   `db:"account_id"`
	CatalogRef    string  `db:"catalog_ref"`
	Tier          string  `db:"tier"`
	Quality       string  `db:"quality"`
	MonthsElapsed int     `db:"months_elapsed"`
	Found         int     `db:"found"`
	Status        string  `db:"status"`
	HiredAtMonth  int     `db:"hired_at_month"`
	FeePaid       int64   `db:"fee_paid"`
	Position      int     `db:"position"`
}

type listingSchema struct {
	ID                string  `db:"id"`
	RequestID         string  `db:"request_id"`
	AccountID         int64   `db:"account_id"`
	CatalogRef        string  `db:"catalog_ref"`
	Variant           []byte  `db:"variant"`
	AgeYears          int     `db:"age_years"`
	HoursOperated     int     `db:"hours_operated"`
	Damage            float64 `db:"damage"`
	CosmeticWear      float64 `db:"cosmetic_wear"`
	Profile           []byte  `db:"profile"`
	BasePrice         int64   `db:"base_price"`
	CommissionPercent float64 `db:"commission_percent"`
	CommissionAmount  int64   `db:"commission_amount"`
	AgreedPrice       int64   `db:"agreed_price"`
	Personality       string  `db:"personality"`
	Inspection        []byte  `db:"inspection"`
	Lock              []byte  `db:"lock_state"`
	Status            string  `db:"status"`
	DiscoveredAtMonth int     `db:"discovered_at_month"`
	Position          int     `db:"position"`
}

func newSearchRequestSchema(req *entity.SearchRequest, position int) searchRequestSchema {
	return searchRequestSchema{
		ID:            req.ID,
		AccountID:     req.AccountID,
		CatalogRef:    req.CatalogRef,
		Tier:          req.Tier.String(),
		Quality:       req.Quality.String(),
		MonthsElapsed: req.MonthsElapsed,
		Found:         req.Found,
		Status:        string(req.Status),
		HiredAtMonth:  req.HiredAtMonth,
		FeePaid:       req.FeePaid,
		Position:      position,
	}
}

func (s searchRequestSchema) toEntity() *entity.SearchRequest {
	return &entity.SearchRequest{
		ID:            s.ID,
		AccountID:     s.AccountID,
		CatalogRef:    s.CatalogRef,
		Tier:          value.SearchTier(s.Tier),
		Quality:       value.QualityTarget(s.Quality),
		MonthsElapsed: s.MonthsElapsed,
		Found:         s.Found,
		Status:        entity.SearchStatus(s.Status),
		HiredAtMonth:  s.HiredAtMonth,
		FeePaid:       s.FeePaid,
	}
}

func newListingSchema(l *entity.Listing, position int) (listingSchema, error) {
	variant, err := json.Marshal(l.Variant)
	if err != nil {
		return listingSchema{}, fmt.Errorf("marshal variant: %w", err)
	}

	profile, err := json.Marshal(l.Profile)
	if err != nil {
		return listingSchema{}, fmt.Errorf("marshal profile: %w", err)
	}

	inspection, err := json.Marshal(l.Inspection)
	if err != nil {
		return listingSchema{}, fmt.Errorf("marshal inspection: %w", err)
	}

	lock, err := json.Marshal(l.Lock)
	if err != nil {
		return listingSchema{}, fmt.Errorf("marshal lock: %w", err)
	}

	return listingSchema{
		ID:                l.ID,
		RequestID:         l.RequestID,
		AccountID:         l.AccountID,
		CatalogRef:        l.CatalogRef,
		Variant:           variant,
		AgeYears:          l.AgeYears,
		HoursOperated:     l.HoursOperated,
		Damage:            l.Damage,
		CosmeticWear:      l.CosmeticWear,
		Profile:           profile,
		BasePrice:         l.BasePrice,
		CommissionPercent: l.CommissionPercent,
		CommissionAmount:  l.CommissionAmount,
		AgreedPrice:       l.AgreedPrice,
		Personality:       l.Personality.String(),
		Inspection:        inspection,
		Lock:              lock,
		Status:            string(l.Status),
		DiscoveredAtMonth: l.DiscoveredAtMonth,
		Position:          position,
	}, nil
}

func (s listingSchema) toEntity() (*entity.Listing, error) {
	l := &entity.Listing{
		ID:                s.ID,
		RequestID:         s.RequestID,
		AccountID:         s.AccountID,
		CatalogRef:        s.CatalogRef,
		AgeYears:          s.AgeYears,
		HoursOperated:     s.HoursOperated,
		Damage:            s.Damage,
		CosmeticWear:      s.CosmeticWear,
		BasePrice:         s.BasePrice,
		CommissionPercent: s.CommissionPercent,
		CommissionAmount:  s.CommissionAmount,
		AgreedPrice:       s.AgreedPrice,
		Personality:       value.Personality(s.Personality),
		Status:            entity.ListingStatus(s.Status),
		DiscoveredAtMonth: s.DiscoveredAtMonth,
	}

	if err := json.Unmarshal(s.Variant, &l.Variant); err != nil {
		return nil, fmt.Errorf("unmarshal variant: %w", err)
	}

	if err := json.Unmarshal(s.Profile, &l.Profile); err != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}

	if err := json.Unmarshal(s.Inspection, &l.Inspection); err != nil {
		return nil, fmt.Errorf("unmarshal inspection: %w", err)
	}

	if err := json.Unmarshal(s.Lock, &l.Lock); err != nil {
		return nil, fmt.Errorf("unmarshal lock: %w", err)
	}

	return l, nil
}

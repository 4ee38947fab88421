package entity

import (
	"used_market/internal/domain/value"
)

type ListingStatus string

const (
	ListingAvailable       ListingStatus = "available"
	ListingSold            ListingStatus = "sold"
	ListingExpired         ListingStatus = "expired"
	ListingSellerWalkedOff ListingStatus = "seller_walked_away"
)

// Listing is one concrete purchasable offer surfaced by a search. The
// condition profile stays hidden from the buyer until an inspection reveals
// it; the seller personality derived from it is visible behavior, not data.
type Listing struct {
	ID         string            `json:"id"`
	RequestID  string            `json:"request_id"`
	AccountID  int64             `json:"account_id"`
	CatalogRef string            `json:"catalog_ref"`
	Variant    map[string]string `json:"variant,omitempty"`

	AgeYears      int     `json:"age_years"`
	HoursOperated int     `json:"hours_operated"`
	Damage        float64 `json:"damage"`
	CosmeticWear  float64 `json:"cosmetic_wear"`

	Profile value.ConditionProfile `json:"-"`

	BasePrice         int64   `json:"base_price"`
	CommissionPercent float64 `json:"commission_percent"`
	CommissionAmount  int64   `json:"commission_amount"`
	// AgreedPrice is set when the seller accepts an offer; purchase charges it
	// instead of the asking price.
	AgreedPrice int64 `json:"agreed_price,omitempty"`

	Personality value.Personality `json:"-"`

	Inspection Inspection      `json:"inspection"`
	Lock       NegotiationLock `json:"lock"`

	Status            ListingStatus `json:"status"`
	DiscoveredAtMonth int           `json:"discovered_at_month"`
}

// AskingPrice is always derived, never stored, so it cannot drift from
// basePrice + commission.
func (l *Listing) AskingPrice() int64 {
	return l.BasePrice + l.CommissionAmount
}

// OnHold reports whether the listing is protected from expiry while an
// inspection is in flight.
func (l *Listing) OnHold() bool {
	return l.Inspection.Status == InspectionPending
}

func (l *Listing) Available() bool {
	return l.Status == ListingAvailable
}

// NegotiationLock throttles re-offers after a refused one. UntilHour is on the
// simulated-hour clock.
type NegotiationLock struct {
	Locked    bool `json:"locked"`
	UntilHour int  `json:"until_hour,omitempty"`
}

func (l *Listing) NegotiationLocked(currentHour int) bool {
	return l.Lock.Locked && currentHour < l.Lock.UntilHour
}

func (l *Listing) LockNegotiation(untilHour int) {
	l.Lock = NegotiationLock{Locked: true, UntilHour: untilHour}
}

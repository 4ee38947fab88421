package entity

import (
	"used_market/internal/domain/value"
)

type SearchStatus string

const (
	SearchActive    SearchStatus = "active"
	SearchCompleted SearchStatus = "completed"
	SearchCancelled SearchStatus = "cancelled"
)

// SearchRequest is one hired agent contract. It is advanced once per simulated
// month until the portfolio fills or the contract runs out; completed and
// cancelled are terminal.
type SearchRequest struct {
	ID         string              `json:"id"`
	AccountID  int64               `json:"account_id"`
	CatalogRef string              `json:"catalog_ref"`
	Tier       value.SearchTier    `json:"tier"`
	Quality    value.QualityTarget `json:"quality"`

	MonthsElapsed int          `json:"months_elapsed"`
	Found         int          `json:"found"`
	Status        SearchStatus `json:"status"`
	HiredAtMonth  int          `json:"hired_at_month"`
	FeePaid       int64        `json:"fee_paid"`

	// Portfolio holds discovered listings in discovery order. Listings are
	// owned by the account registry and survive the request's completion.
	Portfolio []*Listing `json:"-"`
}

func (r *SearchRequest) Active() bool {
	return r.Status == SearchActive
}

func (r *SearchRequest) PortfolioFull(maxListings int) bool {
	return len(r.Portfolio) >= maxListings
}

// DropListing unlinks a resolved listing from the portfolio.
func (r *SearchRequest) DropListing(listingID string) {
	for i, l := range r.Portfolio {
		if l.ID == listingID {
			r.Portfolio = append(r.Portfolio[:i], r.Portfolio[i+1:]...)
			return
		}
	}
}

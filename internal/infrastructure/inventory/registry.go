// Package inventory is the in-memory owner of all pipeline state between
// save/load passes: active search requests and unresolved listings, kept in
// insertion order so every tick advances them deterministically.
package inventory

import (
	"github.com/samber/lo"

	"used_market/internal/domain"
	"used_market/internal/domain/entity"
	"used_market/pkg/errcodes"
)

type Registry struct {
	requests     map[string]*entity.SearchRequest
	requestOrder []string

	listings     map[string]*entity.Listing
	listingOrder []string
}

func NewRegistry() *Registry {
	return &Registry{
		requests: make(map[string]*entity.SearchRequest),
		listings: make(map[string]*entity.Listing),
	}
}

func (r *Registry) AddRequest(req *entity.SearchRequest) {
	if _, ok := r.requests[req.ID]; ok {
		return
	}

	r.requests[req.ID] = req
	r.requestOrder = append(r.requestOrder, req.ID)
}

func (r *Registry) RequestByID(id string) (*entity.SearchRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, domain.NewError(errcodes.SearchNotFound, "search request not found")
	}

	return req, nil
}

// ActiveRequests returns active requests in insertion order.
func (r *Registry) ActiveRequests() []*entity.SearchRequest {
	result := make([]*entity.SearchRequest, 0, len(r.requestOrder))

	for _, id := range r.requestOrder {
		if req := r.requests[id]; req.Active() {
			result = append(result, req)
		}
	}

	return result
}

func (r *Registry) RequestsByAccount(accountID int64) []*entity.SearchRequest {
	result := make([]*entity.SearchRequest, 0)

	for _, id := range r.requestOrder {
		if req := r.requests[id]; req.AccountID == accountID {
			result = append(result, req)
		}
	}

	return result
}

// RemoveRequest drops a request from the registry. Its listings stay owned by
// the listing index until individually resolved.
func (r *Registry) RemoveRequest(id string) {
	if _, ok := r.requests[id]; !ok {
		return
	}

	delete(r.requests, id)
	r.requestOrder = lo.Without(r.requestOrder, id)
}

func (r *Registry) AddListing(l *entity.Listing) {
	if _, ok := r.listings[l.ID]; ok {
		return
	}

	r.listings[l.ID] = l
	r.listingOrder = append(r.listingOrder, l.ID)
}

func (r *Registry) ListingByID(id string) (*entity.Listing, error) {
	l, ok := r.listings[id]
	if !ok {
		return nil, domain.NewError(errcodes.ListingNotFound, "listing not found")
	}

	return l, nil
}

// Listings returns all unresolved listings in discovery order.
func (r *Registry) Listings() []*entity.Listing {
	return lo.Map(r.listingOrder, func(id string, _ int) *entity.Listing {
		return r.listings[id]
	})
}

func (r *Registry) ListingsByAccount(accountID int64) []*entity.Listing {
	return lo.Filter(r.Listings(), func(l *entity.Listing, _ int) bool {
		return l.AccountID == accountID
	})
}

// RemoveListing drops a listing and unlinks it from its parent portfolio if
// the search is still around.
func (r *Registry) RemoveListing(id string) {
	l, ok := r.listings[id]
	if !ok {
		return
	}

	delete(r.listings, id)
	r.listingOrder = lo.Without(r.listingOrder, id)

	if req, ok := r.requests[l.RequestID]; ok {
		req.DropListing(id)
	}
}

// Snapshot hands out the persistable state in insertion order.
func (r *Registry) Snapshot() ([]*entity.SearchRequest, []*entity.Listing) {
	requests := lo.Map(r.requestOrder, func(id string, _ int) *entity.SearchRequest {
		return r.requests[id]
	})

	return requests, r.Listings()
}

// Restore replaces the registry content with a loaded snapshot, re-linking
// portfolios by request id.
func (r *Registry) Restore(requests []*entity.SearchRequest, listings []*entity.Listing) {
	r.requests = make(map[string]*entity.SearchRequest, len(requests))
	r.requestOrder = r.requestOrder[:0]
	r.listings = make(map[string]*entity.Listing, len(listings))
	r.listingOrder = r.listingOrder[:0]

	for _, req := range requests {
		req.Portfolio = nil
		r.AddRequest(req)
	}

	for _, l := range listings {
		r.AddListing(l)

		if req, ok := r.requests[l.RequestID]; ok {
			req.Portfolio = append(req.Portfolio, l)
		}
	}
}

package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"used_market/internal/domain"
	"used_market/internal/domain/entity"
	"used_market/internal/infrastructure/inventory"
	"used_market/pkg/errcodes"
)

func newRequest(id string, accountID int64) *entity.SearchRequest {
	return &entity.SearchRequest{
		ID:        id,
		AccountID: accountID,
		Status:    entity.SearchActive,
	}
}

func newListing(id, requestID string, accountID int64) *entity.Listing {
	return &entity.Listing{
		ID:        id,
		RequestID: requestID,
		AccountID: accountID,
		Status:    entity.ListingAvailable,
	}
}

func TestActiveRequestsKeepInsertionOrder(t *testing.T) {
	rq := require.New(t)

	registry := inventory.NewRegistry()

	registry.AddRequest(newRequest("a", 1))
	registry.AddRequest(newRequest("b", 1))
	registry.AddRequest(newRequest("c", 2))

	active := registry.ActiveRequests()
	rq.Len(active, 3)
	rq.Equal("a", active[0].ID)
	rq.Equal("b", active[1].ID)
	rq.Equal("c", active[2].ID)

	registry.RemoveRequest("b")
	registry.AddRequest(newRequest("d", 2))

	active = registry.ActiveRequests()
	rq.Len(active, 3)
	rq.Equal("a", active[0].ID)
	rq.Equal("c", active[1].ID)
	rq.Equal("d", active[2].ID)
}

func TestAddRequestIgnoresDuplicates(t *testing.T) {
	rq := require.New(t)

	registry := inventory.NewRegistry()

	first := newRequest("a", 1)
	registry.AddRequest(first)
	registry.AddRequest(newRequest("a", 99))

	stored, err := registry.RequestByID("a")
	rq.NoError(err)
	rq.Same(first, stored)
	rq.Len(registry.ActiveRequests(), 1)
}

func TestRequestByIDNotFound(t *testing.T) {
	rq := require.New(t)

	_, err := inventory.NewRegistry().RequestByID("missing")
	rq.Error(err)
	rq.True(domain.HasCode(err, errcodes.SearchNotFound))
}

func TestRemoveListingUnlinksPortfolio(t *testing.T) {
	rq := require.New(t)

	registry := inventory.NewRegistry()

	req := newRequest("req-1", 1)
	registry.AddRequest(req)

	l1 := newListing("lst-1", "req-1", 1)
	l2 := newListing("lst-2", "req-1", 1)
	req.Portfolio = []*entity.Listing{l1, l2}
	registry.AddListing(l1)
	registry.AddListing(l2)

	registry.RemoveListing("lst-1")

	rq.Len(registry.Listings(), 1)
	rq.Len(req.Portfolio, 1)
	rq.Equal("lst-2", req.Portfolio[0].ID)

	_, err := registry.ListingByID("lst-1")
	rq.Error(err)
	rq.True(domain.HasCode(err, errcodes.ListingNotFound))
}

func TestListingsByAccount(t *testing.T) {
	rq := require.New(t)

	registry := inventory.NewRegistry()

	registry.AddListing(newListing("lst-1", "req-1", 1))
	registry.AddListing(newListing("lst-2", "req-2", 2))
	registry.AddListing(newListing("lst-3", "req-1", 1))

	mine := registry.ListingsByAccount(1)
	rq.Len(mine, 2)
	rq.Equal("lst-1", mine[0].ID)
	rq.Equal("lst-3", mine[1].ID)
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	rq := require.New(t)

	registry := inventory.NewRegistry()

	req := newRequest("req-1", 1)
	registry.AddRequest(req)

	l1 := newListing("lst-1", "req-1", 1)
	l2 := newListing("lst-2", "req-orphan", 1)
	req.Portfolio = []*entity.Listing{l1}
	registry.AddListing(l1)
	registry.AddListing(l2)

	requests, listings := registry.Snapshot()
	rq.Len(requests, 1)
	rq.Len(listings, 2)

	reloaded := inventory.NewRegistry()
	reloaded.Restore(requests, listings)

	restoredReq, err := reloaded.RequestByID("req-1")
	rq.NoError(err)

	// Portfolio is re-linked by request id; the orphan stays out of it.
	rq.Len(restoredReq.Portfolio, 1)
	rq.Equal("lst-1", restoredReq.Portfolio[0].ID)
	rq.Len(reloaded.Listings(), 2)
}

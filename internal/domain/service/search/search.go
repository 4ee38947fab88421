package search

import (
	"context"
	"fmt"

	"github.com/rs/xid"

	"used_market/internal/domain"
	"used_market/internal/domain/entity"
	"used_market/internal/domain/value"
	"used_market/internal/metrics"
	"used_market/pkg/contextx"
	"used_market/pkg/errcodes"
	"used_market/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type Rand interface {
	Float64() float64
}

type Clock interface {
	CurrentMonth() int
	CurrentHour() int
}

type Registry interface {
	AddRequest(req *entity.SearchRequest)
	RequestByID(id string) (*entity.SearchRequest, error)
	ActiveRequests() []*entity.SearchRequest

	AddListing(l *entity.Listing)
	ListingByID(id string) (*entity.Listing, error)
	Listings() []*entity.Listing
	RemoveListing(id string)
}

type Ledger interface {
	Charge(ctx context.Context, accountID int64, amount int64) error
}

type Catalog interface {
	FindItem(ctx context.Context, ref string) (*entity.CatalogItem, error)
}

type Factory interface {
	Build(ctx context.Context, req *entity.SearchRequest, currentMonth int) (*entity.Listing, error)
}

type Notifier interface {
	Notify(ctx context.Context, accountID int64, kind value.NotificationKind, message string)
}

const defaultListingExpiryMonths = 3

// Service is the search scheduler: it owns the active SearchRequest state
// machines and advances every one of them exactly once per simulated month, in
// insertion order, rolling for finds and finalizing exhausted contracts.
type Service struct {
	registry Registry
	ledger   Ledger
	catalog  Catalog
	factory  Factory
	notifier Notifier
	clock    Clock
	rand     Rand

	tiers               map[value.SearchTier]value.SearchTierParams
	listingExpiryMonths int

	// lastMonth guards AdvanceMonth against double ticks for the same month
	// number.
	lastMonth int
}

func NewService(
	registry Registry,
	ledger Ledger,
	catalog Catalog,
	factory Factory,
	notifier Notifier,
	clock Clock,
	rand Rand,
) *Service {
	return &Service{
		registry:            registry,
		ledger:              ledger,
		catalog:             catalog,
		factory:             factory,
		notifier:            notifier,
		clock:               clock,
		rand:                rand,
		tiers:               value.DefaultSearchTierParams(),
		listingExpiryMonths: defaultListingExpiryMonths,
		lastMonth:           -1,
	}
}

func (s *Service) WithTierParams(tiers map[value.SearchTier]value.SearchTierParams) *Service {
	s.tiers = tiers
	return s
}

func (s *Service) WithListingExpiry(months int) *Service {
	s.listingExpiryMonths = months
	return s
}

// Hire charges the retainer and registers a new active search. Validation and
// the funds check happen before any mutation, so a failed hire leaves neither
// a charge nor a request behind.
func (s *Service) Hire(ctx context.Context, accountID int64, catalogRef string, tier value.SearchTier, quality value.QualityTarget) (*entity.SearchRequest, error) {
	params, ok := s.tiers[tier]
	if !ok {
		return nil, domain.NewError(errcodes.InvalidSearchTier, "unknown search tier: "+tier.String())
	}

	item, err := s.catalog.FindItem(ctx, catalogRef)
	if err != nil {
		return nil, fmt.Errorf("catalog.FindItem: %w", err)
	}

	fee := params.RetainerFee(item.StorePrice)

	if err := s.ledger.Charge(ctx, accountID, fee); err != nil {
		return nil, fmt.Errorf("ledger.Charge: %w", err)
	}

	req := &entity.SearchRequest{
		ID:           xid.New().String(),
		AccountID:    accountID,
		CatalogRef:   catalogRef,
		Tier:         tier,
		Quality:      quality,
		Status:       entity.SearchActive,
		HiredAtMonth: s.clock.CurrentMonth(),
		FeePaid:      fee,
	}

	s.registry.AddRequest(req)

	logger(ctx).Info("search hired",
		logx.FieldSearchID, req.ID,
		logx.FieldAccountID, accountID,
		"tier", tier.String(),
		"quality", quality.String(),
		"fee", fee,
	)

	return req, nil
}

// Renew hires a brand-new search with the parameters of a completed one. The
// original request is never mutated.
func (s *Service) Renew(ctx context.Context, requestID string) (*entity.SearchRequest, error) {
	orig, err := s.registry.RequestByID(requestID)
	if err != nil {
		return nil, fmt.Errorf("registry.RequestByID: %w", err)
	}

	if orig.Status != entity.SearchCompleted {
		return nil, domain.NewError(errcodes.InvalidState, "only a completed search can be renewed")
	}

	return s.Hire(ctx, orig.AccountID, orig.CatalogRef, orig.Tier, orig.Quality)
}

// Cancel finalizes an active search without a refund. Discovered listings stay
// in the portfolio container.
func (s *Service) Cancel(ctx context.Context, requestID string) error {
	req, err := s.registry.RequestByID(requestID)
	if err != nil {
		return fmt.Errorf("registry.RequestByID: %w", err)
	}

	if !req.Active() {
		return domain.NewError(errcodes.InvalidState, "search is already finalized")
	}

	req.Status = entity.SearchCancelled
	metrics.SearchesCompleted.WithLabelValues("cancelled").Inc()

	logger(ctx).Info("search cancelled", logx.FieldSearchID, req.ID)

	return nil
}

// AdvanceMonth advances every active request once for the clock's current
// month. Calling it again without moving the clock is a no-op, so a stray
// double tick cannot double-roll a request.
func (s *Service) AdvanceMonth(ctx context.Context) error {
	month := s.clock.CurrentMonth()
	if month <= s.lastMonth {
		return nil
	}
	s.lastMonth = month

	for _, req := range s.registry.ActiveRequests() {
		if err := s.advanceRequest(ctx, req, month); err != nil {
			// The failed request keeps its pre-step state; the rest of the
			// batch still advances.
			logger(ctx).Error("advance failed", logx.FieldSearchID, req.ID, logx.Error(err))
		}
	}

	s.expireListings(ctx, month)

	logger(ctx).Debug("month advanced", logx.FieldMonth, month)

	return nil
}

func (s *Service) advanceRequest(ctx context.Context, req *entity.SearchRequest, month int) error {
	params := s.tiers[req.Tier]

	if !req.PortfolioFull(params.MaxListings) {
		metrics.SearchRolls.Inc()

		success := s.rand.Float64() < params.SuccessProbability

		// Guaranteed-minimum override: the tier promises at least one find by
		// the final eligible month.
		if !success && params.GuaranteedFind && req.Found == 0 && req.MonthsElapsed == params.MaxMonths-1 {
			success = true
		}

		if success {
			l, err := s.factory.Build(ctx, req, month)
			if err != nil {
				return fmt.Errorf("factory.Build: %w", err)
			}

			req.Portfolio = append(req.Portfolio, l)
			req.Found++
			s.registry.AddListing(l)
			metrics.ListingsFound.Inc()

			s.notifier.Notify(ctx, req.AccountID, value.NotifyListingFound,
				fmt.Sprintf("Your agent found a unit for %d.", l.AskingPrice()))
		}
	}

	req.MonthsElapsed++

	if req.MonthsElapsed >= params.MaxMonths || req.PortfolioFull(params.MaxListings) {
		s.complete(ctx, req)
	}

	return nil
}

// complete finalizes a request. The record stays in the registry so it can be
// looked up and renewed later; only the active set stops seeing it.
func (s *Service) complete(ctx context.Context, req *entity.SearchRequest) {
	req.Status = entity.SearchCompleted

	if req.Found > 0 {
		metrics.SearchesCompleted.WithLabelValues("success").Inc()
		s.notifier.Notify(ctx, req.AccountID, value.NotifySearchCompleted,
			fmt.Sprintf("Search finished: %d unit(s) found.", req.Found))
	} else {
		metrics.SearchesCompleted.WithLabelValues("failure").Inc()
		s.notifier.Notify(ctx, req.AccountID, value.NotifySearchFailed,
			"Search finished with nothing to show. The retainer is spent.")
	}

	logger(ctx).Info("search completed", logx.FieldSearchID, req.ID, "found", req.Found)
}

// expireListings drops stale listings whose parent search has been finalized.
// On-hold (inspection pending) and price-locked listings are protected.
func (s *Service) expireListings(ctx context.Context, month int) {
	for _, l := range s.registry.Listings() {
		if !l.Available() || l.OnHold() || l.AgreedPrice > 0 {
			continue
		}

		if req, err := s.registry.RequestByID(l.RequestID); err == nil && req.Active() {
			continue // parent search still running, portfolio is still owned
		}

		if month-l.DiscoveredAtMonth < s.listingExpiryMonths {
			continue
		}

		l.Status = entity.ListingExpired
		s.registry.RemoveListing(l.ID)
		metrics.ListingsExpired.Inc()

		s.notifier.Notify(ctx, l.AccountID, value.NotifyListingExpired,
			"A listed unit has been sold elsewhere.")
	}
}

// ResolvePurchase charges the agreed (or asking) price and hands the listing
// to the caller, which applies the condition profile to the spawned asset.
func (s *Service) ResolvePurchase(ctx context.Context, listingID string) (*entity.Listing, error) {
	l, err := s.registry.ListingByID(listingID)
	if err != nil {
		return nil, fmt.Errorf("registry.ListingByID: %w", err)
	}

	if !l.Available() {
		return nil, domain.NewError(errcodes.AlreadyResolved, "listing is no longer purchasable")
	}

	if l.OnHold() {
		return nil, domain.NewError(errcodes.InvalidState, "cannot purchase while an inspection is in progress")
	}

	price := l.AskingPrice()
	if l.AgreedPrice > 0 {
		price = l.AgreedPrice
	}

	if err := s.ledger.Charge(ctx, l.AccountID, price); err != nil {
		return nil, fmt.Errorf("ledger.Charge: %w", err)
	}

	l.Status = entity.ListingSold
	s.registry.RemoveListing(l.ID)
	metrics.Purchases.Inc()

	logger(ctx).Info("listing purchased", logx.FieldListingID, l.ID, "price", price)

	return l, nil
}

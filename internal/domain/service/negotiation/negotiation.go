package negotiation

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/patrickmn/go-cache"

	"used_market/internal/domain"
	"used_market/internal/domain/entity"
	"used_market/internal/domain/value"
	"used_market/internal/metrics"
	"used_market/pkg/contextx"
	"used_market/pkg/errcodes"
	"used_market/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type Registry interface {
	ListingByID(id string) (*entity.Listing, error)
	RemoveListing(id string)
}

type Clock interface {
	CurrentHour() int
}

type Notifier interface {
	Notify(ctx context.Context, accountID int64, kind value.NotificationKind, message string)
}

const (
	defaultRejectCooldown  = time.Hour
	defaultCounterCooldown = 30 * time.Minute
	repeatOfferTTL         = 2 * time.Second
)

// Service wraps the stateless engine and applies the resulting listing
// mutation: price lock on accept, cooldown lock on reject or declined counter,
// permanent removal on walk-away.
type Service struct {
	registry Registry
	clock    Clock
	notifier Notifier
	engine   *Engine

	rejectCooldown  time.Duration
	counterCooldown time.Duration

	// recentOffers absorbs identical repeat offers fired inside one host tick
	// (UI double-clicks) so they do not consume extra seller rolls.
	recentOffers *cache.Cache
}

func NewService(registry Registry, clock Clock, notifier Notifier, engine *Engine) *Service {
	return &Service{
		registry:        registry,
		clock:           clock,
		notifier:        notifier,
		engine:          engine,
		rejectCooldown:  defaultRejectCooldown,
		counterCooldown: defaultCounterCooldown,
		recentOffers:    cache.New(repeatOfferTTL, time.Minute),
	}
}

// WithCooldowns overrides the re-offer throttle durations. Both are rounded up
// to whole simulated hours when applied.
func (s *Service) WithCooldowns(reject, counter time.Duration) *Service {
	s.rejectCooldown = reject
	s.counterCooldown = counter
	return s
}

// MakeOffer evaluates an offer and applies the outcome.
func (s *Service) MakeOffer(ctx context.Context, listingID string, offerPercent int, sit value.Situational) (value.SellerResponse, error) {
	l, err := s.registry.ListingByID(listingID)
	if err != nil {
		return value.SellerResponse{}, fmt.Errorf("registry.ListingByID: %w", err)
	}

	if !l.Available() {
		return value.SellerResponse{}, domain.NewError(errcodes.AlreadyResolved, "listing is no longer negotiable")
	}

	hour := s.clock.CurrentHour()
	if l.NegotiationLocked(hour) {
		return value.SellerResponse{}, domain.NewError(errcodes.NegotiationLocked, "seller is not taking offers right now")
	}

	cacheKey := fmt.Sprintf("%s:%d", listingID, offerPercent)
	if cached, ok := s.recentOffers.Get(cacheKey); ok {
		return cached.(value.SellerResponse), nil //nolint:forcetypeassert
	}

	response, err := s.engine.Evaluate(l, offerPercent, sit)
	if err != nil {
		return value.SellerResponse{}, fmt.Errorf("engine.Evaluate: %w", err)
	}

	switch response.Type {
	case value.ResponseAccept:
		l.AgreedPrice = response.Amount

	case value.ResponseReject:
		l.LockNegotiation(hour + cooldownHours(s.rejectCooldown))

	case value.ResponseWalkAway:
		l.Status = entity.ListingSellerWalkedOff
		s.registry.RemoveListing(l.ID)
		s.notifier.Notify(ctx, l.AccountID, value.NotifySellerWalkedAway,
			"The seller has taken the unit off the table for good.")

	case value.ResponseCounter:
		// No mutation: the lock lands only if the buyer declines the counter.
	}

	metrics.NegotiationOutcomes.WithLabelValues(string(response.Type)).Inc()
	s.recentOffers.SetDefault(cacheKey, response)

	logger(ctx).Info("offer evaluated",
		logx.FieldListingID, l.ID,
		"percent", offerPercent,
		"response", string(response.Type),
	)

	return response, nil
}

// DeclineCounter records the buyer refusing a counter-offer, which cools the
// seller down for a shorter period than an outright reject.
func (s *Service) DeclineCounter(ctx context.Context, listingID string) error {
	l, err := s.registry.ListingByID(listingID)
	if err != nil {
		return fmt.Errorf("registry.ListingByID: %w", err)
	}

	if !l.Available() {
		return domain.NewError(errcodes.AlreadyResolved, "listing is no longer negotiable")
	}

	l.LockNegotiation(s.clock.CurrentHour() + cooldownHours(s.counterCooldown))

	return nil
}

// cooldownHours converts a wall-style duration to whole simulated hours,
// rounding up with a minimum of one hour.
func cooldownHours(d time.Duration) int {
	hours := int(math.Ceil(d.Hours()))
	if hours < 1 {
		hours = 1
	}

	return hours
}

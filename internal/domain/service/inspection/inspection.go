package inspection

import (
	"context"
	"fmt"
	"math"

	"used_market/internal/domain"
	"used_market/internal/domain/entity"
	"used_market/internal/domain/value"
	"used_market/internal/metrics"
	"used_market/pkg/contextx"
	"used_market/pkg/errcodes"
	"used_market/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type Clock interface {
	CurrentHour() int
}

type Registry interface {
	ListingByID(id string) (*entity.Listing, error)
}

type Ledger interface {
	Charge(ctx context.Context, accountID int64, amount int64) error
}

type Notifier interface {
	Notify(ctx context.Context, accountID int64, kind value.NotificationKind, message string)
}

const defaultRepairEstimateRate = 0.35

// Service is the inspection manager. It runs its own queue on the
// simulated-hour clock, independent of the month-granularity search scheduler:
// inspections take hours while searches take months, and one shared clock
// would couple two unrelated timers.
type Service struct {
	registry Registry
	ledger   Ledger
	notifier Notifier
	clock    Clock

	tiers              map[value.InspectionTier]value.InspectionTierParams
	repairEstimateRate float64

	// pending listing ids in request order; advanced every hour tick.
	pending  []string
	lastHour int
}

func NewService(registry Registry, ledger Ledger, notifier Notifier, clock Clock) *Service {
	return &Service{
		registry:           registry,
		ledger:             ledger,
		notifier:           notifier,
		clock:              clock,
		tiers:              value.DefaultInspectionTierParams(),
		repairEstimateRate: defaultRepairEstimateRate,
		lastHour:           -1,
	}
}

func (s *Service) WithTierParams(tiers map[value.InspectionTier]value.InspectionTierParams) *Service {
	s.tiers = tiers
	return s
}

// Request orders an inspection on a listing. The tier cost is charged up
// front; the listing goes on hold until completion.
func (s *Service) Request(ctx context.Context, listingID string, tier value.InspectionTier) error {
	params, ok := s.tiers[tier]
	if !ok {
		return domain.NewError(errcodes.InvalidInspectionTier, "unknown inspection tier: "+tier.String())
	}

	l, err := s.registry.ListingByID(listingID)
	if err != nil {
		return fmt.Errorf("registry.ListingByID: %w", err)
	}

	if !l.Available() {
		return domain.NewError(errcodes.AlreadyResolved, "listing is no longer inspectable")
	}

	switch l.Inspection.Status {
	case entity.InspectionPending:
		return domain.NewError(errcodes.AlreadyPending, "an inspection is already in progress")
	case entity.InspectionComplete:
		return domain.NewError(errcodes.AlreadyComplete, "the listing has already been inspected")
	case entity.InspectionNone:
	}

	cost := int64(math.Floor(float64(l.AskingPrice()) * params.CostRate))

	if err := s.ledger.Charge(ctx, l.AccountID, cost); err != nil {
		return fmt.Errorf("ledger.Charge: %w", err)
	}

	now := s.clock.CurrentHour()

	l.Inspection = entity.Inspection{
		Status:          entity.InspectionPending,
		Tier:            tier,
		CostPaid:        cost,
		RequestedAtHour: now,
		CompletesAtHour: now + params.DurationHours,
	}

	s.pending = append(s.pending, l.ID)
	metrics.InspectionsRequested.WithLabelValues(tier.String()).Inc()

	logger(ctx).Info("inspection ordered",
		logx.FieldListingID, l.ID,
		"tier", tier.String(),
		"cost", cost,
		"completes-at", l.Inspection.CompletesAtHour,
	)

	return nil
}

// Cancel aborts a pending inspection. The cost is sunk; the listing returns to
// its unlocked, expirable state.
func (s *Service) Cancel(ctx context.Context, listingID string) error {
	l, err := s.registry.ListingByID(listingID)
	if err != nil {
		return fmt.Errorf("registry.ListingByID: %w", err)
	}

	if l.Inspection.Status != entity.InspectionPending {
		return domain.NewError(errcodes.InvalidState, "no inspection in progress")
	}

	l.Inspection = entity.Inspection{Status: entity.InspectionNone}
	s.dropPending(listingID)

	logger(ctx).Info("inspection cancelled", logx.FieldListingID, l.ID)

	return nil
}

// AdvanceHour completes every pending inspection whose deadline has passed and
// notifies the owning account once per completion.
func (s *Service) AdvanceHour(ctx context.Context) error {
	hour := s.clock.CurrentHour()
	if hour <= s.lastHour {
		return nil
	}
	s.lastHour = hour

	remaining := s.pending[:0]

	for _, id := range s.pending {
		l, err := s.registry.ListingByID(id)
		if err != nil {
			continue // listing resolved out from under the queue
		}

		if l.Inspection.Status != entity.InspectionPending || l.Inspection.CompletesAtHour > hour {
			if l.Inspection.Status == entity.InspectionPending {
				remaining = append(remaining, id)
			}
			continue
		}

		s.completeInspection(ctx, l)
	}

	s.pending = remaining

	logger(ctx).Debug("hour advanced", logx.FieldHour, hour, "pending", len(s.pending))

	return nil
}

// Pending reports the number of inspections still in flight.
func (s *Service) Pending() int {
	return len(s.pending)
}

// Restore rebuilds the pending queue after a load pass.
func (s *Service) Restore(listings []*entity.Listing) {
	s.pending = s.pending[:0]

	for _, l := range listings {
		if l.Inspection.Status == entity.InspectionPending {
			s.pending = append(s.pending, l.ID)
		}
	}
}

func (s *Service) completeInspection(ctx context.Context, l *entity.Listing) {
	params := s.tiers[l.Inspection.Tier]

	l.Inspection.Status = entity.InspectionComplete
	l.Inspection.Report = s.buildReport(l, params.Depth)
	metrics.InspectionsCompleted.Inc()

	s.notifier.Notify(ctx, l.AccountID, value.NotifyInspectionReady,
		"The inspection report on your unit is ready.")

	logger(ctx).Info("inspection complete",
		logx.FieldListingID, l.ID,
		"tier", l.Inspection.Tier.String(),
	)
}

func (s *Service) buildReport(l *entity.Listing, depth value.InspectionDepth) *entity.InspectionReport {
	report := &entity.InspectionReport{
		Depth:         depth,
		OverallRating: l.Profile.OverallRating(),
	}

	if depth >= value.DepthBreakdown {
		engine := l.Profile.EngineReliability
		hydraulic := l.Profile.HydraulicReliability
		electrical := l.Profile.ElectricalReliability
		report.EngineReliability = &engine
		report.HydraulicReliability = &hydraulic
		report.ElectricalReliability = &electrical
	}

	if depth >= value.DepthFull {
		report.SellerHintKey = l.Personality.HintKey()
		report.RepairCostEstimate = int64(math.Floor(
			float64(l.BasePrice) * (1 - report.OverallRating) * s.repairEstimateRate))
	}

	return report
}

func (s *Service) dropPending(listingID string) {
	for i, id := range s.pending {
		if id == listingID {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
}

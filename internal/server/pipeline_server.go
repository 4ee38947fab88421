package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"used_market/internal/domain/entity"
	"used_market/internal/domain/value"
	"used_market/pkg/httpx/reply"
	"used_market/pkg/httpx/req"
	"used_market/pkg/rest"
)

type searchService interface {
	Hire(ctx context.Context, accountID int64, catalogRef string, tier value.SearchTier, quality value.QualityTarget) (*entity.SearchRequest, error)
	Renew(ctx context.Context, requestID string) (*entity.SearchRequest, error)
	Cancel(ctx context.Context, requestID string) error
	AdvanceMonth(ctx context.Context) error
	ResolvePurchase(ctx context.Context, listingID string) (*entity.Listing, error)
}

type inspectionService interface {
	Request(ctx context.Context, listingID string, tier value.InspectionTier) error
	Cancel(ctx context.Context, listingID string) error
	AdvanceHour(ctx context.Context) error
}

type negotiationService interface {
	MakeOffer(ctx context.Context, listingID string, offerPercent int, sit value.Situational) (value.SellerResponse, error)
	DeclineCounter(ctx context.Context, listingID string) error
}

type registry interface {
	RequestByID(id string) (*entity.SearchRequest, error)
	ListingsByAccount(accountID int64) []*entity.Listing
}

type simClock interface {
	CurrentMonth() int
	CurrentHour() int
	AdvanceMonth() int
	AdvanceHour() int
}

// StateSaver is exported because wiring needs to pass a typed nil when
// persistence is disabled.
type StateSaver interface {
	Save(ctx context.Context) error
}

type PipelineServer struct {
	search      searchService
	inspections inspectionService
	negotiation negotiationService
	registry    registry
	clock       simClock
	saver       StateSaver
}

func NewPipelineServer(
	search searchService,
	inspections inspectionService,
	negotiation negotiationService,
	registry registry,
	clock simClock,
	saver StateSaver,
) PipelineServer {
	return PipelineServer{
		search:      search,
		inspections: inspections,
		negotiation: negotiation,
		registry:    registry,
		clock:       clock,
		saver:       saver,
	}
}

func (s PipelineServer) postV1Search(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.HireSearchRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	tier, err := value.ParseSearchTier(request.Tier)
	if err != nil {
		return asFailure(err)
	}

	quality, err := value.ParseQualityTarget(request.Quality)
	if err != nil {
		return asFailure(err)
	}

	search, err := s.search.Hire(ctx, request.AccountID, request.CatalogRef, tier, quality)
	if err != nil {
		return asFailure(fmt.Errorf("search.Hire: %w", err))
	}

	reply.JSON(ctx, w, http.StatusCreated, newRESTSearchRequest(search))

	return nil
}

func (s PipelineServer) getV1Search(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	search, err := s.registry.RequestByID(chi.URLParam(r, "id"))
	if err != nil {
		return asFailure(err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTSearchRequest(search))

	return nil
}

func (s PipelineServer) postV1SearchRenew(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	search, err := s.search.Renew(ctx, chi.URLParam(r, "id"))
	if err != nil {
		return asFailure(fmt.Errorf("search.Renew: %w", err))
	}

	reply.JSON(ctx, w, http.StatusCreated, newRESTSearchRequest(search))

	return nil
}

func (s PipelineServer) deleteV1Search(w http.ResponseWriter, r *http.Request) error {
	if err := s.search.Cancel(r.Context(), chi.URLParam(r, "id")); err != nil {
		return asFailure(fmt.Errorf("search.Cancel: %w", err))
	}

	reply.OK(w)

	return nil
}

func (s PipelineServer) getV1AccountListings(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	accountID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return asFailure(fmt.Errorf("parse account id: %w", err))
	}

	listings := s.registry.ListingsByAccount(accountID)

	result := make([]rest.Listing, 0, len(listings))
	for _, l := range listings {
		result = append(result, newRESTListing(l))
	}

	reply.JSON(ctx, w, http.StatusOK, result)

	return nil
}

func (s PipelineServer) postV1Inspection(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.RequestInspectionRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	tier, err := value.ParseInspectionTier(request.Tier)
	if err != nil {
		return asFailure(err)
	}

	if err := s.inspections.Request(ctx, chi.URLParam(r, "id"), tier); err != nil {
		return asFailure(fmt.Errorf("inspections.Request: %w", err))
	}

	reply.Created(w)

	return nil
}

func (s PipelineServer) deleteV1Inspection(w http.ResponseWriter, r *http.Request) error {
	if err := s.inspections.Cancel(r.Context(), chi.URLParam(r, "id")); err != nil {
		return asFailure(fmt.Errorf("inspections.Cancel: %w", err))
	}

	reply.OK(w)

	return nil
}

func (s PipelineServer) postV1Offer(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.OfferRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	sit := value.Situational{
		DaysOnMarket:        request.DaysOnMarket,
		WeatherFavorability: request.WeatherFavorability,
		PriceBracket:        value.PriceBracket(request.PriceBracket),
	}

	response, err := s.negotiation.MakeOffer(ctx, chi.URLParam(r, "id"), request.Percent, sit)
	if err != nil {
		return asFailure(fmt.Errorf("negotiation.MakeOffer: %w", err))
	}

	reply.JSON(ctx, w, http.StatusOK, rest.OfferResponse{
		Response: string(response.Type),
		Amount:   response.Amount,
	})

	return nil
}

func (s PipelineServer) postV1DeclineCounter(w http.ResponseWriter, r *http.Request) error {
	if err := s.negotiation.DeclineCounter(r.Context(), chi.URLParam(r, "id")); err != nil {
		return asFailure(fmt.Errorf("negotiation.DeclineCounter: %w", err))
	}

	reply.OK(w)

	return nil
}

func (s PipelineServer) postV1Purchase(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	l, err := s.search.ResolvePurchase(ctx, chi.URLParam(r, "id"))
	if err != nil {
		return asFailure(fmt.Errorf("search.ResolvePurchase: %w", err))
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTListing(l))

	return nil
}

func (s PipelineServer) getV1Clock(w http.ResponseWriter, r *http.Request) error {
	reply.JSON(r.Context(), w, http.StatusOK, rest.ClockState{
		Month: s.clock.CurrentMonth(),
		Hour:  s.clock.CurrentHour(),
	})

	return nil
}

func (s PipelineServer) postV1AdvanceMonth(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	s.clock.AdvanceMonth()

	if err := s.search.AdvanceMonth(ctx); err != nil {
		return asFailure(fmt.Errorf("search.AdvanceMonth: %w", err))
	}

	reply.JSON(ctx, w, http.StatusOK, rest.ClockState{
		Month: s.clock.CurrentMonth(),
		Hour:  s.clock.CurrentHour(),
	})

	return nil
}

func (s PipelineServer) postV1AdvanceHour(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	s.clock.AdvanceHour()

	if err := s.inspections.AdvanceHour(ctx); err != nil {
		return asFailure(fmt.Errorf("inspections.AdvanceHour: %w", err))
	}

	reply.JSON(ctx, w, http.StatusOK, rest.ClockState{
		Month: s.clock.CurrentMonth(),
		Hour:  s.clock.CurrentHour(),
	})

	return nil
}

func (s PipelineServer) postV1SaveState(w http.ResponseWriter, r *http.Request) error {
	if s.saver == nil {
		return asFailure(fmt.Errorf("no persistence configured"))
	}

	if err := s.saver.Save(r.Context()); err != nil {
		return asFailure(fmt.Errorf("saver.Save: %w", err))
	}

	reply.OK(w)

	return nil
}

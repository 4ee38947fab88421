package server

import (
	"git.appkode.ru/pub/go/failure"

	"used_market/internal/domain"
	"used_market/internal/domain/entity"
	"used_market/pkg/errcodes"
	"used_market/pkg/rest"
)

func newRESTSearchRequest(req *entity.SearchRequest) rest.SearchRequest {
	portfolio := make([]rest.Listing, 0, len(req.Portfolio))
	for _, l := range req.Portfolio {
		portfolio = append(portfolio, newRESTListing(l))
	}

	return rest.SearchRequest{
		ID:            req.ID,
		AccountID:     req.AccountID,
		CatalogRef:    req.CatalogRef,
		Tier:          req.Tier.String(),
		Quality:       req.Quality.String(),
		MonthsElapsed: req.MonthsElapsed,
		Found:         req.Found,
		Status:        string(req.Status),
		Portfolio:     portfolio,
	}
}

// newRESTListing exposes only buyer-visible data: the hidden profile surfaces
// solely through a completed inspection report.
func newRESTListing(l *entity.Listing) rest.Listing {
	result := rest.Listing{
		ID:            l.ID,
		RequestID:     l.RequestID,
		CatalogRef:    l.CatalogRef,
		Variant:       l.Variant,
		AgeYears:      l.AgeYears,
		HoursOperated: l.HoursOperated,
		Damage:        l.Damage,
		CosmeticWear:  l.CosmeticWear,
		AskingPrice:   l.AskingPrice(),
		AgreedPrice:   l.AgreedPrice,
		Status:        string(l.Status),
	}

	if l.Inspection.Status != entity.InspectionNone {
		inspection := &rest.Inspection{
			Status:          string(l.Inspection.Status),
			Tier:            l.Inspection.Tier.String(),
			CompletesAtHour: l.Inspection.CompletesAtHour,
		}

		if report := l.Inspection.Report; report != nil {
			inspection.Report = &rest.InspectionReport{
				OverallRating:         report.OverallRating,
				EngineReliability:     report.EngineReliability,
				HydraulicReliability:  report.HydraulicReliability,
				ElectricalReliability: report.ElectricalReliability,
				SellerHintKey:         report.SellerHintKey,
				RepairCostEstimate:    report.RepairCostEstimate,
			}
		}

		result.Inspection = inspection
	}

	return result
}

// asFailure maps domain errors to the failure classes reply.Error understands.
func asFailure(err error) error {
	code, ok := domain.GetCode(err)
	if !ok {
		return err
	}

	switch code {
	case errcodes.NotFound, errcodes.SearchNotFound, errcodes.ListingNotFound, errcodes.CatalogItemNotFound:
		return failure.NewNotFoundError(err.Error(), failure.WithCode(code))

	case errcodes.InvalidSearchTier, errcodes.InvalidQualityTarget,
		errcodes.InvalidInspectionTier, errcodes.InvalidOfferPercent:
		return failure.NewInvalidArgumentError(err.Error(), failure.WithCode(code))

	case errcodes.InvalidState, errcodes.AlreadyResolved, errcodes.AlreadyPending,
		errcodes.AlreadyComplete, errcodes.NegotiationLocked:
		return failure.NewConflictError(err.Error(), failure.WithCode(code))

	case errcodes.InsufficientFunds:
		return failure.NewUnprocessableEntityError(err.Error(), failure.WithCode(code))

	default:
		return err
	}
}

package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"
	Forbidden           failure.ErrorCode = "Forbidden"

	InsufficientFunds failure.ErrorCode = "InsufficientFunds"
	InvalidState      failure.ErrorCode = "InvalidState"
	AlreadyResolved   failure.ErrorCode = "AlreadyResolved"
	AlreadyPending    failure.ErrorCode = "AlreadyPending"
	AlreadyComplete   failure.ErrorCode = "AlreadyComplete"

	SearchNotFound      failure.ErrorCode = "SearchNotFound"      // request id unknown or already finalized
	ListingNotFound     failure.ErrorCode = "ListingNotFound"     // listing id unknown or already removed
	CatalogItemNotFound failure.ErrorCode = "CatalogItemNotFound" // catalog reference unresolvable

	InvalidSearchTier     failure.ErrorCode = "InvalidSearchTier"
	InvalidQualityTarget  failure.ErrorCode = "InvalidQualityTarget"
	InvalidInspectionTier failure.ErrorCode = "InvalidInspectionTier"
	InvalidOfferPercent   failure.ErrorCode = "InvalidOfferPercent"
	NegotiationLocked     failure.ErrorCode = "NegotiationLocked" // seller is cooling down after a refused offer
)

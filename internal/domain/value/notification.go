package value

// NotificationKind tags fire-and-forget messages to the owning account.
type NotificationKind string

const (
	NotifySearchCompleted  NotificationKind = "search_completed"
	NotifySearchFailed     NotificationKind = "search_failed"
	NotifyListingFound     NotificationKind = "listing_found"
	NotifyListingExpired   NotificationKind = "listing_expired"
	NotifyInspectionReady  NotificationKind = "inspection_ready"
	NotifySellerWalkedAway NotificationKind = "seller_walked_away"
)

func (k NotificationKind) String() string {
	return string(k)
}

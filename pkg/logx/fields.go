package logx

const (
	FieldAccountID  = "account-id"
	FieldAppName    = "app-name"
	FieldAppVersion = "app-version"
	FieldDurationMs = "duration-ms"
	FieldError      = "error"
	FieldHTTPMethod = "http-method"
	FieldHour       = "sim-hour"
	FieldIP         = "ip"
	FieldListingID  = "listing-id"
	FieldMonth      = "sim-month"
	FieldRequestID  = "request-id"
	FieldSearchID   = "search-id"
	FieldStack      = "stack"
	FieldTraceID    = "trace-id"
	FieldURL        = "url"
)

package rest

// Models of the HTTP surface the host game drives the pipeline through.

type HireSearchRequest struct {
	AccountID  int64  `json:"account_id" validate:"required"`
	CatalogRef string `json:"catalog_ref" validate:"required"`
	Tier       string `json:"tier" validate:"required"`
	Quality    string `json:"quality" validate:"required"`
}

type SearchRequest struct {
	ID            string    `json:"id"`
	AccountID     int64     `json:"account_id"`
	CatalogRef    string    `json:"catalog_ref"`
	Tier          string    `json:"tier"`
	Quality       string    `json:"quality"`
	MonthsElapsed int       `json:"months_elapsed"`
	Found         int       `json:"found"`
	Status        string    `json:"status"`
	Portfolio     []Listing `json:"portfolio,omitempty"`
}

type Listing struct {
	ID            string            `json:"id"`
	RequestID     string            `json:"request_id"`
	CatalogRef    string            `json:"catalog_ref"`
	Variant       map[string]string `json:"variant,omitempty"`
	AgeYears      int               `json:"age_years"`
	HoursOperated int               `json:"hours_operated"`
	Damage        float64           `json:"damage"`
	CosmeticWear  float64           `json:"cosmetic_wear"`
	AskingPrice   int64             `json:"asking_price"`
	AgreedPrice   int64             `json:"agreed_price,omitempty"`
	Status        string            `json:"status"`
	Inspection    *Inspection       `json:"inspection,omitempty"`
}

type Inspection struct {
	Status          string            `json:"status"`
	Tier            string            `json:"tier,omitempty"`
	CompletesAtHour int               `json:"completes_at_hour,omitempty"`
	Report          *InspectionReport `json:"report,omitempty"`
}

type InspectionReport struct {
	OverallRating         float64  `json:"overall_rating"`
	EngineReliability     *float64 `json:"engine_reliability,omitempty"`
	HydraulicReliability  *float64 `json:"hydraulic_reliability,omitempty"`
	ElectricalReliability *float64 `json:"electrical_reliability,omitempty"`
	SellerHintKey         string   `json:"seller_hint_key,omitempty"`
	RepairCostEstimate    int64    `json:"repair_cost_estimate,omitempty"`
}

type RequestInspectionRequest struct {
	Tier string `json:"tier" validate:"required"`
}

type OfferRequest struct {
	Percent             int     `json:"percent" validate:"required"`
	DaysOnMarket        int     `json:"days_on_market"`
	WeatherFavorability float64 `json:"weather_favorability" validate:"gte=-1,lte=1"`
	PriceBracket        string  `json:"price_bracket,omitempty"`
}

type OfferResponse struct {
	Response string `json:"response"`
	Amount   int64  `json:"amount,omitempty"`
}

type ClockState struct {
	Month int `json:"month"`
	Hour  int `json:"hour"`
}

// Error is the error envelope of the API.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

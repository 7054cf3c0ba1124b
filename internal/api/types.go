package api

// HealthResponse reports prediction-service readiness.
type HealthResponse struct {
	Status             string `json:"status"`
	NRows              int    `json:"n_rows"`
	BookingModelLoaded bool   `json:"booking_model_loaded"`
}

// RecommendByIndexRequest asks for a recommendation for a known dataset row.
type RecommendByIndexRequest struct {
	RowIndex    int  `json:"row_index"`
	WeekendFlag bool `json:"weekend_flag"`
	HolidayFlag bool `json:"holiday_flag"`
}

// RecommendFromFeaturesRequest describes a listing by its features.
// Optional fields are pointers and marshal to null when absent; the
// service treats null as "not provided".
type RecommendFromFeaturesRequest struct {
	RoomType           string   `json:"room_type"`
	PropertyType       *string  `json:"property_type"`
	Accommodates       int      `json:"accommodates"`
	Bathrooms          *float64 `json:"bathrooms"`
	Amenities          *string  `json:"amenities"`
	MinimumNights      int      `json:"minimum_nights"`
	InstantBookable    bool     `json:"instant_bookable"`
	ReviewScoresRating *float64 `json:"review_scores_rating"`
	NumberOfReviews    *int     `json:"number_of_reviews"`
	HostIsSuperhost    bool     `json:"host_is_superhost"`
	Latitude           *float64 `json:"latitude"`
	Longitude          *float64 `json:"longitude"`
	WeekendFlag        bool     `json:"weekend_flag"`
	HolidayFlag        bool     `json:"holiday_flag"`
}

// Recommendation is the nightly price estimate plus descriptive context.
// Context fields are optional; the service omits them for feature-based
// requests that match no concrete listing.
type Recommendation struct {
	RowIndex          int     `json:"row_index"`
	ListingID         *int64  `json:"listing_id,omitempty"`
	City              *string `json:"city,omitempty"`
	Neighbourhood     *string `json:"neighbourhood,omitempty"`
	PeerMedianPrice   float64 `json:"peer_median_price"`
	RegressionPrice   float64 `json:"regression_price"`
	FinalPrice        float64 `json:"final_price"`
	PriceBucketStatic *string `json:"price_bucket_static,omitempty"`
}

// BookingWeekByIndexRequest simulates a week for a known dataset row.
type BookingWeekByIndexRequest struct {
	RowIndex  int     `json:"row_index"`
	StartDate string  `json:"start_date"`
	BasePrice float64 `json:"base_price"`
}

// BookingWeekFromFeaturesRequest simulates a week for a feature-described
// listing. The feature fields are flattened into the request body.
type BookingWeekFromFeaturesRequest struct {
	RecommendFromFeaturesRequest
	StartDate string  `json:"start_date"`
	BasePrice float64 `json:"base_price"`
}

// BookingDay is one simulated night. The booked/vacant percentages are the
// service's own split; they are reported as-is, never recomputed locally.
type BookingDay struct {
	Date           string  `json:"date"`
	EffectivePrice float64 `json:"effective_price"`
	ProbBookedPct  float64 `json:"prob_booked_pct"`
	ProbVacantPct  float64 `json:"prob_vacant_pct"`
}

// BookingWeek is the ordered 7-day simulation result.
type BookingWeek struct {
	RowIndex  int          `json:"row_index"`
	BasePrice float64      `json:"base_price"`
	Results   []BookingDay `json:"results"`
}

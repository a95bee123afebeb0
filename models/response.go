package models

// CheckResponse is the response for POST /api/v1/check.
type CheckResponse struct {
	// Success indicates whether the search completed and a price was read.
	Success bool `json:"success"`

	// Product is the search term the check ran with.
	Product string `json:"product"`

	// Price is the raw text of the first displayed price. It is reported
	// verbatim: no currency or locale normalization is applied.
	Price string `json:"price,omitempty"`

	// Offers lists every price string found on the results page, in
	// document order. Offers[0] equals Price when both are present.
	Offers []Offer `json:"offers,omitempty"`

	// StatusCode is the HTTP status code from the initial navigation.
	StatusCode int `json:"status_code,omitempty"`

	// Timing provides duration breakdowns for the operation.
	Timing TimingInfo `json:"timing"`

	// CacheStatus indicates whether the response was served from cache.
	// Values: "hit", "miss", or empty (caching not requested).
	CacheStatus string `json:"cache_status,omitempty"`

	// Error is populated only when Success is false and the failure was
	// an error rather than a clean unsuccessful search.
	Error *ErrorDetail `json:"error,omitempty"`
}

// Offer is one displayed price on the results page.
type Offer struct {
	// Price is the raw displayed price text.
	Price string `json:"price"`

	// Title is the listing title the price belongs to, when one could be
	// associated. Best-effort; may be empty.
	Title string `json:"title,omitempty"`
}

// TimingInfo breaks down the time spent in each phase.
type TimingInfo struct {
	// TotalMs is the end-to-end duration in milliseconds.
	TotalMs int64 `json:"total_ms"`

	// SearchMs is the time spent navigating and submitting the search.
	SearchMs int64 `json:"search_ms"`

	// ScrapeMs is the time spent waiting for and reading the price.
	ScrapeMs int64 `json:"scrape_ms"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status  string       `json:"status"` // "healthy" or "degraded"
	Uptime  string       `json:"uptime"`
	Stats   SessionStats `json:"stats"`
	Version string       `json:"version"`
}

// SessionStats reports the scraper's current load.
type SessionStats struct {
	ActiveChecks int `json:"active_checks"`
}

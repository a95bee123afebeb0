package models

// CheckRequest is the payload for POST /api/v1/check.
type CheckRequest struct {
	// Product overrides the configured search term for this request.
	Product string `json:"product,omitempty"`

	// Timeout is the maximum duration in seconds for the entire check
	// (navigation + search + price extraction).
	// Default: 60. Max: 120.
	Timeout int `json:"timeout,omitempty" binding:"omitempty,min=1,max=120"`

	// Stealth enables anti-bot-detection evasions for this request.
	// Default: follows server configuration.
	Stealth *bool `json:"stealth,omitempty"`

	// MaxAge allows a cached result no older than this many milliseconds.
	// 0 disables cache lookup.
	MaxAge int `json:"max_age,omitempty" binding:"omitempty,min=0"`
}

// Defaults applies default values to unset fields.
func (r *CheckRequest) Defaults(product string) {
	if r.Product == "" {
		r.Product = product
	}
	if r.Timeout == 0 {
		r.Timeout = 60
	}
}

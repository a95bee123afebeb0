package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Browser   BrowserConfig
	Check     CheckConfig
	Selectors SelectorConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server (serve mode only).
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// BrowserConfig controls the Rod browser instance.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string

	// Proxy is the proxy URL for all browser traffic.
	Proxy string

	// Stealth enables anti-bot-detection evasions before navigation.
	Stealth bool // default: false
}

// CheckConfig controls a single price-check session.
type CheckConfig struct {
	// Website is the retail site the session starts from.
	Website string // default: "https://www.amazon.com/"

	// Product is the search term submitted to the site.
	Product string // default: "hand soap"

	// Timeout bounds the entire session (navigation through extraction).
	Timeout time.Duration // default: 60s

	// InterstitialWait is the fixed delay that lets an optional
	// "Continue shopping" prompt render before it is checked.
	InterstitialWait time.Duration // default: 2s

	// SearchInputTimeout bounds the wait for the primary search input.
	SearchInputTimeout time.Duration // default: 15s

	// FallbackInputTimeout bounds the wait for the secondary search input
	// after the primary was not found.
	FallbackInputTimeout time.Duration // default: 2s

	// PriceTimeout bounds the wait for the first price element to appear
	// on the results page.
	PriceTimeout time.Duration // default: 10s

	// Preflight enables the advisory HTTP reachability probe that runs
	// before the browser navigates. Probe failures are logged, never fatal.
	Preflight bool // default: true
}

// SelectorConfig holds the page query patterns for the target site.
// Defaults match Amazon's storefront.
type SelectorConfig struct {
	// SearchInput is the primary search box.
	SearchInput string // default: "input#twotabsearchtextbox"

	// SearchInputFallback is the secondary search box shown on some
	// reduced-navigation variants of the home page.
	SearchInputFallback string // default: "input#nav-bb-bar"

	// SearchSubmit is the control that submits the search.
	SearchSubmit string // default: "#nav-search-submit-button"

	// InterstitialText is the visible label of the interstitial affordance.
	InterstitialText string // default: "Continue shopping"

	// PriceReady is the element whose appearance signals that prices
	// have rendered.
	PriceReady string // default: ".a-price-whole"

	// Price matches the displayed price text; the first match is reported.
	Price string // default: ".a-price .a-offscreen"
}

// AuthConfig controls API key authentication (serve mode only).
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: true

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting (serve mode only).
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key.
	RequestsPerSecond float64 // default: 1

	// Burst is the maximum burst size per API key.
	Burst int // default: 3
}

// CacheConfig controls the check response cache (serve mode only).
type CacheConfig struct {
	// MaxEntries is the maximum number of cached responses.
	MaxEntries int // default: 256
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "text"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("PRICEBOT_HOST", "0.0.0.0"),
			Port: envIntOr("PRICEBOT_PORT", 8080),
			Mode: envOr("PRICEBOT_MODE", "release"),
		},
		Browser: BrowserConfig{
			Headless:   envBoolOr("PRICEBOT_HEADLESS", true),
			NoSandbox:  envBoolOr("PRICEBOT_NO_SANDBOX", false),
			BrowserBin: os.Getenv("PRICEBOT_BROWSER_BIN"),
			Proxy:      os.Getenv("PRICEBOT_PROXY"),
			Stealth:    envBoolOr("PRICEBOT_STEALTH", false),
		},
		Check: CheckConfig{
			Website:              envOr("PRICEBOT_WEBSITE", "https://www.amazon.com/"),
			Product:              envOr("PRICEBOT_PRODUCT", "hand soap"),
			Timeout:              envDurationOr("PRICEBOT_TIMEOUT", 60*time.Second),
			InterstitialWait:     envDurationOr("PRICEBOT_INTERSTITIAL_WAIT", 2*time.Second),
			SearchInputTimeout:   envDurationOr("PRICEBOT_SEARCH_INPUT_TIMEOUT", 15*time.Second),
			FallbackInputTimeout: envDurationOr("PRICEBOT_FALLBACK_INPUT_TIMEOUT", 2*time.Second),
			PriceTimeout:         envDurationOr("PRICEBOT_PRICE_TIMEOUT", 10*time.Second),
			Preflight:            envBoolOr("PRICEBOT_PREFLIGHT", true),
		},
		Selectors: SelectorConfig{
			SearchInput:         envOr("PRICEBOT_SEL_SEARCH_INPUT", "input#twotabsearchtextbox"),
			SearchInputFallback: envOr("PRICEBOT_SEL_SEARCH_INPUT_FALLBACK", "input#nav-bb-bar"),
			SearchSubmit:        envOr("PRICEBOT_SEL_SEARCH_SUBMIT", "#nav-search-submit-button"),
			InterstitialText:    envOr("PRICEBOT_SEL_INTERSTITIAL_TEXT", "Continue shopping"),
			PriceReady:          envOr("PRICEBOT_SEL_PRICE_READY", ".a-price-whole"),
			Price:               envOr("PRICEBOT_SEL_PRICE", ".a-price .a-offscreen"),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("PRICEBOT_AUTH_ENABLED", true),
			APIKeys: envSliceOr("PRICEBOT_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("PRICEBOT_RATE_RPS", 1.0),
			Burst:             envIntOr("PRICEBOT_RATE_BURST", 3),
		},
		Cache: CacheConfig{
			MaxEntries: envIntOr("PRICEBOT_CACHE_MAX_ENTRIES", 256),
		},
		Log: LogConfig{
			Level:  envOr("PRICEBOT_LOG_LEVEL", "info"),
			Format: envOr("PRICEBOT_LOG_FORMAT", "text"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}

package scraper

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/use-agent/pricebot/config"
	"github.com/use-agent/pricebot/listing"
	"github.com/use-agent/pricebot/models"
	"github.com/ysmood/gson"
)

// Scraper owns the browser and runs price-check sessions on it.
// It is safe for concurrent use; each check gets its own page.
type Scraper struct {
	browser      *rod.Browser
	browserCfg   config.BrowserConfig
	checkCfg     config.CheckConfig
	selectors    config.SelectorConfig
	preflight    *preflight
	activeChecks atomic.Int32
}

// New launches a headless browser and connects to it.
func New(browserCfg config.BrowserConfig, checkCfg config.CheckConfig, selectors config.SelectorConfig) (*Scraper, error) {
	l := launcher.New().
		Headless(browserCfg.Headless).
		NoSandbox(browserCfg.NoSandbox)

	if browserCfg.BrowserBin != "" {
		l = l.Bin(browserCfg.BrowserBin)
	}
	if browserCfg.Proxy != "" {
		l = l.Proxy(browserCfg.Proxy)
	}

	// ── Stealth flags ────────────────────────────────────────────────
	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-features"), "AudioServiceOutOfProcess,TranslateUI")
	l.Set(flags.Flag("disable-popup-blocking"))
	l.Set(flags.Flag("disable-prompt-on-repost"))
	l.Set(flags.Flag("disable-renderer-backgrounding"))
	l.Set(flags.Flag("disable-background-timer-throttling"))
	l.Set(flags.Flag("disable-backgrounding-occluded-windows"))
	l.Set(flags.Flag("disable-component-update"))
	l.Set(flags.Flag("disable-default-apps"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("no-first-run"))

	controlURL, err := l.Launch()
	if err != nil {
		return nil, models.NewCheckError(
			models.ErrCodeBrowserCrash,
			"failed to launch browser",
			err,
		)
	}
	slog.Info("browser launched", "controlURL", controlURL)

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, models.NewCheckError(
			models.ErrCodeBrowserCrash,
			"failed to connect to browser",
			err,
		)
	}

	return &Scraper{
		browser:    browser,
		browserCfg: browserCfg,
		checkCfg:   checkCfg,
		selectors:  selectors,
		preflight:  newPreflight(browserCfg.Proxy),
	}, nil
}

// Stats returns a snapshot of the scraper's current load.
func (s *Scraper) Stats() models.SessionStats {
	return models.SessionStats{
		ActiveChecks: int(s.activeChecks.Load()),
	}
}

// Close kills the browser process.
// Call this on shutdown to prevent zombie Chrome processes.
func (s *Scraper) Close() {
	slog.Info("scraper shutting down: closing browser")
	s.browser.MustClose()
	slog.Info("scraper shutdown complete")
}

// Check runs one price-check session: open a page, search for the product,
// read the first displayed price.
//
// Lifecycle:
//
//  1. Timeout guard     – hard deadline on the entire session
//  2. Open page         – one fresh tab per check
//  3. DEFER: close page – released on every exit path, including errors
//  4. Preflight probe   – advisory reachability check, never fatal
//  5. Stealth injection – mask navigator.webdriver etc. (before navigation!)
//  6. Headers           – Accept-Language so the storefront renders in English
//  7. Search            – navigate, dismiss interstitial, submit the query;
//     failures here end the check cleanly with Success=false
//  8. Scrape            – read the first price; the readiness timeout is the
//     one error that propagates out of the session
//  9. Listing summary   – best-effort parse of every price on the page
//
// Step 3 is deliberate: the original behavior this replaces skipped browser
// cleanup when step 8 timed out, leaking the process. The defer guarantees
// release on that path too.
func (s *Scraper) Check(ctx context.Context, req *models.CheckRequest) (*models.CheckResponse, error) {
	totalStart := time.Now()

	// ── 1. Timeout guard ──────────────────────────────────────────────
	timeout := time.Duration(req.Timeout) * time.Second
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	s.activeChecks.Add(1)
	defer s.activeChecks.Add(-1)

	// ── 2. Open page ──────────────────────────────────────────────────
	page, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, models.NewCheckError(
			models.ErrCodeBrowserCrash,
			"failed to open page",
			err,
		)
	}

	// ── 3. Scoped release: the page closes on every exit path ─────────
	defer func() {
		if closeErr := page.Close(); closeErr != nil {
			slog.Warn("cleanup: failed to close page", "error", closeErr)
		}
	}()

	// ── 4. Preflight probe (advisory) ─────────────────────────────────
	if s.checkCfg.Preflight {
		s.runPreflight(ctx)
	}

	// ── 5. Stealth injection ──────────────────────────────────────────
	stealthOn := s.browserCfg.Stealth
	if req.Stealth != nil {
		stealthOn = *req.Stealth
	}
	if stealthOn {
		if _, evalErr := page.EvalOnNewDocument(stealth.JS); evalErr != nil {
			slog.Warn("stealth injection failed, proceeding without stealth",
				"error", evalErr,
			)
		}
	}

	// ── 6. Extra headers ──────────────────────────────────────────────
	_ = proto.NetworkSetExtraHTTPHeaders{
		Headers: toHeadersMap(map[string]string{
			"Accept-Language": "en-US,en;q=0.9",
		}),
	}.Call(page)

	p := page.Context(ctx)

	// ── 7. Search ─────────────────────────────────────────────────────
	searchStart := time.Now()
	outcome := s.searchProduct(p, req.Product)
	searchMs := time.Since(searchStart).Milliseconds()

	resp := &models.CheckResponse{
		Product:    req.Product,
		StatusCode: outcome.StatusCode,
	}
	if !outcome.OK {
		resp.Timing = models.TimingInfo{
			TotalMs:  time.Since(totalStart).Milliseconds(),
			SearchMs: searchMs,
		}
		return resp, nil
	}

	// ── 8. Scrape ─────────────────────────────────────────────────────
	scrapeStart := time.Now()
	price, err := s.scrapePrice(p)
	if err != nil {
		return nil, err
	}
	resp.Success = true
	resp.Price = price

	// ── 9. Listing summary (best-effort) ──────────────────────────────
	if rawHTML, htmlErr := p.HTML(); htmlErr == nil {
		offers, listErr := listing.Extract(rawHTML, s.selectors.Price)
		if listErr != nil {
			slog.Debug("listing parse failed", "error", listErr)
		} else {
			resp.Offers = offers
			slog.Debug("results page parsed", "offers", len(offers))
		}
	}

	resp.Timing = models.TimingInfo{
		TotalMs:  time.Since(totalStart).Milliseconds(),
		SearchMs: searchMs,
		ScrapeMs: time.Since(scrapeStart).Milliseconds(),
	}
	return resp, nil
}

// runPreflight probes the website over plain HTTP before the browser
// navigates. Storefronts often reject non-browser clients, so a failed probe
// only logs a warning.
func (s *Scraper) runPreflight(ctx context.Context) {
	status, title, err := s.preflight.probe(ctx, s.checkCfg.Website)
	if err != nil {
		slog.Warn("preflight: site probe failed, continuing with browser",
			"url", s.checkCfg.Website, "error", err)
		return
	}
	slog.Debug("preflight: site reachable",
		"url", s.checkCfg.Website, "status", status, "title", title)
}

// categorizeError wraps raw errors into typed CheckErrors so callers can map
// them to exit codes or HTTP statuses.
func categorizeError(err error, msg string) *models.CheckError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewCheckError(models.ErrCodePriceTimeout, msg, err)
	case errors.Is(err, context.Canceled):
		return models.NewCheckError(models.ErrCodePriceTimeout, "check canceled", err)
	default:
		return models.NewCheckError(models.ErrCodeInternal, msg, err)
	}
}

// toHeadersMap converts a plain string map to the proto.NetworkHeaders type
// (map[string]gson.JSON) required by NetworkSetExtraHTTPHeaders.
func toHeadersMap(headers map[string]string) proto.NetworkHeaders {
	m := make(proto.NetworkHeaders, len(headers))
	for k, v := range headers {
		m[k] = gson.New(v)
	}
	return m
}

package scraper

import (
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// submitTimeout bounds the lookup of the search-submit control. The control
// sits next to the input, so if the input was found this should be instant.
const submitTimeout = 5 * time.Second

// searchOutcome reports how the search phase ended.
type searchOutcome struct {
	OK         bool
	StatusCode int
}

// searchProduct navigates to the website and submits a search for the
// product. Every failure is caught here and reported as a clean boolean
// outcome; no error escapes the search phase.
func (s *Scraper) searchProduct(p *rod.Page, product string) searchOutcome {
	if err := p.Navigate(s.checkCfg.Website); err != nil {
		slog.Error("search: navigation failed",
			"url", s.checkCfg.Website, "error", err)
		return searchOutcome{}
	}

	if err := p.WaitDOMStable(300*time.Millisecond, 0.1); err != nil {
		slog.Debug("search: DOM did not stabilize, proceeding with current DOM",
			"error", err)
	}

	status := navigationStatus(p)
	if !statusSuccess(status) {
		slog.Error("search: navigation returned non-success status",
			"url", s.checkCfg.Website, "status", status)
		return searchOutcome{StatusCode: status}
	}

	// The interstitial is dismissed unconditionally; its outcome does not
	// change the flow.
	s.dismissInterstitial(p)

	input, ok := s.findSearchInput(p)
	if !ok {
		slog.Error("search: no search input found",
			"primary", s.selectors.SearchInput,
			"fallback", s.selectors.SearchInputFallback)
		return searchOutcome{StatusCode: status}
	}

	if err := input.Input(product); err != nil {
		slog.Error("search: failed to fill search input", "error", err)
		return searchOutcome{StatusCode: status}
	}

	submit, err := p.Timeout(submitTimeout).Element(s.selectors.SearchSubmit)
	if err != nil {
		slog.Error("search: submit control not found",
			"selector", s.selectors.SearchSubmit, "error", err)
		return searchOutcome{StatusCode: status}
	}
	if err := submit.Click(proto.InputMouseButtonLeft, 1); err != nil {
		slog.Error("search: failed to click submit", "error", err)
		return searchOutcome{StatusCode: status}
	}

	slog.Info("search submitted", "product", product)
	return searchOutcome{OK: true, StatusCode: status}
}

// findSearchInput locates the search box with a bounded wait per selector:
// the primary selector first, then an explicit fallback branch when the
// primary is absent. A missing element is an ordinary outcome here, not an
// error, so the fallback is actually reachable.
func (s *Scraper) findSearchInput(p *rod.Page) (*rod.Element, bool) {
	if el, err := p.Timeout(s.checkCfg.SearchInputTimeout).Element(s.selectors.SearchInput); err == nil {
		return el, true
	}
	slog.Debug("search: primary input absent, trying fallback",
		"primary", s.selectors.SearchInput,
		"fallback", s.selectors.SearchInputFallback)
	if el, err := p.Timeout(s.checkCfg.FallbackInputTimeout).Element(s.selectors.SearchInputFallback); err == nil {
		return el, true
	}
	return nil, false
}

// navigationStatus reads the HTTP status of the navigation from the page's
// performance entries. This needs no CDP event listeners, so it works
// regardless of when it runs relative to Navigate. Returns 0 when the
// status is unavailable (treated as "no response").
func navigationStatus(p *rod.Page) int {
	res, err := p.Eval(`() => {
		try {
			const entries = performance.getEntriesByType("navigation");
			if (entries.length > 0) return entries[0].responseStatus || 0;
		} catch(e) {}
		return 0;
	}`)
	if err != nil {
		return 0
	}
	return res.Value.Int()
}

// statusSuccess reports whether a navigation status counts as a successful
// response. 0 means no response was observed at all.
func statusSuccess(status int) bool {
	return status >= 200 && status < 300
}

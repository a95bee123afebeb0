package scraper

import (
	"github.com/go-rod/rod"
)

// scrapePrice waits for prices to render on the results page and reads the
// first displayed price, verbatim. No parsing, no normalization, no retry.
//
// The readiness wait is the one bounded operation in the session whose
// failure propagates to the caller instead of folding into a boolean: a
// successful search with no readable price is a distinct, reportable state.
func (s *Scraper) scrapePrice(p *rod.Page) (string, error) {
	if err := p.Timeout(s.checkCfg.PriceTimeout).WaitElementsMoreThan(s.selectors.PriceReady, 0); err != nil {
		return "", categorizeError(err, "price element did not appear")
	}

	// First match in document order.
	el, err := p.Element(s.selectors.Price)
	if err != nil {
		return "", categorizeError(err, "price text not found after readiness")
	}

	// textContent, not innerText: the displayed price lives in a visually
	// offscreen element.
	res, err := el.Eval(`() => this.textContent`)
	if err != nil {
		return "", categorizeError(err, "failed to read price text")
	}
	return res.Value.Str(), nil
}

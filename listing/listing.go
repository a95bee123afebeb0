// Package listing parses a rendered search-results page offline and collects
// the displayed prices. It works on a raw HTML snapshot, so it never touches
// the browser and can be exercised without one.
package listing

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/use-agent/pricebot/models"
)

// resultItemSelector matches one listing on the results page. Best-effort:
// when no container matches, the offer is reported without a title.
const resultItemSelector = `div[data-component-type="s-search-result"], .s-result-item`

// Extract returns every price matching priceSelector, verbatim and in
// document order, each associated with its listing title when one is found.
func Extract(rawHTML, priceSelector string) ([]models.Offer, error) {
	sel, err := cascadia.Compile(priceSelector)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, err
	}

	var offers []models.Offer
	doc.FindMatcher(sel).Each(func(_ int, s *goquery.Selection) {
		price := s.Text()
		if price == "" {
			return
		}
		offers = append(offers, models.Offer{
			Price: price,
			Title: itemTitle(s),
		})
	})
	return offers, nil
}

// FirstPrice returns the first displayed price, or "" when the page has none.
func FirstPrice(offers []models.Offer) string {
	if len(offers) == 0 {
		return ""
	}
	return offers[0].Price
}

// itemTitle climbs to the enclosing result item and reads its heading.
func itemTitle(s *goquery.Selection) string {
	item := s.Closest(resultItemSelector)
	if item.Length() == 0 {
		return ""
	}
	return strings.TrimSpace(item.Find("h2").First().Text())
}

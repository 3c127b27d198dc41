package scan

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"pricesentry/config"
	"pricesentry/helpers"
	"pricesentry/internal/extract"
)

// findListings extracts candidate listings from a search-results page. Each
// configured container element yields at most one listing; a card missing a
// title or a resolvable link is dropped silently, a card with an unparsable
// price is kept with a nil price.
func findListings(doc *goquery.Document, pageURL string, sel config.SearchSelectors) []Listing {
	var listings []Listing

	doc.Find(sel.Container).Each(func(_ int, card *goquery.Selection) {
		titleSel := card.Find(sel.Title).First()
		title := strings.TrimSpace(titleSel.Text())
		if title == "" {
			// Some sites keep the full title in the attribute only.
			if attr, exists := titleSel.Attr("title"); exists {
				title = strings.TrimSpace(attr)
			}
		}

		href, _ := card.Find(sel.Link).First().Attr("href")
		link := helpers.ResolveURL(pageURL, href)

		if title == "" || link == "" {
			return
		}

		var price *float64
		if sel.Price != "" {
			if p, err := extract.ParseAmount(card.Find(sel.Price).First().Text()); err == nil {
				price = &p
			}
		}

		listings = append(listings, Listing{Title: title, URL: link, Price: price})
	})

	return listings
}

// matchesKeywords applies the include/exclude filter to a listing title.
// With a non-empty include list at least one keyword must appear; exclude
// keywords always disqualify. Matching is a case-insensitive substring test.
func matchesKeywords(title string, includes, excludes []string) bool {
	if len(includes) > 0 {
		anyIncluded := false
		for _, kw := range includes {
			if helpers.ContainsFold(title, kw) {
				anyIncluded = true
				break
			}
		}
		if !anyIncluded {
			return false
		}
	}
	for _, kw := range excludes {
		if helpers.ContainsFold(title, kw) {
			return false
		}
	}
	return true
}

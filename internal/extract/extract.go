// Package extract implements the resilient price-extraction pipeline: an
// ordered chain of strategies applied to arbitrary retailer HTML, from
// machine-readable metadata down to a configured regex.
package extract

import (
	"encoding/json"
	"errors"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrPriceNotFound is returned when every strategy has been exhausted.
var ErrPriceNotFound = errors.New("price not found")

// Options configures the page-specific fallback strategies.
type Options struct {
	// Selector is an optional CSS selector for the price element.
	Selector string
	// Attr reads the price from an attribute of the selected element
	// instead of its text.
	Attr string
	// PriceRegex is an optional pattern with exactly one capture group,
	// applied to the raw HTML. Useful for variant/size-specific prices that
	// structured metadata cannot disambiguate.
	PriceRegex string
}

// strategyFunc tries one extraction strategy. ok is true only when it
// produced a parsable, strictly positive price.
type strategyFunc func(doc *goquery.Document, raw string, opts Options) (price float64, ok bool)

// strategies are tried in order; the first success wins.
var strategies = []strategyFunc{
	structuredDataPrice,
	openGraphPrice,
	selectorPrice,
	regexPrice,
}

// Price runs the strategy chain over a page and returns the first usable
// price. All strategies failing yields ErrPriceNotFound.
func Price(html string, opts Options) (float64, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return 0, err
	}
	for _, strategy := range strategies {
		if price, ok := strategy(doc, html, opts); ok {
			return price, nil
		}
	}
	return 0, ErrPriceNotFound
}

// structuredDataPrice reads schema.org Offer prices from embedded JSON-LD
// blocks. Pages may carry several blocks, @graph wrappers and offer arrays;
// the first offer with a usable price wins.
func structuredDataPrice(doc *goquery.Document, _ string, _ Options) (float64, bool) {
	var price float64
	var found bool

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var blob interface{}
		if err := json.Unmarshal([]byte(s.Text()), &blob); err != nil {
			return true // skip malformed blocks
		}
		if p, ok := offerPrice(blob); ok {
			price, found = p, true
			return false
		}
		return true
	})

	return price, found
}

// offerPrice walks a decoded JSON-LD value looking for an Offer (or
// AggregateOffer) with a numeric price. Map keys likely to hold offers are
// visited first, the rest in sorted order so traversal is deterministic.
func offerPrice(v interface{}) (float64, bool) {
	switch node := v.(type) {
	case []interface{}:
		for _, item := range node {
			if p, ok := offerPrice(item); ok {
				return p, true
			}
		}
	case map[string]interface{}:
		if isOfferType(node["@type"]) {
			for _, field := range []string{"price", "lowPrice"} {
				if p, ok := amountValue(node[field]); ok {
					return p, true
				}
			}
		}
		for _, key := range []string{"offers", "@graph", "mainEntity"} {
			if child, exists := node[key]; exists {
				if p, ok := offerPrice(child); ok {
					return p, true
				}
			}
		}
		keys := make([]string, 0, len(node))
		for key := range node {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if key == "offers" || key == "@graph" || key == "mainEntity" {
				continue
			}
			if p, ok := offerPrice(node[key]); ok {
				return p, true
			}
		}
	}
	return 0, false
}

func isOfferType(v interface{}) bool {
	switch t := v.(type) {
	case string:
		return t == "Offer" || t == "AggregateOffer"
	case []interface{}:
		for _, item := range t {
			if s, ok := item.(string); ok && (s == "Offer" || s == "AggregateOffer") {
				return true
			}
		}
	}
	return false
}

// amountValue parses a JSON price field, which may be a number or a string.
func amountValue(v interface{}) (float64, bool) {
	switch amount := v.(type) {
	case float64:
		return amount, amount > 0
	case string:
		p, err := ParseAmount(amount)
		return p, err == nil
	}
	return 0, false
}

// openGraphPrice reads the conventional Open Graph price meta tag, with the
// rare twitter:data1 carrier as a secondary source.
func openGraphPrice(doc *goquery.Document, _ string, _ Options) (float64, bool) {
	for _, selector := range []string{
		`meta[property="product:price:amount"]`,
		`meta[name="twitter:data1"]`,
	} {
		content, exists := doc.Find(selector).First().Attr("content")
		if !exists {
			continue
		}
		if p, err := ParseAmount(content); err == nil {
			return p, true
		}
	}
	return 0, false
}

// selectorPrice extracts the price from the first element matching the
// configured CSS selector, reading an attribute when one is configured.
func selectorPrice(doc *goquery.Document, _ string, opts Options) (float64, bool) {
	if opts.Selector == "" {
		return 0, false
	}
	sel := doc.Find(opts.Selector).First()
	if sel.Length() == 0 {
		return 0, false
	}

	var raw string
	if opts.Attr != "" {
		raw, _ = sel.Attr(opts.Attr)
	} else {
		raw = sel.Text()
	}

	p, err := ParseAmount(raw)
	return p, err == nil
}

// regexPrice applies the configured single-capture-group pattern to the raw
// HTML. Pattern validity is checked at configuration load time.
func regexPrice(_ *goquery.Document, raw string, opts Options) (float64, bool) {
	if opts.PriceRegex == "" {
		return 0, false
	}
	re, err := regexp.Compile(opts.PriceRegex)
	if err != nil {
		return 0, false
	}
	match := re.FindStringSubmatch(raw)
	if len(match) < 2 {
		return 0, false
	}
	p, err := ParseAmount(match[1])
	return p, err == nil
}

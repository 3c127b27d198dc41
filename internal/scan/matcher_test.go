package scan

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"

	"pricesentry/config"
)

var searchSelectors = config.SearchSelectors{
	Container: "li.result",
	Title:     "h3",
	Price:     "span.price",
	Link:      "a",
}

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	assert.NoError(t, err)
	return doc
}

func TestFindListings(t *testing.T) {
	html := `
		<ul>
			<li class="result">
				<h3>Acme Widget Pro</h3>
				<span class="price">$123.45</span>
				<a href="/itm/1">view</a>
			</li>
			<li class="result">
				<h3>Acme Widget Mini</h3>
				<span class="price">call for price</span>
				<a href="https://other.example.com/itm/2">view</a>
			</li>
		</ul>`

	listings := findListings(parseDoc(t, html), "https://market.example.com/search", searchSelectors)
	assert.Len(t, listings, 2)

	assert.Equal(t, "Acme Widget Pro", listings[0].Title)
	assert.Equal(t, "https://market.example.com/itm/1", listings[0].URL)
	if assert.NotNil(t, listings[0].Price) {
		assert.InDelta(t, 123.45, *listings[0].Price, 1e-9)
	}

	assert.Equal(t, "https://other.example.com/itm/2", listings[1].URL)
	assert.Nil(t, listings[1].Price, "unparsable price is kept as nil")
}

func TestFindListingsTitleAttributeFallback(t *testing.T) {
	html := `
		<li class="result">
			<h3 title="Acme Widget XL"></h3>
			<a href="/itm/3">view</a>
		</li>`

	listings := findListings(parseDoc(t, html), "https://market.example.com/search", searchSelectors)
	assert.Len(t, listings, 1)
	assert.Equal(t, "Acme Widget XL", listings[0].Title)
}

func TestFindListingsDropsIncompleteCards(t *testing.T) {
	html := `
		<li class="result"><h3>No link here</h3></li>
		<li class="result"><a href="/itm/4">no title</a></li>
		<li class="result"><h3>Complete</h3><a href="/itm/5">view</a></li>`

	listings := findListings(parseDoc(t, html), "https://market.example.com/search", searchSelectors)
	assert.Len(t, listings, 1)
	assert.Equal(t, "Complete", listings[0].Title)
}

func TestMatchesKeywords(t *testing.T) {
	testCases := []struct {
		name     string
		title    string
		includes []string
		excludes []string
		expected bool
	}{
		{"no filters", "Acme Widget", nil, nil, true},
		{"include hit", "Acme Widget Pro", []string{"widget"}, nil, true},
		{"include case folded", "ACME WIDGET", []string{"widget"}, nil, true},
		{"any include suffices", "Acme Gadget", []string{"widget", "gadget"}, nil, true},
		{"include miss", "Acme Sprocket", []string{"widget"}, nil, false},
		{"exclude disqualifies", "Acme Widget, broken", []string{"widget"}, []string{"broken"}, false},
		{"exclude without includes", "Widget for parts", nil, []string{"for parts"}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, matchesKeywords(tc.title, tc.includes, tc.excludes))
		})
	}
}

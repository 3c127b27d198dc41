package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const jsonLDPage = `<html><head>
<script type="application/ld+json">
{"@context":"https://schema.org","@type":"Product","name":"Surfboard",
 "offers":{"@type":"Offer","price":"2199.00","priceCurrency":"USD"}}
</script>
<meta property="product:price:amount" content="2399.00" />
</head><body>
<span class="price">$2,499.00</span>
</body></html>`

func TestPricePrefersStructuredData(t *testing.T) {
	// JSON-LD wins over Open Graph, selector and regex fallbacks.
	price, err := Price(jsonLDPage, Options{
		Selector:   "span.price",
		PriceRegex: `\$([0-9,.]+)`,
	})
	assert.NoError(t, err)
	assert.Equal(t, 2199.00, price)
}

func TestPriceStructuredDataVariants(t *testing.T) {
	testCases := []struct {
		name     string
		html     string
		expected float64
	}{
		{
			name: "offer array picks first usable price",
			html: `<script type="application/ld+json">
				{"@type":"Product","offers":[
					{"@type":"Offer","price":"not a price"},
					{"@type":"Offer","price":"1,299.50"}]}
			</script>`,
			expected: 1299.50,
		},
		{
			name: "numeric price field",
			html: `<script type="application/ld+json">
				{"@type":"Offer","price":749.99}
			</script>`,
			expected: 749.99,
		},
		{
			name: "aggregate offer lowPrice",
			html: `<script type="application/ld+json">
				{"@type":"Product","offers":{"@type":"AggregateOffer","lowPrice":"510.00","highPrice":"640.00"}}
			</script>`,
			expected: 510.00,
		},
		{
			name: "graph wrapper",
			html: `<script type="application/ld+json">
				{"@graph":[{"@type":"WebPage"},{"@type":"Product","offers":{"@type":"Offer","price":"88.00"}}]}
			</script>`,
			expected: 88.00,
		},
		{
			name: "second block after malformed first",
			html: `<script type="application/ld+json">{broken json</script>
				<script type="application/ld+json">{"@type":"Offer","price":"42.00"}</script>`,
			expected: 42.00,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			price, err := Price(tc.html, Options{})
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, price)
		})
	}
}

func TestPriceOpenGraphFallback(t *testing.T) {
	html := `<html><head>
		<meta property="product:price:amount" content="159.99" />
	</head><body><span class="price">$179.99</span></body></html>`

	price, err := Price(html, Options{Selector: "span.price"})
	assert.NoError(t, err)
	assert.Equal(t, 159.99, price)
}

func TestPriceTwitterDataFallback(t *testing.T) {
	html := `<html><head><meta name="twitter:data1" content="$64.00" /></head></html>`

	price, err := Price(html, Options{})
	assert.NoError(t, err)
	assert.Equal(t, 64.00, price)
}

func TestPriceSelectorStrategy(t *testing.T) {
	html := `<html><body>
		<div id="buybox"><span class="a-price">$1,234.56</span></div>
	</body></html>`

	price, err := Price(html, Options{Selector: "span.a-price"})
	assert.NoError(t, err)
	assert.Equal(t, 1234.56, price)
}

func TestPriceSelectorAttr(t *testing.T) {
	html := `<html><body><span class="price" data-amount="899.00">see cart</span></body></html>`

	price, err := Price(html, Options{Selector: "span.price", Attr: "data-amount"})
	assert.NoError(t, err)
	assert.Equal(t, 899.00, price)
}

func TestPriceRegexStrategy(t *testing.T) {
	// Variant-specific price embedded in markup no structured strategy can
	// disambiguate.
	html := `<html><body>
		<div data-variants='{"6_7_110L": {"amount": "2747.00"}}'></div>
	</body></html>`

	price, err := Price(html, Options{PriceRegex: `"6_7_110L":\s*{"amount":\s*"([0-9.]+)"`})
	assert.NoError(t, err)
	assert.Equal(t, 2747.00, price)
}

func TestPriceNotFound(t *testing.T) {
	html := `<html><body><p>Out of stock</p></body></html>`

	_, err := Price(html, Options{Selector: "span.price", PriceRegex: `\$([0-9.]+)`})
	assert.ErrorIs(t, err, ErrPriceNotFound)
}

func TestPriceSkipsNonPositive(t *testing.T) {
	// A strategy yielding a non-positive amount fails and the chain moves on.
	html := `<html><head>
		<script type="application/ld+json">{"@type":"Offer","price":"0.00"}</script>
		<meta property="product:price:amount" content="25.00" />
	</head></html>`

	price, err := Price(html, Options{})
	assert.NoError(t, err)
	assert.Equal(t, 25.00, price)
}

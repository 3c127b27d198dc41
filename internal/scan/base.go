package scan

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"pricesentry/helpers"
	"pricesentry/services/cache"
)

// BaseScanner provides fetching and parsing shared by all scanners.
type BaseScanner struct {
	URL       string
	CacheKey  string
	CacheSvc  cache.CacheService
	BlockTime time.Duration

	// fetchFunc overrides the HTTP fetch, used by tests.
	fetchFunc func() (io.Reader, error)
}

// fetch retrieves the target page, honoring the rate-limit guard.
func (b *BaseScanner) fetch() (io.Reader, error) {
	if b.fetchFunc != nil {
		return b.fetchFunc()
	}
	return b.fetchWithCache()
}

// fetchWithCache fetches a URL with rate limiting backed by the cache
// service. A target that answered 429 is not re-fetched until its block key
// expires.
func (b *BaseScanner) fetchWithCache() (io.Reader, error) {
	if b.CacheSvc != nil && b.CacheKey != "" {
		_, err := b.CacheSvc.Get(b.CacheKey)
		if err == nil {
			return nil, fmt.Errorf("%s: blocked for %d more seconds at most", b.CacheKey, b.BlockTime/time.Second)
		}
	}

	utf8Body, err := helpers.FetchWithRandomHeaders(b.URL)
	if err != nil {
		if b.CacheSvc != nil && b.CacheKey != "" && strings.HasPrefix(err.Error(), "rate limited") {
			if setErr := b.CacheSvc.Set(b.CacheKey, []byte(fmt.Sprintf("%d", b.BlockTime/time.Second)), b.BlockTime); setErr != nil {
				return nil, setErr
			}
		}
		return nil, err
	}

	return utf8Body, nil
}

// createDocument creates a goquery document from a reader
func (b *BaseScanner) createDocument(reader io.Reader) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil, fmt.Errorf("HTML parse error: %v", err)
	}
	return doc, nil
}

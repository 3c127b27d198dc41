package scan

import (
	"time"

	"pricesentry/config"
	"pricesentry/logger"
	"pricesentry/pkg/errors"
	"pricesentry/services/cache"
	"pricesentry/services/state"
)

// SearchScanner scans one used-marketplace search-results page for new
// qualifying listings.
type SearchScanner struct {
	BaseScanner
	cfg        config.SearchConfig
	globalMSRP float64
	store      *state.Store
	log        *logger.Logger
}

// NewSearchScanner creates a scanner for a used-marketplace search.
func NewSearchScanner(cfg config.SearchConfig, globalMSRP float64, store *state.Store, cacheSvc cache.CacheService) *SearchScanner {
	return &SearchScanner{
		BaseScanner: BaseScanner{
			URL:       cfg.URL,
			CacheKey:  "search_block_" + cfg.ID,
			CacheSvc:  cacheSvc,
			BlockTime: 10 * time.Minute,
		},
		cfg:        cfg,
		globalMSRP: globalMSRP,
		store:      store,
		log:        logger.ForScanner(cfg.ID),
	}
}

// GetName returns the search's display name
func (s *SearchScanner) GetName() string {
	if s.cfg.Name != "" {
		return s.cfg.Name
	}
	return s.cfg.ID
}

// GetTargetID returns the search's configured identifier
func (s *SearchScanner) GetTargetID() string {
	return s.cfg.ID
}

// Scan extracts the listings, applies the keyword filter, skips everything
// already seen (by URL, unconditionally) and marks a listing seen the moment
// it triggers, before any notifier runs, so retried dispatch cannot alert
// twice.
func (s *SearchScanner) Scan() ([]Alert, error) {
	body, err := s.fetch()
	if err != nil {
		return nil, errors.NewNetwork(s.cfg.ID, "failed to fetch search page", err)
	}

	doc, err := s.createDocument(body)
	if err != nil {
		return nil, errors.NewExtraction(s.cfg.ID, "failed to parse search page", err)
	}

	listings := findListings(doc, s.cfg.URL, s.cfg.Selectors)

	msrp := s.cfg.MSRP
	if msrp <= 0 {
		msrp = s.globalMSRP
	}

	var alerts []Alert
	for _, listing := range listings {
		if !matchesKeywords(listing.Title, s.cfg.IncludeKeywords, s.cfg.ExcludeKeywords) {
			continue
		}
		if s.store.HasSeen(s.cfg.ID, listing.URL) {
			continue
		}

		rule, triggered := listingRule(listing, s.cfg.AlertBelow, msrp, s.cfg.AlertPercentBelowMSRP)
		if !triggered {
			continue
		}

		s.store.MarkSeen(s.cfg.ID, listing.URL)

		alerts = append(alerts, Alert{
			Kind:          AlertUsedListing,
			TargetID:      s.cfg.ID,
			TargetName:    s.GetName(),
			NewPrice:      *listing.Price,
			ListingTitle:  listing.Title,
			ListingURL:    listing.URL,
			TriggeredRule: rule,
			URL:           s.cfg.URL,
		})
	}

	s.log.Debug().
		Int("listings", len(listings)).
		Int("alerts", len(alerts)).
		Msg("Search scanned")

	return alerts, nil
}

package scan

import (
	"fmt"
	"io"
	"time"

	"pricesentry/config"
	"pricesentry/internal/extract"
	"pricesentry/logger"
	"pricesentry/pkg/errors"
	"pricesentry/services/cache"
	"pricesentry/services/state"
)

// RetailerScanner tracks one product page against its recorded baseline.
type RetailerScanner struct {
	BaseScanner
	cfg         config.RetailerConfig
	defaultDrop float64
	store       *state.Store
	log         *logger.Logger
}

// NewRetailerScanner creates a scanner for a tracked retailer page.
func NewRetailerScanner(cfg config.RetailerConfig, defaultDrop float64, store *state.Store, cacheSvc cache.CacheService) *RetailerScanner {
	return &RetailerScanner{
		BaseScanner: BaseScanner{
			URL:       cfg.URL,
			CacheKey:  "retailer_block_" + cfg.ID,
			CacheSvc:  cacheSvc,
			BlockTime: 10 * time.Minute,
		},
		cfg:         cfg,
		defaultDrop: defaultDrop,
		store:       store,
		log:         logger.ForScanner(cfg.ID),
	}
}

// GetName returns the retailer's display name
func (r *RetailerScanner) GetName() string {
	if r.cfg.Name != "" {
		return r.cfg.Name
	}
	return r.cfg.ID
}

// GetTargetID returns the retailer's configured identifier
func (r *RetailerScanner) GetTargetID() string {
	return r.cfg.ID
}

// Scan fetches the page, extracts the current price and compares it against
// the baseline. The baseline is set to the observed price after every
// successful extraction, trigger or not, so repeated small drops cannot
// re-trigger against a stale baseline. A failed extraction mutates nothing.
func (r *RetailerScanner) Scan() ([]Alert, error) {
	body, err := r.fetch()
	if err != nil {
		return nil, errors.NewNetwork(r.cfg.ID, "failed to fetch retailer page", err)
	}

	html, err := io.ReadAll(body)
	if err != nil {
		return nil, errors.NewNetwork(r.cfg.ID, "failed to read retailer page", err)
	}

	price, err := extract.Price(string(html), extract.Options{
		Selector:   r.cfg.Selector,
		Attr:       r.cfg.Attr,
		PriceRegex: r.cfg.PriceRegex,
	})
	if err != nil {
		return nil, errors.NewExtraction(r.cfg.ID, "no strategy produced a price", err)
	}

	baseline, known := r.store.GetBaseline(r.cfg.ID)
	if !known && r.cfg.Baseline > 0 {
		baseline, known = r.cfg.Baseline, true
	}

	var alerts []Alert
	if known {
		threshold := r.cfg.DropPercent
		if threshold <= 0 {
			threshold = r.defaultDrop
		}
		drop := pctDrop(baseline, price)

		r.log.Info().
			Float64("current", price).
			Float64("baseline", baseline).
			Float64("drop_pct", drop).
			Float64("threshold_pct", threshold).
			Msg("Retailer price checked")

		if dropTriggered(baseline, price, threshold) {
			alerts = append(alerts, Alert{
				Kind:          AlertPriceDrop,
				TargetID:      r.cfg.ID,
				TargetName:    r.GetName(),
				OldPrice:      baseline,
				NewPrice:      price,
				TriggeredRule: fmt.Sprintf("%.1f%% drop (threshold %.1f%%)", drop, threshold),
				URL:           r.cfg.URL,
			})
		}
	} else {
		r.log.Info().
			Float64("baseline", price).
			Msg("Initialized baseline")
	}

	r.store.SetBaseline(r.cfg.ID, price)

	return alerts, nil
}

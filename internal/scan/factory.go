package scan

import (
	"pricesentry/config"
	"pricesentry/services/cache"
	"pricesentry/services/state"
)

// CreateScanners builds one scanner per configured target: retailers first,
// then searches. Order within a run carries no semantics; state is
// checkpointed per target either way.
func CreateScanners(watch *config.WatchConfig, store *state.Store, cacheSvc cache.CacheService) []Scanner {
	scanners := make([]Scanner, 0, len(watch.Retailers)+len(watch.Searches))

	for _, r := range watch.Retailers {
		scanners = append(scanners, NewRetailerScanner(r, watch.DefaultDropPercent, store, cacheSvc))
	}
	for _, s := range watch.Searches {
		scanners = append(scanners, NewSearchScanner(s, watch.MSRP, store, cacheSvc))
	}

	return scanners
}

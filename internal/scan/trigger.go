package scan

import "fmt"

// pctDrop returns how far new sits below old, in percent.
func pctDrop(old, new float64) float64 {
	if old <= 0 {
		return 0
	}
	return (old - new) / old * 100.0
}

// dropTriggered reports whether a price fell at least thresholdPct percent
// below the baseline. The comparison avoids the division so an exact
// threshold hit (100 -> 90 at 10%) never rounds the wrong way.
func dropTriggered(baseline, price, thresholdPct float64) bool {
	if baseline <= 0 {
		return false
	}
	return price < baseline && (baseline-price)*100.0 >= thresholdPct*baseline
}

// listingRule evaluates a used listing against the absolute ceiling and the
// percent-below-MSRP rule, in that order. A nil price never triggers.
func listingRule(l Listing, alertBelow, msrp, pctBelowMSRP float64) (string, bool) {
	if l.Price == nil {
		return "", false
	}
	price := *l.Price

	if alertBelow > 0 && price <= alertBelow {
		return fmt.Sprintf("<= $%.0f", alertBelow), true
	}
	if msrp > 0 && pctBelowMSRP > 0 && (msrp-price)*100.0 >= pctBelowMSRP*msrp {
		return fmt.Sprintf("%.1f%% below MSRP", pctDrop(msrp, price)), true
	}
	return "", false
}

package notifier

import (
	"fmt"
	"strings"

	"pricesentry/internal/scan"
)

// renderSubject produces the one-line alert summary used as the email
// subject.
func renderSubject(alert scan.Alert) string {
	switch alert.Kind {
	case scan.AlertPriceDrop:
		return fmt.Sprintf("[Retail Price Drop] %s -> %.2f (%s)", alert.TargetName, alert.NewPrice, alert.TriggeredRule)
	case scan.AlertUsedListing:
		return fmt.Sprintf("[Used Find] %s — %s", alert.TargetName, alert.ListingTitle)
	default:
		return fmt.Sprintf("[Alert] %s", alert.TargetName)
	}
}

// renderBody produces the plain-text alert body.
func renderBody(alert scan.Alert) string {
	var b strings.Builder

	switch alert.Kind {
	case scan.AlertPriceDrop:
		fmt.Fprintf(&b, "%s\n%s\n\n", alert.TargetName, alert.URL)
		fmt.Fprintf(&b, "Current: $%.2f\n", alert.NewPrice)
		fmt.Fprintf(&b, "Baseline: $%.2f\n", alert.OldPrice)
		fmt.Fprintf(&b, "Trigger: %s\n", alert.TriggeredRule)
	case scan.AlertUsedListing:
		fmt.Fprintf(&b, "%s\n%s\n\n", alert.TargetName, alert.URL)
		fmt.Fprintf(&b, "- %s — $%.2f\n", alert.ListingTitle, alert.NewPrice)
		fmt.Fprintf(&b, "  %s\n", alert.ListingURL)
		fmt.Fprintf(&b, "  Trigger: %s\n", alert.TriggeredRule)
	default:
		fmt.Fprintf(&b, "%s: %s\n", alert.TargetName, alert.TriggeredRule)
	}

	return b.String()
}

package notifier

import (
	"pricesentry/internal/scan"
	"pricesentry/logger"
)

// LogNotifier writes alerts to the structured log. It is always registered,
// so alerts stay visible even when SMTP is not configured.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier creates a log-backed notifier
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{log: logger.ForNotifier()}
}

// Notify logs one alert
func (n *LogNotifier) Notify(alert scan.Alert) error {
	event := n.log.Info().
		Str("kind", string(alert.Kind)).
		Str("target_id", alert.TargetID).
		Float64("new_price", alert.NewPrice).
		Str("rule", alert.TriggeredRule)
	if alert.Kind == scan.AlertPriceDrop {
		event = event.Float64("old_price", alert.OldPrice)
	}
	if alert.ListingURL != "" {
		event = event.Str("listing_url", alert.ListingURL)
	}
	event.Msg("Alert triggered")
	return nil
}

// Close implements Notifier
func (n *LogNotifier) Close() error {
	return nil
}

package notifier

import "pricesentry/internal/scan"

// Notifier represents a delivery channel for alerts
type Notifier interface {
	// Notify delivers one alert
	Notify(alert scan.Alert) error

	// Close releases the notifier's resources
	Close() error
}

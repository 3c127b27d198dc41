package scan

// AlertKind distinguishes the two trigger families.
type AlertKind string

const (
	// AlertPriceDrop is a tracked retailer falling below its baseline.
	AlertPriceDrop AlertKind = "price_drop"
	// AlertUsedListing is a new qualifying used-marketplace listing.
	AlertUsedListing AlertKind = "used_listing"
)

// Alert is the structured record handed to notifiers when a trigger fires.
type Alert struct {
	Kind          AlertKind `json:"kind"`
	TargetID      string    `json:"target_id"`
	TargetName    string    `json:"target_name,omitempty"`
	OldPrice      float64   `json:"old_price,omitempty"`
	NewPrice      float64   `json:"new_price"`
	ListingTitle  string    `json:"listing_title,omitempty"`
	ListingURL    string    `json:"listing_url,omitempty"`
	TriggeredRule string    `json:"triggered_rule"`
	URL           string    `json:"url,omitempty"`
}

// Listing is one candidate item extracted from a search-results page.
// Price is nil when the card carried no parsable price; such a listing can
// still match keyword filters but never a price-based trigger.
type Listing struct {
	Title string
	URL   string
	Price *float64
}

// Scanner is the contract for one watched target (a retailer page or a
// used-marketplace search).
type Scanner interface {
	// Scan fetches the target once and returns any alerts it produced.
	Scan() ([]Alert, error)

	// GetName returns the target's display name for logging
	GetName() string

	// GetTargetID returns the target's configured identifier
	GetTargetID() string
}

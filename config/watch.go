package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"pricesentry/pkg/errors"
)

// defaultDropPercent applies to retailers that set no drop_percent of their
// own when the watch file sets no global default either.
const defaultDropPercent = 10.0

// WatchConfig is the YAML watch file: the retailers and searches to scan,
// plus SMTP delivery and the global MSRP/threshold defaults.
type WatchConfig struct {
	DefaultDropPercent float64          `yaml:"default_drop_percent"`
	MSRP               float64          `yaml:"msrp"`
	SMTP               *SMTPConfig      `yaml:"smtp"`
	Retailers          []RetailerConfig `yaml:"retailers"`
	Searches           []SearchConfig   `yaml:"searches"`
}

// SMTPConfig configures alert email delivery. Leaving it out (or incomplete)
// degrades to log-only alerts.
type SMTPConfig struct {
	Host     string   `yaml:"host"`
	Port     int      `yaml:"port"`
	Username string   `yaml:"username"`
	Password string   `yaml:"password"`
	From     string   `yaml:"from"`
	To       []string `yaml:"to"`
}

// Complete reports whether enough SMTP fields are set to send mail.
func (s *SMTPConfig) Complete() bool {
	return s != nil && s.Host != "" && s.From != "" && len(s.To) > 0
}

// RetailerConfig is one tracked product page.
type RetailerConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	URL  string `yaml:"url"`

	// Selector/Attr and PriceRegex feed the extraction fallback chain.
	Selector   string `yaml:"selector"`
	Attr       string `yaml:"attr"`
	PriceRegex string `yaml:"price_regex"`

	// DropPercent overrides default_drop_percent for this retailer.
	DropPercent float64 `yaml:"drop_percent"`

	// Baseline seeds the comparison price when the state store has none yet.
	Baseline float64 `yaml:"baseline"`
}

// SearchSelectors locate the listing cards and their fields on a
// search-results page.
type SearchSelectors struct {
	Container string `yaml:"container"`
	Title     string `yaml:"title"`
	Price     string `yaml:"price"`
	Link      string `yaml:"link"`
}

// SearchConfig is one used-marketplace search page.
type SearchConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	URL  string `yaml:"url"`

	Selectors SearchSelectors `yaml:"selectors"`

	IncludeKeywords []string `yaml:"include_keywords"`
	ExcludeKeywords []string `yaml:"exclude_keywords"`

	// MSRP overrides the global msrp for the percent trigger.
	MSRP                  float64 `yaml:"msrp"`
	AlertBelow            float64 `yaml:"alert_below"`
	AlertPercentBelowMSRP float64 `yaml:"alert_percent_below_msrp"`
}

// LoadWatchFile reads and decodes the YAML watch file, applying defaults.
func LoadWatchFile(path string) (*WatchConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfiguration(fmt.Sprintf("failed to read watch file %s", path), err)
	}

	var watch WatchConfig
	if err := yaml.Unmarshal(data, &watch); err != nil {
		return nil, errors.NewConfiguration(fmt.Sprintf("failed to parse watch file %s", path), err)
	}

	watch.applyDefaults()
	return &watch, nil
}

func (w *WatchConfig) applyDefaults() {
	if w.DefaultDropPercent <= 0 {
		w.DefaultDropPercent = defaultDropPercent
	}
	for i := range w.Retailers {
		if w.Retailers[i].ID == "" {
			w.Retailers[i].ID = w.Retailers[i].URL
		}
	}
	for i := range w.Searches {
		if w.Searches[i].ID == "" {
			w.Searches[i].ID = w.Searches[i].URL
		}
	}
}

// Validate fails fast on configuration shapes that could only surface as
// confusing behavior at scan time. It runs before any network activity.
func (w *WatchConfig) Validate() error {
	if len(w.Retailers) == 0 && len(w.Searches) == 0 {
		return errors.NewConfiguration("watch file declares no retailers and no searches", nil)
	}

	ids := make(map[string]bool)

	for _, r := range w.Retailers {
		if r.URL == "" {
			return errors.NewValidation(r.ID, "retailer url is required")
		}
		if ids[r.ID] {
			return errors.NewValidation(r.ID, "duplicate target id")
		}
		ids[r.ID] = true

		if r.PriceRegex != "" {
			re, err := regexp.Compile(r.PriceRegex)
			if err != nil {
				return errors.NewConfiguration(fmt.Sprintf("retailer %s: invalid price_regex", r.ID), err)
			}
			if re.NumSubexp() != 1 {
				return errors.NewValidation(r.ID, "price_regex must have exactly one capture group")
			}
		}
		if r.DropPercent < 0 {
			return errors.NewValidation(r.ID, "drop_percent must not be negative")
		}
	}

	for _, s := range w.Searches {
		if s.URL == "" {
			return errors.NewValidation(s.ID, "search url is required")
		}
		if ids[s.ID] {
			return errors.NewValidation(s.ID, "duplicate target id")
		}
		ids[s.ID] = true

		if s.Selectors.Container == "" || s.Selectors.Title == "" || s.Selectors.Link == "" {
			return errors.NewValidation(s.ID, "search selectors require container, title and link")
		}
		if s.AlertBelow <= 0 && s.AlertPercentBelowMSRP <= 0 {
			return errors.NewValidation(s.ID, "at least one of alert_below or alert_percent_below_msrp must be set")
		}
		if s.AlertPercentBelowMSRP > 0 && s.MSRP <= 0 && w.MSRP <= 0 {
			return errors.NewValidation(s.ID, "alert_percent_below_msrp requires an msrp (search-level or global)")
		}
	}

	return nil
}

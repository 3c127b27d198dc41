package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"pricesentry/config"
	"pricesentry/internal/scan"
	"pricesentry/services/notifier"
	"pricesentry/services/state"
	"pricesentry/services/worker"
)

const retailerPageTemplate = `
<!DOCTYPE html>
<html>
<head><title>Acme Widget</title></head>
<body>
	<h1>Acme Widget</h1>
	<span id="price">%PRICE%</span>
</body>
</html>
`

const searchPageHTML = `
<!DOCTYPE html>
<html>
<body>
	<ul>
		<li class="result">
			<h3>Acme Widget, lightly used</h3>
			<span class="price">$45.00</span>
			<a href="/itm/1">view</a>
		</li>
		<li class="result">
			<h3>Acme Widget, for parts</h3>
			<span class="price">$15.00</span>
			<a href="/itm/2">view</a>
		</li>
	</ul>
</body>
</html>
`

// mutablePage serves HTML whose price can be swapped between scan passes.
type mutablePage struct {
	mu   sync.Mutex
	html string
}

func (p *mutablePage) setPrice(price string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.html = strings.Replace(retailerPageTemplate, "%PRICE%", price, 1)
}

func (p *mutablePage) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	defer p.mu.Unlock()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, p.html)
}

// recordingNotifier captures dispatched alerts.
type recordingNotifier struct {
	mu     sync.Mutex
	alerts []scan.Alert
}

var _ notifier.Notifier = (*recordingNotifier)(nil)

func (n *recordingNotifier) Notify(alert scan.Alert) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, alert)
	return nil
}

func (n *recordingNotifier) Close() error { return nil }

func (n *recordingNotifier) take() []scan.Alert {
	n.mu.Lock()
	defer n.mu.Unlock()
	alerts := n.alerts
	n.alerts = nil
	return alerts
}

// nopLogger discards target errors; the assertions below catch real failures.
type nopLogger struct{}

func (nopLogger) LogError(targetName string, err error)      {}
func (nopLogger) LogInfo(format string, args ...interface{}) {}

// TestIntegration drives the whole pipeline over local HTTP: a retailer page
// whose price drops between passes and a search page whose listings only
// alert once.
func TestIntegration(t *testing.T) {
	if os.Getenv("CI") != "" {
		t.Skip("Skipping integration test in CI environment")
	}

	retailPage := &mutablePage{}
	retailPage.setPrice("$100.00")
	retailServer := httptest.NewServer(retailPage)
	defer retailServer.Close()

	searchServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		io.WriteString(w, searchPageHTML)
	}))
	defer searchServer.Close()

	statePath := filepath.Join(t.TempDir(), "state.json")
	store, err := state.Load(statePath)
	assert.NoError(t, err)

	watch := &config.WatchConfig{
		DefaultDropPercent: 10,
		Retailers: []config.RetailerConfig{{
			ID:       "widget",
			Name:     "Acme Widget",
			URL:      retailServer.URL,
			Selector: "#price",
		}},
		Searches: []config.SearchConfig{{
			ID:   "widget-search",
			Name: "widget search",
			URL:  searchServer.URL,
			Selectors: config.SearchSelectors{
				Container: "li.result",
				Title:     "h3",
				Price:     "span.price",
				Link:      "a",
			},
			IncludeKeywords: []string{"widget"},
			ExcludeKeywords: []string{"for parts"},
			AlertBelow:      50,
		}},
	}
	assert.NoError(t, watch.Validate())

	scanners := scan.CreateScanners(watch, store, nil)
	assert.Len(t, scanners, 2)

	notified := &recordingNotifier{}
	w := worker.NewWorker(context.Background(), scanners, []notifier.Notifier{notified}, store, nopLogger{}, 0)

	// First pass: the retailer has no baseline yet, so only the qualifying
	// used listing alerts.
	w.RunOnce()
	alerts := notified.take()
	if assert.Len(t, alerts, 1) {
		assert.Equal(t, scan.AlertUsedListing, alerts[0].Kind)
		assert.Equal(t, "Acme Widget, lightly used", alerts[0].ListingTitle)
		assert.Equal(t, searchServer.URL+"/itm/1", alerts[0].ListingURL)
	}

	baseline, known := store.GetBaseline("widget")
	assert.True(t, known)
	assert.InDelta(t, 100.0, baseline, 1e-9)

	// State was checkpointed to disk during the pass.
	reloaded, err := state.Load(statePath)
	assert.NoError(t, err)
	assert.True(t, reloaded.HasSeen("widget-search", searchServer.URL+"/itm/1"))

	// Second pass: the retailer price fell 15%; the search page is unchanged
	// and its listing already alerted.
	retailPage.setPrice("$85.00")
	w.RunOnce()
	alerts = notified.take()
	if assert.Len(t, alerts, 1) {
		assert.Equal(t, scan.AlertPriceDrop, alerts[0].Kind)
		assert.Equal(t, "widget", alerts[0].TargetID)
		assert.InDelta(t, 100.0, alerts[0].OldPrice, 1e-9)
		assert.InDelta(t, 85.0, alerts[0].NewPrice, 1e-9)
	}

	// Third pass: nothing changed, nothing alerts.
	w.RunOnce()
	assert.Empty(t, notified.take())
}

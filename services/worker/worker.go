package worker

import (
	"context"
	"time"

	"pricesentry/helpers"
	"pricesentry/internal/scan"
	"pricesentry/logger"
	"pricesentry/services/notifier"
	"pricesentry/services/state"
)

// Worker runs scan passes over every configured target and dispatches the
// resulting alerts. Targets are scanned sequentially; one failing target
// never aborts the pass.
type Worker struct {
	ctx          context.Context
	scanners     []scan.Scanner
	notifiers    []notifier.Notifier
	store        *state.Store
	errLog       helpers.LoggerInterface
	log          *logger.Logger
	scanInterval time.Duration
}

// NewWorker creates a worker over the given scanners and notifiers.
// A zero scanInterval means Start performs a single pass and returns.
func NewWorker(ctx context.Context, scanners []scan.Scanner, notifiers []notifier.Notifier, store *state.Store, errLog helpers.LoggerInterface, scanInterval time.Duration) *Worker {
	return &Worker{
		ctx:          ctx,
		scanners:     scanners,
		notifiers:    notifiers,
		store:        store,
		errLog:       errLog,
		log:          logger.ForWorker(),
		scanInterval: scanInterval,
	}
}

// Start runs scan passes until the context is cancelled. With no interval
// configured it runs one pass and returns.
func (w *Worker) Start() {
	w.RunOnce()

	if w.scanInterval <= 0 {
		return
	}

	ticker := time.NewTicker(w.scanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			w.log.Info().Msg("Worker stopped")
			return
		case <-ticker.C:
			w.RunOnce()
		}
	}
}

// RunOnce performs one pass over every target. State is checkpointed after
// each target so a crash mid-pass loses at most one target's progress.
func (w *Worker) RunOnce() {
	w.log.Info().Int("targets", len(w.scanners)).Msg("Starting scan pass")
	start := time.Now()
	alerts := 0

	for _, s := range w.scanners {
		select {
		case <-w.ctx.Done():
			return
		default:
		}

		alerts += w.scanAndNotify(s)

		if err := w.store.Save(); err != nil {
			w.errLog.LogError(s.GetName(), err)
		}
	}

	w.log.Info().
		Int("alerts", alerts).
		Dur("elapsed", time.Since(start)).
		Msg("Scan pass complete")
}

// scanAndNotify scans one target and dispatches its alerts, keeping target
// and notifier failures contained. Returns the number of alerts raised.
func (w *Worker) scanAndNotify(s scan.Scanner) int {
	alerts, err := s.Scan()
	if err != nil {
		w.errLog.LogError(s.GetName(), err)
		return 0
	}

	for _, alert := range alerts {
		for _, n := range w.notifiers {
			if err := n.Notify(alert); err != nil {
				w.errLog.LogError(s.GetName(), err)
			}
		}
	}
	return len(alerts)
}

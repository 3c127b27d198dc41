package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"pricesentry/config"
	"pricesentry/helpers"
	"pricesentry/internal/scan"
	"pricesentry/logger"
	"pricesentry/services/cache"
	"pricesentry/services/notifier"
	"pricesentry/services/state"
	"pricesentry/services/worker"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load process configuration
	cfg := config.LoadConfig()

	// Load and validate the watch file
	watch, err := config.LoadWatchFile(cfg.WatchFile)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.WatchFile).Msg("Failed to load watch file")
	}
	if err := watch.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid watch file")
	}

	log.Info().
		Str("environment", cfg.Environment).
		Dur("scan_interval", cfg.ScanInterval).
		Int("retailers", len(watch.Retailers)).
		Int("searches", len(watch.Searches)).
		Msg("Starting application")

	// Load persisted baselines and seen listings
	store, err := state.Load(cfg.StateFile)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.StateFile).Msg("Failed to load state file")
	}
	store.MaxSeenPerSearch = cfg.MaxSeenPerSearch

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Rate-limit guard cache is optional
	var cacheSvc cache.CacheService
	if cfg.MemcacheAddr != "" {
		cacheSvc = cache.NewMemcacheService(cfg.MemcacheAddr)
		logger.Info("Connected to Memcache at %s", cfg.MemcacheAddr)
	}

	notifiers := buildNotifiers(ctx, cfg, watch)
	defer func() {
		for _, n := range notifiers {
			n.Close()
		}
	}()

	// Create scanners
	scanners := scan.CreateScanners(watch, store, cacheSvc)
	if len(scanners) == 0 {
		log.Fatal().Msg("No scanners were created")
	}

	log.Info().
		Int("scanner_count", len(scanners)).
		Msg("Created scanners")

	// Create and start worker
	w := worker.NewWorker(
		ctx,
		scanners,
		notifiers,
		store,
		helpers.NewLogger(cfg.ErrorLogFile),
		cfg.ScanInterval,
	)

	// Start worker in a goroutine
	workerDone := make(chan struct{})
	go func() {
		log.Info().Msg("Starting price worker")
		w.Start()
		close(workerDone)
	}()

	// Wait for shutdown signal or worker completion
	select {
	case sig := <-sigChan:
		log.Info().
			Str("signal", sig.String()).
			Msg("Received shutdown signal")
		cancel()
		<-workerDone
	case <-workerDone:
		log.Info().Msg("Worker exited normally")
	}

	// Persist state one last time
	if err := store.Save(); err != nil {
		log.Error().Err(err).Msg("Failed to save state on shutdown")
	}

	// Graceful shutdown
	log.Info().Msg("Shutting down gracefully...")
}

// buildNotifiers assembles the alert delivery channels. The log notifier is
// always present; email and the Redis stream join when configured.
func buildNotifiers(ctx context.Context, cfg *config.Config, watch *config.WatchConfig) []notifier.Notifier {
	notifiers := []notifier.Notifier{notifier.NewLogNotifier()}

	if watch.SMTP != nil {
		if watch.SMTP.Complete() {
			notifiers = append(notifiers, notifier.NewEmailNotifier(*watch.SMTP))
			logger.Info("Email notifier enabled (%s)", watch.SMTP.Host)
		} else {
			logger.Default.Warn().Msg("SMTP config incomplete, alerts will only be logged")
		}
	}

	if cfg.RedisAddr != "" {
		notifiers = append(notifiers, notifier.NewRedisNotifier(
			ctx,
			cfg.RedisAddr,
			cfg.RedisDB,
			cfg.RedisStream,
			cfg.RedisStreamMaxLength,
		))
		logger.Info("Connected to Redis at %s (DB: %d, Stream: %s)",
			cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream)
	}

	return notifiers
}

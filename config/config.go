package config

import (
	"os"
	"strconv"
	"time"
)

// Config represents the process configuration loaded from the environment
type Config struct {
	// Paths
	WatchFile string
	StateFile string

	// Memcache configuration (rate-limit guard; empty disables it)
	MemcacheAddr string

	// Redis configuration (alert stream fan-out; empty disables it)
	RedisAddr            string
	RedisDB              int
	RedisStream          string
	RedisStreamMaxLength int

	// Scan configuration
	ScanInterval     time.Duration
	MaxSeenPerSearch int

	// Error log file used by the worker's file logger
	ErrorLogFile string

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() *Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	redisStreamMaxLength, _ := strconv.Atoi(getEnv("REDIS_STREAM_MAXLEN", "512"))
	scanInterval, _ := strconv.Atoi(getEnv("SCAN_INTERVAL_SECONDS", "0"))
	maxSeen, _ := strconv.Atoi(getEnv("MAX_SEEN_PER_SEARCH", "0"))

	return &Config{
		WatchFile:            getEnv("WATCH_FILE", "./config.yaml"),
		StateFile:            getEnv("STATE_FILE", "./prices_state.json"),
		MemcacheAddr:         getEnv("MEMCACHE_ADDR", ""),
		RedisAddr:            getEnv("REDIS_ADDR", ""),
		RedisDB:              redisDB,
		RedisStream:          getEnv("REDIS_STREAM", "price_alerts"),
		RedisStreamMaxLength: redisStreamMaxLength,
		ScanInterval:         time.Duration(scanInterval) * time.Second,
		MaxSeenPerSearch:     maxSeen,
		ErrorLogFile:         getEnv("ERROR_LOG_FILE", "./error.log"),
		Environment:          getEnv("PRICESENTRY_ENVIRONMENT", "development"),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

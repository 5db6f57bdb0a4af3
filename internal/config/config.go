// Package config loads this engine's settings from the environment.
// Only SOLANA_RPC_URL is hard-required; every other setting (data
// directory, concurrency, rate limits, the entry stream address) has
// a documented default, since an arbitrage scan is meant to run out
// of the box against a single RPC endpoint.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds every tunable this engine reads from the environment.
type Config struct {
	// Chain RPC
	SolanaRPCURL string
	MaxRetries   int
	RetryBackoff time.Duration
	HTTPTimeout  time.Duration

	// Graph / bootstrap
	DataDir          string
	CycleMaxDepth    int
	ChunkConcurrency int
	BootstrapPageCap int
	BootstrapRate    float64

	// Entry stream
	EntryStreamAddr string
}

var required = []string{"SOLANA_RPC_URL"}

// Load reads configuration from the environment, panicking with the
// complete list of missing required variables if SOLANA_RPC_URL is unset.
func Load() *Config {
	validateRequiredEnvVars()

	return &Config{
		SolanaRPCURL: mustEnv("SOLANA_RPC_URL"),
		MaxRetries:   intOrDefault("MAX_RETRIES", 3),
		RetryBackoff: durationOrDefault("RETRY_BACKOFF", 500*time.Millisecond),
		HTTPTimeout:  durationOrDefault("HTTP_TIMEOUT", 15*time.Second),

		DataDir:          envOrDefault("DATA_DIR", "./cached-blockchain-data"),
		CycleMaxDepth:    intOrDefault("CYCLE_MAX_DEPTH", 4),
		ChunkConcurrency: intOrDefault("CHUNK_CONCURRENCY", 8),
		BootstrapPageCap: intOrDefault("BOOTSTRAP_PAGE_CAP", 5),
		BootstrapRate:    floatOrDefault("BOOTSTRAP_RATE_PER_SEC", 5),

		EntryStreamAddr: envOrDefault("ENTRY_STREAM_ADDR", "tcp://127.0.0.1:50051"),
	}
}

// EntryStreamDialAddr strips the tcp:// scheme prefix EntryStreamAddr
// carries for readability, leaving a bare host:port for net.Dial.
func (c *Config) EntryStreamDialAddr() string {
	return strings.TrimPrefix(c.EntryStreamAddr, "tcp://")
}

// Validate is a no-op: every field is either mustEnv-driven or
// defaulted at load time, so a *Config is always internally consistent.
func (c *Config) Validate() error {
	return nil
}

// validateRequiredEnvVars panics with the complete list of missing
// required env vars, rather than failing on the first one encountered.
func validateRequiredEnvVars() {
	var missing []string
	for _, key := range required {
		if strings.TrimSpace(os.Getenv(key)) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		panic(fmt.Sprintf(
			"missing required environment variables:\n  %s\n\nPlease set all required variables in your .env file.",
			strings.Join(missing, "\n  "),
		))
	}
}

func mustEnv(key string) string {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		panic(fmt.Sprintf("missing required environment variable: %s", key))
	}
	return val
}

func envOrDefault(key, fallback string) string {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	return val
}

func intOrDefault(key string, fallback int) int {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		panic(fmt.Sprintf("invalid integer for %s: %v (got: %q)", key, err, val))
	}
	return intVal
}

func floatOrDefault(key string, fallback float64) float64 {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	floatVal, err := strconv.ParseFloat(val, 64)
	if err != nil {
		panic(fmt.Sprintf("invalid number for %s: %v (got: %q)", key, err, val))
	}
	return floatVal
}

func durationOrDefault(key string, fallback time.Duration) time.Duration {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	durationVal, err := time.ParseDuration(val)
	if err != nil {
		panic(fmt.Sprintf("invalid duration for %s: %v (got: %q). Examples: 30s, 5m, 1h", key, err, val))
	}
	return durationVal
}

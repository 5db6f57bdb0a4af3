// Package bootstrap drives the per-DEX pool listing endpoints,
// validates each returned pool against pooldata.PoolInfo's
// constraints, and streams accepted records into the per-DEX JSON
// files internal/graph.BuildGraph later reads.
//
// HTTP plumbing is plain net/http + encoding/json with explicit
// timeouts and no auto-retry on the read path: a failed fetch ends
// that ingestor with an error, and the pools it already wrote stay in
// its file as an acceptable partial result.
package bootstrap

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Config shares tuning knobs across all three ingestors.
type Config struct {
	DataDir     string
	PageCap     int
	HTTPTimeout time.Duration
	RatePerSec  float64
	Logger      *logrus.Logger
}

func (c Config) withDefaults() Config {
	if c.PageCap <= 0 {
		c.PageCap = 1
	}
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = 15 * time.Second
	}
	if c.RatePerSec <= 0 {
		c.RatePerSec = 5
	}
	if c.Logger == nil {
		c.Logger = logrus.New()
	}
	return c
}

func newHTTPClient(cfg Config) *http.Client {
	return &http.Client{Timeout: cfg.HTTPTimeout}
}

func newLimiter(cfg Config) *rate.Limiter {
	return rate.NewLimiter(rate.Limit(cfg.RatePerSec), 1)
}

// fetchJSON paces the request through limiter, issues a GET, and
// decodes the JSON body into out.
func fetchJSON(ctx context.Context, client *http.Client, limiter *rate.Limiter, url string, out interface{}) error {
	if err := limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	req.Header.Set("accept", "application/json")

	res, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("%w: %s: http %d", ErrFetchFailed, url, res.StatusCode)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrFetchFailed, url, err)
	}
	return nil
}

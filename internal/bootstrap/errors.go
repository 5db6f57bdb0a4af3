package bootstrap

import "errors"

var (
	// ErrFetchFailed wraps an upstream HTTP or decode failure for one
	// DEX's pool listing.
	ErrFetchFailed = errors.New("bootstrap: fetch failed")
	// ErrWriteFailed wraps a failure writing the per-DEX pool file.
	ErrWriteFailed = errors.New("bootstrap: write failed")
)

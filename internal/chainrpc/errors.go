package chainrpc

import "errors"

var (
	// ErrBatchTooLarge means more addresses were passed to
	// GetMultipleAccounts than a single getMultipleAccounts call
	// supports (MaxAccountsPerCall).
	ErrBatchTooLarge = errors.New("account batch exceeds the per-call limit")
	// ErrFetchFailed wraps the underlying RPC error after retries are
	// exhausted.
	ErrFetchFailed = errors.New("chain rpc fetch failed")
)

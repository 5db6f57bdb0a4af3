// Package chainrpc wraps github.com/gagliardetto/solana-go/rpc's
// getMultipleAccounts call with a retry/backoff loop, so the
// orchestrator's chunked account refresh tolerates transient RPC
// failures without hand-rolling the JSON-RPC envelope solana-go/rpc
// already exercises correctly (account-data base64 decoding,
// commitment levels, etc).
package chainrpc

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/sirupsen/logrus"
)

// MaxAccountsPerCall is the largest batch a single getMultipleAccounts
// call accepts.
const MaxAccountsPerCall = 100

// AccountInfo is the simplified account shape the rest of the module
// consumes, decoupled from solana-go/rpc's own response envelope.
type AccountInfo struct {
	Address solana.PublicKey
	Owner   solana.PublicKey
	Data    []byte
}

// Config configures a Client.
type Config struct {
	Endpoint     string
	MaxRetries   int
	RetryBackoff time.Duration
	Logger       *logrus.Logger
}

// Client fetches on-chain account state with retry.
type Client struct {
	rpc          *solanarpc.Client
	maxRetries   int
	retryBackoff time.Duration
	log          *logrus.Logger
}

// New builds a Client against cfg.Endpoint.
func New(cfg Config) *Client {
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	return &Client{
		rpc:          solanarpc.New(cfg.Endpoint),
		maxRetries:   cfg.MaxRetries,
		retryBackoff: cfg.RetryBackoff,
		log:          cfg.Logger,
	}
}

// GetMultipleAccounts fetches account info for up to
// MaxAccountsPerCall addresses in one round trip, retrying transient
// failures with exponential backoff. Addresses with no account on
// chain are omitted from the result rather than erroring.
func (c *Client) GetMultipleAccounts(ctx context.Context, addresses []solana.PublicKey) ([]AccountInfo, error) {
	if len(addresses) == 0 {
		return nil, nil
	}
	if len(addresses) > MaxAccountsPerCall {
		return nil, fmt.Errorf("%w: %d addresses exceeds the %d-address batch limit", ErrBatchTooLarge, len(addresses), MaxAccountsPerCall)
	}

	var result *solanarpc.GetMultipleAccountsResult
	var lastErr error
	backoff := c.retryBackoff

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.log.WithFields(logrus.Fields{
				"attempt": attempt,
				"backoff": backoff,
			}).Debug("retrying getMultipleAccounts")

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		res, err := c.rpc.GetMultipleAccountsWithOpts(ctx, addresses, &solanarpc.GetMultipleAccountsOpts{
			Encoding: solanarpc.EncodingBase64,
		})
		if err != nil {
			lastErr = err
			continue
		}
		result = res
		lastErr = nil
		break
	}
	if lastErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, lastErr)
	}

	infos := make([]AccountInfo, 0, len(addresses))
	for i, value := range result.Value {
		if value == nil {
			continue
		}
		infos = append(infos, AccountInfo{
			Address: addresses[i],
			Owner:   value.Owner,
			Data:    value.Data.GetBinary(),
		})
	}
	return infos, nil
}

// Chunk splits addresses into batches no larger than
// MaxAccountsPerCall, the unit the orchestrator fans RPC calls out
// over.
func Chunk(addresses []solana.PublicKey) [][]solana.PublicKey {
	if len(addresses) == 0 {
		return nil
	}
	chunks := make([][]solana.PublicKey, 0, (len(addresses)+MaxAccountsPerCall-1)/MaxAccountsPerCall)
	for i := 0; i < len(addresses); i += MaxAccountsPerCall {
		end := i + MaxAccountsPerCall
		if end > len(addresses) {
			end = len(addresses)
		}
		chunks = append(chunks, addresses[i:end])
	}
	return chunks
}

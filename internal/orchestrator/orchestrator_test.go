package orchestrator

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devraj-iyer/arb-graph-engine/internal/chainrpc"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

// fakeFetcher is a no-op AccountFetcher so tests exercise the
// build/enumerate/refresh/score pipeline without dialing a real RPC
// endpoint.
type fakeFetcher struct {
	infos []chainrpc.AccountInfo
	err   error
}

func (f fakeFetcher) GetMultipleAccounts(ctx context.Context, addresses []solana.PublicKey) ([]chainrpc.AccountInfo, error) {
	return f.infos, f.err
}

const trianglePoolsJSON = `{"all_pools":[
  {
    "address": "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
    "fee_rate": 400,
    "pool_type": "Concentrated",
    "dex": "Orca",
    "tick_spacing": 64,
    "token_a": {"address": "So11111111111111111111111111111111111111112", "decimals": 9},
    "token_b": {"address": "Czfq3xZZDmsdGdUyrNLtRhGc47cXcZtLG4crryfu44zE", "decimals": 6},
    "token_vault_a": "EUuUbDcafPrmVTD5M6qoJAoyyNbihBhugADAxRMn5he9",
    "token_vault_b": "2WLWEuKDgkDUccTpbwYp1GToYktiSB1cXvreHUwiSUVP",
    "config": "2LecshUwdy9xi7meFgHtFJQNSKk4KdTrcpvaB56dP2NQ"
  },
  {
    "address": "JUP6LkbZbjS1jKKwapdHNy74zcZ3tLUZoi5QNyVTaV4",
    "fee_rate": 400,
    "pool_type": "Concentrated",
    "dex": "Raydium",
    "tick_spacing": 64,
    "token_a": {"address": "Czfq3xZZDmsdGdUyrNLtRhGc47cXcZtLG4crryfu44zE", "decimals": 6},
    "token_b": {"address": "7eMnzvi48Nbz2yRaQrCWqfQ7awPNPfV3AboaejktyGMD", "decimals": 8},
    "token_vault_a": "CPMMoo8L3F4NbTegBCKVNunggL7H1ZpdTHKxQB5qKP1C",
    "token_vault_b": "CAMMCzo5YL8w4VFF8KVHrK22GGUsp5VTaW7grrKgrWqK",
    "config": "2LecshUwdy9xi7meFgHtFJQNSKk4KdTrcpvaB56dP2NQ"
  },
  {
    "address": "whirLbMiicVdio4qvUfM5KAg6Ct8VwpYzGff3uctyCc",
    "fee_rate": 400,
    "pool_type": "Concentrated",
    "dex": "MeteoraV3",
    "tick_spacing": 64,
    "token_a": {"address": "7eMnzvi48Nbz2yRaQrCWqfQ7awPNPfV3AboaejktyGMD", "decimals": 8},
    "token_b": {"address": "So11111111111111111111111111111111111111112", "decimals": 9},
    "token_vault_a": "cpamdpZCGKUy5JxQXB4dcpGPiikHawvSWAd6mEn1sGG",
    "token_vault_b": "Eo7WjKq67rjJQSZxS6z3YkapzY3eMj6Xy8X5EQVn5UaB",
    "config": "2LecshUwdy9xi7meFgHtFJQNSKk4KdTrcpvaB56dP2NQ"
  }
]}`

func TestRun_BuildsGraphAndEnumeratesCycles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pools.json"), []byte(trianglePoolsJSON), 0o644))

	cfg := Config{DataDir: dir, CycleMaxDepth: 4, Logger: testLogger()}
	result, err := Run(context.Background(), cfg, fakeFetcher{})
	require.NoError(t, err)

	assert.Equal(t, 3, len(result.Graph.Nodes))
	assert.Equal(t, 3, len(result.Graph.Edges))
	assert.GreaterOrEqual(t, result.CycleStats.Total, 1)
	assert.NotNil(t, result.Candidates)
}

func TestRun_EmptyDataDirReturnsErrNoCycles(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{DataDir: dir, Logger: testLogger()}
	_, err := Run(context.Background(), cfg, fakeFetcher{})
	assert.ErrorIs(t, err, ErrNoCycles)
}

func TestRefreshEdges_FetcherErrorIsLoggedNotPropagated(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pools.json"), []byte(trianglePoolsJSON), 0o644))

	cfg := Config{DataDir: dir, CycleMaxDepth: 4, Logger: testLogger()}
	_, err := Run(context.Background(), cfg, fakeFetcher{err: assert.AnError})
	require.NoError(t, err, "a failing RPC chunk must not fail the whole run")
}

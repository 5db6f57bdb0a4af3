package bootstrap

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/devraj-iyer/arb-graph-engine/internal/chainrpc"
	"github.com/devraj-iyer/arb-graph-engine/internal/pooldata"
)

// UpdateAll runs all three per-DEX ingestors concurrently and writes a
// deduplicated combined token list.
//
// Each ingestor runs independently via errgroup.Group with
// SetLimit(-1) (unbounded, matching the three-task fan-out); a
// failing ingestor's error is logged rather than propagated, so one
// DEX's outage doesn't prevent the other two from still refreshing
// their pool listings.
func UpdateAll(ctx context.Context, cfg Config, chain *chainrpc.Client) error {
	cfg = cfg.withDefaults()
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return err
	}

	// Each ingestor's tokens land in its own slice so the concurrent
	// goroutines below never share mutable state; they're merged into
	// one deduplicated set only after g.Wait() returns.
	var orcaTokens, raydiumTokens, meteoraTokens []pooldata.TokenInfo

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(-1)

	g.Go(func() error {
		tokens, err := FetchOrcaPools(gctx, cfg)
		if err != nil {
			cfg.Logger.WithError(err).Warn("bootstrap: orca ingestion failed")
			return nil
		}
		orcaTokens = tokens
		return nil
	})

	g.Go(func() error {
		tokens, err := FetchRaydiumPools(gctx, cfg, chain)
		if err != nil {
			cfg.Logger.WithError(err).Warn("bootstrap: raydium ingestion failed")
			return nil
		}
		raydiumTokens = tokens
		return nil
	})

	g.Go(func() error {
		tokens, err := FetchMeteoraPools(gctx, cfg)
		if err != nil {
			cfg.Logger.WithError(err).Warn("bootstrap: meteora ingestion failed")
			return nil
		}
		meteoraTokens = tokens
		return nil
	})

	_ = g.Wait() // per-ingestor failures are already logged and swallowed above

	allTokens := newTokenSet()
	for _, tokens := range [][]pooldata.TokenInfo{orcaTokens, raydiumTokens, meteoraTokens} {
		for _, t := range tokens {
			allTokens.Insert(t)
		}
	}

	return writeTokensFile(filepath.Join(cfg.DataDir, "tokens.json"), allTokens.Values())
}

func writeTokensFile(path string, tokens []pooldata.TokenInfo) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteString(`{"all_tokens":`); err != nil {
		return err
	}
	data, err := json.Marshal(tokens)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		return err
	}
	_, err = f.WriteString(`}`)
	return err
}

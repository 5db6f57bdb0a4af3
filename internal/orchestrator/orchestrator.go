// Package orchestrator drives the end-to-end run path: build the
// graph from the cached pool files, enumerate cycles once, refresh
// every edge's dynamic state from the chain in fixed-size chunks,
// then score cycles for arbitrage.
//
// The chunked-fetch/join concurrency model is built on
// golang.org/x/sync/errgroup, the same module family the bootstrap
// ingestors already use for request pacing.
package orchestrator

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/devraj-iyer/arb-graph-engine/internal/chainrpc"
	"github.com/devraj-iyer/arb-graph-engine/internal/decoders"
	"github.com/devraj-iyer/arb-graph-engine/internal/graph"
)

// AccountFetcher is the slice of *chainrpc.Client this package
// depends on. Accepting the interface rather than the concrete type
// lets tests substitute a fake instead of dialing a real RPC endpoint.
type AccountFetcher interface {
	GetMultipleAccounts(ctx context.Context, addresses []solana.PublicKey) ([]chainrpc.AccountInfo, error)
}

// Config tunes one orchestrator run.
type Config struct {
	DataDir          string
	CycleMaxDepth    int
	ChunkConcurrency int
	Logger           *logrus.Logger
}

func (c Config) withDefaults() Config {
	if c.CycleMaxDepth <= 0 {
		c.CycleMaxDepth = 4
	}
	if c.ChunkConcurrency <= 0 {
		c.ChunkConcurrency = 8
	}
	if c.Logger == nil {
		c.Logger = logrus.New()
	}
	return c
}

// Result is what one orchestrator run produces.
type Result struct {
	Graph      *graph.Graph
	CycleStats graph.CycleStats
	Candidates []graph.ArbitrageCandidate
}

// Run executes the full build -> enumerate -> refresh -> score
// sequence against the pool files in cfg.DataDir.
func Run(ctx context.Context, cfg Config, chain AccountFetcher) (Result, error) {
	cfg = cfg.withDefaults()

	g, err := graph.BuildGraph(cfg.Logger, cfg.DataDir)
	if err != nil {
		return Result{}, err
	}
	if len(g.Nodes) == 0 {
		return Result{}, ErrNoCycles
	}

	stats, err := g.BuildCycles(cfg.CycleMaxDepth)
	if err != nil {
		return Result{}, err
	}
	cfg.Logger.WithFields(logrus.Fields{
		"total":     stats.Total,
		"corrected": stats.Corrected,
	}).Info("orchestrator: cycles enumerated")

	if err := refreshEdges(ctx, cfg, g, chain); err != nil {
		return Result{}, err
	}

	candidates, err := g.ArbitrageCandidates()
	if err != nil {
		return Result{}, err
	}

	return Result{Graph: g, CycleStats: stats, Candidates: candidates}, nil
}

// refreshEdges fetches every edge's on-chain account in fixed-size
// chunks and applies the decoded state in place. A chunk whose RPC
// call fails is logged and skipped, as is any single account whose
// decode or update fails; a partial refresh is an acceptable result.
func refreshEdges(ctx context.Context, cfg Config, g *graph.Graph, chain AccountFetcher) error {
	addresses := make([]solana.PublicKey, len(g.Edges))
	for i, edge := range g.Edges {
		addresses[i] = edge.Address
	}

	chunks := chainrpc.Chunk(addresses)
	if len(chunks) == 0 {
		return nil
	}

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(cfg.ChunkConcurrency)

	for _, chunk := range chunks {
		chunk := chunk
		eg.Go(func() error {
			infos, err := chain.GetMultipleAccounts(gctx, chunk)
			if err != nil {
				cfg.Logger.WithError(err).Warn("orchestrator: chunk refresh failed")
				return nil
			}
			for _, info := range infos {
				update, err := decoders.DecodeAccount(decoders.Account{Owner: info.Owner, Data: info.Data})
				if err != nil {
					cfg.Logger.WithError(err).WithField("address", info.Address).Warn("orchestrator: decode failed")
					continue
				}
				if err := g.UpdateEdge(info.Address, update); err != nil {
					cfg.Logger.WithError(err).WithField("address", info.Address).Warn("orchestrator: update failed")
				}
			}
			return nil
		})
	}

	return eg.Wait() // per-chunk failures are already logged and swallowed above
}

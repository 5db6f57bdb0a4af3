// Command arbgraph builds the pool graph from cached DEX listings,
// enumerates arbitrage cycles, refreshes their on-chain state, and
// prints the resulting candidates. Run with a "setup" argument first
// to (re)populate the pool cache from the Orca, Raydium and Meteora
// listing endpoints before scanning.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/devraj-iyer/arb-graph-engine/internal/bootstrap"
	"github.com/devraj-iyer/arb-graph-engine/internal/chainrpc"
	"github.com/devraj-iyer/arb-graph-engine/internal/config"
	"github.com/devraj-iyer/arb-graph-engine/internal/orchestrator"
)

func loadEnv(logger *logrus.Logger) {
	_, filename, _, _ := runtime.Caller(0)
	projectRoot := filepath.Join(filepath.Dir(filename), "../..")
	envPath := filepath.Join(projectRoot, ".env")

	if err := godotenv.Load(envPath); err != nil {
		logger.Warnf("no .env file found at %s, using system environment variables", envPath)
	} else {
		logger.Infof("loaded .env from %s", envPath)
	}
}

func hasArg(args []string, want string) bool {
	for _, a := range args {
		if a == want {
			return true
		}
	}
	return false
}

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	logger.SetLevel(logrus.InfoLevel)

	loadEnv(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutting down")
		cancel()
	}()

	chain := chainrpc.New(chainrpc.Config{
		Endpoint:     cfg.SolanaRPCURL,
		MaxRetries:   cfg.MaxRetries,
		RetryBackoff: cfg.RetryBackoff,
		Logger:       logger,
	})

	if hasArg(os.Args[1:], "setup") {
		logger.Info("arbgraph: running bootstrap ingestion")
		bootstrapCfg := bootstrap.Config{
			DataDir:     cfg.DataDir,
			PageCap:     cfg.BootstrapPageCap,
			HTTPTimeout: cfg.HTTPTimeout,
			RatePerSec:  cfg.BootstrapRate,
			Logger:      logger,
		}
		if err := bootstrap.UpdateAll(ctx, bootstrapCfg, chain); err != nil {
			logger.WithError(err).Fatal("bootstrap failed")
		}
	}

	result, err := orchestrator.Run(ctx, orchestrator.Config{
		DataDir:          cfg.DataDir,
		CycleMaxDepth:    cfg.CycleMaxDepth,
		ChunkConcurrency: cfg.ChunkConcurrency,
		Logger:           logger,
	}, chain)
	if err != nil {
		logger.WithError(err).Fatal("arbgraph run failed")
	}

	logger.WithFields(logrus.Fields{
		"nodes":      len(result.Graph.Nodes),
		"edges":      len(result.Graph.Edges),
		"cycles":     result.CycleStats.Total,
		"corrected":  result.CycleStats.Corrected,
		"candidates": len(result.Candidates),
	}).Info("arbgraph: scan complete")

	for _, candidate := range result.Candidates {
		if !candidate.Positive {
			continue
		}
		fmt.Printf("candidate: cycle=%v forward=%.6f backward=%.6f\n", candidate.Cycle, candidate.ForwardSum, candidate.BackwardSum)
	}

	os.Exit(0)
}

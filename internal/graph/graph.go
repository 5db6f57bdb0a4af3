// Package graph builds the token/pool graph arbitrage cycles are
// enumerated over, and derives the exchange rates used to score them.
package graph

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/sirupsen/logrus"

	"github.com/devraj-iyer/arb-graph-engine/internal/addressbook"
	"github.com/devraj-iyer/arb-graph-engine/internal/pooldata"
)

// Graph is the token/pool adjacency structure. Nodes and edges are
// stored by index rather than by pointer, so the graph can be
// serialized or copied without fixing up references.
type Graph struct {
	log *logrus.Logger

	wsolAddress solana.PublicKey
	wsolNode    int

	Nodes []Node
	Edges []Edge

	addressToNode map[solana.PublicKey]int
	addressToEdge map[solana.PublicKey]int
	adjacency     map[int]map[int]struct{} // node index -> set of edge indices

	AllCycles map[string][]int // canonical key -> edge-index cycle
}

// noWSOLNode marks a fresh graph that has not yet seen the WSOL mint.
const noWSOLNode = -1

// New returns an empty graph anchored at the well-known WSOL mint,
// ready for pool insertion.
func New(log *logrus.Logger) *Graph {
	return &Graph{
		log:           log,
		wsolAddress:   addressbook.WSOL,
		wsolNode:      noWSOLNode,
		addressToNode: make(map[solana.PublicKey]int),
		addressToEdge: make(map[solana.PublicKey]int),
		adjacency:     make(map[int]map[int]struct{}),
		AllCycles:     make(map[string][]int),
	}
}

// InsertNode adds a token to the graph, or returns the index of the
// matching node already present.
func (g *Graph) InsertNode(token pooldata.TokenInfo) (int, error) {
	if token.Address == nil {
		return 0, fmt.Errorf("%w: token address", ErrMissingField)
	}
	addr, err := addressbook.ParseAddress(*token.Address)
	if err != nil {
		return 0, err
	}
	if existing, ok := g.addressToNode[addr]; ok {
		return existing, nil
	}
	if token.Decimals == nil {
		return 0, fmt.Errorf("%w: token decimals", ErrMissingField)
	}

	name := "Empty Name"
	if token.Name != nil {
		name = *token.Name
	}
	symbol := "Empty Symbol"
	if token.Symbol != nil {
		symbol = *token.Symbol
	}

	index := len(g.Nodes)
	g.Nodes = append(g.Nodes, Node{
		Address:  addr,
		Decimals: *token.Decimals,
		Name:     name,
		Symbol:   symbol,
	})
	g.addressToNode[addr] = index
	g.adjacency[index] = make(map[int]struct{})

	if addr == g.wsolAddress {
		g.wsolNode = index
	}

	return index, nil
}

// InsertEdge adds a pool connecting two already-inserted nodes. The
// edge's vaults and "reversed" flag are oriented by node index so a
// cycle's direction can be reconstructed later. A pool whose address
// is already present returns the existing edge's index.
func (g *Graph) InsertEdge(pool pooldata.PoolInfo, node0, node1 int) (int, error) {
	if pool.Address == nil {
		return 0, fmt.Errorf("%w: pool address", ErrMissingField)
	}
	if pool.FeeRate == nil {
		return 0, fmt.Errorf("%w: fee_rate", ErrMissingField)
	}
	if pool.PoolType == nil {
		return 0, fmt.Errorf("%w: pool_type", ErrMissingField)
	}
	if pool.Dex == nil {
		return 0, fmt.Errorf("%w: dex", ErrMissingField)
	}
	if pool.TickSpacing == nil {
		return 0, fmt.Errorf("%w: tick_spacing", ErrMissingField)
	}
	if pool.TokenVaultA == nil {
		return 0, fmt.Errorf("%w: token_vault_a", ErrMissingField)
	}
	if pool.TokenVaultB == nil {
		return 0, fmt.Errorf("%w: token_vault_b", ErrMissingField)
	}
	if pool.Config == nil {
		return 0, fmt.Errorf("%w: config", ErrMissingField)
	}

	var vaultLowest, vaultHighest string
	var idxLowest, idxHighest int
	var reversed bool
	if node0 < node1 {
		vaultLowest, vaultHighest = *pool.TokenVaultA, *pool.TokenVaultB
		idxLowest, idxHighest = node0, node1
		reversed = false
	} else {
		vaultLowest, vaultHighest = *pool.TokenVaultB, *pool.TokenVaultA
		idxLowest, idxHighest = node1, node0
		reversed = true
	}

	address, err := addressbook.ParseAddress(*pool.Address)
	if err != nil {
		return 0, err
	}
	if existing, ok := g.addressToEdge[address]; ok {
		return existing, nil
	}
	vl, err := addressbook.ParseAddress(vaultLowest)
	if err != nil {
		return 0, err
	}
	vh, err := addressbook.ParseAddress(vaultHighest)
	if err != nil {
		return 0, err
	}
	config, err := addressbook.ParseAddress(*pool.Config)
	if err != nil {
		return 0, err
	}

	edge := Edge{
		Address:           address,
		FeeRate:           *pool.FeeRate,
		PoolType:          *pool.PoolType,
		Dex:               *pool.Dex,
		TickSpacing:       *pool.TickSpacing,
		TokenVaultLowest:  vl,
		TokenVaultHighest: vh,
		Config:            config,
		NodeLowest:        idxLowest,
		NodeHighest:       idxHighest,
		DecimalsLowest:    g.Nodes[idxLowest].Decimals,
		DecimalsHighest:   g.Nodes[idxHighest].Decimals,
		Reversed:          reversed,
	}

	index := len(g.Edges)
	g.Edges = append(g.Edges, edge)
	g.addressToEdge[address] = index

	g.adjacency[idxLowest][index] = struct{}{}
	g.adjacency[idxHighest][index] = struct{}{}

	return index, nil
}

// InsertPool inserts both of a pool's tokens and the pool itself.
func (g *Graph) InsertPool(pool pooldata.PoolInfo) error {
	if pool.TokenA == nil {
		return fmt.Errorf("%w: token_a", ErrMissingField)
	}
	if pool.TokenB == nil {
		return fmt.Errorf("%w: token_b", ErrMissingField)
	}

	node0, err := g.InsertNode(*pool.TokenA)
	if err != nil {
		return err
	}
	node1, err := g.InsertNode(*pool.TokenB)
	if err != nil {
		return err
	}

	_, err = g.InsertEdge(pool, node0, node1)
	return err
}

// UpdateEdge applies freshly decoded dynamic state to the edge at
// address.
func (g *Graph) UpdateEdge(address solana.PublicKey, update pooldata.PoolUpdate) error {
	index, ok := g.addressToEdge[address]
	if !ok {
		return fmt.Errorf("%w: %s", ErrEdgeNotFound, address)
	}
	tick := update.NewCurrentTickIndex
	g.Edges[index].Liquidity = update.NewLiquidity
	g.Edges[index].SqrtPrice = update.NewSqrtPrice
	g.Edges[index].CurrentTick = &tick
	return nil
}

// BuildGraph reads every *.json pool file under dataFolderPath (each
// shaped like pooldata.StoredPools) and inserts every pool it finds,
// logging and skipping records that fail validation rather than
// aborting the whole load.
func BuildGraph(log *logrus.Logger, dataFolderPath string) (*Graph, error) {
	entries, err := os.ReadDir(dataFolderPath)
	if err != nil {
		return nil, fmt.Errorf("read data folder: %w", err)
	}

	g := New(log)
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		path := filepath.Join(dataFolderPath, entry.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		var stored pooldata.StoredPools
		if err := json.Unmarshal(raw, &stored); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}

		for _, pool := range stored.AllPools {
			if err := pool.Validate(); err != nil {
				log.WithError(err).WithField("file", path).Warn("skipping invalid pool")
				continue
			}
			if err := g.InsertPool(pool); err != nil {
				log.WithError(err).WithField("file", path).Warn("failed to insert pool")
			}
		}
	}

	log.WithFields(logrus.Fields{
		"nodes": len(g.Nodes),
		"edges": len(g.Edges),
	}).Info("graph built")

	return g, nil
}

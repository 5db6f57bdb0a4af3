package graph

import (
	"fmt"

	"github.com/devraj-iyer/arb-graph-engine/internal/pooldata"
)

// MatchingPair names two pools on different DEXes that quote the same
// token pair, a precondition for a two-hop arbitrage loop between them.
type MatchingPair struct {
	OrcaAddress    string
	RaydiumAddress string
}

// FindMatchingPairs reports every (Orca pool, Raydium pool) combination
// that trades the same two tokens, regardless of which side of the
// pool each token sits on.
func FindMatchingPairs(orcaPools, raydiumPools []pooldata.PoolInfo) ([]MatchingPair, error) {
	orcaKeys, err := tokenPairKeys(orcaPools)
	if err != nil {
		return nil, fmt.Errorf("orca pools: %w", err)
	}
	raydiumKeys, err := tokenPairKeys(raydiumPools)
	if err != nil {
		return nil, fmt.Errorf("raydium pools: %w", err)
	}

	var matches []MatchingPair
	for oi, oKey := range orcaKeys {
		for ri, rKey := range raydiumKeys {
			if oKey == rKey {
				matches = append(matches, MatchingPair{
					OrcaAddress:    *orcaPools[oi].Address,
					RaydiumAddress: *raydiumPools[ri].Address,
				})
			}
		}
	}
	return matches, nil
}

// tokenPairKeys returns, for each pool, an order-independent identifier
// for its two tokens, built by sorting their addresses.
func tokenPairKeys(pools []pooldata.PoolInfo) ([]string, error) {
	keys := make([]string, len(pools))
	for i, pool := range pools {
		if pool.Address == nil {
			return nil, fmt.Errorf("%w: pool address at index %d", ErrMissingField, i)
		}
		if pool.TokenA == nil || pool.TokenA.Address == nil {
			return nil, fmt.Errorf("%w: token_a address for pool %s", ErrMissingField, *pool.Address)
		}
		if pool.TokenB == nil || pool.TokenB.Address == nil {
			return nil, fmt.Errorf("%w: token_b address for pool %s", ErrMissingField, *pool.Address)
		}

		a, b := *pool.TokenA.Address, *pool.TokenB.Address
		if a > b {
			a, b = b, a
		}
		keys[i] = a + "|" + b
	}
	return keys, nil
}

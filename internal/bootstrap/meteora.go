package bootstrap

import (
	"context"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/devraj-iyer/arb-graph-engine/internal/pooldata"
)

type meteoraPool struct {
	PoolAddress  *string `json:"pool_address,omitempty"`
	TokenAMint   *string `json:"token_a_mint,omitempty"`
	TokenBMint   *string `json:"token_b_mint,omitempty"`
	TokenAVault  *string `json:"token_a_vault,omitempty"`
	TokenBVault  *string `json:"token_b_vault,omitempty"`
	TokenASymbol *string `json:"token_a_symbol,omitempty"`
	TokenBSymbol *string `json:"token_b_symbol,omitempty"`
	PoolType     *string `json:"pool_type,omitempty"`
	BaseFee      *uint32 `json:"base_fee,omitempty"`
}

type meteoraPoolsResponse struct {
	Status uint16        `json:"status"`
	Pages  uint32        `json:"pages"`
	Data   []meteoraPool `json:"data"`
}

const meteoraBaseURL = "https://dammv2-api.meteora.ag/pools?order=desc&limit=100"

// meteoraBaseURLOverride lets tests point FetchMeteoraPools at an
// httptest server instead of the live endpoint.
var meteoraBaseURLOverride = meteoraBaseURL

// FetchMeteoraPools drives the Meteora v3 pools listing. Unlike Orca
// and Raydium, this endpoint documents no pagination cursor protocol,
// so this fetches a single page rather than looping on cfg.PageCap.
//
// Meteora's listing response never includes token decimals
// (meteoraPool has no decimals field), so every pool built from it
// fails pooldata.Validate() and is skipped with a warning: this is a
// known upstream gap, not a bug in the validator, and this does not
// fabricate a decimals value the API never supplies.
func FetchMeteoraPools(ctx context.Context, cfg Config) ([]pooldata.TokenInfo, error) {
	cfg = cfg.withDefaults()
	client := newHTTPClient(cfg)
	limiter := newLimiter(cfg)

	writer, err := newPoolFileWriter(filepath.Join(cfg.DataDir, "meteora_pools.json"))
	if err != nil {
		return nil, err
	}
	defer writer.Close()

	tokens := newTokenSet()

	var resp meteoraPoolsResponse
	if err := fetchJSON(ctx, client, limiter, meteoraBaseURLOverride, &resp); err != nil {
		return nil, err
	}

	for _, p := range resp.Data {
		tokenA := pooldata.TokenInfo{Address: p.TokenAMint, Symbol: p.TokenASymbol}
		tokenB := pooldata.TokenInfo{Address: p.TokenBMint, Symbol: p.TokenBSymbol}
		tokens.Insert(tokenA)
		tokens.Insert(tokenB)

		poolType := pooldata.PoolTypeConcentrated
		dex := pooldata.DexMeteoraV3
		pool := pooldata.PoolInfo{
			Address:     p.PoolAddress,
			FeeRate:     p.BaseFee,
			PoolType:    &poolType,
			Dex:         &dex,
			TokenA:      &tokenA,
			TokenB:      &tokenB,
			TokenVaultA: p.TokenAVault,
			TokenVaultB: p.TokenBVault,
		}

		if err := pool.Validate(); err != nil {
			cfg.Logger.WithError(err).WithField("address", deref(p.PoolAddress)).Warn("bootstrap: skipping invalid meteora pool")
			continue
		}
		if err := writer.WritePool(pool); err != nil {
			return nil, err
		}
	}

	cfg.Logger.WithFields(logrus.Fields{"pools": writer.poolCount, "tokens": len(tokens.seen)}).Info("bootstrap: meteora pools written")
	return tokens.Values(), nil
}

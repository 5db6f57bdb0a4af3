package bootstrap

import (
	"context"
	"net/url"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/devraj-iyer/arb-graph-engine/internal/pooldata"
)

type orcaToken struct {
	Address  *string `json:"address,omitempty"`
	Decimals *uint8  `json:"decimals,omitempty"`
	Name     *string `json:"name,omitempty"`
	Symbol   *string `json:"symbol,omitempty"`
}

func (t orcaToken) toPoolToken() pooldata.TokenInfo {
	return pooldata.TokenInfo{Address: t.Address, Decimals: t.Decimals, Name: t.Name, Symbol: t.Symbol}
}

type orcaPool struct {
	Address     *string   `json:"address,omitempty"`
	FeeRate     *uint32   `json:"feeRate,omitempty"`
	PoolType    *string   `json:"poolType,omitempty"`
	TickSpacing *uint64   `json:"tickSpacing,omitempty"`
	TokenA      orcaToken `json:"tokenA"`
	TokenB      orcaToken `json:"tokenB"`
	TokenVaultA *string   `json:"tokenVaultA,omitempty"`
	TokenVaultB *string   `json:"tokenVaultB,omitempty"`
	Config      *string   `json:"whirlpoolsConfig,omitempty"`
}

type orcaCursor struct {
	Next *string `json:"next,omitempty"`
}

type orcaMeta struct {
	Cursor orcaCursor `json:"cursor"`
}

type orcaPoolsResponse struct {
	Data []orcaPool `json:"data"`
	Meta orcaMeta   `json:"meta"`
}

const orcaBaseURL = "https://api.orca.so/v2/solana/pools"

// orcaBaseURLOverride lets tests point FetchOrcaPools at an httptest
// server instead of the live endpoint.
var orcaBaseURLOverride = orcaBaseURL

// FetchOrcaPools drives the Orca v2 pools endpoint, walking the
// `meta.cursor.next` cursor until it is empty or cfg.PageCap pages
// have been read, validating and streaming each pool into
// <dataDir>/orca_pools.json. Pools are all concentrated-liquidity.
func FetchOrcaPools(ctx context.Context, cfg Config) ([]pooldata.TokenInfo, error) {
	cfg = cfg.withDefaults()
	client := newHTTPClient(cfg)
	limiter := newLimiter(cfg)

	writer, err := newPoolFileWriter(filepath.Join(cfg.DataDir, "orca_pools.json"))
	if err != nil {
		return nil, err
	}
	defer writer.Close()

	tokens := newTokenSet()
	nextCursor := ""

	for page := 0; page < cfg.PageCap; page++ {
		reqURL := orcaBaseURLOverride + "?sortBy=volume24h&sortDirection=desc"
		if nextCursor != "" {
			reqURL += "&next=" + url.QueryEscape(nextCursor)
		}

		var resp orcaPoolsResponse
		if err := fetchJSON(ctx, client, limiter, reqURL, &resp); err != nil {
			return nil, err
		}

		for _, p := range resp.Data {
			tokenA := p.TokenA.toPoolToken()
			tokenB := p.TokenB.toPoolToken()
			tokens.Insert(tokenA)
			tokens.Insert(tokenB)

			poolType := pooldata.PoolTypeConcentrated
			dex := pooldata.DexOrca
			pool := pooldata.PoolInfo{
				Address:     p.Address,
				FeeRate:     p.FeeRate,
				PoolType:    &poolType,
				Dex:         &dex,
				TickSpacing: p.TickSpacing,
				TokenA:      &tokenA,
				TokenB:      &tokenB,
				TokenVaultA: p.TokenVaultA,
				TokenVaultB: p.TokenVaultB,
				Config:      p.Config,
			}

			if err := pool.Validate(); err != nil {
				cfg.Logger.WithError(err).WithField("address", deref(p.Address)).Warn("bootstrap: skipping invalid orca pool")
				continue
			}
			if err := writer.WritePool(pool); err != nil {
				return nil, err
			}
		}

		if resp.Meta.Cursor.Next == nil || *resp.Meta.Cursor.Next == "" {
			break
		}
		nextCursor = *resp.Meta.Cursor.Next
	}

	cfg.Logger.WithFields(logrus.Fields{"pools": writer.poolCount, "tokens": len(tokens.seen)}).Info("bootstrap: orca pools written")
	return tokens.Values(), nil
}

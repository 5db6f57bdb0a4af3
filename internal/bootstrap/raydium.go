package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/gagliardetto/solana-go"
	"github.com/sirupsen/logrus"

	"github.com/devraj-iyer/arb-graph-engine/internal/addressbook"
	"github.com/devraj-iyer/arb-graph-engine/internal/chainrpc"
	"github.com/devraj-iyer/arb-graph-engine/internal/decoders"
	"github.com/devraj-iyer/arb-graph-engine/internal/pooldata"
)

type raydiumToken struct {
	Address  *string `json:"address,omitempty"`
	Symbol   *string `json:"symbol,omitempty"`
	Name     *string `json:"name,omitempty"`
	Decimals *uint8  `json:"decimals,omitempty"`
}

func (t raydiumToken) toPoolToken() pooldata.TokenInfo {
	return pooldata.TokenInfo{Address: t.Address, Decimals: t.Decimals, Name: t.Name, Symbol: t.Symbol}
}

type raydiumConfig struct {
	ID           *string `json:"id,omitempty"`
	TickSpacing  *uint64 `json:"tickSpacing,omitempty"`
	TradeFeeRate *uint32 `json:"tradeFeeRate,omitempty"`
}

type raydiumPool struct {
	ID       *string        `json:"id,omitempty"`
	PoolType *string        `json:"type,omitempty"`
	TokenA   raydiumToken   `json:"mintA"`
	TokenB   raydiumToken   `json:"mintB"`
	Config   *raydiumConfig `json:"config,omitempty"`
}

type raydiumData struct {
	Data        []raydiumPool `json:"data"`
	HasNextPage bool          `json:"hasNextPage"`
}

type raydiumResponse struct {
	Data raydiumData `json:"data"`
}

const raydiumBaseURL = "https://api-v3.raydium.io/pools/info/list"

// FetchRaydiumPools drives the Raydium v3 pools listing, walking its
// page counter while hasNextPage is true, enriching each page with
// vault addresses via a single batched getMultipleAccounts call, and
// streaming accepted pools into <dataDir>/raydium_pools.json.
func FetchRaydiumPools(ctx context.Context, cfg Config, chain *chainrpc.Client) ([]pooldata.TokenInfo, error) {
	cfg = cfg.withDefaults()
	client := newHTTPClient(cfg)
	limiter := newLimiter(cfg)

	writer, err := newPoolFileWriter(filepath.Join(cfg.DataDir, "raydium_pools.json"))
	if err != nil {
		return nil, err
	}
	defer writer.Close()

	tokens := newTokenSet()

	for page := 1; page <= cfg.PageCap; page++ {
		reqURL := fmt.Sprintf("%s?poolType=all&poolSortField=volume7d&sortType=desc&pageSize=100&page=%d", raydiumBaseURL, page)

		var resp raydiumResponse
		if err := fetchJSON(ctx, client, limiter, reqURL, &resp); err != nil {
			return nil, err
		}
		pools := resp.Data.Data

		addresses := make([]solana.PublicKey, 0, len(pools))
		addressIndex := make([]int, 0, len(pools))
		for i, p := range pools {
			if p.ID == nil {
				continue
			}
			addr, err := addressbook.ParseAddress(*p.ID)
			if err != nil {
				continue
			}
			addresses = append(addresses, addr)
			addressIndex = append(addressIndex, i)
		}

		vaults := make(map[int][2]solana.PublicKey, len(addresses))
		globalOffset := 0
		for _, chunk := range chainrpc.Chunk(addresses) {
			infos, err := chain.GetMultipleAccounts(ctx, chunk)
			if err != nil {
				cfg.Logger.WithError(err).Warn("bootstrap: raydium vault batch failed, skipping chunk")
				globalOffset += len(chunk)
				continue
			}
			byAddress := make(map[solana.PublicKey]chainrpc.AccountInfo, len(infos))
			for _, info := range infos {
				byAddress[info.Address] = info
			}
			for offset, addr := range chunk {
				info, ok := byAddress[addr]
				if !ok {
					continue
				}
				vaultA, vaultB, err := decoders.ExtractRaydiumVaults(info.Data)
				if err != nil {
					continue
				}
				poolIdx := addressIndex[globalOffset+offset]
				vaults[poolIdx] = [2]solana.PublicKey{solana.PublicKey(vaultA), solana.PublicKey(vaultB)}
			}
			globalOffset += len(chunk)
		}

		for i, p := range pools {
			vaultPair, ok := vaults[i]
			if !ok {
				continue
			}
			tokenA := p.TokenA.toPoolToken()
			tokenB := p.TokenB.toPoolToken()
			tokens.Insert(tokenA)
			tokens.Insert(tokenB)

			dex := pooldata.DexRaydium
			var poolType *pooldata.PoolType
			if p.PoolType != nil {
				switch *p.PoolType {
				case "Concentrated":
					pt := pooldata.PoolTypeConcentrated
					poolType = &pt
				case "Standard":
					pt := pooldata.PoolTypeStandard
					poolType = &pt
				}
			}

			var feeRate *uint32
			var tickSpacing *uint64
			var configID *string
			if p.Config != nil {
				feeRate = p.Config.TradeFeeRate
				tickSpacing = p.Config.TickSpacing
				configID = p.Config.ID
			}

			vaultA := vaultPair[0].String()
			vaultB := vaultPair[1].String()
			pool := pooldata.PoolInfo{
				Address:     p.ID,
				FeeRate:     feeRate,
				PoolType:    poolType,
				Dex:         &dex,
				TickSpacing: tickSpacing,
				TokenA:      &tokenA,
				TokenB:      &tokenB,
				TokenVaultA: &vaultA,
				TokenVaultB: &vaultB,
				Config:      configID,
			}

			if err := pool.Validate(); err != nil {
				cfg.Logger.WithError(err).WithField("address", deref(p.ID)).Warn("bootstrap: skipping invalid raydium pool")
				continue
			}
			if err := writer.WritePool(pool); err != nil {
				return nil, err
			}
		}

		if !resp.Data.HasNextPage {
			break
		}
	}

	cfg.Logger.WithFields(logrus.Fields{"pools": writer.poolCount, "tokens": len(tokens.seen)}).Info("bootstrap: raydium pools written")
	return tokens.Values(), nil
}


// Package pooldata holds the canonical PoolInfo/TokenInfo records used
// by every ingestor, and the validator that rejects records missing
// fields the graph needs to participate in cycle enumeration.
//
// Optional upstream fields are modeled as pointers so a record
// missing a field can still round-trip through JSON and be caught by
// explicit validation rather than silently defaulting to a zero value.
package pooldata

import "github.com/holiman/uint256"

// PoolType is the pool's liquidity model.
type PoolType string

const (
	PoolTypeStandard      PoolType = "Standard"
	PoolTypeConcentrated  PoolType = "Concentrated"
)

// DexType identifies which DEX a pool belongs to.
type DexType string

const (
	DexOrca      DexType = "Orca"
	DexRaydium   DexType = "Raydium"
	DexMeteoraV2 DexType = "MeteoraV2"
	DexMeteoraV3 DexType = "MeteoraV3"
)

// TokenInfo is the upstream token record. All four fields may arrive
// absent; Address and Decimals are required to participate in the graph.
type TokenInfo struct {
	Address  *string `json:"address,omitempty"`
	Decimals *uint8  `json:"decimals,omitempty"`
	Name     *string `json:"name,omitempty"`
	Symbol   *string `json:"symbol,omitempty"`
}

// PoolInfo is the ingestion-form pool record, as written to and read
// from the per-DEX JSON files.
type PoolInfo struct {
	Address      *string   `json:"address,omitempty"`
	FeeRate      *uint32   `json:"fee_rate,omitempty"`
	PoolType     *PoolType `json:"pool_type,omitempty"`
	Dex          *DexType  `json:"dex,omitempty"`
	TickSpacing  *uint64   `json:"tick_spacing,omitempty"`
	TokenA       *TokenInfo `json:"token_a,omitempty"`
	TokenB       *TokenInfo `json:"token_b,omitempty"`
	TokenVaultA  *string   `json:"token_vault_a,omitempty"`
	TokenVaultB  *string   `json:"token_vault_b,omitempty"`
	Config       *string   `json:"config,omitempty"`
}

// StoredPools is the document shape of a <dex>_pools.json file:
// {"all_pools": [...]}.
type StoredPools struct {
	AllPools []PoolInfo `json:"all_pools"`
}

// PoolUpdate is the dynamic state produced by a binary decoder and
// applied to a graph edge. Sqrt price and liquidity are u128 values
// on-chain; they are carried as *uint256.Int (the same widened type
// the exchange-rate derivation needs for the squaring step) so no
// truncation happens between decode and use.
type PoolUpdate struct {
	NewSqrtPrice        *uint256.Int
	NewLiquidity        *uint256.Int
	NewCurrentTickIndex int32
}

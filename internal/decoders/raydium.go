package decoders

import (
	"fmt"

	"github.com/devraj-iyer/arb-graph-engine/internal/fixedpoint"
	"github.com/devraj-iyer/arb-graph-engine/internal/pooldata"
)

const (
	raydiumAccountLen  = 1544
	raydiumLiquidityLo = 237
	raydiumLiquidityHi = 253
	raydiumSqrtPriceLo = 253
	raydiumSqrtPriceHi = 269
	raydiumTickLo      = 269
	raydiumTickHi      = 273

	// RaydiumVaultALo/RaydiumVaultBLo extract the two vault addresses
	// from a Raydium pool account for bootstrap enrichment.
	RaydiumVaultALo = 137
	RaydiumVaultAHi = 169
	RaydiumVaultBLo = 169
	RaydiumVaultBHi = 201
)

var raydiumDiscriminator = [8]byte{247, 237, 227, 245, 215, 195, 222, 70}

// DecodeRaydiumAccount decodes a Raydium CLMM pool account blob.
func DecodeRaydiumAccount(data []byte) (pooldata.PoolUpdate, error) {
	if len(data) != raydiumAccountLen {
		return pooldata.PoolUpdate{}, fmt.Errorf("%w: raydium account: want %d bytes, got %d", ErrWrongLength, raydiumAccountLen, len(data))
	}

	var discriminator [8]byte
	copy(discriminator[:], data[0:8])
	if discriminator != raydiumDiscriminator {
		return pooldata.PoolUpdate{}, fmt.Errorf("%w: raydium account: got %v", ErrWrongDiscriminator, discriminator)
	}

	liquidity, err := fixedpoint.DecodeU128LE(data[raydiumLiquidityLo:raydiumLiquidityHi])
	if err != nil {
		return pooldata.PoolUpdate{}, err
	}
	sqrtPrice, err := fixedpoint.DecodeU128LE(data[raydiumSqrtPriceLo:raydiumSqrtPriceHi])
	if err != nil {
		return pooldata.PoolUpdate{}, err
	}
	tick, err := fixedpoint.DecodeI32LE(data[raydiumTickLo:raydiumTickHi])
	if err != nil {
		return pooldata.PoolUpdate{}, err
	}

	return pooldata.PoolUpdate{
		NewLiquidity:        liquidity,
		NewSqrtPrice:        sqrtPrice,
		NewCurrentTickIndex: tick,
	}, nil
}

// ExtractRaydiumVaults reads the two token-vault addresses out of a
// Raydium pool account, used by the bootstrap ingestor to backfill
// vaults the HTTP listing omits. The account must be exactly
// raydiumAccountLen bytes.
func ExtractRaydiumVaults(data []byte) (vaultA, vaultB [32]byte, err error) {
	if len(data) != raydiumAccountLen {
		return vaultA, vaultB, fmt.Errorf("%w: raydium account: want %d bytes, got %d", ErrWrongLength, raydiumAccountLen, len(data))
	}
	copy(vaultA[:], data[RaydiumVaultALo:RaydiumVaultAHi])
	copy(vaultB[:], data[RaydiumVaultBLo:RaydiumVaultBHi])
	return vaultA, vaultB, nil
}

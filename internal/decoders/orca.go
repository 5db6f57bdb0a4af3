package decoders

import (
	"fmt"

	"github.com/devraj-iyer/arb-graph-engine/internal/fixedpoint"
	"github.com/devraj-iyer/arb-graph-engine/internal/pooldata"
)

const (
	orcaAccountLen   = 653
	orcaLiquidityLo  = 49
	orcaLiquidityHi  = 65
	orcaSqrtPriceLo  = 65
	orcaSqrtPriceHi  = 81
	orcaTickLo       = 81
	orcaTickHi       = 85
)

var orcaDiscriminator = [8]byte{63, 149, 209, 12, 225, 128, 99, 9}

// DecodeOrcaAccount decodes a Whirlpool account blob.
func DecodeOrcaAccount(data []byte) (pooldata.PoolUpdate, error) {
	if len(data) != orcaAccountLen {
		return pooldata.PoolUpdate{}, fmt.Errorf("%w: orca account: want %d bytes, got %d", ErrWrongLength, orcaAccountLen, len(data))
	}

	var discriminator [8]byte
	copy(discriminator[:], data[0:8])
	if discriminator != orcaDiscriminator {
		return pooldata.PoolUpdate{}, fmt.Errorf("%w: orca account: got %v", ErrWrongDiscriminator, discriminator)
	}

	liquidity, err := fixedpoint.DecodeU128LE(data[orcaLiquidityLo:orcaLiquidityHi])
	if err != nil {
		return pooldata.PoolUpdate{}, err
	}
	sqrtPrice, err := fixedpoint.DecodeU128LE(data[orcaSqrtPriceLo:orcaSqrtPriceHi])
	if err != nil {
		return pooldata.PoolUpdate{}, err
	}
	tick, err := fixedpoint.DecodeI32LE(data[orcaTickLo:orcaTickHi])
	if err != nil {
		return pooldata.PoolUpdate{}, err
	}

	return pooldata.PoolUpdate{
		NewLiquidity:        liquidity,
		NewSqrtPrice:        sqrtPrice,
		NewCurrentTickIndex: tick,
	}, nil
}

package graph

import (
	"math"
	"math/big"

	"github.com/gagliardetto/solana-go"
	"github.com/holiman/uint256"

	"github.com/devraj-iyer/arb-graph-engine/internal/pooldata"
)

// mask128 isolates the low 128 bits of a 256-bit value.
var mask128 = func() *uint256.Int {
	m := new(uint256.Int).Lsh(uint256.NewInt(1), 128)
	return m.Sub(m, uint256.NewInt(1))
}()

// Edge is a pool connecting two tokens. Static fields mirror the
// ingested PoolInfo record; the dynamic fields (SqrtPrice, Liquidity,
// CurrentTick) arrive later via UpdateEdge once an account subscription
// delivers on-chain state.
type Edge struct {
	Address           solana.PublicKey
	FeeRate           uint32
	PoolType          pooldata.PoolType
	Dex               pooldata.DexType
	TickSpacing       uint64
	TokenVaultLowest  solana.PublicKey
	TokenVaultHighest solana.PublicKey
	Config            solana.PublicKey
	NodeLowest        int
	NodeHighest       int
	DecimalsLowest    uint8
	DecimalsHighest   uint8
	Reversed          bool

	SqrtPrice   *uint256.Int
	Liquidity   *uint256.Int
	CurrentTick *int32
}

// GetOtherNode returns the node index on the far side of the edge from
// thisToken, or false if thisToken isn't one of the edge's endpoints.
func (e *Edge) GetOtherNode(thisToken int) (int, bool) {
	switch thisToken {
	case e.NodeLowest:
		return e.NodeHighest, true
	case e.NodeHighest:
		return e.NodeLowest, true
	default:
		return 0, false
	}
}

// GetSwapDirection reports whether swapping with tokenIn as the input
// token runs in the edge's natural (non-reversed) direction.
func (e *Edge) GetSwapDirection(tokenIn int) (bool, bool) {
	switch tokenIn {
	case e.NodeLowest:
		return !e.Reversed, true
	case e.NodeHighest:
		return e.Reversed, true
	default:
		return false, false
	}
}

// GetExchangeRate returns the price of token-lowest in terms of
// token-highest (or its reciprocal, when direct asks for the opposite
// of the edge's natural orientation), from the pool's Q64.64 sqrt
// price. The squaring step is done in 256-bit arithmetic via
// holiman/uint256 so it never overflows the way a native uint128
// multiply would; the high/low halves are then recombined as a
// float64 separately to avoid a single-pass u128-to-f64 cast losing
// precision in the high bits.
func (e *Edge) GetExchangeRate(direct bool) (float64, error) {
	if e.SqrtPrice == nil {
		return 0, ErrNoPriceData
	}

	var decimalsDiff int
	if e.Reversed {
		decimalsDiff = int(e.DecimalsHighest) - int(e.DecimalsLowest)
	} else {
		decimalsDiff = int(e.DecimalsLowest) - int(e.DecimalsHighest)
	}
	denominator := math.Pow(10, float64(decimalsDiff))

	squared := new(uint256.Int).Mul(e.SqrtPrice, e.SqrtPrice)
	high := new(uint256.Int).Rsh(squared, 128)
	low := new(uint256.Int).And(squared, mask128)

	priceF64 := toFloat64(high) + toFloat64(low)/math.Pow(2, 128)

	exchangeRate := priceF64 * denominator

	if e.Reversed == direct {
		return 1.0 / exchangeRate, nil
	}
	return exchangeRate, nil
}

// GetLogExchangeRate is log10 of GetExchangeRate, the unit an
// arbitrage cycle's edges are summed in: summing logs turns the
// cycle's compounded rate product into a plain addition.
func (e *Edge) GetLogExchangeRate(direct bool) (float64, error) {
	rate, err := e.GetExchangeRate(direct)
	if err != nil {
		return 0, err
	}
	return math.Log10(rate), nil
}

func toFloat64(x *uint256.Int) float64 {
	f := new(big.Float).SetInt(x.ToBig())
	v, _ := f.Float64()
	return v
}

package classifier

import (
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/devraj-iyer/arb-graph-engine/internal/fixedpoint"
)

var (
	meteoraV3Swap               = [8]byte{248, 198, 158, 145, 225, 117, 135, 200}
	meteoraV3AddLiquidity       = [8]byte{181, 157, 89, 67, 143, 182, 52, 72}
	meteoraV3RemoveLiquidity    = [8]byte{80, 85, 209, 72, 24, 206, 177, 108}
	meteoraV3RemoveAllLiquidity = [8]byte{10, 51, 61, 35, 112, 105, 24, 85}
)

const (
	meteoraV3SwapAccountsLen   = 14
	meteoraV3AddLiqAccountsLen = 14
	meteoraV3RemoveAccountsLen = 15
)

// MeteoraV3Decoder decodes Meteora DAMM v2 instructions, the one DEX
// whose instruction layout is published in full.
type MeteoraV3Decoder struct{}

func (MeteoraV3Decoder) Decode(data []byte, accounts []uint16, accountKeys []solana.PublicKey) (DecodedInstruction, error) {
	if len(data) < 8 {
		return DecodedInstruction{}, fmt.Errorf("%w: instruction data shorter than a discriminator", ErrUnsupportedInstruction)
	}

	var discriminator [8]byte
	copy(discriminator[:], data[0:8])
	payload := data[8:]

	switch discriminator {
	case meteoraV3Swap:
		return decodeMeteoraV3Swap(payload, accounts, accountKeys)
	case meteoraV3AddLiquidity:
		return decodeMeteoraV3AddLiquidity(payload, accounts, accountKeys)
	case meteoraV3RemoveLiquidity, meteoraV3RemoveAllLiquidity:
		return decodeMeteoraV3RemoveLiquidity(payload, accounts, accountKeys)
	default:
		return DecodedInstruction{}, fmt.Errorf("%w: unrecognized meteora v3 discriminator %v", ErrUnsupportedInstruction, discriminator)
	}
}

func decodeMeteoraV3Swap(payload []byte, accounts []uint16, keys []solana.PublicKey) (DecodedInstruction, error) {
	if len(accounts) != meteoraV3SwapAccountsLen {
		return DecodedInstruction{}, fmt.Errorf("%w: swap: want %d accounts, got %d", ErrWrongAccountCount, meteoraV3SwapAccountsLen, len(accounts))
	}
	if len(payload) < 16 {
		return DecodedInstruction{}, fmt.Errorf("%w: swap payload too short", ErrUnsupportedInstruction)
	}

	amountIn := binary.LittleEndian.Uint64(payload[0:8])
	minimumOut := binary.LittleEndian.Uint64(payload[8:16])

	return DecodedInstruction{
		PoolAddress:      keys[accounts[1]],
		TokenAVault:      keys[accounts[4]],
		TokenBVault:      keys[accounts[5]],
		TokenAAddress:    keys[accounts[6]],
		TokenBAddress:    keys[accounts[7]],
		Operation:        OperationSwap,
		ChangeLiquidityA: amountIn,
		ChangeLiquidityB: minimumOut,
	}, nil
}

func decodeMeteoraV3AddLiquidity(payload []byte, accounts []uint16, keys []solana.PublicKey) (DecodedInstruction, error) {
	if len(accounts) != meteoraV3AddLiqAccountsLen {
		return DecodedInstruction{}, fmt.Errorf("%w: add_liquidity: want %d accounts, got %d", ErrWrongAccountCount, meteoraV3AddLiqAccountsLen, len(accounts))
	}
	if len(payload) < 32 {
		return DecodedInstruction{}, fmt.Errorf("%w: add_liquidity payload too short", ErrUnsupportedInstruction)
	}

	// liquidity_delta is read to keep the byte offsets aligned with
	// the wire layout; it isn't part of DecodedInstruction's output.
	if _, err := fixedpoint.DecodeU128LE(payload[0:16]); err != nil {
		return DecodedInstruction{}, err
	}
	tokenAAmount := binary.LittleEndian.Uint64(payload[16:24])
	tokenBAmount := binary.LittleEndian.Uint64(payload[24:32])

	return DecodedInstruction{
		PoolAddress:      keys[accounts[0]],
		TokenAVault:      keys[accounts[4]],
		TokenBVault:      keys[accounts[5]],
		TokenAAddress:    keys[accounts[6]],
		TokenBAddress:    keys[accounts[7]],
		Operation:        OperationAddLiquidity,
		ChangeLiquidityA: tokenAAmount,
		ChangeLiquidityB: tokenBAmount,
	}, nil
}

func decodeMeteoraV3RemoveLiquidity(payload []byte, accounts []uint16, keys []solana.PublicKey) (DecodedInstruction, error) {
	if len(accounts) != meteoraV3RemoveAccountsLen {
		return DecodedInstruction{}, fmt.Errorf("%w: remove_liquidity: want %d accounts, got %d", ErrWrongAccountCount, meteoraV3RemoveAccountsLen, len(accounts))
	}
	if len(payload) < 16 {
		return DecodedInstruction{}, fmt.Errorf("%w: remove_liquidity payload too short", ErrUnsupportedInstruction)
	}

	tokenAAmount := binary.LittleEndian.Uint64(payload[0:8])
	tokenBAmount := binary.LittleEndian.Uint64(payload[8:16])

	return DecodedInstruction{
		PoolAddress:      keys[accounts[1]],
		TokenAVault:      keys[accounts[5]],
		TokenBVault:      keys[accounts[6]],
		TokenAAddress:    keys[accounts[7]],
		TokenBAddress:    keys[accounts[8]],
		Operation:        OperationRemoveLiquidity,
		ChangeLiquidityA: tokenAAmount,
		ChangeLiquidityB: tokenBAmount,
	}, nil
}

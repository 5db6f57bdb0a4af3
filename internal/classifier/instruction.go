package classifier

import "github.com/gagliardetto/solana-go"

// OperationType is the kind of liquidity-changing operation an
// instruction performs.
type OperationType string

const (
	OperationSwap            OperationType = "swap"
	OperationAddLiquidity    OperationType = "add_liquidity"
	OperationRemoveLiquidity OperationType = "remove_liquidity"
)

// DecodedInstruction is the uniform shape every per-DEX decoder
// normalizes its instructions into, regardless of the source
// program's own account/byte layout.
type DecodedInstruction struct {
	PoolAddress   solana.PublicKey
	TokenAAddress solana.PublicKey
	TokenBAddress solana.PublicKey
	TokenAVault   solana.PublicKey
	TokenBVault   solana.PublicKey
	Operation     OperationType

	// ChangeLiquidityA/B are the instruction's two payload amounts:
	// (amount_in, minimum_amount_out) for a swap, or (token_a_amount,
	// token_b_amount) for a liquidity change.
	ChangeLiquidityA uint64
	ChangeLiquidityB uint64
}

// InstructionDecoder normalizes one DEX program's compiled
// instructions into DecodedInstruction. Implementations read their own
// 8-byte leading discriminator out of data and dispatch internally.
type InstructionDecoder interface {
	Decode(data []byte, accounts []uint16, accountKeys []solana.PublicKey) (DecodedInstruction, error)
}

// registry maps a recognized program to the decoder that understands
// its instruction layout.
var registry = map[Program]InstructionDecoder{
	ProgramMeteoraV3: MeteoraV3Decoder{},
	ProgramRaydiumV2: unimplementedDecoder{dex: "raydium_v2"},
	ProgramRaydiumV3: unimplementedDecoder{dex: "raydium_v3"},
	ProgramOrcaV3:    unimplementedDecoder{dex: "orca_v3"},
	ProgramMeteoraV2: unimplementedDecoder{dex: "meteora_v2"},
}

// DecodeInstructions decodes every compiled instruction in tx whose
// program_id_index equals match.ProgramIndex, using the decoder
// registered for match.Program.
func DecodeInstructions(tx *solana.Transaction, match Match) ([]DecodedInstruction, error) {
	decoder, ok := registry[match.Program]
	if !ok {
		return nil, ErrUnsupportedInstruction
	}

	keys := tx.Message.AccountKeys
	var decoded []DecodedInstruction
	for _, ix := range tx.Message.Instructions {
		if int(ix.ProgramIDIndex) != match.ProgramIndex {
			continue
		}
		instr, err := decoder.Decode([]byte(ix.Data), ix.Accounts, keys)
		if err != nil {
			return nil, err
		}
		decoded = append(decoded, instr)
	}

	if len(decoded) == 0 {
		return nil, ErrUnsupportedInstruction
	}
	return decoded, nil
}

// unimplementedDecoder satisfies InstructionDecoder for DEXes whose
// instruction layout isn't available yet.
type unimplementedDecoder struct {
	dex string
}

func (d unimplementedDecoder) Decode([]byte, []uint16, []solana.PublicKey) (DecodedInstruction, error) {
	// TODO: obtain the discriminator/offset table for this DEX and
	// implement Decode properly.
	return DecodedInstruction{}, ErrUnsupportedInstruction
}

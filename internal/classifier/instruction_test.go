package classifier

import (
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devraj-iyer/arb-graph-engine/internal/addressbook"
)

var testAccountKeyStrings = []string{
	addressbook.WSOLAddress,                              // 0
	"EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",        // 1 - stand-in pool
	addressbook.JupiterProgramID,                         // 2
	addressbook.RaydiumV2ProgramID,                       // 3
	addressbook.RaydiumV3ProgramID,                       // 4 - stand-in vault a
	addressbook.OrcaV3ProgramID,                          // 5 - stand-in vault b
	addressbook.MeteoraV3ProgramID,                       // 6 - program + stand-in token a
	addressbook.MeteoraV2ProgramID,                       // 7 - stand-in token b
	"Czfq3xZZDmsdGdUyrNLtRhGc47cXcZtLG4crryfu44zE",        // 8
	"7eMnzvi48Nbz2yRaQrCWqfQ7awPNPfV3AboaejktyGMD",        // 9
	"EUuUbDcafPrmVTD5M6qoJAoyyNbihBhugADAxRMn5he9",        // 10
	"2WLWEuKDgkDUccTpbwYp1GToYktiSB1cXvreHUwiSUVP",        // 11
	"2LecshUwdy9xi7meFgHtFJQNSKk4KdTrcpvaB56dP2NQ",        // 12
	"DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263",        // 13
}

const meteoraProgramKeyIndex = 6

func testAccountKeys(t *testing.T) []solana.PublicKey {
	t.Helper()
	keys := make([]solana.PublicKey, len(testAccountKeyStrings))
	for i, s := range testAccountKeyStrings {
		keys[i] = solana.MustPublicKeyFromBase58(s)
	}
	return keys
}

func identityAccounts(n int) []uint16 {
	out := make([]uint16, n)
	for i := range out {
		out[i] = uint16(i)
	}
	return out
}

func TestDecodeInstructions_MeteoraV3Swap(t *testing.T) {
	keys := testAccountKeys(t)

	data := make([]byte, 24)
	copy(data[0:8], meteoraV3Swap[:])
	binary.LittleEndian.PutUint64(data[8:16], 1_000_000)
	binary.LittleEndian.PutUint64(data[16:24], 990_000)

	tx := &solana.Transaction{
		Message: solana.Message{
			AccountKeys: keys,
			Instructions: []solana.CompiledInstruction{{
				ProgramIDIndex: meteoraProgramKeyIndex,
				Accounts:       identityAccounts(meteoraV3SwapAccountsLen),
				Data:           solana.Base58(data),
			}},
		},
	}

	decoded, err := DecodeInstructions(tx, Match{ProgramIndex: meteoraProgramKeyIndex, Program: ProgramMeteoraV3})
	require.NoError(t, err)
	require.Len(t, decoded, 1)

	instr := decoded[0]
	assert.Equal(t, OperationSwap, instr.Operation)
	assert.Equal(t, keys[1], instr.PoolAddress)
	assert.Equal(t, keys[4], instr.TokenAVault)
	assert.Equal(t, keys[5], instr.TokenBVault)
	assert.Equal(t, keys[6], instr.TokenAAddress)
	assert.Equal(t, keys[7], instr.TokenBAddress)
	assert.Equal(t, uint64(1_000_000), instr.ChangeLiquidityA)
	assert.Equal(t, uint64(990_000), instr.ChangeLiquidityB)
}

func TestDecodeInstructions_MeteoraV3Swap_WrongAccountCount(t *testing.T) {
	keys := testAccountKeys(t)

	data := make([]byte, 24)
	copy(data[0:8], meteoraV3Swap[:])

	tx := &solana.Transaction{
		Message: solana.Message{
			AccountKeys: keys,
			Instructions: []solana.CompiledInstruction{{
				ProgramIDIndex: meteoraProgramKeyIndex,
				Accounts:       identityAccounts(3),
				Data:           solana.Base58(data),
			}},
		},
	}

	_, err := DecodeInstructions(tx, Match{ProgramIndex: meteoraProgramKeyIndex, Program: ProgramMeteoraV3})
	assert.ErrorIs(t, err, ErrWrongAccountCount)
}

func TestDecodeInstructions_UnrecognizedDiscriminator(t *testing.T) {
	keys := testAccountKeys(t)

	data := make([]byte, 24)
	data[0] = 0xFF

	tx := &solana.Transaction{
		Message: solana.Message{
			AccountKeys: keys,
			Instructions: []solana.CompiledInstruction{{
				ProgramIDIndex: meteoraProgramKeyIndex,
				Accounts:       identityAccounts(meteoraV3SwapAccountsLen),
				Data:           solana.Base58(data),
			}},
		},
	}

	_, err := DecodeInstructions(tx, Match{ProgramIndex: meteoraProgramKeyIndex, Program: ProgramMeteoraV3})
	assert.ErrorIs(t, err, ErrUnsupportedInstruction)
}

func TestDecodeInstructions_UnimplementedDexReturnsNamedError(t *testing.T) {
	keys := testAccountKeys(t)
	tx := &solana.Transaction{
		Message: solana.Message{
			AccountKeys: keys,
			Instructions: []solana.CompiledInstruction{{
				ProgramIDIndex: 5,
				Accounts:       identityAccounts(10),
				Data:           solana.Base58(make([]byte, 8)),
			}},
		},
	}

	_, err := DecodeInstructions(tx, Match{ProgramIndex: 5, Program: ProgramOrcaV3})
	assert.ErrorIs(t, err, ErrUnsupportedInstruction)
}

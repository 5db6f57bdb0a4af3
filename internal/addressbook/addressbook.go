// Package addressbook centralizes the fixed on-chain identifiers the
// graph engine needs: the base (WSOL) token, and the program IDs the
// transaction classifier matches against. Addresses are represented as
// solana.PublicKey throughout the module rather than bare strings, so
// parsing happens once, at the boundary.
package addressbook

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// WSOLAddress is the base token every enumerated cycle is anchored to.
const WSOLAddress = "So11111111111111111111111111111111111111112"

// WSOL is the parsed form of WSOLAddress.
var WSOL = solana.MustPublicKeyFromBase58(WSOLAddress)

// DEX program IDs recognized by the transaction classifier.
const (
	JupiterProgramID   = "JUP6LkbZbjS1jKKwapdHNy74zcZ3tLUZoi5QNyVTaV4"
	RaydiumV2ProgramID = "CPMMoo8L3F4NbTegBCKVNunggL7H1ZpdTHKxQB5qKP1C"
	RaydiumV3ProgramID = "CAMMCzo5YL8w4VFF8KVHrK22GGUsp5VTaW7grrKgrWqK"
	OrcaV3ProgramID    = "whirLbMiicVdio4qvUfM5KAg6Ct8VwpYzGff3uctyCc"
	MeteoraV3ProgramID = "cpamdpZCGKUy5JxQXB4dcpGPiikHawvSWAd6mEn1sGG"
	MeteoraV2ProgramID = "Eo7WjKq67rjJQSZxS6z3YkapzY3eMj6Xy8X5EQVn5UaB"
)

// Decoder program owners — the accounts decoders dispatch on.
const (
	RaydiumDecoderOwner = RaydiumV3ProgramID
	OrcaDecoderOwner    = OrcaV3ProgramID
)

// ParseAddress parses a base58 address, wrapping the failure with
// addressbook.ErrInvalidAddress-compatible context.
func ParseAddress(s string) (solana.PublicKey, error) {
	addr, err := solana.PublicKeyFromBase58(s)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%w: %q: %v", ErrInvalidAddress, s, err)
	}
	return addr, nil
}

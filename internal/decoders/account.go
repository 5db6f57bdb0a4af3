// Package decoders translates an opaque on-chain account (owner +
// bytes) into a pooldata.PoolUpdate. Dispatch is keyed by the program
// owner address through a once-built, immutable table rather than
// runtime registration.
package decoders

import (
	"github.com/gagliardetto/solana-go"

	"github.com/devraj-iyer/arb-graph-engine/internal/addressbook"
	"github.com/devraj-iyer/arb-graph-engine/internal/pooldata"
)

// Account is the minimal shape a decoder needs: the program that owns
// it and its raw bytes. It intentionally does not depend on any RPC
// client type so decoders stay testable with literal byte slices.
type Account struct {
	Owner solana.PublicKey
	Data  []byte
}

// DecoderFunc decodes one DEX's account layout into a PoolUpdate.
type DecoderFunc func(data []byte) (pooldata.PoolUpdate, error)

var registry = map[solana.PublicKey]DecoderFunc{
	solana.MustPublicKeyFromBase58(addressbook.RaydiumDecoderOwner): DecodeRaydiumAccount,
	solana.MustPublicKeyFromBase58(addressbook.OrcaDecoderOwner):    DecodeOrcaAccount,
}

// DecodeAccount looks up a decoder by the account's owner and runs it.
// An owner with no registered decoder yields ErrUnknownDex, which
// callers treat as non-fatal.
func DecodeAccount(account Account) (pooldata.PoolUpdate, error) {
	decode, ok := registry[account.Owner]
	if !ok {
		return pooldata.PoolUpdate{}, ErrUnknownDex
	}
	return decode(account.Data)
}

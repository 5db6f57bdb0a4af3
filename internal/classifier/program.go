// Package classifier selects, per transaction, which DEX or aggregator
// program it targets, then decodes that program's instructions into a
// uniform shape.
package classifier

import (
	"github.com/gagliardetto/solana-go"

	"github.com/devraj-iyer/arb-graph-engine/internal/addressbook"
)

// Program identifies one of the recognized aggregator/DEX programs.
type Program string

const (
	ProgramJupiter   Program = "Jupiter"
	ProgramRaydiumV2 Program = "RaydiumV2"
	ProgramRaydiumV3 Program = "RaydiumV3"
	ProgramOrcaV3    Program = "OrcaV3"
	ProgramMeteoraV3 Program = "MeteoraV3"
	ProgramMeteoraV2 Program = "MeteoraV2"
)

// programKeys maps each known program's on-chain address to its tag.
var programKeys = map[solana.PublicKey]Program{
	solana.MustPublicKeyFromBase58(addressbook.JupiterProgramID):   ProgramJupiter,
	solana.MustPublicKeyFromBase58(addressbook.RaydiumV2ProgramID): ProgramRaydiumV2,
	solana.MustPublicKeyFromBase58(addressbook.RaydiumV3ProgramID): ProgramRaydiumV3,
	solana.MustPublicKeyFromBase58(addressbook.OrcaV3ProgramID):    ProgramOrcaV3,
	solana.MustPublicKeyFromBase58(addressbook.MeteoraV3ProgramID): ProgramMeteoraV3,
	solana.MustPublicKeyFromBase58(addressbook.MeteoraV2ProgramID): ProgramMeteoraV2,
}

// matchProgram looks up a static account key against the known
// program table.
func matchProgram(key solana.PublicKey) (Program, bool) {
	prog, ok := programKeys[key]
	return prog, ok
}

// Match is the result of classifying one transaction: the position of
// the matched program within the transaction's static account keys,
// and which program it was.
type Match struct {
	ProgramIndex int
	Program      Program
}

// Classify scans tx's static account keys in order and returns the
// program this transaction targets. Jupiter is always preferred over
// any other DEX program found in the same transaction, since a
// Jupiter-routed swap should be attributed to the aggregator rather
// than whichever venue it happened to route through; otherwise the
// earliest non-Jupiter match wins. Returns ErrNoMatch if no known
// program appears at all.
func Classify(tx *solana.Transaction) (Match, error) {
	firstOther := -1
	var firstOtherProgram Program

	for i, key := range tx.Message.AccountKeys {
		prog, ok := matchProgram(key)
		if !ok {
			continue
		}
		if prog == ProgramJupiter {
			return Match{ProgramIndex: i, Program: ProgramJupiter}, nil
		}
		if firstOther == -1 {
			firstOther = i
			firstOtherProgram = prog
		}
	}

	if firstOther == -1 {
		return Match{}, ErrNoMatch
	}
	return Match{ProgramIndex: firstOther, Program: firstOtherProgram}, nil
}

package classifier

import "errors"

var (
	// ErrNoMatch means none of a transaction's static account keys
	// matched a known DEX or aggregator program.
	ErrNoMatch = errors.New("no recognized dex program in transaction")
	// ErrUnsupportedInstruction means an instruction's discriminator
	// wasn't recognized by the matched program's decoder, or the
	// decoder's layout isn't available yet.
	ErrUnsupportedInstruction = errors.New("unsupported instruction")
	// ErrWrongAccountCount means a compiled instruction had a
	// different account list length than its instruction type requires.
	ErrWrongAccountCount = errors.New("wrong account count for instruction")
)

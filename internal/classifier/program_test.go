package classifier

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devraj-iyer/arb-graph-engine/internal/addressbook"
)

func txWithKeys(keys ...string) *solana.Transaction {
	accountKeys := make([]solana.PublicKey, len(keys))
	for i, k := range keys {
		accountKeys[i] = solana.MustPublicKeyFromBase58(k)
	}
	return &solana.Transaction{
		Message: solana.Message{AccountKeys: accountKeys},
	}
}

func TestClassify_PrefersJupiterOverOtherDex(t *testing.T) {
	tx := txWithKeys(
		addressbook.RaydiumV2ProgramID,
		addressbook.JupiterProgramID,
	)

	match, err := Classify(tx)
	require.NoError(t, err)
	assert.Equal(t, ProgramJupiter, match.Program)
	assert.Equal(t, 1, match.ProgramIndex)
}

func TestClassify_EarliestNonJupiterMatchWins(t *testing.T) {
	tx := txWithKeys(
		"11111111111111111111111111111111",
		addressbook.OrcaV3ProgramID,
		addressbook.RaydiumV2ProgramID,
	)

	match, err := Classify(tx)
	require.NoError(t, err)
	assert.Equal(t, ProgramOrcaV3, match.Program)
	assert.Equal(t, 1, match.ProgramIndex)
}

func TestClassify_NoMatchReturnsError(t *testing.T) {
	tx := txWithKeys(addressbook.WSOLAddress)

	_, err := Classify(tx)
	assert.ErrorIs(t, err, ErrNoMatch)
}

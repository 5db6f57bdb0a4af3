package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devraj-iyer/arb-graph-engine/internal/addressbook"
	"github.com/devraj-iyer/arb-graph-engine/internal/pooldata"
)

func TestFindMatchingPairs_MatchesRegardlessOfTokenOrder(t *testing.T) {
	wsol := addressbook.WSOLAddress
	usdc := "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"

	orcaPools := []pooldata.PoolInfo{{
		Address: strPtr(addressbook.OrcaV3ProgramID),
		TokenA:  &pooldata.TokenInfo{Address: strPtr(wsol)},
		TokenB:  &pooldata.TokenInfo{Address: strPtr(usdc)},
	}}
	raydiumPools := []pooldata.PoolInfo{{
		Address: strPtr(addressbook.RaydiumV3ProgramID),
		TokenA:  &pooldata.TokenInfo{Address: strPtr(usdc)},
		TokenB:  &pooldata.TokenInfo{Address: strPtr(wsol)},
	}}

	matches, err := FindMatchingPairs(orcaPools, raydiumPools)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, addressbook.OrcaV3ProgramID, matches[0].OrcaAddress)
	assert.Equal(t, addressbook.RaydiumV3ProgramID, matches[0].RaydiumAddress)
}

func TestFindMatchingPairs_NoMatchForDifferentPairs(t *testing.T) {
	wsol := addressbook.WSOLAddress
	usdc := "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"

	orcaPools := []pooldata.PoolInfo{{
		Address: strPtr(addressbook.OrcaV3ProgramID),
		TokenA:  &pooldata.TokenInfo{Address: strPtr(wsol)},
		TokenB:  &pooldata.TokenInfo{Address: strPtr(usdc)},
	}}
	raydiumPools := []pooldata.PoolInfo{{
		Address: strPtr(addressbook.RaydiumV3ProgramID),
		TokenA:  &pooldata.TokenInfo{Address: strPtr(addressbook.JupiterProgramID)},
		TokenB:  &pooldata.TokenInfo{Address: strPtr(addressbook.MeteoraV2ProgramID)},
	}}

	matches, err := FindMatchingPairs(orcaPools, raydiumPools)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

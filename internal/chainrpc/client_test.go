package chainrpc

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"

	"github.com/devraj-iyer/arb-graph-engine/internal/addressbook"
)

func TestChunk_SplitsAtBatchLimit(t *testing.T) {
	addresses := make([]solana.PublicKey, 250)
	for i := range addresses {
		addresses[i] = addressbook.WSOL
	}

	chunks := Chunk(addresses)
	assert.Len(t, chunks, 3)
	assert.Len(t, chunks[0], MaxAccountsPerCall)
	assert.Len(t, chunks[1], MaxAccountsPerCall)
	assert.Len(t, chunks[2], 50)
}

func TestChunk_Empty(t *testing.T) {
	assert.Nil(t, Chunk(nil))
}

func TestChunk_SingleUnderLimit(t *testing.T) {
	addresses := []solana.PublicKey{addressbook.WSOL}
	chunks := Chunk(addresses)
	assert.Len(t, chunks, 1)
	assert.Len(t, chunks[0], 1)
}

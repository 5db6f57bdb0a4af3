package graph

import "github.com/gagliardetto/solana-go"

// Node is a token participating in the graph, keyed by its mint
// address.
type Node struct {
	Address  solana.PublicKey
	Decimals uint8
	Name     string
	Symbol   string
}

// Package fixedpoint provides the little-endian u128/i32 decode shared
// by the account decoders and the instruction classifier: on-chain
// sqrt-price and liquidity are 128-bit little-endian integers, widened
// here to *uint256.Int so the graph's later squaring step never
// overflows.
package fixedpoint

import (
	"encoding/binary"
	"fmt"

	"github.com/holiman/uint256"
)

// DecodeU128LE reads a little-endian u128 from exactly 16 bytes.
func DecodeU128LE(b []byte) (*uint256.Int, error) {
	if len(b) != 16 {
		return nil, fmt.Errorf("fixedpoint: u128 needs 16 bytes, got %d", len(b))
	}
	lo := binary.LittleEndian.Uint64(b[0:8])
	hi := binary.LittleEndian.Uint64(b[8:16])

	hiWord := new(uint256.Int).SetUint64(hi)
	hiWord.Lsh(hiWord, 64)
	loWord := new(uint256.Int).SetUint64(lo)

	return new(uint256.Int).Or(hiWord, loWord), nil
}

// DecodeI32LE reads a little-endian, two's-complement i32 from exactly
// 4 bytes.
func DecodeI32LE(b []byte) (int32, error) {
	if len(b) != 4 {
		return 0, fmt.Errorf("fixedpoint: i32 needs 4 bytes, got %d", len(b))
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}

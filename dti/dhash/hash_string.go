package dhash

import (
	"hash/crc32"
)

// Mask drops the top bit, which the engine keeps clear in every stored type hash.
const Mask = 0x7FFFFFFF

// HashString is the identity hash of a type name: the bit-inverted IEEE
// CRC32 (also known as JAMCRC) of the name's bytes, masked with Mask.
func HashString(s string) uint32 {
	return ^crc32.ChecksumIEEE([]byte(s)) & Mask
}

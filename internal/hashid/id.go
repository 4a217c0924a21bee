// Package hashid provides the non-cryptographic hash functions used to turn
// field paths, symbol strings, and class names into fixed-size map keys.
package hashid

import (
	"hash/fnv"

	"github.com/cespare/xxhash/v2"
)

// FieldKey computes the 64-bit hash used as an entity's field-value map key
// and as a FlattenedSerializerField's var_name_hash. The algorithm is not
// pinned by the wire format (unlike the network-name hash below), so xxHash64
// is used for its speed and the non-cryptographic map-key hashing pattern
// that is standard elsewhere in this codebase's dependency stack.
func FieldKey(path string) uint64 {
	return xxhash.Sum64String(path)
}

// NetworkNameHash computes the fnv1a-style hash used to map a class's
// network name (and a serializer's name) to the value carried on the wire.
// This algorithm is pinned by the Source 2 wire format itself, not a free
// choice, so it uses the standard library's FNV-1a rather than xxHash64.
func NetworkNameHash(name []byte) uint64 {
	h := fnv.New64a()
	_, _ = h.Write(name)
	return h.Sum64()
}

// NetworkNameHashString is a convenience wrapper around NetworkNameHash for
// string inputs.
func NetworkNameHashString(name string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return h.Sum64()
}

package bloom

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash"
	"github.com/spaolacci/murmur3"
)

// Hasher derives bit positions from a key and an integer seed.
//
// Implementations must be deterministic and spread positions uniformly over
// [0, bitCount). Different seeds stand in for independent hash functions.
type Hasher interface {
	// Name is the identifier used in configuration.
	Name() string
	// Position returns the bit index for key under seed.
	// bitCount is always > 0.
	Position(key []byte, seed uint32, bitCount uint64) uint64
}

const (
	HasherMurmur3 = "murmur3"
	HasherXXHash  = "xxhash"
)

// Murmur3 hashes with MurmurHash3 x86_32.
//
// The 32-bit digest is read as a signed integer and reduced with a floored
// modulo, so positions equal mmh3.hash(key, seed) % m in Python.
type Murmur3 struct{}

func (Murmur3) Name() string { return HasherMurmur3 }

func (Murmur3) Position(key []byte, seed uint32, bitCount uint64) uint64 {
	h := int64(int32(murmur3.Sum32WithSeed(key, seed)))
	m := int64(bitCount)

	pos := h % m
	if pos < 0 {
		pos += m
	}

	return uint64(pos)
}

// XXHash hashes seed||key with xxHash64. The seed is encoded little endian.
type XXHash struct{}

func (XXHash) Name() string { return HasherXXHash }

func (XXHash) Position(key []byte, seed uint32, bitCount uint64) uint64 {
	var prefix [4]byte
	binary.LittleEndian.PutUint32(prefix[:], seed)

	d := xxhash.New()
	_, _ = d.Write(prefix[:])
	_, _ = d.Write(key)

	return d.Sum64() % bitCount
}

// HasherByName returns the hasher registered under name.
// An empty name selects Murmur3.
func HasherByName(name string) (Hasher, error) {
	switch name {
	case HasherMurmur3, "":
		return Murmur3{}, nil
	case HasherXXHash:
		return XXHash{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownHasher, name)
	}
}

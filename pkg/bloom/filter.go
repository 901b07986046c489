package bloom

import (
	"math"

	"github.com/bits-and-blooms/bitset"
)

// DefaultFalsePositiveRate is the rate used when the caller has no
// preference.
const DefaultFalsePositiveRate = 1e-7

// Filter is a fixed-size Bloom filter.
//
// The bit count and hash count are fixed at construction. Bits are only
// ever set, never cleared.
type Filter struct {
	expectedItems     uint64
	falsePositiveRate float64
	sizing            Sizing

	bitCount  uint64
	hashCount uint32
	hasher    Hasher

	bits   *bitset.BitSet
	sealed bool
}

// Option customizes a Filter at construction.
type Option func(*Filter)

// WithHasher selects the hash function. Nil keeps the default.
func WithHasher(h Hasher) Option {
	return func(f *Filter) {
		if h != nil {
			f.hasher = h
		}
	}
}

// WithSizing selects how the bit count is rounded.
func WithSizing(s Sizing) Option {
	return func(f *Filter) {
		f.sizing = s
	}
}

// New returns an empty filter sized for expectedItems keys at the given
// false-positive rate.
//
// It fails with [ErrInvalidParameters] if expectedItems is zero or the rate
// is outside (0,1). Parameters are never clamped.
func New(expectedItems uint64, falsePositiveRate float64, opts ...Option) (*Filter, error) {
	f := &Filter{
		expectedItems:     expectedItems,
		falsePositiveRate: falsePositiveRate,
		sizing:            SizingCeil,
		hasher:            Murmur3{},
	}

	for _, opt := range opts {
		opt(f)
	}

	m, k, err := EstimateParameters(expectedItems, falsePositiveRate, f.sizing)
	if err != nil {
		return nil, err
	}

	f.bitCount = m
	f.hashCount = k
	f.bits = bitset.New(uint(m))

	return f, nil
}

// Insert adds key to the filter. Inserting the same key again is a no-op.
//
// Insert fails only with [ErrSealed].
func (f *Filter) Insert(key []byte) error {
	if f.sealed {
		return ErrSealed
	}

	for seed := range f.hashCount {
		f.bits.Set(uint(f.hasher.Position(key, seed, f.bitCount)))
	}

	return nil
}

// InsertString is Insert for string keys.
func (f *Filter) InsertString(key string) error {
	return f.Insert([]byte(key))
}

// Query reports whether key may have been inserted.
//
// It stops at the first unset bit.
func (f *Filter) Query(key []byte) Classification {
	for seed := range f.hashCount {
		if !f.bits.Test(uint(f.hasher.Position(key, seed, f.bitCount))) {
			return DefinitelyAbsent
		}
	}

	return PossiblyPresent
}

// QueryString is Query for string keys.
func (f *Filter) QueryString(key string) Classification {
	return f.Query([]byte(key))
}

// Seal closes the build phase. Later inserts fail with [ErrSealed].
// Sealing twice is harmless.
func (f *Filter) Seal() {
	f.sealed = true
}

// Sealed reports whether Seal was called.
func (f *Filter) Sealed() bool {
	return f.sealed
}

// BitCount returns m.
func (f *Filter) BitCount() uint64 {
	return f.bitCount
}

// HashCount returns k.
func (f *Filter) HashCount() uint32 {
	return f.hashCount
}

// ExpectedItems returns the n the filter was sized for.
func (f *Filter) ExpectedItems() uint64 {
	return f.expectedItems
}

// FalsePositiveRate returns the target rate the filter was sized for.
func (f *Filter) FalsePositiveRate() float64 {
	return f.falsePositiveRate
}

// Sizing returns the rounding mode used for the bit count.
func (f *Filter) Sizing() Sizing {
	return f.sizing
}

// Hasher returns the hash function in use.
func (f *Filter) Hasher() Hasher {
	return f.hasher
}

// BitsSet returns the number of set bits.
func (f *Filter) BitsSet() uint64 {
	return uint64(f.bits.Count())
}

// EstimatedFalsePositiveRate returns (set bits / m)^k, the chance that a
// never-inserted key hits only set bits given the current fill.
func (f *Filter) EstimatedFalsePositiveRate() float64 {
	fill := float64(f.BitsSet()) / float64(f.bitCount)

	return math.Pow(fill, float64(f.hashCount))
}

// Equal reports whether f and other have the same shape, hasher and bits.
func (f *Filter) Equal(other *Filter) bool {
	if f == nil || other == nil {
		return f == other
	}

	return f.bitCount == other.bitCount &&
		f.hashCount == other.hashCount &&
		f.hasher.Name() == other.hasher.Name() &&
		f.bits.Equal(other.bits)
}

package bloom

import (
	"fmt"
	"math"
)

// maxBits caps the bit count so positions fit both uint and a signed modulo.
const maxBits = math.MaxInt

// CheckParameters validates the inputs to the sizing formula.
func CheckParameters(expectedItems uint64, falsePositiveRate float64) error {
	if expectedItems == 0 {
		return fmt.Errorf("%w: expected items must be at least 1", ErrInvalidParameters)
	}

	// NaN fails both comparisons.
	if !(falsePositiveRate > 0 && falsePositiveRate < 1) {
		return fmt.Errorf("%w: false positive rate %v not in (0,1)", ErrInvalidParameters, falsePositiveRate)
	}

	return nil
}

// EstimateParameters returns the bit count m and hash count k for a filter
// holding expectedItems keys at the given false-positive rate.
//
// m is never 0: a truncated size of zero bits becomes one bit so that
// positions stay defined. k is at least 1.
func EstimateParameters(expectedItems uint64, falsePositiveRate float64, sizing Sizing) (uint64, uint32, error) {
	if err := CheckParameters(expectedItems, falsePositiveRate); err != nil {
		return 0, 0, err
	}

	n := float64(expectedItems)
	raw := -1 * n * math.Log(falsePositiveRate) / math.Pow(math.Log(2), 2)

	switch sizing {
	case SizingCeil:
		raw = math.Ceil(raw)
	case SizingTruncate:
		raw = math.Trunc(raw)
	default:
		return 0, 0, fmt.Errorf("%w: %v", ErrUnknownSizing, sizing)
	}

	if raw >= maxBits {
		return 0, 0, fmt.Errorf("%w: %d items at rate %v needs %.0f bits", ErrInvalidParameters, expectedItems, falsePositiveRate, raw)
	}

	m := max(uint64(raw), 1)

	return m, HashCount(m, expectedItems), nil
}

// HashCount returns floor((m / n) * ln 2), at least 1.
//
// The caller guarantees expectedItems > 0.
func HashCount(bitCount uint64, expectedItems uint64) uint32 {
	k := math.Floor(float64(bitCount) / float64(expectedItems) * math.Log(2))
	if k < 1 {
		return 1
	}

	if k > math.MaxUint32 {
		return math.MaxUint32
	}

	return uint32(k)
}

// FalsePositiveRate returns the theoretical false-positive rate
// (1 - e^(-k*n/m))^k of a filter with m bits and k hashes holding n keys.
func FalsePositiveRate(bitCount uint64, hashCount uint32, items uint64) float64 {
	if bitCount == 0 {
		return 1
	}

	k := float64(hashCount)

	return math.Pow(1-math.Exp(-k*float64(items)/float64(bitCount)), k)
}

// BitsetBytes returns ceil(m/8), the memory the bit vector occupies.
func BitsetBytes(bitCount uint64) uint64 {
	return (bitCount + 7) / 8
}

// Package bloom implements a classic Bloom filter used as a membership
// prefilter in front of an expensive backing store.
//
// A [Filter] answers one question about a key:
//
//   - [DefinitelyAbsent]: the key was never inserted.
//   - [PossiblyPresent]: the key may have been inserted. False positives
//     happen with a probability bounded by the rate the filter was sized for.
//
// There are no false negatives. Once a key is inserted, every later query
// for it reports [PossiblyPresent].
//
// # Sizing
//
// For n expected items and a target false-positive rate p:
//
//	m = -(n * ln p) / (ln 2)^2    bits
//	k = floor((m / n) * ln 2)     hash functions, at least 1
//
// [SizingCeil] rounds m up and is the default. [SizingTruncate] truncates m
// toward zero, which reproduces filters built by older tooling bit for bit
// but may under-size small filters.
//
// # Hashing
//
// All k positions come from one seeded hash function, called with seeds
// 0..k-1. [Murmur3] is the default and places bits exactly where
// Python's mmh3.hash(key, seed) % m would. [XXHash] is an alternative with
// 64-bit output.
//
// # Phases
//
// Filters are permissive: inserts and queries may be interleaved freely.
// Callers that want a hard build/query split call [Filter.Seal] once the
// reference set is loaded; later inserts then fail with [ErrSealed].
//
// A Filter is not safe for concurrent mutation.
package bloom

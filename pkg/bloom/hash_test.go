package bloom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMurmur3MatchesMMH3(t *testing.T) {
	h := Murmur3{}

	// mmh3.hash("foo") == -156908512, and -156908512 % 1000 == 488 in Python.
	require.Equal(t, uint64(488), h.Position([]byte("foo"), 0, 1000))

	// mmh3.hash("foo", 42) == -1322301282.
	require.Equal(t, uint64(718), h.Position([]byte("foo"), 42, 1000))

	// mmh3.hash("") == 0.
	require.Equal(t, uint64(0), h.Position(nil, 0, 17))
}

func TestPositionsInRange(t *testing.T) {
	for _, h := range []Hasher{Murmur3{}, XXHash{}} {
		for _, m := range []uint64{1, 2, 29, 1 << 20} {
			for seed := range uint32(16) {
				pos := h.Position([]byte("user@example.com"), seed, m)
				require.Less(t, pos, m, "hasher=%s m=%d seed=%d", h.Name(), m, seed)
			}
		}
	}
}

func TestSeedsChangePositions(t *testing.T) {
	for _, h := range []Hasher{Murmur3{}, XXHash{}} {
		seen := make(map[uint64]struct{})
		for seed := range uint32(8) {
			seen[h.Position([]byte("a@x.com"), seed, 1<<30)] = struct{}{}
		}

		require.Greater(t, len(seen), 1, "hasher=%s", h.Name())
	}
}

func TestHasherByName(t *testing.T) {
	h, err := HasherByName("")
	require.NoError(t, err)
	require.Equal(t, HasherMurmur3, h.Name())

	h, err = HasherByName("xxhash")
	require.NoError(t, err)
	require.Equal(t, HasherXXHash, h.Name())

	_, err = HasherByName("sha256")
	require.ErrorIs(t, err, ErrUnknownHasher)
}

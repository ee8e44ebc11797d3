package trie

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeCompactVectors(t *testing.T) {
	cases := []struct {
		n    uint64
		want string
	}{
		{0, "00"},
		{1, "04"},
		{63, "fc"},
		{64, "0101"},
		{16384, "02000100"},
	}
	for _, c := range cases {
		got := encodeCompact(c.n)
		require.Equal(t, c.want, hex.EncodeToString(got), "n=%d", c.n)
	}
}

func TestCompactRoundTrip(t *testing.T) {
	for _, n := range []uint64{0, 1, 63, 64, 16383, 16384, 1 << 29, 1 << 30, 1 << 40, ^uint64(0)} {
		enc := encodeCompact(n)
		got, rest, err := decodeCompact(enc)
		require.NoError(t, err)
		require.Empty(t, rest)
		require.Equal(t, n, got)
	}
}

package task

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeHexRejectsMissingPrefix(t *testing.T) {
	_, err := DecodeHex("deadbeef")
	require.Error(t, err)
}

func TestDecodeHexRejectsOddDigitCount(t *testing.T) {
	_, err := DecodeHex("0xabc")
	require.Error(t, err)
}

func TestDecodeHexRejectsUppercase(t *testing.T) {
	_, err := DecodeHex("0xDEAD")
	require.Error(t, err)
}

func TestDecodeHexAcceptsEmpty(t *testing.T) {
	b, err := DecodeHex("0x")
	require.NoError(t, err)
	require.Empty(t, b)
}

func TestDecodeHexRoundTripsThroughEncodeHex(t *testing.T) {
	original := []byte{0xde, 0xad, 0xbe, 0xef}
	encoded := EncodeHex(original)
	require.Equal(t, "0xdeadbeef", encoded)

	decoded, err := DecodeHex(encoded)
	require.NoError(t, err)
	require.Equal(t, original, decoded)
}

func TestHexBytesMarshalUnmarshalText(t *testing.T) {
	b := HexBytes{0x01, 0x02, 0xff}
	text, err := b.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "0x0102ff", string(text))

	var out HexBytes
	require.NoError(t, out.UnmarshalText(text))
	require.Equal(t, b, out)
}

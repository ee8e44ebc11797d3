// Package task implements the task/response wire schema (component G):
// TaskCall, CallResponse, TaskResponse, RuntimeVersion, and the
// lowercase-hex boundary codec every byte payload crosses through.
//
// The hex encoding follows the shape of go-ethereum's hexutil.Bytes
// (MarshalText/UnmarshalText over a "0x"-prefixed string) but is stricter,
// per this module's own boundary rules: lowercase only, even digit count,
// "0x" required even for an empty payload.
package task

import (
	"encoding/hex"
	"fmt"
)

// HexBytes is a byte slice that marshals to/from a lowercase, "0x"-prefixed
// hex string.
type HexBytes []byte

// MarshalText implements encoding.TextMarshaler.
func (b HexBytes) MarshalText() ([]byte, error) {
	out := make([]byte, 2+hex.EncodedLen(len(b)))
	out[0], out[1] = '0', 'x'
	hex.Encode(out[2:], b)
	return out, nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *HexBytes) UnmarshalText(text []byte) error {
	decoded, err := DecodeHex(string(text))
	if err != nil {
		return err
	}
	*b = decoded
	return nil
}

// DecodeHex validates and decodes a boundary hex string: must start with
// "0x", have an even digit count, and contain only lowercase hex digits.
func DecodeHex(s string) ([]byte, error) {
	if len(s) < 2 || s[0] != '0' || s[1] != 'x' {
		return nil, fmt.Errorf("task: hex string %q missing 0x prefix", s)
	}
	digits := s[2:]
	if len(digits)%2 != 0 {
		return nil, fmt.Errorf("task: hex string %q has an odd digit count", s)
	}
	for _, c := range digits {
		isLowerHex := (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')
		if !isLowerHex {
			return nil, fmt.Errorf("task: hex string %q contains a non-lowercase-hex character %q", s, c)
		}
	}
	out, err := hex.DecodeString(digits)
	if err != nil {
		return nil, fmt.Errorf("task: decoding hex string %q: %w", s, err)
	}
	return out, nil
}

// EncodeHex renders b as a lowercase, "0x"-prefixed hex string.
func EncodeHex(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

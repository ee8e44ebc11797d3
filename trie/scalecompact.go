package trie

import (
	"encoding/binary"
	"fmt"
)

// encodeCompact encodes n as a SCALE-compact integer (§4.B):
//
//	n < 2^6:  one byte, (n << 2) | 0b00
//	n < 2^14: two bytes LE, low two bits 0b01
//	n < 2^30: four bytes LE, low two bits 0b10
//	otherwise: one descriptor byte ((byteCount-4)<<2)|0b11, then byteCount LE bytes
func encodeCompact(n uint64) []byte {
	switch {
	case n < 1<<6:
		return []byte{byte(n << 2)}
	case n < 1<<14:
		v := uint16(n<<2) | 0b01
		buf := make([]byte, 2)
		binary.LittleEndian.PutUint16(buf, v)
		return buf
	case n < 1<<30:
		v := uint32(n<<2) | 0b10
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, v)
		return buf
	default:
		var payload []byte
		rem := n
		for rem > 0 {
			payload = append(payload, byte(rem))
			rem >>= 8
		}
		if len(payload) == 0 {
			payload = []byte{0}
		}
		desc := byte((len(payload)-4)<<2) | 0b11
		return append([]byte{desc}, payload...)
	}
}

// decodeCompact reads a SCALE-compact integer from the front of buf and
// returns its value and the remaining bytes.
func decodeCompact(buf []byte) (uint64, []byte, error) {
	if len(buf) == 0 {
		return 0, nil, fmt.Errorf("trie: empty compact-int input")
	}
	switch buf[0] & 0b11 {
	case 0b00:
		return uint64(buf[0] >> 2), buf[1:], nil
	case 0b01:
		if len(buf) < 2 {
			return 0, nil, fmt.Errorf("trie: truncated 2-byte compact int")
		}
		v := binary.LittleEndian.Uint16(buf[:2])
		return uint64(v >> 2), buf[2:], nil
	case 0b10:
		if len(buf) < 4 {
			return 0, nil, fmt.Errorf("trie: truncated 4-byte compact int")
		}
		v := binary.LittleEndian.Uint32(buf[:4])
		return uint64(v >> 2), buf[4:], nil
	default:
		n := int(buf[0]>>2) + 4
		if len(buf) < 1+n {
			return 0, nil, fmt.Errorf("trie: truncated %d-byte compact int", n)
		}
		var v uint64
		for i := n - 1; i >= 0; i-- {
			v = v<<8 | uint64(buf[1+i])
		}
		return v, buf[1+n:], nil
	}
}

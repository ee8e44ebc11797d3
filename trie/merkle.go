package trie

import (
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// Node header byte layout, per the documented Substrate state trie format
// (grounded on the node shapes smoldot's trie_node::decode/encode produce —
// see the raw proof node blobs in original_source/executor/src/proof.rs):
// the top bits of the first byte select a node kind, the remaining bits (or,
// past their inline maximum, a run of continuation bytes) carry the partial
// key's nibble count.
const (
	headerEmpty byte = 0x00

	headerLeafMask             byte = 0xc0
	headerLeafPrefix           byte = 0x40 // 0b01______
	headerBranchNoValuePrefix  byte = 0x80 // 0b10______
	headerBranchWithValuePrefix byte = 0xc0 // 0b11______

	headerLeafHashedMask   byte = 0xe0
	headerLeafHashedPrefix byte = 0x20 // 0b001_____

	headerBranchHashedMask   byte = 0xf0
	headerBranchHashedPrefix byte = 0x10 // 0b0001____
)

type nodeKind int

const (
	kindEmpty nodeKind = iota
	kindLeaf
	kindLeafHashed
	kindBranchNoValue
	kindBranchWithValue
	kindBranchHashed
)

// lenBits is the number of header bits available to inline a partial key's
// nibble count for each node kind, before continuation bytes are needed.
func (k nodeKind) lenBits() int {
	switch k {
	case kindLeafHashed:
		return 5
	case kindBranchHashed:
		return 4
	default:
		return 6
	}
}

func (k nodeKind) headerPrefix() byte {
	switch k {
	case kindLeaf:
		return headerLeafPrefix
	case kindLeafHashed:
		return headerLeafHashedPrefix
	case kindBranchNoValue:
		return headerBranchNoValuePrefix
	case kindBranchWithValue:
		return headerBranchWithValuePrefix
	case kindBranchHashed:
		return headerBranchHashedPrefix
	default:
		panic(fmt.Sprintf("trie: node kind %d has no header prefix", k))
	}
}

// blake2-256 digest.
func hash256(data []byte) Hash {
	h := blake2b.Sum256(data)
	return h
}

// emptyTrieHash is the Merkle root of an empty trie: the hash of the single
// EMPTY_TRIE header byte, not an all-zero placeholder.
var emptyTrieHash = hash256([]byte{headerEmpty})

// encodeHeader writes a node header: the kind's prefix bits plus the
// partial key's nibble count, escaping to continuation bytes past the
// inline maximum (each 0xff byte adds 255 and continues; a byte below 0xff
// adds itself and terminates).
func encodeHeader(kind nodeKind, nibbleCount int) []byte {
	lenBits := kind.lenBits()
	maxInline := (1 << uint(lenBits)) - 1
	if nibbleCount < maxInline {
		return []byte{kind.headerPrefix() | byte(nibbleCount)}
	}
	out := []byte{kind.headerPrefix() | byte(maxInline)}
	rem := nibbleCount - maxInline
	for rem >= 0xff {
		out = append(out, 0xff)
		rem -= 0xff
	}
	return append(out, byte(rem))
}

// decodeHeader reads a node header from the front of buf, returning the
// node kind, its partial key's nibble count, and the remaining bytes.
func decodeHeader(buf []byte) (nodeKind, int, []byte, error) {
	if len(buf) == 0 {
		return 0, 0, nil, fmt.Errorf("trie: empty node encoding")
	}
	b := buf[0]
	if b == headerEmpty {
		return kindEmpty, 0, buf[1:], nil
	}

	var kind nodeKind
	switch {
	case b&headerLeafMask == headerBranchWithValuePrefix:
		kind = kindBranchWithValue
	case b&headerLeafMask == headerBranchNoValuePrefix:
		kind = kindBranchNoValue
	case b&headerLeafMask == headerLeafPrefix:
		kind = kindLeaf
	case b&headerLeafHashedMask == headerLeafHashedPrefix:
		kind = kindLeafHashed
	case b&headerBranchHashedMask == headerBranchHashedPrefix:
		kind = kindBranchHashed
	default:
		return 0, 0, nil, fmt.Errorf("trie: unrecognized node header byte 0x%02x", b)
	}

	lenBits := kind.lenBits()
	lenMask := byte((1 << uint(lenBits)) - 1)
	n := int(b & lenMask)
	rest := buf[1:]
	if n == int(lenMask) {
		for {
			if len(rest) == 0 {
				return 0, 0, nil, fmt.Errorf("trie: truncated node header length")
			}
			c := rest[0]
			rest = rest[1:]
			n += int(c)
			if c != 0xff {
				break
			}
		}
	}
	return kind, n, rest, nil
}

// packNibbles packs a nibble sequence into bytes: an odd leading nibble gets
// its own byte (in the low four bits, high bits zero), then nibbles are
// packed two per byte, high nibble first.
func packNibbles(nibbles []byte) []byte {
	var out []byte
	i := 0
	if len(nibbles)%2 == 1 {
		out = append(out, nibbles[0])
		i = 1
	}
	for ; i < len(nibbles); i += 2 {
		out = append(out, nibbles[i]<<4|nibbles[i+1])
	}
	return out
}

// unpackNibbles reverses packNibbles, reading exactly n nibbles from the
// front of buf and returning them alongside the remaining bytes.
func unpackNibbles(n int, buf []byte) ([]byte, []byte, error) {
	nibbles := make([]byte, n)
	i, pos := 0, 0
	if n%2 == 1 {
		if len(buf) == 0 {
			return nil, nil, fmt.Errorf("trie: truncated partial key")
		}
		nibbles[0] = buf[0] & 0x0f
		pos, i = 1, 1
	}
	for ; i < n; i += 2 {
		if pos >= len(buf) {
			return nil, nil, fmt.Errorf("trie: truncated partial key")
		}
		b := buf[pos]
		pos++
		nibbles[i] = b >> 4
		nibbles[i+1] = b & 0x0f
	}
	return nibbles, buf[pos:], nil
}

// encodeBlob writes a length-prefixed byte blob: a SCALE-compact length
// followed by the bytes themselves. This framing is shared by inline values
// and by child/value references (a reference's length tells a reader
// whether it is an inlined node/value or a 32-byte hash).
func encodeBlob(b []byte) []byte {
	out := encodeCompact(uint64(len(b)))
	return append(out, b...)
}

func decodeBlob(buf []byte) ([]byte, []byte, error) {
	n, rest, err := decodeCompact(buf)
	if err != nil {
		return nil, nil, err
	}
	if uint64(len(rest)) < n {
		return nil, nil, fmt.Errorf("trie: truncated blob")
	}
	return append([]byte{}, rest[:n]...), rest[n:], nil
}

// encodeChildRef is the encoded form of a child pointer: a length-prefixed
// blob holding either the child's own node bytes (when its encoding is
// shorter than a hash, so it can be inlined) or its 32-byte Merkle value.
func encodeChildRef(n node) ([]byte, error) {
	if hn, ok := n.(hashNode); ok {
		if len(hn) != 32 {
			return nil, fmt.Errorf("trie: hash node reference must be 32 bytes, got %d", len(hn))
		}
		return encodeBlob(hn), nil
	}
	enc, err := encodeNode(n)
	if err != nil {
		return nil, err
	}
	if len(enc) < 32 {
		return encodeBlob(enc), nil
	}
	h := hash256(enc)
	return encodeBlob(h[:]), nil
}

func decodeChildRef(buf []byte) (node, []byte, error) {
	data, rest, err := decodeBlob(buf)
	if err != nil {
		return nil, nil, fmt.Errorf("trie: decoding child reference: %w", err)
	}
	if len(data) == 32 {
		return hashNode(data), rest, nil
	}
	child, err := decodeNode(data)
	if err != nil {
		return nil, nil, err
	}
	return child, rest, nil
}

// encodeNode serialises n into the raw bytes this package hashes (or embeds,
// if short) to produce a Merkle value, following the Substrate state trie's
// node encoding.
func encodeNode(n node) ([]byte, error) {
	switch t := n.(type) {
	case nil:
		return []byte{headerEmpty}, nil
	case leafNode:
		var header, valueBytes []byte
		switch v := t.Val.(type) {
		case hashedValue:
			header = encodeHeader(kindLeafHashed, len(t.Key))
			valueBytes = append([]byte{}, v[:]...)
		case knownValue:
			header = encodeHeader(kindLeaf, len(t.Key))
			valueBytes = encodeBlob(v)
		default:
			return nil, fmt.Errorf("trie: leaf node without a value")
		}
		out := append(header, packNibbles(t.Key)...)
		return append(out, valueBytes...), nil
	case branchNode:
		var bitmap uint16
		for i, c := range t.Children {
			if c != nil {
				bitmap |= 1 << uint(i)
			}
		}
		var header, valueBytes []byte
		switch v := t.Value.(type) {
		case hashedValue:
			header = encodeHeader(kindBranchHashed, len(t.PartialKey))
			valueBytes = append([]byte{}, v[:]...)
		case knownValue:
			header = encodeHeader(kindBranchWithValue, len(t.PartialKey))
			valueBytes = encodeBlob(v)
		default:
			header = encodeHeader(kindBranchNoValue, len(t.PartialKey))
		}
		out := append(header, packNibbles(t.PartialKey)...)
		out = append(out, byte(bitmap), byte(bitmap>>8))
		for _, c := range t.Children {
			if c == nil {
				continue
			}
			ref, err := encodeChildRef(c)
			if err != nil {
				return nil, err
			}
			out = append(out, ref...)
		}
		return append(out, valueBytes...), nil
	case hashNode:
		return nil, fmt.Errorf("trie: cannot encode an unresolved hash node")
	default:
		return nil, fmt.Errorf("trie: cannot encode node of type %T", n)
	}
}

func decodeNode(buf []byte) (node, error) {
	kind, n, rest, err := decodeHeader(buf)
	if err != nil {
		return nil, err
	}

	switch kind {
	case kindEmpty:
		if len(rest) != 0 {
			return nil, fmt.Errorf("trie: trailing bytes after empty node")
		}
		return nil, nil
	case kindLeaf, kindLeafHashed:
		key, rest, err := unpackNibbles(n, rest)
		if err != nil {
			return nil, err
		}
		var val nodeValue
		if kind == kindLeafHashed {
			if len(rest) < 32 {
				return nil, fmt.Errorf("trie: truncated hashed leaf value")
			}
			var h Hash
			copy(h[:], rest[:32])
			val, rest = hashedValue(h), rest[32:]
		} else {
			data, r, err := decodeBlob(rest)
			if err != nil {
				return nil, err
			}
			val, rest = knownValue(data), r
		}
		if len(rest) != 0 {
			return nil, fmt.Errorf("trie: trailing bytes after leaf node")
		}
		return leafNode{Key: key, Val: val}, nil
	case kindBranchNoValue, kindBranchWithValue, kindBranchHashed:
		partial, rest, err := unpackNibbles(n, rest)
		if err != nil {
			return nil, err
		}
		if len(rest) < 2 {
			return nil, fmt.Errorf("trie: truncated branch bitmap")
		}
		bitmap := uint16(rest[0]) | uint16(rest[1])<<8
		rest = rest[2:]

		var bn branchNode
		bn.PartialKey = partial
		for i := 0; i < 16; i++ {
			if bitmap&(1<<uint(i)) == 0 {
				continue
			}
			child, r, err := decodeChildRef(rest)
			if err != nil {
				return nil, err
			}
			bn.Children[i] = child
			rest = r
		}

		switch kind {
		case kindBranchNoValue:
			bn.Value = noValue{}
		case kindBranchWithValue:
			data, r, err := decodeBlob(rest)
			if err != nil {
				return nil, err
			}
			bn.Value, rest = knownValue(data), r
		case kindBranchHashed:
			if len(rest) < 32 {
				return nil, fmt.Errorf("trie: truncated hashed branch value")
			}
			var h Hash
			copy(h[:], rest[:32])
			bn.Value, rest = hashedValue(h), rest[32:]
		}
		if len(rest) != 0 {
			return nil, fmt.Errorf("trie: trailing bytes after branch node")
		}
		return bn, nil
	default:
		return nil, fmt.Errorf("trie: unhandled node kind %d", kind)
	}
}

// merkleRoot hashes the encoding of n unconditionally: unlike a child
// reference, the root of a trie is always a full 32-byte hash, and an empty
// trie's root is the hash of the empty node, not an all-zero placeholder.
func merkleRoot(n node) (Hash, error) {
	if n == nil {
		return emptyTrieHash, nil
	}
	enc, err := encodeNode(n)
	if err != nil {
		return Hash{}, err
	}
	return hash256(enc), nil
}

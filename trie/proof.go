package trie

import (
	"fmt"

	"github.com/AcalaNetwork/chopsticks/trie/nibble"
)

// KeyValue is one entry recovered from a trie proof.
type KeyValue struct {
	Key   []byte
	Value []byte
}

// DecodeProof verifies that nodeBlobs hash-chain up to root and returns
// every (key, value) pair the proof fully discloses. A hashedValue entry
// contributes no pair, even when its preimage happens to be among
// nodeBlobs: preimages are not looked up, so only inline values are
// returned (§4.B.1).
func DecodeProof(root Hash, nodeBlobs [][]byte) ([]KeyValue, error) {
	idx := indexByHash(nodeBlobs)
	tree, err := resolveRoot(root, idx)
	if err != nil {
		return nil, fmt.Errorf("trie: decode proof: %w", err)
	}
	var out []KeyValue
	walkProof(tree, nil, &out)
	return out, nil
}

func walkProof(n node, prefix []byte, out *[]KeyValue) {
	switch t := n.(type) {
	case nil, hashNode:
		return
	case leafNode:
		full := append(append([]byte{}, prefix...), t.Key...)
		emitValue(full, t.Val, out)
	case branchNode:
		full := append(append([]byte{}, prefix...), t.PartialKey...)
		emitValue(full, t.Value, out)
		for i, c := range t.Children {
			if c == nil {
				continue
			}
			walkProof(c, append(append([]byte{}, full...), byte(i)), out)
		}
	}
}

func emitValue(nibbles []byte, v nodeValue, out *[]KeyValue) {
	kv, ok := v.(knownValue)
	if !ok {
		return
	}
	if len(nibbles)%2 != 0 {
		return // odd nibble count can only occur mid-path, never at a full key
	}
	*out = append(*out, KeyValue{
		Key:   nibble.FromNibblesSuffixExtend(nibbles),
		Value: append([]byte{}, kv...),
	})
}

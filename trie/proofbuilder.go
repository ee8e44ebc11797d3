package trie

import (
	"fmt"
	"sort"

	"github.com/AcalaNetwork/chopsticks/trie/nibble"
)

// proofEntryVersion is the trie entry version CreateProof uses when
// resolving inserted values to their inline-or-hashed representation.
// create_proof's external signature carries no version parameter; V1
// matches every runtime this module targets, so it is the default.
const proofEntryVersion = TrieEntryVersionV1

// CreateProof applies updates (a nil value deletes the key) to the tree
// described by existingNodes and returns the resulting root hash together
// with the minimal set of raw node blobs needed to reconstruct it: every
// untouched, already-known node the updates did not disturb, plus every
// newly built node (§4.B.2).
//
// existingNodes need not include an explicit root: CreateProof identifies
// it as the one node no other proof node references as a child.
func CreateProof(existingNodes [][]byte, updates map[string]*[]byte) (Hash, [][]byte, error) {
	idx := indexByHash(existingNodes)

	var tree node
	if len(idx) > 0 {
		rootHash, err := findRootHash(idx)
		if err != nil {
			return Hash{}, nil, fmt.Errorf("trie: create proof: %w", err)
		}
		tree, err = resolveRoot(rootHash, idx)
		if err != nil {
			return Hash{}, nil, fmt.Errorf("trie: create proof: %w", err)
		}
	}

	keys := make([]string, 0, len(updates))
	for k := range updates {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		nibbles := nibble.ToNibbles([]byte(k))
		val := updates[k]
		var err error
		if val == nil {
			tree, err = deleteKey(tree, nibbles)
		} else {
			tree, err = insertKey(tree, nibbles, valueForVersion(*val, proofEntryVersion))
		}
		if err != nil {
			return Hash{}, nil, fmt.Errorf("trie: create proof: applying update to %x: %w", k, err)
		}
	}

	return collectProofRoot(tree)
}

// collectProofRoot collects the node set for tree and returns its root hash.
// Unlike a child reference, a trie's root is always hashed in full, never
// inlined, and its own bytes are always part of the emitted set.
func collectProofRoot(n node) (Hash, [][]byte, error) {
	switch t := n.(type) {
	case nil:
		return emptyTrieHash, nil, nil
	case hashNode:
		var h Hash
		copy(h[:], t)
		return h, nil, nil
	case leafNode:
		enc, err := encodeNode(t)
		if err != nil {
			return Hash{}, nil, err
		}
		return hash256(enc), [][]byte{enc}, nil
	case branchNode:
		childMV := make([][]byte, 16)
		var emitted [][]byte
		for i, c := range t.Children {
			if c == nil {
				continue
			}
			res, err := collectNodes(c)
			if err != nil {
				return Hash{}, nil, err
			}
			childMV[i] = res.merkleValue
			emitted = append(emitted, res.emitted...)
		}
		enc := encodeBranchWithChildRefs(t, childMV)
		emitted = append(emitted, enc)
		return hash256(enc), emitted, nil
	default:
		return Hash{}, nil, fmt.Errorf("trie: cannot collect proof for node of type %T", n)
	}
}

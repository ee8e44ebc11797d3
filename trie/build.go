package trie

import (
	"sort"

	"github.com/AcalaNetwork/chopsticks/trie/nibble"
)

// entry is a single key/value pair addressed by its nibble path. val is
// already resolved to its final node-value representation (inline or
// hashed, depending on the trie entry version in effect).
type entry struct {
	nibbles []byte
	val     nodeValue
}

// build constructs a patricia node tree from a set of entries whose nibble
// paths have already had any ancestor-consumed prefix stripped.
func build(entries []entry) node {
	if len(entries) == 0 {
		return nil
	}
	if len(entries) == 1 {
		return leafNode{Key: append([]byte{}, entries[0].nibbles...), Val: entries[0].val}
	}

	cp := commonPrefix(entries)
	var ownValue nodeValue = noValue{}
	var buckets [16][]entry
	for _, e := range entries {
		rest := e.nibbles[len(cp):]
		if len(rest) == 0 {
			ownValue = e.val
			continue
		}
		idx := rest[0]
		buckets[idx] = append(buckets[idx], entry{nibbles: rest[1:], val: e.val})
	}

	var bn branchNode
	bn.PartialKey = cp
	bn.Value = ownValue
	for i := 0; i < 16; i++ {
		bn.Children[i] = build(buckets[i])
	}
	return bn
}

func commonPrefix(entries []entry) []byte {
	if len(entries) == 0 {
		return nil
	}
	first := entries[0].nibbles
	n := len(first)
	for _, e := range entries[1:] {
		if len(e.nibbles) < n {
			n = len(e.nibbles)
		}
		for i := 0; i < n; i++ {
			if e.nibbles[i] != first[i] {
				n = i
				break
			}
		}
	}
	return append([]byte{}, first[:n]...)
}

// valueForVersion resolves a raw storage value to its node-value
// representation for the given trie entry version: V1 hashes values
// larger than hashedValueThreshold indirectly, V0 always stores inline.
func valueForVersion(raw []byte, version TrieEntryVersion) nodeValue {
	if version == TrieEntryVersionV1 && len(raw) > hashedValueThreshold {
		return hashedValue(hash256(raw))
	}
	return knownValue(append([]byte{}, raw...))
}

// buildFromMap constructs a node tree from an arbitrary key/value map,
// sorting keys lexicographically first as the spec's canonical ordering
// requires.
func buildFromMap(m map[string][]byte, version TrieEntryVersion) node {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]entry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, entry{
			nibbles: nibble.ToNibbles([]byte(k)),
			val:     valueForVersion(m[k], version),
		})
	}
	return build(entries)
}

package trie

import "fmt"

// indexByHash indexes every raw node blob by the blake2-256 hash of its own
// bytes, which is exactly the Merkle value a parent would reference it by.
// The blobs are not decoded here.
func indexByHash(nodes [][]byte) map[Hash][]byte {
	idx := make(map[Hash][]byte, len(nodes))
	for _, n := range nodes {
		idx[hash256(n)] = n
	}
	return idx
}

// resolveRoot decodes the node stored at rootHash and recursively resolves
// every descendant hashNode reference found in idx, leaving any reference
// idx does not cover as an unresolved hashNode placeholder.
func resolveRoot(rootHash Hash, idx map[Hash][]byte) (node, error) {
	enc, ok := idx[rootHash]
	if !ok {
		return nil, fmt.Errorf("trie: proof does not contain a node for root %x", rootHash[:])
	}
	n, err := decodeNode(enc)
	if err != nil {
		return nil, fmt.Errorf("trie: decoding root node: %w", err)
	}
	return resolveChildren(n, idx)
}

func resolveChildren(n node, idx map[Hash][]byte) (node, error) {
	bn, ok := n.(branchNode)
	if !ok {
		return n, nil
	}
	for i, c := range bn.Children {
		switch t := c.(type) {
		case nil:
			continue
		case hashNode:
			var h Hash
			copy(h[:], t)
			enc, found := idx[h]
			if !found {
				continue // left unresolved: proof does not cover this subtree
			}
			child, err := decodeNode(enc)
			if err != nil {
				return nil, fmt.Errorf("trie: decoding node %x: %w", h[:], err)
			}
			resolved, err := resolveChildren(child, idx)
			if err != nil {
				return nil, err
			}
			bn.Children[i] = resolved
		default:
			resolved, err := resolveChildren(t, idx)
			if err != nil {
				return nil, err
			}
			bn.Children[i] = resolved
		}
	}
	return bn, nil
}

// findRootHash identifies the one node in idx that no other node
// references as a child: the root of the tree the proof describes.
func findRootHash(idx map[Hash][]byte) (Hash, error) {
	referenced := make(map[Hash]bool, len(idx))
	for _, enc := range idx {
		n, err := decodeNode(enc)
		if err != nil {
			return Hash{}, fmt.Errorf("trie: decoding proof node: %w", err)
		}
		collectHashRefs(n, referenced)
	}
	var roots []Hash
	for h := range idx {
		if !referenced[h] {
			roots = append(roots, h)
		}
	}
	if len(roots) != 1 {
		return Hash{}, fmt.Errorf("trie: proof does not describe exactly one root (found %d candidates)", len(roots))
	}
	return roots[0], nil
}

func collectHashRefs(n node, referenced map[Hash]bool) {
	bn, ok := n.(branchNode)
	if !ok {
		return
	}
	for _, c := range bn.Children {
		switch t := c.(type) {
		case hashNode:
			var h Hash
			copy(h[:], t)
			referenced[h] = true
		case nil:
		default:
			collectHashRefs(t, referenced)
		}
	}
}

// longestCommonPrefix returns the length of the shared prefix of a and b.
func longestCommonPrefix(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// insertKey inserts val at key (a nibble path) into the tree rooted at n,
// splitting leaves/branches as needed, and returns the new root.
func insertKey(n node, key []byte, val nodeValue) (node, error) {
	if n == nil {
		return leafNode{Key: append([]byte{}, key...), Val: val}, nil
	}
	switch t := n.(type) {
	case hashNode:
		return nil, fmt.Errorf("trie: cannot insert into an unresolved proof subtree")
	case leafNode:
		cp := longestCommonPrefix(t.Key, key)
		if cp == len(t.Key) && cp == len(key) {
			return leafNode{Key: t.Key, Val: val}, nil
		}
		var bn branchNode
		bn.PartialKey = append([]byte{}, t.Key[:cp]...)
		bn.Value = noValue{}
		oldRest := t.Key[cp:]
		if len(oldRest) == 0 {
			bn.Value = t.Val
		} else {
			bn.Children[oldRest[0]] = leafNode{Key: append([]byte{}, oldRest[1:]...), Val: t.Val}
		}
		newRest := key[cp:]
		if len(newRest) == 0 {
			bn.Value = val
		} else {
			bn.Children[newRest[0]] = leafNode{Key: append([]byte{}, newRest[1:]...), Val: val}
		}
		return bn, nil
	case branchNode:
		cp := longestCommonPrefix(t.PartialKey, key)
		if cp < len(t.PartialKey) {
			var top branchNode
			top.PartialKey = append([]byte{}, t.PartialKey[:cp]...)
			top.Value = noValue{}
			oldRest := t.PartialKey[cp:]
			moved := t
			moved.PartialKey = append([]byte{}, oldRest[1:]...)
			top.Children[oldRest[0]] = moved

			newRest := key[cp:]
			if len(newRest) == 0 {
				top.Value = val
			} else {
				top.Children[newRest[0]] = leafNode{Key: append([]byte{}, newRest[1:]...), Val: val}
			}
			return top, nil
		}
		rest := key[cp:]
		if len(rest) == 0 {
			t.Value = val
			return t, nil
		}
		idx := rest[0]
		child, err := insertKey(t.Children[idx], rest[1:], val)
		if err != nil {
			return nil, err
		}
		t.Children[idx] = child
		return t, nil
	default:
		return nil, fmt.Errorf("trie: cannot insert into node of type %T", n)
	}
}

// deleteKey removes the value stored at key, if any, leaving branch nodes
// in place (§4.B.2 step 4: "leaving branch nodes").
func deleteKey(n node, key []byte) (node, error) {
	if n == nil {
		return nil, nil
	}
	switch t := n.(type) {
	case hashNode:
		// Proof does not cover this subtree; nothing we can do.
		return t, nil
	case leafNode:
		if longestCommonPrefix(t.Key, key) == len(t.Key) && len(t.Key) == len(key) {
			return nil, nil
		}
		return t, nil
	case branchNode:
		cp := longestCommonPrefix(t.PartialKey, key)
		if cp < len(t.PartialKey) {
			return t, nil
		}
		rest := key[cp:]
		if len(rest) == 0 {
			t.Value = noValue{}
			return t, nil
		}
		idx := rest[0]
		child, err := deleteKey(t.Children[idx], rest[1:])
		if err != nil {
			return nil, err
		}
		t.Children[idx] = child
		return t, nil
	default:
		return nil, fmt.Errorf("trie: cannot delete from node of type %T", n)
	}
}

// collectResult pairs a node's Merkle value with the raw node blobs that
// must be emitted (in post-order: children before parents) to let a reader
// reconstruct it.
type collectResult struct {
	merkleValue []byte
	emitted     [][]byte
}

// collectNodes walks n post-order, recomputing every node's encoding and
// Merkle value bottom-up (the proof builder's "make_coherent" step) and
// collecting the raw bytes of every node whose Merkle value is a full hash
// (nodes short enough to inline need no separate entry).
func collectNodes(n node) (collectResult, error) {
	switch t := n.(type) {
	case nil:
		return collectResult{}, nil
	case hashNode:
		// Untouched, unresolved subtree: pass its existing Merkle value
		// through unchanged. We never had its bytes, so nothing to emit.
		return collectResult{merkleValue: append([]byte{}, t...)}, nil
	case leafNode:
		enc, err := encodeNode(t)
		if err != nil {
			return collectResult{}, err
		}
		mv := merkleValueBytes(enc)
		var emitted [][]byte
		if len(mv) == 32 {
			emitted = append(emitted, enc)
		}
		return collectResult{merkleValue: mv, emitted: emitted}, nil
	case branchNode:
		childMV := make([][]byte, 16)
		var emitted [][]byte
		for i, c := range t.Children {
			if c == nil {
				continue
			}
			res, err := collectNodes(c)
			if err != nil {
				return collectResult{}, err
			}
			childMV[i] = res.merkleValue
			emitted = append(emitted, res.emitted...)
		}
		enc := encodeBranchWithChildRefs(t, childMV)
		mv := merkleValueBytes(enc)
		if len(mv) == 32 {
			emitted = append(emitted, enc)
		}
		return collectResult{merkleValue: mv, emitted: emitted}, nil
	default:
		return collectResult{}, fmt.Errorf("trie: cannot collect node of type %T", n)
	}
}

// merkleValueBytes is the Merkle value of an already-encoded node: the
// bytes themselves if shorter than a hash, otherwise their blake2-256 hash.
func merkleValueBytes(enc []byte) []byte {
	if len(enc) < 32 {
		return enc
	}
	h := hash256(enc)
	return h[:]
}

// encodeBranchWithChildRefs encodes t the same way encodeNode does for a
// branch, but takes already-resolved child Merkle values instead of
// recursing into encodeChildRef: collectNodes has already computed them
// bottom-up so each child is hashed (or inlined) at most once.
func encodeBranchWithChildRefs(t branchNode, childMV [][]byte) []byte {
	var bitmap uint16
	for i := range t.Children {
		if t.Children[i] != nil {
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
	for i := 0; i < 16; i++ {
		if t.Children[i] == nil {
			continue
		}
		out = append(out, encodeBlob(childMV[i])...)
	}
	return append(out, valueBytes...)
}

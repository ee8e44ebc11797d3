package trie

import "fmt"

// CombineProofBlob re-encodes a list of raw proof node blobs into the single
// SCALE-framed proof blob a decoder expects: a compact length prefix for
// the node count, then for each node a compact length prefix followed by
// the node's bytes (§4.B.1).
func CombineProofBlob(nodes [][]byte) []byte {
	out := encodeCompact(uint64(len(nodes)))
	for _, n := range nodes {
		out = append(out, encodeCompact(uint64(len(n)))...)
		out = append(out, n...)
	}
	return out
}

// SplitProofBlob reverses CombineProofBlob, recovering the original list of
// raw node blobs.
func SplitProofBlob(blob []byte) ([][]byte, error) {
	count, rest, err := decodeCompact(blob)
	if err != nil {
		return nil, fmt.Errorf("trie: invalid proof blob length prefix: %w", err)
	}
	nodes := make([][]byte, 0, count)
	for i := uint64(0); i < count; i++ {
		n, r, err := decodeCompact(rest)
		if err != nil {
			return nil, fmt.Errorf("trie: invalid proof blob node %d length: %w", i, err)
		}
		if uint64(len(r)) < n {
			return nil, fmt.Errorf("trie: truncated proof blob node %d", i)
		}
		nodes = append(nodes, append([]byte{}, r[:n]...))
		rest = r[n:]
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("trie: trailing bytes after proof blob")
	}
	return nodes, nil
}

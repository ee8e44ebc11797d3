package trie

import "fmt"

// TrieEntryVersion selects how large values are stored: V0 hashes values
// directly inline, V1 hashes values larger than hashedValueThreshold
// indirectly (the node carries the value's hash rather than the value).
type TrieEntryVersion uint8

const (
	TrieEntryVersionV0 TrieEntryVersion = 0
	TrieEntryVersionV1 TrieEntryVersion = 1
)

// hashedValueThreshold is the value size, in bytes, above which a V1 trie
// stores a value's hash instead of the value itself.
const hashedValueThreshold = 32

// StepKind enumerates the pull-based calculator's suspension points.
type StepKind int

const (
	StepFinished StepKind = iota
	StepNextKey
	StepStorageValue
)

// Step is one state of the pull-based Merkle root protocol (§4.A). A NextKey
// step describes a request for the smallest key >=/> KeyBefore sharing
// Prefix; a StorageValue step describes a request for the value (and its
// trie entry version) stored at Key, if any. Calculator only ever reports
// StepFinished, and has no method for a caller to answer the other two.
type Step struct {
	Kind StepKind

	// Finished
	Hash Hash

	// NextKey
	KeyBefore []byte
	OrEqual   bool
	Prefix    []byte

	// StorageValue
	Key []byte
}

// Calculator computes a trie root by pulling key/value pairs out of a
// caller-supplied map. Per §4.A the map is supplied whole up front ("the
// calculator is pure with respect to it"), so this implementation reads the
// whole map itself and never suspends on a NextKey or StorageValue step; it
// cannot be driven against an external oracle instead of an in-memory map.
type Calculator struct {
	kv      map[string][]byte
	version TrieEntryVersion
	done    bool
	result  Hash
	err     error
}

// NewCalculator prepares a Calculator over the given key/value map.
func NewCalculator(kv map[string][]byte, version TrieEntryVersion) *Calculator {
	return &Calculator{kv: kv, version: version}
}

// Step computes the root on first use and reports it as a StepFinished step.
func (c *Calculator) Step() Step {
	if !c.done {
		root := buildFromMap(c.kv, c.version)
		c.result, c.err = merkleRoot(root)
		c.done = true
	}
	return Step{Kind: StepFinished, Hash: c.result}
}

// Err returns any error encountered while computing the root.
func (c *Calculator) Err() error { return c.err }

// CalculateRoot computes the blake2-256 root of kv under the given trie
// entry version. This is the synchronous entry point `calculate_state_root`
// (§6) wraps.
func CalculateRoot(kv map[string][]byte, version TrieEntryVersion) (Hash, error) {
	c := NewCalculator(kv, version)
	step := c.Step()
	if step.Kind != StepFinished {
		return Hash{}, fmt.Errorf("trie: calculator did not finish")
	}
	return step.Hash, c.Err()
}

// Package state implements the per-task storage and offchain-storage
// accumulators the host-call dispatcher folds runtime writes into, giving
// later calls in the same task read-your-writes visibility over earlier
// ones without round-tripping through the state oracle.
package state

import "sort"

// Accumulator is a flat key -> Option<value> diff, read-through over
// whatever oracle backs a task. A present map entry always wins over the
// oracle, whether its value is Some (a write) or None (a delete); absence
// means "ask the oracle". This is the flat-key descendant of the teacher's
// per-account dirty-journal (core/state/journal.go): the account/object
// model doesn't survive the move to a single sorted key space, but the
// "a modification map shadows the backing store until committed" shape
// does.
type Accumulator struct {
	changes map[string]*[]byte
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{changes: make(map[string]*[]byte)}
}

// Lookup reports whether key has a locally known value (set or deleted)
// and, if so, what it is. A nil pointer return with ok=true means the key
// is known deleted.
func (a *Accumulator) Lookup(key []byte) (value *[]byte, ok bool) {
	v, ok := a.changes[string(key)]
	return v, ok
}

// Set records key as written to value.
func (a *Accumulator) Set(key, value []byte) {
	v := append([]byte{}, value...)
	a.changes[string(key)] = &v
}

// Delete records key as removed.
func (a *Accumulator) Delete(key []byte) {
	a.changes[string(key)] = nil
}

// Seed pre-populates the accumulator from an initial key/value snapshot,
// without overwriting any key already recorded (§ "storage seed" open
// question — a legacy TaskCall.Storage list seeds the accumulator before
// the first call).
func (a *Accumulator) Seed(kv map[string][]byte) {
	for k, v := range kv {
		if _, exists := a.changes[k]; exists {
			continue
		}
		val := append([]byte{}, v...)
		a.changes[k] = &val
	}
}

// Merge folds another accumulator's changes on top of this one (later
// writes win). The executor's call loop does not use it: its calls share
// one accumulator directly.
func (a *Accumulator) Merge(other *Accumulator) {
	for k, v := range other.changes {
		a.changes[k] = v
	}
}

// KeyValue is one entry of a serialised storage diff: Value is nil for a
// deletion, otherwise the set value.
type KeyValue struct {
	Key   []byte
	Value *[]byte
}

// Diff returns every recorded change in canonical (lexicographic-on-key)
// order.
func (a *Accumulator) Diff() []KeyValue {
	keys := make([]string, 0, len(a.changes))
	for k := range a.changes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]KeyValue, 0, len(keys))
	for _, k := range keys {
		out = append(out, KeyValue{Key: []byte(k), Value: a.changes[k]})
	}
	return out
}

// Snapshot exposes every recorded Some(value) as a flat map, ignoring
// deletions — the shape buildFromMap-style trie construction needs.
func (a *Accumulator) Snapshot() map[string][]byte {
	out := make(map[string][]byte, len(a.changes))
	for k, v := range a.changes {
		if v != nil {
			out[k] = *v
		}
	}
	return out
}

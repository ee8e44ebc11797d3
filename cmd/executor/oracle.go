package main

import (
	"bytes"
	"context"
	"sort"
)

// mapOracle answers every host-call request from a fixed, fully-resident
// key/value snapshot — enough to drive run_task from the command line
// without standing up a networked state backend (get-runtime-version and
// get-metadata use the executor's own empty oracle instead). It is
// the oracle a real embedder (a chain client, a test harness) would
// replace with one backed by an RPC endpoint or a local database.
type mapOracle struct {
	storage    map[string][]byte
	sortedKeys []string
	offchain   map[string][]byte
}

func newMapOracle(storage map[string][]byte) *mapOracle {
	keys := make([]string, 0, len(storage))
	for k := range storage {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return &mapOracle{storage: storage, sortedKeys: keys, offchain: map[string][]byte{}}
}

func (o *mapOracle) GetStorage(ctx context.Context, key []byte) ([]byte, bool, error) {
	v, ok := o.storage[string(key)]
	return v, ok, nil
}

func (o *mapOracle) GetNextKey(ctx context.Context, prefix, key []byte, orEqual bool) ([]byte, bool, error) {
	idx := sort.Search(len(o.sortedKeys), func(i int) bool {
		cmp := bytes.Compare([]byte(o.sortedKeys[i]), key)
		if orEqual {
			return cmp >= 0
		}
		return cmp > 0
	})
	for ; idx < len(o.sortedKeys); idx++ {
		candidate := o.sortedKeys[idx]
		if !bytes.HasPrefix([]byte(candidate), prefix) {
			return nil, false, nil
		}
		return []byte(candidate), true, nil
	}
	return nil, false, nil
}

func (o *mapOracle) OffchainGetStorage(ctx context.Context, key []byte) ([]byte, bool, error) {
	v, ok := o.offchain[string(key)]
	return v, ok, nil
}

func (o *mapOracle) OffchainTimestamp(ctx context.Context) (uint64, error) { return 0, nil }

func (o *mapOracle) OffchainRandomSeed(ctx context.Context) ([32]byte, error) { return [32]byte{}, nil }

func (o *mapOracle) OffchainSubmitTransaction(ctx context.Context, tx []byte) (bool, error) {
	return true, nil
}

package hostvm

import (
	"context"
	"fmt"

	"github.com/AcalaNetwork/chopsticks/core/state"
	"github.com/AcalaNetwork/chopsticks/trie/nibble"
)

// Dispatcher is the host-call dispatcher (component C): it translates each
// VM suspension into either a local accumulator lookup or a state-oracle
// call, and folds the reply back toward the VM. One Dispatcher serves one
// call; the Storage and Offchain accumulators it is given can be shared by
// the dispatchers of every call within a task, so later calls observe
// earlier calls' writes without asking the oracle again (the "local
// read-through cache").
type Dispatcher struct {
	Oracle            Oracle
	Storage           *state.Accumulator
	Offchain          *state.Accumulator
	MockSignatureHost bool
	BranchNodes       bool // true while the VM calculates trie changes internally
	Logs              []LogInfo
}

// LogInfo is one captured runtime log line.
type LogInfo struct {
	Message string
	Level   *int32
	Target  *string
}

// NewDispatcher prepares a dispatcher for one call, backed by the given
// oracle and pre-seeded accumulators.
func NewDispatcher(oracle Oracle, storage, offchain *state.Accumulator, mockSignatureHost bool) *Dispatcher {
	return &Dispatcher{
		Oracle:            oracle,
		Storage:           storage,
		Offchain:          offchain,
		MockSignatureHost: mockSignatureHost,
		BranchNodes:       true,
	}
}

// Handle answers one VM suspension. It never blocks on anything but the
// oracle: local accumulator hits and signature verification resolve
// synchronously.
func (d *Dispatcher) Handle(ctx context.Context, req HostRequest) (HostResponse, error) {
	switch r := req.(type) {
	case StorageGetRequest:
		return d.handleStorageGet(ctx, r)
	case StorageSetRequest:
		d.Storage.Set(nibble.MaybePrefixed(r.Child, r.Key), r.Value)
		return HostResponse{}, nil
	case StorageClearRequest:
		d.Storage.Delete(nibble.MaybePrefixed(r.Child, r.Key))
		return HostResponse{}, nil
	case ClosestDescendantMerkleValueRequest:
		// Preserved "internal calculation" path (Design Notes open
		// question): always None, regardless of BranchNodes.
		return HostResponse{}, nil
	case NextKeyRequest:
		return d.handleNextKey(ctx, r)
	case SignatureVerificationRequest:
		return d.handleSignatureVerification(r)
	case OffchainStorageSetRequest:
		d.Offchain.Set(r.Key, r.Value)
		return HostResponse{}, nil
	case OffchainGetRequest:
		return d.handleOffchainGet(ctx, r)
	case OffchainCompareAndSetRequest:
		return d.handleOffchainCompareAndSet(r)
	case OffchainTimestampRequest:
		ts, err := d.Oracle.OffchainTimestamp(ctx)
		if err != nil {
			return HostResponse{}, fmt.Errorf("hostvm: offchain timestamp: %w", err)
		}
		return HostResponse{Timestamp: ts}, nil
	case OffchainRandomSeedRequest:
		seed, err := d.Oracle.OffchainRandomSeed(ctx)
		if err != nil {
			return HostResponse{}, fmt.Errorf("hostvm: offchain random seed: %w", err)
		}
		return HostResponse{RandomSeed: seed}, nil
	case OffchainSubmitTransactionRequest:
		ok, err := d.Oracle.OffchainSubmitTransaction(ctx, r.Transaction)
		if err != nil {
			return HostResponse{}, fmt.Errorf("hostvm: offchain submit transaction: %w", err)
		}
		return HostResponse{Submitted: ok}, nil
	case LogEmitRequest:
		d.Logs = append(d.Logs, LogInfo{Message: r.Message, Level: r.Level, Target: r.Target})
		return HostResponse{}, nil
	default:
		return HostResponse{}, fmt.Errorf("hostvm: unhandled host request %T", req)
	}
}

func (d *Dispatcher) handleStorageGet(ctx context.Context, r StorageGetRequest) (HostResponse, error) {
	flatKey := nibble.MaybePrefixed(r.Child, r.Key)

	if v, ok := d.Storage.Lookup(flatKey); ok {
		if v == nil {
			return HostResponse{StorageFound: false}, nil
		}
		return HostResponse{StorageValue: *v, StorageVersion: TrieEntryVersionV1, StorageFound: true}, nil
	}

	value, found, err := d.Oracle.GetStorage(ctx, flatKey)
	if err != nil {
		return HostResponse{}, fmt.Errorf("hostvm: storage get %x: %w", flatKey, err)
	}
	if !found {
		return HostResponse{StorageFound: false}, nil
	}
	return HostResponse{StorageValue: value, StorageVersion: TrieEntryVersionV1, StorageFound: true}, nil
}

func (d *Dispatcher) handleNextKey(ctx context.Context, r NextKeyRequest) (HostResponse, error) {
	if d.BranchNodes {
		// Internal root-calculation path: skip next-key resolution.
		return HostResponse{NextKeyFound: false}, nil
	}
	flatPrefix := nibble.MaybePrefixed(r.Child, r.Prefix)
	flatKeyBefore := nibble.MaybePrefixed(r.Child, r.KeyBefore)

	next, found, err := d.Oracle.GetNextKey(ctx, flatPrefix, flatKeyBefore, r.OrEqual)
	if err != nil {
		return HostResponse{}, fmt.Errorf("hostvm: next key after %x: %w", flatKeyBefore, err)
	}
	return HostResponse{NextKey: next, NextKeyFound: found}, nil
}

func (d *Dispatcher) handleSignatureVerification(r SignatureVerificationRequest) (HostResponse, error) {
	if d.MockSignatureHost && IsMagicSignature(r.Signature) {
		return HostResponse{SignatureValid: true}, nil
	}
	valid, err := VerifySignature(r.Scheme, r.Signature, r.Message, r.PublicKey)
	if err != nil {
		return HostResponse{}, fmt.Errorf("hostvm: signature verification: %w", err)
	}
	return HostResponse{SignatureValid: valid}, nil
}

func (d *Dispatcher) handleOffchainGet(ctx context.Context, r OffchainGetRequest) (HostResponse, error) {
	if v, ok := d.Offchain.Lookup(r.Key); ok {
		if v == nil {
			return HostResponse{OffchainFound: false}, nil
		}
		return HostResponse{OffchainValue: *v, OffchainFound: true}, nil
	}
	value, found, err := d.Oracle.OffchainGetStorage(ctx, r.Key)
	if err != nil {
		return HostResponse{}, fmt.Errorf("hostvm: offchain get %x: %w", r.Key, err)
	}
	return HostResponse{OffchainValue: value, OffchainFound: found}, nil
}

func (d *Dispatcher) handleOffchainCompareAndSet(r OffchainCompareAndSetRequest) (HostResponse, error) {
	current, ok := d.Offchain.Lookup(r.Key)
	matches := r.OldValue == nil
	if !matches {
		matches = ok && current != nil && bytesEqual(*current, *r.OldValue)
	}
	if !matches {
		return HostResponse{CompareAndSetOK: false}, nil
	}
	d.Offchain.Set(r.Key, r.NewValue)
	return HostResponse{CompareAndSetOK: true}, nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

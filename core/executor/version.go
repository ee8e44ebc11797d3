package executor

import (
	"bytes"
	"context"
	"fmt"

	"github.com/AcalaNetwork/chopsticks/core/hostvm"
	"github.com/AcalaNetwork/chopsticks/core/state"
	"github.com/AcalaNetwork/chopsticks/rpc/task"
	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
)

// coreVersionEntry is the SCALE shape of one (name_hash, version) pair in
// Core_version's apis list.
type coreVersionEntry struct {
	NameHash [8]byte
	Version  uint32
}

// coreVersionFull is Core_version's full SCALE record, including the two
// trailing fields (transaction_version, state_version) newer runtimes
// append.
type coreVersionFull struct {
	SpecName           []byte
	ImplName           []byte
	AuthoringVersion   uint32
	SpecVersion        uint32
	ImplVersion        uint32
	Apis               []coreVersionEntry
	TransactionVersion uint32
	StateVersion       uint8
}

// coreVersionLegacy is the same record without the two trailing fields, for
// runtimes compiled against an older metadata revision (§3 Data Model:
// "transaction_version and state_version default to 0 if absent").
type coreVersionLegacy struct {
	SpecName         []byte
	ImplName         []byte
	AuthoringVersion uint32
	SpecVersion      uint32
	ImplVersion      uint32
	Apis             []coreVersionEntry
}

// decodeRuntimeVersion decodes the raw bytes returned by a runtime's
// Core_version entry point, accepting both the full and legacy record
// shapes.
func decodeRuntimeVersion(raw []byte) (task.RuntimeVersion, error) {
	var full coreVersionFull
	if err := scale.NewDecoder(bytes.NewReader(raw)).Decode(&full); err == nil {
		return toRuntimeVersion(full.SpecName, full.ImplName, full.AuthoringVersion, full.SpecVersion,
			full.ImplVersion, full.Apis, full.TransactionVersion, full.StateVersion), nil
	}

	var legacy coreVersionLegacy
	if err := scale.NewDecoder(bytes.NewReader(raw)).Decode(&legacy); err != nil {
		return task.RuntimeVersion{}, fmt.Errorf("executor: decoding runtime version: %w", err)
	}
	return toRuntimeVersion(legacy.SpecName, legacy.ImplName, legacy.AuthoringVersion, legacy.SpecVersion,
		legacy.ImplVersion, legacy.Apis, 0, 0), nil
}

func toRuntimeVersion(specName, implName []byte, authoringVersion, specVersion, implVersion uint32,
	apis []coreVersionEntry, transactionVersion uint32, stateVersion uint8) task.RuntimeVersion {
	out := task.RuntimeVersion{
		SpecName:           specName,
		ImplName:           implName,
		AuthoringVersion:   authoringVersion,
		SpecVersion:        specVersion,
		ImplVersion:        implVersion,
		TransactionVersion: transactionVersion,
		StateVersion:       stateVersion,
	}
	out.APIs = make([]task.RuntimeAPI, len(apis))
	for i, a := range apis {
		out.APIs[i] = task.RuntimeAPI{NameHash: a.NameHash, Version: a.Version}
	}
	return out
}

// GetRuntimeVersion instantiates wasmCode with the unresolved-imports flag
// set and decodes its declared Core_version. The flag does not stub missing
// host imports (see hostvm.Run), so a runtime that imports a host function
// hostvm does not export still fails here.
func GetRuntimeVersion(ctx context.Context, wasmCode []byte) (task.RuntimeVersion, error) {
	proto, err := hostvm.NewPrototype(ctx, wasmCode, true)
	if err != nil {
		return task.RuntimeVersion{}, fmt.Errorf("executor: compiling runtime: %w", err)
	}

	dispatcher := hostvm.NewDispatcher(emptyOracle{}, state.NewAccumulator(), state.NewAccumulator(), false)
	result, err := hostvm.Run(ctx, proto, dispatcher, "Core_version", nil)
	if err != nil {
		return task.RuntimeVersion{}, fmt.Errorf("executor: running Core_version: %w", err)
	}
	return decodeRuntimeVersion(result)
}

// GetMetadata runs the Metadata_metadata entry point against an empty
// state (§4.E): every host call the runtime makes while building metadata
// returns an empty/absent response.
func GetMetadata(ctx context.Context, wasmCode []byte) ([]byte, error) {
	proto, err := hostvm.NewPrototype(ctx, wasmCode, true)
	if err != nil {
		return nil, fmt.Errorf("executor: compiling runtime: %w", err)
	}

	dispatcher := hostvm.NewDispatcher(emptyOracle{}, state.NewAccumulator(), state.NewAccumulator(), false)
	return hostvm.Run(ctx, proto, dispatcher, "Metadata_metadata", nil)
}

// emptyOracle answers every request with "absent"/zero, matching §4.E's
// "every host call returns an empty / absent response" contract for
// introspection-only runs.
type emptyOracle struct{}

func (emptyOracle) GetStorage(context.Context, []byte) ([]byte, bool, error) { return nil, false, nil }
func (emptyOracle) GetNextKey(context.Context, []byte, []byte, bool) ([]byte, bool, error) {
	return nil, false, nil
}
func (emptyOracle) OffchainGetStorage(context.Context, []byte) ([]byte, bool, error) {
	return nil, false, nil
}
func (emptyOracle) OffchainTimestamp(context.Context) (uint64, error)      { return 0, nil }
func (emptyOracle) OffchainRandomSeed(context.Context) ([32]byte, error)   { return [32]byte{}, nil }
func (emptyOracle) OffchainSubmitTransaction(context.Context, []byte) (bool, error) {
	return false, nil
}

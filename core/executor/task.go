// Package executor implements the call loop (component D) and the
// runtime-version/metadata accessors (component E) that sit between the
// wire schema (rpc/task) and the host-call dispatcher (core/hostvm),
// grounded in the teacher's probe/backend.go style of orchestrating one VM
// instantiation per call behind a single synchronous entry point.
package executor

import (
	"context"
	"fmt"

	"github.com/AcalaNetwork/chopsticks/core/hostvm"
	"github.com/AcalaNetwork/chopsticks/core/state"
	"github.com/AcalaNetwork/chopsticks/rpc/task"
)

// RunTask executes every call of a TaskCall in order against oracle,
// threading storage and offchain writes across calls so a later call
// observes an earlier one's writes (read-your-writes) without asking the
// oracle again. The first call that errors aborts every call after it;
// the response is then Error-only — no partial storage or offchain diff
// is ever serialised (abort-on-first-error semantics).
func RunTask(ctx context.Context, oracle hostvm.Oracle, call task.TaskCall) task.TaskResponse {
	proto, err := hostvm.NewPrototype(ctx, call.Wasm, call.AllowUnresolvedImports)
	if err != nil {
		return errorResponse(fmt.Errorf("executor: compiling runtime: %w", err))
	}

	storage := state.NewAccumulator()
	offchain := state.NewAccumulator()
	storage.Seed(seedMap(call.Storage))

	var logs []task.LogInfo
	var lastResult []byte

	for _, c := range call.Calls {
		dispatcher := hostvm.NewDispatcher(oracle, storage, offchain, call.MockSignatureHost)
		// A task's calls execute against live chain state, not an
		// internally-calculated root: next-key suspensions must reach the
		// oracle rather than being short-circuited.
		dispatcher.BranchNodes = false

		input := concatParams(c.Params)
		result, err := hostvm.Run(ctx, proto, dispatcher, c.Name, input)
		if err != nil {
			return errorResponse(fmt.Errorf("executor: call %q: %w", c.Name, err))
		}

		lastResult = result
		logs = append(logs, toLogInfo(dispatcher.Logs)...)
	}

	return task.TaskResponse{Call: &task.CallResponse{
		Result:              lastResult,
		StorageDiff:         toDiffEntries(storage.Diff()),
		OffchainStorageDiff: toDiffEntries(offchain.Diff()),
		RuntimeLogs:         logs,
	}}
}

func errorResponse(err error) task.TaskResponse {
	msg := err.Error()
	return task.TaskResponse{Error: &msg}
}

func seedMap(pairs []task.KeyValuePair) map[string][]byte {
	out := make(map[string][]byte, len(pairs))
	for _, p := range pairs {
		out[string(p.Key)] = p.Value
	}
	return out
}

func concatParams(params []task.HexBytes) []byte {
	var total int
	for _, p := range params {
		total += len(p)
	}
	out := make([]byte, 0, total)
	for _, p := range params {
		out = append(out, p...)
	}
	return out
}

func toDiffEntries(kv []state.KeyValue) []task.DiffEntry {
	out := make([]task.DiffEntry, len(kv))
	for i, e := range kv {
		entry := task.DiffEntry{Key: e.Key}
		if e.Value != nil {
			v := task.HexBytes(*e.Value)
			entry.Value = &v
		}
		out[i] = entry
	}
	return out
}

func toLogInfo(dispatcherLogs []hostvm.LogInfo) []task.LogInfo {
	out := make([]task.LogInfo, len(dispatcherLogs))
	for i, l := range dispatcherLogs {
		entry := task.LogInfo{Message: l.Message, Target: l.Target}
		if l.Level != nil {
			v := uint32(*l.Level)
			entry.Level = &v
		}
		out[i] = entry
	}
	return out
}

package task

import "encoding/json"

// CallParams is one entry of TaskCall.Calls: a runtime entry-point name
// and its SCALE-encoded argument blobs.
type CallParams struct {
	Name   string     `json:"name"`
	Params []HexBytes `json:"params"`
}

// KeyValuePair is a flat (key, value) pair, used for an initial storage
// seed.
type KeyValuePair struct {
	Key   HexBytes `json:"key"`
	Value HexBytes `json:"value"`
}

// TaskCall is the embedder's request to run_task (§3 Data Model).
type TaskCall struct {
	Wasm                   HexBytes     `json:"wasm"`
	Calls                  []CallParams `json:"calls"`
	MockSignatureHost      bool         `json:"mock_signature_host"`
	AllowUnresolvedImports bool         `json:"allow_unresolved_imports"`
	RuntimeLogLevel        uint32       `json:"runtime_log_level"`

	// Storage is the legacy seeded-storage field (Design Notes open
	// question "storage seed"): when present, it pre-populates the
	// accumulator before the first call. Absent in the current TaskCall
	// revision, but still accepted.
	Storage []KeyValuePair `json:"storage,omitempty"`
}

// DiffEntry is one (key, Option<value>) pair of a serialised storage diff;
// Value is nil for a deletion.
type DiffEntry struct {
	Key   HexBytes  `json:"key"`
	Value *HexBytes `json:"value"`
}

// LogInfo is one captured runtime log line.
type LogInfo struct {
	Message string  `json:"message"`
	Level   *uint32 `json:"level,omitempty"`
	Target  *string `json:"target,omitempty"`
}

// CallResponse is the successful result of run_task.
type CallResponse struct {
	Result              HexBytes    `json:"result"`
	StorageDiff         []DiffEntry `json:"storage_diff"`
	OffchainStorageDiff []DiffEntry `json:"offchain_storage_diff"`
	RuntimeLogs         []LogInfo   `json:"runtime_logs"`
}

// TaskResponse is the Call(CallResponse) | Error(string) sum (§3).
type TaskResponse struct {
	Call  *CallResponse
	Error *string
}

// MarshalJSON renders the sum as whichever single-key object is set.
func (r TaskResponse) MarshalJSON() ([]byte, error) {
	switch {
	case r.Error != nil:
		return json.Marshal(struct {
			Error string `json:"Error"`
		}{*r.Error})
	case r.Call != nil:
		return json.Marshal(struct {
			Call *CallResponse `json:"Call"`
		}{r.Call})
	default:
		return json.Marshal(struct {
			Error string `json:"Error"`
		}{"empty task response"})
	}
}

// UnmarshalJSON recovers whichever variant the single-key object carries.
func (r *TaskResponse) UnmarshalJSON(data []byte) error {
	var probe struct {
		Call  *CallResponse `json:"Call"`
		Error *string       `json:"Error"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	r.Call = probe.Call
	r.Error = probe.Error
	return nil
}

// RuntimeAPI is one (name_hash, version) pair of a RuntimeVersion's apis
// list.
type RuntimeAPI struct {
	NameHash [8]byte
	Version  uint32
}

// MarshalJSON renders NameHash as lowercase hex.
func (a RuntimeAPI) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		NameHash string `json:"name_hash"`
		Version  uint32 `json:"version"`
	}{EncodeHex(a.NameHash[:]), a.Version})
}

// RuntimeVersion is the decoded Core_version record (§3 Data Model).
type RuntimeVersion struct {
	SpecName           HexBytes     `json:"spec_name"`
	ImplName           HexBytes     `json:"impl_name"`
	AuthoringVersion   uint32       `json:"authoring_version"`
	SpecVersion        uint32       `json:"spec_version"`
	ImplVersion        uint32       `json:"impl_version"`
	APIs               []RuntimeAPI `json:"apis"`
	TransactionVersion uint32       `json:"transaction_version"`
	StateVersion       uint8        `json:"state_version"`
}

// Package hostvm drives a compiled Substrate-style runtime through wazero
// and services its host-function suspensions against a state oracle. It is
// the coroutine-style VM and host-call dispatcher described for this
// module: the runtime's WASM execution runs on its own goroutine, and each
// host import it calls hands a typed request across a channel to whatever
// loop is pumping the VM (see bridge.go), rather than blocking that loop
// directly on an asynchronous oracle.
package hostvm

// TrieEntryVersion mirrors trie.TrieEntryVersion without importing the
// trie package into the request/response vocabulary; hostvm only needs
// the two numeric values a StorageGet response carries.
type TrieEntryVersion uint8

const (
	TrieEntryVersionV0 TrieEntryVersion = 0
	TrieEntryVersionV1 TrieEntryVersion = 1
)

// HostRequest is the sum type of every suspension the VM can raise,
// mirroring the variant table in the dispatcher design: StorageGet,
// ClosestDescendantMerkleValue, NextKey, SignatureVerification, the
// Offchain::* family, and LogEmit.
type HostRequest interface {
	isHostRequest()
}

type (
	// StorageGetRequest asks for the value (and trie entry version) at a
	// main- or child-trie key.
	StorageGetRequest struct {
		Child []byte // nil/empty for the main trie
		Key   []byte
	}

	// ClosestDescendantMerkleValueRequest is unreachable for main-trie
	// executions when trie changes are calculated internally; per the
	// preserved "internal calculation" path it always resolves to None.
	ClosestDescendantMerkleValueRequest struct {
		Child []byte
		Key   []byte
	}

	// NextKeyRequest asks for the smallest key satisfying KeyBefore/OrEqual
	// that shares Prefix.
	NextKeyRequest struct {
		Child     []byte
		KeyBefore []byte
		OrEqual   bool
		Prefix    []byte
	}

	// SignatureVerificationRequest asks whether Signature over Message
	// verifies under PublicKey using Scheme ("ed25519", "sr25519",
	// "ecdsa").
	SignatureVerificationRequest struct {
		Scheme    string
		Signature []byte
		Message   []byte
		PublicKey []byte
	}

	// OffchainStorageSetRequest records a write into the offchain diff;
	// it always resumes successfully.
	OffchainStorageSetRequest struct {
		Key   []byte
		Value []byte
	}

	// OffchainGetRequest asks the offchain oracle for a value.
	OffchainGetRequest struct {
		Key []byte
	}

	// OffchainCompareAndSetRequest performs a compare-and-swap against the
	// current offchain diff value. OldValue is nil when the runtime
	// supplied no comparison value (any current value, or none, matches).
	OffchainCompareAndSetRequest struct {
		Key      []byte
		OldValue *[]byte
		NewValue []byte
	}

	// OffchainTimestampRequest asks for the current time in milliseconds.
	OffchainTimestampRequest struct{}

	// OffchainRandomSeedRequest asks for a 32-byte random seed.
	OffchainRandomSeedRequest struct{}

	// OffchainSubmitTransactionRequest forwards extrinsic bytes to the
	// oracle for submission.
	OffchainSubmitTransactionRequest struct {
		Transaction []byte
	}

	// LogEmitRequest captures one runtime log line. Level/Target are nil
	// for the numeric/string/hex variants, which carry only Message.
	LogEmitRequest struct {
		Level   *int32
		Target  *string
		Message string
	}

	// StorageSetRequest writes into the task's local storage overlay —
	// the host side of the "VM's reported storage_changes" the dispatcher
	// folds between calls. Main-trie writes never reach the oracle.
	StorageSetRequest struct {
		Child []byte
		Key   []byte
		Value []byte
	}

	// StorageClearRequest deletes a key from the task's local storage
	// overlay.
	StorageClearRequest struct {
		Child []byte
		Key   []byte
	}
)

func (StorageGetRequest) isHostRequest()                   {}
func (ClosestDescendantMerkleValueRequest) isHostRequest() {}
func (NextKeyRequest) isHostRequest()                      {}
func (SignatureVerificationRequest) isHostRequest()        {}
func (OffchainStorageSetRequest) isHostRequest()           {}
func (OffchainGetRequest) isHostRequest()                  {}
func (OffchainCompareAndSetRequest) isHostRequest()        {}
func (OffchainTimestampRequest) isHostRequest()            {}
func (OffchainRandomSeedRequest) isHostRequest()           {}
func (OffchainSubmitTransactionRequest) isHostRequest()    {}
func (LogEmitRequest) isHostRequest()                      {}
func (StorageSetRequest) isHostRequest()                   {}
func (StorageClearRequest) isHostRequest()                 {}

// HostResponse is the dispatcher's answer to a HostRequest, one field of
// which is populated depending on the request's concrete type.
type HostResponse struct {
	StorageValue    []byte
	StorageVersion  TrieEntryVersion
	StorageFound    bool
	NextKey         []byte
	NextKeyFound    bool
	MerkleValue     []byte // always absent: see ClosestDescendantMerkleValueRequest
	SignatureValid  bool
	OffchainValue   []byte
	OffchainFound   bool
	CompareAndSetOK bool
	Timestamp       uint64
	RandomSeed      [32]byte
	Submitted       bool
}

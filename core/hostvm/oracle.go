package hostvm

import "context"

// Oracle is the externally provided state backend the dispatcher consults
// whenever the task's local accumulator has no answer of its own. It is
// the consumed side of the oracle interface: getStorage, getNextKey, and
// the four offchain operations.
type Oracle interface {
	// GetStorage returns the value at key, or found=false if absent.
	GetStorage(ctx context.Context, key []byte) (value []byte, found bool, err error)

	// GetNextKey returns the smallest key sharing prefix that is >=/> key
	// (per orEqual), or found=false if none exists.
	GetNextKey(ctx context.Context, prefix, key []byte, orEqual bool) (next []byte, found bool, err error)

	// OffchainGetStorage returns the offchain value at key, or
	// found=false if absent.
	OffchainGetStorage(ctx context.Context, key []byte) (value []byte, found bool, err error)

	// OffchainTimestamp returns the current time in milliseconds.
	OffchainTimestamp(ctx context.Context) (uint64, error)

	// OffchainRandomSeed returns a 32-byte random seed.
	OffchainRandomSeed(ctx context.Context) ([32]byte, error)

	// OffchainSubmitTransaction forwards tx for submission and reports
	// whether the oracle accepted it.
	OffchainSubmitTransaction(ctx context.Context, tx []byte) (bool, error)
}

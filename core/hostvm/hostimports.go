package hostvm

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
)

// registerHostFunctions wires the "env" host module's imports to the
// bridge, covering the suspension variants the dispatcher understands
// (§4.C) except ClosestDescendantMerkleValue, which no import here raises.
// Block/session/consensus-API host functions (BABE, GRANDPA, sandboxing)
// are not exported; a runtime blob that imports them fails to instantiate,
// with or without allow_unresolved_imports (see Run).
func registerHostFunctions(b wazero.HostModuleBuilder, br *bridge) {
	b.NewFunctionBuilder().
		WithFunc(func(ctx context.Context, mod api.Module, keyPacked uint64) uint64 {
			key, err := readPointerSize(mod, keyPacked)
			if err != nil {
				panic(err)
			}
			resp := br.call(StorageGetRequest{Key: key})
			out := encodeOption(resp.StorageFound, resp.StorageValue)
			packed, err := writeToGuest(ctx, mod, out)
			if err != nil {
				panic(err)
			}
			return packed
		}).
		Export("ext_storage_get_version_1").
		NewFunctionBuilder().
		WithFunc(func(ctx context.Context, mod api.Module, keyPacked, valuePacked uint64) {
			key, err := readPointerSize(mod, keyPacked)
			if err != nil {
				panic(err)
			}
			value, err := readPointerSize(mod, valuePacked)
			if err != nil {
				panic(err)
			}
			br.call(StorageSetRequest{Key: key, Value: value})
		}).
		Export("ext_storage_set_version_1").
		NewFunctionBuilder().
		WithFunc(func(ctx context.Context, mod api.Module, keyPacked uint64) {
			key, err := readPointerSize(mod, keyPacked)
			if err != nil {
				panic(err)
			}
			br.call(StorageClearRequest{Key: key})
		}).
		Export("ext_storage_clear_version_1").
		NewFunctionBuilder().
		WithFunc(func(ctx context.Context, mod api.Module, keyBeforePacked, prefixPacked uint64) uint64 {
			keyBefore, err := readPointerSize(mod, keyBeforePacked)
			if err != nil {
				panic(err)
			}
			prefix, err := readPointerSize(mod, prefixPacked)
			if err != nil {
				panic(err)
			}
			resp := br.call(NextKeyRequest{KeyBefore: keyBefore, Prefix: prefix, OrEqual: false})
			out := encodeOption(resp.NextKeyFound, resp.NextKey)
			packed, err := writeToGuest(ctx, mod, out)
			if err != nil {
				panic(err)
			}
			return packed
		}).
		Export("ext_storage_next_key_version_1").
		NewFunctionBuilder().
		WithFunc(func(ctx context.Context, mod api.Module, childPacked, keyPacked uint64) uint64 {
			child, err := readPointerSize(mod, childPacked)
			if err != nil {
				panic(err)
			}
			key, err := readPointerSize(mod, keyPacked)
			if err != nil {
				panic(err)
			}
			resp := br.call(StorageGetRequest{Child: child, Key: key})
			out := encodeOption(resp.StorageFound, resp.StorageValue)
			packed, err := writeToGuest(ctx, mod, out)
			if err != nil {
				panic(err)
			}
			return packed
		}).
		Export("ext_default_child_storage_get_version_1").
		NewFunctionBuilder().
		WithFunc(func(ctx context.Context, mod api.Module, childPacked, keyPacked, valuePacked uint64) {
			child, err := readPointerSize(mod, childPacked)
			if err != nil {
				panic(err)
			}
			key, err := readPointerSize(mod, keyPacked)
			if err != nil {
				panic(err)
			}
			value, err := readPointerSize(mod, valuePacked)
			if err != nil {
				panic(err)
			}
			br.call(StorageSetRequest{Child: child, Key: key, Value: value})
		}).
		Export("ext_default_child_storage_set_version_1").
		NewFunctionBuilder().
		WithFunc(func(ctx context.Context, mod api.Module, childPacked, keyPacked uint64) {
			child, err := readPointerSize(mod, childPacked)
			if err != nil {
				panic(err)
			}
			key, err := readPointerSize(mod, keyPacked)
			if err != nil {
				panic(err)
			}
			br.call(StorageClearRequest{Child: child, Key: key})
		}).
		Export("ext_default_child_storage_clear_version_1").
		NewFunctionBuilder().
		WithFunc(func(ctx context.Context, mod api.Module, childPacked, keyBeforePacked, prefixPacked uint64) uint64 {
			child, err := readPointerSize(mod, childPacked)
			if err != nil {
				panic(err)
			}
			keyBefore, err := readPointerSize(mod, keyBeforePacked)
			if err != nil {
				panic(err)
			}
			prefix, err := readPointerSize(mod, prefixPacked)
			if err != nil {
				panic(err)
			}
			resp := br.call(NextKeyRequest{Child: child, KeyBefore: keyBefore, Prefix: prefix})
			out := encodeOption(resp.NextKeyFound, resp.NextKey)
			packed, err := writeToGuest(ctx, mod, out)
			if err != nil {
				panic(err)
			}
			return packed
		}).
		Export("ext_default_child_storage_next_key_version_1").
		NewFunctionBuilder().
		WithFunc(verifySignatureHostFunc(br, "ed25519")).
		Export("ext_crypto_ed25519_verify_version_1").
		NewFunctionBuilder().
		WithFunc(verifySignatureHostFunc(br, "sr25519")).
		Export("ext_crypto_sr25519_verify_version_2").
		NewFunctionBuilder().
		WithFunc(verifySignatureHostFunc(br, "ecdsa")).
		Export("ext_crypto_ecdsa_verify_version_2").
		NewFunctionBuilder().
		WithFunc(func(ctx context.Context, mod api.Module, level int32, targetPacked, messagePacked uint64) {
			target, err := readPointerSize(mod, targetPacked)
			if err != nil {
				panic(err)
			}
			message, err := readPointerSize(mod, messagePacked)
			if err != nil {
				panic(err)
			}
			t := string(target)
			lvl := level
			br.call(LogEmitRequest{Level: &lvl, Target: &t, Message: string(message)})
		}).
		Export("ext_logging_log_version_1").
		NewFunctionBuilder().
		WithFunc(func(ctx context.Context, mod api.Module, keyPacked uint64) uint64 {
			key, err := readPointerSize(mod, keyPacked)
			if err != nil {
				panic(err)
			}
			resp := br.call(OffchainGetRequest{Key: key})
			out := encodeOption(resp.OffchainFound, resp.OffchainValue)
			packed, err := writeToGuest(ctx, mod, out)
			if err != nil {
				panic(err)
			}
			return packed
		}).
		Export("ext_offchain_local_storage_get_version_1").
		NewFunctionBuilder().
		WithFunc(func(ctx context.Context, mod api.Module, kind int32, keyPacked, valuePacked uint64) {
			key, err := readPointerSize(mod, keyPacked)
			if err != nil {
				panic(err)
			}
			value, err := readPointerSize(mod, valuePacked)
			if err != nil {
				panic(err)
			}
			br.call(OffchainStorageSetRequest{Key: key, Value: value})
		}).
		Export("ext_offchain_local_storage_set_version_1").
		NewFunctionBuilder().
		WithFunc(func(ctx context.Context, mod api.Module, kind int32, keyPacked, oldValuePacked, newValuePacked uint64) int32 {
			key, err := readPointerSize(mod, keyPacked)
			if err != nil {
				panic(err)
			}
			newValue, err := readPointerSize(mod, newValuePacked)
			if err != nil {
				panic(err)
			}
			oldRaw, err := readPointerSize(mod, oldValuePacked)
			if err != nil {
				panic(err)
			}
			var oldValue *[]byte
			if len(oldRaw) > 0 {
				oldValue = &oldRaw
			}
			resp := br.call(OffchainCompareAndSetRequest{Key: key, OldValue: oldValue, NewValue: newValue})
			if resp.CompareAndSetOK {
				return 1
			}
			return 0
		}).
		Export("ext_offchain_local_storage_compare_and_set_version_1").
		NewFunctionBuilder().
		WithFunc(func() uint64 {
			resp := br.call(OffchainTimestampRequest{})
			return resp.Timestamp
		}).
		Export("ext_offchain_timestamp_version_1").
		NewFunctionBuilder().
		WithFunc(func(ctx context.Context, mod api.Module) uint64 {
			resp := br.call(OffchainRandomSeedRequest{})
			packed, err := writeToGuest(ctx, mod, resp.RandomSeed[:])
			if err != nil {
				panic(err)
			}
			return packed
		}).
		Export("ext_offchain_random_seed_version_1").
		NewFunctionBuilder().
		WithFunc(func(ctx context.Context, mod api.Module, txPacked uint64) uint64 {
			tx, err := readPointerSize(mod, txPacked)
			if err != nil {
				panic(err)
			}
			resp := br.call(OffchainSubmitTransactionRequest{Transaction: tx})
			out := encodeOption(resp.Submitted, nil)
			packed, err := writeToGuest(ctx, mod, out)
			if err != nil {
				panic(err)
			}
			return packed
		}).
		Export("ext_offchain_submit_transaction_version_1")
}

// verifySignatureHostFunc builds a host function matching the
// ext_crypto_*_verify ABI: (sigPtr, msgPacked, pubkeyPtr) -> bool, for the
// given signature scheme.
func verifySignatureHostFunc(br *bridge, scheme string) func(ctx context.Context, mod api.Module, sigPacked, msgPacked, pubkeyPacked uint64) int32 {
	return func(ctx context.Context, mod api.Module, sigPacked, msgPacked, pubkeyPacked uint64) int32 {
		sig, err := readPointerSize(mod, sigPacked)
		if err != nil {
			panic(err)
		}
		msg, err := readPointerSize(mod, msgPacked)
		if err != nil {
			panic(err)
		}
		pubkey, err := readPointerSize(mod, pubkeyPacked)
		if err != nil {
			panic(err)
		}
		resp := br.call(SignatureVerificationRequest{Scheme: scheme, Signature: sig, Message: msg, PublicKey: pubkey})
		if resp.SignatureValid {
			return 1
		}
		return 0
	}
}

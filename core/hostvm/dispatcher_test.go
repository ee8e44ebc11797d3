package hostvm

import (
	"context"
	"testing"

	"github.com/AcalaNetwork/chopsticks/core/state"
	"github.com/stretchr/testify/require"
)

type fakeOracle struct {
	storage  map[string][]byte
	next     map[string]string
	offchain map[string][]byte
	ts       uint64
	seed     [32]byte
	submits  [][]byte
}

func newFakeOracle() *fakeOracle {
	return &fakeOracle{storage: map[string][]byte{}, next: map[string]string{}, offchain: map[string][]byte{}}
}

func (f *fakeOracle) GetStorage(ctx context.Context, key []byte) ([]byte, bool, error) {
	v, ok := f.storage[string(key)]
	return v, ok, nil
}

func (f *fakeOracle) GetNextKey(ctx context.Context, prefix, key []byte, orEqual bool) ([]byte, bool, error) {
	v, ok := f.next[string(key)]
	return []byte(v), ok, nil
}

func (f *fakeOracle) OffchainGetStorage(ctx context.Context, key []byte) ([]byte, bool, error) {
	v, ok := f.offchain[string(key)]
	return v, ok, nil
}

func (f *fakeOracle) OffchainTimestamp(ctx context.Context) (uint64, error) { return f.ts, nil }

func (f *fakeOracle) OffchainRandomSeed(ctx context.Context) ([32]byte, error) { return f.seed, nil }

func (f *fakeOracle) OffchainSubmitTransaction(ctx context.Context, tx []byte) (bool, error) {
	f.submits = append(f.submits, tx)
	return true, nil
}

func newTestDispatcher(oracle Oracle, mock bool) *Dispatcher {
	return NewDispatcher(oracle, state.NewAccumulator(), state.NewAccumulator(), mock)
}

func TestStorageGetFallsThroughToOracle(t *testing.T) {
	oracle := newFakeOracle()
	oracle.storage["k"] = []byte("v")
	d := newTestDispatcher(oracle, false)

	resp, err := d.Handle(context.Background(), StorageGetRequest{Key: []byte("k")})
	require.NoError(t, err)
	require.True(t, resp.StorageFound)
	require.Equal(t, []byte("v"), resp.StorageValue)
}

func TestStorageSetThenGetIsReadYourWrites(t *testing.T) {
	oracle := newFakeOracle()
	d := newTestDispatcher(oracle, false)

	_, err := d.Handle(context.Background(), StorageSetRequest{Key: []byte("k"), Value: []byte("new")})
	require.NoError(t, err)

	resp, err := d.Handle(context.Background(), StorageGetRequest{Key: []byte("k")})
	require.NoError(t, err)
	require.True(t, resp.StorageFound)
	require.Equal(t, []byte("new"), resp.StorageValue)
}

func TestStorageClearShadowsOracleValue(t *testing.T) {
	oracle := newFakeOracle()
	oracle.storage["k"] = []byte("v")
	d := newTestDispatcher(oracle, false)

	_, err := d.Handle(context.Background(), StorageClearRequest{Key: []byte("k")})
	require.NoError(t, err)

	resp, err := d.Handle(context.Background(), StorageGetRequest{Key: []byte("k")})
	require.NoError(t, err)
	require.False(t, resp.StorageFound)
}

func TestChildStorageKeyTranslation(t *testing.T) {
	oracle := newFakeOracle()
	oracle.storage[":child_storage:default:mychild"+"leafkey"] = []byte("v")
	d := newTestDispatcher(oracle, false)

	resp, err := d.Handle(context.Background(), StorageGetRequest{Child: []byte("mychild"), Key: []byte("leafkey")})
	require.NoError(t, err)
	require.True(t, resp.StorageFound)
	require.Equal(t, []byte("v"), resp.StorageValue)
}

func TestClosestDescendantMerkleValueAlwaysNone(t *testing.T) {
	d := newTestDispatcher(newFakeOracle(), false)
	resp, err := d.Handle(context.Background(), ClosestDescendantMerkleValueRequest{Key: []byte("k")})
	require.NoError(t, err)
	require.Nil(t, resp.MerkleValue)
}

func TestMagicSignatureBypassRequiresMockFlag(t *testing.T) {
	magic := append([]byte{0xde, 0xad, 0xbe, 0xef}, 0xcd, 0xcd)

	d := newTestDispatcher(newFakeOracle(), true)
	resp, err := d.Handle(context.Background(), SignatureVerificationRequest{
		Scheme: "ed25519", Signature: magic, Message: []byte("msg"), PublicKey: make([]byte, 32),
	})
	require.NoError(t, err)
	require.True(t, resp.SignatureValid)

	d2 := newTestDispatcher(newFakeOracle(), false)
	_, err = d2.Handle(context.Background(), SignatureVerificationRequest{
		Scheme: "ed25519", Signature: magic, Message: []byte("msg"), PublicKey: make([]byte, 32),
	})
	require.Error(t, err) // real verification rejects a 6-byte "signature"
}

func TestIsMagicSignatureVectors(t *testing.T) {
	require.True(t, IsMagicSignature([]byte{0xde, 0xad, 0xbe, 0xef, 0xcd, 0xcd}))
	require.True(t, IsMagicSignature([]byte{0xde, 0xad, 0xbe, 0xef, 0xcd, 0xcd, 0xcd, 0xcd}))
	require.False(t, IsMagicSignature([]byte{0xde, 0xad, 0xbe, 0xef, 0xcd, 0xcd, 0xcd, 0x00}))
	require.False(t, IsMagicSignature([]byte{0, 0, 0, 0, 0, 0, 0, 0}))
}

func TestOffchainCompareAndSet(t *testing.T) {
	d := newTestDispatcher(newFakeOracle(), false)

	resp, err := d.Handle(context.Background(), OffchainCompareAndSetRequest{
		Key: []byte("k"), OldValue: nil, NewValue: []byte("first"),
	})
	require.NoError(t, err)
	require.True(t, resp.CompareAndSetOK)

	wrong := []byte("not-first")
	resp, err = d.Handle(context.Background(), OffchainCompareAndSetRequest{
		Key: []byte("k"), OldValue: &wrong, NewValue: []byte("second"),
	})
	require.NoError(t, err)
	require.False(t, resp.CompareAndSetOK)

	correct := []byte("first")
	resp, err = d.Handle(context.Background(), OffchainCompareAndSetRequest{
		Key: []byte("k"), OldValue: &correct, NewValue: []byte("second"),
	})
	require.NoError(t, err)
	require.True(t, resp.CompareAndSetOK)
}

func TestLogEmitCapturesStructuredLog(t *testing.T) {
	d := newTestDispatcher(newFakeOracle(), false)
	level := int32(2)
	target := "x"
	_, err := d.Handle(context.Background(), LogEmitRequest{Level: &level, Target: &target, Message: "hi"})
	require.NoError(t, err)
	require.Len(t, d.Logs, 1)
	require.Equal(t, "hi", d.Logs[0].Message)
	require.Equal(t, int32(2), *d.Logs[0].Level)
	require.Equal(t, "x", *d.Logs[0].Target)
}

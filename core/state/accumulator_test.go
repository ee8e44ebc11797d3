package state

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetThenLookup(t *testing.T) {
	a := NewAccumulator()
	a.Set([]byte("k"), []byte("v"))

	v, ok := a.Lookup([]byte("k"))
	require.True(t, ok)
	require.Equal(t, []byte("v"), *v)
}

func TestDeleteShadowsWithoutErasingKnowledge(t *testing.T) {
	a := NewAccumulator()
	a.Delete([]byte("k"))

	v, ok := a.Lookup([]byte("k"))
	require.True(t, ok)
	require.Nil(t, v)
}

func TestLookupUnknownKey(t *testing.T) {
	a := NewAccumulator()
	_, ok := a.Lookup([]byte("missing"))
	require.False(t, ok)
}

func TestSeedDoesNotOverwriteExistingEntry(t *testing.T) {
	a := NewAccumulator()
	a.Set([]byte("k"), []byte("written"))
	a.Seed(map[string][]byte{"k": []byte("seeded"), "other": []byte("seeded-other")})

	v, _ := a.Lookup([]byte("k"))
	require.Equal(t, []byte("written"), *v)

	v, _ = a.Lookup([]byte("other"))
	require.Equal(t, []byte("seeded-other"), *v)
}

func TestMergeLaterWriteWins(t *testing.T) {
	a := NewAccumulator()
	a.Set([]byte("k"), []byte("old"))

	b := NewAccumulator()
	b.Set([]byte("k"), []byte("new"))
	a.Merge(b)

	v, _ := a.Lookup([]byte("k"))
	require.Equal(t, []byte("new"), *v)
}

func TestDiffSortedAndDistinguishesDelete(t *testing.T) {
	a := NewAccumulator()
	a.Set([]byte("b"), []byte("2"))
	a.Set([]byte("a"), []byte("1"))
	a.Delete([]byte("c"))

	diff := a.Diff()
	require.Len(t, diff, 3)
	require.Equal(t, []byte("a"), diff[0].Key)
	require.Equal(t, []byte("b"), diff[1].Key)
	require.Equal(t, []byte("c"), diff[2].Key)
	require.Nil(t, diff[2].Value)
}

func TestSnapshotIgnoresDeletions(t *testing.T) {
	a := NewAccumulator()
	a.Set([]byte("k"), []byte("v"))
	a.Delete([]byte("gone"))

	snap := a.Snapshot()
	require.Equal(t, map[string][]byte{"k": []byte("v")}, snap)
}

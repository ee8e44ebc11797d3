package les

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAddChainAndLookup(t *testing.T) {
	r := NewRegistry()
	id := r.AddChain()

	c, err := r.Chain(id)
	require.NoError(t, err)
	require.False(t, c.IsConnected())

	_, err = r.Chain(id + 1)
	require.ErrorIs(t, err, ErrChainNotFound)
}

func TestUpsertAndRemovePeer(t *testing.T) {
	r := NewRegistry()
	id := r.AddChain()
	c, err := r.Chain(id)
	require.NoError(t, err)

	c.UpsertPeer("peerA", "full", 10, [32]byte{1})
	require.True(t, c.IsConnected())
	require.Equal(t, []string{"peerA"}, c.Peers(time.Now()))

	c.RemovePeer("peerA")
	require.False(t, c.IsConnected())
}

func TestPeersExcludesStale(t *testing.T) {
	r := NewRegistry()
	id := r.AddChain()
	c, _ := r.Chain(id)

	c.UpsertPeer("peerA", "full", 1, [32]byte{})
	future := time.Now().Add(peerTimeout + time.Second)
	require.Empty(t, c.Peers(future))
}

func TestLatestBlockPicksHighest(t *testing.T) {
	r := NewRegistry()
	id := r.AddChain()
	c, _ := r.Chain(id)

	c.UpsertPeer("peerA", "full", 5, [32]byte{0xaa})
	c.UpsertPeer("peerB", "full", 9, [32]byte{0xbb})

	number, hash, ok := c.LatestBlock()
	require.True(t, ok)
	require.Equal(t, uint64(9), number)
	require.Equal(t, [32]byte{0xbb}, hash)
}

func TestLatestBlockNoPeers(t *testing.T) {
	r := NewRegistry()
	id := r.AddChain()
	c, _ := r.Chain(id)

	_, _, ok := c.LatestBlock()
	require.False(t, ok)
}

// Package les holds the light-client chain/peer bookkeeping this module's
// embedder would use to back calculate_state_root/create_proof over a live
// network rather than a pre-supplied state snapshot. It is adjacent to the
// executor: nothing in core/executor or core/hostvm calls into it, since
// the call loop only ever talks to whatever Oracle the embedder already
// constructed. It exists so an embedder has somewhere to register chains
// and track peers without inventing its own mutex discipline.
package les

import (
	"errors"
	"sort"
	"sync"
	"time"
)

// peerTimeout bounds how long a peer may go without a liveness update
// before IsStale reports it unusable for a storage/block request.
const peerTimeout = 30 * time.Second

// PeerInfo is what the registry knows about one connected peer: its role
// in the network, the best block it has announced, and when it was last
// heard from.
type PeerInfo struct {
	Role       string
	BestNumber uint64
	BestHash   [32]byte
	lastSeen   time.Time
}

// IsStale reports whether p has gone silent for longer than peerTimeout.
func (p PeerInfo) IsStale(now time.Time) bool {
	return now.Sub(p.lastSeen) > peerTimeout
}

// Chain is one network's peer set, guarded by its own mutex so activity on
// one chain never blocks lookups on another.
type Chain struct {
	mu    sync.Mutex
	peers map[string]PeerInfo
}

func newChain() *Chain {
	return &Chain{peers: make(map[string]PeerInfo)}
}

// UpsertPeer records peer as connected (or refreshes its liveness) with
// the given role and announced best block.
func (c *Chain) UpsertPeer(peerID string, role string, bestNumber uint64, bestHash [32]byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.peers[peerID] = PeerInfo{Role: role, BestNumber: bestNumber, BestHash: bestHash, lastSeen: time.Now()}
}

// RemovePeer drops peer, e.g. on disconnect.
func (c *Chain) RemovePeer(peerID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.peers, peerID)
}

// IsConnected reports whether the chain has at least one peer.
func (c *Chain) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.peers) > 0
}

// Peers returns every non-stale peer ID, in sorted order for deterministic
// round-robin selection by a caller (mirroring "index = request_id %
// len(peers)" peer-selection from the retry loop this was distilled from).
func (c *Chain) Peers(now time.Time) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	ids := make([]string, 0, len(c.peers))
	for id, info := range c.peers {
		if !info.IsStale(now) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// LatestBlock returns the highest BestNumber/BestHash any connected peer
// has announced.
func (c *Chain) LatestBlock() (number uint64, hash [32]byte, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, info := range c.peers {
		if !ok || info.BestNumber > number {
			number, hash, ok = info.BestNumber, info.BestHash, true
		}
	}
	return number, hash, ok
}

// Registry is the process-wide chain-id -> *Chain table.
type Registry struct {
	mu     sync.Mutex
	chains map[uint64]*Chain
	nextID uint64
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{chains: make(map[uint64]*Chain)}
}

// AddChain registers a new chain and returns its id.
func (r *Registry) AddChain() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	r.chains[id] = newChain()
	return id
}

// ErrChainNotFound is returned by Chain when chainID has no registered
// chain.
var ErrChainNotFound = errors.New("les: chain not found")

// Chain looks up a registered chain by id.
func (r *Registry) Chain(chainID uint64) (*Chain, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.chains[chainID]
	if !ok {
		return nil, ErrChainNotFound
	}
	return c, nil
}

package graph

import (
	"context"
	"sync"

	"movielynx/backend/internal/constants"
)

type edgeKey struct {
	from     Node
	to       Node
	edgeType string
}

// MemoryStore is an in-process Store. Each transaction stages its writes and
// applies them on Commit, so a rolled back or abandoned batch leaves no trace.
// Like a real graph it allows parallel edges: CreateEdge never deduplicates.
type MemoryStore struct {
	mu    sync.Mutex
	nodes map[Node]struct{}
	out   map[Node][]edgeKey
	edges int64
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nodes: make(map[Node]struct{}),
		out:   make(map[Node][]edgeKey),
	}
}

// Begin opens a staging transaction
func (s *MemoryStore) Begin(ctx context.Context) (Tx, error) {
	return &memoryTx{
		store: s,
		nodes: make(map[Node]struct{}),
		edges: make(map[edgeKey]int),
	}, nil
}

// Counts returns committed node and edge totals
func (s *MemoryStore) Counts(ctx context.Context) (Counts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var c Counts
	for n := range s.nodes {
		switch n.Label {
		case constants.ActorLabel:
			c.Actors++
		case constants.MovieLabel:
			c.Movies++
		}
	}
	c.Edges = s.edges
	return c, nil
}

// EdgesFrom returns the committed outgoing edges of n as target nodes
func (s *MemoryStore) EdgesFrom(n Node) []Node {
	s.mu.Lock()
	defer s.mu.Unlock()

	targets := make([]Node, 0, len(s.out[n]))
	for _, e := range s.out[n] {
		targets = append(targets, e.to)
	}
	return targets
}

func (s *MemoryStore) hasNode(n Node) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.nodes[n]
	return ok
}

// hasOutgoing scans the committed outgoing edges of from
func (s *MemoryStore) hasOutgoing(key edgeKey) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.out[key.from] {
		if e == key {
			return true
		}
	}
	return false
}

type memoryTx struct {
	store  *MemoryStore
	nodes  map[Node]struct{}
	edges  map[edgeKey]int
	order  []edgeKey
	closed bool
}

func (t *memoryTx) FindOrCreateNode(ctx context.Context, label, id string) (Node, bool, error) {
	if t.closed {
		return Node{}, false, errTxClosed
	}
	if err := checkIdentifier("label", label); err != nil {
		return Node{}, false, err
	}

	node := Node{Label: label, ID: id}
	if _, ok := t.nodes[node]; ok || t.store.hasNode(node) {
		return node, false, nil
	}
	t.nodes[node] = struct{}{}
	return node, true, nil
}

func (t *memoryTx) HasEdgeTo(ctx context.Context, from, to Node, edgeType string) (bool, error) {
	if t.closed {
		return false, errTxClosed
	}
	key := edgeKey{from: from, to: to, edgeType: edgeType}
	if t.edges[key] > 0 {
		return true, nil
	}
	return t.store.hasOutgoing(key), nil
}

func (t *memoryTx) CreateEdge(ctx context.Context, from, to Node, edgeType string) error {
	if t.closed {
		return errTxClosed
	}
	if err := checkEdge(from, to, edgeType); err != nil {
		return err
	}
	for _, n := range []Node{from, to} {
		if _, ok := t.nodes[n]; !ok && !t.store.hasNode(n) {
			return ErrNodeNotFound{Node: n}
		}
	}

	key := edgeKey{from: from, to: to, edgeType: edgeType}
	t.edges[key]++
	t.order = append(t.order, key)
	return nil
}

func (t *memoryTx) Commit(ctx context.Context) error {
	if t.closed {
		return errTxClosed
	}
	t.closed = true

	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for n := range t.nodes {
		s.nodes[n] = struct{}{}
	}
	for _, key := range t.order {
		s.out[key.from] = append(s.out[key.from], key)
		s.edges++
	}
	return nil
}

func (t *memoryTx) Rollback(ctx context.Context) error {
	t.closed = true
	t.nodes = nil
	t.edges = nil
	t.order = nil
	return nil
}

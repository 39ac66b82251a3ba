package graph

// Snapshot is an immutable copy of the graph taken at query time. A
// pathfinding run works entirely against its snapshot, so a concurrent
// block or unblock cannot corrupt an in-flight traversal. The view may be
// microseconds stale; that staleness is an accepted trade-off for not
// holding the store lock during traversal.
type Snapshot struct {
	nodes map[string]Node
	out   map[string][]Edge
}

// Snapshot copies all nodes and edges under the read lock and builds an
// adjacency list keyed by source node.
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &Snapshot{
		nodes: make(map[string]Node, len(s.nodes)),
		out:   make(map[string][]Edge, len(s.nodes)),
	}
	for id, n := range s.nodes {
		snap.nodes[id] = n
	}
	for _, e := range s.edges {
		snap.out[e.From] = append(snap.out[e.From], e)
	}
	return snap
}

// Node returns the node with the given id, if present.
func (sn *Snapshot) Node(id string) (Node, bool) {
	n, ok := sn.nodes[id]
	return n, ok
}

// HasNode reports whether a node id exists in the snapshot.
func (sn *Snapshot) HasNode(id string) bool {
	_, ok := sn.nodes[id]
	return ok
}

// Outgoing returns the edges leaving the given node, blocked ones included.
// Traversal code decides whether blocked edges participate.
func (sn *Snapshot) Outgoing(id string) []Edge {
	return sn.out[id]
}

// Nodes iterates all nodes in the snapshot.
func (sn *Snapshot) Nodes() map[string]Node {
	return sn.nodes
}

// NodeCount returns the number of nodes captured.
func (sn *Snapshot) NodeCount() int {
	return len(sn.nodes)
}

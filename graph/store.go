// Package graph owns the road network: nodes, weighted directed edges, and
// the blocked flag sensor reports toggle. Bidirectional roads are stored as
// two edges.
package graph

import (
	"math"
	"sort"
	"sync"

	"github.com/RyanAdrianRavikumar/disaster-routing-system/errs"
)

// Node is a junction or point of interest in the road network.
type Node struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Edge is a directed road segment. Weight is a non-negative distance or
// travel cost. Blocked edges are impassable, not slow.
type Edge struct {
	ID      string  `json:"id"`
	From    string  `json:"from"`
	To      string  `json:"to"`
	Weight  float64 `json:"weight"`
	Blocked bool    `json:"blocked"`
}

// Store holds the graph behind a single lock. Critical sections are kept
// short; pathfinding runs against a Snapshot, never against the live maps.
type Store struct {
	mu    sync.RWMutex
	nodes map[string]Node
	edges map[string]Edge
}

func NewStore() *Store {
	return &Store{
		nodes: make(map[string]Node),
		edges: make(map[string]Edge),
	}
}

func validCoordinate(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// AddNode registers a new node. Duplicate ids are rejected.
func (s *Store) AddNode(id, name string, lat, lon float64) error {
	if id == "" {
		return errs.New(errs.InvalidInput, "node id must not be empty")
	}
	if !validCoordinate(lat, lon) {
		return errs.New(errs.InvalidInput, "node %q has malformed coordinates (%v, %v)", id, lat, lon)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.nodes[id]; ok {
		return errs.New(errs.Conflict, "node %q already exists", id)
	}
	s.nodes[id] = Node{ID: id, Name: name, Latitude: lat, Longitude: lon}
	return nil
}

// UpdateNode replaces the name and coordinates of an existing node.
func (s *Store) UpdateNode(id, name string, lat, lon float64) error {
	if !validCoordinate(lat, lon) {
		return errs.New(errs.InvalidInput, "node %q has malformed coordinates (%v, %v)", id, lat, lon)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.nodes[id]; !ok {
		return errs.New(errs.NotFound, "node %q does not exist", id)
	}
	s.nodes[id] = Node{ID: id, Name: name, Latitude: lat, Longitude: lon}
	return nil
}

// AddEdge registers a directed edge. Both endpoints must exist and the
// weight must be non-negative, a requirement of the routing algorithm.
func (s *Store) AddEdge(id, from, to string, weight float64) error {
	if id == "" {
		return errs.New(errs.InvalidInput, "edge id must not be empty")
	}
	if weight < 0 || math.IsNaN(weight) {
		return errs.New(errs.InvalidInput, "edge %q has invalid weight %v", id, weight)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.edges[id]; ok {
		return errs.New(errs.Conflict, "edge %q already exists", id)
	}
	if _, ok := s.nodes[from]; !ok {
		return errs.New(errs.NotFound, "edge %q references unknown node %q", id, from)
	}
	if _, ok := s.nodes[to]; !ok {
		return errs.New(errs.NotFound, "edge %q references unknown node %q", id, to)
	}
	s.edges[id] = Edge{ID: id, From: from, To: to, Weight: weight}
	return nil
}

// SetBlocked toggles the blocked flag on an edge. Setting an edge to the
// state it is already in is a no-op success.
func (s *Store) SetBlocked(edgeID string, blocked bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.edges[edgeID]
	if !ok {
		return errs.New(errs.NotFound, "edge %q does not exist", edgeID)
	}
	e.Blocked = blocked
	s.edges[edgeID] = e
	return nil
}

// Edge returns a single edge by id.
func (s *Store) Edge(id string) (Edge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.edges[id]
	if !ok {
		return Edge{}, errs.New(errs.NotFound, "edge %q does not exist", id)
	}
	return e, nil
}

// Node returns a single node by id.
func (s *Store) Node(id string) (Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.nodes[id]
	if !ok {
		return Node{}, errs.New(errs.NotFound, "node %q does not exist", id)
	}
	return n, nil
}

// Nodes lists all nodes ordered by id.
func (s *Store) Nodes() []Node {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Node, 0, len(s.nodes))
	for _, n := range s.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Edges lists all edges ordered by id.
func (s *Store) Edges() []Edge {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Edge, 0, len(s.edges))
	for _, e := range s.edges {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Clear drops all nodes and edges.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes = make(map[string]Node)
	s.edges = make(map[string]Edge)
}

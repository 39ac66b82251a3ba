// Package routing computes shortest paths over graph snapshots and resolves
// the nearest reachable shelter for a stranded party.
package routing

import (
	"container/heap"
	"context"

	"github.com/RyanAdrianRavikumar/disaster-routing-system/errs"
	"github.com/RyanAdrianRavikumar/disaster-routing-system/graph"
)

// RouteResult is the outcome of a successful shortest-path query. Path is
// the node-id sequence from start to end inclusive.
type RouteResult struct {
	Path     []string `json:"path"`
	Distance float64  `json:"distance"`
}

type pqItem struct {
	node string
	dist float64
}

type priorityQueue []pqItem

func (pq priorityQueue) Len() int            { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq priorityQueue) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x interface{}) { *pq = append(*pq, x.(pqItem)) }
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[0 : n-1]
	return item
}

// ShortestPath runs Dijkstra from start to end over the unblocked edges of
// the snapshot. Blocked edges are excluded from traversal entirely; a
// blocked road is impassable, not slow. When two paths tie on total
// distance the first one discovered under ascending-distance pop order
// wins, which keeps repeated queries over the same snapshot deterministic.
//
// The context is checked between heap pops so an abandoned query returns
// promptly without touching shared state.
func ShortestPath(ctx context.Context, snap *graph.Snapshot, start, end string) (RouteResult, error) {
	if !snap.HasNode(start) {
		return RouteResult{}, errs.New(errs.NotFound, "start node %q does not exist", start)
	}
	if !snap.HasNode(end) {
		return RouteResult{}, errs.New(errs.NotFound, "end node %q does not exist", end)
	}

	dist := map[string]float64{start: 0}
	prev := make(map[string]string)
	visited := make(map[string]bool)

	pq := &priorityQueue{{node: start, dist: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return RouteResult{}, err
		}

		item := heap.Pop(pq).(pqItem)
		u := item.node
		if visited[u] {
			continue
		}
		visited[u] = true

		if u == end {
			return RouteResult{Path: reconstructPath(prev, start, end), Distance: item.dist}, nil
		}

		for _, e := range snap.Outgoing(u) {
			if e.Blocked {
				continue
			}
			alt := item.dist + e.Weight
			if old, ok := dist[e.To]; !ok || alt < old {
				dist[e.To] = alt
				prev[e.To] = u
				heap.Push(pq, pqItem{node: e.To, dist: alt})
			}
		}
	}

	return RouteResult{}, errs.New(errs.Unreachable, "no path found from %q to %q", start, end)
}

func reconstructPath(prev map[string]string, start, end string) []string {
	var path []string
	for at := end; ; {
		path = append([]string{at}, path...)
		if at == start {
			break
		}
		at = prev[at]
	}
	return path
}

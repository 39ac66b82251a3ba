package routing

import (
	"context"
	"sort"

	"github.com/RyanAdrianRavikumar/disaster-routing-system/errs"
	"github.com/RyanAdrianRavikumar/disaster-routing-system/graph"
)

// ShelterCandidate is the view of a shelter the resolver needs: location
// and how many spots remain.
type ShelterCandidate struct {
	ID        string
	Name      string
	Latitude  float64
	Longitude float64
	Remaining int
}

// NearestResult names the chosen shelter and the road path that reaches it.
type NearestResult struct {
	ShelterID   string      `json:"shelterId"`
	ShelterName string      `json:"shelterName"`
	Route       RouteResult `json:"route"`
}

// Resolver picks the nearest shelter with spare capacity for a requester.
// It owns no state; every call reads a fresh graph snapshot and the
// candidate list the caller supplies.
//
// The search is greedy: candidates are ordered by straight-line distance
// and the first one with capacity and a road path wins. A farther-by-air
// shelter could in principle have a shorter road path; that approximation
// is accepted to bound work per query.
type Resolver struct {
	graph *graph.Store

	// CandidateLimit caps how many shelters are path-checked per query.
	// Zero means no cap.
	CandidateLimit int
}

func NewResolver(g *graph.Store) *Resolver {
	return &Resolver{graph: g}
}

// NearestShelter resolves the closest reachable shelter with spare
// capacity. Full shelters are skipped, unreachable ones are passed over,
// and only when every candidate fails does the query report Unreachable.
func (r *Resolver) NearestShelter(ctx context.Context, user Coordinate, candidates []ShelterCandidate) (NearestResult, error) {
	snap := r.graph.Snapshot()
	if snap.NodeCount() == 0 {
		return NearestResult{}, errs.New(errs.NotFound, "graph has no nodes")
	}

	ordered := make([]ShelterCandidate, len(candidates))
	copy(ordered, candidates)
	sort.SliceStable(ordered, func(i, j int) bool {
		di := HaversineKM(user, Coordinate{Lat: ordered[i].Latitude, Lon: ordered[i].Longitude})
		dj := HaversineKM(user, Coordinate{Lat: ordered[j].Latitude, Lon: ordered[j].Longitude})
		return di < dj
	})

	start, err := NearestNode(snap, user)
	if err != nil {
		return NearestResult{}, err
	}

	checked := 0
	for _, c := range ordered {
		if c.Remaining <= 0 {
			continue
		}
		if r.CandidateLimit > 0 && checked >= r.CandidateLimit {
			break
		}
		checked++

		goal, err := NearestNode(snap, Coordinate{Lat: c.Latitude, Lon: c.Longitude})
		if err != nil {
			return NearestResult{}, err
		}

		route, err := ShortestPath(ctx, snap, start.ID, goal.ID)
		if err != nil {
			if errs.Is(err, errs.Unreachable) {
				continue
			}
			return NearestResult{}, err
		}
		return NearestResult{ShelterID: c.ID, ShelterName: c.Name, Route: route}, nil
	}

	return NearestResult{}, errs.New(errs.Unreachable, "no shelter with spare capacity is reachable")
}

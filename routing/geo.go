package routing

import (
	"math"

	"github.com/RyanAdrianRavikumar/disaster-routing-system/errs"
	"github.com/RyanAdrianRavikumar/disaster-routing-system/graph"
)

const earthRadiusKM = 6371.0

// Coordinate is a geographic point in degrees.
type Coordinate struct {
	Lat float64
	Lon float64
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// HaversineKM returns the great-circle distance between two coordinates in
// kilometres.
func HaversineKM(a, b Coordinate) float64 {
	phi1 := toRadians(a.Lat)
	phi2 := toRadians(b.Lat)
	deltaPhi := toRadians(b.Lat - a.Lat)
	deltaLambda := toRadians(b.Lon - a.Lon)

	h := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*
			math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKM * c
}

// NearestNode scans the snapshot for the node closest to coord by
// straight-line distance. Linear scan is fine at the graph sizes this
// serves (low thousands of nodes).
func NearestNode(snap *graph.Snapshot, coord Coordinate) (graph.Node, error) {
	var nearest graph.Node
	minDist := math.Inf(1)

	for _, n := range snap.Nodes() {
		d := HaversineKM(coord, Coordinate{Lat: n.Latitude, Lon: n.Longitude})
		if d < minDist || (d == minDist && n.ID < nearest.ID) {
			minDist = d
			nearest = n
		}
	}

	if math.IsInf(minDist, 1) {
		return graph.Node{}, errs.New(errs.NotFound, "graph has no nodes")
	}
	return nearest, nil
}

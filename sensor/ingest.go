// Package sensor applies obstacle reports from field sensors to the road
// graph and keeps a durable append-only history of every report.
package sensor

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/RyanAdrianRavikumar/disaster-routing-system/errs"
	"github.com/RyanAdrianRavikumar/disaster-routing-system/graph"
)

// Service translates sensor reports into edge blocked-state changes. A
// sensor owns exactly one outstanding obstacle at a time: a second report
// from the same sensor implicitly clears its previous obstacle before the
// new one is applied.
type Service struct {
	graph *graph.Store
	store *Store

	mu sync.Mutex
	// outstanding maps sensor id to the edge its current obstacle blocks.
	// Rebuilt from the report history at startup.
	outstanding map[string]string
}

// NewService wires the ingest service and restores sensor ownership from
// the uncleared rows in the report store. Edges named by restored reports
// are re-blocked; a report for an edge that no longer exists is logged and
// skipped.
func NewService(g *graph.Store, store *Store) (*Service, error) {
	s := &Service{
		graph:       g,
		store:       store,
		outstanding: make(map[string]string),
	}

	reports, err := store.Outstanding("")
	if err != nil {
		return nil, err
	}
	for _, r := range reports {
		if err := g.SetBlocked(r.EdgeID, true); err != nil {
			slog.Warn("skipping stale obstacle report", "sensor", r.SensorID, "edge", r.EdgeID, "err", err)
			continue
		}
		s.outstanding[r.SensorID] = r.EdgeID
	}
	return s, nil
}

// Record applies an obstacle report: the sensor's previous obstacle (if
// any) is cleared, the referenced edge is blocked, and the report is
// appended to history.
func (s *Service) Record(sensorID, edgeID, obstacleType, description string) error {
	if sensorID == "" {
		return errs.New(errs.InvalidInput, "sensor id must not be empty")
	}
	if edgeID == "" {
		return errs.New(errs.InvalidInput, "sensor %q report does not resolve to an edge", sensorID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Blocking first doubles as edge resolution: an unknown edge fails
	// before any state changes.
	if err := s.graph.SetBlocked(edgeID, true); err != nil {
		return err
	}

	if prev, ok := s.outstanding[sensorID]; ok && prev != edgeID {
		if err := s.graph.SetBlocked(prev, false); err != nil {
			// The previously blocked edge vanished from under us.
			slog.Error("clearing previous obstacle failed",
				"sensor", sensorID, "edge", prev, "err", err)
		}
		if _, err := s.store.MarkCleared(sensorID); err != nil {
			return errs.Wrap(errs.Internal, err, "marking previous report cleared for sensor %q", sensorID)
		}
	}

	if _, err := s.store.Append(Report{
		SensorID:     sensorID,
		EdgeID:       edgeID,
		ObstacleType: obstacleType,
		Description:  description,
		RecordedAt:   time.Now().UTC(),
	}); err != nil {
		return errs.Wrap(errs.Internal, err, "persisting report from sensor %q", sensorID)
	}

	s.outstanding[sensorID] = edgeID
	return nil
}

// ClearObstacle unblocks the edge attributed to the sensor's outstanding
// obstacle and marks its reports cleared.
func (s *Service) ClearObstacle(sensorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	edgeID, ok := s.outstanding[sensorID]
	if !ok {
		return errs.New(errs.NotFound, "sensor %q has no outstanding obstacle", sensorID)
	}

	if err := s.graph.SetBlocked(edgeID, false); err != nil {
		slog.Error("unblocking edge failed", "sensor", sensorID, "edge", edgeID, "err", err)
	}
	if _, err := s.store.MarkCleared(sensorID); err != nil {
		return errs.Wrap(errs.Internal, err, "marking reports cleared for sensor %q", sensorID)
	}
	delete(s.outstanding, sensorID)
	return nil
}

// Reports returns the newest report rows up to limit.
func (s *Service) Reports(limit int) ([]Report, error) {
	return s.store.Recent(limit)
}

// ParseEdgeRef splits the legacy "edgeId:obstacleType:description" wire
// form still sent by older sensor firmware. The description may itself
// contain colons.
func ParseEdgeRef(data string) (edgeID, obstacleType, description string, err error) {
	parts := strings.SplitN(data, ":", 3)
	if len(parts) < 3 || parts[0] == "" {
		return "", "", "", errs.New(errs.InvalidInput, "sensor data %q is not in edgeId:obstacleType:description form", data)
	}
	return parts[0], parts[1], parts[2], nil
}

// Package shelter keeps the capacity-bounded occupancy ledger for every
// shelter. Check-in appends to a FIFO queue, check-out releases the oldest
// occupant first.
package shelter

import (
	"sort"
	"sync"

	"github.com/RyanAdrianRavikumar/disaster-routing-system/errs"
)

type shelterRecord struct {
	id        string
	name      string
	latitude  float64
	longitude float64
	capacity  int
	occupants []string
}

// Info is the read-model for a shelter.
type Info struct {
	ID         string   `json:"shelterId"`
	Name       string   `json:"name"`
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	Capacity   int      `json:"capacity"`
	Population int      `json:"population"`
	Remaining  int      `json:"remainingCapacity"`
	Occupants  []string `json:"occupants"`
}

// Registry owns all shelter state behind one lock. CheckIn and CheckOut are
// atomic end to end: the capacity or emptiness check and the mutation happen
// in the same critical section, so two callers can never both succeed past
// the same last spot.
type Registry struct {
	mu       sync.Mutex
	shelters map[string]*shelterRecord
}

func NewRegistry() *Registry {
	return &Registry{shelters: make(map[string]*shelterRecord)}
}

// Create registers a shelter. Capacity must be a positive integer.
func (r *Registry) Create(id, name string, capacity int, lat, lon float64) error {
	if id == "" {
		return errs.New(errs.InvalidInput, "shelter id must not be empty")
	}
	if capacity <= 0 {
		return errs.New(errs.InvalidInput, "shelter %q capacity must be positive, got %d", id, capacity)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.shelters[id]; ok {
		return errs.New(errs.Conflict, "shelter %q already exists", id)
	}
	r.shelters[id] = &shelterRecord{
		id:        id,
		name:      name,
		latitude:  lat,
		longitude: lon,
		capacity:  capacity,
	}
	return nil
}

// CheckIn admits one occupant. A full shelter rejects the occupant; there
// is no waiting line inside a shelter.
func (r *Registry) CheckIn(shelterID, token string) error {
	if token == "" {
		return errs.New(errs.InvalidInput, "occupant token must not be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.shelters[shelterID]
	if !ok {
		return errs.New(errs.NotFound, "shelter %q does not exist", shelterID)
	}
	if len(s.occupants) >= s.capacity {
		return errs.New(errs.Conflict, "shelter %q is full (%d/%d)", shelterID, len(s.occupants), s.capacity)
	}
	s.occupants = append(s.occupants, token)
	return nil
}

// CheckOut releases and returns the oldest occupant. FIFO: first in,
// first out.
func (r *Registry) CheckOut(shelterID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.shelters[shelterID]
	if !ok {
		return "", errs.New(errs.NotFound, "shelter %q does not exist", shelterID)
	}
	if len(s.occupants) == 0 {
		return "", errs.New(errs.Conflict, "shelter %q is empty", shelterID)
	}
	token := s.occupants[0]
	s.occupants = s.occupants[1:]
	return token, nil
}

// Population returns the current occupant count.
func (r *Registry) Population(shelterID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.shelters[shelterID]
	if !ok {
		return 0, errs.New(errs.NotFound, "shelter %q does not exist", shelterID)
	}
	return len(s.occupants), nil
}

// RemainingCapacity returns capacity minus population.
func (r *Registry) RemainingCapacity(shelterID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.shelters[shelterID]
	if !ok {
		return 0, errs.New(errs.NotFound, "shelter %q does not exist", shelterID)
	}
	return s.capacity - len(s.occupants), nil
}

// Get returns the read-model for one shelter.
func (r *Registry) Get(shelterID string) (Info, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.shelters[shelterID]
	if !ok {
		return Info{}, errs.New(errs.NotFound, "shelter %q does not exist", shelterID)
	}
	return s.info(), nil
}

// List returns all shelters ordered by id.
func (r *Registry) List() []Info {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Info, 0, len(r.shelters))
	for _, s := range r.shelters {
		out = append(out, s.info())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Clear drops all shelters.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shelters = make(map[string]*shelterRecord)
}

func (s *shelterRecord) info() Info {
	occupants := make([]string, len(s.occupants))
	copy(occupants, s.occupants)
	return Info{
		ID:         s.id,
		Name:       s.name,
		Latitude:   s.latitude,
		Longitude:  s.longitude,
		Capacity:   s.capacity,
		Population: len(s.occupants),
		Remaining:  s.capacity - len(s.occupants),
		Occupants:  occupants,
	}
}

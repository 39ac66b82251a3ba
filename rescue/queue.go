// Package rescue holds the dispatch queue of pending rescue requests,
// ordered by vulnerability score with arrival-order tie-break.
package rescue

import (
	"container/heap"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/RyanAdrianRavikumar/disaster-routing-system/errs"
)

// DefaultCapacity mirrors the physical limit of a single dispatch
// operation's backlog.
const DefaultCapacity = 50

// Request is one pending rescue request. Priority is derived from the
// household composition and never supplied by the client.
type Request struct {
	ID            string    `json:"requestId"`
	FamilyName    string    `json:"familyName"`
	Address       string    `json:"address"`
	ChildrenCount int       `json:"childrenCount"`
	ElderlyCount  int       `json:"elderlyCount"`
	SpecialNeeds  string    `json:"specialNeeds,omitempty"`
	Priority      int       `json:"priority"`
	EnqueuedAt    time.Time `json:"enqueuedAt"`

	seq uint64
}

// PriorityFor is the authoritative vulnerability formula. Clients display
// it, they never compute it.
func PriorityFor(children, elderly int) int {
	return children*2 + elderly*3
}

type requestHeap []Request

func (h requestHeap) Len() int { return len(h) }

// Higher priority first; equal priorities serve in arrival order.
func (h requestHeap) Less(i, j int) bool {
	if h[i].Priority != h[j].Priority {
		return h[i].Priority > h[j].Priority
	}
	return h[i].seq < h[j].seq
}

func (h requestHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *requestHeap) Push(x interface{}) { *h = append(*h, x.(Request)) }
func (h *requestHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}

// Queue is a bounded max-priority queue. Dequeue is atomic with respect to
// concurrent enqueues: pop-then-return happens under the lock.
type Queue struct {
	mu       sync.Mutex
	items    requestHeap
	present  map[string]struct{}
	capacity int
	nextSeq  uint64
}

// NewQueue returns a queue bounded at capacity. Non-positive capacities
// fall back to DefaultCapacity.
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Queue{
		present:  make(map[string]struct{}),
		capacity: capacity,
	}
}

// Enqueue admits a request and returns it with id, priority and enqueue
// time filled in. An empty id gets a generated one.
func (q *Queue) Enqueue(req Request) (Request, error) {
	if req.ChildrenCount < 0 || req.ElderlyCount < 0 {
		return Request{}, errs.New(errs.InvalidInput, "children and elderly counts must be non-negative")
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	req.Priority = PriorityFor(req.ChildrenCount, req.ElderlyCount)
	if req.EnqueuedAt.IsZero() {
		req.EnqueuedAt = time.Now().UTC()
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if _, ok := q.present[req.ID]; ok {
		return Request{}, errs.New(errs.Conflict, "request %q is already queued", req.ID)
	}
	if len(q.items) >= q.capacity {
		return Request{}, errs.New(errs.Conflict, "rescue queue is full (%d)", q.capacity)
	}

	req.seq = q.nextSeq
	q.nextSeq++
	heap.Push(&q.items, req)
	q.present[req.ID] = struct{}{}
	return req, nil
}

// Peek returns the highest-priority request without removing it.
func (q *Queue) Peek() (Request, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return Request{}, errs.New(errs.Conflict, "rescue queue is empty")
	}
	return q.items[0], nil
}

// Dequeue removes and returns the highest-priority request. Dispatch is
// terminal; the request does not re-enter the queue.
func (q *Queue) Dequeue() (Request, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return Request{}, errs.New(errs.Conflict, "rescue queue is empty")
	}
	req := heap.Pop(&q.items).(Request)
	delete(q.present, req.ID)
	return req, nil
}

// Pending returns the queued requests in dispatch order without mutating
// the queue.
func (q *Queue) Pending() []Request {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]Request, len(q.items))
	copy(out, q.items)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority > out[j].Priority
		}
		return out[i].seq < out[j].seq
	})
	return out
}

func (q *Queue) IsEmpty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) == 0
}

func (q *Queue) IsFull() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) >= q.capacity
}

func (q *Queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Capacity returns the configured bound.
func (q *Queue) Capacity() int {
	return q.capacity
}

// Clear drops all pending requests.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = nil
	q.present = make(map[string]struct{})
}

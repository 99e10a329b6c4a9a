// Package history records successful evaluations in a bounded log.
package history

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultCapacity is the number of entries a log keeps unless configured
// otherwise.
const DefaultCapacity = 50

// ErrEmptyExpression is returned when adding an entry with no expression.
var ErrEmptyExpression = errors.New("history: empty expression")

// Entry is one recorded evaluation.
type Entry struct {
	ID         uuid.UUID `json:"id"`
	Expression string    `json:"expression"`
	Result     string    `json:"result"`
	Timestamp  time.Time `json:"timestamp"`
}

// Store is a bounded, ordered log of evaluations. Implementations evict the
// oldest entry when an addition would exceed their capacity. Each method is
// atomic with respect to the others.
type Store interface {
	// Add appends an entry and returns it.
	Add(ctx context.Context, expr, result string) (Entry, error)
	// List returns all entries, oldest first.
	List(ctx context.Context) ([]Entry, error)
	// Clear removes all entries.
	Clear(ctx context.Context) error
}

func newEntry(expr, result string, now time.Time) Entry {
	return Entry{
		ID:         uuid.New(),
		Expression: expr,
		Result:     result,
		Timestamp:  now.UTC(),
	}
}

// Ring is an in-process Store.
type Ring struct {
	mu      sync.Mutex
	entries []Entry
	cap     int
	now     func() time.Time
}

var _ Store = (*Ring)(nil)

// NewRing creates an in-process log holding at most capacity entries. A
// capacity less than 1 means DefaultCapacity.
func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Ring{
		entries: make([]Entry, 0, capacity),
		cap:     capacity,
		now:     time.Now,
	}
}

// Add appends an entry, evicting the oldest if the ring is full.
func (r *Ring) Add(_ context.Context, expr, result string) (Entry, error) {
	if expr == "" {
		return Entry{}, ErrEmptyExpression
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	e := newEntry(expr, result, r.now())
	if len(r.entries) == r.cap {
		copy(r.entries, r.entries[1:])
		r.entries = r.entries[:len(r.entries)-1]
	}
	r.entries = append(r.entries, e)
	return e, nil
}

// List returns a copy of the entries, oldest first.
func (r *Ring) List(context.Context) ([]Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...), nil
}

// Clear removes all entries.
func (r *Ring) Clear(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = r.entries[:0]
	return nil
}

// Cap returns the capacity of the ring.
func (r *Ring) Cap() int {
	return r.cap
}

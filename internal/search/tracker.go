package search

import (
	"sync"
	"sync/atomic"
)

// Ticket identifies one query submission.
type Ticket struct {
	Query      string
	generation uint64
}

// Tracker remembers which query is active so late asynchronous results for
// an older query can be dropped.
type Tracker struct {
	mu      sync.Mutex
	current atomic.Uint64
}

// Begin makes query the active one and invalidates every earlier ticket. It
// waits for an in-flight Apply to finish.
func (t *Tracker) Begin(query string) Ticket {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Ticket{Query: query, generation: t.current.Add(1)}
}

// IsActive reports whether no later Begin has happened since ticket was issued.
func (t *Tracker) IsActive(ticket Ticket) bool {
	return ticket.generation != 0 && t.current.Load() == ticket.generation
}

// Apply runs fn only if ticket is still active, holding off Begin until fn returns.
func (t *Tracker) Apply(ticket Ticket, fn func()) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.IsActive(ticket) {
		return false
	}
	fn()
	return true
}

package state

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Kind identifies what a request fetches.
type Kind int

const (
	KindSearch Kind = iota + 1
	KindDetail
)

func (k Kind) String() string {
	switch k {
	case KindSearch:
		return "search"
	case KindDetail:
		return "detail"
	default:
		return "unknown"
	}
}

// Ticket is the generation token attached to one request.
type Ticket struct {
	Seq       uint64
	Kind      Kind
	Key       string // search term or title id
	RequestID string
}

// Valid reports whether the ticket was issued by a Tracker.
func (t Ticket) Valid() bool {
	return t.Seq > 0
}

// Stats counts tracker activity since creation.
type Stats struct {
	Started   int
	Settled   int
	Discarded int
	Cancelled int
}

// Tracker hands out request generations. Beginning a request supersedes
// and cancels the one before it, so only the newest response is applied.
type Tracker struct {
	mu      sync.Mutex
	seq     uint64
	current Ticket
	cancel  context.CancelFunc
	stats   Stats
}

// Begin starts a new generation and returns a context that is cancelled
// when a later request begins or Cancel is called.
func (t *Tracker) Begin(parent context.Context, kind Kind, key string) (context.Context, Ticket) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
		t.stats.Cancelled++
	}
	t.seq++
	t.current = Ticket{
		Seq:       t.seq,
		Kind:      kind,
		Key:       key,
		RequestID: uuid.NewString(),
	}
	t.cancel = cancel
	t.stats.Started++
	return ctx, t.current
}

// Settle accepts the response for tk. It returns false when tk has been
// superseded or cancelled, in which case the response must be dropped.
func (t *Tracker) Settle(tk Ticket) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !tk.Valid() || tk.Seq != t.current.Seq {
		t.stats.Discarded++
		return false
	}
	t.release()
	t.stats.Settled++
	return true
}

// Cancel aborts the in-flight request, if any, and returns its ticket.
func (t *Tracker) Cancel() (Ticket, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.current.Valid() {
		return Ticket{}, false
	}
	tk := t.current
	t.stats.Cancelled++
	t.release()
	return tk, true
}

// Pending returns the in-flight ticket, if any.
func (t *Tracker) Pending() (Ticket, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current, t.current.Valid()
}

// Stats returns a copy of the activity counters.
func (t *Tracker) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats
}

// release clears the in-flight slot and frees its context. Must be called
// with mu held.
func (t *Tracker) release() {
	if t.cancel != nil {
		t.cancel()
	}
	t.current = Ticket{}
	t.cancel = nil
}

package fleet

import "github.com/aquasentinel/aquasentinel/internal/waterquality"

// DefaultHistoryCapacity is the number of superseded readings kept per station.
const DefaultHistoryCapacity = 100

// History is a fixed-capacity ring buffer of readings in insertion order.
// The oldest reading is evicted when a push would exceed capacity.
// It is not safe for concurrent use; State guards it.
type History struct {
	buf   []*waterquality.Reading
	start int
	n     int
}

// NewHistory creates a history with the given capacity. Non-positive
// capacities use DefaultHistoryCapacity.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &History{buf: make([]*waterquality.Reading, capacity)}
}

// Push appends r, evicting the oldest reading when full.
func (h *History) Push(r *waterquality.Reading) {
	if h.n < len(h.buf) {
		h.buf[(h.start+h.n)%len(h.buf)] = r
		h.n++
		return
	}
	h.buf[h.start] = r
	h.start = (h.start + 1) % len(h.buf)
}

// Len returns the number of readings held.
func (h *History) Len() int { return h.n }

// Cap returns the capacity.
func (h *History) Cap() int { return len(h.buf) }

// Last returns up to limit of the most recent readings, oldest first.
// A non-positive limit returns everything.
func (h *History) Last(limit int) []*waterquality.Reading {
	if limit <= 0 || limit > h.n {
		limit = h.n
	}
	out := make([]*waterquality.Reading, limit)
	skip := h.n - limit
	for i := 0; i < limit; i++ {
		out[i] = h.buf[(h.start+skip+i)%len(h.buf)]
	}
	return out
}

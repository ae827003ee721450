package fleet

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aquasentinel/aquasentinel/internal/station"
	"github.com/aquasentinel/aquasentinel/internal/waterquality"
)

var (
	// ErrNoReading is returned for a station that has not been ticked yet.
	ErrNoReading = errors.New("no reading available")

	// ErrStaleReading is returned when a published reading is not newer than
	// the current one.
	ErrStaleReading = errors.New("reading is not newer than current reading")
)

// State holds one station's current reading and the readings it superseded.
// Readings are immutable, so pointers handed to readers stay valid after
// later publishes.
type State struct {
	station station.Station

	mu      sync.RWMutex
	current *waterquality.Reading
	history *History
}

// NewState creates an empty state for st.
func NewState(st station.Station, historyCapacity int) *State {
	return &State{
		station: st.Clone(),
		history: NewHistory(historyCapacity),
	}
}

// Station returns a copy of the station this state belongs to.
func (s *State) Station() station.Station { return s.station.Clone() }

// Publish makes r the current reading and moves the previous one into history.
func (s *State) Publish(r *waterquality.Reading) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		if !r.Timestamp.After(s.current.Timestamp) {
			return fmt.Errorf("%w: station %s at %s", ErrStaleReading, s.station.ID, r.Timestamp.Format(time.RFC3339Nano))
		}
		s.history.Push(s.current)
	}
	s.current = r
	return nil
}

// Current returns the current reading.
func (s *State) Current() (*waterquality.Reading, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.current != nil
}

// History returns up to limit superseded readings, most recent last.
func (s *State) History(limit int) []*waterquality.Reading {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.Last(limit)
}

// Snapshot is a consistent view of a state.
type Snapshot struct {
	Current    *waterquality.Reading
	HistoryLen int
	Newest     time.Time
	Oldest     time.Time
}

// Snapshot returns the current reading and history bounds under one lock.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{Current: s.current, HistoryLen: s.history.Len()}
	if s.history.Len() > 0 {
		all := s.history.Last(0)
		snap.Oldest = all[0].Timestamp
		snap.Newest = all[len(all)-1].Timestamp
	}
	return snap
}

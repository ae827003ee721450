package station

import (
	"fmt"
	"sort"
)

// Registry is the immutable catalog of stations loaded at process start.
// Accessors hand out clones, so callers cannot mutate the catalog.
type Registry struct {
	stations []Station
	byID     map[string]int
}

// NewRegistry builds a registry from loaded stations.
// Station order is preserved; duplicate ids are rejected.
func NewRegistry(stations []Station) (*Registry, error) {
	r := &Registry{
		stations: make([]Station, 0, len(stations)),
		byID:     make(map[string]int, len(stations)),
	}
	for _, st := range stations {
		if err := st.Validate(); err != nil {
			return nil, fmt.Errorf("station %q: %w", st.ID, err)
		}
		if _, exists := r.byID[st.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, st.ID)
		}
		r.byID[st.ID] = len(r.stations)
		r.stations = append(r.stations, st.Clone())
	}
	return r, nil
}

// Len returns the number of stations.
func (r *Registry) Len() int {
	return len(r.stations)
}

// Get returns the station with the given id.
func (r *Registry) Get(id string) (Station, error) {
	i, ok := r.byID[id]
	if !ok {
		return Station{}, ErrStationNotFound
	}
	return r.stations[i].Clone(), nil
}

// Index returns the position of the station in load order.
func (r *Registry) Index(id string) (int, bool) {
	i, ok := r.byID[id]
	return i, ok
}

// At returns the station at position i in load order.
func (r *Registry) At(i int) Station {
	return r.stations[i].Clone()
}

// All returns a copy of all stations in load order.
func (r *Registry) All() []Station {
	out := make([]Station, len(r.stations))
	for i, st := range r.stations {
		out[i] = st.Clone()
	}
	return out
}

// Districts returns the sorted set of districts in the registry.
func (r *Registry) Districts() []string {
	return r.distinct(func(s Station) string { return s.District })
}

// Regions returns the sorted set of regions in the registry.
func (r *Registry) Regions() []string {
	return r.distinct(func(s Station) string { return s.Region })
}

// CountByType returns the number of stations of each type.
func (r *Registry) CountByType() map[Type]int {
	counts := make(map[Type]int, 2)
	for _, st := range r.stations {
		counts[st.Type]++
	}
	return counts
}

func (r *Registry) distinct(key func(Station) string) []string {
	seen := make(map[string]struct{})
	for _, st := range r.stations {
		if k := key(st); k != "" {
			seen[k] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

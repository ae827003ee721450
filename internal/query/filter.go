package query

import (
	"fmt"
	"strings"

	"github.com/aquasentinel/aquasentinel/internal/station"
)

// Filter narrows station listings. Empty fields match everything.
type Filter struct {
	// District matches case-insensitively.
	District string

	// Region matches case-insensitively.
	Region string

	// Type restricts to surface water or groundwater stations.
	Type station.Type

	// Search is a case-insensitive substring over id, name, district and
	// water body.
	Search string
}

// ParseFilter builds a filter from raw query values.
func ParseFilter(district, stationType, region, search string) (Filter, error) {
	f := Filter{
		District: strings.TrimSpace(district),
		Region:   strings.TrimSpace(region),
		Search:   strings.TrimSpace(search),
	}
	if stationType != "" {
		t, err := station.ParseType(stationType)
		if err != nil {
			return Filter{}, fmt.Errorf("%w: type %q", ErrInvalidFilter, stationType)
		}
		f.Type = t
	}
	return f, nil
}

// Validate checks the filter values.
func (f Filter) Validate() error {
	if f.Type != "" && f.Type != station.TypeSurfaceWater && f.Type != station.TypeGroundwater {
		return fmt.Errorf("%w: type %q", ErrInvalidFilter, f.Type)
	}
	return nil
}

// Match reports whether st passes the filter.
func (f Filter) Match(st station.Station) bool {
	if f.District != "" && !strings.EqualFold(st.District, f.District) {
		return false
	}
	if f.Region != "" && !strings.EqualFold(st.Region, f.Region) {
		return false
	}
	if f.Type != "" && st.Type != f.Type {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		for _, hay := range []string{st.ID, st.Name, st.District, st.WaterBody} {
			if strings.Contains(strings.ToLower(hay), needle) {
				return true
			}
		}
		return false
	}
	return true
}

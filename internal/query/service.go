// Package query serves filtered, paginated and aggregated views of the fleet.
// Every call reads the latest published state and never waits on a tick.
package query

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/aquasentinel/aquasentinel/internal/fleet"
	"github.com/aquasentinel/aquasentinel/internal/station"
	"github.com/aquasentinel/aquasentinel/internal/waterquality"
)

// Errors returned by the query service.
var (
	ErrStationNotFound  = station.ErrStationNotFound
	ErrNoReading        = fleet.ErrNoReading
	ErrUnknownParameter = waterquality.ErrUnknownParameter
	ErrInvalidFilter    = errors.New("invalid filter")
)

// DefaultHistoryLimit is the number of history entries returned when no
// limit is given.
const DefaultHistoryLimit = 50

// StationView pairs a station with its current reading.
type StationView struct {
	Station        station.Station       `json:"station"`
	CurrentReading *waterquality.Reading `json:"currentReading"`
	AlertCount     int                   `json:"alertCount"`
}

// Config holds configuration for the query service.
type Config struct {
	Fleet *fleet.Fleet

	// Clock supplies the current season when no tick has run yet.
	// Default: real clock
	Clock clockwork.Clock

	// Location is the time zone seasons are evaluated in.
	// Default: UTC
	Location *time.Location

	Spatial SpatialConfig
}

// Service answers queries over fleet state.
type Service struct {
	fleet    *fleet.Fleet
	clock    clockwork.Clock
	location *time.Location
	spatial  SpatialConfig
}

// NewService creates a query service.
func NewService(cfg Config) *Service {
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Service{
		fleet:    cfg.Fleet,
		clock:    cfg.Clock,
		location: cfg.Location,
		spatial:  cfg.Spatial.withDefaults(),
	}
}

// ListStations returns stations matching filter with their current readings.
func (s *Service) ListStations(filter Filter, page PageRequest) (Page[StationView], error) {
	return s.views(filter, page, nil)
}

// GetStation returns a station by id.
func (s *Service) GetStation(id string) (station.Station, error) {
	return s.fleet.Registry().Get(id)
}

// GetCurrentReading returns the current reading of a station.
func (s *Service) GetCurrentReading(id string) (*waterquality.Reading, error) {
	return s.fleet.Current(id)
}

// ListCurrentReadings returns the current readings of matching stations that
// have been ticked at least once.
func (s *Service) ListCurrentReadings(filter Filter, page PageRequest) (Page[*waterquality.Reading], error) {
	if err := filter.Validate(); err != nil {
		return Page[*waterquality.Reading]{}, err
	}
	var readings []*waterquality.Reading
	s.fleet.Each(func(st station.Station, r *waterquality.Reading) {
		if r != nil && filter.Match(st) {
			readings = append(readings, r)
		}
	})
	return paginate(readings, page), nil
}

// GetHistory returns up to limit superseded readings, most recent last.
func (s *Service) GetHistory(id string, limit int) ([]*waterquality.Reading, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.fleet.History(id, limit)
}

// StationsByStatus returns stations whose current reading has the given status.
func (s *Service) StationsByStatus(status waterquality.Status, filter Filter, page PageRequest) (Page[StationView], error) {
	return s.views(filter, page, func(_ station.Station, r *waterquality.Reading) bool {
		return r != nil && r.Status == status
	})
}

// StationsByWaterClass returns stations whose current reading is in class c.
func (s *Service) StationsByWaterClass(c waterquality.WaterClass, filter Filter, page PageRequest) (Page[StationView], error) {
	return s.views(filter, page, func(_ station.Station, r *waterquality.Reading) bool {
		return r != nil && r.WaterClass == c
	})
}

// StationsByType returns stations of type t.
func (s *Service) StationsByType(t station.Type, filter Filter, page PageRequest) (Page[StationView], error) {
	return s.views(filter, page, func(st station.Station, _ *waterquality.Reading) bool {
		return st.Type == t
	})
}

// StationsByRegion returns stations in region, matched case-insensitively.
func (s *Service) StationsByRegion(region string, filter Filter, page PageRequest) (Page[StationView], error) {
	return s.views(filter, page, func(st station.Station, _ *waterquality.Reading) bool {
		return strings.EqualFold(st.Region, region)
	})
}

// StationsWithAlerts returns stations with at least one alert, most alerts first.
// Ties keep registry order.
func (s *Service) StationsWithAlerts(filter Filter, page PageRequest) (Page[StationView], error) {
	if err := filter.Validate(); err != nil {
		return Page[StationView]{}, err
	}
	views := s.collect(filter, func(_ station.Station, r *waterquality.Reading) bool {
		return r != nil && r.AlertCount() > 0
	})
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].AlertCount > views[j].AlertCount
	})
	return paginate(views, page), nil
}

func (s *Service) views(filter Filter, page PageRequest, keep func(station.Station, *waterquality.Reading) bool) (Page[StationView], error) {
	if err := filter.Validate(); err != nil {
		return Page[StationView]{}, err
	}
	return paginate(s.collect(filter, keep), page), nil
}

func (s *Service) collect(filter Filter, keep func(station.Station, *waterquality.Reading) bool) []StationView {
	var out []StationView
	s.fleet.Each(func(st station.Station, r *waterquality.Reading) {
		if !filter.Match(st) {
			return
		}
		if keep != nil && !keep(st, r) {
			return
		}
		v := StationView{Station: st, CurrentReading: r}
		if r != nil {
			v.AlertCount = r.AlertCount()
		}
		out = append(out, v)
	})
	return out
}

// LowestWQI returns up to n reporting stations with the lowest WQI, worst
// first. Ties keep registry order.
func (s *Service) LowestWQI(n int) []StationView {
	views := s.collect(Filter{}, func(_ station.Station, r *waterquality.Reading) bool {
		return r != nil
	})
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].CurrentReading.WQI < views[j].CurrentReading.WQI
	})
	if n > 0 && len(views) > n {
		views = views[:n]
	}
	return views
}

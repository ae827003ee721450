package query

import (
	"errors"
	"math"
	"sort"

	"github.com/aquasentinel/aquasentinel/internal/station"
	"github.com/aquasentinel/aquasentinel/internal/waterquality"
)

// Spatial query errors.
var (
	ErrInvalidPoint      = errors.New("invalid coordinates")
	ErrNoStationsInRange = errors.New("no reporting stations within range")
)

// Confidence grades a point estimate by how close its nearest station is.
type Confidence string

const (
	ConfidenceLow    Confidence = "LOW"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceHigh   Confidence = "HIGH"
)

// SpatialConfig tunes nearby lookups and inverse distance weighting.
type SpatialConfig struct {
	// MaxDistanceKm ignores stations further away. Default: 50
	MaxDistanceKm float64

	// MaxStations caps the stations an estimate uses. Default: 5
	MaxStations int

	// Power is the IDW exponent. Default: 2
	Power float64

	// HighConfidenceKm and MediumConfidenceKm bound the nearest station
	// distance for each grade. Defaults: 5 and 15
	HighConfidenceKm   float64
	MediumConfidenceKm float64
}

// DefaultSpatialConfig returns the default spatial configuration.
func DefaultSpatialConfig() SpatialConfig {
	return SpatialConfig{
		MaxDistanceKm:      50,
		MaxStations:        5,
		Power:              2,
		HighConfidenceKm:   5,
		MediumConfidenceKm: 15,
	}
}

func (c SpatialConfig) withDefaults() SpatialConfig {
	d := DefaultSpatialConfig()
	if c.MaxDistanceKm <= 0 {
		c.MaxDistanceKm = d.MaxDistanceKm
	}
	if c.MaxStations <= 0 {
		c.MaxStations = d.MaxStations
	}
	if c.Power <= 0 {
		c.Power = d.Power
	}
	if c.HighConfidenceKm <= 0 {
		c.HighConfidenceKm = d.HighConfidenceKm
	}
	if c.MediumConfidenceKm <= 0 {
		c.MediumConfidenceKm = d.MediumConfidenceKm
	}
	return c
}

// NearbyStation is a station with its distance from a query point.
type NearbyStation struct {
	StationView
	DistanceKm float64 `json:"distanceKm"`
}

// Contribution is one station's share of a point estimate.
type Contribution struct {
	StationID  string  `json:"stationId"`
	DistanceKm float64 `json:"distanceKm"`
	Value      float64 `json:"value"`
	Weight     float64 `json:"weight"`
}

// PointEstimate is an inverse distance weighted value at a coordinate.
type PointEstimate struct {
	Latitude          float64              `json:"latitude"`
	Longitude         float64              `json:"longitude"`
	Parameter         string               `json:"parameter"`
	Value             float64              `json:"value"`
	Confidence        Confidence           `json:"confidence"`
	NearestDistanceKm float64              `json:"nearestDistanceKm"`
	Contributions     []Contribution       `json:"contributions"`
	Status            *waterquality.Status `json:"status,omitempty"`
}

// Nearby returns stations within radiusKm of the point, closest first. A
// non-positive radius uses the configured maximum distance.
func (s *Service) Nearby(lat, lon, radiusKm float64, limit int) ([]NearbyStation, error) {
	if err := validatePoint(lat, lon); err != nil {
		return nil, err
	}
	if radiusKm <= 0 {
		radiusKm = s.spatial.MaxDistanceKm
	}

	var out []NearbyStation
	s.fleet.Each(func(st station.Station, r *waterquality.Reading) {
		d := haversineKm(lat, lon, st.Latitude, st.Longitude)
		if d > radiusKm {
			return
		}
		v := StationView{Station: st, CurrentReading: r}
		if r != nil {
			v.AlertCount = r.AlertCount()
		}
		out = append(out, NearbyStation{StationView: v, DistanceKm: round2(d)})
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Estimate interpolates a parameter, or the WQI when p is nil, at the point
// from the nearest reporting stations.
func (s *Service) Estimate(lat, lon float64, p *waterquality.Parameter) (*PointEstimate, error) {
	if err := validatePoint(lat, lon); err != nil {
		return nil, err
	}
	cfg := s.spatial

	type candidate struct {
		id    string
		dist  float64
		value float64
	}
	var candidates []candidate
	s.fleet.Each(func(st station.Station, r *waterquality.Reading) {
		if r == nil {
			return
		}
		d := haversineKm(lat, lon, st.Latitude, st.Longitude)
		if d > cfg.MaxDistanceKm {
			return
		}
		v := r.WQI
		if p != nil {
			var ok bool
			if v, ok = r.Value(*p); !ok {
				return
			}
		}
		candidates = append(candidates, candidate{id: st.ID, dist: d, value: v})
	})
	if len(candidates) == 0 {
		return nil, ErrNoStationsInRange
	}

	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].dist < candidates[j].dist })
	if len(candidates) > cfg.MaxStations {
		candidates = candidates[:cfg.MaxStations]
	}

	contributions := make([]Contribution, len(candidates))
	var total float64
	for i, c := range candidates {
		// Within a metre the station value dominates.
		w := 1e10
		if c.dist >= 0.001 {
			w = 1 / math.Pow(c.dist, cfg.Power)
		}
		contributions[i] = Contribution{StationID: c.id, DistanceKm: round2(c.dist), Value: c.value, Weight: w}
		total += w
	}

	var value float64
	for i := range contributions {
		contributions[i].Weight /= total
		value += contributions[i].Value * contributions[i].Weight
		contributions[i].Weight = math.Round(contributions[i].Weight*1e4) / 1e4
	}

	est := &PointEstimate{
		Latitude:          lat,
		Longitude:         lon,
		Parameter:         "wqi",
		Value:             round2(value),
		Confidence:        cfg.confidence(candidates[0].dist, len(candidates)),
		NearestDistanceKm: round2(candidates[0].dist),
		Contributions:     contributions,
	}
	if p != nil {
		est.Parameter = p.String()
	} else {
		status := waterquality.StatusFor(est.Value)
		est.Status = &status
	}
	return est, nil
}

func (c SpatialConfig) confidence(nearestKm float64, stations int) Confidence {
	if nearestKm <= c.HighConfidenceKm && stations >= 2 {
		return ConfidenceHigh
	}
	if nearestKm <= c.MediumConfidenceKm {
		return ConfidenceMedium
	}
	return ConfidenceLow
}

func validatePoint(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsNaN(lon) || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return ErrInvalidPoint
	}
	return nil
}

// haversineKm returns the great circle distance between two points.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371.0

	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

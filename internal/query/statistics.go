package query

import (
	"math"
	"sort"
	"time"

	"github.com/aquasentinel/aquasentinel/internal/station"
	"github.com/aquasentinel/aquasentinel/internal/waterquality"
)

// RegionStats aggregates the reporting stations of one region.
type RegionStats struct {
	Count      int     `json:"count"`
	AverageWQI float64 `json:"averageWqi"`
}

// Summary aggregates the current state of the whole fleet.
type Summary struct {
	LastUpdate             *time.Time             `json:"lastUpdate"`
	TotalStations          int                    `json:"totalStations"`
	SurfaceWaterStations   int                    `json:"surfaceWaterStations"`
	GroundwaterStations    int                    `json:"groundwaterStations"`
	ReportingStations      int                    `json:"reportingStations"`
	AverageWQI             float64                `json:"averageWQI"`
	StatusDistribution     map[string]int         `json:"statusDistribution"`
	WaterClassDistribution map[string]int         `json:"waterClassDistribution"`
	TotalAlerts            int                    `json:"totalAlerts"`
	CriticalAlerts         int                    `json:"criticalAlerts"`
	StationsWithAlerts     int                    `json:"stationsWithAlerts"`
	PollutionEvents        int                    `json:"pollutionEvents"`
	RegionStatistics       map[string]RegionStats `json:"regionStatistics"`
	StationsPerRegion      map[string]int         `json:"stationsPerRegion"`
	CurrentSeason          waterquality.Season    `json:"currentSeason"`
}

// SummaryStatistics aggregates current readings across the fleet. Stations
// without a reading count towards totals but not towards averages.
func (s *Service) SummaryStatistics() Summary {
	sum := Summary{
		StatusDistribution:     map[string]int{},
		WaterClassDistribution: map[string]int{},
		RegionStatistics:       map[string]RegionStats{},
		StationsPerRegion:      map[string]int{},
	}

	regionWQI := map[string]float64{}
	var wqiTotal float64
	s.fleet.Each(func(st station.Station, r *waterquality.Reading) {
		sum.TotalStations++
		sum.StationsPerRegion[st.Region]++
		switch st.Type {
		case station.TypeSurfaceWater:
			sum.SurfaceWaterStations++
		case station.TypeGroundwater:
			sum.GroundwaterStations++
		}
		if r == nil {
			return
		}

		sum.ReportingStations++
		wqiTotal += r.WQI
		sum.StatusDistribution[r.Status.String()]++
		sum.WaterClassDistribution[r.WaterClass.String()]++
		sum.TotalAlerts += r.AlertCount()
		if r.AlertCount() > 0 {
			sum.StationsWithAlerts++
		}
		for _, a := range r.Alerts {
			if a.Severity == waterquality.SeverityCritical {
				sum.CriticalAlerts++
			}
		}
		if r.PollutionEvent {
			sum.PollutionEvents++
		}

		rs := sum.RegionStatistics[st.Region]
		rs.Count++
		sum.RegionStatistics[st.Region] = rs
		regionWQI[st.Region] += r.WQI
	})

	if sum.ReportingStations > 0 {
		sum.AverageWQI = round2(wqiTotal / float64(sum.ReportingStations))
	}
	for region, rs := range sum.RegionStatistics {
		rs.AverageWQI = round2(regionWQI[region] / float64(rs.Count))
		sum.RegionStatistics[region] = rs
	}

	now := s.clock.Now()
	if last := s.fleet.LastUpdate(); !last.IsZero() {
		sum.LastUpdate = &last
		now = last
	}
	sum.CurrentSeason = waterquality.SeasonAt(now.In(s.location))
	return sum
}

// ParameterStats summarises one parameter across current readings.
type ParameterStats struct {
	Parameter waterquality.Parameter `json:"parameter"`
	Count     int                    `json:"count"`
	Min       float64                `json:"min"`
	Max       float64                `json:"max"`
	Average   float64                `json:"average"`
	Median    float64                `json:"median"`
}

// ParameterStatistics computes count, min, max, average and median of p over
// current readings. The median is the upper middle element for even counts.
// With no values every field but Parameter is zero.
func (s *Service) ParameterStatistics(p waterquality.Parameter) (ParameterStats, error) {
	if !p.Valid() {
		return ParameterStats{}, ErrUnknownParameter
	}

	var vals []float64
	for _, r := range s.fleet.Readings() {
		if x, ok := r.Value(p); ok {
			vals = append(vals, x)
		}
	}

	stats := ParameterStats{Parameter: p, Count: len(vals)}
	if len(vals) == 0 {
		return stats, nil
	}

	sort.Float64s(vals)
	var total float64
	for _, x := range vals {
		total += x
	}
	stats.Min = vals[0]
	stats.Max = vals[len(vals)-1]
	stats.Average = round2(total / float64(len(vals)))
	stats.Median = vals[len(vals)/2]
	return stats, nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Package station provides the monitoring station catalog and its loaders.
package station

import (
	"errors"
	"maps"
	"strings"
)

// Sentinel errors for station loading and lookup.
var (
	ErrStationNotFound = errors.New("station not found")
	ErrDuplicateID     = errors.New("duplicate station id")
	ErrInvalidStation  = errors.New("invalid station record")
	ErrUnknownType     = errors.New("unknown station type")
)

// Type is the kind of water body a station samples.
type Type string

const (
	TypeSurfaceWater Type = "surface_water"
	TypeGroundwater  Type = "groundwater"
)

// ParseType converts a record value into a Type.
// Accepts the canonical names plus the spellings used by older exports.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "surface_water", "surface", "surfacewater", "surface water", "sw":
		return TypeSurfaceWater, nil
	case "groundwater", "ground_water", "ground water", "gw":
		return TypeGroundwater, nil
	default:
		return "", ErrUnknownType
	}
}

// MonitoringType describes the monitoring programme a station belongs to.
type MonitoringType string

const (
	MonitoringRoutine  MonitoringType = "routine"
	MonitoringBaseline MonitoringType = "baseline"
	MonitoringTrend    MonitoringType = "trend"
)

// Land use categories for surface water stations.
const (
	LandUseUrban        = "urban"
	LandUseIndustrial   = "industrial"
	LandUseAgricultural = "agricultural"
	LandUseForest       = "forest"
	LandUseRural        = "rural"
	LandUseSemiUrban    = "semi-urban"
)

// Aquifer types for groundwater stations.
const (
	AquiferBasaltic     = "basaltic"
	AquiferHardRock     = "hard_rock"
	AquiferAlluvial     = "alluvial"
	AquiferSemiConfined = "semi_confined"
	AquiferConfined     = "confined"
)

// Station is an immutable monitoring station record.
type Station struct {
	ID                string         `json:"station_id"`
	Name              string         `json:"name"`
	Type              Type           `json:"type"`
	MonitoringType    MonitoringType `json:"monitoring_type,omitempty"`
	LandUse           string         `json:"land_use,omitempty"`
	AquiferType       string         `json:"aquifer_type,omitempty"`
	District          string         `json:"district"`
	Taluka            string         `json:"taluka,omitempty"`
	Region            string         `json:"region"`
	Latitude          float64        `json:"latitude"`
	Longitude         float64        `json:"longitude"`
	Altitude          float64        `json:"altitude,omitempty"`
	WaterBody         string         `json:"water_body,omitempty"`
	Laboratory        string         `json:"laboratory,omitempty"`
	SamplingFrequency string         `json:"sampling_frequency,omitempty"`
	DesignatedUse     string         `json:"designated_use,omitempty"`
	WellType          string         `json:"well_type,omitempty"`
	WellDepthM        float64        `json:"well_depth_m,omitempty"`
	PopulationNearby  int            `json:"population_nearby,omitempty"`

	// BaseParameters overrides derived baseline values per parameter name.
	BaseParameters map[string]float64 `json:"base_parameters,omitempty"`
}

// Clone returns a copy of s that shares no maps with it.
func (s Station) Clone() Station {
	s.BaseParameters = maps.Clone(s.BaseParameters)
	return s
}

// SubClassification returns the land use for surface water stations and the
// aquifer type for groundwater stations.
func (s Station) SubClassification() string {
	if s.Type == TypeGroundwater {
		return s.AquiferType
	}
	return s.LandUse
}

// IsSurfaceWater reports whether the station samples surface water.
func (s Station) IsSurfaceWater() bool {
	return s.Type == TypeSurfaceWater
}

// Validate checks the fields every station must carry.
func (s Station) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return errors.Join(ErrInvalidStation, errors.New("missing id"))
	}
	if s.Type != TypeSurfaceWater && s.Type != TypeGroundwater {
		return errors.Join(ErrInvalidStation, ErrUnknownType)
	}
	if s.Latitude < -90 || s.Latitude > 90 || s.Longitude < -180 || s.Longitude > 180 {
		return errors.Join(ErrInvalidStation, errors.New("coordinates out of range"))
	}
	return nil
}
